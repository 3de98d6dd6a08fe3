package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/weiawesome/catalog-service/internal/domain"
	"github.com/weiawesome/catalog-service/internal/repository"
)

var (
	ErrNotFound    = repository.ErrNotFound
	ErrUnavailable = repository.ErrUnavailable
	// ErrNoFile reports a film without a reachable media file.
	ErrNoFile = errors.New("film has no media file")
	// ErrBlankQuery reports a search query made only of whitespace.
	ErrBlankQuery = errors.New("query must not be blank")
	// ErrPageOutOfRange reports a page beyond the searchable result window.
	ErrPageOutOfRange = errors.New("page is beyond the result window")
)

// Paging bounds the page size of listing endpoints.
type Paging struct {
	DefaultPageSize int
	MaxPageSize     int
	// ResultWindow is the number of results reachable by paging.
	ResultWindow int
}

// FilmService defines the read operations on films.
type FilmService interface {
	GetFilm(ctx context.Context, id string) (*domain.FilmDetailResponse, error)
	GetFilmFileURL(ctx context.Context, id string) (string, error)
	ListFilms(ctx context.Context, req *domain.ListFilmsRequest) ([]domain.FilmResponse, error)
	SearchFilms(ctx context.Context, req *domain.SearchFilmsRequest) ([]domain.FilmResponse, error)
}

// GenreService defines the read operations on genres.
type GenreService interface {
	GetGenre(ctx context.Context, id string) (*domain.GenreResponse, error)
	ListGenres(ctx context.Context, req *domain.PageRequest) ([]domain.GenreResponse, error)
}

// PersonService defines the read operations on persons.
type PersonService interface {
	GetPerson(ctx context.Context, id string) (*domain.PersonDetailResponse, error)
	ListPersonFilms(ctx context.Context, id string, req *domain.PageRequest) ([]domain.FilmResponse, error)
	SearchPersons(ctx context.Context, req *domain.SearchPersonsRequest) ([]domain.PersonResponse, error)
}

// listParams turns a normalised page request into list query parameters,
// dropping a sort field the entity cannot be ordered by.
func listParams(req *domain.PageRequest, paging Paging, sortFields []string) (domain.QueryParams, error) {
	req.Normalize(paging.DefaultPageSize, paging.MaxPageSize)
	if !req.InWindow(paging.ResultWindow) {
		return domain.QueryParams{}, fmt.Errorf("page %d of size %d: %w", req.PageNumber, req.PageSize, ErrPageOutOfRange)
	}
	return domain.QueryParams{
		Offset:   req.Offset(),
		PageSize: req.PageSize,
		Sort:     domain.ValidSortField(req.Sort, sortFields),
	}, nil
}
