package service

import (
	"context"

	"github.com/weiawesome/catalog-service/internal/domain"
	"github.com/weiawesome/catalog-service/internal/repository"
)

type genreServiceImpl struct {
	genres repository.Store[domain.Genre]
	paging Paging
}

// NewGenreService creates a new genre service.
func NewGenreService(genres repository.Store[domain.Genre], paging Paging) GenreService {
	return &genreServiceImpl{genres: genres, paging: paging}
}

func (s *genreServiceImpl) GetGenre(ctx context.Context, id string) (*domain.GenreResponse, error) {
	genre, err := s.genres.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := genre.ToResponse()
	return &resp, nil
}

func (s *genreServiceImpl) ListGenres(ctx context.Context, req *domain.PageRequest) ([]domain.GenreResponse, error) {
	params, err := listParams(req, s.paging, domain.GenreSortFields)
	if err != nil {
		return nil, err
	}

	genres, err := s.genres.FetchList(ctx, params)
	if err != nil {
		return nil, err
	}

	out := make([]domain.GenreResponse, len(genres))
	for i := range genres {
		out[i] = genres[i].ToResponse()
	}
	return out, nil
}
