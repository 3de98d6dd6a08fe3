package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/weiawesome/catalog-service/internal/domain"
	"github.com/weiawesome/catalog-service/internal/repository"
	"github.com/weiawesome/catalog-service/pkg/log"
	"github.com/weiawesome/catalog-service/pkg/storage"
)

// recommendationSort orders recommended films best rated first.
const recommendationSort = "-imdb_rating"

// FilmOptions configures the film service.
type FilmOptions struct {
	Paging
	RecommendedFilms int
	URLExpiry        time.Duration
}

type filmServiceImpl struct {
	films repository.Store[domain.Film]
	files storage.Storage
	opts  FilmOptions
}

// NewFilmService creates a new film service. files may be nil when no media
// storage is configured.
func NewFilmService(films repository.Store[domain.Film], files storage.Storage, opts FilmOptions) FilmService {
	return &filmServiceImpl{
		films: films,
		files: files,
		opts:  opts,
	}
}

func (s *filmServiceImpl) GetFilm(ctx context.Context, id string) (*domain.FilmDetailResponse, error) {
	film, err := s.films.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := film.ToDetailResponse()
	resp.RecommendedFilms = s.recommend(ctx, &film)

	if film.FilePath != nil && s.files != nil {
		url, err := s.files.GetURL(ctx, *film.FilePath, s.opts.URLExpiry)
		switch {
		case err != nil:
			l := log.Ctx(ctx)
			l.Warn().Err(err).Str(log.FieldEntityID, id).Msg("failed to resolve film file url")
		case isLocal(url):
			// Only reachable through the film file endpoint.
		default:
			resp.FileURL = url
		}
	}

	return &resp, nil
}

// recommend returns the best rated other films of the film's first genre.
// Recommendations are best effort: lookup failures yield an empty list.
func (s *filmServiceImpl) recommend(ctx context.Context, film *domain.Film) []domain.FilmResponse {
	out := []domain.FilmResponse{}
	if len(film.Genre) == 0 || s.opts.RecommendedFilms <= 0 {
		return out
	}

	// One extra so the film itself can be dropped.
	candidates, err := s.films.FetchList(ctx, domain.QueryParams{
		PageSize: s.opts.RecommendedFilms + 1,
		Sort:     recommendationSort,
		GenreID:  film.Genre[0].ID,
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Str(log.FieldEntityID, film.ID).Msg("failed to load recommended films")
		}
		return out
	}

	for i := range candidates {
		if candidates[i].ID == film.ID {
			continue
		}
		if len(out) == s.opts.RecommendedFilms {
			break
		}
		out = append(out, candidates[i].ToResponse())
	}

	return out
}

func isLocal(url string) bool {
	_, ok := storage.LocalPath(url)
	return ok
}

// GetFilmFileURL returns where the film's media file can be read. A file://
// URL means the file is local and must be served by the caller.
func (s *filmServiceImpl) GetFilmFileURL(ctx context.Context, id string) (string, error) {
	film, err := s.films.FetchByID(ctx, id)
	if err != nil {
		return "", err
	}
	if film.FilePath == nil || *film.FilePath == "" || s.files == nil {
		return "", fmt.Errorf("film %s: %w", id, ErrNoFile)
	}

	ok, err := s.files.Exists(ctx, *film.FilePath)
	if err != nil {
		return "", fmt.Errorf("failed to check film file: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("film %s: %w", id, ErrNoFile)
	}

	return s.files.GetURL(ctx, *film.FilePath, s.opts.URLExpiry)
}

func (s *filmServiceImpl) ListFilms(ctx context.Context, req *domain.ListFilmsRequest) ([]domain.FilmResponse, error) {
	params, err := listParams(&req.PageRequest, s.opts.Paging, domain.FilmSortFields)
	if err != nil {
		return nil, err
	}
	params.GenreID = req.Genre
	params.PersonID = req.Person

	films, err := s.films.FetchList(ctx, params)
	if err != nil {
		return nil, err
	}

	return domain.FilmsToResponse(films), nil
}

func (s *filmServiceImpl) SearchFilms(ctx context.Context, req *domain.SearchFilmsRequest) ([]domain.FilmResponse, error) {
	q := strings.TrimSpace(req.Query)
	if q == "" {
		return nil, ErrBlankQuery
	}

	params, err := listParams(&req.PageRequest, s.opts.Paging, domain.FilmSortFields)
	if err != nil {
		return nil, err
	}
	params.Query = q

	films, err := s.films.FetchList(ctx, params)
	if err != nil {
		return nil, err
	}

	return domain.FilmsToResponse(films), nil
}
