package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/weiawesome/catalog-service/internal/domain"
	"github.com/weiawesome/catalog-service/internal/repository"
)

// PersonOptions configures the person service.
type PersonOptions struct {
	Paging
	// FilmsLimit caps the films listed on a person detail.
	FilmsLimit int
}

type personServiceImpl struct {
	persons repository.Store[domain.Person]
	films   repository.Store[domain.Film]
	opts    PersonOptions
}

// NewPersonService creates a new person service.
func NewPersonService(persons repository.Store[domain.Person], films repository.Store[domain.Film], opts PersonOptions) PersonService {
	return &personServiceImpl{
		persons: persons,
		films:   films,
		opts:    opts,
	}
}

func (s *personServiceImpl) GetPerson(ctx context.Context, id string) (*domain.PersonDetailResponse, error) {
	var (
		person domain.Person
		films  []domain.Film
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		person, err = s.persons.FetchByID(gCtx, id)
		return err
	})

	g.Go(func() error {
		var err error
		films, err = s.films.FetchList(gCtx, domain.QueryParams{
			PageSize: s.opts.FilmsLimit,
			PersonID: id,
		})
		if errors.Is(err, ErrNotFound) {
			// A person may have no films.
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := person.ToDetailResponse(domain.AttributeRoles(films, id))
	return &resp, nil
}

func (s *personServiceImpl) ListPersonFilms(ctx context.Context, id string, req *domain.PageRequest) ([]domain.FilmResponse, error) {
	params, err := listParams(req, s.opts.Paging, domain.FilmSortFields)
	if err != nil {
		return nil, err
	}
	params.PersonID = id

	films, err := s.films.FetchList(ctx, params)
	if err != nil {
		return nil, err
	}

	return domain.FilmsToResponse(films), nil
}

func (s *personServiceImpl) SearchPersons(ctx context.Context, req *domain.SearchPersonsRequest) ([]domain.PersonResponse, error) {
	q := strings.TrimSpace(req.Query)
	if q == "" {
		return nil, ErrBlankQuery
	}

	params, err := listParams(&req.PageRequest, s.opts.Paging, domain.PersonSortFields)
	if err != nil {
		return nil, err
	}
	params.Query = q

	persons, err := s.persons.FetchList(ctx, params)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PersonResponse, len(persons))
	for i := range persons {
		out[i] = persons[i].ToResponse()
	}
	return out, nil
}
