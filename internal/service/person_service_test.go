package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/catalog-service/internal/domain"
)

var (
	lucas = domain.Ref{ID: "p-lucas", Name: "George Lucas"}
	ford  = domain.Ref{ID: "p-ford", Name: "Harrison Ford"}
)

func seedPeople(t *testing.T, s *stores) {
	t.Helper()
	s.backend.add(t, personsIndex, domain.Person{ID: lucas.ID, Name: lucas.Name})
	s.backend.add(t, personsIndex, domain.Person{ID: ford.ID, Name: ford.Name})
	s.backend.add(t, personsIndex, domain.Person{ID: "p-idle", Name: "Idle Person"})

	s.backend.add(t, moviesIndex, domain.Film{
		ID:        "sw",
		Title:     "Star Wars",
		Directors: []domain.Ref{lucas},
		Writers:   []domain.Ref{lucas},
		Actors:    []domain.Ref{ford},
	})
	s.backend.add(t, moviesIndex, domain.Film{
		ID:      "ij",
		Title:   "Indiana Jones",
		Actors:  []domain.Ref{ford},
		Writers: []domain.Ref{lucas},
	})
	s.backend.add(t, moviesIndex, domain.Film{
		ID:     "bt",
		Title:  "Blade Theory",
		Actors: []domain.Ref{ford},
	})
}

func newPersonService(s *stores) PersonService {
	return NewPersonService(s.persons, s.films, PersonOptions{Paging: testPaging, FilmsLimit: 100})
}

func TestGetPersonAttributesRoles(t *testing.T) {
	s := newStores(t)
	seedPeople(t, s)
	svc := newPersonService(s)

	person, err := svc.GetPerson(context.Background(), lucas.ID)
	require.NoError(t, err)

	assert.Equal(t, lucas.ID, person.ID)
	assert.Equal(t, lucas.Name, person.FullName)
	assert.Equal(t, []domain.PersonFilm{
		{ID: "sw", Roles: []domain.Role{domain.RoleDirector, domain.RoleWriter}},
		{ID: "ij", Roles: []domain.Role{domain.RoleWriter}},
	}, person.Films)
}

func TestGetPersonWithoutFilms(t *testing.T) {
	s := newStores(t)
	seedPeople(t, s)
	svc := newPersonService(s)

	person, err := svc.GetPerson(context.Background(), "p-idle")
	require.NoError(t, err)
	assert.NotNil(t, person.Films)
	assert.Empty(t, person.Films)
}

func TestGetPersonNotFound(t *testing.T) {
	s := newStores(t)
	seedPeople(t, s)
	svc := newPersonService(s)

	_, err := svc.GetPerson(context.Background(), "p-nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPersonUnavailable(t *testing.T) {
	s := newStores(t)
	s.backend.err = fmt.Errorf("%w: timeout", ErrUnavailable)
	svc := newPersonService(s)

	_, err := svc.GetPerson(context.Background(), lucas.ID)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGetPersonCapsFilms(t *testing.T) {
	s := newStores(t)
	seedPeople(t, s)
	svc := NewPersonService(s.persons, s.films, PersonOptions{Paging: testPaging, FilmsLimit: 2})

	person, err := svc.GetPerson(context.Background(), ford.ID)
	require.NoError(t, err)
	assert.Len(t, person.Films, 2)
	for _, f := range person.Films {
		assert.Equal(t, []domain.Role{domain.RoleActor}, f.Roles)
	}
}

func TestListPersonFilms(t *testing.T) {
	s := newStores(t)
	seedPeople(t, s)
	svc := newPersonService(s)
	ctx := context.Background()

	films, err := svc.ListPersonFilms(ctx, ford.ID, &domain.PageRequest{Sort: "title"})
	require.NoError(t, err)
	require.Len(t, films, 3)
	assert.Equal(t, "Blade Theory", films[0].Title)
	assert.Equal(t, "Star Wars", films[2].Title)

	_, err = svc.ListPersonFilms(ctx, "p-idle", &domain.PageRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchPersons(t *testing.T) {
	s := newStores(t)
	seedPeople(t, s)
	svc := newPersonService(s)
	ctx := context.Background()

	persons, err := svc.SearchPersons(ctx, &domain.SearchPersonsRequest{Query: "ford"})
	require.NoError(t, err)
	assert.Equal(t, []domain.PersonResponse{{ID: ford.ID, FullName: ford.Name}}, persons)

	_, err = svc.SearchPersons(ctx, &domain.SearchPersonsRequest{Query: "\t"})
	assert.ErrorIs(t, err, ErrBlankQuery)
}
