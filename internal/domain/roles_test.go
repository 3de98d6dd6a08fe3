package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeRolesDirectorAndWriter(t *testing.T) {
	film := Film{
		ID:        "f1",
		Directors: []Ref{{ID: "p1", Name: "Ann"}},
		Actors:    []Ref{{ID: "p2", Name: "Bob"}},
		Writers:   []Ref{{ID: "p3", Name: "Ben"}, {ID: "p1", Name: "Ann"}},
	}

	got := AttributeRoles([]Film{film}, "p1")
	require.Len(t, got, 1)
	assert.Equal(t, "f1", got[0].ID)
	assert.Equal(t, []Role{RoleDirector, RoleWriter}, got[0].Roles)
}

func TestAttributeRolesAllThreeInOrder(t *testing.T) {
	film := Film{
		ID:        "f1",
		Writers:   []Ref{{ID: "p1"}},
		Actors:    []Ref{{ID: "p1"}},
		Directors: []Ref{{ID: "p1"}},
	}

	got := AttributeRoles([]Film{film}, "p1")
	require.Len(t, got, 1)
	assert.Equal(t, []Role{RoleDirector, RoleActor, RoleWriter}, got[0].Roles)
}

func TestAttributeRolesDuplicateIDReportedOnce(t *testing.T) {
	film := Film{
		ID:     "f1",
		Actors: []Ref{{ID: "p1"}, {ID: "p1"}},
	}

	got := AttributeRoles([]Film{film}, "p1")
	require.Len(t, got, 1)
	assert.Equal(t, []Role{RoleActor}, got[0].Roles)
}

func TestAttributeRolesKeepsNonMatchingFilmsInOrder(t *testing.T) {
	films := []Film{
		{ID: "a", Actors: []Ref{{ID: "p1"}}},
		{ID: "b", Actors: []Ref{{ID: "p2"}}},
		{ID: "c", Writers: []Ref{{ID: "p1"}}},
	}

	got := AttributeRoles(films, "p1")
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
	assert.Equal(t, []Role{RoleActor}, got[0].Roles)
	assert.NotNil(t, got[1].Roles)
	assert.Empty(t, got[1].Roles)
	assert.Equal(t, []Role{RoleWriter}, got[2].Roles)
}

func TestAttributeRolesEmptyInput(t *testing.T) {
	got := AttributeRoles(nil, "p1")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
