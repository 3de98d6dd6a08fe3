package domain

// Role is the part a person played in a film.
type Role string

const (
	RoleDirector Role = "director"
	RoleActor    Role = "actor"
	RoleWriter   Role = "writer"
)

// PersonFilm is a film id with the roles one person held in it.
type PersonFilm struct {
	ID    string `json:"id"`
	Roles []Role `json:"roles"`
}

// AttributeRoles derives, for every film, which roles personID held in it.
// Role lists are scanned directors, actors, writers; each role is reported at
// most once per film. Films without a match are kept with an empty role list,
// and the output follows the input order.
func AttributeRoles(films []Film, personID string) []PersonFilm {
	out := make([]PersonFilm, 0, len(films))
	for i := range films {
		f := &films[i]
		pf := PersonFilm{ID: f.ID, Roles: []Role{}}
		for _, rl := range []struct {
			refs []Ref
			role Role
		}{
			{f.Directors, RoleDirector},
			{f.Actors, RoleActor},
			{f.Writers, RoleWriter},
		} {
			if containsID(rl.refs, personID) {
				pf.Roles = append(pf.Roles, rl.role)
			}
		}
		out = append(out, pf)
	}
	return out
}

func containsID(refs []Ref, id string) bool {
	for _, r := range refs {
		if r.ID == id {
			return true
		}
	}
	return false
}
