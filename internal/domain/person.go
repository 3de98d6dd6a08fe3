package domain

// PersonSortFields lists the persons index fields a listing may be ordered by.
var PersonSortFields = []string{"id", "name"}

// Person maps to a document of the persons index. Roles are not stored on the
// person; they are derived from film role lists with AttributeRoles.
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PersonResponse represents a person in search results.
type PersonResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// PersonDetailResponse is a person with the films they took part in.
type PersonDetailResponse struct {
	ID       string       `json:"id"`
	FullName string       `json:"full_name"`
	Films    []PersonFilm `json:"films"`
}

// SearchPersonsRequest represents a person search request.
type SearchPersonsRequest struct {
	PageRequest
	Query string `form:"query" binding:"required"`
}

// ToResponse converts Person to PersonResponse.
func (p *Person) ToResponse() PersonResponse {
	return PersonResponse{ID: p.ID, FullName: p.Name}
}

// ToDetailResponse converts Person to PersonDetailResponse with the given films.
func (p *Person) ToDetailResponse(films []PersonFilm) PersonDetailResponse {
	if films == nil {
		films = []PersonFilm{}
	}
	return PersonDetailResponse{ID: p.ID, FullName: p.Name, Films: films}
}
