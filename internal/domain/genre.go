package domain

// GenreSortFields lists the genres index fields a listing may be ordered by.
var GenreSortFields = []string{"id", "name"}

// Genre maps to a document of the genres index.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GenreResponse represents a genre in API responses.
type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToResponse converts Genre to GenreResponse.
func (g *Genre) ToResponse() GenreResponse {
	return GenreResponse{ID: g.ID, Name: g.Name}
}
