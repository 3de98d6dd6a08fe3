package domain

import "time"

// FilmSortFields lists the movies index fields a listing may be ordered by.
var FilmSortFields = []string{"id", "title", "imdb_rating", "creation_date"}

// Ref is an {id, name} pair embedded in film documents (genres and people).
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Film maps to a document of the movies index.
// A person may appear in several role lists of the same film.
type Film struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	IMDBRating   *float64   `json:"imdb_rating,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Genre        []Ref      `json:"genre,omitempty"`
	Directors    []Ref      `json:"directors,omitempty"`
	Actors       []Ref      `json:"actors,omitempty"`
	Writers      []Ref      `json:"writers,omitempty"`
	FilePath     *string    `json:"file_path,omitempty"`
	CreationDate *time.Time `json:"creation_date,omitempty"`
}

// FilmResponse is the short film shape used by listings.
type FilmResponse struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	IMDBRating *float64 `json:"imdb_rating"`
}

// FilmDetailResponse is the full film shape returned by the detail endpoint.
type FilmDetailResponse struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	IMDBRating       *float64       `json:"imdb_rating"`
	Description      *string        `json:"description"`
	Genre            []Ref          `json:"genre"`
	Directors        []Ref          `json:"directors"`
	Actors           []Ref          `json:"actors"`
	Writers          []Ref          `json:"writers"`
	FilePath         *string        `json:"file_path,omitempty"`
	FileURL          string         `json:"file_url,omitempty"`
	CreationDate     *time.Time     `json:"creation_date,omitempty"`
	RecommendedFilms []FilmResponse `json:"recommended_films"`
}

// ListFilmsRequest represents a film listing request.
type ListFilmsRequest struct {
	PageRequest
	Genre  string `form:"genre"`
	Person string `form:"person"`
}

// SearchFilmsRequest represents a full-text film search request.
type SearchFilmsRequest struct {
	PageRequest
	Query string `form:"query" binding:"required"`
}

// ToResponse converts Film to FilmResponse.
func (f *Film) ToResponse() FilmResponse {
	return FilmResponse{
		ID:         f.ID,
		Title:      f.Title,
		IMDBRating: f.IMDBRating,
	}
}

// ToDetailResponse converts Film to FilmDetailResponse without recommendations.
func (f *Film) ToDetailResponse() FilmDetailResponse {
	return FilmDetailResponse{
		ID:               f.ID,
		Title:            f.Title,
		IMDBRating:       f.IMDBRating,
		Description:      f.Description,
		Genre:            nonNilRefs(f.Genre),
		Directors:        nonNilRefs(f.Directors),
		Actors:           nonNilRefs(f.Actors),
		Writers:          nonNilRefs(f.Writers),
		FilePath:         f.FilePath,
		CreationDate:     f.CreationDate,
		RecommendedFilms: []FilmResponse{},
	}
}

// FilmsToResponse converts a film list to its short form, keeping order.
func FilmsToResponse(films []Film) []FilmResponse {
	out := make([]FilmResponse, len(films))
	for i := range films {
		out[i] = films[i].ToResponse()
	}
	return out
}

func nonNilRefs(refs []Ref) []Ref {
	if refs == nil {
		return []Ref{}
	}
	return refs
}
