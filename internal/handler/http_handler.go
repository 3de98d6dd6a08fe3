package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/catalog-service/internal/domain"
	"github.com/weiawesome/catalog-service/internal/service"
	"github.com/weiawesome/catalog-service/pkg/log"
	"github.com/weiawesome/catalog-service/pkg/response"
	"github.com/weiawesome/catalog-service/pkg/storage"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	filmService   service.FilmService
	genreService  service.GenreService
	personService service.PersonService
}

// NewHandler creates a new HTTP handler.
func NewHandler(filmService service.FilmService, genreService service.GenreService, personService service.PersonService) *Handler {
	return &Handler{
		filmService:   filmService,
		genreService:  genreService,
		personService: personService,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		films := api.Group("/films")
		films.GET("", h.ListFilms)
		films.GET("/search", h.SearchFilms)
		films.GET("/:id", h.GetFilm)
		films.GET("/:id/file", h.GetFilmFile)

		genres := api.Group("/genres")
		genres.GET("", h.ListGenres)
		genres.GET("/:id", h.GetGenre)

		persons := api.Group("/persons")
		persons.GET("/search", h.SearchPersons)
		persons.GET("/:id", h.GetPerson)
		persons.GET("/:id/film", h.ListPersonFilms)
	}
}

// ListFilms handles paged film listings filtered by genre and person.
func (h *Handler) ListFilms(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.ListFilmsRequest
	if !bindQuery(c, &req) {
		return
	}

	films, err := h.filmService.ListFilms(ctx, &req)
	if err != nil {
		writeError(c, err, "films not found", "list films failed")
		return
	}

	response.Success(c, films)
}

// SearchFilms handles full-text film search.
func (h *Handler) SearchFilms(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.SearchFilmsRequest
	if !bindQuery(c, &req) {
		return
	}

	films, err := h.filmService.SearchFilms(ctx, &req)
	if err != nil {
		writeError(c, err, "films not found", "search films failed")
		return
	}

	response.Success(c, films)
}

// GetFilm handles film detail.
func (h *Handler) GetFilm(c *gin.Context) {
	id := c.Param("id")
	ctx := log.WithStr(c.Request.Context(), log.FieldEntityID, id)
	c.Request = c.Request.WithContext(ctx)

	film, err := h.filmService.GetFilm(ctx, id)
	if err != nil {
		writeError(c, err, "film not found", "get film failed")
		return
	}

	response.Success(c, film)
}

// GetFilmFile redirects to the film's media file, or serves it when it is
// stored on the local filesystem.
func (h *Handler) GetFilmFile(c *gin.Context) {
	id := c.Param("id")
	ctx := log.WithStr(c.Request.Context(), log.FieldEntityID, id)
	c.Request = c.Request.WithContext(ctx)

	url, err := h.filmService.GetFilmFileURL(ctx, id)
	if err != nil {
		writeError(c, err, "film file not found", "get film file failed")
		return
	}

	if path, ok := storage.LocalPath(url); ok {
		c.File(path)
		return
	}

	c.Redirect(http.StatusFound, url)
}

// ListGenres handles paged genre listings.
func (h *Handler) ListGenres(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.PageRequest
	if !bindQuery(c, &req) {
		return
	}

	genres, err := h.genreService.ListGenres(ctx, &req)
	if err != nil {
		writeError(c, err, "genres not found", "list genres failed")
		return
	}

	response.Success(c, genres)
}

// GetGenre handles genre detail.
func (h *Handler) GetGenre(c *gin.Context) {
	id := c.Param("id")
	ctx := log.WithStr(c.Request.Context(), log.FieldEntityID, id)
	c.Request = c.Request.WithContext(ctx)

	genre, err := h.genreService.GetGenre(ctx, id)
	if err != nil {
		writeError(c, err, "genre not found", "get genre failed")
		return
	}

	response.Success(c, genre)
}

// SearchPersons handles full-text person search.
func (h *Handler) SearchPersons(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.SearchPersonsRequest
	if !bindQuery(c, &req) {
		return
	}

	persons, err := h.personService.SearchPersons(ctx, &req)
	if err != nil {
		writeError(c, err, "persons not found", "search persons failed")
		return
	}

	response.Success(c, persons)
}

// GetPerson handles person detail with the person's films and roles.
func (h *Handler) GetPerson(c *gin.Context) {
	id := c.Param("id")
	ctx := log.WithStr(c.Request.Context(), log.FieldEntityID, id)
	c.Request = c.Request.WithContext(ctx)

	person, err := h.personService.GetPerson(ctx, id)
	if err != nil {
		writeError(c, err, "person not found", "get person failed")
		return
	}

	response.Success(c, person)
}

// ListPersonFilms handles the short film list of a person.
func (h *Handler) ListPersonFilms(c *gin.Context) {
	id := c.Param("id")
	ctx := log.WithStr(c.Request.Context(), log.FieldEntityID, id)
	c.Request = c.Request.WithContext(ctx)

	var req domain.PageRequest
	if !bindQuery(c, &req) {
		return
	}

	films, err := h.personService.ListPersonFilms(ctx, id, &req)
	if err != nil {
		writeError(c, err, "films not found", "list person films failed")
		return
	}

	response.Success(c, films)
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		l := log.Ctx(c.Request.Context())
		l.Warn().Err(err).Msg("invalid request")
		response.BadRequest(c, err.Error())
		return false
	}
	return true
}

// writeError maps service errors to responses. Unexpected errors are logged
// and reported as failMsg without details.
func writeError(c *gin.Context, err error, notFoundMsg, failMsg string) {
	l := log.Ctx(c.Request.Context())

	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNoFile):
		response.NotFound(c, notFoundMsg)
	case errors.Is(err, service.ErrBlankQuery), errors.Is(err, service.ErrPageOutOfRange):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUnavailable):
		l.Warn().Err(err).Msg(failMsg)
		response.ServiceUnavailable(c, "catalog temporarily unavailable")
	default:
		l.Error().Err(err).Msg(failMsg)
		response.InternalError(c, failMsg)
	}
}
