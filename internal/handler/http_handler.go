package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Klyucherov/Async-API-sprint-1/internal/domain"
	"github.com/Klyucherov/Async-API-sprint-1/internal/query"
	"github.com/Klyucherov/Async-API-sprint-1/internal/service"
	"github.com/Klyucherov/Async-API-sprint-1/pkg/log"
	"github.com/Klyucherov/Async-API-sprint-1/pkg/response"
)

// Handler handles HTTP requests for the catalog read API.
type Handler struct {
	films   service.FilmService
	persons service.PersonService
	genres  service.GenreService
}

// NewHandler creates a new HTTP handler.
func NewHandler(films service.FilmService, persons service.PersonService, genres service.GenreService) *Handler {
	return &Handler{
		films:   films,
		persons: persons,
		genres:  genres,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	films := api.Group("/films")
	{
		films.GET("", h.FilmList)
		films.GET("/search", h.FilmSearch)
		films.GET("/:id", h.FilmDetails)
	}

	persons := api.Group("/persons")
	{
		persons.GET("/search", h.PersonSearch)
		persons.GET("/:id", h.PersonDetails)
		persons.GET("/:id/film", h.PersonFilms)
	}

	genres := api.Group("/genres")
	{
		genres.GET("", h.GenreList)
		genres.GET("/:id", h.GenreDetails)
	}
}

// FilmDetails returns one film by identifier.
func (h *Handler) FilmDetails(c *gin.Context) {
	ctx := c.Request.Context()

	film, err := h.films.ByID(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "film not found", "film details failed")
		return
	}

	response.Success(c, film)
}

// FilmList returns films sorted by rating or title, optionally filtered to
// one genre.
func (h *Handler) FilmList(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.FilmListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		l.Warn().Err(err).Msg("invalid film list request")
		response.BadRequest(c, err.Error())
		return
	}

	films, err := h.films.List(ctx, req.Sort, req.GenreID, req.Page, req.Size)
	if err != nil {
		h.respondError(c, err, "films not found", "film list failed")
		return
	}

	response.Success(c, films)
}

// FilmSearch returns films matching a full-text query.
func (h *Handler) FilmSearch(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		l.Warn().Err(err).Msg("invalid film search request")
		response.BadRequest(c, err.Error())
		return
	}

	films, err := h.films.Search(ctx, req.Query, req.Page, req.Size)
	if err != nil {
		h.respondError(c, err, "films not found", "film search failed")
		return
	}

	response.Success(c, films)
}

// PersonDetails returns one person by identifier.
func (h *Handler) PersonDetails(c *gin.Context) {
	ctx := c.Request.Context()

	person, err := h.persons.ByID(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "person not found", "person details failed")
		return
	}

	response.Success(c, person)
}

// PersonSearch returns persons matching a full-text query.
func (h *Handler) PersonSearch(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		l.Warn().Err(err).Msg("invalid person search request")
		response.BadRequest(c, err.Error())
		return
	}

	persons, err := h.persons.Search(ctx, req.Query, req.Page, req.Size)
	if err != nil {
		h.respondError(c, err, "persons not found", "person search failed")
		return
	}

	response.Success(c, persons)
}

// PersonFilms returns the films a person participated in.
func (h *Handler) PersonFilms(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		l.Warn().Err(err).Msg("invalid person films request")
		response.BadRequest(c, err.Error())
		return
	}

	films, err := h.films.ByPerson(ctx, c.Param("id"), req.Page, req.Size)
	if err != nil {
		h.respondError(c, err, "films not found", "person films failed")
		return
	}

	response.Success(c, films)
}

// GenreDetails returns one genre by identifier.
func (h *Handler) GenreDetails(c *gin.Context) {
	ctx := c.Request.Context()

	genre, err := h.genres.ByID(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "genre not found", "genre details failed")
		return
	}

	response.Success(c, genre)
}

// GenreList returns genres with pagination.
func (h *Handler) GenreList(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		l.Warn().Err(err).Msg("invalid genre list request")
		response.BadRequest(c, err.Error())
		return
	}

	genres, err := h.genres.List(ctx, req.Page, req.Size)
	if err != nil {
		h.respondError(c, err, "genres not found", "genre list failed")
		return
	}

	response.Success(c, genres)
}

// respondError maps service errors onto HTTP responses: absent entities
// become 404, rejected parameters 400, everything else 500.
func (h *Handler) respondError(c *gin.Context, err error, notFoundMsg, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(c, notFoundMsg)
	case errors.Is(err, query.ErrInvalidSort):
		response.BadRequest(c, err.Error())
	default:
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg(logMsg)
		response.InternalError(c, logMsg)
	}
}
