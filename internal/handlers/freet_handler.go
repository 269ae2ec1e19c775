package handlers

import (
	"net/http"

	"github.com/freetly/backend/internal/models"
	"github.com/freetly/backend/internal/repositories"
	"github.com/freetly/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FreetHandler handles HTTP requests related to freets
type FreetHandler struct {
	freetRepository repositories.FreetRepository
	userRepository  repositories.UserRepository
	cascade         *services.CascadeService
}

// NewFreetHandler creates a new FreetHandler
func NewFreetHandler(
	freetRepo repositories.FreetRepository,
	userRepo repositories.UserRepository,
	cascade *services.CascadeService,
) *FreetHandler {
	return &FreetHandler{
		freetRepository: freetRepo,
		userRepository:  userRepo,
		cascade:         cascade,
	}
}

// RegisterFreetRoutes registers freet-related routes
func (h *FreetHandler) RegisterFreetRoutes(g *echo.Group) {
	g.POST("/freets", h.CreateFreet)
	g.GET("/freets", h.GetAllFreets)
	g.GET("/freets/:freet_id", h.GetFreet)
	g.PUT("/freets/:freet_id", h.UpdateFreet)
	g.DELETE("/freets/:freet_id", h.DeleteFreet)
	g.GET("/users/:id/freets", h.GetFreetsByAuthor)
}

// FreetResponse is a freet with its author resolved to display form
type FreetResponse struct {
	models.Freet
	Author models.UserCompact `json:"author"`
}

// CreateFreet publishes a new freet
func (h *FreetHandler) CreateFreet(c echo.Context) error {
	var req models.CreateFreetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	freet := &models.Freet{
		AuthorID: currentUserID(c),
		Content:  req.Content,
	}
	if err := h.freetRepository.CreateFreet(c.Request().Context(), freet); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, freet)
}

// GetFreet retrieves a single freet with author display data
func (h *FreetHandler) GetFreet(c echo.Context) error {
	freet, err := h.freetRepository.GetFreetByID(c.Request().Context(), c.Param("freet_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Freet not found")
	}
	resp := FreetResponse{Freet: *freet}
	if author, err := h.userRepository.GetUserByID(freet.AuthorID); err == nil {
		resp.Author = author.ToCompact()
	}
	return c.JSON(http.StatusOK, resp)
}

// GetAllFreets retrieves every freet, newest first, with authors resolved
func (h *FreetHandler) GetAllFreets(c echo.Context) error {
	freets, err := h.freetRepository.GetAllFreets(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.enrich(freets))
}

// GetFreetsByAuthor retrieves one user's freets, newest first
func (h *FreetHandler) GetFreetsByAuthor(c echo.Context) error {
	id, err := parseUserID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	freets, err := h.freetRepository.GetFreetsByAuthor(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.enrich(freets))
}

// UpdateFreet edits a freet's content; only the author may edit
func (h *FreetHandler) UpdateFreet(c echo.Context) error {
	var req models.UpdateFreetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	freetID := c.Param("freet_id")
	freet, err := h.freetRepository.GetFreetByID(c.Request().Context(), freetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Freet not found")
	}
	if freet.AuthorID != currentUserID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author can edit this freet")
	}

	updated, err := h.freetRepository.UpdateFreet(c.Request().Context(), freetID, req.Content)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteFreet removes a freet and cascades into its reactions, tag and
// expansion; only the author may delete
func (h *FreetHandler) DeleteFreet(c echo.Context) error {
	freetID := c.Param("freet_id")
	freet, err := h.freetRepository.GetFreetByID(c.Request().Context(), freetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Freet not found")
	}
	if freet.AuthorID != currentUserID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author can delete this freet")
	}

	if err := h.freetRepository.DeleteFreet(c.Request().Context(), freetID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.cascade.OnFreetDeleted(c.Request().Context(), freetID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FreetHandler) enrich(freets []models.Freet) []FreetResponse {
	ids := make([]uint, len(freets))
	for i, f := range freets {
		ids[i] = f.AuthorID
	}
	authors, err := compactAuthors(h.userRepository, ids)
	if err != nil {
		authors = map[uint]models.UserCompact{}
	}
	resp := make([]FreetResponse, len(freets))
	for i, f := range freets {
		resp[i] = FreetResponse{Freet: f, Author: authors[f.AuthorID]}
	}
	return resp
}
