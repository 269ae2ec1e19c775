package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/freetly/backend/internal/models"
	"github.com/freetly/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// maxExpansionWords caps how long a full story may run.
const maxExpansionWords = 1000

// ExpansionHandler handles HTTP requests related to full-story expansions
type ExpansionHandler struct {
	expansionRepository repositories.ExpansionRepository
	freetRepository     repositories.FreetRepository
	userRepository      repositories.UserRepository
}

// NewExpansionHandler creates a new ExpansionHandler
func NewExpansionHandler(
	expansionRepo repositories.ExpansionRepository,
	freetRepo repositories.FreetRepository,
	userRepo repositories.UserRepository,
) *ExpansionHandler {
	return &ExpansionHandler{
		expansionRepository: expansionRepo,
		freetRepository:     freetRepo,
		userRepository:      userRepo,
	}
}

// RegisterExpansionRoutes registers expansion-related routes
func (h *ExpansionHandler) RegisterExpansionRoutes(g *echo.Group) {
	g.POST("/freets/:freet_id/expansion", h.ExpandFreet)
	g.GET("/freets/:freet_id/expansion", h.GetExpansionForFreet)
	g.GET("/expansions", h.GetAllExpansions)
	g.PUT("/expansions/:id/visibility", h.ToggleVisibility)
	g.DELETE("/expansions/:id", h.DeleteExpansion)
}

// ExpansionResponse is an expansion with its freet and author resolved
type ExpansionResponse struct {
	models.Expansion
	Freet  *models.Freet      `json:"freet,omitempty"`
	Author models.UserCompact `json:"author"`
}

// ExpandFreet attaches a full story to a freet. Only the freet's author may
// expand it, at most once; the visibility set starts empty.
func (h *ExpansionHandler) ExpandFreet(c echo.Context) error {
	var req models.CreateExpansionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Body) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Expansion body must be at least one character long")
	}
	if len(strings.Fields(req.Body)) > maxExpansionWords {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Expansion body must be no more than 1,000 words")
	}

	userID := currentUserID(c)
	freetID := c.Param("freet_id")

	freet, err := h.freetRepository.GetFreetByID(c.Request().Context(), freetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Freet not found")
	}
	if freet.AuthorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author can expand this freet")
	}

	if _, err := h.expansionRepository.GetExpansionByFreet(freetID); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Freet already has an expansion")
	}

	expansion := &models.Expansion{
		FreetID:  freetID,
		AuthorID: userID,
		Body:     req.Body,
	}
	if err := h.expansionRepository.CreateExpansion(expansion); err != nil {
		if errors.Is(err, repositories.ErrExpansionExists) {
			return echo.NewHTTPError(http.StatusConflict, "Freet already has an expansion")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := ExpansionResponse{Expansion: *expansion, Freet: freet}
	if author, err := h.userRepository.GetUserByID(userID); err == nil {
		resp.Author = author.ToCompact()
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetExpansionForFreet retrieves the expansion on a freet, if any
func (h *ExpansionHandler) GetExpansionForFreet(c echo.Context) error {
	freetID := c.Param("freet_id")
	freet, err := h.freetRepository.GetFreetByID(c.Request().Context(), freetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Freet not found")
	}

	expansion, err := h.expansionRepository.GetExpansionByFreet(freetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Freet has no expansion")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := ExpansionResponse{Expansion: *expansion, Freet: freet}
	if author, err := h.userRepository.GetUserByID(expansion.AuthorID); err == nil {
		resp.Author = author.ToCompact()
	}
	return c.JSON(http.StatusOK, resp)
}

// GetAllExpansions lists every expansion with freets and authors resolved
func (h *ExpansionHandler) GetAllExpansions(c echo.Context) error {
	expansions, err := h.expansionRepository.GetAllExpansions()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	freetIDs := make([]string, len(expansions))
	userIDs := make([]uint, len(expansions))
	for i, e := range expansions {
		freetIDs[i] = e.FreetID
		userIDs[i] = e.AuthorID
	}
	freetsByID, err := h.freetRepository.GetFreetsByIDs(c.Request().Context(), freetIDs)
	if err != nil {
		freetsByID = map[string]models.Freet{}
	}
	authors, err := compactAuthors(h.userRepository, userIDs)
	if err != nil {
		authors = map[uint]models.UserCompact{}
	}

	resp := make([]ExpansionResponse, len(expansions))
	for i, e := range expansions {
		resp[i] = ExpansionResponse{Expansion: e, Author: authors[e.AuthorID]}
		if freet, ok := freetsByID[e.FreetID]; ok {
			f := freet
			resp[i].Freet = &f
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// ToggleVisibility flips the authenticated user's membership in the
// expansion's visibility set. Any signed-in viewer controls their own
// membership; toggling twice restores the original state.
func (h *ExpansionHandler) ToggleVisibility(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid expansion ID")
	}

	expansion, err := h.expansionRepository.ToggleView(uint(id), currentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Expansion not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, expansion)
}

// DeleteExpansion removes an expansion; only its author may delete it
func (h *ExpansionHandler) DeleteExpansion(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid expansion ID")
	}

	expansion, err := h.expansionRepository.GetExpansionByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Expansion not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if expansion.AuthorID != currentUserID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author can delete this expansion")
	}

	if err := h.expansionRepository.DeleteExpansion(expansion.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
