package handlers

import (
	"errors"
	"net/http"

	"github.com/freetly/backend/internal/models"
	"github.com/freetly/backend/internal/repositories"
	"github.com/freetly/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles the curated feed endpoint
type FeedHandler struct {
	curator        *services.FeedCurator
	userRepository repositories.UserRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(curator *services.FeedCurator, userRepo repositories.UserRepository) *FeedHandler {
	return &FeedHandler{curator: curator, userRepository: userRepo}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns the authenticated user's curated feed: freets whose tag
// matches an active preference category, minus the user's own freets,
// newest-tagged first. Requires initialized preferences.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	freets, err := h.curator.Curate(c.Request().Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrFeedNotInitialized) {
			return echo.NewHTTPError(http.StatusConflict, "Feed preferences not initialized")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

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
	return c.JSON(http.StatusOK, resp)
}
