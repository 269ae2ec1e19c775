package handlers

import (
	"errors"
	"net/http"

	"github.com/freetly/backend/internal/models"
	"github.com/freetly/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ReactionHandler handles HTTP requests related to reactions
type ReactionHandler struct {
	reactionRepository repositories.ReactionRepository
	freetRepository    repositories.FreetRepository
	userRepository     repositories.UserRepository
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(
	reactionRepo repositories.ReactionRepository,
	freetRepo repositories.FreetRepository,
	userRepo repositories.UserRepository,
) *ReactionHandler {
	return &ReactionHandler{
		reactionRepository: reactionRepo,
		freetRepository:    freetRepo,
		userRepository:     userRepo,
	}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/freets/:freet_id/reactions", h.React)
	g.DELETE("/freets/:freet_id/reactions", h.Unreact)
	g.GET("/freets/:freet_id/reactions", h.GetReactionsForFreet)
	g.GET("/freets/:freet_id/reactions/count", h.GetReactionsCount)
	g.GET("/reactions", h.GetAllReactions)
}

// ReactionResponse is a reaction with its freet and author resolved
type ReactionResponse struct {
	models.Reaction
	Freet  *models.Freet      `json:"freet,omitempty"`
	Author models.UserCompact `json:"author"`
}

// React records the authenticated user's reaction on a freet. Reacting to
// your own freet is forbidden.
func (h *ReactionHandler) React(c echo.Context) error {
	userID := currentUserID(c)
	freetID := c.Param("freet_id")

	freet, err := h.freetRepository.GetFreetByID(c.Request().Context(), freetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Freet not found")
	}
	if freet.AuthorID == userID {
		return echo.NewHTTPError(http.StatusForbidden, "Authors cannot react to their own freets")
	}

	hasReacted, err := h.reactionRepository.HasUserReacted(freetID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hasReacted {
		return echo.NewHTTPError(http.StatusConflict, "Freet already reacted to by this user")
	}

	reaction := &models.Reaction{FreetID: freetID, UserID: userID}
	if err := h.reactionRepository.CreateReaction(reaction); err != nil {
		if errors.Is(err, repositories.ErrReactionExists) {
			return echo.NewHTTPError(http.StatusConflict, "Freet already reacted to by this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := ReactionResponse{Reaction: *reaction, Freet: freet}
	if author, err := h.userRepository.GetUserByID(userID); err == nil {
		resp.Author = author.ToCompact()
	}
	return c.JSON(http.StatusCreated, resp)
}

// Unreact removes the authenticated user's reaction on a freet
func (h *ReactionHandler) Unreact(c echo.Context) error {
	userID := currentUserID(c)
	freetID := c.Param("freet_id")

	if _, err := h.freetRepository.GetFreetByID(c.Request().Context(), freetID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Freet not found")
	}

	if err := h.reactionRepository.DeleteReaction(freetID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Reaction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetReactionsForFreet lists the reactions on a freet with authors resolved
func (h *ReactionHandler) GetReactionsForFreet(c echo.Context) error {
	freetID := c.Param("freet_id")
	freet, err := h.freetRepository.GetFreetByID(c.Request().Context(), freetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Freet not found")
	}

	reactions, err := h.reactionRepository.GetReactionsByFreet(freetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.enrich(reactions, map[string]*models.Freet{freetID: freet}))
}

// GetReactionsCount returns how many reactions a freet has
func (h *ReactionHandler) GetReactionsCount(c echo.Context) error {
	freetID := c.Param("freet_id")
	if _, err := h.freetRepository.GetFreetByID(c.Request().Context(), freetID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Freet not found")
	}
	count, err := h.reactionRepository.GetReactionsCountByFreet(freetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"freet_id": freetID, "reactions_count": count})
}

// GetAllReactions lists every reaction with freets and authors resolved
func (h *ReactionHandler) GetAllReactions(c echo.Context) error {
	reactions, err := h.reactionRepository.GetAllReactions()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ids := make([]string, len(reactions))
	for i, r := range reactions {
		ids[i] = r.FreetID
	}
	freetsByID, err := h.freetRepository.GetFreetsByIDs(c.Request().Context(), ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	freets := make(map[string]*models.Freet, len(freetsByID))
	for id := range freetsByID {
		f := freetsByID[id]
		freets[id] = &f
	}
	return c.JSON(http.StatusOK, h.enrich(reactions, freets))
}

func (h *ReactionHandler) enrich(reactions []models.Reaction, freets map[string]*models.Freet) []ReactionResponse {
	ids := make([]uint, len(reactions))
	for i, r := range reactions {
		ids[i] = r.UserID
	}
	authors, err := compactAuthors(h.userRepository, ids)
	if err != nil {
		authors = map[uint]models.UserCompact{}
	}
	resp := make([]ReactionResponse, len(reactions))
	for i, r := range reactions {
		resp[i] = ReactionResponse{Reaction: r, Freet: freets[r.FreetID], Author: authors[r.UserID]}
	}
	return resp
}
