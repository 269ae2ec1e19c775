package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/freetly/backend/internal/models"
	"github.com/freetly/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// TagHandler handles HTTP requests related to category tags
type TagHandler struct {
	tagRepository   repositories.TagRepository
	freetRepository repositories.FreetRepository
	userRepository  repositories.UserRepository
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(
	tagRepo repositories.TagRepository,
	freetRepo repositories.FreetRepository,
	userRepo repositories.UserRepository,
) *TagHandler {
	return &TagHandler{
		tagRepository:   tagRepo,
		freetRepository: freetRepo,
		userRepository:  userRepo,
	}
}

// RegisterTagRoutes registers tag-related routes
func (h *TagHandler) RegisterTagRoutes(g *echo.Group) {
	g.POST("/freets/:freet_id/tag", h.TagFreet)
	g.GET("/freets/:freet_id/tag", h.GetTagForFreet)
	g.GET("/tags", h.GetTags)
	g.DELETE("/tags/:id", h.DeleteTag)
}

// TagResponse is a tag with its freet and author resolved
type TagResponse struct {
	models.Tag
	Freet  *models.Freet      `json:"freet,omitempty"`
	Author models.UserCompact `json:"author"`
}

// TagFreet assigns a category label to a freet. Only the freet's author may
// tag it, and a freet carries at most one tag.
func (h *TagHandler) TagFreet(c echo.Context) error {
	var req models.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID := currentUserID(c)
	freetID := c.Param("freet_id")

	freet, err := h.freetRepository.GetFreetByID(c.Request().Context(), freetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Freet not found")
	}
	if freet.AuthorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author can tag this freet")
	}

	if _, err := h.tagRepository.GetTagByFreet(freetID); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Freet is already tagged")
	}

	tag := &models.Tag{
		FreetID:  freetID,
		Label:    models.TagLabel(req.Label),
		AuthorID: userID,
	}
	if err := h.tagRepository.CreateTag(tag); err != nil {
		if errors.Is(err, repositories.ErrTagExists) {
			return echo.NewHTTPError(http.StatusConflict, "Freet is already tagged")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := TagResponse{Tag: *tag, Freet: freet}
	if author, err := h.userRepository.GetUserByID(userID); err == nil {
		resp.Author = author.ToCompact()
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetTagForFreet retrieves the tag on a freet, if any
func (h *TagHandler) GetTagForFreet(c echo.Context) error {
	freetID := c.Param("freet_id")
	freet, err := h.freetRepository.GetFreetByID(c.Request().Context(), freetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Freet not found")
	}

	tag, err := h.tagRepository.GetTagByFreet(freetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Freet is not tagged")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := TagResponse{Tag: *tag, Freet: freet}
	if author, err := h.userRepository.GetUserByID(tag.AuthorID); err == nil {
		resp.Author = author.ToCompact()
	}
	return c.JSON(http.StatusOK, resp)
}

// GetTags lists tags. With ?label= it filters by that label newest first,
// 404ing when nothing carries the label; without it, every tag is returned
// sorted alphabetically by label.
func (h *TagHandler) GetTags(c echo.Context) error {
	var tags []models.Tag
	var err error

	if raw := c.QueryParam("label"); raw != "" {
		label := models.TagLabel(raw)
		if !label.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Tag label must match exactly one of: Politics, Comedy, Sports, Engineering, Happy, Sad, News")
		}
		tags, err = h.tagRepository.GetTagsByLabel(label)
		if err == nil && len(tags) == 0 {
			return echo.NewHTTPError(http.StatusNotFound, "No freets are tagged with this label")
		}
	} else {
		tags, err = h.tagRepository.GetAllTags()
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.enrich(c, tags))
}

// DeleteTag removes a tag; only its author may delete it
func (h *TagHandler) DeleteTag(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid tag ID")
	}

	tag, err := h.tagRepository.GetTagByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Tag not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if tag.AuthorID != currentUserID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author can delete this tag")
	}

	if err := h.tagRepository.DeleteTag(tag.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TagHandler) enrich(c echo.Context, tags []models.Tag) []TagResponse {
	freetIDs := make([]string, len(tags))
	userIDs := make([]uint, len(tags))
	for i, t := range tags {
		freetIDs[i] = t.FreetID
		userIDs[i] = t.AuthorID
	}
	freetsByID, err := h.freetRepository.GetFreetsByIDs(c.Request().Context(), freetIDs)
	if err != nil {
		freetsByID = map[string]models.Freet{}
	}
	authors, err := compactAuthors(h.userRepository, userIDs)
	if err != nil {
		authors = map[uint]models.UserCompact{}
	}

	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = TagResponse{Tag: t, Author: authors[t.AuthorID]}
		if freet, ok := freetsByID[t.FreetID]; ok {
			f := freet
			resp[i].Freet = &f
		}
	}
	return resp
}
