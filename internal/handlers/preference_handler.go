package handlers

import (
	"errors"
	"net/http"

	"github.com/freetly/backend/internal/models"
	"github.com/freetly/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PreferenceHandler handles HTTP requests related to feed preferences
type PreferenceHandler struct {
	preferenceRepository repositories.PreferenceRepository
}

// NewPreferenceHandler creates a new PreferenceHandler
func NewPreferenceHandler(preferenceRepo repositories.PreferenceRepository) *PreferenceHandler {
	return &PreferenceHandler{preferenceRepository: preferenceRepo}
}

// RegisterPreferenceRoutes registers preference-related routes
func (h *PreferenceHandler) RegisterPreferenceRoutes(g *echo.Group) {
	g.GET("/feed/preferences", h.GetPreferences)
	g.POST("/feed/preferences", h.CreatePreferences)
	g.PUT("/feed/preferences", h.UpdatePreferences)
}

// GetPreferences retrieves the authenticated user's feed preferences
func (h *PreferenceHandler) GetPreferences(c echo.Context) error {
	preference, err := h.preferenceRepository.GetByUser(currentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Feed preferences not initialized")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, preference)
}

// CreatePreferences initializes the authenticated user's feed preferences.
// All six flags must be supplied as "Yes"/"No"; a second initialization
// fails with a conflict.
func (h *PreferenceHandler) CreatePreferences(c echo.Context) error {
	var req models.PreferenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID := currentUserID(c)
	if _, err := h.preferenceRepository.GetByUser(userID); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Feed preferences already initialized")
	}

	flags := req.Flags()
	preference := &models.Preference{
		UserID:      userID,
		Politics:    flags.Politics,
		Comedy:      flags.Comedy,
		Sports:      flags.Sports,
		Engineering: flags.Engineering,
		Happy:       flags.Happy,
		Sad:         flags.Sad,
	}
	if err := h.preferenceRepository.CreatePreference(preference); err != nil {
		if errors.Is(err, repositories.ErrPreferenceExists) {
			return echo.NewHTTPError(http.StatusConflict, "Feed preferences already initialized")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, preference)
}

// UpdatePreferences overwrites all six flags of the authenticated user's
// existing feed preferences.
func (h *PreferenceHandler) UpdatePreferences(c echo.Context) error {
	var req models.PreferenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	preference, err := h.preferenceRepository.UpdatePreference(currentUserID(c), req.Flags())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusConflict, "Feed preferences not initialized")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, preference)
}
