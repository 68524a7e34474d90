package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lumina-backend/internal/middleware"
	"lumina-backend/internal/models"
	"lumina-backend/internal/session"
	"lumina-backend/internal/store"
)

// ProfileHandler serves the account profile and its saved presets.
type ProfileHandler struct {
	repo     store.Repository
	sessions *session.Manager
}

func NewProfileHandler(repo store.Repository, sessions *session.Manager) *ProfileHandler {
	return &ProfileHandler{repo: repo, sessions: sessions}
}

func (h *ProfileHandler) account(c *gin.Context) (*models.Account, uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return nil, uuid.Nil, false
	}

	account, err := h.repo.GetAccount(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "account not found"})
			return nil, uuid.Nil, false
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load account", Message: err.Error()})
		return nil, uuid.Nil, false
	}
	return account, userID, true
}

// GetProfile godoc
// @Summary     Get the user profile
// @Tags        profile
// @Produce     json
// @Success     200 {object} models.UserProfile
// @Failure     404 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	account, _, ok := h.account(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, account.Profile)
}

// UpdateProfile godoc
// @Summary     Update the user profile
// @Description Updates the provided fields only; omitted fields keep their values
// @Tags        profile
// @Accept      json
// @Produce     json
// @Param       request body models.UpdateProfileRequest true "Profile changes"
// @Success     200 {object} models.UserProfile
// @Failure     400 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	account, userID, ok := h.account(c)
	if !ok {
		return
	}

	profile := account.Profile
	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Avatar != "" {
		profile.Avatar = req.Avatar
	}
	if req.AvatarStyle != "" {
		profile.AvatarStyle = req.AvatarStyle.Normalize()
	}
	if req.Gender != "" {
		profile.Gender = req.Gender.Normalize()
	}
	if req.Preferences != nil {
		prefs := *req.Preferences
		prefs.DefaultRoomType = prefs.DefaultRoomType.Normalize()
		prefs.DefaultStyle = prefs.DefaultStyle.Normalize()
		prefs.DefaultLighting = prefs.DefaultLighting.Normalize()
		// Saved presets are managed through the preset endpoints.
		prefs.SavedPresets = profile.Preferences.SavedPresets
		profile.Preferences = prefs
	}

	if err := h.repo.UpdateProfile(c.Request.Context(), userID, profile); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update profile", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteProfile godoc
// @Summary     Delete the account
// @Description Removes the account, its history, projects, stored assets and live session
// @Tags        profile
// @Produce     json
// @Success     200 {object} map[string]string
// @Failure     404 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /profile [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	_, userID, ok := h.account(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteAccount(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete account", Message: err.Error()})
		return
	}
	h.sessions.Teardown(userID)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// SavePreset godoc
// @Summary     Save the current session settings as a named preset
// @Tags        profile
// @Accept      json
// @Produce     json
// @Param       request body models.SavePresetRequest true "Preset name"
// @Success     200 {object} models.SavedPreset
// @Failure     400 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /profile/presets [post]
func (h *ProfileHandler) SavePreset(c *gin.Context) {
	var req models.SavePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	account, userID, ok := h.account(c)
	if !ok {
		return
	}

	s, err := h.sessions.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load session", Message: err.Error()})
		return
	}
	settings := s.Settings()

	preset := models.SavedPreset{
		ID:         uuid.NewString(),
		Name:       req.Name,
		RoomType:   settings.RoomType,
		Style:      settings.Style,
		Lighting:   settings.Lighting,
		Creativity: settings.Creativity,
		Prompt:     settings.Prompt,
		Dimensions: settings.Dimensions,
	}

	profile := account.Profile
	profile.Preferences.SavedPresets = append(profile.Preferences.SavedPresets, preset)

	if err := h.repo.UpdateProfile(c.Request.Context(), userID, profile); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save preset", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, preset)
}

// ApplyPreset godoc
// @Summary     Apply a saved preset to the session settings
// @Tags        profile
// @Produce     json
// @Param       preset_id path string true "Preset id"
// @Success     200 {object} models.SessionResponse
// @Failure     404 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /profile/presets/{preset_id}/apply [post]
func (h *ProfileHandler) ApplyPreset(c *gin.Context) {
	account, userID, ok := h.account(c)
	if !ok {
		return
	}

	presetID := c.Param("preset_id")
	for _, preset := range account.Profile.Preferences.SavedPresets {
		if preset.ID == presetID {
			s, err := h.sessions.Get(c.Request.Context(), userID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load session", Message: err.Error()})
				return
			}
			s.ApplyPreset(preset)
			c.JSON(http.StatusOK, s.View())
			return
		}
	}

	c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "preset not found"})
}
