package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lumina-backend/internal/middleware"
	"lumina-backend/internal/models"
	"lumina-backend/internal/session"
)

// SessionHandler serves the live studio session: source and mask intake,
// settings, variant selection, restore and chaining.
type SessionHandler struct {
	sessions *session.Manager
}

func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// session resolves the authenticated user's session or writes the error
// response itself.
func (h *SessionHandler) session(c *gin.Context) (*session.Session, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return nil, false
	}

	s, err := h.sessions.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load session", Message: err.Error()})
		return nil, false
	}
	return s, true
}

// GetSession godoc
// @Summary     Get session state
// @Description Returns the full current session view
// @Tags        session
// @Produce     json
// @Success     200 {object} models.SessionResponse
// @Security    Bearer
// @Router      /session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.View())
}

// SetSource godoc
// @Summary     Set the source image
// @Description Replaces the room photo and resets derived session state
// @Tags        session
// @Accept      json
// @Produce     json
// @Param       request body models.SetSourceRequest true "Source image"
// @Success     200 {object} models.SessionResponse
// @Failure     400 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /session/source [post]
func (h *SessionHandler) SetSource(c *gin.Context) {
	var req models.SetSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	s, ok := h.session(c)
	if !ok {
		return
	}
	s.SetSource(req.Image)
	c.JSON(http.StatusOK, s.View())
}

// UpdateSettings godoc
// @Summary     Update generation settings
// @Tags        session
// @Accept      json
// @Produce     json
// @Param       request body models.GenerationSettings true "Settings"
// @Success     200 {object} models.SessionResponse
// @Failure     400 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /session/settings [put]
func (h *SessionHandler) UpdateSettings(c *gin.Context) {
	var settings models.GenerationSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.UpdateSettings(settings); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid settings", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.View())
}

// SetMask godoc
// @Summary     Set or clear the occlusion mask
// @Tags        session
// @Accept      json
// @Produce     json
// @Param       request body models.SetMaskRequest true "Mask"
// @Success     200 {object} models.SessionResponse
// @Security    Bearer
// @Router      /session/mask [post]
func (h *SessionHandler) SetMask(c *gin.Context) {
	var req models.SetMaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	s, ok := h.session(c)
	if !ok {
		return
	}
	s.SetMask(req.Mask)
	c.JSON(http.StatusOK, s.View())
}

// SelectLayout godoc
// @Summary     Switch the active layout variant
// @Description Selecting a variant reuses its already computed enrichment
// @Tags        session
// @Produce     json
// @Param       index path int true "Batch index"
// @Success     200 {object} models.SessionResponse
// @Failure     400 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /session/layouts/{index}/select [post]
func (h *SessionHandler) SelectLayout(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid layout index"})
		return
	}

	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.SelectLayout(index); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid layout index", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.View())
}

// ChainDesign godoc
// @Summary     Use the current result as the new source image
// @Tags        session
// @Produce     json
// @Success     200 {object} models.SessionResponse
// @Failure     409 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /session/chain [post]
func (h *SessionHandler) ChainDesign(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.ChainDesign(); err != nil {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "no active result", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.View())
}

// Logout godoc
// @Summary     End the session
// @Description Drops the in-memory session; persisted history and profile survive
// @Tags        auth
// @Produce     json
// @Success     200 {object} map[string]string
// @Security    Bearer
// @Router      /auth/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	h.sessions.Drop(userID)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Restore godoc
// @Summary     Restore a past result from history
// @Tags        session
// @Produce     json
// @Param       result_id path string true "Result id"
// @Success     200 {object} models.SessionResponse
// @Failure     404 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /session/restore/{result_id} [post]
func (h *SessionHandler) Restore(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.RestoreHistory(c.Param("result_id")); err != nil {
		if errors.Is(err, session.ErrNotInHistory) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "result not found in history"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to restore", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.View())
}
