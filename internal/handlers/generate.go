package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina-backend/internal/models"
	"lumina-backend/internal/session"
)

// Generate godoc
// @Summary     Start a generation attempt
// @Description Launches the three-variant pipeline asynchronously and returns the attempt epoch. Poll GET /session for progress.
// @Tags        session
// @Produce     json
// @Success     202 {object} models.GenerateResponse
// @Failure     409 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /session/generate [post]
func (h *SessionHandler) Generate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	epoch, err := s.StartGeneration()
	if err != nil {
		if errors.Is(err, session.ErrNoSource) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "no source image set"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to start generation", Message: err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, models.GenerateResponse{Epoch: epoch, Status: "started"})
}
