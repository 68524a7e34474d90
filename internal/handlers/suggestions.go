package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina-backend/internal/models"
)

// Suggestions godoc
// @Summary     Recompute design suggestions
// @Description Analyzes the current source image for improvement suggestions. Unreachable analysis yields an empty list, never an error.
// @Tags        session
// @Produce     json
// @Success     200 {object} models.SuggestionsResponse
// @Failure     409 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /session/suggestions [post]
func (h *SessionHandler) Suggestions(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	suggestions, err := s.RefreshSuggestions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "no source image set"})
		return
	}

	c.JSON(http.StatusOK, models.SuggestionsResponse{Suggestions: suggestions})
}

// ApplySuggestion godoc
// @Summary     Append a suggestion to the prompt
// @Tags        session
// @Produce     json
// @Param       suggestion_id path string true "Suggestion id"
// @Success     200 {object} models.SessionResponse
// @Failure     404 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /session/suggestions/{suggestion_id}/apply [post]
func (h *SessionHandler) ApplySuggestion(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	suggestionID := c.Param("suggestion_id")
	for _, suggestion := range s.View().Suggestions {
		if suggestion.ID == suggestionID {
			s.ApplySuggestion(suggestion)
			c.JSON(http.StatusOK, s.View())
			return
		}
	}

	c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "suggestion not found"})
}
