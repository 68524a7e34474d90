package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina-backend/internal/models"
)

// GetHistory godoc
// @Summary     Get generation history
// @Description Returns every stored result, most recent first
// @Tags        history
// @Produce     json
// @Success     200 {object} models.HistoryResponse
// @Security    Bearer
// @Router      /history [get]
func (h *SessionHandler) GetHistory(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.HistoryResponse{History: s.History()})
}
