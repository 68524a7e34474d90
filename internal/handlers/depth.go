package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina-backend/internal/models"
	"lumina-backend/internal/session"
)

// GenerateDepth godoc
// @Summary     Generate a depth map for one result
// @Description On-demand and cached; concurrent requests for the same result share one upstream call. Failure leaves the result untouched.
// @Tags        session
// @Produce     json
// @Param       result_id path string true "Result id"
// @Success     200 {object} models.DepthResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /session/results/{result_id}/depth [post]
func (h *SessionHandler) GenerateDepth(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	resultID := c.Param("result_id")
	depthURL, err := s.GenerateDepth(c.Request.Context(), resultID)
	if err != nil {
		if errors.Is(err, session.ErrNoResult) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "result not found in batch"})
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to generate depth map", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.DepthResponse{ResultID: resultID, DepthMapURL: depthURL})
}
