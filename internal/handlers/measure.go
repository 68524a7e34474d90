package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina-backend/internal/models"
	"lumina-backend/internal/session"
)

// AddMeasurement godoc
// @Summary     Add a ruler measurement
// @Description Records the line immediately with a pending label; the distance estimate resolves asynchronously. Poll GET /session for the resolved label.
// @Tags        session
// @Accept      json
// @Produce     json
// @Param       request body models.MeasurementRequest true "Measurement endpoints"
// @Success     202 {object} models.ManualMeasurement
// @Failure     400 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /session/measurements [post]
func (h *SessionHandler) AddMeasurement(c *gin.Context) {
	var req models.MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	s, ok := h.session(c)
	if !ok {
		return
	}

	measurement, err := s.AddMeasurement(req.Start, req.End)
	if err != nil {
		if errors.Is(err, session.ErrNoSource) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "no image to measure"})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid measurement", Message: err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, measurement)
}
