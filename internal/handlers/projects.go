package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina-backend/internal/middleware"
	"lumina-backend/internal/models"
	"lumina-backend/internal/session"
	"lumina-backend/internal/store"
)

// ProjectsHandler serves durable project snapshots.
type ProjectsHandler struct {
	repo     store.Repository
	sessions *session.Manager
}

func NewProjectsHandler(repo store.Repository, sessions *session.Manager) *ProjectsHandler {
	return &ProjectsHandler{repo: repo, sessions: sessions}
}

// SaveProject godoc
// @Summary     Save the current result as a project
// @Description Snapshots the active result, its enrichment, the settings and the full history
// @Tags        projects
// @Accept      json
// @Produce     json
// @Param       request body models.SaveProjectRequest false "Optional project name"
// @Success     200 {object} models.SaveProjectResponse
// @Failure     409 {object} models.ErrorResponse
// @Security    Bearer
// @Router      /projects [post]
func (h *ProjectsHandler) SaveProject(c *gin.Context) {
	var req models.SaveProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An empty body means a default name.
		req.Name = ""
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	s, err := h.sessions.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load session", Message: err.Error()})
		return
	}

	project, err := s.SaveProject(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, session.ErrNoResult) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "no active result to save"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save project", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.SaveProjectResponse{ProjectID: project.ID, Status: "saved"})
}

// ListProjects godoc
// @Summary     List saved projects
// @Description Returns the user's projects, most recently saved first
// @Tags        projects
// @Produce     json
// @Success     200 {object} models.ProjectsResponse
// @Security    Bearer
// @Router      /projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	projects, err := h.repo.ListProjects(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list projects", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ProjectsResponse{Projects: projects})
}
