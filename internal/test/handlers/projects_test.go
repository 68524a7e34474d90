package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina-backend/internal/models"
)

func TestSaveProject_RequiresActiveResult(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "empty@example.com")

	w := app.do(t, "POST", "/api/v1/projects", token, models.SaveProjectRequest{Name: "Nothing"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSaveAndListProjects(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "projects@example.com")

	app.do(t, "POST", "/api/v1/session/source", token, models.SetSourceRequest{Image: sourceImage})
	view := app.generateAndWait(t, token)
	require.Equal(t, "complete", view.State)

	w := app.do(t, "POST", "/api/v1/projects", token, models.SaveProjectRequest{Name: "Loft Revamp"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var saved models.SaveProjectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, view.Batch[0].ID, saved.ProjectID)

	w = app.do(t, "GET", "/api/v1/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed models.ProjectsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Projects, 1)
	assert.Equal(t, "Loft Revamp", listed.Projects[0].Name)
	assert.Len(t, listed.Projects[0].History, models.BatchSize)
	assert.Len(t, listed.Projects[0].ShoppingItems, 1)

	// Projects are scoped per user.
	otherToken := app.register(t, "other@example.com")
	w = app.do(t, "GET", "/api/v1/projects", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed.Projects)
}

func TestSaveProject_DefaultNameFromStyle(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "default-name@example.com")

	app.do(t, "POST", "/api/v1/session/source", token, models.SetSourceRequest{Image: sourceImage})
	app.generateAndWait(t, token)

	w := app.do(t, "POST", "/api/v1/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, "GET", "/api/v1/projects", token, nil)
	var listed models.ProjectsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Projects, 1)
	assert.Equal(t, "Modern Layout Study", listed.Projects[0].Name)
}
