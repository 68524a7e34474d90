package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"lumina-backend/internal/config"
	"lumina-backend/internal/handlers"
	"lumina-backend/internal/middleware"
	"lumina-backend/internal/models"
	"lumina-backend/internal/session"
	"lumina-backend/internal/store"
)

// fakeGen is an instant, deterministic generative backend for handler tests.
type fakeGen struct {
	mu          sync.Mutex
	renderCount int
}

func (f *fakeGen) OrchestrateDesign(ctx context.Context, settings models.GenerationSettings, image, mask string) string {
	return "brief"
}

func (f *fakeGen) GenerateRoomImage(ctx context.Context, image, instruction, mask string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renderCount++
	return fmt.Sprintf("data:image/png;base64,render-%d", f.renderCount), nil
}

func (f *fakeGen) AnalyzeShoppableItems(ctx context.Context, image, mask string, settings *models.GenerationSettings, instruction string) []models.ProductItem {
	return []models.ProductItem{{ID: "p1", Name: "Sofa", Query: "linen sofa"}}
}

func (f *fakeGen) EstimateRenovationCost(ctx context.Context, image, mask string, roomType models.RoomType) []models.BudgetItem {
	return []models.BudgetItem{{ID: "b1", Item: "Paint", CostMin: 100, CostMax: 200}}
}

func (f *fakeGen) DetectRoomImprovements(ctx context.Context, image string, roomType models.RoomType) []models.DesignSuggestion {
	return []models.DesignSuggestion{{ID: "s1", Text: "Add a floor lamp", Category: models.SuggestionLighting}}
}

func (f *fakeGen) GenerateDepthMap(ctx context.Context, image string) (string, error) {
	return "data:image/png;base64,depth", nil
}

func (f *fakeGen) EstimateRealWorldDistance(ctx context.Context, image string, start, end models.MeasurementPoint) string {
	return "2.4 meters"
}

type testApp struct {
	router *gin.Engine
	repo   *store.MemoryRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: "test-secret-key-for-jwt-signing-must-be-long-enough"}
	repo := store.NewMemoryRepository()
	sessions := session.NewManager(repo, &fakeGen{})

	authHandler := handlers.NewAuthHandler(repo, cfg)
	sessionHandler := handlers.NewSessionHandler(sessions)
	projectsHandler := handlers.NewProjectsHandler(repo, sessions)
	profileHandler := handlers.NewProfileHandler(repo, sessions)

	router := gin.New()
	router.GET("/health", handlers.HealthHandler)
	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))
	api.GET("/session", sessionHandler.GetSession)
	api.POST("/session/source", sessionHandler.SetSource)
	api.PUT("/session/settings", sessionHandler.UpdateSettings)
	api.POST("/session/mask", sessionHandler.SetMask)
	api.POST("/session/generate", sessionHandler.Generate)
	api.POST("/session/layouts/:index/select", sessionHandler.SelectLayout)
	api.POST("/session/suggestions", sessionHandler.Suggestions)
	api.POST("/session/suggestions/:suggestion_id/apply", sessionHandler.ApplySuggestion)
	api.POST("/session/results/:result_id/depth", sessionHandler.GenerateDepth)
	api.POST("/session/measurements", sessionHandler.AddMeasurement)
	api.POST("/session/chain", sessionHandler.ChainDesign)
	api.POST("/session/restore/:result_id", sessionHandler.Restore)
	api.POST("/auth/logout", sessionHandler.Logout)
	api.GET("/history", sessionHandler.GetHistory)
	api.GET("/projects", projectsHandler.ListProjects)
	api.POST("/projects", projectsHandler.SaveProject)
	api.GET("/profile", profileHandler.GetProfile)
	api.PUT("/profile", profileHandler.UpdateProfile)
	api.DELETE("/profile", profileHandler.DeleteProfile)
	api.POST("/profile/presets", profileHandler.SavePreset)
	api.POST("/profile/presets/:preset_id/apply", profileHandler.ApplyPreset)

	return &testApp{router: router, repo: repo}
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its bearer token.
func (a *testApp) register(t *testing.T, email string) string {
	t.Helper()
	w := a.do(t, "POST", "/auth/register", "", models.RegisterRequest{
		Email:    email,
		Password: "password123",
		Name:     "Test User",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
