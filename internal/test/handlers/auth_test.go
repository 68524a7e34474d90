package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina-backend/internal/models"
)

func TestRegister_ReturnsTokenAndProfile(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "POST", "/auth/register", "", models.RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
		Name:     "New User",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "New User", resp.Profile.Name)
	assert.Equal(t, "new@example.com", resp.Profile.Email)
	assert.Equal(t, models.AvatarAvataaars, resp.Profile.AvatarStyle)
	assert.Equal(t, models.RoomLivingRoom, resp.Profile.Preferences.DefaultRoomType)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "dup@example.com")

	w := app.do(t, "POST", "/auth/register", "", models.RegisterRequest{
		Email:    "dup@example.com",
		Password: "password123",
		Name:     "Second",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_ValidatesInput(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "POST", "/auth/register", "", models.RegisterRequest{
		Email:    "not-an-email",
		Password: "password123",
		Name:     "User",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, "POST", "/auth/register", "", models.RegisterRequest{
		Email:    "short@example.com",
		Password: "short",
		Name:     "User",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "login@example.com")

	w := app.do(t, "POST", "/auth/login", "", models.LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	w = app.do(t, "POST", "/auth/login", "", models.LoginRequest{
		Email:    "login@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, "POST", "/auth/login", "", models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "GET", "/api/v1/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
