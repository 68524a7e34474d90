package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lumina-backend/internal/config"
	"lumina-backend/internal/models"
	"lumina-backend/internal/store"
)

const tokenTTL = 72 * time.Hour

type AuthHandler struct {
	repo store.Repository
	cfg  *config.Config
}

func NewAuthHandler(repo store.Repository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{repo: repo, cfg: cfg}
}

// Register godoc
// @Summary     Register a new account
// @Description Creates an account with a default profile and returns a session token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.RegisterRequest true "Registration details"
// @Success     200 {object} models.AuthResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to hash password"})
		return
	}

	avatarStyle := req.AvatarStyle.Normalize()
	account := &models.Account{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Profile: models.UserProfile{
			Name:        req.Name,
			Email:       req.Email,
			Avatar:      avatarURL(avatarStyle, req.Name),
			AvatarStyle: avatarStyle,
			Gender:      req.Gender.Normalize(),
			JoinedAt:    time.Now().UnixMilli(),
			Preferences: models.DefaultPreferences(),
		},
	}
	account.Profile.ID = account.ID.String()

	if err := h.repo.CreateAccount(c.Request.Context(), account); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create account", Message: err.Error()})
		return
	}

	token, err := h.issueToken(account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{Token: token, Profile: account.Profile})
}

// Login godoc
// @Summary     Log in
// @Description Verifies credentials and returns a session token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.LoginRequest true "Credentials"
// @Success     200 {object} models.AuthResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	account, err := h.repo.GetAccountByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// Same response for unknown email and wrong password.
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
		return
	}

	token, err := h.issueToken(account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{Token: token, Profile: account.Profile})
}

func (h *AuthHandler) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	})
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

func avatarURL(style models.AvatarStyle, seed string) string {
	return fmt.Sprintf("https://api.dicebear.com/9.x/%s/svg?seed=%s", style, url.QueryEscape(seed))
}
