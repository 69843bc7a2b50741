package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/classdesk/classdesk/internal/domain"
	"github.com/classdesk/classdesk/internal/metrics"
	"github.com/classdesk/classdesk/internal/transport/http/middleware"
	"github.com/classdesk/classdesk/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Signup(ctx context.Context, input usecase.SignupInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type signupRequest struct {
	Email    string  `json:"email"     binding:"required,email"`
	Password string  `json:"password"  binding:"required,min=8,max=72"`
	FullName *string `json:"full_name" binding:"omitempty,max=256"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// POST /auth/signup
// A taken email is reported explicitly; login deliberately does not make
// the same distinction.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	signed, err := h.authUsecase.Signup(c.Request.Context(), usecase.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			metrics.AuthAttemptsTotal.WithLabelValues("signup", "conflict").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errEmailTaken})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "signup", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.AuthAttemptsTotal.WithLabelValues("signup", "success").Inc()
	c.JSON(http.StatusOK, tokenResponse{AccessToken: signed, TokenType: "bearer"})
}

// POST /auth/login
// Form-encoded username/password. Wrong password and unknown email get the
// identical 401 response.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	pass := c.PostForm("password")
	if username == "" || pass == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	signed, err := h.authUsecase.Login(c.Request.Context(), username, pass)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": errBadCredentials})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	c.JSON(http.StatusOK, tokenResponse{AccessToken: signed, TokenType: "bearer"})
}

type accountResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
}

// GET /auth/me
// The password hash never leaves the handler layer.
func (h *AuthHandler) Me(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	c.JSON(http.StatusOK, accountResponse{
		ID:       account.ID.String(),
		Email:    account.Email,
		FullName: account.FullName,
	})
}
