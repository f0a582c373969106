package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bg-companion-api/internal/application"
	"github.com/oksasatya/bg-companion-api/internal/interface/middleware"
	"github.com/oksasatya/bg-companion-api/pkg/helpers"
	"github.com/oksasatya/bg-companion-api/pkg/response"
	"github.com/oksasatya/bg-companion-api/pkg/validation"
)

const invalidCredentialsMsg = "Invalid credentials!"

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.Manager
	Expiry  func() time.Time // cookie expiry for a token signed now; zero = session cookie
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.Manager, expiry func() time.Time, logger *logrus.Logger) *AuthHandler {
	if expiry == nil {
		expiry = func() time.Time { return time.Time{} }
	}
	return &AuthHandler{Svc: svc, Cookies: cookies, Expiry: expiry, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	sess, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, h.Expiry())
	response.Message(c, http.StatusCreated, "User registered successfully!")
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// unknown email and wrong password look the same to the client
		if errors.Is(err, application.ErrUserNotFound) || errors.Is(err, application.ErrInvalidPassword) {
			response.Error(c, http.StatusUnauthorized, invalidCredentialsMsg, nil)
			return
		}
		response.Fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, h.Expiry())
	response.Message(c, http.StatusOK, "Logged in successfully!")
}

// Me GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": id}, "", nil)
}

// Logout POST /api/v1/auth/logout
// Tokens are stateless; logout only clears the browser cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Message(c, http.StatusOK, "Logged out successfully!")
}
