package controller

import (
	"errors"
	"net/http"

	"ctchen222/Crypto-Tracker/internal/api/models"
	"ctchen222/Crypto-Tracker/internal/api/response"
	"ctchen222/Crypto-Tracker/internal/api/service"

	"github.com/gin-gonic/gin"
)

// AuthController handles signup, login and the password-reset flow.
type AuthController struct {
	userService service.UserService
}

// NewAuthController creates a new AuthController.
func NewAuthController(userService service.UserService) *AuthController {
	return &AuthController{userService: userService}
}

// Signup handles the signup endpoint, returning a session token on success.
func (ac *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, err := ac.userService.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, response.ErrConflict) {
			response.Message(c, http.StatusBadRequest, "User already exists")
			return
		}
		response.Error(c, err, "Signup failed")
		return
	}

	response.Created(c, models.TokenResponse{Token: token})
}

// Login handles the login endpoint.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, err := ac.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, response.ErrInvalidCredentials) {
			response.Message(c, http.StatusBadRequest, "Invalid credentials")
			return
		}
		response.Error(c, err, "Login failed - server error")
		return
	}

	response.OK(c, models.TokenResponse{Token: token})
}

// ForgotPassword stores a reset token and emails a time-limited reset link.
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Email is required")
		return
	}

	if err := ac.userService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, err, "Failed to send reset email")
		return
	}

	response.Message(c, http.StatusOK, "Reset link sent to your email")
}

// ResetPassword exchanges a valid reset token for a new password.
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Token and new password are required")
		return
	}

	if err := ac.userService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, response.ErrInvalidResetToken) {
			response.Message(c, http.StatusBadRequest, "Invalid or expired token")
			return
		}
		response.Error(c, err, "Something went wrong")
		return
	}

	response.Message(c, http.StatusOK, "Password reset successfully")
}
