package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/rvanleeuwen/investment-tracker/internal/api/request"
	"github.com/rvanleeuwen/investment-tracker/internal/api/response"
	"github.com/rvanleeuwen/investment-tracker/internal/apperrors"
	"github.com/rvanleeuwen/investment-tracker/internal/model"
	"github.com/rvanleeuwen/investment-tracker/internal/service"
	"github.com/rvanleeuwen/investment-tracker/internal/validation"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	userService *service.UserService
	sessionTTL  time.Duration
}

// NewAuthHandler creates a new AuthHandler with the provided service dependency.
func NewAuthHandler(userService *service.UserService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessionTTL:  sessionTTL,
	}
}

// LoginResponse is the body returned on successful login.
type LoginResponse struct {
	User      model.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// Login handles POST requests to authenticate a user and issue a session token.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest (username, optional password)
// Response: 200 OK with LoginResponse
// Error: 400 Bad Request if the username is missing or the body is invalid
// Error: 401 Unauthorized on unknown username or password mismatch
// Error: 500 Internal Server Error if authentication fails unexpectedly
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			response.RespondValidationError(w, verr)
			return
		}
		response.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.userService.Login(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	response.RespondJSON(w, http.StatusOK, LoginResponse{
		User:      user,
		Token:     token,
		ExpiresAt: time.Now().Add(h.sessionTTL),
	})
}
