package handlers

import (
	"net/http"

	"github.com/rvanleeuwen/investment-tracker/internal/api/response"
	"github.com/rvanleeuwen/investment-tracker/internal/apperrors"
	"github.com/rvanleeuwen/investment-tracker/internal/service"
)

// UserHandler handles HTTP requests for user endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler with the provided service dependency.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers handles GET requests to retrieve all users.
// Passwords are never serialized.
//
// Endpoint: GET /api/users
// Response: 200 OK with array of User
// Error: 500 Internal Server Error if retrieval fails
func (h *UserHandler) ListUsers(w http.ResponseWriter, _ *http.Request) {
	users, err := h.userService.ListUsers()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveUsers.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, users)
}
