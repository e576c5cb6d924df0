package service

import (
	"errors"

	"github.com/rvanleeuwen/investment-tracker/internal/api/request"
	"github.com/rvanleeuwen/investment-tracker/internal/apperrors"
	"github.com/rvanleeuwen/investment-tracker/internal/model"
	"github.com/rvanleeuwen/investment-tracker/internal/repository"
	"github.com/rvanleeuwen/investment-tracker/internal/session"
)

// UserService handles authentication and user lookups. Whether a password
// is required is decided by the role policy table, not per-username
// branching. Passwords are compared in plaintext against the stored value;
// this is a two-user shared tracker, not a general-purpose auth system.
type UserService struct {
	userRepo *repository.UserRepository
	sessions *session.Manager
}

// NewUserService creates a new UserService with the provided dependencies.
func NewUserService(userRepo *repository.UserRepository, sessions *session.Manager) *UserService {
	return &UserService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// Login authenticates a user by username and (role-dependent) password and
// issues a session token. Unknown usernames and password mismatches both
// return ErrInvalidCredentials, indistinguishably.
func (s *UserService) Login(req request.LoginRequest) (model.User, string, error) {
	user, err := s.userRepo.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return model.User{}, "", apperrors.ErrInvalidCredentials
		}
		return model.User{}, "", err
	}

	policy := model.RolePolicies[user.Role]
	if policy.RequiresPassword {
		if user.Password == nil || *user.Password != req.Password {
			return model.User{}, "", apperrors.ErrInvalidCredentials
		}
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		return model.User{}, "", err
	}

	return user, token, nil
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers() ([]model.User, error) {
	return s.userRepo.ListUsers()
}

// GetUser retrieves a single user by ID.
func (s *UserService) GetUser(userID string) (model.User, error) {
	return s.userRepo.GetUser(userID)
}
