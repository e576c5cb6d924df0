package validation

import (
	"strings"

	"github.com/rvanleeuwen/investment-tracker/internal/api/request"
)

// ValidateLogin validates a login request. Only the username is checked
// here; whether a password is required depends on the role policy of the
// user being looked up, which is the auth service's concern.
func ValidateLogin(req request.LoginRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Username) == "" {
		errors["username"] = "username is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
