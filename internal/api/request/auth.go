package request

// LoginRequest carries the credentials for POST /api/auth/login.
// Password is optional; whether it is required depends on the role policy
// of the user being looked up.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}
