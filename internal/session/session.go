// Package session issues and verifies fernet-encrypted session tokens.
// Tokens carry the authenticated user's identity and role; expiry is
// enforced by fernet's built-in TTL check against the token timestamp.
package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/rvanleeuwen/investment-tracker/internal/apperrors"
	"github.com/rvanleeuwen/investment-tracker/internal/model"
)

// Claims is the payload carried inside a session token.
type Claims struct {
	UserID   string     `json:"userId"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

// Manager issues and verifies session tokens with a single fernet key.
type Manager struct {
	key *fernet.Key
	ttl time.Duration
}

// NewManager creates a session manager from a base64url-encoded fernet key.
// Pass an empty key to generate an ephemeral one; sessions then do not
// survive a restart.
func NewManager(encodedKey string, ttl time.Duration) (*Manager, error) {
	if encodedKey == "" {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		return &Manager{key: &key, ttl: ttl}, nil
	}

	keys, err := fernet.DecodeKeys(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session key: %w", err)
	}

	return &Manager{key: keys[0], ttl: ttl}, nil
}

// GenerateKey returns a fresh base64url-encoded fernet key, suitable for
// the SESSION_KEY configuration value.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return key.Encode(), nil
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a session token for the given user.
func (m *Manager) Issue(user model.User) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session claims: %w", err)
	}

	token, err := fernet.EncryptAndSign(payload, m.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return string(token), nil
}

// Verify checks a token's signature and age and returns its claims.
// Returns ErrInvalidSession for missing, tampered, or expired tokens.
func (m *Manager) Verify(token string) (Claims, error) {
	if token == "" {
		return Claims{}, apperrors.ErrInvalidSession
	}

	payload := fernet.VerifyAndDecrypt([]byte(token), m.ttl, []*fernet.Key{m.key})
	if payload == nil {
		return Claims{}, apperrors.ErrInvalidSession
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, apperrors.ErrInvalidSession
	}

	return claims, nil
}
