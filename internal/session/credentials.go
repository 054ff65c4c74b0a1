// internal/session/credentials.go
package session

import (
	"strings"

	"portfolio-backend/internal/common/config"

	"golang.org/x/crypto/bcrypt"
)

// Authenticator checks login attempts against the configured users.
type Authenticator struct {
	users map[string][]byte
}

func NewAuthenticator(users []config.UserCredential) *Authenticator {
	a := &Authenticator{users: make(map[string][]byte, len(users))}
	for _, u := range users {
		a.users[normalizeEmail(u.Email)] = []byte(u.PasswordHash)
	}
	return a
}

// Verify reports whether password matches the bcrypt hash stored for email.
func (a *Authenticator) Verify(email, password string) bool {
	hash, ok := a.users[normalizeEmail(email)]
	if !ok || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
