package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long an admin console session stays valid.
const DefaultSessionTTL = 12 * time.Hour

// MinSecretLength is the shortest HMAC secret NewSessionManager accepts.
const MinSecretLength = 32

var (
	ErrInvalidSession = errors.New("jwtx: invalid session")
	ErrShortSecret    = errors.New("jwtx: secret too short")
)

// SessionClaims are carried by an admin console session token. Subject is the
// user id. The flags are a snapshot taken at login and are only used for
// display; authorisation always reloads the account.
type SessionClaims struct {
	jwt.RegisteredClaims

	Email     string `json:"email,omitempty"`
	Staff     bool   `json:"staff,omitempty"`
	Superuser bool   `json:"superuser,omitempty"`
}
