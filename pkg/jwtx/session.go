package jwtx

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zerohunger/backend/pkg/cryptox"
)

// SessionManager issues and verifies HS256 session tokens.
type SessionManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	leeway time.Duration

	now func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> exp
}

// NewSessionManager returns a manager signing with secret. A zero ttl falls
// back to DefaultSessionTTL.
func NewSessionManager(secret []byte, issuer string, ttl time.Duration) (*SessionManager, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrShortSecret, MinSecretLength, len(secret))
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &SessionManager{
		secret:  secret,
		issuer:  issuer,
		ttl:     ttl,
		leeway:  30 * time.Second,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}, nil
}

// TTL is the lifetime given to new sessions.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Issue signs a session for the given account.
func (m *SessionManager) Issue(subject, email string, staff, superuser bool, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(m.ttl)

	jti, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwtx: session id: %w", err)
	}

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        jti,
		},
		Email:     email,
		Staff:     staff,
		Superuser: superuser,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwtx: sign session: %w", err)
	}
	return token, expiresAt, nil
}

// Verify checks the signature, algorithm, issuer and expiry of raw. Every
// failure is reported as ErrInvalidSession.
func (m *SessionManager) Verify(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(m.leeway),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidSession
	}
	if m.isRevoked(claims.ID) {
		return nil, fmt.Errorf("%w: revoked", ErrInvalidSession)
	}

	return claims, nil
}

// Revoke rejects the session from now on. Revocations live in memory until
// the token would have expired anyway, so a restart forgets them.
func (m *SessionManager) Revoke(claims *SessionClaims) {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for jti, exp := range m.revoked {
		if now.After(exp.Add(m.leeway)) {
			delete(m.revoked, jti)
		}
	}
	m.revoked[claims.ID] = claims.ExpiresAt.Time
}

func (m *SessionManager) isRevoked(jti string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok
}
