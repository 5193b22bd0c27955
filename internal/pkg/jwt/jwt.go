package jwt

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = time.Hour

type ErrorKind string

const (
	KindMalformed        ErrorKind = "malformed"
	KindSignatureInvalid ErrorKind = "signature_invalid"
	KindExpired          ErrorKind = "expired"
)

// TokenError is returned by Verify. Err is the underlying parser error.
type TokenError struct {
	Kind ErrorKind
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return "token " + string(e.Kind)
	}
	return "token " + string(e.Kind) + ": " + e.Err.Error()
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// KindOf extracts the TokenError kind from anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var tokenErr *TokenError
	if errors.As(err, &tokenErr) {
		return tokenErr.Kind, true
	}
	return "", false
}

type userClaim struct {
	ID *int64 `json:"id"`
}

type Claims struct {
	User userClaim `json:"user"`
	jwtlib.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager builds an HS256 issuer/verifier. A non-positive ttl selects DefaultTTL.
func NewManager(secret []byte, ttl time.Duration, opts ...Option) (*Manager, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) Issue(userID int64) (string, error) {
	now := m.now()
	jti, err := newTokenID()
	if err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}
	claims := Claims{
		User: userClaim{ID: &userID},
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) Verify(tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, &TokenError{Kind: KindMalformed, Err: errors.New("empty token")}
	}
	claims := &Claims{}
	token, err := jwtlib.ParseWithClaims(tokenString, claims, func(token *jwtlib.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(m.now),
	)
	if err != nil {
		return 0, &TokenError{Kind: classify(err), Err: err}
	}
	if !token.Valid {
		return 0, &TokenError{Kind: KindMalformed, Err: errors.New("invalid token")}
	}
	if claims.User.ID == nil {
		return 0, &TokenError{Kind: KindMalformed, Err: errors.New("missing user id claim")}
	}
	return *claims.User.ID, nil
}

func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return KindExpired
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid), errors.Is(err, jwtlib.ErrTokenUnverifiable):
		return KindSignatureInvalid
	default:
		return KindMalformed
	}
}

func newTokenID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
