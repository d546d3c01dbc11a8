package auth

import (
	"errors"
	"fmt"
	"time"

	"book_tracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an issued token.
const DefaultTokenTTL = 2 * time.Hour

// Token verification failures. All of them wrap ErrInvalidToken.
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenMalformed = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrTokenExpired   = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrTokenSignature = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)

	ErrMissingSecret = errors.New("token signing secret is not set")
)

var hmacMethods = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Data models.IdentityClaim `json:"data"`
}

// TokenService issues and verifies HS256 identity tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService builds a TokenService. A zero ttl means DefaultTokenTTL.
func NewTokenService(secret []byte, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &TokenService{secret: secret, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs claim into a token expiring ttl from now.
func (s *TokenService) Issue(claim models.IdentityClaim) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Data: claim,
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns its claim.
func (s *TokenService) Verify(raw string) (*models.IdentityClaim, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods(hmacMethods),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)

	claims := &tokenClaims{}
	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, classifyJWTError(err)
	}
	if !token.Valid || claims.Data.UserID == "" {
		return nil, ErrTokenMalformed
	}

	claim := claims.Data
	return &claim, nil
}

func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignature
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
