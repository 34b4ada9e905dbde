// ABOUTME: JWT session token issuing and verification for calibra-api
// ABOUTME: Uses HS256 signing with configurable secret and validity window

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/calibra/calibra-api/internal/store"
)

// MinSecretLength is the minimum accepted signing secret length in bytes.
const MinSecretLength = 32

// Token errors
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrMissingClaim   = errors.New("missing required claim")
	ErrSecretTooShort = errors.New("jwt secret too short")
)

// Claims holds the verified contents of a session token. The Role claim
// reflects the account's role at issuance time and is advisory only;
// authorization always uses the role re-resolved from the store.
type Claims struct {
	AccountID string
	Role      store.Role
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec defines the interface for session token issuing and verification
type TokenCodec interface {
	Issue(accountID string, role store.Role, username string) (string, error)
	Verify(tokenString string) (*Claims, error)
}

// JWTCodec implements TokenCodec using HS256 signed JWTs
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTCodec creates a new JWT codec with the given secret and validity window
func NewJWTCodec(secret []byte, ttl time.Duration) (*JWTCodec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrSecretTooShort, MinSecretLength, len(secret))
	}
	return &JWTCodec{secret: secret, ttl: ttl}, nil
}

// Issue creates a new signed token for the given account with the configured expiry
func (c *JWTCodec) Issue(accountID string, role store.Role, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      accountID,
		"role":     string(role),
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(c.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify validates the token signature and expiry and extracts the claims.
// All failures are reported as sentinel errors; a verification failure means
// "no session", never a server fault.
func (c *JWTCodec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})

	if err != nil {
		// Check if it's specifically an expiration error
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("%w: sub", ErrMissingClaim)
	}

	claims := &Claims{AccountID: sub}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = store.Role(role)
	}
	if username, ok := mapClaims["username"].(string); ok {
		claims.Username = username
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return claims, nil
}
