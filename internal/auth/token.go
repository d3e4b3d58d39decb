package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "charitybridge"

// Claims carries the authenticated actor. Identity is issued elsewhere; this
// service only verifies the bearer token and reads the actor out of it.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

var (
	ErrNotInitialized = errors.New("auth: signing key not configured")
	ErrTokenExpired   = errors.New("auth: token expired")
	ErrTokenInvalid   = errors.New("auth: token invalid")
)

var (
	mu         sync.RWMutex
	signingKey []byte
	tokenTTL   = time.Hour
)

// Init sets the HMAC key and default lifetime used by GenerateToken and ParseToken.
func Init(secret string, ttl time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	signingKey = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
}

func key() ([]byte, time.Duration, error) {
	mu.RLock()
	defer mu.RUnlock()
	if len(signingKey) == 0 {
		return nil, 0, ErrNotInitialized
	}
	return signingKey, tokenTTL, nil
}

// GenerateToken signs a token for the given actor. Used by charityctl and tests.
func GenerateToken(userID, role, email, name string) (string, error) {
	k, ttl, err := key()
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Role:   role,
		Email:  email,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(k)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates the signature and expiry and returns the claims.
func ParseToken(tokenStr string) (*Claims, error) {
	k, _, err := key()
	if err != nil {
		return nil, err
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return k, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
