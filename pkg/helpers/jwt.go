package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrUnexpectedMethod = errors.New("unexpected signing method")
)

// JWTManager signs and verifies session tokens with a single HMAC secret.
// TTL of zero issues tokens without an exp claim.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{Secret: []byte(secret), TTL: ttl}
}

// Sign produces an HS256 token carrying the given claims. iat/exp are added
// when a TTL is configured; the caller's map is not modified.
func (m *JWTManager) Sign(claims map[string]any) (string, error) {
	mc := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		mc[k] = v
	}
	if m.TTL > 0 {
		now := time.Now()
		mc["iat"] = jwt.NewNumericDate(now)
		mc["exp"] = jwt.NewNumericDate(now.Add(m.TTL))
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return t.SignedString(m.Secret)
}

// Verify checks the signature (and exp when present) and returns the claims.
func (m *JWTManager) Verify(tokenStr string) (map[string]any, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedMethod
		}
		return m.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExpiresAt returns when a token signed now would expire, zero time if never.
func (m *JWTManager) ExpiresAt() time.Time {
	if m.TTL <= 0 {
		return time.Time{}
	}
	return time.Now().Add(m.TTL)
}
