package entity

import (
	"errors"
	"fmt"
)

var ErrMalformedClaims = errors.New("malformed session claims")

// Identity is the authenticated caller, decoded from a session token and kept
// for the lifetime of one request.
type Identity struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// Claims is the token payload for the identity.
func (i Identity) Claims() map[string]any {
	return map[string]any{
		"id":         i.ID,
		"username":   i.Username,
		"email":      i.Email,
		"created_at": i.CreatedAt,
	}
}

// IdentityFromClaims rebuilds an Identity from verified token claims. id is
// mandatory; a token without it cannot name a caller.
func IdentityFromClaims(claims map[string]any) (Identity, error) {
	var id Identity
	var err error
	if id.ID, err = stringClaim(claims, "id", true); err != nil {
		return Identity{}, err
	}
	if id.Username, err = stringClaim(claims, "username", false); err != nil {
		return Identity{}, err
	}
	if id.Email, err = stringClaim(claims, "email", false); err != nil {
		return Identity{}, err
	}
	if id.CreatedAt, err = stringClaim(claims, "created_at", false); err != nil {
		return Identity{}, err
	}
	return id, nil
}

func stringClaim(claims map[string]any, key string, required bool) (string, error) {
	v, ok := claims[key]
	if !ok || v == nil {
		if required {
			return "", fmt.Errorf("%w: missing %s", ErrMalformedClaims, key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrMalformedClaims, key)
	}
	if required && s == "" {
		return "", fmt.Errorf("%w: empty %s", ErrMalformedClaims, key)
	}
	return s, nil
}
