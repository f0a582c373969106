package helpers

import "golang.org/x/crypto/bcrypt"

// DefaultHashCost is the bcrypt work factor used for stored passwords.
const DefaultHashCost = 14

// MaxPasswordBytes is the bcrypt input limit. Longer passwords are truncated
// on both hash and compare, so any length is accepted and only the first 72
// bytes are significant.
const MaxPasswordBytes = 72

// BcryptHasher hashes passwords with a fixed cost.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &BcryptHasher{Cost: cost}
}

// Hash hashes the plain text password using bcrypt
func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(truncate(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether plain matches the bcrypt hash
func (h *BcryptHasher) Compare(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(plain)) == nil
}

func truncate(plain string) []byte {
	b := []byte(plain)
	if len(b) > MaxPasswordBytes {
		b = b[:MaxPasswordBytes]
	}
	return b
}

// HashPassword hashes with the default session cost. Used by the seeder.
func HashPassword(plain string) (string, error) {
	return NewBcryptHasher(DefaultHashCost).Hash(plain)
}
