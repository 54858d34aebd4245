// Package password provides bcrypt password hashing and verification.
package password

import "golang.org/x/crypto/bcrypt"

// Hasher hashes and verifies passwords using bcrypt. The salt is embedded
// in the produced hash string, so no separate salt storage is needed.
type Hasher struct {
	cost int
}

// NewHasher creates a bcrypt hasher with the given cost. Costs outside the
// valid bcrypt range fall back to the default cost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt hash of the password.
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(bytes), err
}

// Verify reports whether the password matches the stored hash. Malformed
// hash strings return false rather than an error.
func (h *Hasher) Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
