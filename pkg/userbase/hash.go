package userbase

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordFor is the synthetic plaintext password of a seeded user.
func PasswordFor(userID string) string {
	return "password_" + userID
}

// PasswordHasher turns a plaintext password into the stored hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// MD5Hasher produces the hex MD5 digest the consuming backend was seeded with.
// It is deterministic and only suitable for demo data.
type MD5Hasher struct{}

func (MD5Hasher) Hash(password string) (string, error) {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

// BcryptHasher produces salted bcrypt hashes. Output differs on every run.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
