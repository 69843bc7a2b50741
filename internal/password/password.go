// Package password implements one-way password hashing and verification.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash derives a bcrypt blob from plain. The salt is generated per call,
// so hashing the same password twice yields different blobs.
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plain matches the stored blob. A mismatch is not
// an error; a non-nil error means the blob itself is unparseable, which
// signals corrupt stored data.
func Verify(plain, blob string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(blob), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("corrupt password hash: %w", err)
	}
}
