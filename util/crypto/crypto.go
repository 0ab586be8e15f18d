// Package crypto provides password hashing and verification.
package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor applied to every stored password.
const PasswordCost = 10

// HashPasswordAsBcrypt generates a bcrypt hash of the given password.
func HashPasswordAsBcrypt(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(hash), err
}

// CheckPasswordHash verifies if the given password matches the bcrypt hash.
func CheckPasswordHash(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
