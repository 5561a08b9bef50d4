package tools

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordEncrypt hashes a plaintext password with bcrypt.
func PasswordEncrypt(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// Only possible with an invalid cost, which DefaultCost never is.
		panic(err)
	}
	return string(hash)
}

// PasswordCompare reports whether the plaintext matches the stored hash.
func PasswordCompare(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
