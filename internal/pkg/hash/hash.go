// Package hash is the one-way secret hasher shared by account passwords and
// OTP codes. Both are bcrypt-hashed at rest; codes are never compared in
// plaintext.
package hash

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor used for every stored secret.
const Cost = 10

// Generate returns the bcrypt hash of secret.
func Generate(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether secret matches the stored hash.
func Verify(secret, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret)) == nil
}
