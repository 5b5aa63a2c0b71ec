package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters for password key derivation
const (
	scryptN       = 32768
	scryptR       = 8
	scryptP       = 1
	scryptKeyLen  = 64
	scryptSaltLen = 8
)

// HashPassword derives a scrypt key from the password with a fresh random
// salt. The stored form is "hex(key).hex(salt)".
func HashPassword(password string) (string, error) {
	saltBytes := make([]byte, scryptSaltLen)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	salt := hex.EncodeToString(saltBytes)

	key, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}

	return hex.EncodeToString(key) + "." + salt, nil
}

// ComparePassword re-derives the key for the supplied password using the
// salt embedded in the stored form and compares the results. A stored form
// without the separator is a fatal input error.
func ComparePassword(stored, supplied string) (bool, error) {
	parts := strings.Split(stored, ".")
	if len(parts) != 2 {
		return false, fmt.Errorf("malformed stored password")
	}

	hashed, salt := parts[0], parts[1]

	key, err := scrypt.Key([]byte(supplied), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false, fmt.Errorf("failed to derive key: %w", err)
	}

	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(key)), []byte(hashed)) == 1, nil
}
