package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/allisson/go-pwdhash"
)

// RunHashStaffKey hashes a staff API key with Argon2id and prints the
// STAFF_API_KEY_HASH value. When plainKey is empty a random 32-byte key is
// generated and printed alongside the hash; this is the only time the plain
// key is shown.
func RunHashStaffKey(writer io.Writer, plainKey string) error {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		return fmt.Errorf("failed to create password hasher: %w", err)
	}

	generated := false
	if plainKey == "" {
		randomBytes := make([]byte, 32)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("failed to generate staff key: %w", err)
		}
		plainKey = base64.RawURLEncoding.EncodeToString(randomBytes)
		generated = true
	}

	hash, err := hasher.Hash([]byte(plainKey))
	if err != nil {
		return fmt.Errorf("failed to hash staff key: %w", err)
	}

	if generated {
		_, _ = fmt.Fprintln(writer, "# Generated staff API key. Store it securely; it is not shown again.")
		_, _ = fmt.Fprintf(writer, "X-Staff-Key: %s\n", plainKey)
		_, _ = fmt.Fprintln(writer)
	}
	_, _ = fmt.Fprintf(writer, "STAFF_API_KEY_HASH=%q\n", hash)

	return nil
}
