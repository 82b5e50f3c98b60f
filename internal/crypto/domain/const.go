package domain

// Algorithm represents the authenticated encryption algorithm used for
// protected attribute blobs.
//
// Both supported algorithms provide AEAD (confidentiality plus integrity)
// with 256-bit keys, 12-byte nonces, and 16-byte authentication tags. AESGCM
// is the default; ChaCha20 is available for hosts without AES-NI.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// ParseAlgorithm converts a string identifier into an Algorithm.
// Returns ErrUnsupportedAlgorithm for unknown identifiers.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AESGCM:
		return AESGCM, nil
	case ChaCha20:
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
