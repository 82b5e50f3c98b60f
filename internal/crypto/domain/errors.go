package domain

import (
	"github.com/tribunatech/casevault/internal/errors"
)

// Cryptographic operation error definitions.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a cipher key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates a protected attribute could not be decrypted.
	//
	// Wrong key, tampered ciphertext, a malformed blob, and a legacy plaintext
	// row all collapse into this single error so callers cannot distinguish
	// the cause. Decryption fails closed: the raw stored bytes are never
	// returned in place of plaintext.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrEncryptionKeysNotSet indicates the ENCRYPTION_KEYS environment variable is missing.
	// The process must not start without key material; an ephemeral generated
	// key would make all existing ciphertext permanently unreadable.
	ErrEncryptionKeysNotSet = errors.New("ENCRYPTION_KEYS environment variable is not set")

	// ErrActiveKeyIDNotSet indicates the ACTIVE_ENCRYPTION_KEY_ID environment variable is missing.
	ErrActiveKeyIDNotSet = errors.New("ACTIVE_ENCRYPTION_KEY_ID environment variable is not set")

	// ErrInvalidKeysFormat indicates ENCRYPTION_KEYS is not in "id:base64key" format.
	ErrInvalidKeysFormat = errors.New("invalid ENCRYPTION_KEYS format, expected comma-separated id:base64key entries")

	// ErrInvalidKeyBase64 indicates a key entry could not be base64-decoded.
	ErrInvalidKeyBase64 = errors.New("invalid base64 in encryption key")

	// ErrActiveKeyNotFound indicates ACTIVE_ENCRYPTION_KEY_ID references no loaded key.
	ErrActiveKeyNotFound = errors.New("active encryption key not found in key chain")

	// ErrDuplicateKeyID indicates two key entries share the same ID.
	ErrDuplicateKeyID = errors.New("duplicate encryption key id")
)
