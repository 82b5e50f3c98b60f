package domain

import "context"

// KMSKeeper abstracts the external key management service used to unwrap
// encryption keys at startup. *secrets.Keeper from gocloud.dev satisfies it.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
