package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/tribunatech/casevault/internal/crypto/domain"
)

// LoadCipherKeyChain builds the process key chain from the ENCRYPTION_KEYS
// and ACTIVE_ENCRYPTION_KEY_ID environment variables.
//
// When kmsKeyURI is set, each configured value is treated as a KMS-wrapped
// key and unwrapped through the keeper before entering the chain; otherwise
// the values are the raw base64-encoded key material. Either way the chain
// ends up holding plain 32-byte keys, so the cipher engine never talks to
// the KMS on the request path.
//
// Any failure (missing variables, malformed entries, unwrap errors, wrong
// key size, unknown active key) aborts the load. A process without usable
// key material must not start.
func LoadCipherKeyChain(
	ctx context.Context,
	kms KMSService,
	kmsKeyURI string,
	logger *slog.Logger,
) (*cryptoDomain.CipherKeyChain, error) {
	raw, activeID, err := cryptoDomain.EncryptionKeysFromEnv()
	if err != nil {
		return nil, err
	}

	entries, err := cryptoDomain.ParseKeyEntries(raw)
	if err != nil {
		return nil, err
	}

	var keeper cryptoDomain.KMSKeeper
	if kmsKeyURI != "" {
		keeper, err = kms.OpenKeeper(ctx, kmsKeyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open KMS keeper for key unwrap: %w", err)
		}
		defer func() {
			if closeErr := keeper.Close(); closeErr != nil {
				logger.Warn("failed to close KMS keeper", "error", closeErr)
			}
		}()
	}

	keys := make([]cryptoDomain.CipherKey, 0, len(entries))
	defer func() {
		for i := range keys {
			cryptoDomain.Zero(keys[i].Key)
		}
	}()

	for id, encoded := range entries {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w for %s: %v", cryptoDomain.ErrInvalidKeyBase64, id, err)
		}

		material := decoded
		if keeper != nil {
			material, err = keeper.Decrypt(ctx, decoded)
			cryptoDomain.Zero(decoded)
			if err != nil {
				return nil, fmt.Errorf("failed to unwrap encryption key %s: %w", id, err)
			}
		}

		keys = append(keys, cryptoDomain.CipherKey{ID: id, Key: material})
	}

	chain, err := cryptoDomain.NewCipherKeyChain(activeID, keys)
	if err != nil {
		return nil, err
	}

	logger.Info("encryption key chain loaded",
		"keys", len(keys),
		"active_key_id", activeID,
		"kms_enabled", kmsKeyURI != "",
	)

	return chain, nil
}
