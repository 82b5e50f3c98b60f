package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"time"

	cryptoDomain "github.com/tribunatech/casevault/internal/crypto/domain"
	cryptoService "github.com/tribunatech/casevault/internal/crypto/service"
)

// RunCreateEncryptionKey generates a 32-byte field encryption key and prints
// the environment variables to configure it. When a KMS key URI is provided
// the key material is wrapped with the KMS before output, so the plaintext
// key never touches the environment. Key material is zeroed after encoding.
//
// For local development use kmsKeyURI="base64key://<32-byte-base64-key>";
// production deployments should use a cloud KMS or Vault transit key.
func RunCreateEncryptionKey(
	ctx context.Context,
	kms cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	keyID string,
	kmsKeyURI string,
) error {
	if keyID == "" {
		keyID = fmt.Sprintf("field-key-%s", time.Now().Format("2006-01-02"))
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate encryption key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	material := key
	if kmsKeyURI != "" {
		keeperInterface, err := kms.OpenKeeper(ctx, kmsKeyURI)
		if err != nil {
			return fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		defer func() {
			if closeErr := keeperInterface.Close(); closeErr != nil {
				logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
			}
		}()

		keeper, ok := keeperInterface.(interface {
			Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
		})
		if !ok {
			return fmt.Errorf("KMS keeper does not support encryption")
		}

		material, err = keeper.Encrypt(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to wrap encryption key with KMS: %w", err)
		}
	}

	encoded := base64.StdEncoding.EncodeToString(material)

	_, _ = fmt.Fprintln(writer, "# Field Encryption Key Configuration")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	if kmsKeyURI != "" {
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=%q\n", kmsKeyURI)
	}
	_, _ = fmt.Fprintf(writer, "ENCRYPTION_KEYS=%q\n", fmt.Sprintf("%s:%s", keyID, encoded))
	_, _ = fmt.Fprintf(writer, "ACTIVE_ENCRYPTION_KEY_ID=%q\n", keyID)
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintln(writer, "# For key rotation, keep old keys in ENCRYPTION_KEYS so existing data stays readable:")
	_, _ = fmt.Fprintf(writer, "# ENCRYPTION_KEYS=\"%s:%s,new-key:...\"\n", keyID, encoded)
	_, _ = fmt.Fprintln(writer, "# ACTIVE_ENCRYPTION_KEY_ID=\"new-key\"")

	logger.Info("encryption key generated",
		slog.String("key_id", keyID),
		slog.Bool("kms_wrapped", kmsKeyURI != ""),
	)

	return nil
}

// RunCreateSigningKey generates a raw 32-byte base64-encoded key suitable for
// AUDIT_SIGNING_KEY and LOOKUP_HASH_KEY.
func RunCreateSigningKey(writer io.Writer, envName string) error {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate signing key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	_, _ = fmt.Fprintf(writer, "%s=%q\n", envName, base64.StdEncoding.EncodeToString(key))
	return nil
}
