package app

import (
	"context"
	"encoding/base64"
	"fmt"

	cryptoDomain "github.com/tribunatech/casevault/internal/crypto/domain"
	cryptoService "github.com/tribunatech/casevault/internal/crypto/service"
)

// KeyChain returns the process cipher key chain, loading and unwrapping the
// configured encryption keys on first access.
func (c *Container) KeyChain(ctx context.Context) (*cryptoDomain.CipherKeyChain, error) {
	c.keyChainInit.Do(func() {
		chain, err := cryptoService.LoadCipherKeyChain(
			ctx,
			cryptoService.NewKMSService(),
			c.config.KMSKeyURI,
			c.Logger(),
		)
		if err != nil {
			c.initErrors["keyChain"] = fmt.Errorf("failed to load cipher key chain: %w", err)
			return
		}
		c.keyChain = chain
	})
	if err, exists := c.initErrors["keyChain"]; exists {
		return nil, err
	}
	return c.keyChain, nil
}

// FieldCipher returns the field cipher used for protected attributes.
func (c *Container) FieldCipher(ctx context.Context) (cryptoService.FieldCipher, error) {
	c.fieldCipherInit.Do(func() {
		chain, err := c.KeyChain(ctx)
		if err != nil {
			c.initErrors["fieldCipher"] = err
			return
		}

		algorithm, err := cryptoDomain.ParseAlgorithm(c.config.EncryptionAlgorithm)
		if err != nil {
			c.initErrors["fieldCipher"] = fmt.Errorf("invalid encryption algorithm %q: %w", c.config.EncryptionAlgorithm, err)
			return
		}

		c.fieldCipher = cryptoService.NewFieldCipher(chain, cryptoService.NewAEADManager(), algorithm)
	})
	if err, exists := c.initErrors["fieldCipher"]; exists {
		return nil, err
	}
	return c.fieldCipher, nil
}

// LookupHasher returns the deterministic hasher for protected attribute lookups.
func (c *Container) LookupHasher() (cryptoService.LookupHasher, error) {
	c.lookupHasherInit.Do(func() {
		key, err := base64.StdEncoding.DecodeString(c.config.LookupHashKey)
		if err != nil {
			c.initErrors["lookupHasher"] = fmt.Errorf("lookup hash key is not valid base64: %w", err)
			return
		}

		hasher, err := cryptoService.NewHMACLookupHasher(key)
		if err != nil {
			c.initErrors["lookupHasher"] = fmt.Errorf("failed to create lookup hasher: %w", err)
			return
		}
		c.lookupHasher = hasher
	})
	if err, exists := c.initErrors["lookupHasher"]; exists {
		return nil, err
	}
	return c.lookupHasher, nil
}
