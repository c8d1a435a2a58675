package service

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"
	"golang.org/x/crypto/chacha20poly1305"

	apperrors "github.com/allisson/fxwallet/internal/errors"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// plaintextSealer stores tokens as they are. Used when no key is configured.
type plaintextSealer struct{}

// NewPlaintextSealer returns a TokenSealer that performs no encryption.
func NewPlaintextSealer() TokenSealer {
	return plaintextSealer{}
}

func (plaintextSealer) Seal(_ context.Context, plaintext, _ string) (string, error) {
	return plaintext, nil
}

func (plaintextSealer) Open(_ context.Context, sealed, _ string) (string, error) {
	return sealed, nil
}

func (plaintextSealer) Close() error { return nil }

// aeadSealer seals with ChaCha20-Poly1305 under a local 32-byte key.
// Sealed form is base64(nonce || ciphertext).
type aeadSealer struct {
	aead cipher.AEAD
}

// NewAEADSealer creates a ChaCha20-Poly1305 sealer from a base64-encoded 32-byte key.
func NewAEADSealer(encodedKey string) (TokenSealer, error) {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "session encryption key must be base64")
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}

	return &aeadSealer{aead: aead}, nil
}

func (s *aeadSealer) Seal(_ context.Context, plaintext, aad string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), []byte(aad))
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *aeadSealer) Open(_ context.Context, sealed, aad string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("failed to decode sealed token: %w", err)
	}
	if len(raw) < s.aead.NonceSize() {
		return "", fmt.Errorf("sealed token too short")
	}

	nonce, ciphertext := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, []byte(aad))
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}
	return string(plaintext), nil
}

func (s *aeadSealer) Close() error { return nil }

// Keeper is the subset of *secrets.Keeper used for sealing.
type Keeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// keeperSealer delegates sealing to a KMS keeper. KMS envelopes carry their own
// integrity, so the aad is not forwarded.
type keeperSealer struct {
	keeper Keeper
}

// NewKeeperSealer wraps an already opened keeper.
func NewKeeperSealer(keeper Keeper) TokenSealer {
	return &keeperSealer{keeper: keeper}
}

// OpenKeeperSealer opens a gocloud.dev/secrets keeper for the key URI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func OpenKeeperSealer(ctx context.Context, keyURI string) (TokenSealer, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return NewKeeperSealer(keeper), nil
}

func (s *keeperSealer) Seal(ctx context.Context, plaintext, _ string) (string, error) {
	ciphertext, err := s.keeper.Encrypt(ctx, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt with KMS: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (s *keeperSealer) Open(ctx context.Context, sealed, _ string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("failed to decode sealed token: %w", err)
	}
	plaintext, err := s.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt with KMS: %w", err)
	}
	return string(plaintext), nil
}

func (s *keeperSealer) Close() error {
	return s.keeper.Close()
}

// NewTokenSealer selects a sealer: KMS keeper when keyURI is set, local AEAD when
// encodedKey is set, plaintext otherwise.
func NewTokenSealer(ctx context.Context, keyURI, encodedKey string) (TokenSealer, error) {
	switch {
	case keyURI != "":
		return OpenKeeperSealer(ctx, keyURI)
	case encodedKey != "":
		return NewAEADSealer(encodedKey)
	default:
		return NewPlaintextSealer(), nil
	}
}
