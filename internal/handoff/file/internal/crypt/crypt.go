// Package crypt seals the hand-off file with a passphrase.
//
// Layout: magic header, version byte, Argon2id salt, AES-GCM nonce, ciphertext.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Hooks for testing.
//
//nolint:gochecknoglobals // replaced by tests to inject failures
var (
	randReader io.Reader                                     = rand.Reader
	newCipher  func(key []byte) (cipher.Block, error)        = aes.NewCipher
	newGCM     func(block cipher.Block) (cipher.AEAD, error) = cipher.NewGCM
)

const (
	// MagicHeader marks sealed files.
	MagicHeader = "FMTV_ENC"
	// Version is the current layout version.
	Version = byte(1)

	argonTime    = 3
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32

	saltLen  = 16
	nonceLen = 12

	headerLen = len(MagicHeader) + 1
	tagLen    = 16
)

var (
	// ErrInvalidFormat is returned for truncated or unknown layouts.
	ErrInvalidFormat = errors.New("invalid encrypted format")
	// ErrDecryptionFailed is returned for a wrong passphrase or tampered data.
	ErrDecryptionFailed = errors.New("decryption failed: wrong passphrase or corrupted data")
	// ErrNotEncrypted is returned by Decrypt for plain data.
	ErrNotEncrypted = errors.New("data is not encrypted")
)

// Encrypt seals data with a key derived from passphrase.
func Encrypt(data []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(randReader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(randReader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aead, err := deriveAEAD(passphrase, salt)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerLen+saltLen+nonceLen+len(data)+tagLen)
	out = append(out, MagicHeader...)
	out = append(out, Version)
	out = append(out, salt...)
	out = append(out, nonce...)

	return aead.Seal(out, nonce, data, nil), nil
}

// Decrypt opens data sealed by Encrypt.
func Decrypt(data []byte, passphrase string) ([]byte, error) {
	if !IsEncrypted(data) {
		return nil, ErrNotEncrypted
	}

	if len(data) < headerLen+saltLen+nonceLen+tagLen {
		return nil, ErrInvalidFormat
	}

	if v := data[len(MagicHeader)]; v != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, v)
	}

	body := data[headerLen:]
	salt, nonce, sealed := body[:saltLen], body[saltLen:saltLen+nonceLen], body[saltLen+nonceLen:]

	aead, err := deriveAEAD(passphrase, salt)
	if err != nil {
		return nil, err
	}

	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plain, nil
}

// IsEncrypted reports whether data starts with the sealed header.
func IsEncrypted(data []byte) bool {
	return len(data) >= headerLen && string(data[:len(MagicHeader)]) == MagicHeader
}

func deriveAEAD(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	block, err := newCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := newGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return aead, nil
}
