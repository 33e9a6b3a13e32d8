// Package cryptox implements the cryptographic primitives of life-logger:
// password-based key derivation, authenticated encryption of journal
// documents, and password hashing for the credential registry.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/LorenzoDOrtona/life-logger/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	// KeySize is the length of a derived AES-256 key.
	KeySize = 32

	// SaltSize is the length of a per-user key-derivation salt.
	SaltSize = 32

	gcmNonceSize = 12
)

// DeriveKey derives a 32-byte symmetric key from a password and a per-user
// salt using Argon2id. Identical (password, salt) always yields an identical
// key; the cost parameters make offline guessing expensive per attempt.
//
// The key is never persisted or transmitted. Callers hold it in session
// state only and wipe it on logout.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize)
}

// Encrypt seals plaintext with AES-256-GCM under key. A fresh random
// 12-byte nonce is generated on every call and prepended to the returned
// blob, so identical plaintexts produce different ciphertexts and the blob
// is self-contained for storage.
func Encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm init: %w", err)
	}

	nonce := make([]byte, gcmNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	// blob = nonce || ciphertext+tag
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a blob produced by Encrypt. Any key mismatch or bit-level
// corruption fails closed with common.ErrAuthFailure; corrupted plaintext is
// never returned.
func Decrypt(blob []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm init: %w", err)
	}

	if len(blob) < aesgcm.NonceSize() {
		return nil, common.ErrAuthFailure
	}
	nonce, ciphertext := blob[:aesgcm.NonceSize()], blob[aesgcm.NonceSize():]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, common.ErrAuthFailure
	}
	return plaintext, nil
}

// HashPassword returns a salted bcrypt hash of password for storage in the
// credential registry. The password itself is never stored.
func HashPassword(password []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
func VerifyPassword(password []byte, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), password) == nil
}
