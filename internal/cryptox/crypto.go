// Package cryptox wraps the cryptographic primitives used by the journal
// client: PBKDF2 key derivation over a user identifier and AES-256-GCM.
//
// All primitives are reached through a Provider so that callers can run
// against a host without working crypto support (see Unavailable) and still
// decide how to degrade.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeyDerivationIterations is the fixed PBKDF2 round count. It is not
	// recorded in envelopes, so changing it breaks every stored ciphertext.
	KeyDerivationIterations = 600000

	// KeySize is the derived AES-256 key length in bytes.
	KeySize = 32

	// SaltSize is the length of a key derivation salt in bytes.
	SaltSize = 32

	// NonceSize is the AES-GCM nonce length in bytes.
	NonceSize = 12

	// TagSize is the GCM authentication tag appended to every ciphertext.
	TagSize = 16
)

var (
	// ErrProviderUnavailable reports that the host has no usable crypto provider.
	ErrProviderUnavailable = errors.New("crypto provider unavailable")

	// ErrAuthentication reports a wrong key or tampered/truncated ciphertext.
	ErrAuthentication = errors.New("message authentication failed")
)

// Provider is the set of primitives the encryption engine depends on.
type Provider interface {
	// Available reports whether the primitives below can succeed at all.
	Available() bool
	// DeriveKey turns (secret, salt) into a KeySize key. Deterministic.
	DeriveKey(secret string, salt []byte) ([]byte, error)
	// Random returns n cryptographically random bytes.
	Random(n int) ([]byte, error)
	// Seal encrypts plaintext with AES-256-GCM and returns ciphertext||tag.
	Seal(key, nonce, plaintext []byte) ([]byte, error)
	// Open authenticates and decrypts ciphertext||tag.
	Open(key, nonce, ciphertext []byte) ([]byte, error)
}

type standardProvider struct{}

// Standard returns the provider backed by crypto/aes and x/crypto/pbkdf2.
func Standard() Provider {
	return standardProvider{}
}

func (standardProvider) Available() bool { return true }

// DeriveKey runs PBKDF2-HMAC-SHA256 with KeyDerivationIterations rounds.
func (standardProvider) DeriveKey(secret string, salt []byte) ([]byte, error) {
	return DeriveKey(secret, salt), nil
}

func (standardProvider) Random(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return b, nil
}

func (standardProvider) Seal(key, nonce, plaintext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", aead.NonceSize(), len(nonce))
	}
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

func (standardProvider) Open(key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() || len(ciphertext) < aead.Overhead() {
		return nil, ErrAuthentication
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

// DeriveKey derives the per-(user, salt) AES key. The same inputs always
// produce the same key, which is what lets a reader decrypt without the key
// ever being stored.
func DeriveKey(secret string, salt []byte) []byte {
	return pbkdf2.Key([]byte(secret), salt, KeyDerivationIterations, KeySize, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

type unavailableProvider struct{}

// Unavailable returns a provider whose every operation fails with
// ErrProviderUnavailable. It models hosts where encryption is unsupported.
func Unavailable() Provider {
	return unavailableProvider{}
}

func (unavailableProvider) Available() bool { return false }

func (unavailableProvider) DeriveKey(string, []byte) ([]byte, error) {
	return nil, ErrProviderUnavailable
}

func (unavailableProvider) Random(int) ([]byte, error) {
	return nil, ErrProviderUnavailable
}

func (unavailableProvider) Seal(_, _, _ []byte) ([]byte, error) {
	return nil, ErrProviderUnavailable
}

func (unavailableProvider) Open(_, _, _ []byte) ([]byte, error) {
	return nil, ErrProviderUnavailable
}
