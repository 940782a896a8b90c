// Package envelope implements the text format in which encrypted journal
// fields are stored and transported:
//
//	enc2:<base64 salt>:<base64 iv>:<base64 ciphertext||tag>
//
// Base64 is the standard padded alphabet. The legacy "enc:" scheme is only
// recognised, never produced or parsed.
package envelope

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophjournal/internal/cryptox"
)

// Scheme selects the cryptographic parameters of an envelope.
type Scheme string

const (
	SchemeLegacy Scheme = "enc"
	SchemeV2     Scheme = "enc2"
)

const (
	separator = ":"

	// PrefixV2 starts every envelope produced by this package.
	PrefixV2 = string(SchemeV2) + separator
	// PrefixLegacy starts envelopes written before the v2 scheme.
	PrefixLegacy = string(SchemeLegacy) + separator

	v2Fields = 4
)

var (
	// ErrMalformed reports a wrong field count or bad base64. Well-formed
	// envelopes with wrong field sizes give cryptox.ErrAuthentication.
	ErrMalformed = errors.New("malformed envelope")
	// ErrUnsupportedScheme reports a recognised scheme that cannot be parsed.
	ErrUnsupportedScheme = errors.New("unsupported envelope scheme")
	// ErrNotEnvelope reports a string without a scheme prefix.
	ErrNotEnvelope = errors.New("not an envelope")
)

// Envelope is a decoded v2 envelope.
type Envelope struct {
	Scheme     Scheme
	Salt       []byte
	IV         []byte
	Ciphertext []byte
}

// New builds a v2 envelope from its parts.
func New(salt, iv, ciphertext []byte) Envelope {
	return Envelope{Scheme: SchemeV2, Salt: salt, IV: iv, Ciphertext: ciphertext}
}

// String encodes e in the persisted field format.
func (e Envelope) String() string {
	enc := base64.StdEncoding
	return strings.Join([]string{
		string(SchemeV2),
		enc.EncodeToString(e.Salt),
		enc.EncodeToString(e.IV),
		enc.EncodeToString(e.Ciphertext),
	}, separator)
}

// SchemeOf reports the scheme tag s starts with, if any.
func SchemeOf(s string) (Scheme, bool) {
	switch {
	case strings.HasPrefix(s, PrefixV2):
		return SchemeV2, true
	case strings.HasPrefix(s, PrefixLegacy):
		return SchemeLegacy, true
	}
	return "", false
}

// IsEncrypted reports whether s carries a recognised scheme tag.
func IsEncrypted(s string) bool {
	_, ok := SchemeOf(s)
	return ok
}

// Parse decodes a v2 envelope. A wrong field count or bad base64 gives
// ErrMalformed. A salt other than 32 bytes, an IV other than 12 bytes or a
// ciphertext shorter than the tag gives cryptox.ErrAuthentication: such data
// is truncated or tampered and can never authenticate.
func Parse(s string) (Envelope, error) {
	scheme, ok := SchemeOf(s)
	if !ok {
		return Envelope{}, ErrNotEnvelope
	}
	if scheme != SchemeV2 {
		return Envelope{}, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}

	parts := strings.Split(s, separator)
	if len(parts) != v2Fields {
		return Envelope{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformed, v2Fields, len(parts))
	}

	salt, err := decodeField("salt", parts[1], cryptox.SaltSize)
	if err != nil {
		return Envelope{}, err
	}
	iv, err := decodeField("iv", parts[2], cryptox.NonceSize)
	if err != nil {
		return Envelope{}, err
	}
	ct, err := decodeField("ciphertext", parts[3], 0)
	if err != nil {
		return Envelope{}, err
	}
	if len(ct) < cryptox.TagSize {
		return Envelope{}, fmt.Errorf("%w: ciphertext shorter than tag", cryptox.ErrAuthentication)
	}

	return Envelope{Scheme: SchemeV2, Salt: salt, IV: iv, Ciphertext: ct}, nil
}

// decodeField decodes one base64 field; size 0 means any length.
func decodeField(name, value string, size int) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	if size > 0 && len(b) != size {
		return nil, fmt.Errorf("%w: %s must be %d bytes, got %d", cryptox.ErrAuthentication, name, size, len(b))
	}
	return b, nil
}
