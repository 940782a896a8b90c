// Package engine is the client-side encrypt/decrypt contract every feature
// that stores user content goes through.
//
// Failures never escape as errors. Encryption degrades to returning the
// plaintext (availability over confidentiality on hosts without crypto
// support); decryption degrades to a fixed, renderable sentinel. Callers that
// need to react, e.g. to warn the user that a field was stored unencrypted,
// use the typed Seal/Open variants and inspect Result.Status.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophjournal/internal/common"
	"github.com/dmitrijs2005/gophjournal/internal/cryptox"
	"github.com/dmitrijs2005/gophjournal/internal/envelope"
	"github.com/dmitrijs2005/gophjournal/internal/logging"
)

const (
	// SentinelUnavailable is shown for an envelope on a host that cannot decrypt.
	SentinelUnavailable = "[Encrypted content - cannot decrypt in this environment]"
	// SentinelFailed is shown for an envelope that did not authenticate.
	SentinelFailed = "[Encrypted content - decryption failed]"
)

// Status classifies the outcome of Seal and Open.
type Status int

const (
	// StatusOK: the value was encrypted or decrypted.
	StatusOK Status = iota
	// StatusPassthrough: the input was returned unchanged by contract
	// (empty input, empty user id on encrypt, plaintext on decrypt).
	StatusPassthrough
	// StatusDegraded: no crypto provider. Seal returned plaintext, Open
	// returned SentinelUnavailable.
	StatusDegraded
	// StatusMalformed: the input looked like an envelope but did not parse;
	// it was returned unchanged.
	StatusMalformed
	// StatusFailed: encryption failed (plaintext returned) or decryption
	// did not authenticate (SentinelFailed returned).
	StatusFailed
	// StatusUnsupported: a legacy envelope, returned unchanged.
	StatusUnsupported
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusPassthrough:
		return "passthrough"
	case StatusDegraded:
		return "degraded"
	case StatusMalformed:
		return "malformed"
	case StatusFailed:
		return "failed"
	case StatusUnsupported:
		return "unsupported"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Result is the typed outcome of Seal and Open. Value is always safe to store
// (Seal) or render (Open); Err carries the recovered cause, if any.
type Result struct {
	Value  string
	Status Status
	Err    error
}

// Engine encrypts and decrypts journal fields for a user. It holds no key
// material: every call derives the key from the user id and the salt.
type Engine struct {
	provider cryptox.Provider
	logger   logging.Logger
}

// New returns an Engine over provider. A nil provider means cryptox.Standard.
func New(provider cryptox.Provider, logger logging.Logger) *Engine {
	if provider == nil {
		provider = cryptox.Standard()
	}
	return &Engine{provider: provider, logger: logger}
}

// IsEncrypted reports whether content carries the v2 or legacy scheme tag.
func IsEncrypted(content string) bool {
	return envelope.IsEncrypted(content)
}

// Encrypt returns the envelope for plaintext, or plaintext itself when
// encryption is a no-op or had to fall back. See Seal.
func (e *Engine) Encrypt(ctx context.Context, plaintext, userID string) string {
	return e.Seal(ctx, plaintext, userID).Value
}

// Decrypt returns the plaintext for an envelope, the input unchanged when it
// is not a (parseable v2) envelope, or a sentinel. See Open.
func (e *Engine) Decrypt(ctx context.Context, content, userID string) string {
	return e.Open(ctx, content, userID).Value
}

// Seal encrypts plaintext under a key derived from userID and a fresh salt,
// with a fresh IV. Empty plaintext or user id pass through unchanged.
func (e *Engine) Seal(ctx context.Context, plaintext, userID string) Result {
	if plaintext == "" || userID == "" {
		return Result{Value: plaintext, Status: StatusPassthrough}
	}
	if !e.provider.Available() {
		e.logger.Warn(ctx, "encryption unavailable, storing content unencrypted")
		return Result{Value: plaintext, Status: StatusDegraded, Err: cryptox.ErrProviderUnavailable}
	}

	sealed, err := e.seal(plaintext, userID)
	if err != nil {
		if errors.Is(err, cryptox.ErrProviderUnavailable) {
			e.logger.Warn(ctx, "encryption unavailable, storing content unencrypted")
			return Result{Value: plaintext, Status: StatusDegraded, Err: err}
		}
		e.logger.Error(ctx, "encryption failed, storing content unencrypted", "error", err)
		return Result{Value: plaintext, Status: StatusFailed, Err: err}
	}
	return Result{Value: sealed, Status: StatusOK}
}

func (e *Engine) seal(plaintext, userID string) (string, error) {
	salt, err := e.provider.Random(cryptox.SaltSize)
	if err != nil {
		return "", fmt.Errorf("salt: %w", err)
	}
	iv, err := e.provider.Random(cryptox.NonceSize)
	if err != nil {
		return "", fmt.Errorf("iv: %w", err)
	}
	key, err := e.provider.DeriveKey(userID, salt)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}
	defer common.WipeByteArray(key)

	ct, err := e.provider.Seal(key, iv, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("seal: %w", err)
	}
	return envelope.New(salt, iv, ct).String(), nil
}

// Open decrypts content for userID. It is safe to call on any stored field:
// plaintext and empty strings come back unchanged.
func (e *Engine) Open(ctx context.Context, content, userID string) Result {
	scheme, ok := envelope.SchemeOf(content)
	if !ok {
		return Result{Value: content, Status: StatusPassthrough}
	}
	if !e.provider.Available() {
		e.logger.Warn(ctx, "decryption unavailable in this environment")
		return Result{Value: SentinelUnavailable, Status: StatusDegraded, Err: cryptox.ErrProviderUnavailable}
	}
	if scheme == envelope.SchemeLegacy {
		e.logger.Warn(ctx, "legacy envelope cannot be decrypted, returning it unchanged")
		return Result{Value: content, Status: StatusUnsupported, Err: envelope.ErrUnsupportedScheme}
	}

	env, err := envelope.Parse(content)
	if errors.Is(err, envelope.ErrMalformed) {
		e.logger.Warn(ctx, "malformed envelope, returning it unchanged", "error", err)
		return Result{Value: content, Status: StatusMalformed, Err: err}
	}
	if err != nil {
		return e.openFailure(ctx, err)
	}

	if userID == "" {
		return Result{Value: SentinelFailed, Status: StatusFailed, Err: errors.New("empty user id")}
	}

	key, err := e.provider.DeriveKey(userID, env.Salt)
	if err != nil {
		return e.openFailure(ctx, err)
	}
	defer common.WipeByteArray(key)

	plaintext, err := e.provider.Open(key, env.IV, env.Ciphertext)
	if err != nil {
		return e.openFailure(ctx, err)
	}
	return Result{Value: string(plaintext), Status: StatusOK}
}

func (e *Engine) openFailure(ctx context.Context, err error) Result {
	if errors.Is(err, cryptox.ErrProviderUnavailable) {
		e.logger.Warn(ctx, "decryption unavailable in this environment")
		return Result{Value: SentinelUnavailable, Status: StatusDegraded, Err: err}
	}
	e.logger.Warn(ctx, "decryption failed", "error", err)
	return Result{Value: SentinelFailed, Status: StatusFailed, Err: err}
}
