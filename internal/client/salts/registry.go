// Package salts is the per-user cache of a default key-derivation salt.
//
// Envelopes embed their own salt, so nothing in the encrypt or decrypt path
// depends on this registry. It exists for compatibility with content that
// was written under a per-user salt; new writes never use it.
package salts

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophjournal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophjournal/internal/common"
	"github.com/dmitrijs2005/gophjournal/internal/cryptox"
)

const keyPrefix = "salt:"

// ErrCorruptSalt reports a stored value that is not a base64 SaltSize salt.
var ErrCorruptSalt = errors.New("stored salt is corrupt")

// Registry persists salts through a metadata repository, base64 encoded,
// under "salt:<userID>".
type Registry struct {
	repo     metadata.Repository
	provider cryptox.Provider
}

func NewRegistry(repo metadata.Repository, provider cryptox.Provider) *Registry {
	if provider == nil {
		provider = cryptox.Standard()
	}
	return &Registry{repo: repo, provider: provider}
}

func storageKey(userID string) string {
	return keyPrefix + userID
}

// GetOrCreate returns the stored salt for userID, generating and persisting
// a random one on first use.
func (r *Registry) GetOrCreate(ctx context.Context, userID string) ([]byte, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", common.ErrorValidation)
	}

	salt, err := r.Lookup(ctx, userID)
	if err == nil {
		return salt, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	fresh, err := r.provider.Random(cryptox.SaltSize)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	stored, err := r.repo.SetIfAbsent(ctx, storageKey(userID), []byte(base64.StdEncoding.EncodeToString(fresh)))
	if err != nil {
		return nil, fmt.Errorf("persist salt: %w", err)
	}
	return decode(stored)
}

// Lookup returns the stored salt for userID or common.ErrorNotFound.
func (r *Registry) Lookup(ctx context.Context, userID string) ([]byte, error) {
	raw, err := r.repo.Get(ctx, storageKey(userID))
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

// Forget removes the stored salt of userID. Envelopes carry their own salt,
// so existing ciphertext stays readable.
func (r *Registry) Forget(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: empty user id", common.ErrorValidation)
	}
	return r.repo.Delete(ctx, storageKey(userID))
}

// Users lists user ids that have a stored salt.
func (r *Registry) Users(ctx context.Context) ([]string, error) {
	m, err := r.repo.ListPrefix(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}
	users := make([]string, 0, len(m))
	for k := range m {
		users = append(users, k[len(keyPrefix):])
	}
	return users, nil
}

func decode(raw []byte) ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(string(raw))
	if err != nil || len(salt) != cryptox.SaltSize {
		return nil, ErrCorruptSalt
	}
	return salt, nil
}
