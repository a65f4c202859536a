package editor

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/voiq/internal/model"
	"github.com/Veraticus/voiq/internal/service"
)

// IdentityCacheKey is the cache key holding the remembered email.
const IdentityCacheKey = "voiq-email"

// Resolver remembers who the user is across sessions. It never touches the
// remote store.
type Resolver struct {
	cache service.Cache
	key   string
}

// NewResolver creates a Resolver backed by cache.
func NewResolver(cache service.Cache) *Resolver {
	return &Resolver{cache: cache, key: IdentityCacheKey}
}

// Resolve returns the remembered identity. ok is false when the user has not
// identified yet, which is not an error.
func (r *Resolver) Resolve() (model.Identity, bool, error) {
	raw, ok, err := r.cache.Get(r.key)
	if err != nil {
		return "", false, fmt.Errorf("failed to read identity: %w", err)
	}
	if !ok {
		return "", false, nil
	}

	id := model.NormalizeIdentity(raw)
	if id.IsZero() {
		return "", false, nil
	}
	return id, true, nil
}

// Submit normalizes raw, remembers it and returns it. Empty input is
// rejected and nothing is stored.
func (r *Resolver) Submit(raw string) (model.Identity, error) {
	id, err := ParseIdentity(raw)
	if err != nil {
		return "", err
	}

	if err := r.cache.Set(r.key, id.String()); err != nil {
		return "", fmt.Errorf("failed to remember identity: %w", err)
	}

	slog.Info("Identity stored", "identity", id)
	return id, nil
}

// ParseIdentity normalizes raw and checks that it looks like an email
// address. Nothing is remembered.
func ParseIdentity(raw string) (model.Identity, error) {
	id := model.NormalizeIdentity(raw)
	if id.IsZero() {
		return "", ErrEmptyIdentity
	}
	if !strings.Contains(id.String(), "@") {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentity, id)
	}
	return id, nil
}

// Forget removes the remembered identity.
func (r *Resolver) Forget() error {
	if err := r.cache.Delete(r.key); err != nil {
		return fmt.Errorf("failed to forget identity: %w", err)
	}
	return nil
}
