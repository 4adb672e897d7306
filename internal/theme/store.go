// Package theme owns the active visual theme for a visitor and its persistence.
//
// A Store is created once per rendering tree with NewStore, which performs the
// single read from durable storage. Components reach it through FromContext;
// only the Store itself mutates the current value.
package theme

import (
	"context"
	"errors"
	"fmt"

	applog "themeapp/internal/log"
	"themeapp/models"
)

// StorageKey is the single durable key holding the theme identifier.
const StorageKey = "theme"

// ErrNoProvider is raised when a component asks for the theme outside a provider scope.
var ErrNoProvider = errors.New("theme: FromContext must be used within a theme provider")

// Storage persists plain string values under a key.
type Storage interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
}

// Store holds the current theme identifier. It is not safe for concurrent
// mutation; a store belongs to a single request's rendering tree.
type Store struct {
	current models.ThemeID
	storage Storage
}

// NewStore restores the persisted theme from storage, falling back to the
// default when the stored value is absent, unreadable or not a known theme.
func NewStore(ctx context.Context, storage Storage) *Store {
	s := &Store{current: models.DefaultTheme, storage: storage}
	if storage == nil {
		return s
	}

	value, ok, err := storage.Load(ctx, StorageKey)
	switch {
	case err != nil:
		applog.Debug(ctx, "theme storage read failed, using default", "error", err)
	case !ok:
	case models.ValidTheme(value):
		s.current = models.ThemeID(value)
	default:
		applog.Debug(ctx, "ignoring invalid persisted theme", "value", value)
	}
	return s
}

// Current returns the active theme identifier.
func (s *Store) Current() models.ThemeID {
	return s.current
}

// Set switches the active theme and writes it through to storage.
// Identifiers outside the supported set resolve to the default theme.
func (s *Store) Set(ctx context.Context, next models.ThemeID) error {
	s.current = models.NormalizeTheme(string(next))
	if s.storage == nil {
		return nil
	}
	if err := s.storage.Save(ctx, StorageKey, string(s.current)); err != nil {
		return fmt.Errorf("theme: persist %s: %w", s.current, err)
	}
	return nil
}

type storeKey struct{}

// WithStore returns a context whose rendering subtree reads the theme from s.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the store installed by WithStore. Calling it outside a
// provider is a wiring mistake and panics with ErrNoProvider.
func FromContext(ctx context.Context) *Store {
	if ctx != nil {
		if s, ok := ctx.Value(storeKey{}).(*Store); ok && s != nil {
			return s
		}
	}
	panic(ErrNoProvider)
}

// Current is shorthand for FromContext(ctx).Current().
func Current(ctx context.Context) models.ThemeID {
	return FromContext(ctx).Current()
}
