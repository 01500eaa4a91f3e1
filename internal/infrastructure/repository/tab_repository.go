// Package repository persists tab collections in a domain.Storage and keeps
// the site configuration in sync with its YAML file.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/OliveiraNt/ltu-generator/internal/utils"
)

var (
	// ErrNoSavedTabs is returned by Load when nothing was stored for a variant.
	ErrNoSavedTabs = errors.New("no saved tabs")
	// ErrInvalidSavedTabs is returned by Load when the stored value is not a
	// usable tab collection.
	ErrInvalidSavedTabs = errors.New("invalid saved tabs")
)

// TabRepository stores each variant's collection as a JSON array under the
// variant's storage key.
type TabRepository struct {
	store domain.Storage
}

// NewTabRepository wraps store.
func NewTabRepository(store domain.Storage) *TabRepository {
	return &TabRepository{store: store}
}

// Load returns the saved collection for v. A missing key yields
// ErrNoSavedTabs; undecodable JSON or a collection that breaks the bounds or
// id uniqueness yields ErrInvalidSavedTabs and the stored value is discarded.
func (r *TabRepository) Load(ctx context.Context, v domain.Variant) ([]domain.Tab, error) {
	raw, ok, err := r.store.Get(ctx, v.StorageKey())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", v, err)
	}
	if !ok {
		return nil, ErrNoSavedTabs
	}
	var tabs []domain.Tab
	if err := json.Unmarshal([]byte(raw), &tabs); err != nil {
		r.discard(ctx, v)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSavedTabs, err)
	}
	if !domain.ValidCollection(tabs) {
		r.discard(ctx, v)
		return nil, fmt.Errorf("%w: %d tabs", ErrInvalidSavedTabs, len(tabs))
	}
	return tabs, nil
}

func (r *TabRepository) discard(ctx context.Context, v domain.Variant) {
	if err := r.store.Delete(ctx, v.StorageKey()); err != nil {
		utils.Logger.Warn("failed to discard invalid saved tabs", "variant", v, "err", err)
		return
	}
	utils.Logger.Warn("discarded invalid saved tabs", "variant", v)
}

// Save replaces the stored collection for v.
func (r *TabRepository) Save(ctx context.Context, v domain.Variant, tabs []domain.Tab) error {
	b, err := json.Marshal(tabs)
	if err != nil {
		return fmt.Errorf("encode %s tabs: %w", v, err)
	}
	if err := r.store.Set(ctx, v.StorageKey(), string(b)); err != nil {
		return fmt.Errorf("save %s: %w", v, err)
	}
	return nil
}
