package domain

import "context"

// Storage is a string key-value store standing in for the browser's local
// storage. Get reports ok=false for a missing key.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TabRepository persists one tab collection per variant.
type TabRepository interface {
	Load(ctx context.Context, v Variant) ([]Tab, error)
	Save(ctx context.Context, v Variant, tabs []Tab) error
}
