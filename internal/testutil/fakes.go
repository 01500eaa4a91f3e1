// Package testutil holds test doubles shared across package tests.
package testutil

import (
	"context"
	"sync"

	"github.com/OliveiraNt/ltu-generator/internal/domain"
)

// FakeTabRepository is an in-memory domain.TabRepository that records saves
// and can be told to fail.
type FakeTabRepository struct {
	mu      sync.Mutex
	Saved   map[domain.Variant][]domain.Tab
	Saves   int
	LoadErr error
	SaveErr error
}

// NewFakeTabRepository returns an empty repository.
func NewFakeTabRepository() *FakeTabRepository {
	return &FakeTabRepository{Saved: map[domain.Variant][]domain.Tab{}}
}

func (r *FakeTabRepository) Load(_ context.Context, v domain.Variant) ([]domain.Tab, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	tabs, ok := r.Saved[v]
	if !ok {
		return nil, ErrNotSaved
	}
	return append([]domain.Tab(nil), tabs...), nil
}

func (r *FakeTabRepository) Save(_ context.Context, v domain.Variant, tabs []domain.Tab) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Saves++
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Saved[v] = append([]domain.Tab(nil), tabs...)
	return nil
}

// Last returns what was most recently saved for v.
func (r *FakeTabRepository) Last(v domain.Variant) []domain.Tab {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Tab(nil), r.Saved[v]...)
}

// FakeStorage is a domain.Storage whose operations can be told to fail.
type FakeStorage struct {
	mu     sync.Mutex
	Values map[string]string
	Err    error
}

// NewFakeStorage returns an empty storage.
func NewFakeStorage() *FakeStorage {
	return &FakeStorage{Values: map[string]string{}}
}

func (s *FakeStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", false, s.Err
	}
	v, ok := s.Values[key]
	return v, ok, nil
}

func (s *FakeStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Values[key] = value
	return nil
}

func (s *FakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Values, key)
	return s.Err
}

func (s *FakeStorage) Close() error { return nil }
