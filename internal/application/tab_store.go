package application

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/OliveiraNt/ltu-generator/internal/utils"
)

// TabStore is the ordered, bounded tab collection of one generator variant.
// Every mutation is written through to the repository.
type TabStore struct {
	mu      sync.RWMutex
	variant domain.Variant
	repo    domain.TabRepository
	tabs    []domain.Tab
	active  string
	now     func() time.Time
}

// NewTabStore returns a store holding the default tabs with the first active.
func NewTabStore(v domain.Variant, repo domain.TabRepository) *TabStore {
	tabs := domain.DefaultTabs()
	return &TabStore{
		variant: v,
		repo:    repo,
		tabs:    tabs,
		active:  tabs[0].ID,
		now:     time.Now,
	}
}

// Load replaces the collection with the saved one, if there is a usable one,
// and selects its first tab. Anything else keeps the defaults; it reports
// whether saved tabs were adopted.
func (s *TabStore) Load(ctx context.Context) bool {
	tabs, err := s.repo.Load(ctx, s.variant)
	if err != nil {
		utils.Logger.Debug("using default tabs", "variant", s.variant, "reason", err)
		return false
	}
	if !domain.ValidCollection(tabs) {
		utils.Logger.Warn("ignoring saved tabs", "variant", s.variant, "count", len(tabs))
		return false
	}
	s.mu.Lock()
	s.tabs = append([]domain.Tab(nil), tabs...)
	s.active = s.tabs[0].ID
	s.mu.Unlock()
	utils.Logger.Info("tabs restored", "variant", s.variant, "count", len(tabs))
	return true
}

// Variant returns the variant this store belongs to.
func (s *TabStore) Variant() domain.Variant {
	return s.variant
}

// Tabs returns a copy of the collection in order.
func (s *TabStore) Tabs() []domain.Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Tab(nil), s.tabs...)
}

// Count returns the number of tabs.
func (s *TabStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tabs)
}

// Active returns the tab being edited.
func (s *TabStore) Active() domain.Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := domain.IndexOf(s.tabs, s.active); i >= 0 {
		return s.tabs[i]
	}
	return s.tabs[0]
}

// SetActive selects the tab with id for editing.
func (s *TabStore) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if domain.IndexOf(s.tabs, id) < 0 {
		return ErrTabNotFound
	}
	s.active = id
	return nil
}

// AddTab appends a default tab and makes it active. A full collection is
// left unchanged and ErrMaxTabs returned.
func (s *TabStore) AddTab(ctx context.Context) (domain.Tab, error) {
	s.mu.Lock()
	if len(s.tabs) >= domain.MaxTabs {
		s.mu.Unlock()
		return domain.Tab{}, ErrMaxTabs
	}
	n := len(s.tabs) + 1
	tab := domain.Tab{
		ID:      s.nextID(),
		Heading: domain.DefaultHeading(n),
		Content: domain.DefaultContent(n),
	}
	s.tabs = append(s.tabs, tab)
	s.active = tab.ID
	snapshot := append([]domain.Tab(nil), s.tabs...)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return tab, nil
}

// RemoveTab deletes the tab with id. The last remaining tab cannot be
// removed (ErrMinTabs). Removing the active tab activates the first one.
func (s *TabStore) RemoveTab(ctx context.Context, id string) error {
	s.mu.Lock()
	if len(s.tabs) <= domain.MinTabs {
		s.mu.Unlock()
		return ErrMinTabs
	}
	i := domain.IndexOf(s.tabs, id)
	if i < 0 {
		s.mu.Unlock()
		return ErrTabNotFound
	}
	s.tabs = append(s.tabs[:i:i], s.tabs[i+1:]...)
	if s.active == id {
		s.active = s.tabs[0].ID
	}
	snapshot := append([]domain.Tab(nil), s.tabs...)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return nil
}

// UpdateHeading replaces the heading of the tab with id verbatim.
func (s *TabStore) UpdateHeading(ctx context.Context, id, text string) error {
	return s.update(ctx, id, func(t *domain.Tab) { t.Heading = text })
}

// UpdateContent replaces the body of the tab with id verbatim.
func (s *TabStore) UpdateContent(ctx context.Context, id, text string) error {
	return s.update(ctx, id, func(t *domain.Tab) { t.Content = text })
}

func (s *TabStore) update(ctx context.Context, id string, apply func(*domain.Tab)) error {
	s.mu.Lock()
	i := domain.IndexOf(s.tabs, id)
	if i < 0 {
		s.mu.Unlock()
		return ErrTabNotFound
	}
	apply(&s.tabs[i])
	snapshot := append([]domain.Tab(nil), s.tabs...)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return nil
}

// nextID derives an id from the current time in milliseconds, stepping
// forward while it collides with an existing tab. Callers hold mu.
func (s *TabStore) nextID() string {
	ms := s.now().UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if domain.IndexOf(s.tabs, id) < 0 {
			return id
		}
		ms++
	}
}

// persist writes the collection. The write outlives a canceled request so a
// mutation that happened is always saved. A failed write is logged; the
// in-memory mutation stands.
func (s *TabStore) persist(ctx context.Context, tabs []domain.Tab) {
	if err := s.repo.Save(context.WithoutCancel(ctx), s.variant, tabs); err != nil {
		utils.Logger.Warn("persist tabs failed", "variant", s.variant, "err", err)
	}
}
