package application

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/OliveiraNt/ltu-generator/internal/infrastructure/repository"
	"github.com/OliveiraNt/ltu-generator/internal/infrastructure/storage"
	"github.com/OliveiraNt/ltu-generator/internal/testutil"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*TabStore, *testutil.FakeTabRepository) {
	t.Helper()
	repo := testutil.NewFakeTabRepository()
	s := NewTabStore(domain.VariantBasic, repo)
	clock := time.UnixMilli(1_700_000_000_000)
	s.now = func() time.Time { return clock }
	return s, repo
}

func TestTabStore_Defaults(t *testing.T) {
	s, _ := newStore(t)
	require.Equal(t, domain.DefaultTabs(), s.Tabs())
	require.Equal(t, "1", s.Active().ID)
}

func TestTabStore_AddTab(t *testing.T) {
	ctx := context.Background()
	s, repo := newStore(t)

	tab, err := s.AddTab(ctx)
	require.NoError(t, err)
	require.Equal(t, "1700000000000", tab.ID)
	require.Equal(t, "Tab 4", tab.Heading)
	require.Equal(t, "Content for tab 4", tab.Content)
	require.Equal(t, tab.ID, s.Active().ID)
	require.Equal(t, s.Tabs(), repo.Last(domain.VariantBasic))

	// the clock did not move; the id still has to be unique
	tab2, err := s.AddTab(ctx)
	require.NoError(t, err)
	require.Equal(t, "1700000000001", tab2.ID)
}

func TestTabStore_AddTabAtLimit(t *testing.T) {
	ctx := context.Background()
	s, repo := newStore(t)
	for i := 0; i < 12; i++ {
		_, err := s.AddTab(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, domain.MaxTabs, s.Count())
	saves := repo.Saves

	_, err := s.AddTab(ctx)
	require.ErrorIs(t, err, ErrMaxTabs)
	require.Equal(t, domain.MaxTabs, s.Count())
	require.Equal(t, saves, repo.Saves)
}

func TestTabStore_RemoveLastTab(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.RemoveTab(ctx, "1"))
	require.NoError(t, s.RemoveTab(ctx, "2"))
	require.Equal(t, 1, s.Count())

	err := s.RemoveTab(ctx, "3")
	require.ErrorIs(t, err, ErrMinTabs)
	require.Equal(t, 1, s.Count())
	require.Equal(t, "3", s.Active().ID)
}

func TestTabStore_RemoveActiveFallsBackToFirst(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.SetActive("2"))
	require.NoError(t, s.RemoveTab(ctx, "2"))
	require.Equal(t, "1", s.Active().ID)

	require.NoError(t, s.SetActive("3"))
	require.NoError(t, s.RemoveTab(ctx, "1"))
	require.Equal(t, "3", s.Active().ID, "removing an inactive tab keeps the selection")
}

func TestTabStore_RemoveUnknown(t *testing.T) {
	s, _ := newStore(t)
	require.ErrorIs(t, s.RemoveTab(context.Background(), "nope"), ErrTabNotFound)
	require.Equal(t, 3, s.Count())
}

func TestTabStore_Updates(t *testing.T) {
	ctx := context.Background()
	s, repo := newStore(t)

	require.NoError(t, s.UpdateHeading(ctx, "2", "<em>Intro</em>"))
	require.NoError(t, s.UpdateContent(ctx, "2", ""))
	tabs := s.Tabs()
	require.Equal(t, "<em>Intro</em>", tabs[1].Heading)
	require.Equal(t, "", tabs[1].Content)
	require.Equal(t, tabs, repo.Last(domain.VariantBasic))

	require.ErrorIs(t, s.UpdateHeading(ctx, "x", "y"), ErrTabNotFound)
	require.ErrorIs(t, s.SetActive("x"), ErrTabNotFound)
}

func TestTabStore_TabsReturnsCopy(t *testing.T) {
	s, _ := newStore(t)
	tabs := s.Tabs()
	tabs[0].Heading = "mutated"
	require.Equal(t, "Tab 1", s.Tabs()[0].Heading)
}

func TestTabStore_SaveFailureKeepsMutation(t *testing.T) {
	s, repo := newStore(t)
	repo.SaveErr = errors.New("disk full")
	_, err := s.AddTab(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, s.Count())
}

func TestTabStore_RandomOperationsKeepInvariants(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			_, err := s.AddTab(ctx)
			if err != nil {
				require.ErrorIs(t, err, ErrMaxTabs)
			}
		case 1:
			tabs := s.Tabs()
			id := tabs[rng.Intn(len(tabs))].ID
			if err := s.RemoveTab(ctx, id); err != nil {
				require.ErrorIs(t, err, ErrMinTabs)
			}
		case 2:
			tabs := s.Tabs()
			require.NoError(t, s.SetActive(tabs[rng.Intn(len(tabs))].ID))
		}

		tabs := s.Tabs()
		require.GreaterOrEqual(t, len(tabs), domain.MinTabs)
		require.LessOrEqual(t, len(tabs), domain.MaxTabs)
		require.True(t, domain.ValidCollection(tabs))
		require.GreaterOrEqual(t, domain.IndexOf(tabs, s.Active().ID), 0)
	}
}

func TestTabStore_LoadRestoresSaved(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTabRepository(storage.NewMemoryStore())

	first := NewTabStore(domain.VariantAdvanced, repo)
	_, err := first.AddTab(ctx)
	require.NoError(t, err)
	require.NoError(t, first.UpdateContent(ctx, "2", "<p>Saved</p>"))

	second := NewTabStore(domain.VariantAdvanced, repo)
	require.True(t, second.Load(ctx))
	require.Equal(t, first.Tabs(), second.Tabs())
	require.Equal(t, "1", second.Active().ID)
}

func TestTabStore_LoadIgnoresBadData(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, domain.VariantBasic.StorageKey(), "{oops"))

	s := NewTabStore(domain.VariantBasic, repository.NewTabRepository(store))
	require.False(t, s.Load(ctx))
	require.Equal(t, domain.DefaultTabs(), s.Tabs())

	empty := NewTabStore(domain.VariantAdvanced, repository.NewTabRepository(store))
	require.False(t, empty.Load(ctx))
	require.Equal(t, domain.DefaultTabs(), empty.Tabs())
}
