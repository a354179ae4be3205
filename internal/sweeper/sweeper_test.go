package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"cart-api/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	abandonable    []domain.Cart
	abandonableErr error
	purgeable      []domain.Cart
	purgeableErr   error
	markErrs       map[string]error
	deleteErrs     map[string]error

	abandonCutoff time.Time
	purgeCutoff   time.Time
	marked        []string
	markedAt      []time.Time
	deleted       []string
}

func (s *stubStore) ListAbandonable(_ context.Context, cutoff time.Time) ([]domain.Cart, error) {
	s.abandonCutoff = cutoff
	return s.abandonable, s.abandonableErr
}

func (s *stubStore) ListPurgeable(_ context.Context, cutoff time.Time) ([]domain.Cart, error) {
	s.purgeCutoff = cutoff
	return s.purgeable, s.purgeableErr
}

func (s *stubStore) MarkAbandoned(_ context.Context, cartID string, now time.Time) error {
	if err := s.markErrs[cartID]; err != nil {
		return err
	}
	s.marked = append(s.marked, cartID)
	s.markedAt = append(s.markedAt, now)
	return nil
}

func (s *stubStore) Delete(_ context.Context, cartID string) error {
	if err := s.deleteErrs[cartID]; err != nil {
		return err
	}
	s.deleted = append(s.deleted, cartID)
	return nil
}

func newSweeper(store Store) *Sweeper {
	return New(store, zerolog.Nop(), 30*time.Minute, 3*time.Hour, 7*24*time.Hour)
}

func TestRunOnceMarksIdleCarts(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := &stubStore{
		abandonable: []domain.Cart{
			{ID: "idle-1", LastInteractionAt: now.Add(-4 * time.Hour)},
			{ID: "idle-2", LastInteractionAt: now.Add(-26 * time.Hour)},
		},
	}

	newSweeper(store).RunOnce(context.Background(), now)

	assert.Equal(t, now.Add(-3*time.Hour), store.abandonCutoff)
	assert.Equal(t, []string{"idle-1", "idle-2"}, store.marked)
	require.Len(t, store.markedAt, 2)
	assert.Equal(t, now, store.markedAt[0])
	assert.Empty(t, store.deleted)
}

func TestRunOncePurgesOldAbandonedCarts(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	eightDaysAgo := now.Add(-8 * 24 * time.Hour)
	store := &stubStore{
		purgeable: []domain.Cart{
			{ID: "old-1", AbandonedAt: &eightDaysAgo},
		},
	}

	newSweeper(store).RunOnce(context.Background(), now)

	assert.Equal(t, now.Add(-7*24*time.Hour), store.purgeCutoff)
	assert.Equal(t, []string{"old-1"}, store.deleted)
	assert.Empty(t, store.marked)
}

func TestRunOnceToleratesPerCartFailures(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	abandonedAt := now.Add(-9 * 24 * time.Hour)
	store := &stubStore{
		abandonable: []domain.Cart{
			{ID: "idle-1", LastInteractionAt: now.Add(-4 * time.Hour)},
			{ID: "idle-2", LastInteractionAt: now.Add(-5 * time.Hour)},
			{ID: "idle-3", LastInteractionAt: now.Add(-6 * time.Hour)},
		},
		purgeable: []domain.Cart{
			{ID: "old-1", AbandonedAt: &abandonedAt},
			{ID: "old-2", AbandonedAt: &abandonedAt},
		},
		markErrs:   map[string]error{"idle-2": errors.New("row gone")},
		deleteErrs: map[string]error{"old-1": errors.New("deadlock")},
	}

	newSweeper(store).RunOnce(context.Background(), now)

	assert.Equal(t, []string{"idle-1", "idle-3"}, store.marked)
	assert.Equal(t, []string{"old-2"}, store.deleted)
}

func TestRunOnceListFailuresDoNotPanicOrBlockOtherPass(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	abandonedAt := now.Add(-9 * 24 * time.Hour)
	store := &stubStore{
		abandonableErr: errors.New("db down"),
		purgeable: []domain.Cart{
			{ID: "old-1", AbandonedAt: &abandonedAt},
		},
	}

	newSweeper(store).RunOnce(context.Background(), now)

	assert.Empty(t, store.marked)
	assert.Equal(t, []string{"old-1"}, store.deleted)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	store := &stubStore{}
	s := New(store, zerolog.Nop(), 10*time.Millisecond, 3*time.Hour, 7*24*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancel")
	}
}
