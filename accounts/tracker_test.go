package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"ultrarent/bus"
	"ultrarent/db"
	"ultrarent/models"
)

func seedAccount(t *testing.T, store *db.MemStore, a models.Account) {
	t.Helper()
	if err := store.PutAccount(context.Background(), &a); err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func TestListAvailableLazyExpiry(t *testing.T) {
	store := db.NewMemStore()
	tracker := NewTracker(store, bus.New())

	past := time.Now().Add(-1 * time.Hour)
	seedAccount(t, store, models.Account{
		ID:          "a1",
		Name:        "Heroic Stacked",
		Rank:        "Heroic",
		IsBooked:    true,
		BookedUntil: &past,
	})

	got := tracker.ListAvailable(context.Background(), "")
	if len(got) != 1 {
		t.Fatalf("expected 1 account, got %d", len(got))
	}
	if got[0].IsBooked || got[0].BookedUntil != nil {
		t.Errorf("expired lock not cleared in returned value: %+v", got[0])
	}

	// the correction must have been written back
	stored, err := store.GetAccount(context.Background(), "a1")
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if stored.IsBooked || stored.BookedUntil != nil {
		t.Errorf("expired lock not persisted as cleared: %+v", stored)
	}

	// repeated reads never re-report booked
	got = tracker.ListAvailable(context.Background(), "")
	if got[0].IsBooked {
		t.Error("second read re-reported booked after expiry")
	}
}

func TestListAvailableFutureLockKept(t *testing.T) {
	store := db.NewMemStore()
	tracker := NewTracker(store, bus.New())

	future := time.Now().Add(2 * time.Hour)
	seedAccount(t, store, models.Account{ID: "a1", Name: "x", Rank: "Gold", IsBooked: true, BookedUntil: &future})

	got := tracker.ListAvailable(context.Background(), "")
	if !got[0].IsBooked {
		t.Error("live lock was cleared")
	}
	if got[0].BookedUntil == nil {
		t.Fatal("isBooked=true must imply bookedUntil != nil")
	}
}

func TestListAvailableRankFilter(t *testing.T) {
	store := db.NewMemStore()
	tracker := NewTracker(store, bus.New())
	seedAccount(t, store, models.Account{ID: "a1", Name: "x", Rank: "Gold"})
	seedAccount(t, store, models.Account{ID: "a2", Name: "y", Rank: "Heroic"})

	got := tracker.ListAvailable(context.Background(), "Heroic")
	if len(got) != 1 || got[0].ID != "a2" {
		t.Fatalf("rank filter wrong, got %+v", got)
	}
}

func TestListAvailableSwallowsWriteBackFailure(t *testing.T) {
	store := db.NewMemStore()
	tracker := NewTracker(store, bus.New())

	past := time.Now().Add(-time.Minute)
	seedAccount(t, store, models.Account{ID: "a1", Name: "x", Rank: "Gold", IsBooked: true, BookedUntil: &past})
	store.FailWrites = errors.New("store down")

	// caller still receives the corrected in-memory value
	got := tracker.ListAvailable(context.Background(), "")
	if len(got) != 1 || got[0].IsBooked {
		t.Fatalf("corrected value not returned despite write failure: %+v", got)
	}
}

func TestGetByIDAppliesLazyExpiry(t *testing.T) {
	store := db.NewMemStore()
	tracker := NewTracker(store, bus.New())

	past := time.Now().Add(-time.Minute)
	seedAccount(t, store, models.Account{ID: "a1", Name: "x", Rank: "Gold", IsBooked: true, BookedUntil: &past})

	a, err := tracker.GetByID(context.Background(), "a1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if a.IsBooked || a.BookedUntil != nil {
		t.Errorf("point lookup did not self-correct: %+v", a)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	tracker := NewTracker(db.NewMemStore(), bus.New())
	if _, err := tracker.GetByID(context.Background(), "missing"); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLockUnlock(t *testing.T) {
	store := db.NewMemStore()
	tracker := NewTracker(store, bus.New())
	seedAccount(t, store, models.Account{ID: "a1", Name: "x", Rank: "Gold"})

	until := time.Now().Add(3 * time.Hour)
	if err := tracker.Lock(context.Background(), "a1", until); err != nil {
		t.Fatalf("Lock: %v", err)
	}

	a, _ := store.GetAccount(context.Background(), "a1")
	if !a.IsBooked || a.BookedUntil == nil || !a.BookedUntil.Equal(until) {
		t.Fatalf("lock not applied: %+v", a)
	}

	// locking again extends the window
	later := until.Add(12 * time.Hour)
	if err := tracker.Lock(context.Background(), "a1", later); err != nil {
		t.Fatalf("re-Lock: %v", err)
	}
	a, _ = store.GetAccount(context.Background(), "a1")
	if !a.BookedUntil.Equal(later) {
		t.Fatalf("re-lock did not extend window: %+v", a)
	}

	if err := tracker.Unlock(context.Background(), "a1"); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	a, _ = store.GetAccount(context.Background(), "a1")
	if a.IsBooked || a.BookedUntil != nil {
		t.Fatalf("unlock not applied: %+v", a)
	}
}

func TestSetAvailabilityVersionConflict(t *testing.T) {
	store := db.NewMemStore()
	seedAccount(t, store, models.Account{ID: "a1", Name: "x", Rank: "Gold"})

	until := time.Now().Add(time.Hour)
	if err := store.SetAvailability(context.Background(), "a1", true, &until, 0); err != nil {
		t.Fatalf("first CAS: %v", err)
	}
	// stale version loses
	err := store.SetAvailability(context.Background(), "a1", false, nil, 0)
	if !errors.Is(err, db.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
}

func TestMutationsPublishChanges(t *testing.T) {
	store := db.NewMemStore()
	b := bus.New()
	tracker := NewTracker(store, b)
	seedAccount(t, store, models.Account{ID: "a1", Name: "x", Rank: "Gold"})

	sub := b.Subscribe()
	defer sub.Cancel()

	if err := tracker.Lock(context.Background(), "a1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Lock: %v", err)
	}

	select {
	case <-sub.C:
	case <-time.After(time.Second):
		t.Fatal("no change notification after lock")
	}
}
