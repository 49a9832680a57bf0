package accounts

import (
	"context"
	"errors"
	"log"
	"time"

	"ultrarent/bus"
	"ultrarent/db"
	"ultrarent/models"
)

// Tracker owns the isBooked/bookedUntil pair on accounts. Stale locks are
// corrected lazily at read time; there is no background timer.
type Tracker struct {
	store db.AccountStore
	bus   *bus.Bus
	now   func() time.Time
}

func NewTracker(store db.AccountStore, b *bus.Bus) *Tracker {
	return &Tracker{store: store, bus: b, now: time.Now}
}

// ListAvailable returns all accounts, optionally filtered by rank at the
// store level. Accounts whose lock has lapsed are returned as available and
// the correction is written back as a side effect; a failed write-back is
// logged and the caller still gets the corrected value. Read errors degrade
// to an empty result, never an error.
func (t *Tracker) ListAvailable(ctx context.Context, rank string) []models.Account {
	accounts, err := t.store.ListAccounts(ctx, rank)
	if err != nil {
		log.Printf("ListAvailable: store read failed: %v", err)
		return nil
	}

	now := t.now()
	for i := range accounts {
		if accounts[i].Expired(now) {
			t.expire(ctx, &accounts[i])
		}
	}
	return accounts
}

// GetByID returns the account or db.ErrNotFound. Lazy expiry applies here too,
// so point lookups never report a lapsed lock as booked.
func (t *Tracker) GetByID(ctx context.Context, id string) (*models.Account, error) {
	a, err := t.store.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Expired(t.now()) {
		t.expire(ctx, a)
	}
	return a, nil
}

// expire flips the in-memory copy to available and persists the correction
// best-effort. A version conflict means somebody else already touched the
// account; the next read reconciles.
func (t *Tracker) expire(ctx context.Context, a *models.Account) {
	fromVersion := a.Version
	a.IsBooked = false
	a.BookedUntil = nil
	a.Version++

	if err := t.store.SetAvailability(ctx, a.ID, false, nil, fromVersion); err != nil {
		log.Printf("lazy expiry write-back failed for account %s: %v", a.ID, err)
		return
	}
	t.bus.Publish()
}

// Lock marks the account booked until the given instant. Calling it again
// extends or overwrites the window. Returns db.ErrVersionConflict when a
// concurrent writer got there first.
func (t *Tracker) Lock(ctx context.Context, accountID string, until time.Time) error {
	a, err := t.store.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if err := t.store.SetAvailability(ctx, accountID, true, &until, a.Version); err != nil {
		return err
	}
	t.bus.Publish()
	return nil
}

// Unlock clears the account's lock.
func (t *Tracker) Unlock(ctx context.Context, accountID string) error {
	a, err := t.store.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if err := t.store.SetAvailability(ctx, accountID, false, nil, a.Version); err != nil {
		return err
	}
	t.bus.Publish()
	return nil
}

// IsConflict reports whether err is the lost-race error surfaced by Lock/Unlock.
func IsConflict(err error) bool {
	return errors.Is(err, db.ErrVersionConflict)
}
