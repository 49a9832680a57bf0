package bookings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ultrarent/accounts"
	"ultrarent/bus"
	"ultrarent/db"
	"ultrarent/matcher"
	"ultrarent/models"
	"ultrarent/utils"
)

var (
	ErrUnavailable       = errors.New("account is currently booked")
	ErrBadDuration       = errors.New("duration must be 3, 12 or 24 hours")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Manager owns booking status transitions and keeps account availability in
// step with each one. The booking write is issued and awaited before the
// account write; there is no atomicity across the two. A crash in between
// leaves the account stale until the next lazy-expiry pass or a manual admin
// correction.
type Manager struct {
	store   db.BookingStore
	tracker *accounts.Tracker
	bus     *bus.Bus
	matcher matcher.LogMatcher
	now     func() time.Time
}

func NewManager(store db.BookingStore, tracker *accounts.Tracker, b *bus.Bus, m matcher.LogMatcher) *Manager {
	return &Manager{store: store, tracker: tracker, bus: b, matcher: m, now: time.Now}
}

type CreateRequest struct {
	AccountID    string `json:"accountId"`
	Hours        int    `json:"hours"`
	UTR          string `json:"utr"`
	CustomerID   string `json:"-"`
	CustomerName string `json:"-"`
}

// Create persists a PENDING booking and immediately locks the account for the
// rental window, before any human verification. A claim that is never paid
// blocks the account until an admin rejects it; that is the accepted cost of
// preventing double-booking during the verification window.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (*models.Booking, error) {
	a, err := m.tracker.GetByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	price, ok := a.PriceFor(req.Hours)
	if !ok {
		return nil, ErrBadDuration
	}
	if a.IsBooked {
		return nil, ErrUnavailable
	}

	start := m.now()
	b := &models.Booking{
		OrderID:       utils.GetUUID(),
		AccountID:     a.ID,
		AccountName:   a.Name, // snapshot; later renames do not propagate
		DurationLabel: models.DurationLabels[req.Hours],
		Hours:         req.Hours,
		TotalPrice:    price, // snapshot of the pricing table at creation
		StartTime:     start,
		EndTime:       start.Add(time.Duration(req.Hours) * time.Hour),
		Status:        models.BookingPending,
		UTR:           req.UTR,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CreatedAt:     start,
	}

	if err := m.store.InsertBooking(ctx, b); err != nil {
		return nil, err
	}
	m.bus.Publish()

	if err := m.tracker.Lock(ctx, a.ID, b.EndTime); err != nil {
		// The booking stands; the lock lost a race or the write failed.
		return b, fmt.Errorf("booking %s created but account lock failed: %w", b.OrderID, err)
	}
	return b, nil
}

// Approve moves a PENDING booking to ACTIVE and re-confirms the account lock.
// Approving an already-ACTIVE booking re-confirms the lock and changes
// nothing else.
func (m *Manager) Approve(ctx context.Context, orderID string) (*models.Booking, error) {
	return m.transition(ctx, orderID, models.BookingActive)
}

// Reject moves a PENDING booking to CANCELLED and unlocks the account.
func (m *Manager) Reject(ctx context.Context, orderID string) (*models.Booking, error) {
	return m.transition(ctx, orderID, models.BookingCancelled)
}

// Complete moves an ACTIVE booking to COMPLETED and unlocks the account.
// There is no automatic completion when the window lapses; the account frees
// itself via lazy expiry while the booking stays ACTIVE until an admin acts.
func (m *Manager) Complete(ctx context.Context, orderID string) (*models.Booking, error) {
	return m.transition(ctx, orderID, models.BookingCompleted)
}

func (m *Manager) transition(ctx context.Context, orderID, target string) (*models.Booking, error) {
	b, err := m.store.GetBooking(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(b.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, target)
	}

	// Booking first, account second.
	if err := m.store.SetBookingStatus(ctx, orderID, target); err != nil {
		return nil, err
	}
	b.Status = target
	m.bus.Publish()

	switch target {
	case models.BookingActive:
		err = m.tracker.Lock(ctx, b.AccountID, b.EndTime)
	case models.BookingCancelled, models.BookingCompleted:
		// Unlocks even if a different booking has since claimed the account;
		// there is no per-booking lock ownership. Known limitation.
		err = m.tracker.Unlock(ctx, b.AccountID)
	}
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return b, fmt.Errorf("booking %s is %s but account update failed: %w", orderID, target, err)
	}
	return b, nil
}

func transitionAllowed(from, to string) bool {
	switch to {
	case models.BookingActive:
		return from == models.BookingPending || from == models.BookingActive
	case models.BookingCancelled:
		return from == models.BookingPending
	case models.BookingCompleted:
		return from == models.BookingActive
	}
	return false
}

// BatchResult reports the outcome of one AI-assisted approval run.
type BatchResult struct {
	Approved []string          `json:"approved"`
	Failed   map[string]string `json:"failed,omitempty"`
	Summary  string            `json:"summary"`
}

// BatchApprove hands the bank-log text plus every PENDING booking's (UTR,
// orderID) pair to the matcher and approves each matched id independently; a
// failed approval never blocks the rest. A matcher failure aborts the whole
// run with no bookings touched.
func (m *Manager) BatchApprove(ctx context.Context, logText string) (*BatchResult, error) {
	pending, err := m.store.ListBookings(ctx, models.BookingPending, "")
	if err != nil {
		return nil, err
	}

	var candidates []matcher.Candidate
	for _, b := range pending {
		if b.UTR == "" {
			continue
		}
		candidates = append(candidates, matcher.Candidate{Reference: b.UTR, OrderID: b.OrderID})
	}

	verdict, err := m.matcher.Extract(ctx, logText, candidates)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Summary: verdict.Summary}
	for _, orderID := range verdict.MatchedOrderIDs {
		if _, err := m.Approve(ctx, orderID); err != nil {
			log.Printf("batch approval: order %s failed: %v", orderID, err)
			if result.Failed == nil {
				result.Failed = make(map[string]string)
			}
			result.Failed[orderID] = err.Error()
			continue
		}
		result.Approved = append(result.Approved, orderID)
	}
	return result, nil
}
