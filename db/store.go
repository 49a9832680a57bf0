package db

import (
	"context"
	"errors"
	"time"

	"ultrarent/models"
)

var (
	// ErrNotFound is returned by point lookups for a missing id.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned when a compare-and-set on an account's
	// availability fields loses a race with a concurrent writer.
	ErrVersionConflict = errors.New("version conflict")
)

// AccountStore is the persistence surface for rentable accounts.
type AccountStore interface {
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context, rank string) ([]models.Account, error)
	PutAccount(ctx context.Context, a *models.Account) error
	// SetAvailability writes isBooked/bookedUntil iff the stored version still
	// equals fromVersion, bumping the version on success.
	SetAvailability(ctx context.Context, id string, isBooked bool, until *time.Time, fromVersion int64) error
	DeleteAccount(ctx context.Context, id string) error
}

// BookingStore is the persistence surface for bookings. Bookings are never
// deleted by normal flow; transitions only ever rewrite the status field.
type BookingStore interface {
	GetBooking(ctx context.Context, orderID string) (*models.Booking, error)
	ListBookings(ctx context.Context, status, customerID string) ([]models.Booking, error)
	InsertBooking(ctx context.Context, b *models.Booking) error
	SetBookingStatus(ctx context.Context, orderID, status string) error
}

type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertUser(ctx context.Context, u *models.User) error
	SetLastLogin(ctx context.Context, id string, at time.Time) error
}

type HomeStore interface {
	GetHomeConfig(ctx context.Context) (*models.HomeConfig, error)
	PutHomeConfig(ctx context.Context, cfg *models.HomeConfig) error
}

// Store bundles the four collections behind one handle.
type Store interface {
	AccountStore
	BookingStore
	UserStore
	HomeStore
}
