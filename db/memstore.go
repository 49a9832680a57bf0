package db

import (
	"context"
	"sync"
	"time"

	"ultrarent/models"
)

// MemStore is an in-memory Store used in tests.
type MemStore struct {
	mu       sync.Mutex
	accounts map[string]models.Account
	bookings map[string]models.Booking
	users    map[string]models.User
	home     *models.HomeConfig

	// FailWrites makes every mutating call return this error when set.
	FailWrites error
}

func NewMemStore() *MemStore {
	return &MemStore{
		accounts: make(map[string]models.Account),
		bookings: make(map[string]models.Booking),
		users:    make(map[string]models.User),
	}
}

func (m *MemStore) GetAccount(_ context.Context, id string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *MemStore) ListAccounts(_ context.Context, rank string) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Account
	for _, a := range m.accounts {
		if rank == "" || a.Rank == rank {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemStore) PutAccount(_ context.Context, a *models.Account) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.ID] = *a
	return nil
}

func (m *MemStore) SetAvailability(_ context.Context, id string, isBooked bool, until *time.Time, fromVersion int64) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return ErrNotFound
	}
	if a.Version != fromVersion {
		return ErrVersionConflict
	}
	a.IsBooked = isBooked
	a.BookedUntil = until
	a.Version++
	m.accounts[id] = a
	return nil
}

func (m *MemStore) DeleteAccount(_ context.Context, id string) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, id)
	return nil
}

func (m *MemStore) GetBooking(_ context.Context, orderID string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *MemStore) ListBookings(_ context.Context, status, customerID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if status != "" && b.Status != status {
			continue
		}
		if customerID != "" && b.CustomerID != customerID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *MemStore) InsertBooking(_ context.Context, b *models.Booking) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.OrderID] = *b
	return nil
}

func (m *MemStore) SetBookingStatus(_ context.Context, orderID, status string) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[orderID]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	m.bookings[orderID] = b
	return nil
}

func (m *MemStore) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *MemStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) InsertUser(_ context.Context, u *models.User) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	return nil
}

func (m *MemStore) SetLastLogin(_ context.Context, id string, at time.Time) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLogin = at
	m.users[id] = u
	return nil
}

func (m *MemStore) GetHomeConfig(_ context.Context) (*models.HomeConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.home == nil {
		return nil, ErrNotFound
	}
	cfg := *m.home
	return &cfg, nil
}

func (m *MemStore) PutHomeConfig(_ context.Context, cfg *models.HomeConfig) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *cfg
	c.ID = models.HomeConfigID
	m.home = &c
	return nil
}
