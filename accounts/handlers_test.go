package accounts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ultrarent/bus"
	"ultrarent/db"
	"ultrarent/globals"
	"ultrarent/models"

	"github.com/julienschmidt/httprouter"
)

func requestAs(method, target, userID, role string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	if userID == "" && role == "" {
		return r
	}
	ctx := context.WithValue(r.Context(), globals.UserIDKey, userID)
	ctx = context.WithValue(ctx, globals.RoleKey, role)
	return r.WithContext(ctx)
}

func TestGetAccountCredentialDisclosure(t *testing.T) {
	store := db.NewMemStore()
	b := bus.New()
	h := NewHandlers(NewTracker(store, b), store, b)

	until := time.Now().Add(3 * time.Hour)
	seedAccount(t, store, models.Account{
		ID:          "a1",
		Name:        "Diamond Smurf",
		Rank:        "Diamond",
		Username:    "ff-login",
		Password:    "ff-secret",
		IsBooked:    true,
		BookedUntil: &until,
	})
	if err := store.InsertBooking(context.Background(), &models.Booking{
		OrderID:    "o1",
		AccountID:  "a1",
		CustomerID: "u1",
		Status:     models.BookingActive,
		EndTime:    until,
	}); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	cases := []struct {
		name     string
		userID   string
		role     string
		wantSeen bool
	}{
		{"admin", "staff1", models.RoleAdmin, true},
		{"active renter", "u1", models.RoleCustomer, true},
		{"other customer", "u2", models.RoleCustomer, false},
		{"guest", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := requestAs("GET", "/api/accounts/a1", tc.userID, tc.role)
			h.GetAccount(rec, req, httprouter.Params{{Key: "id", Value: "a1"}})

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var got models.Account
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			seen := got.Username != "" || got.Password != ""
			if seen != tc.wantSeen {
				t.Errorf("credentials visible = %v, want %v (username=%q)", seen, tc.wantSeen, got.Username)
			}
		})
	}
}

func TestGetAccountExpiredBookingHidesCredentials(t *testing.T) {
	store := db.NewMemStore()
	b := bus.New()
	h := NewHandlers(NewTracker(store, b), store, b)

	seedAccount(t, store, models.Account{
		ID:       "a1",
		Name:     "Gold Grinder",
		Rank:     "Gold",
		Username: "ff-login",
		Password: "ff-secret",
	})
	// status never flipped to COMPLETED, but the window is over
	if err := store.InsertBooking(context.Background(), &models.Booking{
		OrderID:    "o1",
		AccountID:  "a1",
		CustomerID: "u1",
		Status:     models.BookingActive,
		EndTime:    time.Now().Add(-1 * time.Hour),
	}); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	rec := httptest.NewRecorder()
	req := requestAs("GET", "/api/accounts/a1", "u1", models.RoleCustomer)
	h.GetAccount(rec, req, httprouter.Params{{Key: "id", Value: "a1"}})

	var got models.Account
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Username != "" || got.Password != "" {
		t.Errorf("credentials leaked past the booking window: username=%q", got.Username)
	}
}

func TestCreateAccountRejectsUnknownRank(t *testing.T) {
	store := db.NewMemStore()
	b := bus.New()
	h := NewHandlers(NewTracker(store, b), store, b)

	body := `{"name":"Mystery Tier","rank":"Mythic"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/accounts", strings.NewReader(body))
	h.CreateAccount(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if accs, _ := store.ListAccounts(context.Background(), ""); len(accs) != 0 {
		t.Errorf("account persisted despite invalid rank: %+v", accs)
	}
}

func TestCreateAccountAcceptsKnownRanks(t *testing.T) {
	store := db.NewMemStore()
	b := bus.New()
	h := NewHandlers(NewTracker(store, b), store, b)

	for _, rank := range models.Ranks {
		body := `{"name":"Listing","rank":"` + rank + `"}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/accounts", strings.NewReader(body))
		h.CreateAccount(rec, req, nil)
		if rec.Code != http.StatusCreated {
			t.Errorf("rank %q: status = %d, want 201", rank, rec.Code)
		}
	}
}
