package home

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ultrarent/bus"
	"ultrarent/db"
	"ultrarent/models"
)

func TestGetHomeConfigFallsBackToDefault(t *testing.T) {
	h := NewHandlers(db.NewMemStore(), bus.New())

	rec := httptest.NewRecorder()
	h.GetHomeConfig(rec, httptest.NewRequest(http.MethodGet, "/api/home", nil), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var cfg models.HomeConfig
	if err := json.NewDecoder(rec.Body).Decode(&cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cfg.HeroSlides) == 0 || len(cfg.Steps) == 0 || cfg.CTAText == "" {
		t.Errorf("default config looks empty: %+v", cfg)
	}
}

func TestGetHomeConfigFallsBackWhenStoredEmpty(t *testing.T) {
	store := db.NewMemStore()
	if err := store.PutHomeConfig(context.Background(), &models.HomeConfig{}); err != nil {
		t.Fatal(err)
	}
	h := NewHandlers(store, bus.New())

	rec := httptest.NewRecorder()
	h.GetHomeConfig(rec, httptest.NewRequest(http.MethodGet, "/api/home", nil), nil)

	var cfg models.HomeConfig
	if err := json.NewDecoder(rec.Body).Decode(&cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Empty() {
		t.Error("empty stored config should fall back to the default")
	}
}

func TestUpdateThenGetRoundTrip(t *testing.T) {
	store := db.NewMemStore()
	b := bus.New()
	h := NewHandlers(store, b)

	sub := b.Subscribe()
	defer sub.Cancel()

	body := `{"marquee":["50% off Diamond accounts"],"ctaText":"Rent today"}`
	rec := httptest.NewRecorder()
	h.UpdateHomeConfig(rec, httptest.NewRequest(http.MethodPut, "/api/home", strings.NewReader(body)), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}

	select {
	case <-sub.C:
	default:
		t.Error("update did not publish a change notification")
	}

	rec = httptest.NewRecorder()
	h.GetHomeConfig(rec, httptest.NewRequest(http.MethodGet, "/api/home", nil), nil)

	var cfg models.HomeConfig
	if err := json.NewDecoder(rec.Body).Decode(&cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cfg.Marquee) != 1 || cfg.Marquee[0] != "50% off Diamond accounts" || cfg.CTAText != "Rent today" {
		t.Errorf("round-trip mismatch: %+v", cfg)
	}
	if cfg.ID != models.HomeConfigID {
		t.Errorf("singleton id = %q, want %q", cfg.ID, models.HomeConfigID)
	}
}
