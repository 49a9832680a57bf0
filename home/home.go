package home

import (
	"encoding/json"
	"errors"
	"net/http"

	"ultrarent/bus"
	"ultrarent/db"
	"ultrarent/models"
	"ultrarent/utils"

	"github.com/julienschmidt/httprouter"
)

type Handlers struct {
	Store db.HomeStore
	Bus   *bus.Bus
}

func NewHandlers(store db.HomeStore, b *bus.Bus) *Handlers {
	return &Handlers{Store: store, Bus: b}
}

// Default storefront content served when the global document is absent or empty.
func defaultConfig() *models.HomeConfig {
	return &models.HomeConfig{
		ID: models.HomeConfigID,
		HeroSlides: []models.HeroSlide{
			{Title: "Rent Top-Tier Accounts", Subtitle: "Instant access after approval", ImageURL: "/static/hero1.jpg"},
			{Title: "Grandmaster Loadouts", Subtitle: "All rare skins unlocked", ImageURL: "/static/hero2.jpg"},
		},
		Marquee: []string{
			"⚡ Instant delivery after payment verification",
			"🎮 Heroic & Grandmaster accounts available",
			"🔒 Safe manual verification",
		},
		TrustBadges: []models.TrustBadge{
			{Icon: "shield", Label: "Verified payments"},
			{Icon: "clock", Label: "3h / 12h / 24h rentals"},
			{Icon: "star", Label: "500+ happy renters"},
		},
		Steps: []models.Step{
			{Title: "Pick an account", Description: "Browse the inventory and choose a rank."},
			{Title: "Pay via UPI", Description: "Scan the QR and pay the exact amount."},
			{Title: "Submit your UTR", Description: "Paste the payment reference at checkout."},
			{Title: "Get credentials", Description: "Login details unlock once an admin approves."},
		},
		CTAText: "Start renting now",
	}
}

// GetHomeConfig serves the editable storefront content, falling back to the
// hardcoded default when the document is missing or carries nothing.
func (h *Handlers) GetHomeConfig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cfg, err := h.Store.GetHomeConfig(r.Context())
	if errors.Is(err, db.ErrNotFound) || (err == nil && cfg.Empty()) {
		utils.RespondWithJSON(w, http.StatusOK, defaultConfig())
		return
	}
	if err != nil {
		// Reads degrade to the default rather than failing the storefront.
		utils.RespondWithJSON(w, http.StatusOK, defaultConfig())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cfg)
}

func (h *Handlers) UpdateHomeConfig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cfg models.HomeConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.Store.PutHomeConfig(r.Context(), &cfg); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db update failed")
		return
	}
	h.Bus.Publish()
	utils.RespondWithJSON(w, http.StatusOK, cfg)
}
