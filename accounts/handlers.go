package accounts

import (
	"encoding/json"
	"net/http"
	"time"

	"ultrarent/bus"
	"ultrarent/db"
	"ultrarent/models"
	"ultrarent/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers exposes the inventory over HTTP. Credentials on an account are
// disclosed only to admins and to the customer whose booking on it is
// currently active.
type Handlers struct {
	Tracker *Tracker
	Store   db.Store
	Bus     *bus.Bus
}

func NewHandlers(tracker *Tracker, store db.Store, b *bus.Bus) *Handlers {
	return &Handlers{Tracker: tracker, Store: store, Bus: b}
}

func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rank := r.URL.Query().Get("rank")
	accounts := h.Tracker.ListAvailable(r.Context(), rank)

	out := make([]models.Account, 0, len(accounts))
	for _, a := range accounts {
		a.Username = ""
		a.Password = ""
		out = append(out, a)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"accounts": out})
}

func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	a, err := h.Tracker.GetByID(r.Context(), id)
	if err == db.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "account not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	if !h.mayViewCredentials(r, id) {
		a.Username = ""
		a.Password = ""
	}
	utils.RespondWithJSON(w, http.StatusOK, a)
}

func (h *Handlers) mayViewCredentials(r *http.Request, accountID string) bool {
	if utils.GetRoleFromRequest(r) == models.RoleAdmin {
		return true
	}
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		return false
	}
	bookings, err := h.Store.ListBookings(r.Context(), models.BookingActive, userID)
	if err != nil {
		return false
	}
	now := time.Now()
	for _, b := range bookings {
		if b.AccountID == accountID && b.EndTime.After(now) {
			return true
		}
	}
	return false
}

func (h *Handlers) CreateAccount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var a models.Account
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if a.Name == "" || a.Rank == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if !models.ValidRank(a.Rank) {
		utils.RespondWithError(w, http.StatusBadRequest, "unknown rank: "+a.Rank)
		return
	}

	a.ID = utils.GetUUID()
	a.IsBooked = false
	a.BookedUntil = nil
	a.Version = 0
	a.CreatedAt = time.Now()

	if err := h.Store.PutAccount(r.Context(), &a); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db insert failed")
		return
	}
	h.Bus.Publish()
	utils.RespondWithJSON(w, http.StatusCreated, a)
}

func (h *Handlers) UpdateAccount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	existing, err := h.Store.GetAccount(r.Context(), id)
	if err == db.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "account not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	var in models.Account
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if in.Rank != "" && !models.ValidRank(in.Rank) {
		utils.RespondWithError(w, http.StatusBadRequest, "unknown rank: "+in.Rank)
		return
	}

	// Edits never touch the availability pair; that belongs to the tracker.
	in.ID = existing.ID
	in.IsBooked = existing.IsBooked
	in.BookedUntil = existing.BookedUntil
	in.Version = existing.Version
	in.CreatedAt = existing.CreatedAt
	if in.ImageURL == "" {
		in.ImageURL = existing.ImageURL
	}

	if err := h.Store.PutAccount(r.Context(), &in); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db update failed")
		return
	}
	h.Bus.Publish()
	utils.RespondWithJSON(w, http.StatusOK, in)
}

// DeleteAccount removes the inventory row. Bookings referencing it are left
// alone and keep their stale accountId; there is no cascade.
func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := h.Store.DeleteAccount(r.Context(), id); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db delete failed")
		return
	}
	h.Bus.Publish()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
