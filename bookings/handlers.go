package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"ultrarent/db"
	"ultrarent/models"
	"ultrarent/utils"

	"github.com/julienschmidt/httprouter"
)

type Handlers struct {
	Manager *Manager
	Store   db.Store
}

func NewHandlers(m *Manager, store db.Store) *Handlers {
	return &Handlers{Manager: m, Store: store}
}

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.AccountID == "" || req.UTR == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "accountId and utr are required")
		return
	}

	req.CustomerID = utils.GetUserIDFromRequest(r)
	if req.CustomerID != "" {
		if u, err := h.Store.GetUser(r.Context(), req.CustomerID); err == nil {
			req.CustomerName = u.Name
		}
	}

	b, err := h.Manager.Create(r.Context(), req)
	switch {
	case err != nil && b != nil:
		// Booking persisted but the follow-up account lock failed (lost race,
		// or the account vanished mid-create); the claim still goes to the
		// admin queue. Checked before the sentinel cases so a wrapped
		// not-found from the lock step cannot masquerade as a missing account.
		utils.RespondWithJSON(w, http.StatusCreated, utils.M{
			"booking": b,
			"warning": "account lock failed; availability may lag",
		})
		return
	case errors.Is(err, db.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "account not found")
		return
	case errors.Is(err, ErrBadDuration):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrUnavailable):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create booking")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"booking": b})
}

// ListBookings returns all bookings (optionally ?status=) for admins, or the
// caller's own bookings for customers.
func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	status := r.URL.Query().Get("status")
	if status != "" && !models.ValidStatus(status) {
		utils.RespondWithError(w, http.StatusBadRequest, "unknown status")
		return
	}

	customerID := ""
	if utils.GetRoleFromRequest(r) != models.RoleAdmin {
		customerID = utils.GetUserIDFromRequest(r)
		if customerID == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "login required")
			return
		}
	}

	bookings, err := h.Store.ListBookings(r.Context(), status, customerID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": bookings})
}

func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")
	b, err := h.Store.GetBooking(r.Context(), orderID)
	if errors.Is(err, db.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	if utils.GetRoleFromRequest(r) != models.RoleAdmin &&
		b.CustomerID != "" && b.CustomerID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "not your booking")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

func (h *Handlers) Approve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.applyTransition(w, r, ps.ByName("orderid"), h.Manager.Approve)
}

func (h *Handlers) Reject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.applyTransition(w, r, ps.ByName("orderid"), h.Manager.Reject)
}

func (h *Handlers) Complete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.applyTransition(w, r, ps.ByName("orderid"), h.Manager.Complete)
}

func (h *Handlers) applyTransition(w http.ResponseWriter, r *http.Request, orderID string,
	fn func(ctx context.Context, orderID string) (*models.Booking, error)) {
	b, err := fn(r.Context(), orderID)
	switch {
	case errors.Is(err, db.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
	case errors.Is(err, ErrInvalidTransition):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, db.ErrVersionConflict):
		// Status changed but the account lock/unlock lost a race.
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"booking": b,
			"warning": "account availability conflicted; re-check before retrying",
		})
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "transition failed")
	default:
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": b})
	}
}

// BatchApprove runs the AI-assisted approval path over free-text bank log
// content supplied by the admin.
func (h *Handlers) BatchApprove(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		LogText string `json:"logText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.LogText == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "logText is required")
		return
	}

	result, err := h.Manager.BatchApprove(r.Context(), req.LogText)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "log matching failed: "+err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}
