package pay

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"ultrarent/db"
	"ultrarent/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

type Handlers struct {
	Store db.BookingStore
	Cfg   Config
}

func NewHandlers(store db.BookingStore, cfg Config) *Handlers {
	return &Handlers{Store: store, Cfg: cfg}
}

// PaymentQR renders the booking's UPI deep link as a PNG QR code.
func (h *Handlers) PaymentQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, err := h.Store.GetBooking(r.Context(), ps.ByName("orderid"))
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, "booking not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	qrPNG, err := qrcode.Encode(h.Cfg.UPILink(b), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(qrPNG)
}

// PaymentLinks returns the UPI and WhatsApp deep links for a booking.
func (h *Handlers) PaymentLinks(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, err := h.Store.GetBooking(r.Context(), ps.ByName("orderid"))
	if errors.Is(err, db.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"orderId":      b.OrderID,
		"amount":       b.TotalPrice,
		"upiLink":      h.Cfg.UPILink(b),
		"whatsappLink": h.Cfg.WhatsAppLink(b),
	})
}

// PrintReceipt emits a one-page PDF recap of the booking with the UPI QR
// embedded.
func (h *Handlers) PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, err := h.Store.GetBooking(r.Context(), ps.ByName("orderid"))
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, "booking not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	qrPNG, err := qrcode.Encode(h.Cfg.UPILink(b), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Rental Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order ID: %s", b.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Account: %s", b.AccountName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Duration: %s", b.DurationLabel))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Price: INR %d", b.TotalPrice))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", b.Status))
	pdf.Ln(8)
	if b.UTR != "" {
		pdf.Cell(0, 10, fmt.Sprintf("UTR: %s", b.UTR))
		pdf.Ln(8)
	}
	pdf.Ln(4)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+b.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
