// Package pay builds the manual UPI payment surface: a deep link, a QR
// rendering of it, an outbound WhatsApp summary, and a receipt PDF. Nothing
// here verifies that payment actually occurred; verification is human.
package pay

import (
	"fmt"
	"net/url"
	"os"

	"ultrarent/models"
)

type Config struct {
	UPIID          string // payee VPA, e.g. store@upi
	PayeeName      string
	WhatsAppNumber string // international format without '+'
}

func ConfigFromEnv() Config {
	return Config{
		UPIID:          os.Getenv("UPI_ID"),
		PayeeName:      os.Getenv("UPI_NAME"),
		WhatsAppNumber: os.Getenv("WHATSAPP_NUMBER"),
	}
}

// UPILink builds the upi://pay deep link for a booking. The note field
// carries the order id so the transfer can be matched back by hand.
func (c Config) UPILink(b *models.Booking) string {
	q := url.Values{}
	q.Set("pa", c.UPIID)
	q.Set("pn", c.PayeeName)
	q.Set("am", fmt.Sprintf("%d", b.TotalPrice))
	q.Set("cu", "INR")
	q.Set("tn", b.OrderID)
	return "upi://pay?" + q.Encode()
}

// Summary is the human-readable order recap handed to the messaging link.
func Summary(b *models.Booking) string {
	return fmt.Sprintf("New rental claim\nOrder: %s\nAccount: %s\nDuration: %s\nPrice: ₹%d\nUTR: %s",
		b.OrderID, b.AccountName, b.DurationLabel, b.TotalPrice, b.UTR)
}

// WhatsAppLink is fire-and-forget: no delivery confirmation is tracked.
func (c Config) WhatsAppLink(b *models.Booking) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", c.WhatsAppNumber, url.QueryEscape(Summary(b)))
}
