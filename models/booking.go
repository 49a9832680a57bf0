package models

import "time"

// Booking statuses. PENDING and ACTIVE are live; COMPLETED and CANCELLED are terminal.
const (
	BookingPending   = "PENDING"
	BookingActive    = "ACTIVE"
	BookingCompleted = "COMPLETED"
	BookingCancelled = "CANCELLED"
)

// Duration labels shown on the storefront, keyed by hours.
var DurationLabels = map[int]string{
	3:  "3 Hours",
	12: "12 Hours",
	24: "24 Hours",
}

// Booking is a customer's claim to rent an account for a fixed window.
// AccountName and TotalPrice are snapshots taken at creation time; they are
// never refreshed when the account is later renamed or repriced.
type Booking struct {
	OrderID       string    `json:"orderId" bson:"order_id"`
	AccountID     string    `json:"accountId" bson:"accountId"`
	AccountName   string    `json:"accountName" bson:"accountName"`
	DurationLabel string    `json:"durationLabel" bson:"durationLabel"`
	Hours         int       `json:"hours" bson:"hours"`
	TotalPrice    int       `json:"totalPrice" bson:"totalPrice"`
	StartTime     time.Time `json:"startTime" bson:"startTime"`
	EndTime       time.Time `json:"endTime" bson:"endTime"`
	Status        string    `json:"status" bson:"status"`
	UTR           string    `json:"utr" bson:"utr"`
	CustomerID    string    `json:"customerId,omitempty" bson:"customerId,omitempty"`
	CustomerName  string    `json:"customerName,omitempty" bson:"customerName,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

func ValidStatus(s string) bool {
	switch s {
	case BookingPending, BookingActive, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}
