package models

import "time"

// Rank tiers, lowest to highest.
var Ranks = []string{"Bronze", "Silver", "Gold", "Platinum", "Diamond", "Heroic", "Grandmaster"}

// ValidRank reports whether rank is one of the known tiers.
func ValidRank(rank string) bool {
	for _, r := range Ranks {
		if r == rank {
			return true
		}
	}
	return false
}

type Skin struct {
	Name          string `json:"name" bson:"name"`
	IsHighlighted bool   `json:"isHighlighted" bson:"isHighlighted"`
}

// Pricing holds the rental price for each offered duration, in whole rupees.
type Pricing struct {
	Hours3  int `json:"hours3" bson:"hours3"`
	Hours12 int `json:"hours12" bson:"hours12"`
	Hours24 int `json:"hours24" bson:"hours24"`
}

// Account is a rentable game login. Username/Password are disclosed to the
// renter only while their booking is active.
type Account struct {
	ID          string     `json:"id" bson:"id"`
	Name        string     `json:"name" bson:"name"`
	Rank        string     `json:"rank" bson:"rank"`
	Skins       []Skin     `json:"skins" bson:"skins"`
	ImageURL    string     `json:"imageUrl" bson:"imageUrl"`
	Description string     `json:"description" bson:"description"`
	Pricing     Pricing    `json:"pricing" bson:"pricing"`
	IsBooked    bool       `json:"isBooked" bson:"isBooked"`
	BookedUntil *time.Time `json:"bookedUntil,omitempty" bson:"bookedUntil,omitempty"`
	Username    string     `json:"username,omitempty" bson:"username,omitempty"`
	Password    string     `json:"password,omitempty" bson:"password,omitempty"`
	// Version guards lock/unlock with compare-and-set.
	Version   int64     `json:"-" bson:"version"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// PriceFor returns the rental price for the given duration, or false when the
// duration is not one of the offered tiers.
func (a *Account) PriceFor(hours int) (int, bool) {
	switch hours {
	case 3:
		return a.Pricing.Hours3, true
	case 12:
		return a.Pricing.Hours12, true
	case 24:
		return a.Pricing.Hours24, true
	}
	return 0, false
}

// Expired reports whether the account's lock has lapsed at the given instant.
func (a *Account) Expired(now time.Time) bool {
	return a.IsBooked && a.BookedUntil != nil && a.BookedUntil.Before(now)
}
