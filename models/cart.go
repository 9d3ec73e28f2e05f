package models

import (
	"os"
	"strconv"
	"time"
)

// Lease term bounds for rent selections, in months. Overridable through
// LEASE_MIN_MONTHS / LEASE_MAX_MONTHS.
var (
	MinLeaseMonths = envInt("LEASE_MIN_MONTHS", 6)
	MaxLeaseMonths = envInt("LEASE_MAX_MONTHS", 36)
)

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// ValidMonths reports whether a rent term is inside the allowed window.
func ValidMonths(months int) bool {
	return months >= MinLeaseMonths && months <= MaxLeaseMonths
}

// CartItem is one prospective lease or purchase selection in a user's cart.
// Price fields are snapshots taken at add-time; later changes to the listed
// apartment never alter an existing cart line.
type CartItem struct {
	ItemID                 string      `json:"itemId" bson:"itemId"`
	UserID                 string      `json:"userId" bson:"userId"`
	ApartmentID            string      `json:"apartmentId" bson:"apartmentId"`
	Mode                   ListingMode `json:"mode" bson:"mode"`
	Months                 int         `json:"months,omitempty" bson:"months,omitempty"`
	Selected               bool        `json:"selected" bson:"selected"`
	PriceSnapshot          float64     `json:"priceSnapshot" bson:"priceSnapshot"`
	DepositSnapshot        float64     `json:"depositSnapshot" bson:"depositSnapshot"`
	MaintenanceFeeSnapshot float64     `json:"maintenanceFeeSnapshot" bson:"maintenanceFeeSnapshot"`
	AddedAt                time.Time   `json:"addedAt" bson:"addedAt"`
}

// CartTotals is the checkout summary over the selected cart lines.
type CartTotals struct {
	RentTotal  float64 `json:"rentTotal"`
	BuyTotal   float64 `json:"buyTotal"`
	GrandTotal float64 `json:"grandTotal"`
	Selected   int     `json:"selected"`
}
