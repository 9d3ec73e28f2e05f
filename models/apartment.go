package models

import (
	"time"

	"habita/errs"
)

// ApartmentType enumerates the supported unit layouts.
type ApartmentType string

const (
	AptStudio    ApartmentType = "studio"
	Apt1BHK      ApartmentType = "1bhk"
	Apt2BHK      ApartmentType = "2bhk"
	Apt3BHK      ApartmentType = "3bhk"
	Apt4BHK      ApartmentType = "4bhk"
	AptPenthouse ApartmentType = "penthouse"
	AptDuplex    ApartmentType = "duplex"
)

func (t ApartmentType) Valid() bool {
	switch t {
	case AptStudio, Apt1BHK, Apt2BHK, Apt3BHK, Apt4BHK, AptPenthouse, AptDuplex:
		return true
	}
	return false
}

// ApartmentStatus is the availability state of a unit.
type ApartmentStatus string

const (
	StatusVacant      ApartmentStatus = "vacant"
	StatusOccupied    ApartmentStatus = "occupied"
	StatusMaintenance ApartmentStatus = "maintenance"
	StatusReserved    ApartmentStatus = "reserved"
	StatusForRent     ApartmentStatus = "for_rent"
	StatusForSale     ApartmentStatus = "for_sale"
)

func (s ApartmentStatus) Valid() bool {
	switch s {
	case StatusVacant, StatusOccupied, StatusMaintenance, StatusReserved, StatusForRent, StatusForSale:
		return true
	}
	return false
}

// ListingMode says whether an apartment is being taken on rent or bought.
type ListingMode string

const (
	ModeRent ListingMode = "rent"
	ModeBuy  ListingMode = "buy"
)

func (m ListingMode) Valid() bool {
	return m == ModeRent || m == ModeBuy
}

type Apartment struct {
	ApartmentID     string          `json:"apartmentId" bson:"apartmentId"`
	BuildingID      string          `json:"buildingId,omitempty" bson:"buildingId,omitempty"`
	Floor           int             `json:"floor,omitempty" bson:"floor,omitempty"`
	Number          string          `json:"number,omitempty" bson:"number,omitempty"`
	Type            ApartmentType   `json:"type" bson:"type"`
	Area            float64         `json:"area" bson:"area"`
	Bedrooms        int             `json:"bedrooms" bson:"bedrooms"`
	Bathrooms       int             `json:"bathrooms" bson:"bathrooms"`
	Balconies       int             `json:"balconies" bson:"balconies"`
	ParkingSlots    int             `json:"parkingSlots" bson:"parkingSlots"`
	MonthlyRent     float64         `json:"monthlyRent,omitempty" bson:"monthlyRent,omitempty"`
	SalePrice       float64         `json:"salePrice,omitempty" bson:"salePrice,omitempty"`
	Deposit         float64         `json:"deposit,omitempty" bson:"deposit,omitempty"`
	MaintenanceFee  float64         `json:"maintenanceFee,omitempty" bson:"maintenanceFee,omitempty"`
	Status          ApartmentStatus `json:"status" bson:"status"`
	IsListedForRent bool            `json:"isListedForRent" bson:"isListedForRent"`
	IsListedForSale bool            `json:"isListedForSale" bson:"isListedForSale"`
	OwnerID         string          `json:"ownerId,omitempty" bson:"ownerId,omitempty"`
	CreatedBy       string          `json:"createdBy" bson:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// ListedFor reports whether the apartment is currently listed for the mode.
func (a *Apartment) ListedFor(mode ListingMode) bool {
	if mode == ModeRent {
		return a.IsListedForRent
	}
	return a.IsListedForSale
}

// PriceFor returns the listed price for the mode.
func (a *Apartment) PriceFor(mode ListingMode) float64 {
	if mode == ModeRent {
		return a.MonthlyRent
	}
	return a.SalePrice
}

// Validate checks the structural invariants of an apartment record: type and
// status enums, non-negative counts, and price-positivity for active listings.
func (a *Apartment) Validate() error {
	if !a.Type.Valid() {
		return errs.Validationf("unknown apartment type %q", a.Type)
	}
	if a.Status != "" && !a.Status.Valid() {
		return errs.Validationf("unknown apartment status %q", a.Status)
	}
	if a.Area <= 0 {
		return errs.Validationf("area must be positive")
	}
	if a.Bedrooms < 0 || a.Bathrooms < 0 || a.Balconies < 0 || a.ParkingSlots < 0 {
		return errs.Validationf("room and parking counts cannot be negative")
	}
	if a.MonthlyRent < 0 || a.SalePrice < 0 || a.Deposit < 0 || a.MaintenanceFee < 0 {
		return errs.Validationf("prices cannot be negative")
	}
	if a.IsListedForRent && a.MonthlyRent <= 0 {
		return errs.Validationf("monthlyRent must be positive when listed for rent")
	}
	if a.IsListedForSale && a.SalePrice <= 0 {
		return errs.Validationf("salePrice must be positive when listed for sale")
	}
	return nil
}
