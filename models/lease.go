package models

import "time"

// LeaseStatus is the approval state of a lease/purchase request.
type LeaseStatus string

const (
	LeasePendingManager LeaseStatus = "pending_manager"
	LeasePendingOwner   LeaseStatus = "pending_owner"
	LeaseApproved       LeaseStatus = "approved"
	LeaseRejected       LeaseStatus = "rejected"
	LeaseCancelled      LeaseStatus = "cancelled"
)

func (s LeaseStatus) Valid() bool {
	switch s {
	case LeasePendingManager, LeasePendingOwner, LeaseApproved, LeaseRejected, LeaseCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are permitted.
func (s LeaseStatus) Terminal() bool {
	return s == LeaseApproved || s == LeaseRejected || s == LeaseCancelled
}

// LeaseRequest is the audit artifact of a rent/buy request. Requests are
// never deleted; they only reach a terminal status.
type LeaseRequest struct {
	LeaseID     string      `json:"leaseId" bson:"leaseId"`
	ApartmentID string      `json:"apartmentId" bson:"apartmentId"`
	RequesterID string      `json:"requesterId" bson:"requesterId"`
	Type        ListingMode `json:"type" bson:"type"`

	// Snapshots taken at submission; never recomputed from the apartment.
	MonthlyRent float64 `json:"monthlyRent,omitempty" bson:"monthlyRent,omitempty"`
	TotalPrice  float64 `json:"totalPrice,omitempty" bson:"totalPrice,omitempty"`
	Months      int     `json:"months,omitempty" bson:"months,omitempty"`

	Note         string `json:"note,omitempty" bson:"note,omitempty"`
	ContactName  string `json:"contactName,omitempty" bson:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty" bson:"contactPhone,omitempty"`

	Status LeaseStatus `json:"status" bson:"status"`

	DecidedBy      string    `json:"decidedBy,omitempty" bson:"decidedBy,omitempty"`
	DecidedAt      time.Time `json:"decidedAt,omitempty" bson:"decidedAt,omitempty"`
	OwnerDecidedBy string    `json:"ownerDecidedBy,omitempty" bson:"ownerDecidedBy,omitempty"`
	OwnerDecidedAt time.Time `json:"ownerDecidedAt,omitempty" bson:"ownerDecidedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
