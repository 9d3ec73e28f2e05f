package lease

import (
	"strings"
	"time"

	"habita/errs"
	"habita/models"
	"habita/utils"
)

// Contact identifies who to reach about a request. Guest-style submissions
// fill it by hand; checkout fills it from the user profile.
type Contact struct {
	Name  string `json:"contactName"`
	Email string `json:"contactEmail"`
	Phone string `json:"contactPhone"`
}

func (c Contact) empty() bool {
	return c.Name == "" && c.Email == "" && c.Phone == ""
}

// resolveContact applies the all-or-nothing contact rule: either every field
// is supplied, or all are defaulted from the requester's profile.
func resolveContact(c Contact, profile *models.User) (Contact, error) {
	if c.empty() {
		if profile == nil {
			return Contact{}, errs.Validationf("contactName, contactEmail and contactPhone are required")
		}
		return Contact{Name: profile.Name, Email: profile.Email, Phone: profile.Phone}, nil
	}
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Email) == "" || strings.TrimSpace(c.Phone) == "" {
		return Contact{}, errs.Validationf("contactName, contactEmail and contactPhone must all be provided")
	}
	return c, nil
}

// newRequest builds a LeaseRequest in its initial state. price is the
// snapshot captured by the caller at submission time; it is never recomputed
// from the live apartment.
func newRequest(requesterID, apartmentID string, mode models.ListingMode, price float64, months int, note string, contact Contact) (*models.LeaseRequest, error) {
	if !mode.Valid() {
		return nil, errs.Validationf("type must be rent or buy")
	}
	if price <= 0 {
		return nil, errs.Validationf("snapshot price must be positive")
	}
	if mode == models.ModeRent && !models.ValidMonths(months) {
		return nil, errs.Validationf("months must be between %d and %d", models.MinLeaseMonths, models.MaxLeaseMonths)
	}

	now := time.Now()
	req := &models.LeaseRequest{
		LeaseID:      utils.GetUUID(),
		ApartmentID:  apartmentID,
		RequesterID:  requesterID,
		Type:         mode,
		Note:         note,
		ContactName:  contact.Name,
		ContactEmail: contact.Email,
		ContactPhone: contact.Phone,
		Status:       models.LeasePendingManager,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if mode == models.ModeRent {
		req.MonthlyRent = price
		req.Months = months
	} else {
		req.TotalPrice = price
	}
	return req, nil
}

// FromCartItem converts a checked-out cart line into a request, carrying the
// cart's price snapshot over unchanged.
func FromCartItem(item models.CartItem, contact Contact) (*models.LeaseRequest, error) {
	return newRequest(item.UserID, item.ApartmentID, item.Mode, item.PriceSnapshot, item.Months, "", contact)
}
