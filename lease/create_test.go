package lease

import (
	"testing"

	"habita/errs"
	"habita/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testContact = Contact{Name: "Jo Doe", Email: "jo@example.com", Phone: "555-0101"}

func TestNewRequestRent(t *testing.T) {
	req, err := newRequest("u1", "a1", models.ModeRent, 750, 12, "note", testContact)
	require.NoError(t, err)

	assert.NotEmpty(t, req.LeaseID)
	assert.Equal(t, models.LeasePendingManager, req.Status)
	assert.Equal(t, 750.0, req.MonthlyRent)
	assert.Zero(t, req.TotalPrice)
	assert.Equal(t, 12, req.Months)
	assert.Equal(t, "Jo Doe", req.ContactName)
}

func TestNewRequestBuy(t *testing.T) {
	req, err := newRequest("u1", "a1", models.ModeBuy, 300000, 0, "", testContact)
	require.NoError(t, err)

	assert.Equal(t, 300000.0, req.TotalPrice)
	assert.Zero(t, req.MonthlyRent)
	assert.Zero(t, req.Months)
}

func TestNewRequestValidation(t *testing.T) {
	cases := []struct {
		name   string
		mode   models.ListingMode
		price  float64
		months int
	}{
		{"bad mode", models.ListingMode("swap"), 100, 12},
		{"zero price", models.ModeRent, 0, 12},
		{"negative price", models.ModeBuy, -5, 0},
		{"months below minimum", models.ModeRent, 100, models.MinLeaseMonths - 1},
		{"months above maximum", models.ModeRent, 100, models.MaxLeaseMonths + 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newRequest("u1", "a1", tc.mode, tc.price, tc.months, "", testContact)
			assert.True(t, errs.Is(err, errs.Validation), "expected validation error, got %v", err)
		})
	}
}

func TestResolveContactAllOrNothing(t *testing.T) {
	profile := &models.User{Name: "Pat Profile", Email: "pat@example.com", Phone: "555-0202"}

	t.Run("empty contact falls back to profile", func(t *testing.T) {
		got, err := resolveContact(Contact{}, profile)
		require.NoError(t, err)
		assert.Equal(t, Contact{Name: "Pat Profile", Email: "pat@example.com", Phone: "555-0202"}, got)
	})

	t.Run("full contact wins over profile", func(t *testing.T) {
		got, err := resolveContact(testContact, profile)
		require.NoError(t, err)
		assert.Equal(t, testContact, got)
	})

	t.Run("partial contact is rejected", func(t *testing.T) {
		_, err := resolveContact(Contact{Name: "Jo Doe"}, profile)
		assert.True(t, errs.Is(err, errs.Validation))
	})

	t.Run("empty contact with no profile is rejected", func(t *testing.T) {
		_, err := resolveContact(Contact{}, nil)
		assert.True(t, errs.Is(err, errs.Validation))
	})
}

// Checkout conversions must carry the cart snapshot, not the live price.
func TestFromCartItemUsesSnapshot(t *testing.T) {
	item := models.CartItem{
		ItemID:        "i1",
		UserID:        "u1",
		ApartmentID:   "a1",
		Mode:          models.ModeRent,
		Months:        24,
		PriceSnapshot: 480, // listed rent has since gone up
	}

	req, err := FromCartItem(item, testContact)
	require.NoError(t, err)

	assert.Equal(t, "u1", req.RequesterID)
	assert.Equal(t, "a1", req.ApartmentID)
	assert.Equal(t, 480.0, req.MonthlyRent)
	assert.Equal(t, 24, req.Months)
	assert.Equal(t, models.LeasePendingManager, req.Status)
}
