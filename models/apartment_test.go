package models

import (
	"testing"

	"habita/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validApartment() Apartment {
	return Apartment{
		ApartmentID: "a1",
		Type:        Apt2BHK,
		Area:        82.5,
		Bedrooms:    2,
		Bathrooms:   2,
		Status:      StatusVacant,
	}
}

func TestApartmentValidateOK(t *testing.T) {
	apt := validApartment()
	require.NoError(t, apt.Validate())

	apt.IsListedForRent = true
	apt.MonthlyRent = 900
	require.NoError(t, apt.Validate())
}

func TestApartmentValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Apartment)
	}{
		{"unknown type", func(a *Apartment) { a.Type = "loft" }},
		{"unknown status", func(a *Apartment) { a.Status = "condemned" }},
		{"zero area", func(a *Apartment) { a.Area = 0 }},
		{"negative bedrooms", func(a *Apartment) { a.Bedrooms = -1 }},
		{"negative rent", func(a *Apartment) { a.MonthlyRent = -10 }},
		{"rent listing without price", func(a *Apartment) { a.IsListedForRent = true }},
		{"sale listing without price", func(a *Apartment) { a.IsListedForSale = true }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apt := validApartment()
			tc.mutate(&apt)
			err := apt.Validate()
			assert.True(t, errs.Is(err, errs.Validation), "expected validation error, got %v", err)
		})
	}
}

func TestListedForAndPriceFor(t *testing.T) {
	apt := validApartment()
	apt.IsListedForRent = true
	apt.MonthlyRent = 900
	apt.SalePrice = 120000

	assert.True(t, apt.ListedFor(ModeRent))
	assert.False(t, apt.ListedFor(ModeBuy))
	assert.Equal(t, 900.0, apt.PriceFor(ModeRent))
	assert.Equal(t, 120000.0, apt.PriceFor(ModeBuy))
}

func TestValidMonthsBounds(t *testing.T) {
	assert.False(t, ValidMonths(MinLeaseMonths-1))
	assert.True(t, ValidMonths(MinLeaseMonths))
	assert.True(t, ValidMonths(MaxLeaseMonths))
	assert.False(t, ValidMonths(MaxLeaseMonths+1))
}

func TestRoleChecks(t *testing.T) {
	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleManager.IsStaff())
	assert.False(t, RoleResident.IsStaff())
	assert.False(t, Role("superuser").Valid())
}

func TestLeaseStatusTerminal(t *testing.T) {
	assert.False(t, LeasePendingManager.Terminal())
	assert.False(t, LeasePendingOwner.Terminal())
	assert.True(t, LeaseApproved.Terminal())
	assert.True(t, LeaseRejected.Terminal())
	assert.True(t, LeaseCancelled.Terminal())
}
