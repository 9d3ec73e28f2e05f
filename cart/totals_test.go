package cart

import (
	"testing"

	"habita/models"

	"github.com/stretchr/testify/assert"
)

func rentItem(price, deposit, maintenance float64, months int) models.CartItem {
	return models.CartItem{
		ItemID:                 "i_rent",
		Mode:                   models.ModeRent,
		Months:                 months,
		Selected:               true,
		PriceSnapshot:          price,
		DepositSnapshot:        deposit,
		MaintenanceFeeSnapshot: maintenance,
	}
}

func buyItem(price, maintenance float64) models.CartItem {
	return models.CartItem{
		ItemID:                 "i_buy",
		Mode:                   models.ModeBuy,
		Selected:               true,
		PriceSnapshot:          price,
		MaintenanceFeeSnapshot: maintenance,
	}
}

func TestTotalsRent(t *testing.T) {
	// 500/mo for 12 months, 1000 deposit, 50/mo maintenance
	got := Totals([]models.CartItem{rentItem(500, 1000, 50, 12)})

	assert.InDelta(t, 500*12+1000+50*12, got.RentTotal, 1e-9)
	assert.Zero(t, got.BuyTotal)
	assert.InDelta(t, got.RentTotal, got.GrandTotal, 1e-9)
	assert.Equal(t, 1, got.Selected)
}

func TestTotalsBuyBundlesOneYearMaintenance(t *testing.T) {
	got := Totals([]models.CartItem{buyItem(250000, 100)})

	assert.InDelta(t, 250000+100*12, got.BuyTotal, 1e-9)
	assert.Zero(t, got.RentTotal)
}

func TestTotalsMixedCart(t *testing.T) {
	got := Totals([]models.CartItem{
		rentItem(500, 1000, 50, 12),
		buyItem(250000, 100),
	})

	assert.InDelta(t, 500*12+1000+50*12, got.RentTotal, 1e-9)
	assert.InDelta(t, 250000+100*12, got.BuyTotal, 1e-9)
	assert.InDelta(t, got.RentTotal+got.BuyTotal, got.GrandTotal, 1e-9)
	assert.Equal(t, 2, got.Selected)
}

func TestTotalsSkipUnselected(t *testing.T) {
	deselected := buyItem(250000, 100)
	deselected.Selected = false

	got := Totals([]models.CartItem{rentItem(500, 0, 0, 6), deselected})

	assert.InDelta(t, 500*6, got.GrandTotal, 1e-9)
	assert.Equal(t, 1, got.Selected)
}

func TestTotalsEmptyCart(t *testing.T) {
	got := Totals(nil)
	assert.Zero(t, got.GrandTotal)
	assert.Zero(t, got.Selected)
}

// Totals must be a function of the snapshots alone: repricing the live
// apartment after the item was added does not move the cart total.
func TestTotalsIgnoreLivePriceChanges(t *testing.T) {
	apt := models.Apartment{
		ApartmentID: "a101",
		MonthlyRent: 500,
	}

	item := rentItem(apt.MonthlyRent, 0, 0, 12)
	before := Totals([]models.CartItem{item})

	apt.MonthlyRent = 600 // listing repriced after add-to-cart

	after := Totals([]models.CartItem{item})
	assert.Equal(t, before, after)
	assert.InDelta(t, 500*12, after.RentTotal, 1e-9)
}
