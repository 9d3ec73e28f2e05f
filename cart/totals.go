package cart

import "habita/models"

// Totals computes the checkout summary over the selected cart lines. Pure
// function of the snapshot fields: live apartment prices never feed into it.
//
// Rent lines contribute rent*months + deposit + maintenance*months.
// Buy lines bundle one year of maintenance into the purchase total.
func Totals(items []models.CartItem) models.CartTotals {
	var t models.CartTotals
	for _, it := range items {
		if !it.Selected {
			continue
		}
		t.Selected++
		switch it.Mode {
		case models.ModeRent:
			months := float64(it.Months)
			t.RentTotal += it.PriceSnapshot*months + it.DepositSnapshot + it.MaintenanceFeeSnapshot*months
		case models.ModeBuy:
			t.BuyTotal += it.PriceSnapshot + it.MaintenanceFeeSnapshot*12
		}
	}
	t.GrandTotal = t.RentTotal + t.BuyTotal
	return t
}
