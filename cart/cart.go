package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"habita/db"
	"habita/errs"
	"habita/inventory"
	"habita/middleware"
	"habita/models"
	"habita/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddToCart adds an apartment selection, snapshotting the listed prices.
// Re-adding the same (apartment, mode) replaces the existing line and
// refreshes its snapshot rather than duplicating it.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		ApartmentID string             `json:"apartmentId"`
		Mode        models.ListingMode `json:"mode"`
		Months      int                `json:"months"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("AddToCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if !input.Mode.Valid() {
		utils.RespondWithError(w, errs.Validationf("mode must be rent or buy"))
		return
	}
	if input.Mode == models.ModeRent && !models.ValidMonths(input.Months) {
		utils.RespondWithError(w, errs.Validationf("months must be between %d and %d", models.MinLeaseMonths, models.MaxLeaseMonths))
		return
	}

	apt, err := inventory.GetApartment(ctx, input.ApartmentID)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}
	if !apt.ListedFor(input.Mode) {
		utils.RespondWithError(w, errs.Validationf("apartment is not listed for %s", input.Mode))
		return
	}

	months := input.Months
	if input.Mode == models.ModeBuy {
		months = 0
	}

	// Upsert: one line per (user, apartment, mode); snapshot refreshed on re-add.
	filter := bson.M{
		"userId":      caller.ID,
		"apartmentId": input.ApartmentID,
		"mode":        input.Mode,
	}
	update := bson.M{
		"$set": bson.M{
			"months":                 months,
			"selected":               true,
			"priceSnapshot":          apt.PriceFor(input.Mode),
			"depositSnapshot":        apt.Deposit,
			"maintenanceFeeSnapshot": apt.MaintenanceFee,
			"addedAt":                time.Now(),
		},
		"$setOnInsert": bson.M{
			"itemId": utils.GetUUID(),
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := db.CartCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Println("AddToCart UpdateOne error:", err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}

	var item models.CartItem
	if err := db.CartCollection.FindOne(ctx, filter).Decode(&item); err != nil {
		log.Println("AddToCart FindOne error:", err)
		http.Error(w, "Failed to read cart item", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, item)
}

// GetCart returns all cart items for the user.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := loadCart(ctx, caller.ID, false)
	if err != nil {
		log.Println("GetCart error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

// GetCartSummary returns the totals over the currently selected lines.
func GetCartSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := loadCart(ctx, caller.ID, false)
	if err != nil {
		log.Println("GetCartSummary error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, Totals(items))
}

// UpdateCartItem changes the rent term of one cart line.
func UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Months int `json:"months"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	item, err := getItem(ctx, caller.ID, ps.ByName("itemid"))
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}
	if item.Mode != models.ModeRent {
		utils.RespondWithError(w, errs.Validationf("months only apply to rent selections"))
		return
	}
	if !models.ValidMonths(input.Months) {
		utils.RespondWithError(w, errs.Validationf("months must be between %d and %d", models.MinLeaseMonths, models.MaxLeaseMonths))
		return
	}

	item.Months = input.Months
	_, err = db.CartCollection.UpdateOne(ctx,
		bson.M{"itemId": item.ItemID, "userId": caller.ID},
		bson.M{"$set": bson.M{"months": input.Months}},
	)
	if err != nil {
		log.Println("UpdateCartItem UpdateOne error:", err)
		http.Error(w, "Failed to update cart item", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, item)
}

// ToggleSelection flips the checkout-selection flag of one line.
func ToggleSelection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Selected bool `json:"selected"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	res, err := db.CartCollection.UpdateOne(ctx,
		bson.M{"itemId": ps.ByName("itemid"), "userId": caller.ID},
		bson.M{"$set": bson.M{"selected": input.Selected}},
	)
	if err != nil {
		log.Println("ToggleSelection UpdateOne error:", err)
		http.Error(w, "Failed to update selection", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, errs.NotFoundf("cart item not found"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"selected": input.Selected})
}

// SelectAll sets the selection flag on every line in the caller's cart.
func SelectAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Selected bool `json:"selected"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	_, err := db.CartCollection.UpdateMany(ctx,
		bson.M{"userId": caller.ID},
		bson.M{"$set": bson.M{"selected": input.Selected}},
	)
	if err != nil {
		log.Println("SelectAll UpdateMany error:", err)
		http.Error(w, "Failed to update selection", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"selected": input.Selected})
}

// RemoveCartItem deletes one line. Removing an already-absent line is not an
// error.
func RemoveCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	_, err := db.CartCollection.DeleteOne(ctx, bson.M{"itemId": ps.ByName("itemid"), "userId": caller.ID})
	if err != nil {
		log.Println("RemoveCartItem DeleteOne error:", err)
		http.Error(w, "Failed to remove cart item", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ClearCart empties the caller's cart.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if _, err := db.CartCollection.DeleteMany(ctx, bson.M{"userId": caller.ID}); err != nil {
		log.Println("ClearCart DeleteMany error:", err)
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func loadCart(ctx context.Context, userID string, selectedOnly bool) ([]models.CartItem, error) {
	filter := bson.M{"userId": userID}
	if selectedOnly {
		filter["selected"] = true
	}

	cursor, err := db.CartCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		items = []models.CartItem{}
	}
	return items, nil
}

func getItem(ctx context.Context, userID, itemID string) (*models.CartItem, error) {
	var item models.CartItem
	err := db.CartCollection.FindOne(ctx, bson.M{"itemId": itemID, "userId": userID}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, errs.NotFoundf("cart item not found")
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
