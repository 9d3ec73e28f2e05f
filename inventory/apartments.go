package inventory

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"habita/db"
	"habita/errs"
	"habita/middleware"
	"habita/models"
	"habita/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateApartment registers a new unit. Admin/manager only.
func CreateApartment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !caller.Role.IsStaff() {
		utils.RespondWithError(w, errs.Forbiddenf("only managers can create apartments"))
		return
	}

	var apt models.Apartment
	if err := json.NewDecoder(r.Body).Decode(&apt); err != nil {
		log.Println("CreateApartment decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if apt.Status == "" {
		apt.Status = models.StatusVacant
	}
	if err := apt.Validate(); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	apt.ApartmentID = utils.GetUUID()
	apt.CreatedBy = caller.ID
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = apt.CreatedAt

	if _, err := db.ApartmentCollection.InsertOne(ctx, apt); err != nil {
		log.Println("CreateApartment InsertOne error:", err)
		http.Error(w, "Failed to create apartment", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, apt)
}

// GetApartments is the marketplace browse endpoint, guest-accessible.
// Supports ?listedFor=rent|sale, ?type= and ?status= filters.
func GetApartments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	switch r.URL.Query().Get("listedFor") {
	case "rent":
		filter["isListedForRent"] = true
	case "sale":
		filter["isListedForSale"] = true
	}
	if t := r.URL.Query().Get("type"); t != "" {
		filter["type"] = t
	}
	if s := r.URL.Query().Get("status"); s != "" {
		filter["status"] = s
	}
	if b := r.URL.Query().Get("buildingId"); b != "" {
		filter["buildingId"] = b
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(200)
	cursor, err := db.ApartmentCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("GetApartments Find error:", err)
		http.Error(w, "Could not retrieve apartments", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var apts []models.Apartment
	if err := cursor.All(ctx, &apts); err != nil {
		log.Println("GetApartments cursor.All error:", err)
		http.Error(w, "Error reading apartment data", http.StatusInternalServerError)
		return
	}
	if len(apts) == 0 {
		apts = []models.Apartment{}
	}

	utils.RespondWithJSON(w, http.StatusOK, apts)
}

func GetApartmentHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	apt, err := GetApartment(ctx, ps.ByName("apartmentid"))
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, apt)
}

// UpdateListing toggles the rent/sale listing flags and prices of a unit.
// Allowed for the apartment owner or staff; enabling a listing without a
// positive price is rejected.
func UpdateListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	apt, err := GetApartment(ctx, ps.ByName("apartmentid"))
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	if !caller.Role.IsStaff() && caller.ID != apt.OwnerID {
		utils.RespondWithError(w, errs.Forbiddenf("only the owner or a manager can change the listing"))
		return
	}

	var input struct {
		IsListedForRent *bool    `json:"isListedForRent"`
		IsListedForSale *bool    `json:"isListedForSale"`
		MonthlyRent     *float64 `json:"monthlyRent"`
		SalePrice       *float64 `json:"salePrice"`
		Deposit         *float64 `json:"deposit"`
		MaintenanceFee  *float64 `json:"maintenanceFee"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("UpdateListing decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	// Apply to a copy first so validation sees the final state.
	if input.MonthlyRent != nil {
		apt.MonthlyRent = *input.MonthlyRent
	}
	if input.SalePrice != nil {
		apt.SalePrice = *input.SalePrice
	}
	if input.Deposit != nil {
		apt.Deposit = *input.Deposit
	}
	if input.MaintenanceFee != nil {
		apt.MaintenanceFee = *input.MaintenanceFee
	}
	if input.IsListedForRent != nil {
		apt.IsListedForRent = *input.IsListedForRent
	}
	if input.IsListedForSale != nil {
		apt.IsListedForSale = *input.IsListedForSale
	}
	if err := apt.Validate(); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	apt.UpdatedAt = time.Now()
	if apt.IsListedForRent && apt.Status == models.StatusVacant {
		apt.Status = models.StatusForRent
	}
	if apt.IsListedForSale && apt.Status == models.StatusVacant {
		apt.Status = models.StatusForSale
	}

	_, err = db.ApartmentCollection.UpdateOne(ctx,
		bson.M{"apartmentId": apt.ApartmentID},
		bson.M{"$set": bson.M{
			"isListedForRent": apt.IsListedForRent,
			"isListedForSale": apt.IsListedForSale,
			"monthlyRent":     apt.MonthlyRent,
			"salePrice":       apt.SalePrice,
			"deposit":         apt.Deposit,
			"maintenanceFee":  apt.MaintenanceFee,
			"status":          apt.Status,
			"updatedAt":       apt.UpdatedAt,
		}},
	)
	if err != nil {
		log.Println("UpdateListing UpdateOne error:", err)
		http.Error(w, "Failed to update listing", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, apt)
}

// DeleteApartment removes a unit. Refused while any request still references
// it in a pending state.
func DeleteApartment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !caller.Role.IsStaff() {
		utils.RespondWithError(w, errs.Forbiddenf("only managers can delete apartments"))
		return
	}

	apartmentID := ps.ByName("apartmentid")
	active, err := hasActiveLease(ctx, apartmentID)
	if err != nil {
		log.Println("DeleteApartment lease check error:", err)
		http.Error(w, "Failed to check active requests", http.StatusInternalServerError)
		return
	}
	if active {
		utils.RespondWithError(w, errs.InvalidStatef("apartment has pending lease requests"))
		return
	}

	res, err := db.ApartmentCollection.DeleteOne(ctx, bson.M{"apartmentId": apartmentID})
	if err != nil {
		log.Println("DeleteApartment DeleteOne error:", err)
		http.Error(w, "Failed to delete apartment", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, errs.NotFoundf("apartment %s not found", apartmentID))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
