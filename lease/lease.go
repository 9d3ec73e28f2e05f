package lease

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
	"habita/mq"
	"habita/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateLease is the direct marketplace path: "Request Rent/Buy" on a
// listing, bypassing the cart. Price is snapshotted from the apartment at
// submission time.
func CreateLease(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		ApartmentID string             `json:"apartmentId"`
		Type        models.ListingMode `json:"type"`
		Months      int                `json:"months"`
		Note        string             `json:"note"`
		Contact
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("CreateLease decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	apt, err := inventory.GetApartment(ctx, input.ApartmentID)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}
	if !apt.ListedFor(input.Type) {
		utils.RespondWithError(w, errs.Validationf("apartment is not listed for %s", input.Type))
		return
	}

	contact, err := resolveContact(input.Contact, loadProfile(ctx, caller.ID))
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	req, err := newRequest(caller.ID, apt.ApartmentID, input.Type, apt.PriceFor(input.Type), input.Months, input.Note, contact)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	if _, err := db.LeaseCollection.InsertOne(ctx, req); err != nil {
		log.Println("CreateLease InsertOne error:", err)
		http.Error(w, "Failed to create request", http.StatusInternalServerError)
		return
	}

	mq.EmitLease(ctx, "lease-requested", req, "")
	utils.RespondWithJSON(w, http.StatusCreated, req)
}

// GetMyLeases lists the caller's own requests, newest first.
func GetMyLeases(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	listLeases(ctx, w, bson.M{"requesterId": caller.ID})
}

// GetLeases is the manager dashboard feed. Staff only; ?status= filters.
func GetLeases(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !caller.Role.IsStaff() {
		utils.RespondWithError(w, errs.Forbiddenf("only managers can list all requests"))
		return
	}

	filter := bson.M{}
	if s := r.URL.Query().Get("status"); s != "" {
		if !models.LeaseStatus(s).Valid() {
			utils.RespondWithError(w, errs.Validationf("unknown status %q", s))
			return
		}
		filter["status"] = s
	}

	listLeases(ctx, w, filter)
}

// GetOwnerLeases lists requests awaiting the calling owner's decision.
func GetOwnerLeases(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Owned apartments first, then their pending-owner requests.
	cursor, err := db.ApartmentCollection.Find(ctx, bson.M{"ownerId": caller.ID})
	if err != nil {
		log.Println("GetOwnerLeases Find error:", err)
		http.Error(w, "Could not retrieve apartments", http.StatusInternalServerError)
		return
	}
	var owned []models.Apartment
	if err := cursor.All(ctx, &owned); err != nil {
		log.Println("GetOwnerLeases cursor.All error:", err)
		http.Error(w, "Error reading apartment data", http.StatusInternalServerError)
		return
	}
	if len(owned) == 0 {
		utils.RespondWithJSON(w, http.StatusOK, []models.LeaseRequest{})
		return
	}

	ids := make([]string, 0, len(owned))
	for _, apt := range owned {
		ids = append(ids, apt.ApartmentID)
	}

	listLeases(ctx, w, bson.M{
		"apartmentId": bson.M{"$in": ids},
		"status":      models.LeasePendingOwner,
	})
}

func listLeases(ctx context.Context, w http.ResponseWriter, filter bson.M) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(200)
	cursor, err := db.LeaseCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("listLeases Find error:", err)
		http.Error(w, "Could not retrieve requests", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var reqs []models.LeaseRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		log.Println("listLeases cursor.All error:", err)
		http.Error(w, "Error reading request data", http.StatusInternalServerError)
		return
	}
	if len(reqs) == 0 {
		reqs = []models.LeaseRequest{}
	}

	utils.RespondWithJSON(w, http.StatusOK, reqs)
}

func getLease(ctx context.Context, leaseID string) (*models.LeaseRequest, error) {
	var req models.LeaseRequest
	err := db.LeaseCollection.FindOne(ctx, bson.M{"leaseId": leaseID}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, errs.NotFoundf("request %s not found", leaseID)
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ResolveContact fills missing contact fields from the user's stored
// profile, enforcing the all-or-nothing rule. Used by cart checkout.
func ResolveContact(ctx context.Context, userID string, c Contact) (Contact, error) {
	return resolveContact(c, loadProfile(ctx, userID))
}

// loadProfile fetches the requester's stored contact details. A nil return
// means the profile is unusable for contact defaulting.
func loadProfile(ctx context.Context, userID string) *models.User {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return nil
	}
	if user.Email == "" || user.Phone == "" || user.Name == "" {
		return nil
	}
	return &user
}
