package cart

import (
	"context"
	"log"
	"net/http"
	"time"

	"habita/db"
	"habita/errs"
	"habita/lease"
	"habita/middleware"
	"habita/models"
	"habita/mq"
	"habita/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// checkoutStore is the persistence slice checkout needs. RunTransaction must
// execute fn atomically: when fn errors, none of its writes survive.
type checkoutStore interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	InsertLeases(ctx context.Context, requests []*models.LeaseRequest) error
	DeleteItems(ctx context.Context, userID string, itemIDs []string) error
}

// mongoCheckout backs checkoutStore with a Mongo multi-document transaction.
type mongoCheckout struct{}

func (mongoCheckout) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := db.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (mongoCheckout) InsertLeases(ctx context.Context, requests []*models.LeaseRequest) error {
	docs := make([]interface{}, 0, len(requests))
	for _, req := range requests {
		docs = append(docs, req)
	}
	_, err := db.LeaseCollection.InsertMany(ctx, docs)
	return err
}

func (mongoCheckout) DeleteItems(ctx context.Context, userID string, itemIDs []string) error {
	_, err := db.CartCollection.DeleteMany(ctx, bson.M{
		"userId": userID,
		"itemId": bson.M{"$in": itemIDs},
	})
	return err
}

// Checkout converts every selected cart line into a lease request and removes
// it from the cart. The conversion runs inside one Mongo transaction, so the
// batch is all-or-nothing: a mid-batch failure rolls everything back and the
// cart is left untouched.
func Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Optional contact override; otherwise the profile fills it in.
	var input struct {
		lease.Contact
	}
	if err := utils.DecodeOptional(r, &input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	contact, err := lease.ResolveContact(ctx, caller.ID, input.Contact)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	items, err := loadCart(ctx, caller.ID, true)
	if err != nil {
		log.Println("Checkout loadCart error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		utils.RespondWithError(w, errs.New(errs.EmptyCheckout, "no cart items selected"))
		return
	}

	// Build every request up front so validation failures surface before
	// anything is written.
	requests := make([]*models.LeaseRequest, 0, len(items))
	for _, item := range items {
		req, err := lease.FromCartItem(item, contact)
		if err != nil {
			utils.RespondWithError(w, err)
			return
		}
		requests = append(requests, req)
	}

	created, err := convertItems(ctx, mongoCheckout{}, caller.ID, items, requests)
	if err != nil {
		log.Println("Checkout transaction error:", err)
		http.Error(w, "Checkout failed; cart unchanged", http.StatusInternalServerError)
		return
	}

	for _, req := range created {
		mq.EmitLease(ctx, "lease-requested", req, "")
	}

	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// convertItems inserts the lease requests and deletes their cart lines inside
// one transaction on the given store.
func convertItems(ctx context.Context, store checkoutStore, userID string, items []models.CartItem, requests []*models.LeaseRequest) ([]*models.LeaseRequest, error) {
	itemIDs := make([]string, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ItemID)
	}

	err := store.RunTransaction(ctx, func(tc context.Context) error {
		if err := store.InsertLeases(tc, requests); err != nil {
			return err
		}
		return store.DeleteItems(tc, userID, itemIDs)
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}
