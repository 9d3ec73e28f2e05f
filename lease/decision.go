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

// ManagerDecision handles POST /api/leases/:leaseid/decision.
func ManagerDecision(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	action, ok := decodeDecision(w, r, ActionApprove, ActionReject)
	if !ok {
		return
	}
	applyTransition(w, r, ps.ByName("leaseid"), action)
}

// OwnerDecision handles POST /api/leases/:leaseid/owner-decision.
func OwnerDecision(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	action, ok := decodeDecision(w, r, ActionOwnerApprove, ActionOwnerReject)
	if !ok {
		return
	}
	applyTransition(w, r, ps.ByName("leaseid"), action)
}

// CancelLease handles POST /api/leases/:leaseid/cancel.
func CancelLease(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	applyTransition(w, r, ps.ByName("leaseid"), ActionCancel)
}

func decodeDecision(w http.ResponseWriter, r *http.Request, approve, reject Action) (Action, bool) {
	var input struct {
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return "", false
	}
	switch input.Decision {
	case "approve":
		return approve, true
	case "reject":
		return reject, true
	}
	utils.RespondWithError(w, errs.Validationf("decision must be approve or reject"))
	return "", false
}

// applyTransition runs one step of the state machine. The write is a
// compare-and-swap conditioned on the status the decision was computed
// against, so two concurrent decisions on the same request linearize: the
// loser matches nothing and reports the request's real, already-moved state.
func applyTransition(w http.ResponseWriter, r *http.Request, leaseID string, action Action) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	req, err := getLease(ctx, leaseID)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	apt, err := inventory.GetApartment(ctx, req.ApartmentID)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	next, err := NextStatus(req, apt, action, caller)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	now := time.Now()
	set := bson.M{"status": next, "updatedAt": now}
	switch action {
	case ActionApprove, ActionReject:
		set["decidedBy"] = caller.ID
		set["decidedAt"] = now
	case ActionOwnerApprove, ActionOwnerReject:
		set["ownerDecidedBy"] = caller.ID
		set["ownerDecidedAt"] = now
	}

	var updated models.LeaseRequest
	err = db.LeaseCollection.FindOneAndUpdate(ctx,
		bson.M{"leaseId": leaseID, "status": req.Status},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		// Lost the race: someone moved the request first.
		utils.RespondWithError(w, errs.InvalidStatef("request was concurrently updated"))
		return
	}
	if err != nil {
		log.Println("applyTransition FindOneAndUpdate error:", err)
		http.Error(w, "Failed to update request", http.StatusInternalServerError)
		return
	}

	if updated.Status == models.LeaseApproved {
		if err := ensureUnavailable(updated.ApartmentID, updated.Type); err != nil {
			log.Println("applyTransition MarkUnavailable error:", err)
		}
	}

	mq.EmitLease(ctx, "lease-"+string(updated.Status), &updated, caller.ID)
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// Indirected for tests.
var markUnavailable = inventory.MarkUnavailable

var (
	sideEffectAttempts = 3
	sideEffectBackoff  = 200 * time.Millisecond
)

// ensureUnavailable applies the inventory side effect of an approval. The
// status write has already committed and re-approving is blocked by the state
// machine, so a first failure here must not be the last word: the update is
// retried, and the lease-approved event makes the mq worker re-apply the same
// idempotent update as a backstop. Runs on a detached context because the
// request context may already be gone.
func ensureUnavailable(apartmentID string, mode models.ListingMode) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	for attempt := 0; attempt < sideEffectAttempts; attempt++ {
		if err = markUnavailable(ctx, apartmentID, mode); err == nil {
			return nil
		}
		time.Sleep(time.Duration(attempt+1) * sideEffectBackoff)
	}
	return err
}
