package inventory

import (
	"context"

	"habita/db"
	"habita/errs"
	"habita/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetApartment loads the current apartment record for cart snapshots and
// workflow decisions.
func GetApartment(ctx context.Context, apartmentID string) (*models.Apartment, error) {
	var apt models.Apartment
	err := db.ApartmentCollection.FindOne(ctx, bson.M{"apartmentId": apartmentID}).Decode(&apt)
	if err == mongo.ErrNoDocuments {
		return nil, errs.NotFoundf("apartment %s not found", apartmentID)
	}
	if err != nil {
		return nil, err
	}
	return &apt, nil
}

// MarkUnavailable flips an apartment out of the marketplace once a request
// for it reaches approval. Idempotent: re-applying the same transition is a
// no-op. Rent keeps the sale listing alive; a completed purchase unlists both.
func MarkUnavailable(ctx context.Context, apartmentID string, mode models.ListingMode) error {
	set := bson.M{
		"status":          models.StatusOccupied,
		"isListedForRent": false,
	}
	if mode == models.ModeBuy {
		set["isListedForSale"] = false
	}

	_, err := db.ApartmentCollection.UpdateOne(ctx,
		bson.M{"apartmentId": apartmentID},
		bson.M{"$set": set},
	)
	return err
}

// hasActiveLease reports whether any non-terminal request references the
// apartment. Guards hard deletes.
func hasActiveLease(ctx context.Context, apartmentID string) (bool, error) {
	count, err := db.LeaseCollection.CountDocuments(ctx, bson.M{
		"apartmentId": apartmentID,
		"status":      bson.M{"$in": []models.LeaseStatus{models.LeasePendingManager, models.LeasePendingOwner}},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
