package cart

import (
	"context"
	"errors"
	"testing"

	"habita/lease"
	"habita/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCheckoutStore keeps leases and cart lines in memory and rolls a failed
// transaction back to the pre-transaction snapshot, like the Mongo session
// does.
type fakeCheckoutStore struct {
	leases     []*models.LeaseRequest
	cart       map[string]bool // itemID set, single user
	failInsert bool
	failDelete bool
}

func (s *fakeCheckoutStore) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	leasesBefore := append([]*models.LeaseRequest(nil), s.leases...)
	cartBefore := make(map[string]bool, len(s.cart))
	for id := range s.cart {
		cartBefore[id] = true
	}

	if err := fn(ctx); err != nil {
		s.leases = leasesBefore
		s.cart = cartBefore
		return err
	}
	return nil
}

func (s *fakeCheckoutStore) InsertLeases(ctx context.Context, requests []*models.LeaseRequest) error {
	if s.failInsert {
		return errors.New("insert failed")
	}
	s.leases = append(s.leases, requests...)
	return nil
}

func (s *fakeCheckoutStore) DeleteItems(ctx context.Context, userID string, itemIDs []string) error {
	if s.failDelete {
		return errors.New("delete failed")
	}
	for _, id := range itemIDs {
		delete(s.cart, id)
	}
	return nil
}

func checkoutFixture() ([]models.CartItem, []*models.LeaseRequest, *fakeCheckoutStore) {
	items := []models.CartItem{
		{ItemID: "i1", UserID: "u1", ApartmentID: "a1", Mode: models.ModeRent, Months: 12, PriceSnapshot: 700},
		{ItemID: "i2", UserID: "u1", ApartmentID: "a2", Mode: models.ModeBuy, PriceSnapshot: 250000},
	}
	contact := lease.Contact{Name: "Jo Doe", Email: "jo@example.com", Phone: "555-0101"}
	requests := make([]*models.LeaseRequest, 0, len(items))
	for _, item := range items {
		req, err := lease.FromCartItem(item, contact)
		if err != nil {
			panic(err)
		}
		requests = append(requests, req)
	}
	store := &fakeCheckoutStore{
		cart: map[string]bool{"i1": true, "i2": true, "unselected": true},
	}
	return items, requests, store
}

func TestConvertItemsAllSucceed(t *testing.T) {
	items, requests, store := checkoutFixture()

	created, err := convertItems(context.Background(), store, "u1", items, requests)
	require.NoError(t, err)

	assert.Len(t, created, 2)
	assert.Len(t, store.leases, 2)
	// exactly the converted lines leave the cart
	assert.Equal(t, map[string]bool{"unselected": true}, store.cart)
}

func TestConvertItemsInsertFailureRollsBack(t *testing.T) {
	items, requests, store := checkoutFixture()
	store.failInsert = true

	created, err := convertItems(context.Background(), store, "u1", items, requests)
	require.Error(t, err)

	assert.Nil(t, created)
	assert.Empty(t, store.leases)
	assert.Len(t, store.cart, 3)
}

func TestConvertItemsDeleteFailureRollsBack(t *testing.T) {
	items, requests, store := checkoutFixture()
	store.failDelete = true

	created, err := convertItems(context.Background(), store, "u1", items, requests)
	require.Error(t, err)

	assert.Nil(t, created)
	// the already-inserted leases are gone too: nothing survives a failed batch
	assert.Empty(t, store.leases)
	assert.Len(t, store.cart, 3)
}
