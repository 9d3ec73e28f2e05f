package lease

import (
	"testing"

	"habita/errs"
	"habita/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	manager   = models.Caller{ID: "u_manager", Role: models.RoleManager}
	admin     = models.Caller{ID: "u_admin", Role: models.RoleAdmin}
	requester = models.Caller{ID: "u_requester", Role: models.RoleResident}
	owner     = models.Caller{ID: "u_owner", Role: models.RoleResident}
	stranger  = models.Caller{ID: "u_stranger", Role: models.RoleResident}
)

func pendingRequest(status models.LeaseStatus) *models.LeaseRequest {
	return &models.LeaseRequest{
		LeaseID:     "l1",
		ApartmentID: "a1",
		RequesterID: requester.ID,
		Type:        models.ModeBuy,
		Status:      status,
	}
}

func ownedApartment(ownerID string) *models.Apartment {
	return &models.Apartment{ApartmentID: "a1", OwnerID: ownerID}
}

func TestManagerApprovalRoutesToOwner(t *testing.T) {
	req := pendingRequest(models.LeasePendingManager)
	apt := ownedApartment(owner.ID)

	next, err := NextStatus(req, apt, ActionApprove, manager)
	require.NoError(t, err)
	assert.Equal(t, models.LeasePendingOwner, next)
}

func TestManagerApprovalSkipsOwnerStep(t *testing.T) {
	t.Run("no owner", func(t *testing.T) {
		req := pendingRequest(models.LeasePendingManager)
		next, err := NextStatus(req, ownedApartment(""), ActionApprove, admin)
		require.NoError(t, err)
		assert.Equal(t, models.LeaseApproved, next)
	})

	t.Run("requester owns the unit", func(t *testing.T) {
		req := pendingRequest(models.LeasePendingManager)
		next, err := NextStatus(req, ownedApartment(requester.ID), ActionApprove, manager)
		require.NoError(t, err)
		assert.Equal(t, models.LeaseApproved, next)
	})
}

func TestManagerReject(t *testing.T) {
	req := pendingRequest(models.LeasePendingManager)
	next, err := NextStatus(req, ownedApartment(owner.ID), ActionReject, manager)
	require.NoError(t, err)
	assert.Equal(t, models.LeaseRejected, next)
}

func TestOwnerDecision(t *testing.T) {
	apt := ownedApartment(owner.ID)

	next, err := NextStatus(pendingRequest(models.LeasePendingOwner), apt, ActionOwnerApprove, owner)
	require.NoError(t, err)
	assert.Equal(t, models.LeaseApproved, next)

	next, err = NextStatus(pendingRequest(models.LeasePendingOwner), apt, ActionOwnerReject, owner)
	require.NoError(t, err)
	assert.Equal(t, models.LeaseRejected, next)
}

func TestUnauthorizedActorsAreForbidden(t *testing.T) {
	apt := ownedApartment(owner.ID)

	cases := []struct {
		name   string
		req    *models.LeaseRequest
		action Action
		caller models.Caller
	}{
		{"resident cannot manager-approve", pendingRequest(models.LeasePendingManager), ActionApprove, requester},
		{"resident cannot manager-reject", pendingRequest(models.LeasePendingManager), ActionReject, stranger},
		{"manager cannot act for the owner", pendingRequest(models.LeasePendingOwner), ActionOwnerApprove, manager},
		{"stranger cannot act for the owner", pendingRequest(models.LeasePendingOwner), ActionOwnerReject, stranger},
		{"stranger cannot cancel", pendingRequest(models.LeasePendingManager), ActionCancel, stranger},
		{"manager cannot cancel for the requester", pendingRequest(models.LeasePendingManager), ActionCancel, manager},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := tc.req.Status
			_, err := NextStatus(tc.req, apt, tc.action, tc.caller)
			assert.True(t, errs.Is(err, errs.Forbidden), "expected forbidden, got %v", err)
			assert.Equal(t, before, tc.req.Status)
		})
	}
}

func TestOwnerDecisionWithoutOwnerIsForbidden(t *testing.T) {
	_, err := NextStatus(pendingRequest(models.LeasePendingOwner), ownedApartment(""), ActionOwnerApprove, owner)
	assert.True(t, errs.Is(err, errs.Forbidden))
}

func TestTerminalStatesFreeze(t *testing.T) {
	apt := ownedApartment(owner.ID)

	for _, status := range []models.LeaseStatus{models.LeaseApproved, models.LeaseRejected, models.LeaseCancelled} {
		for _, tc := range []struct {
			action Action
			caller models.Caller
		}{
			{ActionApprove, manager},
			{ActionReject, admin},
			{ActionOwnerApprove, owner},
			{ActionCancel, requester},
		} {
			_, err := NextStatus(pendingRequest(status), apt, tc.action, tc.caller)
			assert.True(t, errs.Is(err, errs.InvalidState),
				"%s on %s request: expected invalid state, got %v", tc.action, status, err)
		}
	}
}

func TestCancelFromPendingStates(t *testing.T) {
	apt := ownedApartment(owner.ID)

	for _, status := range []models.LeaseStatus{models.LeasePendingManager, models.LeasePendingOwner} {
		next, err := NextStatus(pendingRequest(status), apt, ActionCancel, requester)
		require.NoError(t, err)
		assert.Equal(t, models.LeaseCancelled, next)
	}
}

func TestCancelledRequestCannotBeApproved(t *testing.T) {
	req := pendingRequest(models.LeasePendingManager)

	next, err := NextStatus(req, ownedApartment(owner.ID), ActionCancel, requester)
	require.NoError(t, err)
	req.Status = next

	_, err = NextStatus(req, ownedApartment(owner.ID), ActionApprove, manager)
	assert.True(t, errs.Is(err, errs.InvalidState))
}

func TestWrongPendingStateIsInvalid(t *testing.T) {
	apt := ownedApartment(owner.ID)

	// Manager acting on a request already past the manager step.
	_, err := NextStatus(pendingRequest(models.LeasePendingOwner), apt, ActionApprove, manager)
	assert.True(t, errs.Is(err, errs.InvalidState))

	// Owner acting before the manager signed off.
	_, err = NextStatus(pendingRequest(models.LeasePendingManager), apt, ActionOwnerApprove, owner)
	assert.True(t, errs.Is(err, errs.InvalidState))
}

func TestUnknownActionIsValidation(t *testing.T) {
	_, err := NextStatus(pendingRequest(models.LeasePendingManager), ownedApartment(""), Action("escalate"), admin)
	assert.True(t, errs.Is(err, errs.Validation))
}
