package lease

import (
	"habita/errs"
	"habita/models"
)

// Action is a transition trigger on a lease request.
type Action string

const (
	ActionApprove      Action = "approve"       // manager path
	ActionReject       Action = "reject"        // manager path
	ActionOwnerApprove Action = "owner_approve" // owner path
	ActionOwnerReject  Action = "owner_reject"  // owner path
	ActionCancel       Action = "cancel"        // requester path
)

// NeedsOwnerApproval reports whether a manager approval hands the request to
// the apartment owner instead of closing it. Self-owned requests and units
// without a distinct owner skip the owner step.
func NeedsOwnerApproval(apt *models.Apartment, req *models.LeaseRequest) bool {
	return apt.OwnerID != "" && apt.OwnerID != req.RequesterID
}

// NextStatus evaluates one transition of the approval state machine.
//
//	pending_manager --approve-->  pending_owner | approved
//	pending_manager --reject--->  rejected
//	pending_manager --cancel--->  cancelled
//	pending_owner   --owner----> approved | rejected
//	pending_owner   --cancel--->  cancelled
//
// Terminal states freeze the request. The caller's identity is verified
// against the acting party before the state is even considered, so an
// unauthorized attempt is always Forbidden and a late-but-authorized attempt
// on a closed request is always InvalidState.
func NextStatus(req *models.LeaseRequest, apt *models.Apartment, action Action, caller models.Caller) (models.LeaseStatus, error) {
	switch action {
	case ActionApprove, ActionReject:
		if !caller.Role.IsStaff() {
			return "", errs.Forbiddenf("only admins and building managers can decide requests")
		}
		if req.Status != models.LeasePendingManager {
			return "", errs.InvalidStatef("request is %s, manager decision not applicable", req.Status)
		}
		if action == ActionReject {
			return models.LeaseRejected, nil
		}
		if NeedsOwnerApproval(apt, req) {
			return models.LeasePendingOwner, nil
		}
		return models.LeaseApproved, nil

	case ActionOwnerApprove, ActionOwnerReject:
		if apt.OwnerID == "" || caller.ID != apt.OwnerID {
			return "", errs.Forbiddenf("only the apartment owner can decide this request")
		}
		if req.Status != models.LeasePendingOwner {
			return "", errs.InvalidStatef("request is %s, owner decision not applicable", req.Status)
		}
		if action == ActionOwnerReject {
			return models.LeaseRejected, nil
		}
		return models.LeaseApproved, nil

	case ActionCancel:
		if caller.ID != req.RequesterID {
			return "", errs.Forbiddenf("only the requester can cancel a request")
		}
		if req.Status.Terminal() {
			return "", errs.InvalidStatef("request is already %s", req.Status)
		}
		return models.LeaseCancelled, nil
	}

	return "", errs.Validationf("unknown action %q", action)
}
