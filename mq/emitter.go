package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"habita/inventory"
	"habita/models"
	"habita/notify"
	"habita/rdx"
)

// Redis pub/sub channel carrying lease lifecycle events.
const leaseChannel = "lease-events"

// LeaseEvent describes one lifecycle change of a lease request.
type LeaseEvent struct {
	Event       string             `json:"event"` // lease-requested, lease-approved, ...
	LeaseID     string             `json:"leaseId"`
	ApartmentID string             `json:"apartmentId"`
	Mode        models.ListingMode `json:"mode"`
	RequesterID string             `json:"requesterId"`
	Status      models.LeaseStatus `json:"status"`
	DecidedBy   string             `json:"decidedBy,omitempty"`
	At          time.Time          `json:"at"`
}

// EmitLease publishes a lease lifecycle event. Delivery is best-effort; the
// store write has already happened when this runs.
func EmitLease(ctx context.Context, event string, req *models.LeaseRequest, decidedBy string) {
	payload := LeaseEvent{
		Event:       event,
		LeaseID:     req.LeaseID,
		ApartmentID: req.ApartmentID,
		Mode:        req.Type,
		RequesterID: req.RequesterID,
		Status:      req.Status,
		DecidedBy:   decidedBy,
		At:          time.Now(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[EmitLease] marshal failed: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, leaseChannel, data).Err(); err != nil {
		log.Printf("[EmitLease] publish failed: %v", err)
	}
}

// StartLeaseWorker forwards lease events from Redis to connected websocket
// clients: the requester gets a direct notification, staff dashboards get a
// broadcast. Runs until the process exits.
func StartLeaseWorker(hub *notify.Hub) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, leaseChannel)
	ch := sub.Channel()

	log.Println("[LeaseWorker] Listening for lease events...")

	for msg := range ch {
		var event LeaseEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[LeaseWorker] bad event payload: %v", err)
			continue
		}

		// Backstop for the approval side effect: MarkUnavailable is
		// idempotent, so re-applying it here repairs an apartment left
		// listed by a failed inline update.
		if event.Event == "lease-approved" {
			if err := inventory.MarkUnavailable(ctx, event.ApartmentID, event.Mode); err != nil {
				log.Printf("[LeaseWorker] mark unavailable failed for %s: %v", event.ApartmentID, err)
			}
		}

		hub.NotifyUser(event.RequesterID, []byte(msg.Payload))
		hub.NotifyStaff([]byte(msg.Payload))
	}
}
