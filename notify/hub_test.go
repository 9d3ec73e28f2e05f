package notify

import (
	"testing"
	"time"
)

func recv(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case data := <-ch:
		return data
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
		return nil
	}
}

func TestHubDirectDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{UserID: "u1", Send: make(chan []byte, 10)}
	hub.register <- client

	hub.NotifyUser("u1", []byte("lease-approved"))

	if got := recv(t, client.Send); string(got) != "lease-approved" {
		t.Fatalf("expected lease-approved, got %s", got)
	}

	// messages for other users must not arrive here
	hub.NotifyUser("u2", []byte("not-for-u1"))
	select {
	case got := <-client.Send:
		t.Fatalf("unexpected message %s", got)
	case <-time.After(50 * time.Millisecond):
	}

	hub.unregister <- client
}

func TestHubStaffBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	staff := &Client{UserID: "m1", Staff: true, Send: make(chan []byte, 10)}
	resident := &Client{UserID: "u1", Send: make(chan []byte, 10)}
	hub.register <- staff
	hub.register <- resident

	hub.NotifyStaff([]byte("lease-requested"))

	if got := recv(t, staff.Send); string(got) != "lease-requested" {
		t.Fatalf("expected lease-requested, got %s", got)
	}

	select {
	case got := <-resident.Send:
		t.Fatalf("resident should not receive staff broadcast, got %s", got)
	case <-time.After(50 * time.Millisecond):
	}
}

// Late publishers (the lease event worker keeps running through shutdown)
// must never block on a stopped hub, even past the channel buffers.
func TestHubNotifyAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 64; i++ {
			hub.NotifyUser("u1", []byte("late"))
			hub.NotifyStaff([]byte("late"))
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(1 * time.Second):
		t.Fatal("notify blocked after hub stop")
	}
}
