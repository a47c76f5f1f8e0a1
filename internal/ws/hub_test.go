package ws

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitForClientCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count never reached %d, still %d", want, hub.ClientCount())
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestHub_PushReachesEveryClientConnection(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	go hub.Run()

	userID := uuid.New()
	first := NewClient(hub, nil, userID)
	second := NewClient(hub, nil, userID)
	hub.Register(first)
	hub.Register(second)
	waitForClientCount(t, hub, 2)

	hub.PushToUser(userID, []byte("hello"))

	for _, c := range []*Client{first, second} {
		select {
		case got := <-c.send:
			if string(got) != "hello" {
				t.Fatalf("unexpected payload %q", got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("push never reached client")
		}
	}

	hub.PushToUser(uuid.New(), []byte("elsewhere"))
	select {
	case got := <-first.send:
		t.Fatalf("payload %q leaked to another user's client", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_SlowClientDroppedWithoutStallingPushes(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	go hub.Run()

	userID := uuid.New()
	client := NewClient(hub, nil, userID)
	hub.Register(client)
	waitForClientCount(t, hub, 1)

	// Nothing reads client.send, so the buffer fills and every further
	// delivery takes the overflow path. Far more overflows than the
	// unregister channel could buffer must still leave the hub responsive.
	for i := 0; i < cap(client.send)+256; i++ {
		hub.PushToUser(userID, []byte("backlog"))
	}

	waitForClientCount(t, hub, 0)

	// The hub still serves other users afterwards.
	other := NewClient(hub, nil, uuid.New())
	hub.Register(other)
	waitForClientCount(t, hub, 1)

	hub.PushToUser(other.userID, []byte("ping"))
	select {
	case <-other.send:
	case <-time.After(2 * time.Second):
		t.Fatalf("hub stopped delivering after dropping a slow client")
	}
}
