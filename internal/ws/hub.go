package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub tracks live websocket clients per user. A user may hold several
// connections at once (multiple tabs or devices); a push goes to all of them.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	push       chan pushEvent
	logger     *log.Logger
	mutex      sync.RWMutex
}

type pushEvent struct {
	userID  uuid.UUID
	payload []byte
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		push:       make(chan pushEvent, 1024),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			total := h.totalLocked()
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | user=%s total_clients=%d", client.userID, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.dropClient(client)

		case evt := <-h.push:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients[evt.userID]))
			for c := range h.clients[evt.userID] {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- evt.payload:
				default:
					// Cannot go through the unregister channel here: Run is
					// the only drainer, so re-entering it from this loop
					// would block forever once the buffer fills.
					h.dropClient(client)
				}
			}
		}
	}
}

func (h *Hub) dropClient(client *Client) {
	h.mutex.Lock()
	dropped := false
	if set, ok := h.clients[client.userID]; ok && set[client] {
		delete(set, client)
		if len(set) == 0 {
			delete(h.clients, client.userID)
		}
		close(client.send)
		dropped = true
	}
	total := h.totalLocked()
	h.mutex.Unlock()
	if dropped && h.logger != nil {
		h.logger.Printf("WS disconnected | user=%s total_clients=%d", client.userID, total)
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// PushToUser queues a payload for every live connection the user holds.
// A full queue drops the event; the notification row is still persisted,
// so the client catches up on its next fetch.
func (h *Hub) PushToUser(userID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.push <- pushEvent{userID: userID, payload: payload}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS push dropped | user=%s reason=buffer_full", userID)
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.totalLocked()
}

func (h *Hub) totalLocked() int {
	total := 0
	for _, set := range h.clients {
		total += len(set)
	}
	return total
}
