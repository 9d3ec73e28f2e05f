package notify

import (
	"log"
	"net/http"

	"habita/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Client is one connected websocket session.
type Client struct {
	UserID string
	Staff  bool
	Send   chan []byte
	conn   *websocket.Conn
}

type directMsg struct {
	UserID string
	Data   []byte
}

// Hub fans lease events out to connected clients. All state is owned by the
// Run goroutine; handlers talk to it over channels only.
type Hub struct {
	clients    map[*Client]bool
	byUser     map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	direct     chan directMsg
	staff      chan []byte
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byUser:     make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan directMsg, 16),
		staff:      make(chan []byte, 16),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			if h.byUser[client.UserID] == nil {
				h.byUser[client.UserID] = make(map[*Client]bool)
			}
			h.byUser[client.UserID][client] = true

		case client := <-h.unregister:
			if h.clients[client] {
				delete(h.clients, client)
				delete(h.byUser[client.UserID], client)
				close(client.Send)
			}

		case msg := <-h.direct:
			for client := range h.byUser[msg.UserID] {
				select {
				case client.Send <- msg.Data:
				default: // slow client, drop
				}
			}

		case data := <-h.staff:
			for client := range h.clients {
				if !client.Staff {
					continue
				}
				select {
				case client.Send <- data:
				default:
				}
			}

		case <-h.done:
			for client := range h.clients {
				close(client.Send)
				if client.conn != nil {
					client.conn.Close()
				}
			}
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// NotifyUser queues data for every session of one user. After Stop the
// message is dropped instead of blocking the sender.
func (h *Hub) NotifyUser(userID string, data []byte) {
	select {
	case h.direct <- directMsg{UserID: userID, Data: data}:
	case <-h.done:
	}
}

// NotifyStaff queues data for every connected staff session. After Stop the
// message is dropped instead of blocking the sender.
func (h *Hub) NotifyStaff(data []byte) {
	select {
	case h.staff <- data:
	case <-h.done:
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // lock down in production
}

// ServeWS upgrades the connection. Browsers cannot set headers on websocket
// dials, so the token rides in the query string.
func ServeWS(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		token := r.URL.Query().Get("token")
		claims, err := middleware.ValidateJWT("Bearer " + token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("notify upgrade failed: %v", err)
			return
		}

		client := &Client{
			UserID: claims.UserID,
			Staff:  claims.Role.IsStaff(),
			Send:   make(chan []byte, 16),
			conn:   conn,
		}
		select {
		case hub.register <- client:
		case <-hub.done:
			conn.Close()
			return
		}

		go client.writePump()
		go client.readPump(hub)
	}
}

func (c *Client) writePump() {
	for data := range c.Send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// readPump discards inbound frames; it exists to detect disconnects.
func (c *Client) readPump(hub *Hub) {
	defer func() {
		select {
		case hub.unregister <- c:
		case <-hub.done:
		}
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
