package stream

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans snapshot frames out to every connected websocket client and
// forwards their control messages to the simulation loop. The simulation
// itself stays single-threaded: the hub never touches the flock, it only
// pushes Control values onto the channel the tick loop drains.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	controls chan<- Control
}

// NewHub creates a hub that forwards client controls to the given channel.
func NewHub(controls chan<- Control) *Hub {
	return &Hub{
		clients:  make(map[*websocket.Conn]struct{}),
		controls: controls,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends a frame to every client. Clients that fail to accept the
// write are dropped.
func (h *Hub) Broadcast(frame Frame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		log.Printf("failed to marshal frame: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("failed to write to client: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Handler upgrades HTTP requests to websocket connections and pumps inbound
// control messages onto the control channel until the client disconnects.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		h.add(conn)
		defer h.remove(conn)

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				log.Printf("control stream closed: %v", err)
				return
			}

			var ctl Control
			if err := json.Unmarshal(data, &ctl); err != nil {
				log.Printf("unable to decode control message: %v", err)
				continue
			}

			select {
			case h.controls <- ctl:
			default:
				// Tick loop is behind, drop the control rather than block
				// the read pump.
				log.Printf("control channel full, dropping %q", ctl.Action)
			}
		}
	}
}
