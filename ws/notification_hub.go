package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/n4mp3un9/car-rental-sub001/services"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

const (
	sendBuffer   = 16
	publishQueue = 256
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait * 9 / 10
)

// Hub keeps the open notification sockets per user. Events for users with
// no open socket are dropped.
type Hub struct {
	clients    map[uint]map[*client]bool // userID -> sockets
	publish    chan envelope
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.RWMutex
	upgrader   websocket.Upgrader
	log        *slog.Logger
}

type client struct {
	userID uint
	conn   *websocket.Conn
	send   chan []byte
}

type envelope struct {
	userID uint
	data   []byte
}

func NewHub(log *slog.Logger, origins []string) *Hub {
	if log == nil {
		log = slog.Default()
	}
	h := &Hub{
		clients:    make(map[uint]map[*client]bool),
		publish:    make(chan envelope, publishQueue),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		log:        log,
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
		},
	}
	return h
}

// Run serves register/unregister/publish until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for uid, set := range h.clients {
				for c := range set {
					close(c.send)
				}
				delete(h.clients, uid)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.userID] == nil {
				h.clients[c.userID] = make(map[*client]bool)
			}
			h.clients[c.userID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.drop(c)
			h.mu.Unlock()

		case env := <-h.publish:
			h.mu.Lock()
			for c := range h.clients[env.userID] {
				select {
				case c.send <- env.data:
				default:
					h.log.Warn("ws client too slow, dropping", "user_id", c.userID)
					h.drop(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop must be called with mu held.
func (h *Hub) drop(c *client) {
	set := h.clients[c.userID]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
}

// Notify implements services.Notifier. It never blocks the caller.
func (h *Hub) Notify(userID uint, ev services.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("ws marshal event", "err", err)
		return
	}
	select {
	case h.publish <- envelope{userID: userID, data: data}:
	default:
		h.log.Warn("ws publish queue full, event dropped", "user_id", userID, "type", ev.Type)
	}
}

// Connections reports how many sockets a user has open.
func (h *Hub) Connections(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// HandleWebSocket serves /ws/notifications; WSAuthMiddleware runs first.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	if userID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
		return
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "err", err)
		return
	}

	cl := &client{userID: userID, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- cl:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(cl)
	go h.readPump(cl)
}

// readPump only watches for the peer going away; clients do not send.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
