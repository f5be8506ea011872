// file: websocket/hub.go
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"kiddushware/live"
	"kiddushware/logger"
	"kiddushware/models"
)

// roomKey identifies one live view: all connections watching the same view
// share a single engine subscription.
type roomKey struct {
	kind    string // "calendar" | "worklist"
	ownerID string
	detail  string // config id for calendars, status for worklists
}

// room holds the connections of one view plus the cancel handle of the
// engine subscription feeding it. lastMsg replays the latest snapshot to
// late joiners so a fresh display never waits for the next store mutation.
type room struct {
	conns   map[*Connection]bool
	cancel  func()
	lastMsg []byte
}

// Hub owns all rooms. One hub per process, started from main.
type Hub struct {
	engine *live.Engine
	window int

	mu    sync.Mutex
	rooms map[roomKey]*room
}

// Upgrader allows all origins: public displays are embedded cross-origin
// by design.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewHub creates a hub fanning out snapshots from the given engine.
// window is the forward-looking Shabbat window for calendar views.
func NewHub(engine *live.Engine, window int) *Hub {
	return &Hub{engine: engine, window: window, rooms: make(map[roomKey]*room)}
}

// ServeCalendar upgrades the request and joins the public calendar view of
// one configuration owner.
func (h *Hub) ServeCalendar(w http.ResponseWriter, r *http.Request, ownerID, configID string) {
	key := roomKey{kind: "calendar", ownerID: ownerID, detail: configID}
	h.serve(w, r, key, func() func() {
		return h.engine.SubscribeCalendar(ownerID, h.window, func(snap live.CalendarSnapshot) {
			h.broadcast(key, map[string]interface{}{
				"action":   "calendarUpdate",
				"items":    snap.Items,
				"sponsors": snap.Sponsors,
			})
		})
	})
}

// ServeWorklist upgrades the request and joins an admin worklist view.
func (h *Hub) ServeWorklist(w http.ResponseWriter, r *http.Request, ownerID, status string) {
	key := roomKey{kind: "worklist", ownerID: ownerID, detail: status}
	h.serve(w, r, key, func() func() {
		return h.engine.SubscribeWorklist(ownerID, status, func(recs []models.SponsorshipRecord) {
			h.broadcast(key, map[string]interface{}{
				"action":       "worklistUpdate",
				"status":       status,
				"sponsorships": recs,
			})
		})
	})
}

// serve upgrades the connection, joins it to the room (opening the room's
// engine subscription if this is the first member) and starts the pumps.
func (h *Hub) serve(w http.ResponseWriter, r *http.Request, key roomKey, open func() func()) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error.Printf("[serve] WebSocket upgrade error: %v", err)
		return
	}
	logger.Info.Printf("[serve] WS connected: remote=%v view=%s/%s", wsConn.RemoteAddr(), key.kind, key.detail)

	c := &Connection{conn: wsConn, send: make(chan []byte, sendBuffer), room: key}

	h.mu.Lock()
	rm, ok := h.rooms[key]
	if !ok {
		rm = &room{conns: make(map[*Connection]bool)}
		h.rooms[key] = rm
	}
	rm.conns[c] = true
	replay := rm.lastMsg
	count := len(rm.conns)
	h.mu.Unlock()

	// opening the subscription happens outside the lock; the engine
	// delivers the initial snapshot on its own goroutine
	if !ok {
		cancel := open()
		h.mu.Lock()
		rm.cancel = cancel
		h.mu.Unlock()
	} else if replay != nil {
		c.send <- replay
	}

	PublishLiveConnections(count, key.detail)

	go c.readPump(h)
	go c.writePump()
}

// broadcast marshals a message once and queues it to every member of the
// room, remembering it for late joiners. Slow clients are skipped, not
// waited on.
func (h *Hub) broadcast(key roomKey, message map[string]interface{}) {
	msg, err := json.Marshal(message)
	if err != nil {
		logger.Error.Printf("[broadcast] marshal failed for %s/%s: %v", key.kind, key.detail, err)
		return
	}

	h.mu.Lock()
	rm, ok := h.rooms[key]
	if !ok {
		h.mu.Unlock()
		return
	}
	rm.lastMsg = msg
	conns := make([]*Connection, 0, len(rm.conns))
	for c := range rm.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	dropped := 0
	for _, c := range conns {
		select {
		case c.send <- msg:
		default:
			dropped++
			logger.Warn.Printf("[broadcast] Dropping message for connection %v", c.conn.RemoteAddr())
		}
	}
	PublishBroadcastBacklog(dropped, key.detail)
}

// unregister removes a connection; the last member leaving a room cancels
// the room's engine subscription so no callback outlives its render target.
func (h *Hub) unregister(c *Connection) {
	h.mu.Lock()
	rm, ok := h.rooms[c.room]
	var cancel func()
	if ok {
		if _, member := rm.conns[c]; member {
			delete(rm.conns, c)
			close(c.send)
		}
		if len(rm.conns) == 0 {
			cancel = rm.cancel
			delete(h.rooms, c.room)
		}
	}
	h.mu.Unlock()

	if cancel != nil {
		logger.Info.Printf("[unregister] Last client left %s/%s, cancelling subscription", c.room.kind, c.room.detail)
		cancel()
	}
}
