package hub

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// connState is the lifecycle of one connection as the broker sees it.
// Connected means the socket is up but the client has not joined a room;
// drawing intents are only honored while Joined. Closed is terminal and
// absorbs any event that was still in flight.
type connState int

const (
	stateConnected connState = iota
	stateJoined
	stateClosed
)

// conn is one websocket client. id, state, room and meta are touched only
// by the hub's event loop; the pumps just move bytes.
type conn struct {
	id   string
	ws   *websocket.Conn
	send chan []byte

	state connState
	room  string
	meta  UserMeta
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// LAN tool, same-origin deployment; the browser client is served from
	// this process.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades an HTTP request and hands the connection to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	c := &conn{
		id:   uuid.NewString(),
		ws:   ws,
		send: make(chan []byte, 64),
	}
	h.events <- event{kind: evtRegister, c: c}
	go c.writePump()
	c.readPump(h)
}

// readPump forwards inbound frames to the hub event loop, preserving the
// transport's per-connection FIFO order. It runs in the handler goroutine
// and signals the disconnect transition on any read error.
func (c *conn) readPump(h *Hub) {
	defer func() {
		h.events <- event{kind: evtDisconnect, c: c}
		c.ws.Close()
	}()
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		h.events <- event{kind: evtMessage, c: c, data: data}
	}
}

// writePump drains the send channel onto the socket. The hub closes the
// channel once the connection reaches Closed.
func (c *conn) writePump() {
	for data := range c.send {
		if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			break
		}
	}
	c.ws.Close()
}
