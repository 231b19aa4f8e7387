package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tak-online/internal/room"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
	sendBuffer     = 64
)

var _ room.Broadcaster = (*Hub)(nil)

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connections and room membership, and implements
// room.Broadcaster. Frames are queued per connection and dropped when a
// slow reader's queue is full.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	rooms   map[string]map[string]struct{}

	roomManager RoomManager
	validate    *validator.Validate
	upgrader    websocket.Upgrader
	log         *zap.Logger
}

// NewHub builds a hub. allowOrigin may be nil to accept every origin.
func NewHub(log *zap.Logger, allowOrigin func(origin string) bool) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		clients:  map[string]*client{},
		rooms:    map[string]map[string]struct{}{},
		validate: validator.New(),
		log:      log,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowOrigin == nil || allowOrigin(origin)
		},
	}
	return h
}

// SetRoomManager must be called before the hub serves connections.
func (h *Hub) SetRoomManager(rm RoomManager) {
	h.roomManager = rm
}

func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{id: uuid.NewString(), conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[cl.id] = cl
	h.mu.Unlock()
	h.log.Info("client connected", zap.String("conn_id", cl.id), zap.String("remote", c.ClientIP()))

	go h.writePump(cl)
	h.readPump(cl)

	h.roomManager.Disconnect(cl.id)
	h.unregister(cl)
	h.log.Info("client disconnected", zap.String("conn_id", cl.id))
}

func (h *Hub) readPump(cl *client) {
	cl.conn.SetReadLimit(maxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("read failed", zap.String("conn_id", cl.id), zap.Error(err))
			}
			return
		}
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			h.log.Debug("malformed frame", zap.String("conn_id", cl.id), zap.Error(err))
			continue
		}
		h.dispatch(cl.id, env)
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.Debug("write failed", zap.String("conn_id", cl.id), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, members := range h.rooms {
		delete(members, cl.id)
		if len(members) == 0 {
			delete(h.rooms, id)
		}
	}
	if _, ok := h.clients[cl.id]; ok {
		delete(h.clients, cl.id)
		close(cl.send)
	}
}

// dispatch decodes one intent and hands it to the room manager. Rejected
// intents are dropped; the manager already told the sender whatever it
// needs to know.
func (h *Hub) dispatch(connID string, env Envelope) {
	var err error
	switch env.Action {
	case ActionJoinRoom:
		var p joinRoomPayload
		if err = h.decode(env.Data, &p); err == nil {
			err = h.roomManager.JoinRoom(connID, p.RoomID, p.Username, room.Mode(p.Mode), p.BoardSize)
		}
	case ActionLeaveRoom:
		var p roomPayload
		if err = h.decode(env.Data, &p); err == nil {
			err = h.roomManager.LeaveRoom(connID, p.RoomID)
		}
	case ActionChatMessage:
		var p chatPayload
		if err = h.decode(env.Data, &p); err == nil {
			err = h.roomManager.PostChat(connID, p.RoomID, p.Content)
		}
	case ActionSelectStack:
		var p selectStackPayload
		if err = h.decode(env.Data, &p); err == nil {
			err = h.roomManager.SelectStack(connID, p.RoomID, pieceIDs(p.Pieces))
		}
	case ActionMakeMove:
		var p makeMovePayload
		if err = h.decode(env.Data, &p); err == nil {
			err = h.roomManager.MakeMove(connID, p.RoomID, p.Move)
		}
	case ActionChangePieceStand:
		var p changePieceStandPayload
		if err = h.decode(env.Data, &p); err == nil {
			err = h.roomManager.ChangePieceStand(connID, p.RoomID, p.PieceID)
		}
	case ActionPlayAgain:
		var p playAgainPayload
		if err = h.decode(env.Data, &p); err == nil {
			err = h.roomManager.PlayAgain(connID, p.RoomID)
		}
	default:
		err = errUnknownAction
	}
	if err != nil {
		h.log.Debug("intent dropped",
			zap.String("conn_id", connID),
			zap.String("action", env.Action),
			zap.Error(err))
	}
}

var errUnknownAction = errors.New("unknown action")

func (h *Hub) decode(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return errors.New("missing data")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return err
	}
	return h.validate.Struct(v)
}

// Join adds connID to roomID's broadcast group.
func (h *Hub) Join(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = map[string]struct{}{}
	}
	h.rooms[roomID][connID] = struct{}{}
}

func (h *Hub) Leave(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[roomID]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.rooms, roomID)
	}
}

func (h *Hub) Send(connID string, action string, data interface{}) {
	msg, ok := h.encode(action, data)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if cl, ok := h.clients[connID]; ok {
		h.enqueue(cl, msg)
	}
}

func (h *Hub) Broadcast(roomID string, action string, data interface{}) {
	msg, ok := h.encode(action, data)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id := range h.rooms[roomID] {
		if cl, ok := h.clients[id]; ok {
			h.enqueue(cl, msg)
		}
	}
}

// Members returns the connection ids currently grouped under roomID.
func (h *Hub) Members(roomID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.rooms[roomID]))
	for id := range h.rooms[roomID] {
		out = append(out, id)
	}
	return out
}

func (h *Hub) encode(action string, data interface{}) ([]byte, bool) {
	msg, err := json.Marshal(outbound{Action: action, Data: data})
	if err != nil {
		h.log.Error("encode frame", zap.String("action", action), zap.Error(err))
		return nil, false
	}
	return msg, true
}

// enqueue must run under h.mu.
func (h *Hub) enqueue(cl *client, msg []byte) {
	select {
	case cl.send <- msg:
	default:
		h.log.Warn("send buffer full, frame dropped", zap.String("conn_id", cl.id))
	}
}
