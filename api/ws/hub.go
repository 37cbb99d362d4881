package ws

import (
	"net/http"
	"sync"
	"time"

	"mindlift/internal/utils"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const writeTimeout = 10 * time.Second

// client wraps a connection with the write lock gorilla/websocket
// requires: at most one concurrent writer per connection. Pushes from
// request goroutines and echoes from the read loop both go through
// writeJSON.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) writeJSON(payload any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(payload)
}

// Hub is the push channel. Clients connect with ?token=<session token>
// and are rejected with 401 before the upgrade when it is missing or
// invalid. Incoming JSON frames are echoed back.
type Hub struct {
	jwt      *utils.JWTManager
	upgrader websocket.Upgrader
	log      *logrus.Logger

	mutex sync.RWMutex
	conns map[uuid.UUID]map[*client]struct{}
}

func NewHub(jwt *utils.JWTManager, log *logrus.Logger) *Hub {
	return &Hub{
		jwt: jwt,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log:   log,
		conns: make(map[uuid.UUID]map[*client]struct{}),
	}
}

func (h *Hub) Handle(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	claims, err := h.jwt.ParseSessionToken(token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return nil // upgrader already wrote the response
	}

	cl := &client{conn: conn}
	h.register(userID, cl)
	go h.readLoop(userID, cl)
	return nil
}

// Push delivers payload to every live connection of userID. Best
// effort: a dead connection is dropped, never retried.
func (h *Hub) Push(userID uuid.UUID, payload any) {
	h.mutex.RLock()
	clients := make([]*client, 0, len(h.conns[userID]))
	for cl := range h.conns[userID] {
		clients = append(clients, cl)
	}
	h.mutex.RUnlock()

	for _, cl := range clients {
		if err := cl.writeJSON(payload); err != nil {
			h.log.WithError(err).WithField("user_id", userID).Debug("websocket push failed")
			h.unregister(userID, cl)
			cl.conn.Close()
		}
	}
}

func (h *Hub) readLoop(userID uuid.UUID, cl *client) {
	defer func() {
		h.unregister(userID, cl)
		cl.conn.Close()
	}()

	for {
		var message map[string]any
		if err := cl.conn.ReadJSON(&message); err != nil {
			return
		}
		if err := cl.writeJSON(message); err != nil {
			return
		}
	}
}

func (h *Hub) register(userID uuid.UUID, cl *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*client]struct{})
	}
	h.conns[userID][cl] = struct{}{}
}

func (h *Hub) unregister(userID uuid.UUID, cl *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.conns[userID], cl)
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}
