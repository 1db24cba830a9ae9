package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/logger"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/services"
)

const (
	writeWait     = 10 * time.Second
	clientBacklog = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	MessageAccountUpdate  = "ACCOUNT_UPDATE"
	MessageStorageWarning = "STORAGE_WARNING"
	MessagePing           = "PING"
	MessagePong           = "PONG"
)

// WebSocketHub fans ledger updates out to connected clients. It satisfies
// services.Broadcaster.
type WebSocketHub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	count      chan chan int
}

var _ services.Broadcaster = (*WebSocketHub)(nil)

type Client struct {
	AccountID string
	Conn      *websocket.Conn
	send      chan *Message
}

type Message struct {
	Type      string `json:"type"`
	AccountID string `json:"account_id,omitempty"`
	Data      any    `json:"data"`
}

func NewWebSocketHub() *WebSocketHub {
	hub := &WebSocketHub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 100),
		count:      make(chan chan int),
	}

	go hub.run()

	return hub
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			set, ok := hub.clients[client.AccountID]
			if !ok {
				set = make(map[*Client]struct{})
				hub.clients[client.AccountID] = set
			}
			set[client] = struct{}{}
			logger.Log.Debugw("websocket client registered", "account_id", client.AccountID)

		case client := <-hub.unregister:
			hub.remove(client)

		case message := <-hub.broadcast:
			hub.broadcastMessage(message)

		case reply := <-hub.count:
			n := 0
			for _, set := range hub.clients {
				n += len(set)
			}
			reply <- n
		}
	}
}

func (hub *WebSocketHub) remove(client *Client) {
	set, ok := hub.clients[client.AccountID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(hub.clients, client.AccountID)
	}
	logger.Log.Debugw("websocket client unregistered", "account_id", client.AccountID)
}

func (hub *WebSocketHub) broadcastMessage(message *Message) {
	for accountID, set := range hub.clients {
		if message.AccountID != "" && message.AccountID != accountID {
			continue
		}
		for client := range set {
			select {
			case client.send <- message:
			default:
				hub.remove(client)
			}
		}
	}
}

// ClientCount reports the number of connected clients.
func (hub *WebSocketHub) ClientCount() int {
	reply := make(chan int)
	hub.count <- reply
	return <-reply
}

func (hub *WebSocketHub) publish(msg *Message) {
	select {
	case hub.broadcast <- msg:
	default:
		logger.Log.Warnw("websocket broadcast queue full, dropping message", "type", msg.Type)
	}
}

func (hub *WebSocketHub) BroadcastAccountUpdate(account models.Account) {
	hub.publish(&Message{
		Type:      MessageAccountUpdate,
		AccountID: account.ID,
		Data:      accountResponse(account),
	})
}

func (hub *WebSocketHub) BroadcastStorageWarning(err error) {
	hub.publish(&Message{
		Type: MessageStorageWarning,
		Data: gin.H{
			"error":     err.Error(),
			"timestamp": time.Now().Unix(),
		},
	})
}

type WebSocketHandler struct {
	store *services.AccountStore
	hub   *WebSocketHub
}

func NewWebSocketHandler(store *services.AccountStore, hub *WebSocketHub) *WebSocketHandler {
	return &WebSocketHandler{
		store: store,
		hub:   hub,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	accountID := c.GetString("account_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warnw("failed to upgrade to websocket", "error", err)
		return
	}

	client := &Client{
		AccountID: accountID,
		Conn:      conn,
		send:      make(chan *Message, clientBacklog),
	}

	h.hub.register <- client
	go client.writePump()

	defer func() {
		h.hub.unregister <- client
		conn.Close()
	}()

	if account, ok := h.store.Account(accountID); ok {
		h.hub.BroadcastAccountUpdate(account)
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warnw("websocket error", "account_id", accountID, "error", err)
			}
			break
		}

		if msg.Type == MessagePing {
			h.hub.publish(&Message{
				Type:      MessagePong,
				AccountID: accountID,
				Data: gin.H{
					"timestamp": time.Now().Unix(),
				},
			})
		}
	}
}

// writePump owns all writes to the connection.
func (c *Client) writePump() {
	for msg := range c.send {
		c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.Conn.WriteJSON(msg); err != nil {
			logger.Log.Debugw("websocket write failed", "account_id", c.AccountID, "error", err)
			c.Conn.Close()
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
