package chat

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/songurtechnology/wafelinvest/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// MessageStore persists chat messages. Each insert is independent; there is
// no transaction spanning persist and broadcast.
type MessageStore interface {
	SaveMessage(ctx context.Context, msg *models.ChatMessage) error
}

// Client is one WebSocket connection joined to exactly one conversation
// group.
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	store MessageStore
	send  chan []byte

	key      string
	sender   models.User
	receiver models.User
}

func NewClient(hub *Hub, conn *websocket.Conn, store MessageStore, key string, sender, receiver models.User) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		store:    store,
		send:     make(chan []byte, sendBufferSize),
		key:      key,
		sender:   sender,
		receiver: receiver,
	}
}

type inboundFrame struct {
	Message string `json:"message"`
}

// ReadPump reads inbound frames, persists each message and publishes it to
// the conversation group. Runs on the connection's own goroutine so one
// connection's traffic never blocks another's.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Leave(c.key, c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[chat] read error for %s: %v", c.sender.Username, err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			// malformed inbound JSON is connection-fatal
			log.Printf("[chat] malformed frame from %s: %v", c.sender.Username, err)
			return
		}
		if frame.Message == "" {
			continue
		}

		msg := &models.ChatMessage{
			ConversationKey: c.key,
			SenderID:        c.sender.ID,
			ReceiverID:      c.receiver.ID,
			Message:         frame.Message,
			SentAt:          time.Now(),
		}
		if err := c.store.SaveMessage(context.Background(), msg); err != nil {
			log.Printf("[chat] failed to persist message from %s: %v", c.sender.Username, err)
			continue
		}

		if err := c.hub.Publish(context.Background(), c.key, Event{
			Message: frame.Message,
			Sender:  c.sender.Username,
		}); err != nil {
			log.Printf("[chat] failed to publish to group %s: %v", c.key, err)
		}
	}
}

// WritePump forwards broadcast payloads to the connection and keeps it
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
