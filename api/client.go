package api

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hoshinonyaruko/snake-classic/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Command is a control message sent by a websocket client, for example
// {"command":"turn","value":"up"}.
type Command struct {
	Command string `json:"command"`
	Value   string `json:"value"`
}

// Client is one websocket connection. It receives events from the hub and
// may send commands back.
type Client struct {
	hub  *Hub
	sess *session.Session
	conn *websocket.Conn
	send chan []byte
}

func NewClient(hub *Hub, sess *session.Session, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		sess: sess,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

func (c *Client) Register() {
	c.hub.register <- c
}

// ReadPump applies commands from the connection until it closes.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Websocket read error: %v", err)
			}
			break
		}

		var cmd Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			log.Printf("Ignoring malformed websocket command: %s", err)
			continue
		}
		if _, err := applyCommand(c.sess, cmd.Command, cmd.Value); err != nil {
			log.Printf("Rejected websocket command %q: %s", cmd.Command, err)
		}
	}
}

// WritePump writes queued events to the connection, one message each.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
