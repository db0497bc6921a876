package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/finnb0y/virtualchips/internal/engine"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection wraps one WebSocket client. A connection is anonymous until it
// sends a hello with a valid access code; after that its sender identity is
// fixed and stamped onto every action it submits.
type Connection struct {
	conn       *websocket.Conn
	send       chan *Message
	senderID   string
	dealer     bool
	logger     *log.Logger
	dispatcher *Dispatcher
	resolve    ResolveFunc
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.RWMutex
	closeOnce  sync.Once
}

// ResolveFunc maps an access code to a sender identity. Dealer codes map to
// a dealer identity for their table.
type ResolveFunc func(accessCode string) (senderID string, dealer bool, tableID string, ok bool)

// NewConnection creates a connection wrapper.
func NewConnection(conn *websocket.Conn, logger *log.Logger, dispatcher *Dispatcher, resolve ResolveFunc) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:       conn,
		send:       make(chan *Message, 256),
		logger:     logger.WithPrefix("conn"),
		dispatcher: dispatcher,
		resolve:    resolve,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message to the client.
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed during shutdown.
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SenderID returns the authenticated sender identity, empty before hello.
func (c *Connection) SenderID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.senderID
}

// IsDealer reports whether the connection authenticated with a dealer code.
func (c *Connection) IsDealer() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dealer
}

func (c *Connection) setIdentity(senderID string, dealer bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.senderID = senderID
	c.dealer = dealer
}

// readPump handles incoming messages from the client.
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var env Envelope
		err := c.conn.ReadJSON(&env)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleEnvelope(&env)
	}
}

// writePump handles outgoing messages to the client.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Connection) handleEnvelope(env *Envelope) {
	if env.Type == EnvelopeTypeHello {
		c.handleHello(env)
		return
	}

	senderID := c.SenderID()
	if senderID == "" {
		c.sendError("not_authenticated", "Send hello with an access code first")
		return
	}
	if dealerOnly(engine.Kind(env.Type)) && !c.IsDealer() {
		c.sendError("dealer_only", "Action requires the dealer console: "+env.Type)
		return
	}

	action, err := engine.DecodeAction(engine.Kind(env.Type), env.Payload)
	if err != nil {
		c.sendError("invalid_action", err.Error())
		return
	}

	res, err := c.dispatcher.Submit(c.ctx, engine.Message{SenderID: senderID, Action: action})
	if err != nil {
		c.sendError("submit_failed", err.Error())
		return
	}
	_ = c.SendMessage(ActionResultMessage(res, env.RequestID))
}

func (c *Connection) handleHello(env *Envelope) {
	var data HelloData
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse hello data")
			return
		}
	}
	if data.AccessCode == "" {
		c.sendError("invalid_auth", "Access code required")
		return
	}

	senderID, dealer, tableID, ok := c.resolve(data.AccessCode)
	if !ok {
		c.sendError("invalid_auth", "Unknown access code")
		return
	}
	c.setIdentity(senderID, dealer)
	c.logger.Info("Client authenticated", "sender", senderID, "dealer", dealer)

	welcome, err := NewMessage(MessageTypeWelcome, WelcomeData{
		SenderID: senderID,
		Dealer:   dealer,
		TableID:  tableID,
	})
	if err != nil {
		c.logger.Error("Failed to create welcome message", "error", err)
		return
	}
	_ = c.SendMessage(welcome)

	// New clients get the current snapshot immediately instead of waiting
	// for the next applied action.
	if snap := c.dispatcher.Snapshot(); snap != nil {
		if msg, err := StateMessage(snap); err == nil {
			_ = c.SendMessage(msg)
		}
	}
}

// dealerOnly reports whether an action kind may only come from a dealer
// connection. Players submit their own betting actions; everything else is
// table or tournament administration.
func dealerOnly(kind engine.Kind) bool {
	switch kind {
	case engine.KindBet, engine.KindRaise, engine.KindCall, engine.KindCheck, engine.KindFold:
		return false
	default:
		return true
	}
}

func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}
	_ = c.SendMessage(errorMsg)
}
