package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/verte-zerg/keytype/internal/keyboard"
	"github.com/verte-zerg/keytype/internal/trainer"
	"github.com/verte-zerg/keytype/internal/typing"
)

// client is one websocket connection and the session it owns. Inbound
// messages are handled one at a time on the read loop.
type client struct {
	id      string
	conn    *websocket.Conn
	trainer *trainer.Trainer
	logger  *slog.Logger

	writeMu sync.Mutex

	layoutMu sync.Mutex
	layout   keyboard.Layout

	// Event being dispatched, so state pushes can report whether it was consumed.
	current *keyboard.Event
	pushed  bool
}

func (c *client) currentLayout() keyboard.Layout {
	c.layoutMu.Lock()
	defer c.layoutMu.Unlock()
	return c.layout
}

func (c *client) setLayout(l keyboard.Layout) {
	c.layoutMu.Lock()
	c.layout = l
	c.layoutMu.Unlock()
}

func (c *client) onChange(s typing.Session) {
	c.pushed = true
	prevented := c.current != nil && c.current.DefaultPrevented()
	c.send(newStateMessage(c.id, c.currentLayout(), s, prevented))
}

func (c *client) readLoop() {
	c.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read failed", "err", err)
			}
			return
		}
		var msg Inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Debug("malformed message", "err", err)
			c.sendError(fmt.Errorf("malformed message: %w", err))
			continue
		}
		c.handle(msg)
	}
}

func (c *client) handle(msg Inbound) {
	switch msg.Type {
	case TypeKeyDown:
		ev := msg.Event
		c.current = &ev
		c.pushed = false
		handled := c.trainer.HandleKeyDown(&ev)
		c.current = nil
		if !c.pushed {
			c.send(AckMessage{Type: TypeAck, Session: c.id, Prevented: ev.DefaultPrevented()})
		}
		c.logger.Debug("keydown", "code", ev.Code, "handled", handled)
	case TypeLayout:
		layout, err := keyboard.ParseLayout(msg.Layout)
		if err != nil {
			c.sendError(err)
			return
		}
		c.setLayout(layout)
		c.logger.Info("layout changed", "layout", layout)
		c.send(newStateMessage(c.id, layout, c.trainer.Session(), false))
	case TypeReset:
		c.trainer.Reset()
	case TypeWords:
		c.trainer.SetWords(msg.Words)
	default:
		c.sendError(fmt.Errorf("unknown message type %q", msg.Type))
	}
}

func (c *client) send(v any) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Debug("set write deadline failed", "err", err)
	}
	if err := c.conn.WriteJSON(v); err != nil {
		c.logger.Debug("write failed", "err", err)
	}
}

func (c *client) sendError(err error) {
	c.send(ErrorMessage{Type: TypeError, Error: err.Error()})
}

func (c *client) close(code int, reason string) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	msg := websocket.FormatCloseMessage(code, reason)
	if err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		c.logger.Debug("close frame failed", "err", err)
	}
	if err := c.conn.Close(); err != nil {
		// Best-effort close.
		_ = err
	}
}
