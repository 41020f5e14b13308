package server

import (
	"github.com/verte-zerg/keytype/internal/feedback"
	"github.com/verte-zerg/keytype/internal/keyboard"
	"github.com/verte-zerg/keytype/internal/stats"
	"github.com/verte-zerg/keytype/internal/typing"
)

// Message types exchanged over the websocket.
const (
	TypeKeyDown = "keydown"
	TypeLayout  = "layout"
	TypeReset   = "reset"
	TypeWords   = "words"
	TypeState   = "state"
	TypeAck     = "ack"
	TypeError   = "error"
)

// Inbound is a message sent by the browser. Keydown messages carry the
// event fields at the top level.
type Inbound struct {
	Type string `json:"type"`
	keyboard.Event
	Layout string   `json:"layout,omitempty"`
	Words  []string `json:"words,omitempty"`
}

// WordView is one word with the feedback class of each character.
type WordView struct {
	typing.WordState
	Chars []feedback.Class `json:"chars"`
}

// StateMessage is a full snapshot of a connection's session.
type StateMessage struct {
	Type         string          `json:"type"`
	Session      string          `json:"session"`
	Prevented    bool            `json:"prevented"`
	Layout       keyboard.Layout `json:"layout"`
	Status       string          `json:"status"`
	CurrentIndex int             `json:"currentIndex"`
	Words        []WordView      `json:"words"`
	Stats        stats.Stats     `json:"stats"`
}

// AckMessage answers a keydown that left the session unchanged.
type AckMessage struct {
	Type      string `json:"type"`
	Session   string `json:"session"`
	Prevented bool   `json:"prevented"`
}

// ErrorMessage reports a rejected inbound message.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func newStateMessage(id string, layout keyboard.Layout, s typing.Session, prevented bool) StateMessage {
	words := make([]WordView, len(s.Words))
	for i, ws := range s.Words {
		words[i] = WordView{WordState: ws, Chars: feedback.Word(ws, i, s.CurrentIndex)}
	}
	return StateMessage{
		Type:         TypeState,
		Session:      id,
		Prevented:    prevented,
		Layout:       layout,
		Status:       s.Status().String(),
		CurrentIndex: s.CurrentIndex,
		Words:        words,
		Stats:        s.Stats,
	}
}
