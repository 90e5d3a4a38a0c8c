// Package client provides the HTTP client for the jakebox lobby backend.
// Player records are kept opaque; the client never assumes their schema.
package client

import (
	"bytes"
	"encoding/json"
)

// Player is a single player record exactly as the backend returned it.
type Player json.RawMessage

// String returns the compact JSON text of the record.
func (p Player) String() string {
	if len(p) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, p); err != nil {
		return string(p)
	}
	return buf.String()
}

// UnmarshalJSON stores a copy of data.
func (p *Player) UnmarshalJSON(data []byte) error {
	*p = append((*p)[0:0], data...)
	return nil
}

// JoinRequest is the body of POST /sessions/{accessCode}/players.
type JoinRequest struct {
	Name string `json:"name"`
}

// JoinResultMsg is delivered to the Bubble Tea program when a join attempt
// resolves. Exactly one of Players or Err is meaningful.
type JoinResultMsg struct {
	AccessCode string
	Name       string
	Players    []Player
	Err        error
}
