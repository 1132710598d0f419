package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lox/holdem-arena/internal/game"
)

// socketRequest is the frame sent to a remote agent for each decision.
type socketRequest struct {
	Type  string         `json:"type"`
	State *game.Snapshot `json:"state"`
}

// socketResponse is the frame a remote agent replies with.
type socketResponse struct {
	Type       string `json:"type"`
	ActionType string `json:"action_type"`
	Amount     int    `json:"amount"`
}

// SocketAgent proxies decisions to an external process over a websocket,
// letting scripted or non-LLM opponents join a table. One decision is in
// flight at a time per connection.
type SocketAgent struct {
	name    string
	timeout time.Duration

	mu   sync.Mutex
	conn *websocket.Conn
}

// DialSocketAgent connects to a remote agent endpoint.
func DialSocketAgent(ctx context.Context, url, name string, timeout time.Duration) (*SocketAgent, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial agent %s: %w", url, err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SocketAgent{name: name, timeout: timeout, conn: conn}, nil
}

// Name returns the agent's display name.
func (a *SocketAgent) Name() string { return a.name }

// Decide sends the snapshot and waits for the remote action. A malformed or
// illegal reply is surfaced as an error; the caller folds the seat.
func (a *SocketAgent) Decide(ctx context.Context, snap *game.Snapshot) (*game.DecisionOutcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	deadline := time.Now().Add(a.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := a.conn.SetWriteDeadline(deadline); err != nil {
		return nil, err
	}
	if err := a.conn.WriteJSON(socketRequest{Type: "decision_request", State: snap}); err != nil {
		return nil, fmt.Errorf("send state: %w", err)
	}

	if err := a.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	var resp socketResponse
	if err := a.conn.ReadJSON(&resp); err != nil {
		return nil, fmt.Errorf("read action: %w", err)
	}

	action, err := actionFromWire(resp)
	if err != nil {
		return nil, err
	}
	return &game.DecisionOutcome{Action: action, ParsedOK: true}, nil
}

// Close shuts the connection down.
func (a *SocketAgent) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.conn.Close()
}

func actionFromWire(resp socketResponse) (game.Action, error) {
	switch resp.ActionType {
	case "fold":
		return game.Action{Type: game.Fold}, nil
	case "check":
		return game.Action{Type: game.Check}, nil
	case "call":
		return game.Action{Type: game.Call}, nil
	case "raise":
		return game.Action{Type: game.Raise, Amount: resp.Amount}, nil
	default:
		return game.Action{}, fmt.Errorf("unknown action type %q", resp.ActionType)
	}
}
