package game

import (
	"context"
	"encoding/json"
)

// Agent decides actions for one seat. Implementations range from LLM-backed
// pipelines to scripted test agents; the hand engine only sees this interface.
type Agent interface {
	// Name identifies the agent, typically the model identifier.
	Name() string

	// Decide picks an action for the snapshot's viewer. The returned outcome
	// carries the action plus the telemetry of how it was produced. A non-nil
	// error means the agent could not decide at all; the caller substitutes a
	// safe default.
	Decide(ctx context.Context, snap *Snapshot) (*DecisionOutcome, error)
}

// ToolInvocation records one tool call made while deciding.
type ToolInvocation struct {
	Name   string          `json:"name"`
	Args   json.RawMessage `json:"args"`
	Result json.RawMessage `json:"result"`
}

// DecisionOutcome is the full account of a single decision: the action taken
// and how it was reached.
type DecisionOutcome struct {
	Action           Action           `json:"-"`
	RawReply         string           `json:"raw_reply,omitempty"`
	PromptTokens     int              `json:"prompt_tokens"`
	CompletionTokens int              `json:"completion_tokens"`
	TotalTokens      int              `json:"total_tokens"`
	ElapsedMS        int64            `json:"elapsed_ms"`
	Cost             float64          `json:"cost"`
	ParsedOK         bool             `json:"parsed_ok"`
	Clarified        bool             `json:"clarified"`
	DefaultUsed      bool             `json:"default_used"`
	Err              string           `json:"error,omitempty"`
	ToolCalls        []ToolInvocation `json:"tool_calls,omitempty"`
}
