package agent

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/llm"
	"github.com/lox/holdem-arena/internal/randutil"
	"github.com/lox/holdem-arena/internal/tools"
)

// scriptedCompleter replays canned responses and records requests.
type scriptedCompleter struct {
	responses []*llm.Response
	requests  []*llm.Request
	err       error
}

func (c *scriptedCompleter) Complete(_ context.Context, req *llm.Request) (*llm.Response, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	if len(c.responses) == 0 {
		return nil, errors.New("script exhausted")
	}
	resp := c.responses[0]
	c.responses = c.responses[1:]
	return resp, nil
}

func textResponse(content string) *llm.Response {
	return &llm.Response{
		Choices: []llm.Choice{{Message: llm.Message{Role: llm.RoleAssistant, Content: content}}},
		Usage:   llm.Usage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120},
	}
}

func toolResponse(id, name, args string) *llm.Response {
	return &llm.Response{
		Choices: []llm.Choice{{Message: llm.Message{
			Role: llm.RoleAssistant,
			ToolCalls: []llm.ToolCall{{
				ID:   id,
				Type: "function",
				Function: llm.FunctionCall{Name: name, Arguments: args},
			}},
		}}},
		Usage: llm.Usage{PromptTokens: 100, CompletionTokens: 10, TotalTokens: 110},
	}
}

func testSnapshot(t *testing.T) *game.Snapshot {
	t.Helper()
	h := game.NewHand(randutil.New(1), []string{"openai/gpt-4o", "b"}, 0, 5, 10)
	return h.Snapshot(0)
}

func newTestPipeline(c llm.ChatCompleter) *Pipeline {
	return NewPipeline("openai/gpt-4o", c, tools.NewRegistry(1, 200),
		WithPipelineLogger(log.New(io.Discard)))
}

func TestPipelineTextDecision(t *testing.T) {
	c := &scriptedCompleter{responses: []*llm.Response{textResponse("The pot odds are favorable, I CALL")}}
	p := newTestPipeline(c)

	outcome, err := p.Decide(context.Background(), testSnapshot(t))
	require.NoError(t, err)

	assert.Equal(t, game.Action{Type: game.Call}, outcome.Action)
	assert.True(t, outcome.ParsedOK)
	assert.False(t, outcome.DefaultUsed)
	assert.False(t, outcome.Clarified)
	assert.Equal(t, 120, outcome.TotalTokens)
	assert.Greater(t, outcome.Cost, 0.0)
	assert.Equal(t, "The pot odds are favorable, I CALL", outcome.RawReply)

	require.Len(t, c.requests, 1)
	req := c.requests[0]
	assert.Equal(t, "openai/gpt-4o", req.Model)
	assert.Equal(t, "auto", req.ToolChoice)
	assert.Len(t, req.Tools, 2)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, llm.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, DefaultSystemPrompt, req.Messages[0].Content)
	assert.Contains(t, req.Messages[1].Content, "What is your action?")
}

func TestPipelineToolRoundThenDecision(t *testing.T) {
	c := &scriptedCompleter{responses: []*llm.Response{
		toolResponse("tc-1", "pot_odds_calculator", `{"pot_size": 300, "bet_to_call": 100}`),
		textResponse("Good odds, I CALL"),
	}}
	p := newTestPipeline(c)

	outcome, err := p.Decide(context.Background(), testSnapshot(t))
	require.NoError(t, err)

	assert.Equal(t, game.Action{Type: game.Call}, outcome.Action)
	require.Len(t, outcome.ToolCalls, 1)
	assert.Equal(t, "pot_odds_calculator", outcome.ToolCalls[0].Name)
	assert.Contains(t, string(outcome.ToolCalls[0].Result), "3.0:1")
	assert.Equal(t, 230, outcome.TotalTokens, "both calls counted")

	// Second request carries the assistant tool calls and the tool result.
	require.Len(t, c.requests, 2)
	msgs := c.requests[1].Messages
	require.Len(t, msgs, 4)
	assert.Equal(t, llm.RoleAssistant, msgs[2].Role)
	require.Len(t, msgs[2].ToolCalls, 1)
	assert.Equal(t, llm.RoleTool, msgs[3].Role)
	assert.Equal(t, "tc-1", msgs[3].ToolCallID)
	assert.Contains(t, msgs[3].Content, "pot_odds_percentage")
}

func TestPipelineForcesTextAfterToolRoundCap(t *testing.T) {
	c := &scriptedCompleter{responses: []*llm.Response{
		toolResponse("tc-1", "pot_odds_calculator", `{"pot_size": 10, "bet_to_call": 5}`),
		toolResponse("tc-2", "equity_calculator", `{"hole_cards": "AsKh", "community_cards": "", "num_opponents": 1}`),
		toolResponse("tc-3", "pot_odds_calculator", `{"pot_size": 10, "bet_to_call": 5}`),
		textResponse("CALL"),
	}}
	p := newTestPipeline(c)

	outcome, err := p.Decide(context.Background(), testSnapshot(t))
	require.NoError(t, err)

	assert.Equal(t, game.Action{Type: game.Call}, outcome.Action)
	assert.Len(t, outcome.ToolCalls, 3)
	require.Len(t, c.requests, 4)
	assert.Equal(t, "none", c.requests[3].ToolChoice, "tool budget spent, text forced")
}

func TestPipelineUnknownToolStillAnswers(t *testing.T) {
	c := &scriptedCompleter{responses: []*llm.Response{
		toolResponse("tc-1", "card_counter", `{}`),
		textResponse("FOLD"),
	}}
	p := newTestPipeline(c)

	outcome, err := p.Decide(context.Background(), testSnapshot(t))
	require.NoError(t, err)

	assert.Equal(t, game.Action{Type: game.Fold}, outcome.Action)
	require.Len(t, outcome.ToolCalls, 1)
	assert.Contains(t, string(outcome.ToolCalls[0].Result), "Unknown tool: card_counter")
}

func TestPipelineClarificationRetry(t *testing.T) {
	c := &scriptedCompleter{responses: []*llm.Response{
		textResponse("Hmm, let me think about this for a while."),
		textResponse("CALL"),
	}}
	p := newTestPipeline(c)

	outcome, err := p.Decide(context.Background(), testSnapshot(t))
	require.NoError(t, err)

	assert.Equal(t, game.Action{Type: game.Call}, outcome.Action)
	assert.True(t, outcome.ParsedOK)
	assert.True(t, outcome.Clarified)
	assert.False(t, outcome.DefaultUsed)

	require.Len(t, c.requests, 2)
	msgs := c.requests[1].Messages
	require.Len(t, msgs, 4)
	assert.Equal(t, llm.RoleAssistant, msgs[2].Role)
	assert.Contains(t, msgs[3].Content, "Your previous response was unclear.")
}

func TestPipelineDefaultAfterFailedClarification(t *testing.T) {
	c := &scriptedCompleter{responses: []*llm.Response{
		textResponse("no action here"),
		textResponse("still no action"),
	}}
	p := newTestPipeline(c)

	outcome, err := p.Decide(context.Background(), testSnapshot(t))
	require.NoError(t, err)

	// Facing the big blind there is no free check; the default is fold.
	assert.Equal(t, game.Action{Type: game.Fold}, outcome.Action)
	assert.False(t, outcome.ParsedOK)
	assert.True(t, outcome.Clarified)
	assert.True(t, outcome.DefaultUsed)
	assert.Equal(t, "Using default action: FOLD", outcome.Err)
}

func TestPipelineTransportFailureFolds(t *testing.T) {
	c := &scriptedCompleter{err: errors.New("connection refused")}
	p := newTestPipeline(c)

	outcome, err := p.Decide(context.Background(), testSnapshot(t))
	require.NoError(t, err, "transport failures degrade, they do not abort")

	assert.Equal(t, game.Action{Type: game.Fold}, outcome.Action)
	assert.True(t, outcome.DefaultUsed)
	assert.False(t, outcome.ParsedOK)
	assert.Contains(t, outcome.Err, "connection refused")
}

func TestPipelineWithoutTools(t *testing.T) {
	c := &scriptedCompleter{responses: []*llm.Response{textResponse("CALL")}}
	p := NewPipeline("simple/model", c, tools.NewRegistry(1, 200),
		WithoutTools(),
		WithPipelineLogger(log.New(io.Discard)))

	_, err := p.Decide(context.Background(), testSnapshot(t))
	require.NoError(t, err)

	require.Len(t, c.requests, 1)
	assert.Empty(t, c.requests[0].Tools)
	assert.Empty(t, c.requests[0].ToolChoice)
}
