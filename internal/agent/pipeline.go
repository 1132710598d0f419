package agent

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/llm"
	"github.com/lox/holdem-arena/internal/tools"
)

// maxToolRounds caps how many rounds of tool calls a model may make for a
// single decision before being forced to answer in text.
const maxToolRounds = 3

// Pipeline is the LLM-backed decision agent: it prompts the model with the
// game state, serves its tool calls, parses the reply into an action and
// retries once with a clarification when the reply is unparseable. It
// implements game.Agent.
type Pipeline struct {
	model         string
	systemPrompt  string
	temperature   float64
	supportsTools bool
	completer     llm.ChatCompleter
	registry      *tools.Registry
	clock         quartz.Clock
	logger        *log.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithSystemPrompt overrides the default system prompt.
func WithSystemPrompt(prompt string) PipelineOption {
	return func(p *Pipeline) { p.systemPrompt = prompt }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) PipelineOption {
	return func(p *Pipeline) { p.temperature = t }
}

// WithoutTools disables function calling for models that lack it.
func WithoutTools() PipelineOption {
	return func(p *Pipeline) { p.supportsTools = false }
}

// WithPipelineClock injects the clock used for latency measurement.
func WithPipelineClock(clk quartz.Clock) PipelineOption {
	return func(p *Pipeline) { p.clock = clk }
}

// WithPipelineLogger sets the logger.
func WithPipelineLogger(logger *log.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = logger }
}

// NewPipeline creates a decision pipeline for one model.
func NewPipeline(model string, completer llm.ChatCompleter, registry *tools.Registry, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		model:         model,
		systemPrompt:  DefaultSystemPrompt,
		temperature:   0.7,
		supportsTools: true,
		completer:     completer,
		registry:      registry,
		clock:         quartz.NewReal(),
		logger:        log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("model", llm.ShortName(model))
	return p
}

// Name returns the model identifier.
func (p *Pipeline) Name() string { return p.model }

// Decide runs the full decision loop for one snapshot. Transport failures
// never surface as errors: the outcome degrades to a fold with the failure
// recorded, so one flaky provider cannot abort a match.
func (p *Pipeline) Decide(ctx context.Context, snap *game.Snapshot) (*game.DecisionOutcome, error) {
	start := p.clock.Now()
	outcome := &game.DecisionOutcome{}
	legal := snap.LegalSet()

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: p.systemPrompt},
		{Role: llm.RoleUser, Content: BuildActionPrompt(snap)},
	}

	var reply llm.Message
	failed := false
	for round := 0; ; round++ {
		forceText := round >= maxToolRounds
		resp, err := p.call(ctx, messages, forceText)
		if err != nil {
			p.logger.Warn("completion failed, folding", "err", err)
			outcome.Err = err.Error()
			failed = true
			break
		}
		p.addUsage(outcome, resp)
		reply = resp.First()

		if len(reply.ToolCalls) == 0 || forceText {
			break
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   reply.Content,
			ToolCalls: reply.ToolCalls,
		})
		messages = append(messages, p.runTools(ctx, outcome, reply.ToolCalls)...)
	}

	if failed {
		outcome.Action = game.Action{Type: game.Fold}
		outcome.DefaultUsed = true
		outcome.ElapsedMS = p.clock.Since(start).Milliseconds()
		return outcome, nil
	}

	outcome.RawReply = reply.Content
	parsed := Parse(reply.Content, legal)

	// One clarification round before giving up on the reply.
	if !parsed.OK {
		outcome.Clarified = true
		messages = append(messages,
			llm.Message{Role: llm.RoleAssistant, Content: reply.Content},
			llm.Message{Role: llm.RoleUser, Content: BuildClarificationPrompt()})

		resp, err := p.call(ctx, messages, false)
		if err != nil {
			p.logger.Warn("clarification failed, folding", "err", err)
			outcome.Action = game.Action{Type: game.Fold}
			outcome.DefaultUsed = true
			outcome.Err = err.Error()
			outcome.ElapsedMS = p.clock.Since(start).Milliseconds()
			return outcome, nil
		}
		p.addUsage(outcome, resp)
		outcome.RawReply = resp.First().Content
		parsed = Parse(outcome.RawReply, legal)
	}

	if !parsed.OK {
		parsed = DefaultAction(legal)
		outcome.DefaultUsed = true
	}

	outcome.Action = parsed.Action
	outcome.ParsedOK = parsed.OK
	if parsed.Err != "" {
		outcome.Err = parsed.Err
	}
	outcome.ElapsedMS = p.clock.Since(start).Milliseconds()
	return outcome, nil
}

func (p *Pipeline) call(ctx context.Context, messages []llm.Message, forceText bool) (*llm.Response, error) {
	req := &llm.Request{
		Model:       p.model,
		Messages:    messages,
		Temperature: p.temperature,
	}
	if p.supportsTools {
		req.Tools = p.registry.Specs()
		req.ToolChoice = "auto"
		if forceText {
			req.ToolChoice = "none"
		}
	}
	return p.completer.Complete(ctx, req)
}

// runTools executes the model's tool calls and returns the tool messages to
// feed back, recording each invocation on the outcome.
func (p *Pipeline) runTools(ctx context.Context, outcome *game.DecisionOutcome, calls []llm.ToolCall) []llm.Message {
	results := make([]llm.Message, 0, len(calls))
	for _, tc := range calls {
		args := json.RawMessage(tc.Function.Arguments)
		result := p.registry.Invoke(ctx, tc.Function.Name, args)

		p.logger.Debug("tool call", "tool", tc.Function.Name)
		outcome.ToolCalls = append(outcome.ToolCalls, game.ToolInvocation{
			Name:   tc.Function.Name,
			Args:   args,
			Result: result,
		})
		results = append(results, llm.Message{
			Role:       llm.RoleTool,
			ToolCallID: tc.ID,
			Content:    string(result),
		})
	}
	return results
}

func (p *Pipeline) addUsage(outcome *game.DecisionOutcome, resp *llm.Response) {
	outcome.PromptTokens += resp.Usage.PromptTokens
	outcome.CompletionTokens += resp.Usage.CompletionTokens
	outcome.TotalTokens += resp.Usage.TotalTokens
	outcome.Cost += llm.CostEstimate(p.model, resp.Usage)
}
