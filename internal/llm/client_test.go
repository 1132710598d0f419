package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(content string) string {
	resp := Response{
		ID: "cmpl-1",
		Choices: []Choice{
			{Message: Message{Role: RoleAssistant, Content: content}, FinishReason: "stop"},
		},
		Usage: Usage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestClientComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req Request
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "openai/gpt-4o", req.Model)

		io.WriteString(w, completionBody("CALL"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", WithLogger(log.New(io.Discard)))
	resp, err := c.Complete(context.Background(), &Request{
		Model:    "openai/gpt-4o",
		Messages: []Message{{Role: RoleUser, Content: "act"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "CALL", resp.First().Content)
	assert.Equal(t, 120, resp.Usage.TotalTokens)
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, completionBody("FOLD"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "",
		WithLogger(log.New(io.Discard)),
		WithRetryBaseDelay(time.Millisecond))
	resp, err := c.Complete(context.Background(), &Request{Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "FOLD", resp.First().Content)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":{"message":"bad model"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", WithLogger(log.New(io.Discard)))
	_, err := c.Complete(context.Background(), &Request{Model: "nope"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "bad model", apiErr.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientGivesUpAfterRetryBudget(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "",
		WithLogger(log.New(io.Discard)),
		WithMaxRetries(2),
		WithRetryBaseDelay(time.Millisecond))
	_, err := c.Complete(context.Background(), &Request{Model: "m"})
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "gpt-4o", ShortName("openai/gpt-4o"))
	assert.Equal(t, "gpt-4o", ShortName("gpt-4o"))
	assert.Equal(t, "llama-3.1-70b-instruct", ShortName("meta-llama/llama-3.1-70b-instruct"))
}

func TestCostEstimate(t *testing.T) {
	usage := Usage{PromptTokens: 1_000_000, CompletionTokens: 1_000_000}

	assert.InDelta(t, 12.50, CostEstimate("openai/gpt-4o", usage), 1e-9)
	assert.InDelta(t, 18.00, CostEstimate("anthropic/claude-3-5-sonnet-20241022", usage), 1e-9)
	assert.Zero(t, CostEstimate("unknown/model", usage))
}
