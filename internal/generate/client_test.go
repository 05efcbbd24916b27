// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mshore/blogforge/pkg/types"
)

// completionServer is an httptest stand-in for the chat completions
// endpoint, returning the given content for every request.
func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v, want a single user message", req.Messages)
		}

		fmt.Fprintf(w, `{
  "id": "cmpl-test",
  "object": "chat.completion",
  "model": %q,
  "choices": [
    {"index": 0, "message": {"role": "assistant", "content": %q}, "finish_reason": "stop"}
  ]
}`, req.Model, content)
	}))
}

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(types.GenerateConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second},
		APIKey:     "test-key",
		Model:      "gpt-4o-mini",
		BaseURL:    baseURL,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestCompleteSuccess(t *testing.T) {
	server := completionServer(t, "  TITLE: Hello\nBODY:\nText  ")
	defer server.Close()

	c := testClient(t, server.URL+"/v1")
	got, err := c.Complete(context.Background(), "write something", "")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != "TITLE: Hello\nBODY:\nText" {
		t.Errorf("content = %q, want trimmed completion", got)
	}
}

func TestCompleteEmptyContent(t *testing.T) {
	server := completionServer(t, "   ")
	defer server.Close()

	c := testClient(t, server.URL+"/v1")
	_, err := c.Complete(context.Background(), "write something", "")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
}

func TestCompleteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": {"message": "overloaded", "type": "server_error"}}`)
	}))
	defer server.Close()

	c := testClient(t, server.URL+"/v1")
	_, err := c.Complete(context.Background(), "write something", "")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
	if genErr.Unwrap() == nil {
		t.Error("transport-level failure should wrap the underlying error")
	}
}

func TestCompleteModelOverride(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model
		fmt.Fprint(w, `{"choices": [{"index": 0, "message": {"role": "assistant", "content": "ok"}, "finish_reason": "stop"}]}`)
	}))
	defer server.Close()

	c := testClient(t, server.URL+"/v1")
	if _, err := c.Complete(context.Background(), "p", "gpt-4o"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if gotModel != "gpt-4o" {
		t.Errorf("model = %q, want override", gotModel)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(types.GenerateConfig{Model: "gpt-4o-mini"}, zap.NewNop())
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
}
