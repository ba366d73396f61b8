// Package llm provides thin clients for chat-completion APIs.
// Providers are non-streaming: callers get the full completion text back.
package llm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// readAPIError drains an error response into a bounded diagnostic string.
func readAPIError(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return strings.TrimSpace(string(body))
}

// splitSystem separates system messages from the conversation, for APIs
// that take the system prompt as a top-level field.
func splitSystem(messages []Message) (system string, rest []Message) {
	var parts []string
	for _, msg := range messages {
		if msg.Role == "system" {
			parts = append(parts, msg.Content)
			continue
		}
		rest = append(rest, msg)
	}
	return strings.Join(parts, "\n\n"), rest
}

func statusError(provider string, resp *http.Response) error {
	return fmt.Errorf("%s: unexpected status %s: %s", provider, resp.Status, readAPIError(resp))
}
