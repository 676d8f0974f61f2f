package domain

import (
	"context"
	"errors"
	"fmt"
)

// Completer abstracts the chat-completion provider.
type Completer interface {
	// Complete sends the assembled conversation and returns the model's
	// reply text. An empty reply with a nil error means the provider
	// answered but produced no text.
	Complete(ctx context.Context, turns []ChatMessage) (string, error)
}

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	SystemRole    Role = "system"
	UserRole      Role = "user"
	AssistantRole Role = "assistant"
)

// ErrNoInput is returned when a request carries neither a history nor a
// message to respond to.
var ErrNoInput = errors.New("no input provided")

// UpstreamError carries the status and raw body of a failed completion call.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion api returned status %d: %s", e.StatusCode, e.Body)
}
