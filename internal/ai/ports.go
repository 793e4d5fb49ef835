package ai

import (
	"context"
	"errors"
)

// AI is the completion service: sync replies, streamed replies and images.
// It knows nothing about HTTP.
type AI interface {
	GetReply(ctx context.Context, history []Message) (string, error)
	StreamReply(ctx context.Context, history []Message) (Stream, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Stream yields reply increments. Recv returns io.EOF once the reply is complete.
type Stream interface {
	Recv() (string, error)
	Close() error
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversation entry as sent to the completion service.
type Message struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"maxbytes"`
}

var (
	ErrMissingAPIKey   = errors.New("OPENAI_API_KEY not set")
	ErrEmptyCompletion = errors.New("completion returned no choices")
)
