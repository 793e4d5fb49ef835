package chat

import (
	"context"
	"errors"
	"io"

	"github.com/Vovarama1992/divinaci-bridge/internal/ai"
	"github.com/Vovarama1992/divinaci-bridge/internal/language"
)

// Request is one incoming chat request: its id and the caller-supplied history.
type Request struct {
	ID           string
	Conversation []ai.Message
}

// Service orchestrates a reply and writes it to out as it becomes available.
type Service interface {
	Reply(ctx context.Context, req Request, out io.Writer) error
}

// Path names the terminal state a request reached.
type Path string

const (
	PathStream Path = "stream"
	PathSync   Path = "sync"
	PathImage  Path = "image"
	PathFatal  Path = "fatal"
)

// Exchange is the journal record of one request. It carries pipeline
// outcomes only, never message text.
type Exchange struct {
	RequestID    string
	Language     language.Code
	Path         Path
	Confidence   string
	Reliability  *float64
	Violations   []string
	Retranslated bool
}

// Journal persists pipeline outcomes.
type Journal interface {
	Record(ctx context.Context, ex Exchange) error
}

var ErrUpstreamUnavailable = errors.New("completion service unavailable")
