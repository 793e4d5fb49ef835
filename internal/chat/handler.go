package chat

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	missingCredentialBody = `{"error":"Missing OPENAI_API_KEY environment variable"}`
	failureBody           = "Failed to generate response"
	usageInfo             = "POST a JSON body with { message: string } or { messages: ChatMessage[] }"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

// NewHandler accepts a nil svc: the process still serves, and the chat
// endpoint reports the missing credential.
func NewHandler(svc Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// HandleChat serves POST /api/chat.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	w.Header().Set("X-Request-ID", reqID)
	logger := h.logger.With(zap.String("request_id", reqID))

	if h.svc == nil {
		requestsTotal.WithLabelValues(string(PathFatal)).Inc()
		logger.Error("[http] completion credential is not configured")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, missingCredentialBody)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		logger.Debug("[http] unreadable body, treating as empty", zap.Error(err))
		body = nil
	}
	conversation := parseConversation(body)

	out := &textStream{w: w}
	err = h.svc.Reply(r.Context(), Request{ID: reqID, Conversation: conversation}, out)
	if err != nil {
		if out.started {
			logger.Warn("[http] reply ended with error after headers were sent", zap.Error(err))
			return
		}
		logger.Error("[http] reply failed", zap.Error(err))
		http.Error(w, failureBody, http.StatusInternalServerError)
		return
	}

	if !out.started {
		out.commit()
	}
}

// HandleInfo describes the endpoint.
func (h *Handler) HandleInfo(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"info":   usageInfo,
	})
}

// textStream commits a 200 text/plain response on first write and flushes
// after every write so increments reach the client immediately.
type textStream struct {
	w       http.ResponseWriter
	started bool
}

func (s *textStream) commit() {
	h := s.w.Header()
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("Cache-Control", "no-cache")
	h.Set("X-Content-Type-Options", "nosniff")
	s.w.WriteHeader(http.StatusOK)
	s.started = true
}

func (s *textStream) Write(p []byte) (int, error) {
	if !s.started {
		s.commit()
	}
	n, err := s.w.Write(p)
	if err != nil {
		return n, err
	}
	_ = http.NewResponseController(s.w).Flush()
	return n, nil
}
