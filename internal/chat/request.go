package chat

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/Vovarama1992/divinaci-bridge/internal/ai"
)

const (
	MaxMessageContentBytes = 32 * 1024
	MaxMessagesPerRequest  = 100
	maxBodyBytes           = 256 * 1024
)

var chatValidate *validator.Validate

func init() {
	chatValidate = validator.New()
	_ = chatValidate.RegisterValidation("maxbytes", validateMaxBytes)
}

func validateMaxBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxMessageContentBytes
}

// rawChatRequest keeps each field raw so one malformed field does not
// discard the others.
type rawChatRequest struct {
	Message  json.RawMessage `json:"message"`
	Prompt   json.RawMessage `json:"prompt"`
	Messages json.RawMessage `json:"messages"`
}

type conversationPayload struct {
	Messages []ai.Message `validate:"max=100,dive"`
}

// parseConversation turns a request body into the caller's conversation.
// A well-formed messages array wins; otherwise a single user message is
// built from message, then prompt. Malformed input yields an empty
// conversation, never an error.
func parseConversation(body []byte) []ai.Message {
	var raw rawChatRequest
	if err := json.Unmarshal(body, &raw); err != nil {
		return []ai.Message{}
	}

	if msgs, ok := parseMessages(raw.Messages); ok {
		return msgs
	}

	text := stringField(raw.Message)
	if text == nil {
		text = stringField(raw.Prompt)
	}
	if text == nil || *text == "" {
		return []ai.Message{}
	}
	return []ai.Message{{Role: ai.RoleUser, Content: *text}}
}

func parseMessages(raw json.RawMessage) ([]ai.Message, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, false
	}
	var msgs []ai.Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, false
	}
	if msgs == nil {
		msgs = []ai.Message{}
	}
	if err := chatValidate.Struct(conversationPayload{Messages: msgs}); err != nil {
		return nil, false
	}
	return msgs, true
}

// stringField returns nil for an absent, null or non-string field.
func stringField(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}
