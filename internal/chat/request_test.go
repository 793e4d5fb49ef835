package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/divinaci-bridge/internal/ai"
)

func TestParseConversation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want []ai.Message
	}{
		{"empty object", `{}`, []ai.Message{}},
		{"malformed json", `{"message": `, []ai.Message{}},
		{"not an object", `"hello"`, []ai.Message{}},
		{"message", `{"message":"hi"}`, []ai.Message{{Role: "user", Content: "hi"}}},
		{"prompt", `{"prompt":"draw"}`, []ai.Message{{Role: "user", Content: "draw"}}},
		{"message wins over prompt", `{"message":"a","prompt":"b"}`, []ai.Message{{Role: "user", Content: "a"}}},
		{"null message falls to prompt", `{"message":null,"prompt":"b"}`, []ai.Message{{Role: "user", Content: "b"}}},
		{"empty message", `{"message":""}`, []ai.Message{}},
		{
			"messages win",
			`{"message":"ignored","messages":[{"role":"user","content":"one"},{"role":"assistant","content":"two"}]}`,
			[]ai.Message{{Role: "user", Content: "one"}, {Role: "assistant", Content: "two"}},
		},
		{"empty messages array", `{"message":"x","messages":[]}`, []ai.Message{}},
		{"bad role falls back", `{"message":"x","messages":[{"role":"robot","content":"one"}]}`, []ai.Message{{Role: "user", Content: "x"}}},
		{"wrong messages type falls back", `{"prompt":"x","messages":"nope"}`, []ai.Message{{Role: "user", Content: "x"}}},
		{"non-string message", `{"message":42}`, []ai.Message{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseConversation([]byte(tc.body)))
		})
	}
}

func TestParseConversation_Limits(t *testing.T) {
	big := strings.Repeat("a", MaxMessageContentBytes+1)
	body := `{"message":"fallback","messages":[{"role":"user","content":"` + big + `"}]}`
	assert.Equal(t, []ai.Message{{Role: "user", Content: "fallback"}}, parseConversation([]byte(body)))

	var sb strings.Builder
	sb.WriteString(`{"messages":[`)
	for i := 0; i <= MaxMessagesPerRequest; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"role":"user","content":"x"}`)
	}
	sb.WriteString(`]}`)
	assert.Empty(t, parseConversation([]byte(sb.String())))
}

func TestParseConversation_Nil(t *testing.T) {
	got := parseConversation(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}
