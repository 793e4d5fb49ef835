package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/divinaci-bridge/internal/ai"
	"github.com/Vovarama1992/divinaci-bridge/internal/guard"
	"github.com/Vovarama1992/divinaci-bridge/internal/language"
)

func TestAssemble_Order(t *testing.T) {
	conv := []ai.Message{
		{Role: ai.RoleUser, Content: "Bonjour, comment vas-tu?"},
	}
	d := NewAssembler().Assemble("fr", conv)

	require.Len(t, d.Messages, 5)
	assert.Equal(t, ai.Message{Role: ai.RoleSystem, Content: Persona}, d.Messages[0])
	assert.Equal(t, ai.RoleSystem, d.Messages[1].Role)
	assert.Contains(t, d.Messages[1].Content, "exclusively in French (fr)")
	assert.Equal(t, ai.RoleUser, d.Messages[2].Role)
	assert.Equal(t, ai.RoleAssistant, d.Messages[3].Role)
	assert.Equal(t, conv[0], d.Messages[4])
	assert.Equal(t, language.Code("fr"), d.Code)
	assert.Equal(t, "French", d.Name)
}

func TestAssemble_NoFewShotForOtherLanguages(t *testing.T) {
	conv := []ai.Message{{Role: ai.RoleUser, Content: "Ciao"}}
	d := NewAssembler().Assemble("it", conv)

	require.Len(t, d.Messages, 3)
	assert.Contains(t, d.Messages[1].Content, "Italian")
}

func TestAssemble_UnknownCodeFallsBackToEnglishName(t *testing.T) {
	d := NewAssembler().Assemble("xx", nil)

	assert.Equal(t, language.Code("xx"), d.Code)
	assert.Equal(t, "English", d.Name)
	assert.Contains(t, d.Messages[1].Content, "exclusively in English (xx)")
}

func TestAssemble_EmptyConversation(t *testing.T) {
	d := NewAssembler().Assemble("en", nil)
	require.Len(t, d.Messages, 2)
	for _, m := range d.Messages {
		assert.Equal(t, ai.RoleSystem, m.Role)
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	conv := []ai.Message{{Role: ai.RoleUser, Content: "Hola"}}
	a := NewAssembler()
	assert.Equal(t, a.Assemble("es", conv), a.Assemble("es", conv))
}

func TestAssemble_DoesNotMutateConversation(t *testing.T) {
	conv := make([]ai.Message, 1, 8)
	conv[0] = ai.Message{Role: ai.RoleUser, Content: "hi"}
	_ = NewAssembler().Assemble("de", conv)

	assert.Len(t, conv, 1)
	assert.Equal(t, "hi", conv[0].Content)
}

func TestLanguageLock_Checklist(t *testing.T) {
	with := LanguageLock("Spanish", "es", true)
	without := LanguageLock("Spanish", "es", false)

	assert.Contains(t, with, "silently verify")
	assert.NotContains(t, without, "silently verify")
}

func TestHedge(t *testing.T) {
	assert.Equal(t, hedges["es"], Hedge("es"))
	assert.Equal(t, hedges["en"], Hedge("ja"))
}

func TestRefusal(t *testing.T) {
	assert.Equal(t, guard.RefusalMessage, Refusal("en"))
	assert.Equal(t, refusals["fr"], Refusal("fr"))
	assert.Equal(t, guard.RefusalMessage, Refusal("ja"))

	for code, text := range refusals {
		assert.True(t, guard.Default.Scan(text).IsClean, "refusal %s trips a guardrail", code)
		assert.Equal(t, code, language.Detect(text), "refusal %s is not in its own language", code)
	}
}
