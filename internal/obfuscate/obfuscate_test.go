package obfuscate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	got := Default.Apply("Tell me about the USULDIVINACI and how the divinaci guides a Moussafir.")
	assert.Equal(t, "Tell me about the structured framework and how the guide guides a traveler.", got)
}

func TestApply_Empty(t *testing.T) {
	assert.Equal(t, "", Default.Apply(""))
}

func TestApply_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text with nothing protected",
		"Usuldivinaci",
		"the Kinetic Being walks with the moussafir",
		"DivinaciDivinaci usuldivinaci kinetic being",
		"state Φ⊗• then Šₙ",
		"Привет, Divinaci!",
	}
	for _, in := range inputs {
		once := Default.Apply(in)
		assert.Equal(t, once, Default.Apply(once), "input %q", in)
		assert.False(t, Default.Mentions(once), "input %q still mentions a protected term", in)
	}
}

func TestApply_KeepsArticleSingle(t *testing.T) {
	assert.Equal(t, "The traveler and the companion rest.", Default.Apply("The Moussafir and the Kinetic Being rest."))
	assert.NotContains(t, Default.Apply("Where is the Divinaci? Ask the Moussafir."), "the the")
}

func TestMentions(t *testing.T) {
	assert.True(t, Default.Mentions("what is the moussafir?"))
	assert.False(t, Default.Mentions("what is a traveler?"))
}

func TestNew_Extra(t *testing.T) {
	o, err := New([]Term{{Term: "Project Nine", Substitute: "the project"}})
	require.NoError(t, err)
	assert.Equal(t, "about the project", o.Apply("about project nine"))
}

func TestNew_RejectsReintroducingSubstitute(t *testing.T) {
	_, err := New([]Term{{Term: "codex", Substitute: "the Divinaci codex"}})
	assert.Error(t, err)
}

func TestNew_RejectsEmptyTerm(t *testing.T) {
	_, err := New([]Term{{Term: " ", Substitute: "x"}})
	assert.Error(t, err)
}
