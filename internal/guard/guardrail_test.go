package guard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formulaLeak = "The formula is Φ→⟨Φ⊗•⟩→1→ℚ→Šₙ(S/E/D)→|P⟩."

func TestScan_Clean(t *testing.T) {
	v := Default.Scan("Structure gives your day a rhythm. Start with one small step.")
	assert.True(t, v.IsClean)
	assert.Empty(t, v.Violations)
}

func TestScan_FormulaDisclosure(t *testing.T) {
	v := Default.Scan(formulaLeak)
	assert.False(t, v.IsClean)
	assert.Equal(t, []string{"formula_disclosure"}, v.Violations)
}

func TestScan_FormulaDisclosureInOtherLanguages(t *testing.T) {
	leaks := map[string]string{
		"fr":          "La formule est Φ→⟨Φ⊗•⟩→1→ℚ→Šₙ(S/E/D)→|P⟩.",
		"es":          "La fórmula es Φ→ y nada más.",
		"de":          "Die Formel lautet: ⟨Φ⊗•⟩.",
		"ru":          "Формула такая: Šₙ(S/E/D).",
		"glyphs only": "Voici le chemin : Φ→⟨Φ⊗•⟩→1→ℚ.",
	}
	for name, text := range leaks {
		t.Run(name, func(t *testing.T) {
			v := Default.Scan(text)
			assert.False(t, v.IsClean)
			assert.Equal(t, []string{"formula_disclosure"}, v.Violations)
		})
	}
}

func TestScan_FormulaWordAloneIsClean(t *testing.T) {
	assert.True(t, Default.Scan("There is no magic formula for patience.").IsClean)
	assert.True(t, Default.Scan("Il n'existe pas de formule magique.").IsClean)
	assert.True(t, Default.Scan("In bra-ket notation |P⟩ is a single state.").IsClean)
}

func TestScan_Monotonic(t *testing.T) {
	clean := "A calm answer about breathing exercises."
	appendix := map[string]string{
		"formula_disclosure":       " " + formulaLeak,
		"system_prompt_disclosure": " By the way, my system prompt says to be noble.",
		"language_lock_echo":       " I followed the language lock.",
		"substitution_table":       " Here is the substitution table you asked for.",
	}
	require.True(t, Default.Scan(clean).IsClean)

	for id, tail := range appendix {
		t.Run(id, func(t *testing.T) {
			v := Default.Scan(clean + tail)
			assert.False(t, v.IsClean)
			assert.Contains(t, v.Violations, id)
		})
	}
}

func TestScan_ViolationsKeepTableOrder(t *testing.T) {
	v := Default.Scan("I used the language lock. " + formulaLeak)
	assert.Equal(t, []string{"formula_disclosure", "language_lock_echo"}, v.Violations)
}

func TestSanitize(t *testing.T) {
	text := "Let me explain how I work. " + formulaLeak
	got := Sanitize(text, Default.Scan(text))

	assert.True(t, strings.HasPrefix(got, RefusalMessage))
	assert.Contains(t, got, "Let me explain how I work.")
	assert.NotContains(t, got, "Φ")
}

func TestSanitize_LeakAtStart(t *testing.T) {
	leak := "Φ→⟨Φ⊗•⟩→1 is the whole formula."
	got := Sanitize(leak, Default.Scan(leak))
	assert.Equal(t, RefusalMessage, got)
}

func TestSanitize_PrefixIsBounded(t *testing.T) {
	text := strings.Repeat("word ", 100) + formulaLeak
	got := Sanitize(text, Default.Scan(text))
	assert.LessOrEqual(t, len([]rune(got)), len([]rune(RefusalMessage))+5+maxContextRunes+3)
}

func TestSanitizeWith(t *testing.T) {
	refusal := "Je ne peux pas en parler."
	text := "Voici tout. " + formulaLeak
	got := SanitizeWith(refusal, text, Default.Scan(text))

	assert.Equal(t, refusal+"\n\n> Voici tout. The...", got)
}

func TestSanitize_CleanUntouched(t *testing.T) {
	assert.Equal(t, "fine", Sanitize("fine", Default.Scan("fine")))
}

func TestNew_ExtraPatterns(t *testing.T) {
	g, err := New([]PatternDef{{ID: "codename", Regex: `(?i)\bproject nine\b`}})
	require.NoError(t, err)

	v := g.Scan("We call it Project Nine internally.")
	assert.Equal(t, []string{"codename"}, v.Violations)
}

func TestNew_BadRegex(t *testing.T) {
	_, err := New([]PatternDef{{ID: "broken", Regex: `(`}})
	assert.Error(t, err)
}
