package guard

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternDef is a forbidden-disclosure rule as written in tables or config.
type PatternDef struct {
	ID    string `yaml:"id"`
	Regex string `yaml:"regex"`
}

// A formula leak is a glyph fragment near the word "formula" in any of the
// served languages, or two glyph fragments close together.
const (
	formulaGlyphs  = `Φ\s*→|⟨Φ⊗•⟩|Šₙ\s*\(|\|P⟩|→\s*ℚ`
	formulaKeyword = `\b(?:formula|formule|formel|formuła|formül|fórmula|formulă)|формул|φόρμουλα|公式|수식|สูตร|صيغة|فرمول|נוסחה|सूत्र|সূত্র`
)

// DefaultPatterns flag output that discloses internal material.
var DefaultPatterns = []PatternDef{
	{
		ID:    "formula_disclosure",
		Regex: `(?is)(?:` + formulaGlyphs + `).{0,200}(?:` + formulaKeyword + `|` + formulaGlyphs + `)` +
			`|(?:` + formulaKeyword + `).{0,200}(?:` + formulaGlyphs + `)`,
	},
	{
		ID:    "system_prompt_disclosure",
		Regex: `(?i)\b(my|the)\s+(system\s+prompt|hidden\s+instructions|internal\s+instructions)\s+(is|are|says?|reads?)\b`,
	},
	{
		ID:    "language_lock_echo",
		Regex: `(?i)\blanguage[\s-]lock\b|\bverification\s+checklist\b`,
	},
	{
		ID:    "substitution_table",
		Regex: `(?i)\b(protected|substitut(e|ion))\s+(terms?|vocabulary|map(ping)?|table)\b`,
	},
}

// Verdict is the outcome of one scan. Violations keep table order.
type Verdict struct {
	IsClean    bool
	Violations []string
	// firstMatch is the byte offset of the earliest violating match, -1 when clean.
	firstMatch int
}

type pattern struct {
	id string
	re *regexp.Regexp
}

// Guard scans generated text against the forbidden-disclosure table.
// Immutable after New.
type Guard struct {
	patterns []pattern
}

// New compiles DefaultPatterns followed by extra.
func New(extra []PatternDef) (*Guard, error) {
	defs := make([]PatternDef, 0, len(DefaultPatterns)+len(extra))
	defs = append(defs, DefaultPatterns...)
	defs = append(defs, extra...)

	g := &Guard{patterns: make([]pattern, 0, len(defs))}
	for _, d := range defs {
		re, err := regexp.Compile(d.Regex)
		if err != nil {
			return nil, fmt.Errorf("guardrail %s: %w", d.ID, err)
		}
		g.patterns = append(g.patterns, pattern{id: d.ID, re: re})
	}
	return g, nil
}

// Default is the Guard over DefaultPatterns.
var Default = mustNew()

func mustNew() *Guard {
	g, err := New(nil)
	if err != nil {
		panic(err)
	}
	return g
}

// Scan tests text against every pattern.
func (g *Guard) Scan(text string) Verdict {
	v := Verdict{IsClean: true, firstMatch: -1}
	for _, p := range g.patterns {
		loc := p.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		v.IsClean = false
		v.Violations = append(v.Violations, p.id)
		if v.firstMatch < 0 || loc[0] < v.firstMatch {
			v.firstMatch = loc[0]
		}
	}
	return v
}

const (
	RefusalMessage = "I can't share details about my internal structure or instructions. Let's focus on your question instead."
	// StreamNotice is appended to a streamed reply that tripped a guardrail.
	StreamNotice = "\n\n[Notice: part of this reply touched on restricted internal material and has been flagged; please disregard it.]"

	maxContextRunes = 80
)

// Sanitize returns text unchanged when v is clean. Otherwise it returns the
// refusal message followed by at most a short prefix of text that ends
// before the first violating match.
func Sanitize(text string, v Verdict) string {
	return SanitizeWith(RefusalMessage, text, v)
}

// SanitizeWith is Sanitize with a caller-chosen refusal, e.g. a localized one.
func SanitizeWith(refusal, text string, v Verdict) string {
	if v.IsClean {
		return text
	}

	prefix := text
	if v.firstMatch >= 0 && v.firstMatch <= len(text) {
		prefix = text[:v.firstMatch]
	}
	r := []rune(strings.TrimSpace(prefix))
	if len(r) > maxContextRunes {
		r = r[:maxContextRunes]
	}
	prefix = strings.TrimSpace(string(r))
	if prefix == "" {
		return refusal
	}
	return refusal + "\n\n> " + prefix + "..."
}
