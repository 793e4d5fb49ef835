package obfuscate

import (
	"fmt"
	"regexp"
	"strings"
)

// Term maps a protected word or phrase to its neutral substitute.
type Term struct {
	Term       string `yaml:"term"`
	Substitute string `yaml:"substitute"`
}

// DefaultTerms is the built-in protected vocabulary. Longer terms come first
// so a term containing another one is replaced whole. Substitutes carry no
// article; the surrounding text already has one.
var DefaultTerms = []Term{
	{Term: "Usuldivinaci", Substitute: "structured framework"},
	{Term: "Divinaci", Substitute: "guide"},
	{Term: "Kinetic Being", Substitute: "companion"},
	{Term: "Moussafir", Substitute: "traveler"},
	{Term: "Φ⊗•", Substitute: "combined state"},
	{Term: "Šₙ", Substitute: "stage sequence"},
}

type rule struct {
	term       string
	re         *regexp.Regexp
	substitute string
}

// Obfuscator replaces protected vocabulary before text leaves the process.
// It is immutable after New and safe for concurrent use.
type Obfuscator struct {
	rules []rule
	any   *regexp.Regexp
}

// New builds an Obfuscator from DefaultTerms followed by extra. It rejects a
// substitute that contains any protected term, since the transform must stay
// idempotent.
func New(extra []Term) (*Obfuscator, error) {
	terms := make([]Term, 0, len(DefaultTerms)+len(extra))
	terms = append(terms, DefaultTerms...)
	terms = append(terms, extra...)

	o := &Obfuscator{rules: make([]rule, 0, len(terms))}
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		if strings.TrimSpace(t.Term) == "" {
			return nil, fmt.Errorf("protected term with substitute %q is empty", t.Substitute)
		}
		q := regexp.QuoteMeta(t.Term)
		quoted = append(quoted, q)
		o.rules = append(o.rules, rule{
			term:       t.Term,
			re:         regexp.MustCompile("(?i)" + q),
			substitute: t.Substitute,
		})
	}

	for _, r := range o.rules {
		for _, other := range o.rules {
			if other.re.MatchString(r.substitute) {
				return nil, fmt.Errorf("substitute %q for %q contains protected term %q", r.substitute, r.term, other.term)
			}
		}
	}

	o.any = regexp.MustCompile("(?i)" + strings.Join(quoted, "|"))
	return o, nil
}

// Default is the Obfuscator over DefaultTerms.
var Default = mustNew()

func mustNew() *Obfuscator {
	o, err := New(nil)
	if err != nil {
		panic(err)
	}
	return o
}

// Apply substitutes every protected term, in table order, case-insensitively.
func (o *Obfuscator) Apply(text string) string {
	if text == "" {
		return ""
	}
	for _, r := range o.rules {
		text = r.re.ReplaceAllLiteralString(text, r.substitute)
	}
	return text
}

// Mentions reports whether text references any protected term.
func (o *Obfuscator) Mentions(text string) bool {
	return o.any.MatchString(text)
}
