package language

import (
	"strings"
	"unicode"
)

// Detect classifies text into a catalog code. It never fails: empty or
// unclassifiable input yields Default.
func Detect(text string) Code {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return Default
	}

	for _, s := range scripts {
		if !s.re.MatchString(t) {
			continue
		}
		switch s.code {
		case "ru":
			return cyrillicVariant(t)
		case "ar":
			return arabicVariant(t)
		}
		return s.code
	}

	return detectLatin(t)
}

func cyrillicVariant(t string) Code {
	tokens := tokenize(t)
	uk := countIn(tokens, ukrainianWords) + len(ukrainianLetters.FindAllString(t, -1))
	ru := countIn(tokens, russianWords) + len(russianLetters.FindAllString(t, -1))
	if uk > ru {
		return "uk"
	}
	return "ru"
}

func arabicVariant(t string) Code {
	tokens := tokenize(t)
	fa := countIn(tokens, persianWords) + len(persianLetters.FindAllString(t, -1))
	ar := countIn(tokens, arabicWords) + len(arabicLetters.FindAllString(t, -1))
	if fa > ar {
		return "fa"
	}
	return "ar"
}

// Scores returns the Latin-script score per language. Exposed for tests and
// debug logging.
func Scores(text string) map[Code]int {
	t := strings.ToLower(text)
	tokens := tokenize(t)
	out := make(map[Code]int, len(latin))
	for _, rule := range latin {
		score := countIn(tokens, rule.words)
		if rule.bonus != nil && rule.bonus.MatchString(t) {
			score++
		}
		out[rule.code] = score
	}
	return out
}

func detectLatin(t string) Code {
	scores := Scores(t)

	best, bestScore, tie := Default, 0, false
	for _, rule := range latin {
		s := scores[rule.code]
		switch {
		case s > bestScore:
			best, bestScore, tie = rule.code, s, false
		case s == bestScore && s > 0:
			tie = true
		}
	}

	if tie || bestScore < minLatinScore {
		return Default
	}
	return best
}

// tokenize splits on anything that is not a letter.
func tokenize(t string) []string {
	return strings.FieldsFunc(t, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

func countIn(tokens []string, set map[string]struct{}) int {
	n := 0
	for _, tok := range tokens {
		if _, ok := set[tok]; ok {
			n++
		}
	}
	return n
}
