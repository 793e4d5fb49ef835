package guard

import "regexp"

type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

var (
	uncertaintyRe = regexp.MustCompile(`(?i)\b(i'?m not sure|i am not sure|i think|maybe|perhaps|possibly|might be|i don'?t know|not certain|unclear|it seems)\b` +
		`|\b(je ne suis pas sûr|peut-être|quizás|tal vez|no estoy seguro|vielleicht|forse|talvez)`)

	technicalRe = regexp.MustCompile(`(?i)\b(specifically|precisely|by definition|structurally|in structure|step \d|therefore|consequently|formally|in summary)\b` +
		`|\b(précisément|par définition|donc|por lo tanto|precisamente|daher|genau|quindi|portanto)`)
)

// AssessConfidence classifies a reply. A user message that referenced
// protected terminology forces LOW unless the reply shows technical
// confidence.
func AssessConfidence(response string, mentionsProtected bool) Confidence {
	uncertain := uncertaintyRe.MatchString(response)
	technical := technicalRe.MatchString(response)

	switch {
	case mentionsProtected && !technical:
		return ConfidenceLow
	case uncertain && !technical:
		return ConfidenceLow
	case uncertain && technical:
		return ConfidenceMedium
	case technical:
		return ConfidenceHigh
	default:
		return ConfidenceMedium
	}
}
