package guard

import (
	"math"
	"regexp"
	"strings"
)

// Metrics is the reliability breakdown of one reply.
//
//	Phi: intent clarity of the user message, in [0.3, 1.0]
//	S:   structural grounding of the reply, in [0.3, 1.0]
//	H:   hallucination coefficient of the reply, in [0.1, 1.0]
//	V:   (Phi*S)/H^n, unbounded above
type Metrics struct {
	Phi float64
	S   float64
	H   float64
	V   float64
}

const (
	ReliabilityThreshold = 0.5
	LowReliabilityMarker = "[⚠ V<0.5] "

	minPhi, maxPhi = 0.3, 1.0
	minS, maxS     = 0.3, 1.0
	minH, maxH     = 0.1, 1.0

	minReasonableWords = 3
	maxReasonableWords = 60
)

var (
	commandVerbRe = regexp.MustCompile(`(?i)\b(what|how|why|when|where|which|who|explain|describe|show|tell|list|compare|define|give|help` +
		`|quoi|comment|pourquoi|explique|décris|qué|cómo|por qué|explica|describe|was|wie|warum|erkläre|cosa|come|perché|spiega|o que|como|porque|explique)\b`)

	// alignment vocabulary, each distinct hit raises S.
	groundingTerms = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bstructur\w*`),
		regexp.MustCompile(`(?i)\balign\w*`),
		regexp.MustCompile(`(?i)\bground\w*`),
		regexp.MustCompile(`(?i)\bprincipl\w*`),
		regexp.MustCompile(`(?i)\bfoundation\w*`),
		regexp.MustCompile(`(?i)\bcoheren\w*`),
		regexp.MustCompile(`(?i)\bbalance\w*`),
		regexp.MustCompile(`(?i)\b(because|therefore|parce que|porque|weil|perché)\b`),
		regexp.MustCompile(`(?i)\b(step|étape|paso|schritt|passo)\b`),
	}

	hallucinationRe = regexp.MustCompile(`(?i)\b(as everyone knows|studies show|scientists agree|it is a (proven )?fact that|undeniably|guaranteed|definitely|without any doubt|always|never)\b|100\s?%`)
)

// Reliability computes the metrics for a (user message, reply) pair with
// exponent n. It is a pure function.
func Reliability(userMessage, response string, n float64) Metrics {
	m := Metrics{
		Phi: intentClarity(userMessage),
		S:   structureGrounding(response),
		H:   hallucinationCoefficient(response),
	}
	m.V = (m.Phi * m.S) / math.Pow(m.H, n)
	return m
}

// Low reports whether V falls below ReliabilityThreshold.
func (m Metrics) Low() bool {
	return m.V < ReliabilityThreshold
}

func intentClarity(msg string) float64 {
	phi := minPhi
	if strings.Contains(msg, "?") || strings.Contains(msg, "¿") {
		phi += 0.25
	}
	if commandVerbRe.MatchString(msg) {
		phi += 0.25
	}
	words := len(strings.Fields(msg))
	if words >= minReasonableWords && words <= maxReasonableWords {
		phi += 0.2
	}
	return clamp(phi, minPhi, maxPhi)
}

func structureGrounding(resp string) float64 {
	s := minS
	for _, re := range groundingTerms {
		if re.MatchString(resp) {
			s += 0.15
		}
	}
	return clamp(s, minS, maxS)
}

func hallucinationCoefficient(resp string) float64 {
	hits := len(hallucinationRe.FindAllStringIndex(resp, -1))
	return clamp(minH+0.15*float64(hits), minH, maxH)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
