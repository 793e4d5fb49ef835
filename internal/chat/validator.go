package chat

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Vovarama1992/divinaci-bridge/internal/ai"
	"github.com/Vovarama1992/divinaci-bridge/internal/guard"
	"github.com/Vovarama1992/divinaci-bridge/internal/language"
	"github.com/Vovarama1992/divinaci-bridge/internal/obfuscate"
	"github.com/Vovarama1992/divinaci-bridge/internal/prompt"
)

// Completer is the part of ai.AI the validator needs for re-translation.
type Completer interface {
	GetReply(ctx context.Context, history []ai.Message) (string, error)
}

// Validator runs the post-generation pipeline over a synchronous completion.
type Validator struct {
	ai       Completer
	guard    *guard.Guard
	obf      *obfuscate.Obfuscator
	timeout  time.Duration
	exponent float64
}

func NewValidator(c Completer, g *guard.Guard, obf *obfuscate.Obfuscator, timeout time.Duration, exponent float64) *Validator {
	return &Validator{ai: c, guard: g, obf: obf, timeout: timeout, exponent: exponent}
}

// Target is the language the reply must be in.
type Target struct {
	Code language.Code
	Name string
}

// Validation is the outcome of Validate.
type Validation struct {
	Text         string
	Verdict      guard.Verdict
	Detected     language.Code
	Retranslated bool
	Confidence   guard.Confidence
	Metrics      guard.Metrics
}

// Validate applies, in order: guardrail scan, marker stripping, language
// conformance (one corrective re-translation at most), confidence
// assessment and reliability scoring. It never fails; a failed or leaking
// re-translation keeps the mismatched text.
func (v *Validator) Validate(ctx context.Context, userMessage, response string, target Target, logger *zap.Logger) Validation {
	var res Validation

	res.Verdict = v.guard.Scan(response)
	text := response
	if !res.Verdict.IsClean {
		logger.Warn("[validate] guardrail violation", zap.Strings("violations", res.Verdict.Violations))
		text = guard.SanitizeWith(prompt.Refusal(target.Code), response, res.Verdict)
	}

	text = guard.StripMarkers(text)

	// A sanitized reply is already a fixed refusal and is not re-translated.
	res.Detected = language.Detect(text)
	if res.Verdict.IsClean && text != "" && res.Detected != target.Code {
		logger.Info("[validate] language mismatch",
			zap.String("target", string(target.Code)),
			zap.String("detected", string(res.Detected)),
		)
		if translated, ok := v.retranslate(ctx, text, target, logger); ok {
			text = translated
			res.Retranslated = true
		}
	}

	res.Confidence = guard.AssessConfidence(text, v.obf.Mentions(userMessage))
	res.Metrics = guard.Reliability(userMessage, text, v.exponent)

	if res.Confidence == guard.ConfidenceLow {
		text = prompt.Hedge(target.Code) + text
	}
	if res.Metrics.Low() {
		text = guard.LowReliabilityMarker + text
	}

	res.Text = text
	return res
}

func (v *Validator) retranslate(ctx context.Context, text string, target Target, logger *zap.Logger) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	out, err := v.ai.GetReply(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: prompt.Translation(target.Name, target.Code)},
		{Role: ai.RoleUser, Content: v.obf.Apply(text)},
	})
	if err != nil {
		retranslations.WithLabelValues("failed").Inc()
		upstreamFailures.WithLabelValues("retranslate").Inc()
		logger.Warn("[validate] re-translation failed, keeping original", zap.Error(err))
		return "", false
	}

	out = guard.StripMarkers(out)
	if strings.TrimSpace(out) == "" {
		retranslations.WithLabelValues("empty").Inc()
		return "", false
	}
	if verdict := v.guard.Scan(out); !verdict.IsClean {
		retranslations.WithLabelValues("rejected").Inc()
		countViolations(PathSync, verdict.Violations)
		logger.Warn("[validate] re-translation tripped a guardrail, keeping original",
			zap.Strings("violations", verdict.Violations))
		return "", false
	}
	retranslations.WithLabelValues("ok").Inc()
	return out, true
}
