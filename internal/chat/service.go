package chat

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/Vovarama1992/divinaci-bridge/internal/ai"
	"github.com/Vovarama1992/divinaci-bridge/internal/guard"
	"github.com/Vovarama1992/divinaci-bridge/internal/language"
	"github.com/Vovarama1992/divinaci-bridge/internal/logging"
	"github.com/Vovarama1992/divinaci-bridge/internal/obfuscate"
	"github.com/Vovarama1992/divinaci-bridge/internal/prompt"
)

type Options struct {
	UpstreamTimeout     time.Duration
	StreamTimeout       time.Duration
	ImageTimeout        time.Duration
	ReliabilityExponent float64
}

func (o Options) withDefaults() Options {
	if o.UpstreamTimeout <= 0 {
		o.UpstreamTimeout = 30 * time.Second
	}
	if o.StreamTimeout <= 0 {
		o.StreamTimeout = 120 * time.Second
	}
	if o.ImageTimeout <= 0 {
		o.ImageTimeout = 60 * time.Second
	}
	if o.ReliabilityExponent <= 0 {
		o.ReliabilityExponent = 2
	}
	return o
}

type service struct {
	ai        ai.AI
	assembler *prompt.Assembler
	obf       *obfuscate.Obfuscator
	guard     *guard.Guard
	validator *Validator
	journal   Journal
	opts      Options
	logger    *zap.Logger
}

func NewService(
	aiClient ai.AI,
	g *guard.Guard,
	obf *obfuscate.Obfuscator,
	journal Journal,
	opts Options,
	logger *zap.Logger,
) Service {
	opts = opts.withDefaults()
	if journal == nil {
		journal = NoopJournal{}
	}
	return &service{
		ai:        aiClient,
		assembler: prompt.NewAssembler(),
		obf:       obf,
		guard:     g,
		validator: NewValidator(aiClient, g, obf, opts.UpstreamTimeout, opts.ReliabilityExponent),
		journal:   journal,
		opts:      opts,
		logger:    logger,
	}
}

func (s *service) Reply(ctx context.Context, req Request, out io.Writer) error {
	logger := s.logger.With(zap.String("request_id", req.ID))

	latest := latestUserText(req.Conversation)
	code := language.Detect(latest)
	d := s.assembler.Assemble(code, req.Conversation)
	msgs := s.obfuscateUserMessages(d.Messages)

	logger.Info("[svc] new message",
		zap.String("language", string(code)),
		zap.Int("history", len(req.Conversation)),
	)
	logger.Debug("[svc] latest user text", zap.String("text", logging.Short(latest)))

	ex := Exchange{RequestID: req.ID, Language: code}
	defer func() { s.record(ctx, ex, logger) }()

	if isImageRequest(latest) {
		if s.imageFlow(ctx, latest, out, logger) {
			ex.Path = PathImage
			requestsTotal.WithLabelValues(string(PathImage)).Inc()
			return nil
		}
	}

	delivered, violations, err := s.streamReply(ctx, msgs, out, logger)
	if delivered {
		ex.Path = PathStream
		ex.Violations = violations
		requestsTotal.WithLabelValues(string(PathStream)).Inc()
		return err
	}
	logger.Warn("[svc] stream failed, falling back to sync", zap.Error(err))

	if ctx.Err() != nil {
		ex.Path = PathFatal
		requestsTotal.WithLabelValues(string(PathFatal)).Inc()
		return ctx.Err()
	}

	raw, err := s.syncReply(ctx, msgs)
	if err != nil {
		upstreamFailures.WithLabelValues("sync").Inc()
		ex.Path = PathFatal
		requestsTotal.WithLabelValues(string(PathFatal)).Inc()
		logger.Error("[svc] sync fallback failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	res := s.validator.Validate(ctx, latest, raw, Target{Code: d.Code, Name: d.Name}, logger)

	ex.Path = PathSync
	ex.Violations = res.Verdict.Violations
	ex.Confidence = string(res.Confidence)
	ex.Retranslated = res.Retranslated
	v := res.Metrics.V
	ex.Reliability = &v

	requestsTotal.WithLabelValues(string(PathSync)).Inc()
	countViolations(PathSync, res.Verdict.Violations)
	confidenceTotal.WithLabelValues(string(res.Confidence)).Inc()
	reliabilityScore.Observe(res.Metrics.V)

	logger.Info("[svc] validated reply",
		zap.String("confidence", string(res.Confidence)),
		zap.Float64("phi", res.Metrics.Phi),
		zap.Float64("s", res.Metrics.S),
		zap.Float64("h", res.Metrics.H),
		zap.Float64("v", res.Metrics.V),
		zap.Bool("retranslated", res.Retranslated),
	)

	if _, err := io.WriteString(out, res.Text); err != nil {
		return fmt.Errorf("write reply: %w", err)
	}
	return nil
}

func (s *service) syncReply(ctx context.Context, msgs []ai.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.UpstreamTimeout)
	defer cancel()
	return s.ai.GetReply(ctx, msgs)
}

// obfuscateUserMessages returns a copy of msgs with user content obfuscated.
// System and assistant messages pass through untouched.
func (s *service) obfuscateUserMessages(msgs []ai.Message) []ai.Message {
	out := make([]ai.Message, len(msgs))
	for i, m := range msgs {
		if m.Role == ai.RoleUser {
			m.Content = s.obf.Apply(m.Content)
		}
		out[i] = m
	}
	return out
}

func (s *service) record(ctx context.Context, ex Exchange, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := s.journal.Record(ctx, ex); err != nil {
		logger.Warn("[svc] journal write failed", zap.Error(err))
	}
}

func latestUserText(conv []ai.Message) string {
	for i := len(conv) - 1; i >= 0; i-- {
		if conv[i].Role == ai.RoleUser {
			return conv[i].Content
		}
	}
	return ""
}
