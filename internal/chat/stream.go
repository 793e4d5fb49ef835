package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/Vovarama1992/divinaci-bridge/internal/ai"
	"github.com/Vovarama1992/divinaci-bridge/internal/guard"
)

// streamReply forwards increments to out as they arrive. delivered is false
// only when nothing reached out, so the caller may still fall back. Once a
// chunk is written the reply cannot be retracted; a guardrail hit only
// appends guard.StreamNotice.
func (s *service) streamReply(ctx context.Context, msgs []ai.Message, out io.Writer, logger *zap.Logger) (delivered bool, violations []string, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.StreamTimeout)
	defer cancel()

	stream, err := s.ai.StreamReply(ctx, msgs)
	if err != nil {
		upstreamFailures.WithLabelValues("stream_open").Inc()
		return false, nil, err
	}
	defer stream.Close()

	var acc strings.Builder
	wrote := false
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			upstreamFailures.WithLabelValues("stream_read").Inc()
			if !wrote {
				return false, nil, err
			}
			logger.Warn("[stream] interrupted after first chunk", zap.Error(err), zap.Int("bytes", acc.Len()))
			break
		}

		acc.WriteString(chunk)
		if _, err := io.WriteString(out, chunk); err != nil {
			return true, nil, fmt.Errorf("write chunk: %w", err)
		}
		wrote = true
	}

	verdict := s.guard.Scan(acc.String())
	if !verdict.IsClean {
		logger.Warn("[stream] guardrail violation after delivery", zap.Strings("violations", verdict.Violations))
		countViolations(PathStream, verdict.Violations)
		if _, err := io.WriteString(out, guard.StreamNotice); err != nil {
			return true, verdict.Violations, fmt.Errorf("write notice: %w", err)
		}
	}
	return true, verdict.Violations, nil
}
