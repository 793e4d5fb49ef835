package chat

import (
	"context"
	"encoding/json"
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Vovarama1992/divinaci-bridge/internal/ai"
	"github.com/Vovarama1992/divinaci-bridge/internal/prompt"
)

// An action verb followed closely by an image noun, in the supported languages.
var imageRequestRe = regexp.MustCompile(`(?i)\b(generate|create|draw|make|paint|render|design|génère|générer|crée|créer|dessine|dessiner|fais|genera|generar|crea|crear|dibuja|dibujar|haz|erstelle|erzeuge|zeichne|male|mach|disegna|fammi|gera|gerar|cria|criar|desenhe|desenha)\b.{0,40}?\b(images?|pictures?|illustrations?|drawings?|photos?|portraits?|imagen(es)?|dibujos?|bild(er)?|zeichnung(en)?|immagin[ei]|disegno|imagem|imagens|desenho|dessin)\b`)

func isImageRequest(text string) bool {
	return imageRequestRe.MatchString(text)
}

// richImage is the image block the display layer renders.
type richImage struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Prompt string `json:"prompt,omitempty"`
}

const (
	richOpen  = "```rich\n"
	richClose = "\n```"
)

func renderImageBlock(url, caption string) string {
	b, _ := json.Marshal(richImage{Type: "image", URL: url, Prompt: caption})
	return richOpen + string(b) + richClose
}

// imageFlow is best-effort: any failure returns false and the caller
// continues with the text flow. The raw latest message is used for the
// caption request, obfuscated like any other user text.
func (s *service) imageFlow(ctx context.Context, latest string, out io.Writer, logger *zap.Logger) bool {
	ctx, cancel := context.WithTimeout(ctx, s.opts.ImageTimeout)
	defer cancel()

	caption, err := s.ai.GetReply(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: prompt.ImageCaption},
		{Role: ai.RoleUser, Content: s.obf.Apply(latest)},
	})
	if err != nil {
		upstreamFailures.WithLabelValues("caption").Inc()
		logger.Warn("[image] caption failed, continuing with text", zap.Error(err))
		return false
	}

	caption = s.obf.Apply(strings.TrimSpace(caption))
	if caption == "" {
		logger.Warn("[image] empty caption, continuing with text")
		return false
	}

	url, err := s.ai.GenerateImage(ctx, caption)
	if err != nil {
		upstreamFailures.WithLabelValues("image").Inc()
		logger.Warn("[image] generation failed, continuing with text", zap.Error(err))
		return false
	}

	if _, err := io.WriteString(out, renderImageBlock(url, caption)); err != nil {
		logger.Warn("[image] write failed", zap.Error(err))
	}
	return true
}
