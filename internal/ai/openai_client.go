package ai

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Vovarama1992/divinaci-bridge/internal/logging"
)

type OpenAIConfig struct {
	APIKey     string
	Model      string
	ImageModel string
	BaseURL    string
}

type OpenAIClient struct {
	client     *openai.Client
	model      string
	imageModel string
	logger     *zap.Logger
}

const temperature = 0.7

func NewOpenAIClient(cfg OpenAIConfig, logger *zap.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = openai.CreateImageModelDallE3
	}

	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	logger.Info("openai client initialized", zap.String("model", model), zap.String("image_model", imageModel))

	return &OpenAIClient{
		client:     openai.NewClientWithConfig(conf),
		model:      model,
		imageModel: imageModel,
		logger:     logger,
	}, nil
}

func (c *OpenAIClient) request(history []Message, stream bool) openai.ChatCompletionRequest {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: temperature,
		Stream:      stream,
	}
}

func (c *OpenAIClient) GetReply(ctx context.Context, history []Message) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, c.request(history, false))
	if err != nil {
		c.logger.Warn("[ai] completion failed", zap.Error(err))
		return "", fmt.Errorf("openai completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.logger.Warn("[ai] empty choices")
		return "", ErrEmptyCompletion
	}

	raw := resp.Choices[0].Message.Content
	c.logger.Debug("[ai] raw completion",
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
		zap.String("content", logging.Short(raw)),
	)
	return raw, nil
}

func (c *OpenAIClient) StreamReply(ctx context.Context, history []Message) (Stream, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, c.request(history, true))
	if err != nil {
		c.logger.Warn("[ai] stream open failed", zap.Error(err))
		return nil, fmt.Errorf("openai stream: %w", err)
	}
	return &openAIStream{stream: stream}, nil
}

type openAIStream struct {
	stream *openai.ChatCompletionStream
}

// Recv skips increments without content (role headers, finish markers).
func (s *openAIStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("openai stream recv: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if chunk := resp.Choices[0].Delta.Content; chunk != "" {
			return chunk, nil
		}
	}
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}

// GenerateImage returns the URL of one generated image.
func (c *OpenAIClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.imageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		c.logger.Warn("[ai] image generation failed", zap.Error(err))
		return "", fmt.Errorf("openai image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("openai image: empty result")
	}
	return resp.Data[0].URL, nil
}
