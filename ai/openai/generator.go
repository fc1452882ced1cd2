package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/studium-labs/studium/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
type Generator struct {
	model  llms.Model
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		model:  client,
		logger: slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new chat generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// GenerateContent produces a complete reply for the request.
func (g *Generator) GenerateContent(ctx context.Context, req *ai.GenerateRequest) (string, error) {
	messages := buildMessages(req)

	g.logger.Debug("generating completion", "messages", len(messages))

	resp, err := g.model.GenerateContent(ctx, messages)
	if err != nil {
		g.logger.Error("completion failed", "err", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}

	return resp.Choices[0].Content, nil
}

// StreamContent produces a reply incrementally, invoking onChunk for each
// fragment. The accumulated reply is returned once the stream ends.
func (g *Generator) StreamContent(ctx context.Context, req *ai.GenerateRequest, onChunk func(ctx context.Context, chunk []byte) error) (string, error) {
	messages := buildMessages(req)

	g.logger.Debug("generating streamed completion", "messages", len(messages))

	var accumulated strings.Builder
	_, err := g.model.GenerateContent(ctx, messages,
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			accumulated.Write(chunk)
			if onChunk != nil {
				return onChunk(ctx, chunk)
			}
			return nil
		}),
	)
	if err != nil {
		g.logger.Error("streamed completion failed", "err", err)
		return "", err
	}

	return accumulated.String(), nil
}

// buildMessages converts a GenerateRequest into langchaingo chat messages:
// system prompt first, then history in order, then the new user message.
func buildMessages(req *ai.GenerateRequest) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(req.History)+2)

	if req.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}

	for _, turn := range req.History {
		msgType := llms.ChatMessageTypeHuman
		if turn.Role == ai.RoleAssistant {
			msgType = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(msgType, turn.Content))
	}

	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, req.Message))
	return messages
}
