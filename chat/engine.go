// Copyright 2026 Studium Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/studium-labs/studium/ai"
	"github.com/studium-labs/studium/core"
	"github.com/studium-labs/studium/search"
	"github.com/studium-labs/studium/storage"
)

// DefaultQuizQuestions is the number of questions produced per quiz.
const DefaultQuizQuestions = 10

// Engine answers chat turns: it assembles the scoped generation request,
// streams the model's answer to the caller, and persists both turns once
// the stream has been fully consumed.
//
// Generation and persistence are deliberately separate steps: the stream
// accumulator has no side effects, and nothing is persisted when the
// model call fails.
type Engine struct {
	assembler *Assembler
	retriever *search.Retriever
	turns     storage.TurnRepository
	generator ai.Generator
	questions int
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine) error

// WithQuizQuestions sets the number of questions per generated quiz.
// Values below 1 fall back to the default.
func WithQuizQuestions(n int) EngineOption {
	return func(e *Engine) error {
		if n < 1 {
			n = DefaultQuizQuestions
		}
		e.questions = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a chat engine.
func NewEngine(
	documents storage.DocumentRepository,
	turns storage.TurnRepository,
	retriever *search.Retriever,
	provider ai.Provider,
	opts ...EngineOption,
) (*Engine, error) {
	if turns == nil {
		return nil, ErrTurnRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	assembler, err := NewAssembler(documents, turns, retriever)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		assembler: assembler,
		retriever: retriever,
		turns:     turns,
		generator: provider.Generator(),
		questions: DefaultQuizQuestions,
		logger:    slog.Default().With("component", "chat"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Answer streams the model's reply to message, forwarding each increment
// to onChunk, and persists the user turn followed by the bot turn only
// after the stream completes. The returned turn is the persisted bot
// turn holding the trimmed full answer.
//
// If the model call fails, or onChunk aborts the stream, neither turn is
// persisted and the error is returned.
func (e *Engine) Answer(ctx context.Context, conversationId core.ID, message string, onChunk func(ctx context.Context, chunk []byte) error) (*core.Turn, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	req, err := e.assembler.BuildRequest(ctx, conversationId, message)
	if err != nil {
		return nil, err
	}

	userTimestamp := time.Now().UTC()

	answer, err := e.generator.StreamContent(ctx, req, onChunk)
	if err != nil {
		e.logger.Error("answer stream failed", "conversation", conversationId, "err", err)
		return nil, err
	}

	// Turns within a conversation are ordered by timestamp; the bot turn
	// must sort strictly after the user turn even at coarse clock
	// resolution.
	botTimestamp := time.Now().UTC()
	if !botTimestamp.After(userTimestamp) {
		botTimestamp = userTimestamp.Add(time.Microsecond)
	}

	persisted, err := e.turns.AddTurns(ctx,
		&core.Turn{
			ConversationId: conversationId,
			Speaker:        core.SpeakerHuman,
			Contents:       message,
			Timestamp:      userTimestamp,
		},
		&core.Turn{
			ConversationId: conversationId,
			Speaker:        core.SpeakerAI,
			Contents:       strings.TrimSpace(answer),
			Timestamp:      botTimestamp,
		},
	)
	if err != nil {
		return nil, err
	}

	e.logger.Info("turn answered", "conversation", conversationId, "answer_chars", len(answer))
	return persisted[1], nil
}

// GenerateQuiz retrieves context for each keyword, in keyword order, and
// asks the model for multiple-choice questions grounded in it. The raw
// model output (expected JSON) is returned; no turns are persisted.
func (e *Engine) GenerateQuiz(ctx context.Context, conversationId core.ID, keywords []string) (string, error) {
	if len(keywords) == 0 {
		return "", ErrNoKeywords
	}

	contextText, err := e.retriever.ForTopics(ctx, conversationId, keywords)
	if err != nil {
		return "", err
	}

	return e.generator.GenerateContent(ctx, &ai.GenerateRequest{
		System:  quizPrompt(e.questions, contextText),
		Message: "Generate the questions now.",
	})
}
