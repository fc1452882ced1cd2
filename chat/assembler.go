package chat

import (
	"context"
	"errors"
	"log/slog"

	"github.com/studium-labs/studium/ai"
	"github.com/studium-labs/studium/core"
	"github.com/studium-labs/studium/search"
	"github.com/studium-labs/studium/storage"
)

// Assembler builds generation requests for a conversation: retrieved
// chunk texts, the full syllabus text when one is processed, and prior
// turns mapped to role-tagged history.
type Assembler struct {
	documents storage.DocumentRepository
	turns     storage.TurnRepository
	retriever *search.Retriever
	logger    *slog.Logger
}

// NewAssembler creates a context assembler.
func NewAssembler(documents storage.DocumentRepository, turns storage.TurnRepository, retriever *search.Retriever) (*Assembler, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if turns == nil {
		return nil, ErrTurnRepositoryRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	return &Assembler{
		documents: documents,
		turns:     turns,
		retriever: retriever,
		logger:    slog.Default().With("component", "assembler"),
	}, nil
}

// BuildRequest assembles the generation request for answering message in
// the conversation. The syllabus block is empty unless a syllabus-role
// document exists and is processed.
func (a *Assembler) BuildRequest(ctx context.Context, conversationId core.ID, message string) (*ai.GenerateRequest, error) {
	history, err := a.History(ctx, conversationId)
	if err != nil {
		return nil, err
	}

	syllabus, err := a.SyllabusText(ctx, conversationId)
	if err != nil {
		return nil, err
	}

	contextText, err := a.retriever.ContextText(ctx, conversationId, message)
	if err != nil {
		return nil, err
	}

	return &ai.GenerateRequest{
		System:  answerPrompt(syllabus, contextText),
		History: history,
		Message: message,
	}, nil
}

// History maps the conversation's turns, in timestamp order, to prompt
// turns: human speaker to the user role, AI speaker to the assistant role.
func (a *Assembler) History(ctx context.Context, conversationId core.ID) ([]ai.PromptTurn, error) {
	turns, err := a.turns.GetTurnsByConversation(ctx, conversationId)
	if err != nil {
		return nil, err
	}

	history := make([]ai.PromptTurn, 0, len(turns))
	for _, turn := range turns {
		role := ai.RoleUser
		if turn.Speaker == core.SpeakerAI {
			role = ai.RoleAssistant
		}
		history = append(history, ai.PromptTurn{Role: role, Content: turn.Contents})
	}
	return history, nil
}

// SyllabusText returns the conversation's processed syllabus content, or
// an empty string when no processed syllabus exists.
func (a *Assembler) SyllabusText(ctx context.Context, conversationId core.ID) (string, error) {
	doc, err := a.documents.FindSyllabus(ctx, conversationId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	if doc.Status != core.StatusProcessed {
		return "", nil
	}
	return doc.Content, nil
}
