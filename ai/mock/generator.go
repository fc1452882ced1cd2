package mock

import (
	"context"
	"strings"

	"github.com/studium-labs/studium/ai"
)

// defaultReply is the canned response used when no behavior is injected.
const defaultReply = "This is a mock reply for testing purposes."

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateContentFunc is called by GenerateContent if set.
	// If nil, returns a canned reply.
	GenerateContentFunc func(ctx context.Context, req *ai.GenerateRequest) (string, error)

	// StreamContentFunc is called by StreamContent if set.
	// If nil, streams the canned reply word by word.
	StreamContentFunc func(ctx context.Context, req *ai.GenerateRequest, onChunk func(ctx context.Context, chunk []byte) error) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateContent returns a canned reply or delegates to the injected func.
func (m *MockGenerator) GenerateContent(ctx context.Context, req *ai.GenerateRequest) (string, error) {
	m.callCount++

	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, req)
	}
	return defaultReply, nil
}

// StreamContent streams the canned reply in word-sized chunks, or delegates
// to the injected func. Mirrors the production contract: onChunk errors
// abort the stream.
func (m *MockGenerator) StreamContent(ctx context.Context, req *ai.GenerateRequest, onChunk func(ctx context.Context, chunk []byte) error) (string, error) {
	m.callCount++

	if m.StreamContentFunc != nil {
		return m.StreamContentFunc(ctx, req, onChunk)
	}

	var accumulated strings.Builder
	for i, word := range strings.Split(defaultReply, " ") {
		chunk := word
		if i > 0 {
			chunk = " " + word
		}
		accumulated.WriteString(chunk)
		if onChunk != nil {
			if err := onChunk(ctx, []byte(chunk)); err != nil {
				return "", err
			}
		}
	}
	return accumulated.String(), nil
}

// CallCount returns the number of times any method was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.GenerateContentFunc = nil
	m.StreamContentFunc = nil
}
