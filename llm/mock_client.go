package llm

import (
	"context"
	"fmt"
)

// MockClient is a deterministic LanguageModel for local development and
// tests.
type MockClient struct{}

// NewMockClient creates a new mock language model.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Generate echoes the user message back in a canned reply.
func (m *MockClient) Generate(ctx context.Context, systemPrompt, userMessage string, history []string) (string, error) {
	if userMessage == "" {
		return "[MOCK] This is a mock reply from the language model.", nil
	}
	return fmt.Sprintf("[MOCK] Received your message: %q. Tell me more about the role.", truncate(userMessage, 100)), nil
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
