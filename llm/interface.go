// Package llm provides the language-model collaborator used to generate
// conversational replies.
package llm

import "context"

// LanguageModel is the narrow contract the workflow depends on. history
// carries the recent conversation turns as "actor: utterance" strings.
type LanguageModel interface {
	Generate(ctx context.Context, systemPrompt, userMessage string, history []string) (string, error)
}

// Ensure both clients implement the interface.
var (
	_ LanguageModel = (*Client)(nil)
	_ LanguageModel = (*MockClient)(nil)
)
