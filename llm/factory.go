package llm

import (
	"log"
	"os"
	"time"
)

const (
	// EnvMode is the environment variable name for mode selection.
	EnvMode = "JOBAGENT_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// New creates a language model based on the JOBAGENT_MODE environment
// variable. If JOBAGENT_MODE=MOCK, returns a MockClient; otherwise returns
// a real Client.
func New(baseURL, apiKey, model string, timeout time.Duration) LanguageModel {
	if os.Getenv(EnvMode) == ModeMock {
		log.Println("JOBAGENT_MODE=MOCK detected, using mock language model")
		return NewMockClient()
	}
	return NewClient(baseURL, apiKey, model, timeout)
}
