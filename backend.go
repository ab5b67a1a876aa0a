package trickle

import "context"

// Backend opens reply streams for user prompts.
type Backend interface {
	Stream(ctx context.Context, prompt string) (Stream, error)
}

// ChatResponse is the reply of the synchronous chat endpoint.
type ChatResponse struct {
	Response string
	Success  bool
	Error    string
}

// Health is the backend's diagnostic status.
type Health struct {
	Status           string
	AgentInitialized bool
	Version          string
}
