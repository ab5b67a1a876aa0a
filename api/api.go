// Package api implements [trickle.Backend] for the chat agent HTTP API.
//
// Replies stream as server-sent events, one JSON object per data line:
//
//	data: {"type":"text","content":"Sure, "}
//	data: {"type":"done"}
//
// The client also covers the synchronous chat endpoint and the health probe.
package api

const (
	defaultBaseURL = "http://localhost:8000"
	streamPath     = "/api/chat/stream"
	chatPath       = "/api/chat"
	healthPath     = "/health"

	// maxErrorBody caps how much of a failed response is kept for the error.
	maxErrorBody = 4096
)

// Frame types sent by the backend.
const (
	frameText  = "text"
	frameDone  = "done"
	frameError = "error"
)

// apiRequest is the JSON body of both chat endpoints.
type apiRequest struct {
	Message string `json:"message"`
}

// apiFrame is the payload of one stream data line.
type apiFrame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// apiChatResponse is the body returned by the synchronous chat endpoint.
type apiChatResponse struct {
	Response string `json:"response"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// apiHealth is the body returned by the health endpoint. Older backends
// report initialization under a service-specific key.
type apiHealth struct {
	Status            string `json:"status"`
	AgentInitialized  *bool  `json:"agent_initialized"`
	LegacyInitialized *bool  `json:"hair_consultation_agent_initialized"`
	Version           string `json:"version"`
}

// apiErrorResponse is the error body of the backend's web framework.
type apiErrorResponse struct {
	Detail string `json:"detail"`
}
