// jansaathi/utils/types/chat.go
package types

// Roles accepted on the chat wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /chat/. Language is an optional
// two-letter preference code ("en", "hi", "kn").
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	Language string        `json:"language,omitempty"`
}

// ErrorResponse is the stable JSON shape for every non-streaming failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
