package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged message in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage reports token accounting from the provider, when available.
type Usage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

// Request describes a single chat-style completion call. System prompts are
// carried separately from the conversation so providers that take a system
// instruction out of band (Gemini) can use them directly.
type Request struct {
	Model       string
	System      []string
	Messages    []Message
	MaxTokens   int32
	Temperature float32
	// ForceJSON asks the provider to return a single JSON object. Used by
	// the playlist curator.
	ForceJSON bool
}

// Response is the provider-agnostic completion result.
type Response struct {
	Text       string
	Usage      Usage
	StopReason string
}

// Client is the text-completion interface the handlers depend on. Any
// provider offering chat-style completion satisfies it.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
