package assistant

import "context"

// Role names for prompt messages, mirroring the chat-completion wire roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in an ordered prompt sequence.
type Message struct {
	Role    string
	Content string
}

// Client is the language-model collaborator. Complete sends an ordered
// prompt sequence and returns the model's reply text. Failures are reported
// as *apperrors.UpstreamError when the upstream category is known.
type Client interface {
	Complete(ctx context.Context, messages []Message, maxTokens int) (string, error)
}
