package ai

import "context"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged block of the context payload.
type Message struct {
	Role Role
	Text string
}

// Backend is the remote generation collaborator. It knows nothing about
// conversations or Confluence; it completes a prepared context payload.
// Absence of a backend is a mode, not an error: wiring decides once at
// construction whether a Backend exists at all.
type Backend interface {
	Complete(ctx context.Context, messages []Message, maxTokens int, temperature float32) (string, error)
}
