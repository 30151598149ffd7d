package models

import "github.com/sashabaranov/go-openai"

// Message roles accepted in a conversation
const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// Message represents a single message in a conversation
type Message struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

// Conversation is an ordered list of messages. The last message is the one
// being answered.
type Conversation []Message

// Last returns the final message of the conversation, or false when empty.
func (c Conversation) Last() (Message, bool) {
	if len(c) == 0 {
		return Message{}, false
	}
	return c[len(c)-1], true
}

// Prepend returns a new conversation with msg in front of the existing
// messages. The receiver is left untouched.
func (c Conversation) Prepend(msg Message) Conversation {
	out := make(Conversation, 0, len(c)+1)
	out = append(out, msg)
	return append(out, c...)
}

// ToOpenAI converts the conversation to the provider wire format
func (c Conversation) ToOpenAI() []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(c))
	for i, msg := range c {
		out[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return out
}

// Event is one element of the output sequence produced for a request.
// A request yields zero or more content events followed by exactly one
// terminal event: either Done or Error.
type Event struct {
	ID        string `json:"id,omitempty"`
	Content   string `json:"content,omitempty"`
	ModelUsed string `json:"modelUsed,omitempty"`
	Done      bool   `json:"done,omitempty"`
	Error     string `json:"error,omitempty"`
}

// IsTerminal reports whether the event closes the sequence
func (e Event) IsTerminal() bool {
	return e.Done || e.Error != ""
}
