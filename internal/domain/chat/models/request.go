package models

// ChatRequest is the inbound body of a chat call. Clients send either the
// full conversation or a single message.
type ChatRequest struct {
	Messages Conversation `json:"messages,omitempty" validate:"omitempty,dive"`
	Message  string       `json:"message,omitempty"`
	IsPro    bool         `json:"isPro"`
}

// Conversation returns the messages to answer. A bare message is treated
// as a one-turn user conversation.
func (r ChatRequest) Conversation() Conversation {
	if len(r.Messages) > 0 {
		return r.Messages
	}
	if r.Message != "" {
		return Conversation{{Role: RoleUser, Content: r.Message}}
	}
	return nil
}

func (r ChatRequest) Tier() Tier {
	return TierFromPro(r.IsPro)
}
