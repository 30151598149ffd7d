package models

// LiveContextPreamble heads injected live context so the model uses it as
// grounding rather than treating it as user input.
const LiveContextPreamble = `Use the following live information to answer the user's latest question accurately.
Prefer these facts over prior knowledge and mention the source when you use one.

`

// ContextMessage wraps fetched live context as a system message
func ContextMessage(text string) Message {
	return Message{
		Role:    RoleSystem,
		Content: text,
	}
}
