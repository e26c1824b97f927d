package contract

import "time"

// Contact is a read-only directory entry. Matching is done against the
// display name only.
type Contact struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (c Contact) DisplayName() string {
	return c.FirstName + " " + c.LastName
}

// Todo is created once per successful create_todo tool call and never
// mutated afterwards. ContactID is a weak reference: no existence check.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	DueDate   time.Time `json:"dueDate"`
	ContactID string    `json:"contactId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToolCall is one function invocation requested by the model. ID is the
// correlation id that routes the result back to the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // raw JSON payload
}

// ToolResult carries the JSON document fed back to the model for the
// call identified by CallID.
type ToolResult struct {
	CallID  string
	Payload string
}

// ModelTurn is one assistant response: either plain text, or a batch of
// tool calls in the order the model requested them.
type ModelTurn struct {
	Text      string
	ToolCalls []ToolCall
}

// ToolInfo declares one tool to the model. Parameters is the JSON schema
// serialized verbatim on the wire.
type ToolInfo struct {
	Name       string
	Desc       string
	Parameters map[string]any
}
