package contract

import "context"

// Conversation is one request-scoped, append-only message exchange with
// the model. Tool results must be added before the next round-trip.
type Conversation interface {
	Next(ctx context.Context) (ModelTurn, error)
	AddToolResults(results []ToolResult)
}

type ChatModel interface {
	Start(system, user string, tools []ToolInfo) Conversation
}

type ContactDirectory interface {
	Find(query string) *Contact
}

type TodoStore interface {
	Add(ctx context.Context, todo Todo) error
	List(ctx context.Context) ([]Todo, error)
}

// ReminderScheduler is notified after a todo is stored. Failures are
// best-effort and never fail the request.
type ReminderScheduler interface {
	Schedule(ctx context.Context, todo Todo) error
}
