package orchestrator

import (
	"context"
	"errors"
	"time"

	contractx "github.com/tanpawarit/agentic-todos/agent/contract"
	duedatex "github.com/tanpawarit/agentic-todos/agent/duedate"
)

const defaultMaxIterations = 10

type Config struct {
	// MaxIterations caps the tool loop so a model that never settles on
	// a text answer cannot spin forever.
	MaxIterations int
}

// Orchestrator drives the tool-calling loop: it sends the user prompt
// plus the declared tool surface to the model, executes requested calls,
// feeds results back, and returns the model's final text.
type Orchestrator struct {
	model     contractx.ChatModel
	contacts  contractx.ContactDirectory
	todos     contractx.TodoStore
	reminders contractx.ReminderScheduler
	resolver  *duedatex.Resolver

	maxIterations int
	now           func() time.Time
}

func New(
	model contractx.ChatModel,
	contacts contractx.ContactDirectory,
	todos contractx.TodoStore,
	resolver *duedatex.Resolver,
	reminders contractx.ReminderScheduler,
	cfg Config,
) (*Orchestrator, error) {
	if model == nil {
		return nil, errors.New("chat model is required")
	}
	if contacts == nil {
		return nil, errors.New("contact directory is required")
	}
	if todos == nil {
		return nil, errors.New("todo store is required")
	}
	if resolver == nil {
		return nil, errors.New("due date resolver is required")
	}
	if reminders == nil {
		reminders = noopScheduler{}
	}

	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}

	return &Orchestrator{
		model:         model,
		contacts:      contacts,
		todos:         todos,
		reminders:     reminders,
		resolver:      resolver,
		maxIterations: maxIterations,
		now:           time.Now,
	}, nil
}

// ListTodos returns a snapshot of every created todo in creation order.
func (o *Orchestrator) ListTodos(ctx context.Context) ([]contractx.Todo, error) {
	return o.todos.List(ctx)
}

type noopScheduler struct{}

func (noopScheduler) Schedule(context.Context, contractx.Todo) error {
	return nil
}
