package todo

import (
	"context"
	"sync"

	contractx "github.com/tanpawarit/agentic-todos/agent/contract"
)

// MemoryStore is the default append-only todo list. Writes are
// mutex-serialized so concurrent requests cannot lose updates.
type MemoryStore struct {
	mu    sync.Mutex
	todos []contractx.Todo
}

var _ contractx.TodoStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Add(_ context.Context, todo contractx.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = append(s.todos, todo)
	return nil
}

// List returns a snapshot copy in creation order.
func (s *MemoryStore) List(_ context.Context) ([]contractx.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]contractx.Todo(nil), s.todos...), nil
}
