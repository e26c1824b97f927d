package todo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	contractx "github.com/tanpawarit/agentic-todos/agent/contract"
)

func sampleTodo(id string) contractx.Todo {
	return contractx.Todo{
		ID:        id,
		Title:     "Call Steve",
		Content:   "Call Steve",
		DueDate:   time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC),
	}
}

func TestMemoryStoreListSnapshotIdempotent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Add(ctx, sampleTodo(fmt.Sprintf("t-%d", i))); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	first, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	second, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("snapshot sizes = %d, %d, want 3", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("snapshot order differs at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
		if first[i].ID != fmt.Sprintf("t-%d", i) {
			t.Fatalf("creation order violated at %d: %s", i, first[i].ID)
		}
	}
}

func TestMemoryStoreSnapshotIsolated(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Add(ctx, sampleTodo("t-0")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	snapshot, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	snapshot[0].Title = "mutated"

	fresh, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if fresh[0].Title != "Call Steve" {
		t.Fatalf("store mutated through snapshot: %q", fresh[0].Title)
	}
}

func TestMemoryStoreConcurrentAdds(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			_ = store.Add(ctx, sampleTodo(fmt.Sprintf("t-%d", i)))
		}(i)
	}
	wg.Wait()

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != writers {
		t.Fatalf("lost updates: got %d todos, want %d", len(got), writers)
	}
}
