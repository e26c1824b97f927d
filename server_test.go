package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	contactsx "github.com/tanpawarit/agentic-todos/agent/contacts"
	contractx "github.com/tanpawarit/agentic-todos/agent/contract"
	duedatex "github.com/tanpawarit/agentic-todos/agent/duedate"
	orchestratorx "github.com/tanpawarit/agentic-todos/agent/orchestrator"
	todox "github.com/tanpawarit/agentic-todos/agent/todo"
)

type scriptedConversation struct {
	turns []contractx.ModelTurn
	calls int
}

func (s *scriptedConversation) Next(ctx context.Context) (contractx.ModelTurn, error) {
	turn := s.turns[s.calls%len(s.turns)]
	s.calls++
	return turn, nil
}

func (s *scriptedConversation) AddToolResults([]contractx.ToolResult) {}

type scriptedModel struct {
	turns []contractx.ModelTurn
}

func (s *scriptedModel) Start(system, user string, tools []contractx.ToolInfo) contractx.Conversation {
	return &scriptedConversation{turns: s.turns}
}

func newTestMux(t *testing.T, turns []contractx.ModelTurn, store contractx.TodoStore) http.Handler {
	t.Helper()

	resolver := duedatex.NewResolver(time.UTC)
	o, err := orchestratorx.New(
		&scriptedModel{turns: turns},
		contactsx.NewDirectory(nil),
		store,
		resolver,
		nil,
		orchestratorx.Config{MaxIterations: 3},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return newMux(o, time.Minute)
}

func TestCreateTodoEndpoint(t *testing.T) {
	t.Parallel()

	store := todox.NewMemoryStore()
	mux := newTestMux(t, []contractx.ModelTurn{{Text: "todo created for Thursday 9:00 AM."}}, store)

	req := httptest.NewRequest(http.MethodPost, "/api/todo/create", strings.NewReader(`{"prompt":"Call Steve tomorrow"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp createTodoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp.Reply, "todo created") {
		t.Fatalf("reply = %q", resp.Reply)
	}
}

func TestCreateTodoEndpointEmptyPrompt(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, []contractx.ModelTurn{{Text: "unused"}}, todox.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/todo/create", strings.NewReader(`{"prompt":""}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateTodoEndpointLoopBudget(t *testing.T) {
	t.Parallel()

	turns := []contractx.ModelTurn{
		{ToolCalls: []contractx.ToolCall{
			{ID: "call_1", Name: "find_contact", Arguments: `{"query":"Steve"}`},
		}},
	}
	mux := newTestMux(t, turns, todox.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/todo/create", strings.NewReader(`{"prompt":"Call Steve"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestListTodosEndpoint(t *testing.T) {
	t.Parallel()

	store := todox.NewMemoryStore()
	if err := store.Add(context.Background(), contractx.Todo{ID: "t-1", Title: "Call Steve"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	mux := newTestMux(t, []contractx.ModelTurn{{Text: "unused"}}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/todo/list", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var todos []contractx.Todo
	if err := json.Unmarshal(rec.Body.Bytes(), &todos); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != "t-1" {
		t.Fatalf("unexpected todos: %+v", todos)
	}
}

func TestListTodosEndpointEmptyIsArray(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, []contractx.ModelTurn{{Text: "unused"}}, todox.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/api/todo/list", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("body = %q, want []", rec.Body.String())
	}
}
