package reminder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	contractx "github.com/tanpawarit/agentic-todos/agent/contract"
	qstashx "github.com/tanpawarit/agentic-todos/pkg/qstash"
)

func TestScheduleDelaysUntilDueDate(t *testing.T) {
	t.Parallel()

	var (
		gotDelay string
		gotMsg   Message
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDelay = r.Header.Get("Upstash-Delay")
		_ = json.NewDecoder(r.Body).Decode(&gotMsg)
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	client, err := qstashx.NewClient(qstashx.Config{URL: server.URL, Token: "token"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	client.WithHTTPClient(server.Client())

	scheduler, err := NewQStashScheduler(client, "https://example.com/reminders")
	if err != nil {
		t.Fatalf("NewQStashScheduler() error = %v", err)
	}

	now := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	scheduler.now = func() time.Time { return now }

	todo := contractx.Todo{
		ID:      "t-1",
		Title:   "Call Steve",
		Content: "Call Steve",
		DueDate: now.Add(10 * time.Minute),
	}
	if err := scheduler.Schedule(context.Background(), todo); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}

	if gotDelay != "600s" {
		t.Fatalf("delay = %q, want 600s", gotDelay)
	}
	if gotMsg.TodoID != "t-1" || gotMsg.Title != "Call Steve" {
		t.Fatalf("unexpected message: %+v", gotMsg)
	}
}

func TestSchedulePastDueFiresImmediately(t *testing.T) {
	t.Parallel()

	var gotDelay string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDelay = r.Header.Get("Upstash-Delay")
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	client, err := qstashx.NewClient(qstashx.Config{URL: server.URL, Token: "token"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	client.WithHTTPClient(server.Client())

	scheduler, err := NewQStashScheduler(client, "https://example.com/reminders")
	if err != nil {
		t.Fatalf("NewQStashScheduler() error = %v", err)
	}

	now := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	scheduler.now = func() time.Time { return now }

	todo := contractx.Todo{ID: "t-1", DueDate: now.Add(-time.Hour)}
	if err := scheduler.Schedule(context.Background(), todo); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if gotDelay != "" {
		t.Fatalf("delay = %q, want no delay header", gotDelay)
	}
}

func TestNewQStashSchedulerValidation(t *testing.T) {
	t.Parallel()

	client, err := qstashx.NewClient(qstashx.Config{URL: "https://qstash.upstash.io", Token: "token"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if _, err := NewQStashScheduler(nil, "https://example.com"); err == nil {
		t.Fatal("expected error for nil client")
	}
	if _, err := NewQStashScheduler(client, "   "); err == nil {
		t.Fatal("expected error for empty callback url")
	}
}
