package reminder

import (
	"context"
	"errors"
	"strings"
	"time"

	contractx "github.com/tanpawarit/agentic-todos/agent/contract"
	qstashx "github.com/tanpawarit/agentic-todos/pkg/qstash"
)

// Message is the payload delivered to the callback endpoint when a
// reminder fires.
type Message struct {
	TodoID  string    `json:"todoId"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	DueDate time.Time `json:"dueDate"`
}

// QStashScheduler queues one delayed message per created todo so the
// reminder fires at the due date.
type QStashScheduler struct {
	client      *qstashx.Client
	callbackURL string
	now         func() time.Time
}

var _ contractx.ReminderScheduler = (*QStashScheduler)(nil)

func NewQStashScheduler(client *qstashx.Client, callbackURL string) (*QStashScheduler, error) {
	if client == nil {
		return nil, errors.New("qstash client is required")
	}
	callback := strings.TrimSpace(callbackURL)
	if callback == "" {
		return nil, errors.New("reminder callback url is required")
	}
	return &QStashScheduler{
		client:      client,
		callbackURL: callback,
		now:         time.Now,
	}, nil
}

func (s *QStashScheduler) Schedule(ctx context.Context, todo contractx.Todo) error {
	delay := todo.DueDate.Sub(s.now())
	if delay < 0 {
		delay = 0
	}
	return s.client.PublishJSON(ctx, s.callbackURL, Message{
		TodoID:  todo.ID,
		Title:   todo.Title,
		Content: todo.Content,
		DueDate: todo.DueDate,
	}, delay)
}
