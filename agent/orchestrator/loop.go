package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/agentic-todos/agent/contract"
	promptx "github.com/tanpawarit/agentic-todos/agent/prompt"
	toolx "github.com/tanpawarit/agentic-todos/agent/tool"
)

const fallbackReply = "OK"

// CreateTodo runs the bounded tool loop for one user prompt and returns
// the model's confirmation text. Todos created along the way stay
// created even when a later iteration fails.
func (o *Orchestrator) CreateTodo(ctx context.Context, prompt string) (string, error) {
	text := strings.TrimSpace(prompt)
	if text == "" {
		return "", fmt.Errorf("%w: prompt is empty", contractx.ErrValidation)
	}

	conv := o.model.Start(promptx.System(), text, toolx.Infos())

	for i := 0; i < o.maxIterations; i++ {
		turn, err := conv.Next(ctx)
		if err != nil {
			return "", err
		}

		if len(turn.ToolCalls) == 0 {
			reply := strings.TrimSpace(turn.Text)
			if reply == "" {
				reply = fallbackReply
			}
			return reply, nil
		}

		// Results go back in the order the model requested the calls,
		// keyed by each call's correlation id.
		results := make([]contractx.ToolResult, 0, len(turn.ToolCalls))
		for _, call := range turn.ToolCalls {
			results = append(results, o.execute(ctx, call))
		}
		conv.AddToolResults(results)
	}

	return "", fmt.Errorf("%w: no final answer after %d iterations", contractx.ErrLoopBudget, o.maxIterations)
}

func (o *Orchestrator) execute(ctx context.Context, call contractx.ToolCall) contractx.ToolResult {
	kind := toolx.KindOf(call.Name)
	log.Debug().Str("tool", call.Name).Str("call_id", call.ID).Msg("dispatch tool call")

	switch kind {
	case toolx.KindFindContact:
		return o.runFindContact(call)
	case toolx.KindCreateTodo:
		return o.runCreateTodo(ctx, call)
	case toolx.KindUnknown:
		return errorResult(call.ID, "Unknown function")
	default:
		return errorResult(call.ID, "Unknown function")
	}
}

func (o *Orchestrator) runFindContact(call contractx.ToolCall) contractx.ToolResult {
	args, err := toolx.DecodeFindContact(call.Arguments)
	if err != nil {
		return errorResult(call.ID, err.Error())
	}

	contact := o.contacts.Find(args.Query)
	if contact == nil {
		return contractx.ToolResult{CallID: call.ID, Payload: "null"}
	}
	return jsonResult(call.ID, contact)
}

func (o *Orchestrator) runCreateTodo(ctx context.Context, call contractx.ToolCall) contractx.ToolResult {
	args, err := toolx.DecodeCreateTodo(call.Arguments)
	if err != nil {
		return errorResult(call.ID, err.Error())
	}

	todo := contractx.Todo{
		ID:        uuid.NewString(),
		Title:     args.Title,
		Content:   args.Content,
		DueDate:   o.resolver.Resolve(args.DueDate),
		ContactID: args.ContactID,
		CreatedAt: o.now().UTC(),
	}

	if err := o.todos.Add(ctx, todo); err != nil {
		log.Error().Err(err).Str("call_id", call.ID).Msg("store todo failed")
		return errorResult(call.ID, "failed to store todo: "+err.Error())
	}

	// Best effort only: a missed reminder never fails the created todo.
	if err := o.reminders.Schedule(ctx, todo); err != nil {
		log.Warn().Err(err).Str("todo_id", todo.ID).Msg("schedule reminder failed")
	}

	return jsonResult(call.ID, todo)
}

func jsonResult(callID string, v any) contractx.ToolResult {
	payload, err := json.Marshal(v)
	if err != nil {
		return errorResult(callID, "failed to encode tool result")
	}
	return contractx.ToolResult{CallID: callID, Payload: string(payload)}
}

func errorResult(callID, message string) contractx.ToolResult {
	payload, _ := json.Marshal(map[string]string{"error": message})
	return contractx.ToolResult{CallID: callID, Payload: string(payload)}
}
