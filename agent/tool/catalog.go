package tool

import (
	"encoding/json"
	"errors"
	"strings"

	contractx "github.com/tanpawarit/agentic-todos/agent/contract"
)

const (
	NameFindContact = "find_contact"
	NameCreateTodo  = "create_todo"
)

// Kind is the tagged variant behind the model's string tool names.
type Kind int

const (
	KindUnknown Kind = iota
	KindFindContact
	KindCreateTodo
)

func KindOf(name string) Kind {
	switch strings.TrimSpace(name) {
	case NameFindContact:
		return KindFindContact
	case NameCreateTodo:
		return KindCreateTodo
	default:
		return KindUnknown
	}
}

// Infos declares the two tools exactly as the model is instructed:
// field names and required lists are the declared surface, so they must
// not drift from what the handlers read.
func Infos() []contractx.ToolInfo {
	return []contractx.ToolInfo{
		{
			Name: NameFindContact,
			Desc: "Find a contact by name or partial name. Returns best match or null.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Name or partial, e.g. 'steve'",
					},
				},
				"required":             []string{"query"},
				"additionalProperties": false,
			},
		},
		{
			Name: NameCreateTodo,
			Desc: "Create a TODO with a natural-language due date. Server resolves the date.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "Short imperative title, e.g. 'Call Steve'",
					},
					"content": map[string]any{
						"type":        "string",
						"description": "Full description of the task",
					},
					"dueDate": map[string]any{
						"type":        "string",
						"description": "Natural text like 'Friday', 'tomorrow 2pm'",
					},
					"contactId": map[string]any{
						"type":        "string",
						"description": "Optional contact id from find_contact",
					},
				},
				"required":             []string{"title", "dueDate"},
				"additionalProperties": false,
			},
		},
	}
}

type FindContactArgs struct {
	Query string `json:"query"`
}

type CreateTodoArgs struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	DueDate   string `json:"dueDate"`
	ContactID string `json:"contactId"`
}

// DecodeFindContact parses find_contact arguments. Errors are meant to
// be sent back to the model verbatim as a tool-result payload.
func DecodeFindContact(raw string) (FindContactArgs, error) {
	var args FindContactArgs
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return FindContactArgs{}, errors.New("arguments are not valid JSON")
	}
	if strings.TrimSpace(args.Query) == "" {
		return FindContactArgs{}, errors.New("query is required")
	}
	return args, nil
}

// DecodeCreateTodo parses create_todo arguments. Missing content falls
// back to the title; dueDate and title are required.
func DecodeCreateTodo(raw string) (CreateTodoArgs, error) {
	var args CreateTodoArgs
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return CreateTodoArgs{}, errors.New("arguments are not valid JSON")
	}
	if strings.TrimSpace(args.Title) == "" {
		return CreateTodoArgs{}, errors.New("title is required")
	}
	if strings.TrimSpace(args.DueDate) == "" {
		return CreateTodoArgs{}, errors.New("dueDate is required")
	}
	if strings.TrimSpace(args.Content) == "" {
		args.Content = args.Title
	}
	return args, nil
}
