package llm

import (
	"context"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	contractx "github.com/tanpawarit/agentic-todos/agent/contract"
)

// OpenAIModel talks to an OpenAI-compatible chat-completion endpoint.
// Each Start call opens an independent request-scoped conversation.
type OpenAIModel struct {
	client *openaisdk.Client
	cfg    Config
}

var _ contractx.ChatModel = (*OpenAIModel)(nil)

func NewOpenAIModel(cfg Config) (*OpenAIModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	client := openaisdk.NewClient(opts...)
	return &OpenAIModel{
		client: &client,
		cfg:    cfg,
	}, nil
}

func MustNewOpenAIModel(cfg Config) *OpenAIModel {
	m, err := NewOpenAIModel(cfg)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *OpenAIModel) Start(system, user string, tools []contractx.ToolInfo) contractx.Conversation {
	params := openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(strings.TrimSpace(m.cfg.Model)),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(system),
			openaisdk.UserMessage(user),
		},
	}

	if len(tools) > 0 {
		sdkTools := make([]openaisdk.ChatCompletionToolParam, 0, len(tools))
		for _, t := range tools {
			sdkTools = append(sdkTools, openaisdk.ChatCompletionToolParam{
				Function: openaisdk.FunctionDefinitionParam{
					Name:        t.Name,
					Description: openaisdk.String(t.Desc),
					Parameters:  openaisdk.FunctionParameters(t.Parameters),
				},
			})
		}
		params.Tools = sdkTools
	}
	if m.cfg.MaxCompletionToken > 0 {
		params.MaxCompletionTokens = openaisdk.Int(int64(m.cfg.MaxCompletionToken))
	}
	if m.cfg.Temperature >= 0 {
		params.Temperature = openaisdk.Float(m.cfg.Temperature)
	}

	return &openAIConversation{
		client: m.client,
		params: params,
	}
}

// openAIConversation accumulates the message history, including the
// assistant tool-call turns, so correlation ids always come from the
// immediately preceding assistant turn.
type openAIConversation struct {
	client *openaisdk.Client
	params openaisdk.ChatCompletionNewParams
}

func (c *openAIConversation) Next(ctx context.Context) (contractx.ModelTurn, error) {
	completion, err := c.client.Chat.Completions.New(ctx, c.params)
	if err != nil {
		return contractx.ModelTurn{}, fmt.Errorf("%w: chat completion: %v", contractx.ErrModelInvoke, err)
	}
	if len(completion.Choices) == 0 {
		return contractx.ModelTurn{}, fmt.Errorf("%w: chat completion returned no choices", contractx.ErrModelInvoke)
	}

	msg := completion.Choices[0].Message
	if len(msg.ToolCalls) == 0 {
		return contractx.ModelTurn{Text: msg.Content}, nil
	}

	c.params.Messages = append(c.params.Messages, msg.ToParam())

	calls := make([]contractx.ToolCall, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		calls = append(calls, contractx.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return contractx.ModelTurn{ToolCalls: calls}, nil
}

func (c *openAIConversation) AddToolResults(results []contractx.ToolResult) {
	for _, r := range results {
		c.params.Messages = append(c.params.Messages, openaisdk.ToolMessage(r.Payload, r.CallID))
	}
}
