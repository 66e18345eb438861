package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
	sdk "github.com/inference-gateway/sdk"
)

// mcpSeparator joins server and tool in function names exposed to the model,
// e.g. github__create_issue
const mcpSeparator = "__"

// GatewayTransport implements domain.ModelTransport over the inference gateway
type GatewayTransport struct {
	client  sdk.Client
	model   string
	timeout time.Duration
}

// NewGatewayTransport creates a transport for model ("provider/model")
func NewGatewayTransport(cfg config.GatewayConfig, model string) *GatewayTransport {
	baseURL := cfg.URL
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if !strings.HasSuffix(baseURL, "/v1") {
		baseURL = strings.TrimSuffix(baseURL, "/") + "/v1"
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 200 * time.Second
	}

	client := sdk.NewClient(&sdk.ClientOptions{
		BaseURL: baseURL,
		APIKey:  cfg.APIKey,
		Timeout: timeout,
	})

	return NewGatewayTransportWithClient(client, model, timeout)
}

// NewGatewayTransportWithClient wraps an existing SDK client
func NewGatewayTransportWithClient(client sdk.Client, model string, timeout time.Duration) *GatewayTransport {
	return &GatewayTransport{client: client, model: model, timeout: timeout}
}

// Generate sends the conversation and the tool definitions to the gateway
func (t *GatewayTransport) Generate(ctx context.Context, req domain.ModelRequest) (*domain.ModelResponse, error) {
	provider, modelName, err := parseProvider(t.model)
	if err != nil {
		return nil, fmt.Errorf("failed to parse provider from model '%s': %w", t.model, err)
	}

	messages := toSDKMessages(req.Messages)

	client := t.client
	if tools := toSDKTools(req.Tools); tools != nil {
		client = client.WithTools(tools)
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	logger.Debug("LLM request", "turn", req.TurnID, "model", t.model, "messages", len(messages), "tools", len(req.Tools))

	start := time.Now()
	response, err := client.GenerateContent(ctx, sdk.Provider(provider), modelName, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	out, err := fromSDKResponse(response)
	if err != nil {
		return nil, err
	}

	logger.Debug("LLM response", "turn", req.TurnID, "tool_calls", len(out.ToolCalls), "duration", time.Since(start).String())
	return out, nil
}

func parseProvider(model string) (string, string, error) {
	parts := strings.SplitN(model, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid model format, expected 'provider/model'")
	}
	return parts[0], parts[1], nil
}

func toSDKMessages(messages []domain.Message) []sdk.Message {
	out := make([]sdk.Message, 0, len(messages))
	for _, msg := range messages {
		var role sdk.MessageRole
		switch msg.Role {
		case domain.RoleSystem:
			role = sdk.System
		case domain.RoleAssistant:
			role = sdk.Assistant
		case domain.RoleTool:
			role = sdk.Tool
		default:
			role = sdk.User
		}

		sdkMsg := sdk.Message{
			Role:    role,
			Content: sdk.NewMessageContent(msg.Content),
		}

		if len(msg.ToolCalls) > 0 {
			calls := make([]sdk.ChatCompletionMessageToolCall, 0, len(msg.ToolCalls))
			for _, c := range msg.ToolCalls {
				calls = append(calls, sdk.ChatCompletionMessageToolCall{
					Id:   c.ID,
					Type: sdk.Function,
					Function: sdk.ChatCompletionMessageToolCallFunction{
						Name:      functionName(c),
						Arguments: string(c.ArgsJSON()),
					},
				})
			}
			sdkMsg.ToolCalls = &calls
		}

		if msg.ToolCallID != "" {
			id := msg.ToolCallID
			sdkMsg.ToolCallId = &id
		}

		out = append(out, sdkMsg)
	}
	return out
}

func toSDKTools(defs []domain.ToolDefinition) *[]sdk.ChatCompletionTool {
	if len(defs) == 0 {
		return nil
	}

	tools := make([]sdk.ChatCompletionTool, len(defs))
	for i, def := range defs {
		description := def.Description

		var parameters *sdk.FunctionParameters
		if def.Parameters != nil {
			fp := sdk.FunctionParameters(def.Parameters)
			parameters = &fp
		}

		tools[i] = sdk.ChatCompletionTool{
			Type: sdk.Function,
			Function: sdk.FunctionObject{
				Name:        def.Name,
				Description: &description,
				Parameters:  parameters,
			},
		}
	}
	return &tools
}

func fromSDKResponse(response *sdk.CreateChatCompletionResponse) (*domain.ModelResponse, error) {
	if response == nil || len(response.Choices) == 0 {
		return nil, fmt.Errorf("gateway returned no choices")
	}

	choice := response.Choices[0]
	out := &domain.ModelResponse{}

	content, err := choice.Message.Content.AsMessageContent0()
	if err == nil {
		out.Content = content
	}

	if choice.Message.ToolCalls == nil {
		return out, nil
	}

	for _, tc := range *choice.Message.ToolCalls {
		req, err := parseToolCall(tc)
		if err != nil {
			return nil, err
		}
		out.ToolCalls = append(out.ToolCalls, req)
	}
	return out, nil
}

func parseToolCall(tc sdk.ChatCompletionMessageToolCall) (domain.ToolCallRequest, error) {
	req := domain.ToolCallRequest{ID: tc.Id, ToolName: tc.Function.Name}
	if server, tool, ok := strings.Cut(tc.Function.Name, mcpSeparator); ok && server != "" && tool != "" {
		req.ServerName = server
		req.ToolName = tool
	}

	if args := strings.TrimSpace(tc.Function.Arguments); args != "" {
		if err := json.Unmarshal([]byte(args), &req.Args); err != nil {
			return domain.ToolCallRequest{}, fmt.Errorf("failed to parse arguments of tool call %s (%s): %w", tc.Id, tc.Function.Name, err)
		}
	}
	return req, nil
}

func functionName(req domain.ToolCallRequest) string {
	if req.ServerName != "" {
		return req.ServerName + mcpSeparator + req.ToolName
	}
	return req.ToolName
}
