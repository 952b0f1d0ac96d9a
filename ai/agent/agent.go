package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mindwell-ai/mindwell/ai/llm"
)

// delegatePrefix names the synthetic tools that hand a turn to a sub-agent.
const delegatePrefix = "delegate_to_"

// Runner is anything that can take over a conversation turn: a plain agent
// or a sequential pipeline.
type Runner interface {
	Name() string
	Description() string
	Run(ctx context.Context, input string) (string, error)
}

// Config holds configuration for creating a new Agent.
type Config struct {
	// Name identifies this agent.
	Name string

	// Description is shown to parent agents when deciding to delegate.
	Description string

	// Instruction is the system prompt for the LLM.
	Instruction string

	// MaxIterations is the maximum number of tool-calling loops.
	MaxIterations int
}

// Agent is a named instruction+toolset configuration. It has no control
// flow of its own: which tool to call and when to delegate is decided
// entirely by the LLM interpreting the instruction text.
type Agent struct {
	llm       llm.Service
	config    Config
	tools     []Tool
	toolMap   map[string]Tool
	subAgents []Runner
	subMap    map[string]Runner
	stats     Stats
}

// New creates a new Agent. Sub-agents are exposed to the LLM as
// delegate_to_<name> tools; calling one hands the whole turn over.
func New(llmService llm.Service, config Config, tools []Tool, subAgents ...Runner) *Agent {
	if config.MaxIterations <= 0 {
		config.MaxIterations = 10
	}

	toolMap := make(map[string]Tool, len(tools))
	for _, tool := range tools {
		toolMap[tool.Name()] = tool
	}
	subMap := make(map[string]Runner, len(subAgents))
	for _, sub := range subAgents {
		subMap[delegatePrefix+sub.Name()] = sub
	}

	return &Agent{
		llm:       llmService,
		config:    config,
		tools:     tools,
		toolMap:   toolMap,
		subAgents: subAgents,
		subMap:    subMap,
	}
}

// Name returns the agent name.
func (a *Agent) Name() string {
	return a.config.Name
}

// Description returns the agent description.
func (a *Agent) Description() string {
	return a.config.Description
}

// Stats returns a snapshot of the accumulated stats.
func (a *Agent) Stats() Stats {
	return a.stats.Snapshot()
}

// descriptors lists the real tools plus one delegation tool per sub-agent.
func (a *Agent) descriptors() []llm.ToolDescriptor {
	result := make([]llm.ToolDescriptor, 0, len(a.tools)+len(a.subAgents))
	for _, tool := range a.tools {
		result = append(result, descriptorFor(tool))
	}
	for _, sub := range a.subAgents {
		result = append(result, llm.ToolDescriptor{
			Name:        delegatePrefix + sub.Name(),
			Description: "Hand the conversation to a specialist. " + sub.Description(),
			Parameters: ObjectSchema(map[string]any{
				"message": StringProperty("The user request to forward, including any context the specialist needs."),
			}, "message"),
		})
	}
	return result
}

// Run executes one conversation turn.
//
// The loop calls the LLM with the toolset, executes any requested tool calls
// and feeds results back, until the model answers without tool calls or the
// iteration budget runs out. A delegation tool call ends the loop and hands
// the turn to the sub-agent; only the sub-agent's reply reaches the user.
func (a *Agent) Run(ctx context.Context, input string) (string, error) {
	startTime := time.Now()
	defer func() {
		slog.Debug("agent execution completed",
			"agent", a.config.Name,
			"duration_ms", time.Since(startTime).Milliseconds(),
		)
	}()

	messages := []llm.Message{
		{Role: "system", Content: a.config.Instruction},
		{Role: "user", Content: input},
	}

	var lastContent string
	for iteration := 0; iteration < a.config.MaxIterations; iteration++ {
		resp, stats, err := a.llm.ChatWithTools(ctx, messages, a.descriptors())
		if err != nil {
			return "", fmt.Errorf("LLM call failed (agent %s, iteration %d): %w", a.config.Name, iteration+1, err)
		}
		a.stats.RecordLLMCall(stats)

		if len(resp.ToolCalls) == 0 {
			slog.Debug("agent final answer",
				"agent", a.config.Name,
				"iteration", iteration+1,
				"content_length", len(resp.Content),
			)
			return resp.Content, nil
		}
		lastContent = resp.Content

		// Delegation consumes the turn: the sub-agent's reply is the reply.
		for _, call := range resp.ToolCalls {
			if sub, ok := a.subMap[call.Function.Name]; ok {
				a.stats.RecordDelegation()
				message := delegateMessage(call.Function.Arguments, input)
				slog.Info("agent delegating turn",
					"agent", a.config.Name,
					"to", sub.Name(),
				)
				return sub.Run(ctx, message)
			}
		}

		messages = append(messages, llm.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			result := a.executeTool(ctx, call.Function.Name, call.Function.Arguments)
			messages = append(messages, llm.Message{
				Role:       "tool",
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	slog.Warn("agent iteration budget exhausted",
		"agent", a.config.Name,
		"max_iterations", a.config.MaxIterations,
	)
	if lastContent != "" {
		return lastContent, nil
	}
	return "", fmt.Errorf("agent %s made no progress after %d iterations", a.config.Name, a.config.MaxIterations)
}

func (a *Agent) executeTool(ctx context.Context, name, input string) string {
	tool, ok := a.toolMap[name]
	if !ok {
		slog.Warn("agent requested unknown tool", "agent", a.config.Name, "tool", name)
		return fmt.Sprintf("Error: tool %q not found", name)
	}

	a.stats.RecordToolCall()
	toolStart := time.Now()
	result, err := tool.Run(ctx, input)
	slog.Debug("tool execution completed",
		"agent", a.config.Name,
		"tool", name,
		"duration_ms", time.Since(toolStart).Milliseconds(),
		"success", err == nil,
	)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return result
}

// delegateMessage extracts the forwarded message from the delegation call
// arguments, falling back to the original input when absent.
func delegateMessage(arguments, fallback string) string {
	var args struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err == nil && args.Message != "" {
		return args.Message
	}
	return fallback
}
