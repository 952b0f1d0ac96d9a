// Package agent provides the runtime for LLM-driven agents: the tool-calling
// loop, delegation between agents, and the fixed sequential pipeline.
package agent

import (
	"context"

	"github.com/mindwell-ai/mindwell/ai/llm"
)

// Tool is a callable operation an agent can expose to the LLM.
// Input is the raw JSON argument string produced by the model; output is a
// human-readable string. Tool-level failures (not-found lookups, invalid
// values) are reported inside the returned string, not as errors; the error
// return is reserved for infrastructure failures.
type Tool interface {
	// Name returns the tool name.
	Name() string

	// Description returns the tool description shown to the LLM.
	Description() string

	// Parameters returns the JSON Schema for the tool's input parameters.
	Parameters() map[string]any

	// Run executes the tool.
	Run(ctx context.Context, input string) (string, error)
}

// NativeTool implements Tool with direct function execution.
type NativeTool struct {
	execute     func(ctx context.Context, input string) (string, error)
	params      map[string]any
	name        string
	description string
}

// NewNativeTool creates a new NativeTool.
func NewNativeTool(
	name string,
	description string,
	parameters map[string]any,
	execute func(ctx context.Context, input string) (string, error),
) *NativeTool {
	return &NativeTool{
		name:        name,
		description: description,
		params:      parameters,
		execute:     execute,
	}
}

// Name returns the tool name.
func (t *NativeTool) Name() string {
	return t.name
}

// Description returns the tool description.
func (t *NativeTool) Description() string {
	return t.description
}

// Parameters returns the JSON Schema for parameters.
func (t *NativeTool) Parameters() map[string]any {
	return t.params
}

// Run executes the tool.
func (t *NativeTool) Run(ctx context.Context, input string) (string, error) {
	return t.execute(ctx, input)
}

func descriptorFor(t Tool) llm.ToolDescriptor {
	return llm.ToolDescriptor{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  t.Parameters(),
	}
}

// ObjectSchema builds a JSON Schema object from property definitions.
func ObjectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// StringProperty builds a string-typed schema property.
func StringProperty(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

// IntProperty builds an integer-typed schema property.
func IntProperty(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

// BoolProperty builds a boolean-typed schema property.
func BoolProperty(description string) map[string]any {
	return map[string]any{"type": "boolean", "description": description}
}
