package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/mindwell-ai/mindwell/ai/agent"
	"github.com/mindwell-ai/mindwell/store"
)

// NewLoadMemory returns the load_memory tool. Output is the full memory
// structure as JSON, which first access lazily creates.
func NewLoadMemory(st *store.Store) agent.Tool {
	return agent.NewNativeTool(
		"load_memory",
		"Load the user's memory: personal details, preferences, therapeutic patterns, history and interests.",
		agent.ObjectSchema(map[string]any{}),
		func(ctx context.Context, _ string) (string, error) {
			userID, err := requireUser(ctx)
			if err != nil {
				return "", err
			}
			memory, err := st.LoadMemory(ctx, userID)
			if err != nil {
				return "", err
			}
			payload, err := json.Marshal(map[string]any{
				"user_id": userID,
				"memory":  memory,
			})
			if err != nil {
				return "", errors.Wrap(err, "encode memory")
			}
			return string(payload), nil
		},
	)
}

// NewSaveToMemory returns the save_to_memory tool. Known keys route to
// their memory sub-field; anything else is accepted and stored too.
func NewSaveToMemory(st *store.Store) agent.Tool {
	return agent.NewNativeTool(
		"save_to_memory",
		"Save information to the user's memory. Key is the category (personal_details, preferences, history, interests, name).",
		agent.ObjectSchema(map[string]any{
			"key":   agent.StringProperty("Category (personal_details, preferences, history, interests, name)"),
			"value": agent.StringProperty("Value to store"),
		}, "key", "value"),
		func(ctx context.Context, input string) (string, error) {
			userID, err := requireUser(ctx)
			if err != nil {
				return "", err
			}
			var args struct {
				Key   string `json:"key"`
				Value string `json:"value"`
			}
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}
			if err := st.SaveToMemory(ctx, userID, args.Key, args.Value); err != nil {
				return "", err
			}
			return fmt.Sprintf("✓ Saved %s to memory", args.Key), nil
		},
	)
}

// NewSaveTherapeuticPattern returns the save_therapeutic_pattern tool,
// which tracks which responses helped per emotional trigger.
func NewSaveTherapeuticPattern(st *store.Store) agent.Tool {
	return agent.NewNativeTool(
		"save_therapeutic_pattern",
		"Record whether a therapeutic response helped for a given emotional trigger.",
		agent.ObjectSchema(map[string]any{
			"trigger":  agent.StringProperty("Emotional trigger (e.g., \"overwhelmed\", \"procrastinating\")"),
			"response": agent.StringProperty("The response given"),
			"helpful":  agent.BoolProperty("True if the user found it helpful, false otherwise"),
		}, "trigger", "response", "helpful"),
		func(ctx context.Context, input string) (string, error) {
			userID, err := requireUser(ctx)
			if err != nil {
				return "", err
			}
			var args struct {
				Trigger  string `json:"trigger"`
				Response string `json:"response"`
				Helpful  bool   `json:"helpful"`
			}
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}
			if err := st.SaveTherapeuticPattern(ctx, userID, args.Trigger, args.Response, args.Helpful); err != nil {
				return "", err
			}
			if args.Helpful {
				return fmt.Sprintf("✓ Marked as helpful for '%s'", args.Trigger), nil
			}
			return fmt.Sprintf("✓ Marked as unhelpful for '%s' - will try different approach next time", args.Trigger), nil
		},
	)
}
