// Package tools implements the callable functions exposed to the assistant's
// agents: task and reminder management, goal lifecycle, user memory, date
// lookup and web search. Every tool resolves the acting user from the call
// context; the model never supplies user identity.
package tools

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/mindwell-ai/mindwell/ai/agent"
)

func requireUser(ctx context.Context) (string, error) {
	userID, ok := agent.UserIDFromContext(ctx)
	if !ok {
		return "", errors.New("no user identity attached to this call")
	}
	return userID, nil
}

// decodeArgs parses the model-produced JSON argument string. An empty input
// decodes to the zero value, since models omit arguments for no-parameter
// tools.
func decodeArgs(input string, v any) error {
	if input == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(input), v); err != nil {
		return errors.Wrap(err, "invalid tool arguments")
	}
	return nil
}
