package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mindwell-ai/mindwell/ai/agent"
)

// NewGetCurrentDatetime returns the get_current_datetime tool. A nil clock
// uses time.Now.
func NewGetCurrentDatetime(clock func() time.Time) agent.Tool {
	if clock == nil {
		clock = time.Now
	}
	return agent.NewNativeTool(
		"get_current_datetime",
		"Get the current date and time. Use this to calculate relative dates like 'tomorrow' or 'next Friday'.",
		agent.ObjectSchema(map[string]any{}),
		func(_ context.Context, _ string) (string, error) {
			now := clock()
			return fmt.Sprintf("Date: %s (%s), Time: %s",
				now.Format("2006-01-02"), now.Weekday(), now.Format("15:04")), nil
		},
	)
}
