package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/mindwell-ai/mindwell/ai/agent"
	"github.com/mindwell-ai/mindwell/store"
)

// NewCreateGoalWithRoutine returns the create_goal_with_routine tool.
// Goals start as pending_approval; the card asks the user to confirm.
func NewCreateGoalWithRoutine(st *store.Store) agent.Tool {
	return agent.NewNativeTool(
		"create_goal_with_routine",
		"Create a goal with an associated routine, pending user approval.",
		agent.ObjectSchema(map[string]any{
			"title":            agent.StringProperty("Short title for the goal (e.g., \"Morning Fitness\", \"Better Sleep\")"),
			"goal_description": agent.StringProperty("What the user wants to achieve"),
			"routine":          agent.StringProperty("The specific routine/steps to follow"),
			"frequency":        agent.StringProperty("How often (e.g., \"3x per week\", \"daily\", \"every morning\")"),
			"duration":         agent.StringProperty("How long to commit (e.g., \"1 month\", \"30 days\", \"2 weeks\")"),
			"start_date":       agent.StringProperty("When to start (YYYY-MM-DD format)"),
		}, "title", "goal_description", "routine", "frequency", "duration", "start_date"),
		func(ctx context.Context, input string) (string, error) {
			userID, err := requireUser(ctx)
			if err != nil {
				return "", err
			}
			var args struct {
				Title       string `json:"title"`
				Description string `json:"goal_description"`
				Routine     string `json:"routine"`
				Frequency   string `json:"frequency"`
				Duration    string `json:"duration"`
				StartDate   string `json:"start_date"`
			}
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}
			goal, err := st.CreateGoal(ctx, userID, store.CreateGoal{
				Title:       args.Title,
				Description: args.Description,
				Routine:     args.Routine,
				Frequency:   args.Frequency,
				Duration:    args.Duration,
				StartDate:   args.StartDate,
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf(`
📋 Goal Created (ID: %d) - Pending Your Approval

**%s**

🎯 Goal: %s

📅 Routine:
%s

⏰ Frequency: %s
⏳ Duration: %s
🚀 Start Date: %s

Type 'approve' to activate this goal, or tell me what you'd like to change.
`, goal.ID, goal.Title, goal.Description, goal.Routine, goal.Frequency, goal.Duration, goal.StartDate), nil
		},
	)
}

// NewApproveGoal returns the approve_goal tool. Approving twice is a no-op
// that still reports success.
func NewApproveGoal(st *store.Store) agent.Tool {
	return agent.NewNativeTool(
		"approve_goal",
		"Approve and activate a pending goal.",
		agent.ObjectSchema(map[string]any{
			"goal_id": agent.IntProperty("The ID of the goal to approve"),
		}, "goal_id"),
		func(ctx context.Context, input string) (string, error) {
			userID, err := requireUser(ctx)
			if err != nil {
				return "", err
			}
			var args struct {
				GoalID int `json:"goal_id"`
			}
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}
			goal, err := st.ApproveGoal(ctx, userID, args.GoalID)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Sprintf("❌ Goal ID %d not found.", args.GoalID), nil
			}
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("✅ Goal '%s' is now active! Let's make it happen! 🎉", goal.Title), nil
		},
	)
}

// NewGetGoal returns the get_goal tool.
func NewGetGoal(st *store.Store) agent.Tool {
	return agent.NewNativeTool(
		"get_goal",
		"Retrieve and display a specific goal by ID.",
		agent.ObjectSchema(map[string]any{
			"goal_id": agent.IntProperty("The ID of the goal to retrieve"),
		}, "goal_id"),
		func(ctx context.Context, input string) (string, error) {
			userID, err := requireUser(ctx)
			if err != nil {
				return "", err
			}
			var args struct {
				GoalID int `json:"goal_id"`
			}
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}
			goal, err := st.GetGoal(ctx, userID, args.GoalID)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Sprintf("❌ Goal ID %d not found.", args.GoalID), nil
			}
			if err != nil {
				return "", err
			}
			statusEmoji, statusText := "⏳", "Pending Approval"
			if goal.Approved {
				statusEmoji, statusText = "✅", "Active"
			}
			return fmt.Sprintf(`
%s Goal #%d: **%s** (%s)

🎯 Goal: %s

📅 Routine:
%s

⏰ Frequency: %s
⏳ Duration: %s
🚀 Start Date: %s
📆 Created: %s
`, statusEmoji, goal.ID, goal.Title, statusText, goal.Description, goal.Routine,
				goal.Frequency, goal.Duration, goal.StartDate, goal.CreatedAt.Format("2006-01-02")), nil
		},
	)
}

// NewListGoals returns the list_goals tool.
func NewListGoals(st *store.Store) agent.Tool {
	return agent.NewNativeTool(
		"list_goals",
		"List all goals for the user.",
		agent.ObjectSchema(map[string]any{}),
		func(ctx context.Context, _ string) (string, error) {
			userID, err := requireUser(ctx)
			if err != nil {
				return "", err
			}
			goals, err := st.ListGoals(ctx, userID)
			if err != nil {
				return "", err
			}
			if len(goals) == 0 {
				return "You don't have any goals yet. Let's create one!", nil
			}
			var b strings.Builder
			fmt.Fprintf(&b, "📋 Your Goals (%d):\n\n", len(goals))
			for _, goal := range goals {
				statusEmoji, statusText := "⏳", "Pending"
				if goal.Approved {
					statusEmoji, statusText = "✅", "Active"
				}
				fmt.Fprintf(&b, "%s #%d: **%s** - %s\n", statusEmoji, goal.ID, goal.Title, statusText)
				fmt.Fprintf(&b, "   %s\n", goal.Description)
				fmt.Fprintf(&b, "   %s | Start: %s\n\n", goal.Frequency, goal.StartDate)
			}
			b.WriteString("\nUse 'show goal #ID' to see full details of any goal.")
			return b.String(), nil
		},
	)
}

// NewUpdateGoalStatus returns the update_goal_status tool. The status set
// is closed; unknown statuses are rejected before any write happens.
func NewUpdateGoalStatus(st *store.Store) agent.Tool {
	return agent.NewNativeTool(
		"update_goal_status",
		"Update the status of a goal (active, completed, paused, cancelled).",
		agent.ObjectSchema(map[string]any{
			"goal_id": agent.IntProperty("The ID of the goal"),
			"status":  agent.StringProperty("New status (active, completed, paused, cancelled)"),
		}, "goal_id", "status"),
		func(ctx context.Context, input string) (string, error) {
			userID, err := requireUser(ctx)
			if err != nil {
				return "", err
			}
			var args struct {
				GoalID int    `json:"goal_id"`
				Status string `json:"status"`
			}
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}
			status, err := store.ParseGoalStatus(args.Status)
			if err != nil {
				return "", err
			}
			goal, err := st.UpdateGoalStatus(ctx, userID, args.GoalID, status)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Sprintf("❌ Goal ID %d not found.", args.GoalID), nil
			}
			if err != nil {
				return "", err
			}
			switch status {
			case store.GoalStatusCompleted:
				return fmt.Sprintf("🎉 Congratulations! Goal '%s' marked as completed!", goal.Title), nil
			case store.GoalStatusPaused:
				return fmt.Sprintf("⏸️ Goal '%s' paused. You can resume it anytime.", goal.Title), nil
			case store.GoalStatusCancelled:
				return fmt.Sprintf("🚫 Goal '%s' cancelled.", goal.Title), nil
			case store.GoalStatusActive:
				return fmt.Sprintf("✅ Goal '%s' is now active!", goal.Title), nil
			default:
				return fmt.Sprintf("✓ Goal status updated to: %s", status), nil
			}
		},
	)
}
