package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mindwell-ai/mindwell/ai/agent"
	"github.com/mindwell-ai/mindwell/store"
)

// NewCreateTask returns the create_task tool.
func NewCreateTask(st *store.Store) agent.Tool {
	return agent.NewNativeTool(
		"create_task",
		"Create a task/todo item for the user.",
		agent.ObjectSchema(map[string]any{
			"title":    agent.StringProperty("Task description"),
			"due_date": agent.StringProperty("Optional due date (YYYY-MM-DD)"),
			"priority": agent.StringProperty("Task priority: low, medium or high (default medium)"),
		}, "title"),
		func(ctx context.Context, input string) (string, error) {
			userID, err := requireUser(ctx)
			if err != nil {
				return "", err
			}
			var args struct {
				Title    string `json:"title"`
				DueDate  string `json:"due_date"`
				Priority string `json:"priority"`
			}
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}
			priority, err := store.ParsePriority(args.Priority)
			if err != nil {
				return "", err
			}
			task, err := st.CreateTask(ctx, userID, store.CreateTask{
				Title:    args.Title,
				DueDate:  args.DueDate,
				Priority: priority,
			})
			if err != nil {
				return "", err
			}
			result := fmt.Sprintf("✓ Task created: %s", task.Title)
			if task.DueDate != "" {
				result += fmt.Sprintf(" (due: %s)", task.DueDate)
			}
			return result, nil
		},
	)
}

// NewGetTasks returns the get_tasks tool.
func NewGetTasks(st *store.Store) agent.Tool {
	return agent.NewNativeTool(
		"get_tasks",
		"List all tasks for the user.",
		agent.ObjectSchema(map[string]any{}),
		func(ctx context.Context, _ string) (string, error) {
			userID, err := requireUser(ctx)
			if err != nil {
				return "", err
			}
			tasks, err := st.ListTasks(ctx, userID)
			if err != nil {
				return "", err
			}
			if len(tasks) == 0 {
				return "You have no tasks.", nil
			}
			var b strings.Builder
			fmt.Fprintf(&b, "You have %d task(s):\n", len(tasks))
			for _, task := range tasks {
				b.WriteString(formatTaskLine(task))
			}
			return b.String(), nil
		},
	)
}

// NewScheduleReminder returns the schedule_reminder tool.
func NewScheduleReminder(st *store.Store) agent.Tool {
	return agent.NewNativeTool(
		"schedule_reminder",
		"Schedule a reminder or calendar event.",
		agent.ObjectSchema(map[string]any{
			"title": agent.StringProperty("Event/reminder title"),
			"date":  agent.StringProperty("Date (YYYY-MM-DD)"),
			"time":  agent.StringProperty("Time (HH:MM)"),
		}, "title", "date", "time"),
		func(ctx context.Context, input string) (string, error) {
			userID, err := requireUser(ctx)
			if err != nil {
				return "", err
			}
			var args struct {
				Title string `json:"title"`
				Date  string `json:"date"`
				Time  string `json:"time"`
			}
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}
			reminder, err := st.CreateReminder(ctx, userID, store.CreateReminder{
				Title: args.Title,
				Date:  args.Date,
				Time:  args.Time,
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("✓ Reminder set: %s on %s at %s", reminder.Title, reminder.Date, reminder.Time), nil
		},
	)
}

// NewGetReminders returns the get_reminders tool.
func NewGetReminders(st *store.Store) agent.Tool {
	return agent.NewNativeTool(
		"get_reminders",
		"List all reminders for the user.",
		agent.ObjectSchema(map[string]any{}),
		func(ctx context.Context, _ string) (string, error) {
			userID, err := requireUser(ctx)
			if err != nil {
				return "", err
			}
			reminders, err := st.ListReminders(ctx, userID)
			if err != nil {
				return "", err
			}
			if len(reminders) == 0 {
				return "You have no reminders scheduled.", nil
			}
			var b strings.Builder
			fmt.Fprintf(&b, "You have %d reminder(s):\n", len(reminders))
			for _, reminder := range reminders {
				b.WriteString(formatReminderLine(reminder))
			}
			return b.String(), nil
		},
	)
}

// NewGetAllItems returns the get_all_items tool, a combined view of tasks
// and reminders.
func NewGetAllItems(st *store.Store) agent.Tool {
	return agent.NewNativeTool(
		"get_all_items",
		"List all tasks and reminders for the user in one view.",
		agent.ObjectSchema(map[string]any{}),
		func(ctx context.Context, _ string) (string, error) {
			userID, err := requireUser(ctx)
			if err != nil {
				return "", err
			}
			tasks, err := st.ListTasks(ctx, userID)
			if err != nil {
				return "", err
			}
			reminders, err := st.ListReminders(ctx, userID)
			if err != nil {
				return "", err
			}
			if len(tasks) == 0 && len(reminders) == 0 {
				return "You have no tasks or reminders.", nil
			}
			var b strings.Builder
			if len(tasks) > 0 {
				fmt.Fprintf(&b, "\n📋 **Tasks** (%d):\n", len(tasks))
				for _, task := range tasks {
					b.WriteString(formatTaskLine(task))
				}
			}
			if len(reminders) > 0 {
				fmt.Fprintf(&b, "\n\n📅 **Reminders** (%d):\n", len(reminders))
				for _, reminder := range reminders {
					b.WriteString(formatReminderLine(reminder))
				}
			}
			return strings.TrimSpace(b.String()), nil
		},
	)
}

func formatTaskLine(task store.Task) string {
	dueInfo := ""
	if task.DueDate != "" {
		dueInfo = fmt.Sprintf(" (due: %s)", task.DueDate)
	}
	return fmt.Sprintf("\n• %s - Priority: %s%s", task.Title, task.Priority, dueInfo)
}

func formatReminderLine(reminder store.Reminder) string {
	return fmt.Sprintf("\n• %s - %s at %s", reminder.Title, reminder.Date, reminder.Time)
}
