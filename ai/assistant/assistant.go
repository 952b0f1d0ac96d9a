// Package assistant wires the agents, tools and journal pipeline into one
// conversational entry point.
package assistant

import (
	"context"
	"log/slog"
	"time"

	"github.com/mindwell-ai/mindwell/ai/agent"
	"github.com/mindwell-ai/mindwell/ai/llm"
	"github.com/mindwell-ai/mindwell/ai/metrics"
	"github.com/mindwell-ai/mindwell/ai/tools"
	"github.com/mindwell-ai/mindwell/store"
)

// Config holds assistant construction options.
type Config struct {
	// SearchProvider backs the search specialist. When nil the specialist
	// is not registered and research requests stay with the root agent.
	SearchProvider tools.SearchProvider

	// Exporter receives per-turn metrics. Optional.
	Exporter *metrics.PrometheusExporter

	// SessionIdleTimeout controls when inactive sessions are evicted.
	// Zero uses the default.
	SessionIdleTimeout time.Duration

	// Clock is used by the datetime tool. Nil uses time.Now.
	Clock func() time.Time
}

// Assistant is the conversational facade: one HandleTurn call per user
// message, routed through the root agent to the right specialist.
type Assistant struct {
	root     *agent.Agent
	sessions *agent.SessionManager
	exporter *metrics.PrometheusExporter
}

// New builds the full agent tree over the given LLM service and store.
func New(llmService llm.Service, st *store.Store, cfg Config) *Assistant {
	datetime := tools.NewGetCurrentDatetime(cfg.Clock)

	therapeutic := agent.New(llmService, agent.Config{
		Name:        "therapeutic_support",
		Description: "Provides empathetic emotional support and coping strategies with memory learning.",
		Instruction: therapeuticInstruction,
	}, []agent.Tool{
		tools.NewLoadMemory(st),
		tools.NewSaveTherapeuticPattern(st),
	})

	taskManager := agent.New(llmService, agent.Config{
		Name:        "task_manager",
		Description: "Manages concrete tasks, reminders, and scheduling with automatic date/time awareness.",
		Instruction: taskInstruction,
	}, []agent.Tool{
		datetime,
		tools.NewCreateTask(st),
		tools.NewGetTasks(st),
		tools.NewScheduleReminder(st),
		tools.NewGetReminders(st),
		tools.NewGetAllItems(st),
	})

	goalRefinement := agent.New(llmService, agent.Config{
		Name:        "goal_refinement",
		Description: "Quickly creates actionable goals with routines, shows and manages user goals.",
		Instruction: goalInstruction,
	}, []agent.Tool{
		datetime,
		tools.NewCreateGoalWithRoutine(st),
		tools.NewApproveGoal(st),
		tools.NewGetGoal(st),
		tools.NewListGoals(st),
		tools.NewUpdateGoalStatus(st),
	})

	journal := NewJournalPipeline(llmService, st)

	subAgents := []agent.Runner{therapeutic, taskManager, goalRefinement, journal}
	if cfg.SearchProvider != nil {
		subAgents = append(subAgents, agent.New(llmService, agent.Config{
			Name:        "search_specialist",
			Description: "Performs web searches for information, research, evidence-based content, and answers to factual questions.",
			Instruction: searchInstruction,
		}, []agent.Tool{
			tools.NewWebSearch(cfg.SearchProvider),
		}))
	} else {
		slog.Warn("no search provider configured, search specialist disabled")
	}

	root := agent.New(llmService, agent.Config{
		Name:        "personal_assistant",
		Description: "Personal AI assistant for emotional wellbeing, task management, goal setting, and daily support.",
		Instruction: rootInstruction,
	}, []agent.Tool{
		tools.NewLoadMemory(st),
		tools.NewSaveToMemory(st),
	}, subAgents...)

	return &Assistant{
		root:     root,
		sessions: agent.NewSessionManager(cfg.SessionIdleTimeout),
		exporter: cfg.Exporter,
	}
}

// HandleTurn processes one user message and returns the reply and the
// session id the turn ran under. An empty or foreign sessionID starts a
// fresh session for the user.
func (a *Assistant) HandleTurn(ctx context.Context, userID, sessionID, message string) (string, string, error) {
	session := a.sessions.GetOrCreate(userID, sessionID)
	ctx = agent.WithUserID(ctx, userID)

	input := message
	if history := session.History(); history != "" {
		input = history + "\nCurrent message: " + message
	}

	before := a.root.Stats()
	startTime := time.Now()
	reply, err := a.root.Run(ctx, input)
	elapsed := time.Since(startTime)

	if a.exporter != nil {
		after := a.root.Stats()
		a.exporter.RecordChatTurn("personal_assistant", elapsed, err == nil)
		a.exporter.RecordToolCalls("personal_assistant", after.ToolCallCount-before.ToolCallCount)
		a.exporter.RecordLLMUsage("personal_assistant",
			after.LLMCallCount-before.LLMCallCount,
			after.PromptTokens-before.PromptTokens,
			after.CompletionTokens-before.CompletionTokens,
		)
	}
	if err != nil {
		slog.Error("turn failed", "user_id", userID, "session_id", session.ID, "error", err)
		return "", session.ID, err
	}

	session.AddTurn(message, reply)
	slog.Info("turn completed",
		"user_id", userID,
		"session_id", session.ID,
		"duration_ms", elapsed.Milliseconds(),
	)
	return reply, session.ID, nil
}

// Close releases session resources.
func (a *Assistant) Close() {
	a.sessions.Close()
}
