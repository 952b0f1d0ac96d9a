package assistant

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/mindwell-ai/mindwell/ai/agent"
	"github.com/mindwell-ai/mindwell/ai/llm"
	"github.com/mindwell-ai/mindwell/store"
)

// NewJournalPipeline builds the three-stage journal analysis flow:
// emotion extraction, pattern analysis, then the user-facing insight.
//
// The journal entry is persisted by the pipeline itself before the final
// stage runs, so storage never depends on how the model phrases its reply.
func NewJournalPipeline(llmService llm.Service, st *store.Store) *agent.Pipeline {
	stages := []agent.Stage{
		{
			Name:        "emotion_extractor",
			Instruction: emotionExtractorInstruction,
			OutputKey:   "emotion_data",
		},
		{
			Name:        "pattern_analyzer",
			Instruction: patternAnalyzerInstruction,
			OutputKey:   "patterns_found",
		},
		{
			Name:        "insight_generator",
			Instruction: insightGeneratorInstruction,
		},
	}

	beforeFinal := func(ctx context.Context, input string, outputs map[string]string) error {
		userID, ok := agent.UserIDFromContext(ctx)
		if !ok {
			return errors.New("no user identity attached to this call")
		}

		emotions := ParseEmotionData(outputs["emotion_data"])
		patterns := ParsePatternData(outputs["patterns_found"])

		// The extractor is asked to echo the entry, but the raw input is
		// the source of truth when it doesn't.
		entryText := emotions.OriginalEntry
		if entryText == "" {
			entryText = input
		}

		entry, err := st.AddJournalEntry(ctx, userID, store.JournalEntry{
			Entry:    entryText,
			Emotions: emotions.PrimaryEmotions,
			Insight:  patterns.KeyInsight,
			Action:   patterns.SuggestedAction,
		})
		if err != nil {
			return errors.Wrap(err, "store journal entry")
		}
		slog.Info("journal entry stored",
			"user_id", userID,
			"entry_id", entry.ID,
			"emotions", len(entry.Emotions),
		)
		return nil
	}

	return agent.NewPipeline(
		llmService,
		"journal_analyzer",
		"Analyzes journal entries: extracts emotions, finds patterns, and replies with a personal insight.",
		stages,
		beforeFinal,
	)
}
