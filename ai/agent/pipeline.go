package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mindwell-ai/mindwell/ai/llm"
)

// Stage is one step of a sequential pipeline. Silent stages produce
// structured intermediate text stored under OutputKey; the final stage
// produces the user-facing reply.
type Stage struct {
	// Name identifies the stage in logs.
	Name string

	// Instruction is the system prompt for this stage.
	Instruction string

	// OutputKey stores the stage output for later stages. Empty for the
	// final stage, whose output goes to the user instead.
	OutputKey string
}

// BeforeFinalFunc runs after all silent stages and before the final stage.
// Pipelines use it for side effects that must happen regardless of how the
// final reply is phrased, such as persisting analysis results.
type BeforeFinalFunc func(ctx context.Context, input string, outputs map[string]string) error

// Pipeline runs a fixed sequence of LLM stages over a single input.
// Unlike Agent, control flow here is deterministic: every stage runs exactly
// once, in order, with no tools and no delegation.
type Pipeline struct {
	llm         llm.Service
	name        string
	description string
	stages      []Stage
	beforeFinal BeforeFinalFunc
	stats       Stats
}

// NewPipeline creates a sequential pipeline. The last stage is the
// user-facing one; all earlier stages must set OutputKey.
func NewPipeline(llmService llm.Service, name, description string, stages []Stage, beforeFinal BeforeFinalFunc) *Pipeline {
	return &Pipeline{
		llm:         llmService,
		name:        name,
		description: description,
		stages:      stages,
		beforeFinal: beforeFinal,
	}
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string {
	return p.name
}

// Description returns the pipeline description.
func (p *Pipeline) Description() string {
	return p.description
}

// Stats returns a snapshot of the accumulated stats.
func (p *Pipeline) Stats() Stats {
	return p.stats.Snapshot()
}

// Run executes all stages in order and returns the final stage's reply.
//
// Each stage sees the original input plus the outputs of every stage before
// it. If a silent stage fails the whole turn fails; partial results are
// never surfaced to the user.
func (p *Pipeline) Run(ctx context.Context, input string) (string, error) {
	if len(p.stages) == 0 {
		return "", fmt.Errorf("pipeline %s has no stages", p.name)
	}

	startTime := time.Now()
	outputs := make(map[string]string, len(p.stages))

	for i, stage := range p.stages {
		isFinal := i == len(p.stages)-1

		if isFinal && p.beforeFinal != nil {
			if err := p.beforeFinal(ctx, input, outputs); err != nil {
				return "", fmt.Errorf("pipeline %s pre-reply hook failed: %w", p.name, err)
			}
		}

		content, stats, err := p.llm.Chat(ctx, []llm.Message{
			{Role: "system", Content: stage.Instruction},
			{Role: "user", Content: p.stageInput(input, outputs)},
		})
		if err != nil {
			return "", fmt.Errorf("pipeline %s stage %s failed: %w", p.name, stage.Name, err)
		}
		p.stats.RecordLLMCall(stats)

		slog.Debug("pipeline stage completed",
			"pipeline", p.name,
			"stage", stage.Name,
			"output_length", len(content),
		)

		if isFinal {
			slog.Info("pipeline completed",
				"pipeline", p.name,
				"stages", len(p.stages),
				"duration_ms", time.Since(startTime).Milliseconds(),
			)
			return content, nil
		}
		outputs[stage.OutputKey] = content
	}

	// Unreachable: the final stage always returns above.
	return "", fmt.Errorf("pipeline %s produced no reply", p.name)
}

// stageInput composes the user message for a stage: the original input
// followed by every prior stage's output, labelled by key.
func (p *Pipeline) stageInput(input string, outputs map[string]string) string {
	var b strings.Builder
	b.WriteString(input)
	for _, stage := range p.stages {
		if stage.OutputKey == "" {
			continue
		}
		if out, ok := outputs[stage.OutputKey]; ok {
			b.WriteString("\n\n[")
			b.WriteString(stage.OutputKey)
			b.WriteString("]\n")
			b.WriteString(out)
		}
	}
	return b.String()
}
