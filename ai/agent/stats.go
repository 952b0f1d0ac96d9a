package agent

import (
	"sync"

	"github.com/mindwell-ai/mindwell/ai/llm"
)

// Stats accumulates statistics for agent execution.
type Stats struct {
	mu               sync.Mutex
	LLMCallCount     int
	PromptTokens     int
	CompletionTokens int
	ToolCallCount    int
	DelegationCount  int
}

// RecordLLMCall records a single LLM call with its statistics.
func (s *Stats) RecordLLMCall(stats *llm.CallStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LLMCallCount++
	if stats != nil {
		s.PromptTokens += stats.PromptTokens
		s.CompletionTokens += stats.CompletionTokens
	}
}

// RecordToolCall records a tool invocation.
func (s *Stats) RecordToolCall() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ToolCallCount++
}

// RecordDelegation records a handoff to a sub-agent.
func (s *Stats) RecordDelegation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DelegationCount++
}

// Snapshot returns a copy of the current stats.
func (s *Stats) Snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		LLMCallCount:     s.LLMCallCount,
		PromptTokens:     s.PromptTokens,
		CompletionTokens: s.CompletionTokens,
		ToolCallCount:    s.ToolCallCount,
		DelegationCount:  s.DelegationCount,
	}
}
