package store

import (
	"strings"
	"time"
)

// Memory holds everything the assistant remembers about one user.
// The zero-value maps are never nil; use NewMemory to build one.
type Memory struct {
	PersonalDetails map[string]string   `json:"personal_details"`
	Preferences     map[string]string   `json:"preferences"`
	Therapeutic     TherapeuticPatterns `json:"therapeutic_patterns"`
	History         []string            `json:"history"`
	Interests       []string            `json:"interests"`
	// Extra holds values saved under keys outside the known set, so
	// arbitrary keys are accepted without an open-ended schema.
	Extra map[string]string `json:"extra,omitempty"`
	// JournalEntries are structured reflections written by the journal
	// analysis pipeline, newest last.
	JournalEntries []JournalEntry `json:"journal_entries,omitempty"`
}

// TherapeuticPatterns tracks which responses worked per emotional trigger.
type TherapeuticPatterns struct {
	Triggers        map[string]*TriggerHistory `json:"triggers"`
	PreferredStyles []string                   `json:"preferred_styles"`
	AvoidedStyles   []string                   `json:"avoided_styles"`
}

// TriggerHistory holds the response history for one normalized trigger.
type TriggerHistory struct {
	HelpfulResponses   []ResponseRecord `json:"helpful_responses"`
	UnhelpfulResponses []ResponseRecord `json:"unhelpful_responses"`
}

// ResponseRecord is one timestamped therapeutic response.
type ResponseRecord struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// JournalEntry is a stored reflection produced by the journal pipeline.
type JournalEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Entry     string    `json:"entry"`
	Emotions  []string  `json:"emotions"`
	Insight   string    `json:"insight"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMemory returns the default empty memory shape created on first access.
func NewMemory() *Memory {
	return &Memory{
		PersonalDetails: map[string]string{},
		Preferences:     map[string]string{},
		Therapeutic: TherapeuticPatterns{
			Triggers:        map[string]*TriggerHistory{},
			PreferredStyles: []string{},
			AvoidedStyles:   []string{},
		},
		History:   []string{},
		Interests: []string{},
		Extra:     map[string]string{},
	}
}

// Clone returns a deep copy, so callers can read memory without holding the
// record lock.
func (m *Memory) Clone() *Memory {
	c := NewMemory()
	for k, v := range m.PersonalDetails {
		c.PersonalDetails[k] = v
	}
	for k, v := range m.Preferences {
		c.Preferences[k] = v
	}
	for k, v := range m.Extra {
		c.Extra[k] = v
	}
	for k, v := range m.Therapeutic.Triggers {
		c.Therapeutic.Triggers[k] = &TriggerHistory{
			HelpfulResponses:   append([]ResponseRecord(nil), v.HelpfulResponses...),
			UnhelpfulResponses: append([]ResponseRecord(nil), v.UnhelpfulResponses...),
		}
	}
	c.Therapeutic.PreferredStyles = append(c.Therapeutic.PreferredStyles, m.Therapeutic.PreferredStyles...)
	c.Therapeutic.AvoidedStyles = append(c.Therapeutic.AvoidedStyles, m.Therapeutic.AvoidedStyles...)
	c.History = append(c.History, m.History...)
	c.Interests = append(c.Interests, m.Interests...)
	for _, e := range m.JournalEntries {
		e.Emotions = append([]string(nil), e.Emotions...)
		c.JournalEntries = append(c.JournalEntries, e)
	}
	return c
}

// NormalizeTrigger canonicalizes an emotional trigger key. "Stressed" and
// "stressed " index the same bucket.
func NormalizeTrigger(trigger string) string {
	return strings.ToLower(strings.TrimSpace(trigger))
}
