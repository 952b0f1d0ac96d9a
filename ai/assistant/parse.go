package assistant

import "strings"

// EmotionData is the parsed output of the emotion extraction stage.
type EmotionData struct {
	PrimaryEmotions []string
	Intensity       string
	Triggers        []string
	Tone            string
	OriginalEntry   string
}

// PatternData is the parsed output of the pattern analysis stage.
type PatternData struct {
	Themes          []string
	Coping          string
	GrowthAreas     []string
	KeyInsight      string
	SuggestedAction string
}

// ParseEmotionData extracts the labelled fields from stage output. The
// format is model-produced, so parsing is tolerant: unknown labels are
// skipped and unlabelled lines continue the previous field.
func ParseEmotionData(s string) EmotionData {
	fields := parseLabelledFields(s, []string{
		"primary_emotions", "intensity", "triggers", "tone", "original_entry",
	})
	return EmotionData{
		PrimaryEmotions: splitList(fields["primary_emotions"]),
		Intensity:       stripBrackets(fields["intensity"]),
		Triggers:        splitList(fields["triggers"]),
		Tone:            stripBrackets(fields["tone"]),
		OriginalEntry:   stripBrackets(fields["original_entry"]),
	}
}

// ParsePatternData extracts the labelled fields from stage output.
func ParsePatternData(s string) PatternData {
	fields := parseLabelledFields(s, []string{
		"themes", "coping", "growth_areas", "key_insight", "suggested_action",
	})
	return PatternData{
		Themes:          splitList(fields["themes"]),
		Coping:          stripBrackets(fields["coping"]),
		GrowthAreas:     splitList(fields["growth_areas"]),
		KeyInsight:      stripBrackets(fields["key_insight"]),
		SuggestedAction: stripBrackets(fields["suggested_action"]),
	}
}

// parseLabelledFields scans "label: value" lines. Lines without a known
// label extend the value of the label seen last, so multi-line fields
// (notably original_entry) survive intact.
func parseLabelledFields(s string, labels []string) map[string]string {
	known := make(map[string]bool, len(labels))
	for _, l := range labels {
		known[l] = true
	}

	fields := make(map[string]string, len(labels))
	current := ""
	for _, line := range strings.Split(s, "\n") {
		label, value, found := cutLabel(line)
		if found && known[label] {
			current = label
			fields[current] = value
			continue
		}
		if current != "" && strings.TrimSpace(line) != "" {
			fields[current] += "\n" + line
		}
	}
	for k, v := range fields {
		fields[k] = strings.TrimSpace(v)
	}
	return fields
}

func cutLabel(line string) (label, value string, found bool) {
	before, after, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	label = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(before), "-")))
	label = strings.Trim(label, "*")
	if label == "" || strings.ContainsAny(label, " \t") {
		return "", "", false
	}
	return label, strings.TrimSpace(after), true
}

// stripBrackets removes the [value] wrapper models sometimes echo from the
// instruction template.
func stripBrackets(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// splitList parses a comma-separated, possibly bracketed list.
func splitList(s string) []string {
	s = stripBrackets(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
