package grammar

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed misspellings.yaml
var misspellingsYAML []byte

// misspellings maps common misspellings to their corrections. Loaded once
// at startup from the embedded dictionary.
var misspellings = loadMisspellings()

func loadMisspellings() map[string]string {
	dict := map[string]string{}
	if err := yaml.Unmarshal(misspellingsYAML, &dict); err != nil {
		// The dictionary is compiled in; a parse failure is a build defect
		panic(fmt.Sprintf("grammar: parse embedded misspellings: %v", err))
	}
	return dict
}

// FallbackCheck runs the rule-based heuristic grammar check used when the
// AI endpoint is unavailable. It returns a human-readable bullet list of
// findings, or a neutral message when nothing matched.
func FallbackCheck(text string) string {
	var findings []string

	if strings.Contains(text, "  ") {
		findings = append(findings, "• Multiple spaces detected")
	}

	if !endsWithSentencePunctuation(text) {
		findings = append(findings, "• Consider ending with proper punctuation")
	}

	lower := strings.ToLower(text)
	hits := make([]string, 0, len(misspellings))
	for wrong := range misspellings {
		if strings.Contains(lower, wrong) {
			hits = append(hits, wrong)
		}
	}
	// Deterministic output regardless of map iteration order
	sort.Strings(hits)
	for _, wrong := range hits {
		findings = append(findings, fmt.Sprintf("• Possible misspelling: '%s' (should be '%s')", wrong, misspellings[wrong]))
	}

	if len(findings) == 0 {
		return "Basic grammar check passed. AI analysis unavailable."
	}

	return "Basic grammar check found some issues:\n" + strings.Join(findings, "\n")
}

// endsWithSentencePunctuation reports whether the text, ignoring trailing
// whitespace, ends in '.', '!' or '?'.
func endsWithSentencePunctuation(text string) bool {
	trimmed := strings.TrimRight(text, " \t\r\n")
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}
