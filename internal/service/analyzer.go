package service

import (
	"strings"
	"unicode"
)

// ContentAnalyzer computes writing metrics for document content.
// It is stateless and safe for concurrent use.
type ContentAnalyzer struct{}

// NewContentAnalyzer creates a new content analyzer
func NewContentAnalyzer() *ContentAnalyzer {
	return &ContentAnalyzer{}
}

// CountWords counts whitespace-delimited tokens after trimming.
// Blank content counts zero.
func (a *ContentAnalyzer) CountWords(content string) int {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return 0
	}

	words := strings.FieldsFunc(trimmed, unicode.IsSpace)
	return len(words)
}

// CountCharacters counts the runes in content with all whitespace removed.
// Blank content counts zero.
func (a *ContentAnalyzer) CountCharacters(content string) int {
	count := 0
	for _, r := range content {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}
