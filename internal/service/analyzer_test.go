package service

import (
	"testing"
)

func TestCountWords(t *testing.T) {
	analyzer := NewContentAnalyzer()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "empty", content: "", want: 0},
		{name: "blank", content: "   \t\n  ", want: 0},
		{name: "single word", content: "hello", want: 1},
		{name: "two words", content: "Hello world", want: 2},
		{name: "leading and trailing space", content: "  Hello world  ", want: 2},
		{name: "multiple spaces between words", content: "one   two    three", want: 3},
		{name: "newlines and tabs", content: "one\ntwo\tthree", want: 3},
		{name: "punctuation sticks to words", content: "Hello, world!", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyzer.CountWords(tt.content); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestCountCharacters(t *testing.T) {
	analyzer := NewContentAnalyzer()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "empty", content: "", want: 0},
		{name: "blank", content: " \n\t ", want: 0},
		{name: "hello world drops the space", content: "Hello world", want: 10},
		{name: "counts runes not bytes", content: "héllo wörld", want: 10},
		{name: "all whitespace stripped", content: " a\tb\nc ", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyzer.CountCharacters(tt.content); got != tt.want {
				t.Errorf("CountCharacters(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}
