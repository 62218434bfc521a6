package bank

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidQuestion = errors.New("invalid question")
	ErrTopicNotFound   = errors.New("topic not found")
)

// Question is a single multiple-choice record. It is never mutated once it
// has been added to a Bank.
type Question struct {
	ID           string   `json:"id,omitempty" yaml:"id,omitempty"`
	Prompt       string   `json:"question" yaml:"question"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correct_index" yaml:"correct_index"`
	Explanation  string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Category     string   `json:"category,omitempty" yaml:"category,omitempty"`
}

// Letter returns the display letter for an option index ("A" for 0).
func Letter(index int) string {
	if index < 0 || index >= 26 {
		return ""
	}
	return string(rune('A' + index))
}

// ParseLetter maps " b " to 1. It reports false for anything that is not a
// single letter inside the option range.
func ParseLetter(answer string, optionCount int) (int, bool) {
	letter := strings.ToUpper(strings.TrimSpace(answer))
	if len(letter) != 1 {
		return -1, false
	}
	index := int(letter[0]) - 'A'
	if index < 0 || index >= optionCount {
		return -1, false
	}
	return index, true
}

func Validate(q Question) error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: %q has %d options, need at least 2", ErrInvalidQuestion, q.Prompt, len(q.Options))
	}
	if len(q.Options) > 26 {
		return fmt.Errorf("%w: %q has %d options, at most 26 are supported", ErrInvalidQuestion, q.Prompt, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: %q correct index %d out of range", ErrInvalidQuestion, q.Prompt, q.CorrectIndex)
	}
	return nil
}

// MakeQuestionID derives a stable id from the prompt and the ordered options.
func MakeQuestionID(q Question) string {
	var keyBuilder strings.Builder
	keyBuilder.WriteString(q.Prompt)
	for _, option := range q.Options {
		keyBuilder.WriteString("|")
		keyBuilder.WriteString(option)
	}

	hash := sha1.Sum([]byte(keyBuilder.String()))
	return "q_" + hex.EncodeToString(hash[:])
}

// GroupByCategory splits questions into one set per category, keeping the
// order in which categories are first seen. Uncategorised questions are
// skipped.
func GroupByCategory(questions []Question) ([]string, map[string][]Question) {
	var order []string
	groups := make(map[string][]Question)
	for _, q := range questions {
		category := strings.TrimSpace(q.Category)
		if category == "" {
			continue
		}
		if _, ok := groups[category]; !ok {
			order = append(order, category)
		}
		groups[category] = append(groups[category], q)
	}
	return order, groups
}

func cloneQuestion(q Question) Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}
