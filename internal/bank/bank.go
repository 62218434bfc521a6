package bank

import (
	"fmt"
	"strings"
	"sync"
)

// TopicSummary is what a topic menu needs to know about a topic.
type TopicSummary struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
}

// Bank maps topic names to ordered question sets. It is read-only for
// callers; Add is only used while a bank is being assembled.
type Bank struct {
	mu     sync.RWMutex
	order  []string
	topics map[string][]Question
}

func New() *Bank {
	return &Bank{topics: make(map[string][]Question)}
}

// Add registers a topic. Questions without an id get one from
// MakeQuestionID. Re-adding a topic replaces its set but keeps its position.
func (b *Bank) Add(topic string, questions []Question) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return fmt.Errorf("topic name is required")
	}

	set := make([]Question, 0, len(questions))
	seen := make(map[string]struct{}, len(questions))
	for idx, q := range questions {
		if err := Validate(q); err != nil {
			return fmt.Errorf("topic %q question %d: %w", topic, idx+1, err)
		}
		q = cloneQuestion(q)
		if q.ID == "" {
			q.ID = MakeQuestionID(q)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("topic %q question %d: %w: duplicate id %q", topic, idx+1, ErrInvalidQuestion, q.ID)
		}
		seen[q.ID] = struct{}{}
		set = append(set, q)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.topics[topic]; !exists {
		b.order = append(b.order, topic)
	}
	b.topics[topic] = set
	return nil
}

func (b *Bank) Topics() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.order...)
}

func (b *Bank) Summaries() []TopicSummary {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]TopicSummary, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, TopicSummary{Name: name, QuestionCount: len(b.topics[name])})
	}
	return out
}

func (b *Bank) Has(topic string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.topics[topic]
	return ok
}

// Questions returns a copy of the topic's set.
func (b *Bank) Questions(topic string) ([]Question, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	set, ok := b.topics[topic]
	if !ok {
		return nil, false
	}
	out := make([]Question, len(set))
	for idx, q := range set {
		out[idx] = cloneQuestion(q)
	}
	return out, true
}

func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}
