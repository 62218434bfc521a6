// Package session implements the quiz session state machine: topic
// selection, answer capture, navigation, the optional countdown and scoring.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"certquiz/internal/bank"
)

// Unanswered marks an empty answer slot and a null pending selection.
const Unanswered = -1

const (
	defaultSecondsPerQuestion = 60
	tickInterval              = time.Second
)

var (
	ErrInvalidSelection = errors.New("option index out of range")
	ErrInvalidTopic     = errors.New("unknown topic")
	ErrNotPermitted     = errors.New("operation not permitted in current phase")
	ErrNoSelection      = errors.New("no answer selected")
)

type Phase int

const (
	PhaseTopicSelect Phase = iota
	PhaseInProgress
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseTopicSelect:
		return "topic_select"
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type Config struct {
	// Timed enables the countdown of SecondsPerQuestion per question.
	Timed              bool
	SecondsPerQuestion int
	Clock              Clock
	Logger             *slog.Logger
	// OnExpire is called, without the controller lock held, when the
	// countdown reaches zero and finishes the attempt.
	OnExpire func(Score)
}

type Score struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// attempt is the state of one quiz attempt. It is replaced wholesale on
// every start, reset and retake.
type attempt struct {
	id        string
	topic     string
	questions []bank.Question
	current   int
	answers   []int
	pending   int
	remaining int
}

// Controller owns a single quiz session. All methods are safe for
// concurrent use; timer ticks arrive on the clock's goroutine.
type Controller struct {
	mu sync.Mutex

	bank  *bank.Bank
	fixed []bank.Question

	timed              bool
	secondsPerQuestion int
	clock              Clock
	logger             *slog.Logger
	onExpire           func(Score)

	phase     Phase
	state     attempt
	stopTimer func()
	timerGen  uint64
}

// NewTopicController starts in PhaseTopicSelect over the topics of b.
func NewTopicController(b *bank.Bank, cfg Config) (*Controller, error) {
	if b == nil {
		return nil, errors.New("question bank is required")
	}
	c := newController(cfg)
	c.bank = b
	c.phase = PhaseTopicSelect
	return c, nil
}

// NewFixedController runs a single question set. It starts directly in
// PhaseInProgress, with the countdown running when cfg.Timed is set.
func NewFixedController(questions []bank.Question, cfg Config) (*Controller, error) {
	fixed := make([]bank.Question, 0, len(questions))
	for idx, q := range questions {
		if err := bank.Validate(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", idx+1, err)
		}
		q.Options = append([]string(nil), q.Options...)
		fixed = append(fixed, q)
	}

	c := newController(cfg)
	c.fixed = fixed

	c.mu.Lock()
	c.startLocked("", c.fixed)
	c.mu.Unlock()
	return c, nil
}

func newController(cfg Config) *Controller {
	seconds := cfg.SecondsPerQuestion
	if seconds <= 0 {
		seconds = defaultSecondsPerQuestion
	}
	clock := cfg.Clock
	if clock == nil {
		clock = TickerClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		timed:              cfg.Timed,
		secondsPerQuestion: seconds,
		clock:              clock,
		logger:             logger,
		onExpire:           cfg.OnExpire,
		state:              attempt{pending: Unanswered},
	}
}

// SelectTopic starts an attempt on topic. An empty topic finishes at once.
func (c *Controller) SelectTopic(topic string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseTopicSelect || c.bank == nil {
		return fmt.Errorf("select topic in %s: %w", c.phase, ErrNotPermitted)
	}
	questions, ok := c.bank.Questions(topic)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
	}

	c.startLocked(topic, questions)
	return nil
}

// SelectAnswer sets the pending selection for the current question. It
// does not commit or advance.
func (c *Controller) SelectAnswer(optionIndex int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseInProgress {
		return fmt.Errorf("select answer in %s: %w", c.phase, ErrNotPermitted)
	}
	options := c.state.questions[c.state.current].Options
	if optionIndex < 0 || optionIndex >= len(options) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidSelection, optionIndex, len(options))
	}

	c.state.pending = optionIndex
	return nil
}

// Next commits the pending selection and moves forward, finishing the
// attempt on the last question. Revisited questions restore their
// committed answer as the pending selection.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseInProgress {
		return fmt.Errorf("next in %s: %w", c.phase, ErrNotPermitted)
	}
	if c.state.pending == Unanswered {
		return ErrNoSelection
	}

	c.state.answers[c.state.current] = c.state.pending
	if c.state.current == len(c.state.questions)-1 {
		c.finishLocked("completed")
		return nil
	}

	c.state.current++
	c.state.pending = c.state.answers[c.state.current]
	return nil
}

// Previous moves back one question. The selection pending on the question
// being left is dropped, not committed.
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseInProgress || c.state.current == 0 {
		return fmt.Errorf("previous in %s at question %d: %w", c.phase, c.state.current+1, ErrNotPermitted)
	}

	c.state.current--
	c.state.pending = c.state.answers[c.state.current]
	return nil
}

// Finish ends the attempt immediately without committing the pending
// selection.
func (c *Controller) Finish() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseInProgress {
		return fmt.Errorf("finish in %s: %w", c.phase, ErrNotPermitted)
	}
	c.finishLocked("finished early")
	return nil
}

// Tick applies one countdown second. It is ignored unless the countdown of
// the current attempt is running.
func (c *Controller) Tick() {
	c.mu.Lock()
	gen := c.timerGen
	c.mu.Unlock()
	c.tick(gen)
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if c.phase != PhaseInProgress || c.stopTimer == nil || gen != c.timerGen {
		c.mu.Unlock()
		return
	}

	c.state.remaining--
	if c.state.remaining > 0 {
		c.mu.Unlock()
		return
	}

	c.state.remaining = 0
	c.finishLocked("time expired")
	score := scoreAttempt(c.state)
	onExpire := c.onExpire
	c.mu.Unlock()

	if onExpire != nil {
		onExpire(score)
	}
}

// Score counts committed answers equal to the correct index. Unanswered
// slots count as incorrect.
func (c *Controller) Score() (Score, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseFinished {
		return Score{}, fmt.Errorf("score in %s: %w", c.phase, ErrNotPermitted)
	}
	return scoreAttempt(c.state), nil
}

// Answers returns a copy of the committed answers, Unanswered for empty
// slots.
func (c *Controller) Answers() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.state.answers...)
}

// Reset discards the attempt. The topic variant returns to topic
// selection; the fixed variant starts over on the same set.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	if c.bank != nil {
		c.logger.Debug("session reset", "attempt_id", c.state.id)
		c.state = attempt{pending: Unanswered}
		c.phase = PhaseTopicSelect
		return
	}
	c.startLocked("", c.fixed)
}

// Retake starts a new attempt on the topic just finished.
func (c *Controller) Retake() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseFinished {
		return fmt.Errorf("retake in %s: %w", c.phase, ErrNotPermitted)
	}
	if c.bank == nil {
		c.startLocked("", c.fixed)
		return nil
	}

	questions, ok := c.bank.Questions(c.state.topic)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, c.state.topic)
	}
	c.startLocked(c.state.topic, questions)
	return nil
}

// Close stops the countdown. The controller stays readable.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
}

// Topics lists the selectable topics; nil for the fixed variant.
func (c *Controller) Topics() []bank.TopicSummary {
	if c.bank == nil {
		return nil
	}
	return c.bank.Summaries()
}

func (c *Controller) startLocked(topic string, questions []bank.Question) {
	c.stopTimerLocked()

	answers := make([]int, len(questions))
	for idx := range answers {
		answers[idx] = Unanswered
	}
	c.state = attempt{
		id:        uuid.NewString(),
		topic:     topic,
		questions: questions,
		answers:   answers,
		pending:   Unanswered,
	}
	if c.timed {
		c.state.remaining = len(questions) * c.secondsPerQuestion
	}

	c.phase = PhaseInProgress
	c.logger.Debug("session started",
		"attempt_id", c.state.id,
		"topic", topic,
		"questions", len(questions),
		"timed", c.timed,
	)

	if len(questions) == 0 {
		c.finishLocked("no questions")
		return
	}
	if c.timed {
		c.startTimerLocked()
	}
}

func (c *Controller) finishLocked(reason string) {
	c.stopTimerLocked()
	c.phase = PhaseFinished

	score := scoreAttempt(c.state)
	c.logger.Debug("session finished",
		"attempt_id", c.state.id,
		"topic", c.state.topic,
		"reason", reason,
		"correct", score.Correct,
		"total", score.Total,
	)
}

func (c *Controller) startTimerLocked() {
	c.timerGen++
	gen := c.timerGen
	c.stopTimer = c.clock.Every(tickInterval, func() { c.tick(gen) })
}

func (c *Controller) stopTimerLocked() {
	if c.stopTimer != nil {
		c.stopTimer()
		c.stopTimer = nil
	}
	// Ticks already queued on the old subscription see a stale generation.
	c.timerGen++
}

func scoreAttempt(a attempt) Score {
	score := Score{Total: len(a.questions)}
	for idx, q := range a.questions {
		if idx < len(a.answers) && a.answers[idx] == q.CorrectIndex {
			score.Correct++
		}
	}
	if score.Total > 0 {
		score.Percentage = int(math.Round(100 * float64(score.Correct) / float64(score.Total)))
	}
	return score
}
