package session

import "certquiz/internal/bank"

// View is a snapshot of the session for rendering.
type View struct {
	Phase     Phase
	AttemptID string
	Topic     string
	Index     int
	Total     int
	// Question is the current question; zero outside PhaseInProgress.
	Question         bank.Question
	Pending          int
	Answered         int
	Timed            bool
	RemainingSeconds int
}

func (v View) HasPending() bool {
	return v.Pending != Unanswered
}

func (v View) IsLast() bool {
	return v.Total > 0 && v.Index == v.Total-1
}

func (v View) CanGoBack() bool {
	return v.Phase == PhaseInProgress && v.Index > 0
}

// ReviewItem is one row of the results review.
type ReviewItem struct {
	Question bank.Question
	Chosen   int
}

func (r ReviewItem) Answered() bool {
	return r.Chosen != Unanswered
}

func (r ReviewItem) IsCorrect() bool {
	return r.Chosen == r.Question.CorrectIndex
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Phase:            c.phase,
		AttemptID:        c.state.id,
		Topic:            c.state.topic,
		Index:            c.state.current,
		Total:            len(c.state.questions),
		Pending:          c.state.pending,
		Timed:            c.timed,
		RemainingSeconds: c.state.remaining,
	}
	for _, answer := range c.state.answers {
		if answer != Unanswered {
			v.Answered++
		}
	}
	if c.phase == PhaseInProgress {
		v.Question = c.state.questions[c.state.current]
		v.Question.Options = append([]string(nil), v.Question.Options...)
	}
	return v
}

// Review pairs every question of the finished attempt with the committed
// answer.
func (c *Controller) Review() ([]ReviewItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseFinished {
		return nil, ErrNotPermitted
	}

	items := make([]ReviewItem, 0, len(c.state.questions))
	for idx, q := range c.state.questions {
		q.Options = append([]string(nil), q.Options...)
		items = append(items, ReviewItem{Question: q, Chosen: c.state.answers[idx]})
	}
	return items, nil
}
