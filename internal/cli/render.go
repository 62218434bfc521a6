package cli

import (
	"fmt"
	"strings"

	"certquiz/internal/bank"
	"certquiz/internal/session"
)

func (a *app) render() {
	view := a.ctrl.View()
	switch view.Phase {
	case session.PhaseTopicSelect:
		a.renderMenu()
	case session.PhaseInProgress:
		a.renderQuestion(view)
	case session.PhaseFinished:
		a.renderResults(view)
	}
	a.prompt()
}

func (a *app) renderMenu() {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Choose a topic:")
	for idx, topic := range a.ctrl.Topics() {
		fmt.Fprintf(a.out, "  %d. %s (%s)\n", idx+1, topic.Name, plural(topic.QuestionCount, "question"))
	}
	fmt.Fprintln(a.out, "Enter a number or a name, q to quit.")
}

func (a *app) renderQuestion(view session.View) {
	fmt.Fprintln(a.out)

	header := fmt.Sprintf("Question %d/%d", view.Index+1, view.Total)
	if view.Topic != "" {
		header = "[" + view.Topic + "] " + header
	}
	if view.Timed {
		header += "   Time left: " + formatSeconds(view.RemainingSeconds)
	}
	fmt.Fprintln(a.out, header)
	fmt.Fprintln(a.out, view.Question.Prompt)
	fmt.Fprintln(a.out)

	for idx, option := range view.Question.Options {
		marker := " "
		if idx == view.Pending {
			marker = "*"
		}
		fmt.Fprintf(a.out, " %s %s. %s\n", marker, bank.Letter(idx), option)
	}
	fmt.Fprintln(a.out)

	optionCount := len(view.Question.Options)
	commands := []string{"A-" + bank.Letter(optionCount-1) + " select"}
	switch {
	case !view.HasPending():
	case view.IsLast():
		commands = append(commands, commandLabel(optionCount, "next", "submit"))
	default:
		commands = append(commands, commandLabel(optionCount, "next", "next"))
	}
	if view.CanGoBack() {
		commands = append(commands, commandLabel(optionCount, "prev", "prev"))
	}
	commands = append(commands, commandLabel(optionCount, "finish", "finish"))
	if view.Timed {
		commands = append(commands, commandLabel(optionCount, "time", "time"))
	}
	commands = append(commands, commandLabel(optionCount, "quit", "quit"))
	fmt.Fprintf(a.out, "Answered %d/%d. %s\n", view.Answered, view.Total, strings.Join(commands, ", "))
}

func (a *app) renderResults(view session.View) {
	score, err := a.ctrl.Score()
	if err != nil {
		fmt.Fprintln(a.out, err)
		return
	}
	review, err := a.ctrl.Review()
	if err != nil {
		fmt.Fprintln(a.out, err)
		return
	}

	fmt.Fprintln(a.out)
	if view.Topic != "" {
		fmt.Fprintf(a.out, "Results: %s\n", view.Topic)
	} else {
		fmt.Fprintln(a.out, "Results")
	}
	fmt.Fprintf(a.out, "Score: %d/%d (%d%%)\n", score.Correct, score.Total, score.Percentage)

	for idx, item := range review {
		fmt.Fprintln(a.out)
		fmt.Fprintf(a.out, "%d. %s\n", idx+1, item.Question.Prompt)

		correct := optionLabel(item.Question, item.Question.CorrectIndex)
		switch {
		case !item.Answered():
			fmt.Fprintln(a.out, "   Your answer: not answered")
		case item.IsCorrect():
			fmt.Fprintf(a.out, "   Your answer: %s (correct)\n", optionLabel(item.Question, item.Chosen))
		default:
			fmt.Fprintf(a.out, "   Your answer: %s (wrong)\n", optionLabel(item.Question, item.Chosen))
		}
		if !item.IsCorrect() {
			fmt.Fprintf(a.out, "   Correct answer: %s\n", correct)
		}
		if item.Question.Explanation != "" {
			fmt.Fprintf(a.out, "   %s\n", item.Question.Explanation)
		}
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, a.resultsCommands())
}

// commandKey is the first letter of word, or the whole word when that
// letter is also an option of the current question.
func commandKey(optionCount int, word string) string {
	if _, ok := bank.ParseLetter(word[:1], optionCount); ok {
		return word
	}
	return word[:1]
}

func commandKeys(optionCount int, words ...string) []string {
	keys := make([]string, 0, len(words))
	for _, word := range words {
		keys = append(keys, commandKey(optionCount, word))
	}
	return keys
}

func commandLabel(optionCount int, word, action string) string {
	key := commandKey(optionCount, word)
	if key == action {
		return key
	}
	return key + " " + action
}

func (a *app) resultsCommands() string {
	if a.fixed {
		return "Enter r to retake or q to quit."
	}
	return "Enter r to retake, m for the topic menu or q to quit."
}

func optionLabel(q bank.Question, index int) string {
	if index < 0 || index >= len(q.Options) {
		return ""
	}
	return bank.Letter(index) + ". " + q.Options[index]
}

func formatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
