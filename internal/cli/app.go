// Package cli is the terminal front-end of a quiz session.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"certquiz/internal/bank"
	"certquiz/internal/session"
)

type Config struct {
	In  io.Reader
	Out io.Writer

	// Bank feeds the topic menu. When Bank is nil, Questions is run as a
	// single fixed set without a menu.
	Bank      *bank.Bank
	Questions []bank.Question
	// Topic, when set, skips the menu on the first attempt.
	Topic string

	Timed              bool
	SecondsPerQuestion int
	Clock              session.Clock
	Logger             *slog.Logger
}

type app struct {
	out    io.Writer
	ctrl   *session.Controller
	fixed  bool
	logger *slog.Logger
}

// Run drives one controller until the user quits, the input ends or ctx is
// cancelled. A countdown expiry is announced as soon as it happens, without
// waiting for input.
func Run(ctx context.Context, cfg Config) error {
	if cfg.In == nil || cfg.Out == nil {
		return errors.New("input and output are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	expired := make(chan session.Score, 1)
	sessionCfg := session.Config{
		Timed:              cfg.Timed,
		SecondsPerQuestion: cfg.SecondsPerQuestion,
		Clock:              cfg.Clock,
		Logger:             logger,
		OnExpire: func(score session.Score) {
			select {
			case expired <- score:
			default:
			}
		},
	}

	var (
		ctrl *session.Controller
		err  error
	)
	if cfg.Bank == nil {
		ctrl, err = session.NewFixedController(cfg.Questions, sessionCfg)
	} else {
		ctrl, err = session.NewTopicController(cfg.Bank, sessionCfg)
	}
	if err != nil {
		return err
	}
	defer ctrl.Close()

	a := &app{out: cfg.Out, ctrl: ctrl, fixed: cfg.Bank == nil, logger: logger}
	if cfg.Topic != "" && !a.fixed {
		if err := ctrl.SelectTopic(cfg.Topic); err != nil {
			return err
		}
	}

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go readLines(cfg.In, lines, done)

	a.render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case score := <-expired:
			// A retake may already have started on a late expiry.
			if ctrl.View().Phase != session.PhaseFinished {
				continue
			}
			logger.Debug("countdown expired", "correct", score.Correct, "total", score.Total)
			fmt.Fprintln(a.out, "\nTime's up! Your answers have been submitted.")
			a.render()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(a.out)
				return nil
			}
			if a.handle(line) {
				fmt.Fprintln(a.out, "Goodbye.")
				return nil
			}
		}
	}
}

func readLines(in io.Reader, lines chan<- string, done <-chan struct{}) {
	defer close(lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}
}

// handle applies one input line and reports whether the user quit.
func (a *app) handle(line string) bool {
	input := strings.TrimSpace(line)
	command := strings.ToLower(input)
	if command == "" {
		a.prompt()
		return false
	}

	view := a.ctrl.View()
	if view.Phase == session.PhaseInProgress {
		return a.handleQuestion(view, command)
	}
	if command == "q" || command == "quit" {
		return true
	}

	switch view.Phase {
	case session.PhaseTopicSelect:
		a.handleTopic(input)
	case session.PhaseFinished:
		a.handleResults(command)
	}
	return false
}

func (a *app) handleTopic(input string) {
	topics := a.ctrl.Topics()

	name := ""
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(topics) {
			name = topics[n-1].Name
		}
	} else {
		for _, topic := range topics {
			if strings.EqualFold(topic.Name, input) {
				name = topic.Name
				break
			}
		}
	}

	if name == "" {
		a.hint(fmt.Sprintf("Unknown topic %q. Enter a number from 1 to %d or a topic name.", input, len(topics)))
		return
	}
	if err := a.ctrl.SelectTopic(name); err != nil {
		a.hint(err.Error())
		return
	}
	a.render()
}

// handleQuestion reports whether the user quit. A single letter inside the
// option range always selects that option; the long command words work
// everywhere.
func (a *app) handleQuestion(view session.View, command string) bool {
	optionCount := len(view.Question.Options)
	if index, ok := bank.ParseLetter(command, optionCount); ok {
		if err := a.ctrl.SelectAnswer(index); err != nil {
			a.hint(err.Error())
			return false
		}
		a.render()
		return false
	}

	switch command {
	case "q", "quit":
		return true
	case "n", "next":
		if err := a.ctrl.Next(); err != nil {
			if errors.Is(err, session.ErrNoSelection) {
				a.hint("Select an answer first.")
				return false
			}
			a.hint(err.Error())
			return false
		}
		a.render()
	case "p", "prev", "previous":
		if err := a.ctrl.Previous(); err != nil {
			a.hint("Already at the first question.")
			return false
		}
		a.render()
	case "f", "finish":
		if err := a.ctrl.Finish(); err != nil {
			a.hint(err.Error())
			return false
		}
		a.render()
	case "t", "time":
		if !view.Timed {
			a.hint("This quiz is not timed.")
			return false
		}
		a.hint("Time left: " + formatSeconds(view.RemainingSeconds))
	default:
		a.hint(fmt.Sprintf("Enter a letter A-%s, or %s.",
			bank.Letter(optionCount-1),
			strings.Join(commandKeys(optionCount, "next", "prev", "finish", "time", "quit"), ", "),
		))
	}
	return false
}

func (a *app) handleResults(command string) {
	switch command {
	case "r", "retake":
		if err := a.ctrl.Retake(); err != nil {
			a.hint(err.Error())
			return
		}
		a.render()
	case "m", "menu":
		if a.fixed {
			a.hint("This quiz has no topic menu.")
			return
		}
		a.ctrl.Reset()
		a.render()
	default:
		a.hint(a.resultsCommands())
	}
}

func (a *app) hint(message string) {
	fmt.Fprintln(a.out, message)
	a.prompt()
}

func (a *app) prompt() {
	fmt.Fprint(a.out, "> ")
}
