package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"certquiz/internal/bank"
	"certquiz/internal/cli"
	"certquiz/internal/config"
	"certquiz/internal/source"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	bankSource := flag.String("source", cfg.BankSource, "question bank: builtin, a .json/.yaml file, sqlite:<path> or a quiz-service URL")
	topic := flag.String("topic", cfg.Topic, "start directly on this topic")
	fixed := flag.Bool("fixed", false, "run -topic as a single question set without the topic menu")
	timed := flag.Bool("timed", cfg.Timed, "enable the countdown")
	seconds := flag.Int("seconds", cfg.SecondsPerQuestion, "countdown seconds per question")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := source.Open(ctx, *bankSource, source.Options{
		HTTPTimeout: cfg.HTTPTimeout,
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	runCfg := cli.Config{
		In:                 os.Stdin,
		Out:                os.Stdout,
		Bank:               b,
		Topic:              *topic,
		Timed:              *timed,
		SecondsPerQuestion: *seconds,
		Logger:             logger,
	}
	if *fixed {
		questions, ok := b.Questions(*topic)
		if !ok {
			fmt.Fprintf(os.Stderr, "error: %v: %q\n", bank.ErrTopicNotFound, *topic)
			os.Exit(1)
		}
		runCfg.Bank = nil
		runCfg.Topic = ""
		runCfg.Questions = questions
	}

	if err := cli.Run(ctx, runCfg); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
