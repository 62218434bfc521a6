// quiz-import loads questions into the SQLite bank, either from a bank file
// or from OpenTriviaDB, and exports the stored bank back to a file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"certquiz/internal/bank"
	"certquiz/internal/bank/sqlite"
	"certquiz/internal/config"
	"certquiz/internal/opentdb"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	dbPath := flag.String("db", cfg.DBPath, "SQLite bank path")
	file := flag.String("file", "", "import every topic of a .json/.yaml bank file")
	builtin := flag.Bool("builtin", false, "import the built-in AWS bank")
	fromOpenTDB := flag.Bool("opentdb", false, "import questions from OpenTriviaDB")
	amount := flag.Int("amount", 10, "number of OpenTriviaDB questions")
	category := flag.Int("category", 0, "OpenTriviaDB category id, 0 for any")
	topic := flag.String("topic", "", "topic name for OpenTriviaDB questions; defaults to one topic per category")
	exportPath := flag.String("export", "", "write the stored bank to a .json/.yaml file instead of importing")
	deleteTopic := flag.String("delete", "", "remove a topic from the stored bank instead of importing")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, importOptions{
		dbPath:   *dbPath,
		file:     *file,
		builtin:  *builtin,
		opentdb:  *fromOpenTDB,
		amount:   *amount,
		category: *category,
		topic:    *topic,
		export:   *exportPath,
		remove:   *deleteTopic,
	}); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}

type importOptions struct {
	dbPath   string
	file     string
	builtin  bool
	opentdb  bool
	amount   int
	category int
	topic    string
	export   string
	remove   string
}

func run(ctx context.Context, cfg *config.Config, opts importOptions) error {
	if opts.export != "" {
		return export(ctx, opts.dbPath, opts.export)
	}
	if opts.remove != "" {
		return remove(ctx, opts.dbPath, opts.remove)
	}

	imported, source, err := collect(ctx, cfg, opts)
	if err != nil {
		return err
	}

	store, err := sqlite.NewSQLiteStore(opts.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveBank(ctx, imported, source); err != nil {
		return err
	}

	for _, summary := range imported.Summaries() {
		slog.Info("topic imported",
			"db", opts.dbPath,
			"topic", summary.Name,
			"questions", summary.QuestionCount,
			"source", source,
		)
	}
	return nil
}

func export(ctx context.Context, dbPath, path string) error {
	format, ok := bank.FormatForPath(path)
	if !ok {
		return fmt.Errorf("unsupported export file %q", path)
	}

	store, err := sqlite.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	b, err := store.LoadBank(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bank.Encode(f, b, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	slog.Info("bank exported", "db", dbPath, "path", path, "topics", b.Len())
	return nil
}

func remove(ctx context.Context, dbPath, topic string) error {
	store, err := sqlite.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteTopic(ctx, topic); err != nil {
		return fmt.Errorf("delete %q: %w", topic, err)
	}
	slog.Info("topic deleted", "db", dbPath, "topic", topic)
	return nil
}

func collect(ctx context.Context, cfg *config.Config, opts importOptions) (*bank.Bank, string, error) {
	selected := 0
	for _, on := range []bool{opts.file != "", opts.builtin, opts.opentdb} {
		if on {
			selected++
		}
	}
	if selected != 1 {
		return nil, "", errors.New("choose exactly one of -file, -builtin or -opentdb")
	}

	switch {
	case opts.file != "":
		b, err := bank.LoadFile(opts.file)
		return b, "file", err
	case opts.builtin:
		return bank.Builtin(), "builtin", nil
	}

	client := opentdb.NewClientWithURL(cfg.OpenTDBURL, &http.Client{Timeout: cfg.HTTPTimeout})
	raw, err := client.FetchQuestions(ctx, opts.amount, opts.category)
	if err != nil {
		return nil, "", err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	questions := opentdb.BuildQuestions(raw, rng)
	if len(questions) == 0 {
		return nil, "", errors.New("opentdb returned no usable questions")
	}

	b := bank.New()
	order, groups := bank.GroupByCategory(questions)
	if name := strings.TrimSpace(opts.topic); name != "" || len(order) == 0 {
		if name == "" {
			name = "OpenTriviaDB"
		}
		err = b.Add(name, questions)
		return b, "opentdb", err
	}

	for _, name := range order {
		if err := b.Add(name, groups[name]); err != nil {
			return nil, "", err
		}
	}
	return b, "opentdb", nil
}
