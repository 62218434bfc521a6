// Package source resolves a bank source string to a question bank.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"certquiz/internal/bank"
	"certquiz/internal/bank/sqlite"
	"certquiz/internal/bankclient"
)

const (
	Builtin      = "builtin"
	sqlitePrefix = "sqlite:"
)

var ErrUnknownSource = errors.New("unknown bank source")

type Kind int

const (
	KindBuiltin Kind = iota
	KindFile
	KindSQLite
	KindHTTP
)

func (k Kind) String() string {
	switch k {
	case KindBuiltin:
		return "builtin"
	case KindFile:
		return "file"
	case KindSQLite:
		return "sqlite"
	case KindHTTP:
		return "http"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type Options struct {
	// HTTPClient is used for http(s) sources. A client with HTTPTimeout is
	// built when nil.
	HTTPClient  *http.Client
	HTTPTimeout time.Duration
	Logger      *slog.Logger
}

// Parse splits value into its kind and location. An empty value is the
// builtin bank.
func Parse(value string) (Kind, string, error) {
	value = strings.TrimSpace(value)
	lower := strings.ToLower(value)

	switch {
	case value == "" || lower == Builtin:
		return KindBuiltin, "", nil
	case strings.HasPrefix(lower, sqlitePrefix):
		path := strings.TrimSpace(value[len(sqlitePrefix):])
		if path == "" {
			return 0, "", fmt.Errorf("%w: sqlite path is required", ErrUnknownSource)
		}
		return KindSQLite, path, nil
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return KindHTTP, value, nil
	}

	if _, ok := bank.FormatForPath(value); ok {
		return KindFile, value, nil
	}
	return 0, "", fmt.Errorf("%w: %q", ErrUnknownSource, value)
}

// Open loads the bank that value names.
func Open(ctx context.Context, value string, opts Options) (*bank.Bank, error) {
	kind, location, err := Parse(value)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var b *bank.Bank
	switch kind {
	case KindBuiltin:
		b = bank.Builtin()
	case KindFile:
		b, err = bank.LoadFile(location)
	case KindSQLite:
		b, err = openSQLite(ctx, location)
	case KindHTTP:
		b, err = openHTTP(ctx, location, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s bank %q: %w", kind, location, err)
	}

	logger.Info("question bank loaded",
		"source", kind.String(),
		"location", location,
		"topics", b.Len(),
	)
	return b, nil
}

func openSQLite(ctx context.Context, path string) (*bank.Bank, error) {
	store, err := sqlite.NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		return nil, err
	}
	return store.LoadBank(ctx)
}

func openHTTP(ctx context.Context, baseURL string, opts Options) (*bank.Bank, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.HTTPTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return bankclient.NewHTTPClient(baseURL, httpClient).LoadBank(ctx)
}
