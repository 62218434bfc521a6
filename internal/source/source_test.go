package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"certquiz/internal/bank"
	"certquiz/internal/bank/sqlite"
	"certquiz/internal/httpapi"
)

func TestParse(t *testing.T) {
	tests := []struct {
		value     string
		kind     Kind
		location string
	}{
		{value: "", kind: KindBuiltin},
		{value: "Builtin", kind: KindBuiltin},
		{value: "bank.json", kind: KindFile, location: "bank.json"},
		{value: "dir/bank.YML", kind: KindFile, location: "dir/bank.YML"},
		{value: "sqlite:quiz.db", kind: KindSQLite, location: "quiz.db"},
		{value: "https://quiz.example.com", kind: KindHTTP, location: "https://quiz.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			kind, location, err := Parse(tt.value)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.value, err)
			}
			if kind != tt.kind || location != tt.location {
				t.Fatalf("Parse(%q) = (%s, %q), want (%s, %q)", tt.value, kind, location, tt.kind, tt.location)
			}
		})
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, value := range []string{"bank.txt", "sqlite:", "ftp://host"} {
		if _, _, err := Parse(value); !errors.Is(err, ErrUnknownSource) {
			t.Fatalf("Parse(%q) err = %v, want ErrUnknownSource", value, err)
		}
	}
}

func TestOpenBuiltin(t *testing.T) {
	b, err := Open(context.Background(), Builtin, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !b.Has(bank.BuiltinTopic) {
		t.Fatalf("builtin bank missing %q", bank.BuiltinTopic)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	body := `topics:
  - name: Trivia
    questions:
      - question: "1+1?"
        options: ["1", "2"]
        correct_index: 1
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write bank: %v", err)
	}

	b, err := Open(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	questions, ok := b.Questions("Trivia")
	if !ok || len(questions) != 1 || questions[0].CorrectIndex != 1 {
		t.Fatalf("unexpected bank contents: %+v", questions)
	}
}

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.db")
	store, err := sqlite.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if err := store.SaveBank(context.Background(), bank.Builtin(), "builtin"); err != nil {
		t.Fatalf("SaveBank failed: %v", err)
	}
	_ = store.Close()

	b, err := Open(context.Background(), "sqlite:"+path, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if b.Len() != bank.Builtin().Len() {
		t.Fatalf("loaded %d topics, want %d", b.Len(), bank.Builtin().Len())
	}
}

func TestOpenHTTP(t *testing.T) {
	server := httptest.NewServer(httpapi.NewRouter(bank.Builtin(), nil))
	defer server.Close()

	b, err := Open(context.Background(), server.URL, Options{HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	want := bank.Builtin().Topics()
	got := b.Topics()
	if len(got) != len(want) || got[0] != want[0] {
		t.Fatalf("topics = %v, want %v", got, want)
	}
}

func TestOpenHTTPUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	if _, err := Open(context.Background(), url, Options{}); err == nil {
		t.Fatalf("expected error for closed server")
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing.json"), Options{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
