package bank

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{name: "valid", q: Question{Prompt: "P", Options: []string{"A", "B"}, CorrectIndex: 1}},
		{name: "empty prompt", q: Question{Prompt: " ", Options: []string{"A", "B"}}, wantErr: true},
		{name: "one option", q: Question{Prompt: "P", Options: []string{"A"}}, wantErr: true},
		{name: "negative correct index", q: Question{Prompt: "P", Options: []string{"A", "B"}, CorrectIndex: -1}, wantErr: true},
		{name: "correct index past end", q: Question{Prompt: "P", Options: []string{"A", "B"}, CorrectIndex: 2}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.q)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidQuestion) {
					t.Fatalf("Validate() = %v, want ErrInvalidQuestion", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestParseLetter(t *testing.T) {
	tests := []struct {
		input  string
		count  int
		want   int
		wantOK bool
	}{
		{input: " b ", count: 4, want: 1, wantOK: true},
		{input: "A", count: 2, want: 0, wantOK: true},
		{input: "C", count: 2, want: -1},
		{input: "AB", count: 4, want: -1},
		{input: "", count: 4, want: -1},
		{input: "1", count: 4, want: -1},
	}

	for _, tc := range tests {
		got, ok := ParseLetter(tc.input, tc.count)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("ParseLetter(%q, %d) = (%d, %t), want (%d, %t)", tc.input, tc.count, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestMakeQuestionIDDiffersWhenOptionOrderDiffers(t *testing.T) {
	q1 := Question{Prompt: "Ordering matters", Options: []string{"One", "Two"}}
	q2 := Question{Prompt: "Ordering matters", Options: []string{"Two", "One"}}

	id1 := MakeQuestionID(q1)
	id2 := MakeQuestionID(q2)
	if id1 == id2 {
		t.Fatalf("expected different IDs for different option ordering, got %q", id1)
	}
	if !strings.HasPrefix(id1, "q_") || len(id1) != 42 {
		t.Fatalf("unexpected question id format: %q", id1)
	}
}

func TestBankAddKeepsOrderAndAssignsIDs(t *testing.T) {
	b := New()
	if err := b.Add("Second", []Question{{Prompt: "P", Options: []string{"A", "B"}}}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := b.Add("First", nil); err != nil {
		t.Fatalf("Add empty topic failed: %v", err)
	}
	if err := b.Add("Second", []Question{{ID: "x", Prompt: "Q", Options: []string{"A", "B"}}}); err != nil {
		t.Fatalf("re-Add failed: %v", err)
	}

	topics := b.Topics()
	if len(topics) != 2 || topics[0] != "Second" || topics[1] != "First" {
		t.Fatalf("unexpected topic order: %v", topics)
	}

	set, ok := b.Questions("Second")
	if !ok || len(set) != 1 || set[0].ID != "x" {
		t.Fatalf("re-Add did not replace set: %+v", set)
	}

	empty, ok := b.Questions("First")
	if !ok || len(empty) != 0 {
		t.Fatalf("expected existing empty topic, got ok=%t len=%d", ok, len(empty))
	}

	if _, ok := b.Questions("Missing"); ok {
		t.Fatalf("expected missing topic lookup to fail")
	}
}

func TestBankAddRejectsInvalidInput(t *testing.T) {
	b := New()
	if err := b.Add("  ", nil); err == nil {
		t.Fatalf("expected error for blank topic")
	}
	err := b.Add("T", []Question{{Prompt: "P", Options: []string{"A"}}})
	if !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
	dup := Question{ID: "same", Prompt: "P", Options: []string{"A", "B"}}
	if err := b.Add("T", []Question{dup, dup}); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
	if b.Has("T") {
		t.Fatalf("failed Add must not register the topic")
	}
}

func TestBankQuestionsReturnsCopy(t *testing.T) {
	b := New()
	_ = b.Add("T", []Question{{Prompt: "P", Options: []string{"A", "B"}}})

	set, _ := b.Questions("T")
	set[0].Options[0] = "mutated"

	again, _ := b.Questions("T")
	if again[0].Options[0] != "A" {
		t.Fatalf("bank was mutated through returned slice")
	}
}

func TestBuiltinBank(t *testing.T) {
	b := Builtin()
	topics := b.Topics()
	want := []string{BuiltinTopic, "Storage", "Compute", "Database", "Networking", "Monitoring"}
	if len(topics) != len(want) {
		t.Fatalf("topics = %v, want %v", topics, want)
	}
	for idx := range want {
		if topics[idx] != want[idx] {
			t.Fatalf("topic %d = %q, want %q", idx, topics[idx], want[idx])
		}
	}

	all, _ := b.Questions(BuiltinTopic)
	if len(all) != 10 {
		t.Fatalf("expected 10 built-in questions, got %d", len(all))
	}
	storage, _ := b.Questions("Storage")
	if len(storage) != 3 {
		t.Fatalf("expected 3 storage questions, got %d", len(storage))
	}

	summaries := b.Summaries()
	if summaries[0].QuestionCount != 10 {
		t.Fatalf("unexpected summary: %+v", summaries[0])
	}
}

func TestDecodeYAML(t *testing.T) {
	input := `
topics:
  - name: Basics
    questions:
      - question: "2+2?"
        options: ["3", "4"]
        correct_index: 1
        explanation: arithmetic
  - name: Empty
    questions: []
`
	b, err := Decode(strings.NewReader(input), FormatYAML)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	set, ok := b.Questions("Basics")
	if !ok || len(set) != 1 {
		t.Fatalf("unexpected Basics set: %+v", set)
	}
	if set[0].CorrectIndex != 1 || set[0].Explanation != "arithmetic" || set[0].ID == "" {
		t.Fatalf("unexpected decoded question: %+v", set[0])
	}
	if !b.Has("Empty") {
		t.Fatalf("expected empty topic to be kept")
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{name: "unknown json field", input: `{"topics":[],"extra":1}`, format: FormatJSON},
		{name: "no topics", input: `{"topics":[]}`, format: FormatJSON},
		{name: "invalid question", input: `{"topics":[{"name":"T","questions":[{"question":"P","options":["A"],"correct_index":0}]}]}`, format: FormatJSON},
		{name: "duplicate topic", input: "topics:\n  - name: T\n  - name: T\n", format: FormatYAML},
		{name: "unknown format", input: `{}`, format: Format("toml")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tc.input), tc.format); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestEncodeThenLoadFile(t *testing.T) {
	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			format, ok := FormatForPath("bank" + ext)
			if !ok {
				t.Fatalf("FormatForPath(%q) not recognised", ext)
			}

			var buf bytes.Buffer
			if err := Encode(&buf, Builtin(), format); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			path := filepath.Join(t.TempDir(), "bank"+ext)
			if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
				t.Fatalf("write bank file: %v", err)
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile failed: %v", err)
			}
			if loaded.Len() != Builtin().Len() {
				t.Fatalf("topic count = %d, want %d", loaded.Len(), Builtin().Len())
			}
			set, _ := loaded.Questions("Compute")
			if len(set) != 2 || set[0].ID != "aws-2" {
				t.Fatalf("unexpected Compute set after reload: %+v", set)
			}
		})
	}
}

func TestLoadFileRejectsUnknownExtension(t *testing.T) {
	if _, err := LoadFile("bank.txt"); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}
