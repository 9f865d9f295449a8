package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"lower y", "y\n", true},
		{"upper Y", "Y\n", true},
		{"yes", "yes\n", true},
		{"padded", "  y  \n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"other word", "sure\n", false},
		{"no trailing newline", "y", true},
		{"eof", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("Proceed?")
			if err != nil {
				t.Fatalf("Confirm returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.HasPrefix(out.String(), "Proceed? (y/n): ") {
				t.Errorf("unexpected prompt %q", out.String())
			}
		})
	}
}

func TestChoose(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("2\n"), &out)

	idx, err := p.Choose("Pick: ", 2)
	if err != nil {
		t.Fatalf("Choose failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("Choose = %d, want 1", idx)
	}
}

func TestChooseRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("x\n0\n3\n1\n"), &out)

	idx, err := p.Choose("Pick: ", 2)
	if err != nil {
		t.Fatalf("Choose failed: %v", err)
	}
	if idx != 0 {
		t.Errorf("Choose = %d, want 0", idx)
	}
	if n := strings.Count(out.String(), "Invalid choice"); n != 3 {
		t.Errorf("expected 3 invalid-choice messages, got %d in %q", n, out.String())
	}
	if n := strings.Count(out.String(), "Pick: "); n != 4 {
		t.Errorf("expected 4 prompts, got %d", n)
	}
}

func TestChooseEndOfInput(t *testing.T) {
	p := NewPrompter(strings.NewReader("9\n"), &bytes.Buffer{})

	_, err := p.Choose("Pick: ", 2)
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("Choose error = %v, want ErrNoInput", err)
	}
}

func TestChooseNothing(t *testing.T) {
	p := NewPrompter(strings.NewReader("1\n"), &bytes.Buffer{})
	if _, err := p.Choose("Pick: ", 0); err == nil {
		t.Fatal("expected error when there are no options")
	}
}
