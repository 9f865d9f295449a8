// Package terminal provides terminal detection and interactive prompts.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when the input stream ends before an answer is given.
var ErrNoInput = errors.New("no input available")

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return IsTerminal(os.Stdin)
}

// IsTerminal returns true if f refers to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// readLine returns the next trimmed line. A final line without a newline is
// still returned; ErrNoInput is only reported when nothing was read.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		if err == io.EOF {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a y/n question. Only "y" or "yes" (any case) confirms; end of
// input counts as no.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s (y/n): ", question)
	answer, err := p.readLine()
	if err != nil {
		if errors.Is(err, ErrNoInput) {
			fmt.Fprintln(p.out)
			return false, nil
		}
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// Choose asks for a number between 1 and n, re-prompting until a valid choice
// is entered. Returns the zero-based index.
func (p *Prompter) Choose(question string, n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("nothing to choose from")
	}
	for {
		fmt.Fprint(p.out, question)
		answer, err := p.readLine()
		if err != nil {
			return 0, err
		}
		choice, convErr := strconv.Atoi(answer)
		if convErr == nil && choice >= 1 && choice <= n {
			return choice - 1, nil
		}
		fmt.Fprintf(p.out, "Invalid choice. Please enter a number from 1 to %d.\n", n)
	}
}
