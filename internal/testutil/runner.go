package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/javanstorm/lenv/pkg/wsl"
)

// Call is one invocation seen by a FakeRunner.
type Call struct {
	Name     string
	Args     []string
	Attached bool
}

// String renders the call as a command line.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

type rule struct {
	prefix []string
	result wsl.Result
	err    error
	hang   bool
}

// FakeRunner is a scripted wsl.Runner. Responses are matched by argument
// prefix and the most recently added match wins; unmatched calls succeed
// with empty output.
type FakeRunner struct {
	mu    sync.Mutex
	rules []rule
	calls []Call
}

// NewFakeRunner creates a runner where every call succeeds.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{}
}

// Respond scripts the result for calls whose arguments start with prefix.
func (f *FakeRunner) Respond(res wsl.Result, prefix ...string) *FakeRunner {
	f.add(rule{prefix: prefix, result: res})
	return f
}

// Stdout scripts a successful call printing out.
func (f *FakeRunner) Stdout(out string, prefix ...string) *FakeRunner {
	return f.Respond(wsl.Result{Stdout: out}, prefix...)
}

// Fail scripts a call exiting with code and printing stderr.
func (f *FakeRunner) Fail(code int, stderr string, prefix ...string) *FakeRunner {
	return f.Respond(wsl.Result{Stderr: stderr, ExitCode: code}, prefix...)
}

// Error scripts a call that cannot be started.
func (f *FakeRunner) Error(err error, prefix ...string) *FakeRunner {
	f.add(rule{prefix: prefix, err: err})
	return f
}

// Hang scripts a call that blocks until its context is done, the way a
// process killed on timeout behaves.
func (f *FakeRunner) Hang(prefix ...string) *FakeRunner {
	f.add(rule{prefix: prefix, hang: true})
	return f
}

func (f *FakeRunner) add(r rule) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, r)
}

// Run implements wsl.Runner.
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) (*wsl.Result, error) {
	r := f.record(Call{Name: name, Args: args})
	if err := f.wait(ctx, name, r); err != nil {
		return nil, err
	}
	if r.err != nil {
		return nil, r.err
	}
	res := r.result
	return &res, nil
}

// Attach implements wsl.Runner.
func (f *FakeRunner) Attach(ctx context.Context, name string, args ...string) (int, error) {
	r := f.record(Call{Name: name, Args: args, Attached: true})
	if err := f.wait(ctx, name, r); err != nil {
		return -1, err
	}
	if r.err != nil {
		return -1, r.err
	}
	return r.result.ExitCode, nil
}

func (f *FakeRunner) record(c Call) rule {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, c)
	for i := len(f.rules) - 1; i >= 0; i-- {
		if hasPrefix(c.Args, f.rules[i].prefix) {
			return f.rules[i]
		}
	}
	return rule{}
}

func (f *FakeRunner) wait(ctx context.Context, name string, r rule) error {
	if !r.hang {
		return nil
	}
	<-ctx.Done()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", name, wsl.ErrTimeout)
	}
	return ctx.Err()
}

// Calls returns every call made so far.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Commands returns every call rendered as a command line.
func (f *FakeRunner) Commands() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// CallsWith returns the calls whose arguments start with prefix.
func (f *FakeRunner) CallsWith(prefix ...string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if hasPrefix(c.Args, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func hasPrefix(args, prefix []string) bool {
	if len(prefix) > len(args) {
		return false
	}
	for i, p := range prefix {
		if args[i] != p {
			return false
		}
	}
	return true
}
