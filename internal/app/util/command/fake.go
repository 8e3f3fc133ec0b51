package command

import (
	"context"
	"strings"
	"sync"
)

// Call records one invocation seen by a Fake.
type Call struct {
	Name string
	Args []string
}

// Fake is a scripted Runner for tests. Handler decides the outcome of each
// call; a nil Handler succeeds with empty output.
type Fake struct {
	Handler func(ctx context.Context, name string, args []string) ([]byte, error)

	mu    sync.Mutex
	calls []Call
}

// Run implements Runner.
func (f *Fake) Run(ctx context.Context, name string, args ...string) error {
	_, err := f.Output(ctx, name, args...)
	return err
}

// Output implements Runner.
func (f *Fake) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Name: name, Args: append([]string(nil), args...)})
	f.mu.Unlock()

	if f.Handler == nil {
		return nil, nil
	}
	return f.Handler(ctx, name, args)
}

// Calls returns a copy of the recorded invocations.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// ArgAfter returns the argument following flag, or "".
func ArgAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

// Joined renders a call as a single command line for assertions.
func (c Call) Joined() string {
	return c.Name + " " + strings.Join(c.Args, " ")
}
