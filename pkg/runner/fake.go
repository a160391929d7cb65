package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/arthur-debert/macstage/pkg/errors"
)

// Fake is a scripted Runner for tests. Responses are keyed by the full
// command line ("defaults read com.apple.dock").
type Fake struct {
	mu       sync.Mutex
	outputs  map[string][]byte
	failures map[string]error
	paths    map[string]string
	hooks    map[string]func(args []string) error
	Calls    []string
}

// NewFake returns an empty Fake runner
func NewFake() *Fake {
	return &Fake{
		outputs:  make(map[string][]byte),
		failures: make(map[string]error),
		paths:    make(map[string]string),
		hooks:    make(map[string]func(args []string) error),
	}
}

// On registers the stdout returned for a command line
func (f *Fake) On(cmdline string, stdout string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outputs[cmdline] = []byte(stdout)
	return f
}

// Fail registers an error returned for a command line
func (f *Fake) Fail(cmdline string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[cmdline] = err
	return f
}

// Hook runs fn whenever a command named name is executed
func (f *Fake) Hook(name string, fn func(args []string) error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks[name] = fn
	return f
}

// Install makes LookPath succeed for name
func (f *Fake) Install(name, path string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths[name] = path
	return f
}

// Output implements Runner
func (f *Fake) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmdline := strings.TrimSpace(name + " " + strings.Join(args, " "))

	f.mu.Lock()
	f.Calls = append(f.Calls, cmdline)
	hook := f.hooks[name]
	out, hasOut := f.outputs[cmdline]
	failure := f.failures[cmdline]
	f.mu.Unlock()

	if hook != nil {
		if err := hook(args); err != nil {
			return nil, err
		}
	}
	if failure != nil {
		return nil, failure
	}
	if !hasOut && hook == nil {
		return nil, errors.New(errors.ErrCommandExec, fmt.Sprintf("unexpected command: %s", cmdline))
	}
	return out, nil
}

// LookPath implements Runner
func (f *Fake) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if path, ok := f.paths[name]; ok {
		return path, nil
	}
	return "", errors.Newf(errors.ErrToolMissing, "%s not found", name)
}

var _ Runner = (*Fake)(nil)
