// Package runner executes external programs on behalf of macstage.
//
// Components never call os/exec directly; they receive a Runner so tests can
// substitute canned output for brew, defaults and friends.
package runner

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/logging"
)

// Runner runs external commands
type Runner interface {
	// Output runs name with args and returns its standard output
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// LookPath reports where name is found on the search path
	LookPath(name string) (string, error)
}

// ExecRunner executes real system commands
type ExecRunner struct{}

// New returns a Runner backed by os/exec
func New() *ExecRunner {
	return &ExecRunner{}
}

// Output executes a command and returns its stdout.
// Stderr is folded into the returned error when the command fails.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return out, errors.Wrapf(err, errors.ErrCommandExec, "%s %s", name, strings.Join(args, " ")).
			WithDetail("stderr", strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// LookPath wraps exec.LookPath
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrToolMissing, "%s not found", name)
	}
	return path, nil
}

var _ Runner = (*ExecRunner)(nil)
