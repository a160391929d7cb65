package defaults

import (
	"context"
	"strings"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/logging"
	"github.com/arthur-debert/macstage/pkg/runner"
	"github.com/rs/zerolog"
)

// DefaultsCommand is the macOS preference command-line tool
const DefaultsCommand = "defaults"

// CommandStore reads preferences through the defaults(1) command
type CommandStore struct {
	runner runner.Runner
}

// NewCommandStore creates a store that shells out through r
func NewCommandStore(r runner.Runner) *CommandStore {
	return &CommandStore{
		runner: r,
	}
}

// Available reports whether the defaults command exists on this system
func (s *CommandStore) Available() bool {
	_, err := s.runner.LookPath(DefaultsCommand)
	return err == nil
}

// ListDomains runs `defaults domains`, which prints a comma separated list
func (s *CommandStore) ListDomains(ctx context.Context) ([]string, error) {
	out, err := s.runner.Output(ctx, DefaultsCommand, "domains")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreQuery, "failed to list preference domains")
	}

	var domains []string
	for _, field := range strings.Split(string(out), ",") {
		if d := strings.TrimSpace(field); d != "" {
			domains = append(domains, d)
		}
	}

	s.log().Debug().Int("count", len(domains)).Msg("Listed preference domains")
	return domains, nil
}

// ListKeys exports the domain as an XML property list and returns its
// top-level keys in order
func (s *CommandStore) ListKeys(ctx context.Context, domain string) ([]string, error) {
	out, err := s.runner.Output(ctx, DefaultsCommand, "export", domain, "-")
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreQuery, "failed to export domain %s", domain)
	}

	keys, err := plistKeys(out)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreParse, "failed to parse domain %s", domain)
	}
	return keys, nil
}

// Read runs `defaults read <domain> <key>` and returns the printed value
func (s *CommandStore) Read(ctx context.Context, domain, key string) (string, error) {
	out, err := s.runner.Output(ctx, DefaultsCommand, "read", domain, key)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrStoreQuery, "failed to read %s %s", domain, key)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

func (s *CommandStore) log() *zerolog.Logger {
	l := logging.GetLogger("defaults.store")
	return &l
}

var _ PreferenceStore = (*CommandStore)(nil)
