package defaults

import (
	"context"
	"strings"

	"github.com/arthur-debert/macstage/pkg/config"
	"github.com/arthur-debert/macstage/pkg/logging"
)

// EnumerateOptions selects the domains of a capture run
type EnumerateOptions struct {
	// Builtins are always captured, in this order
	Builtins []string
	// Applications are installed application display names
	Applications []string
	// Match is config.MatchSubstring or config.MatchExact
	Match string
}

// EnumerateDomains returns built-in domains followed by discovered
// application domains, without duplicates. A store that cannot list its
// domains only loses the discovered part.
func EnumerateDomains(ctx context.Context, store PreferenceStore, opts EnumerateOptions) []Domain {
	logger := logging.GetLogger("defaults.enumerate")

	var domains []Domain
	seen := make(map[string]bool)
	add := func(id string, p Provenance) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		domains = append(domains, Domain{ID: id, Provenance: p})
	}

	for _, id := range opts.Builtins {
		add(strings.TrimSpace(id), Builtin)
	}

	known, err := store.ListDomains(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot list preference domains, capturing built-ins only")
		return domains
	}

	for _, id := range known {
		if matchesApplication(DomainCandidate(id), opts.Applications, opts.Match) {
			add(id, Discovered)
		}
	}

	logger.Info().
		Int("builtin", len(opts.Builtins)).
		Int("total", len(domains)).
		Msg("Enumerated preference domains")
	return domains
}

// DomainCandidate returns the last dot-separated component of a domain
// identifier, or the identifier itself when it has no dot
func DomainCandidate(id string) string {
	if i := strings.LastIndex(id, "."); i >= 0 {
		return id[i+1:]
	}
	return id
}

func matchesApplication(candidate string, apps []string, mode string) bool {
	if candidate == "" {
		return false
	}
	for _, app := range apps {
		if mode == config.MatchExact {
			if app == candidate {
				return true
			}
			continue
		}
		if strings.Contains(app, candidate) {
			return true
		}
	}
	return false
}
