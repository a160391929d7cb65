package defaults

import (
	"context"

	"github.com/arthur-debert/macstage/pkg/logging"
)

// Extract returns the entries of one domain in store order. It never fails:
// a domain the store rejects yields no entries and unreadable keys are
// skipped. Repeated keys keep their first value.
func Extract(ctx context.Context, store PreferenceStore, domain string) []Entry {
	logger := logging.GetLogger("defaults.extract").With().Str("domain", domain).Logger()

	keys, err := store.ListKeys(ctx, domain)
	if err != nil {
		logger.Debug().Err(err).Msg("Domain has no readable keys")
		return nil
	}

	entries := make([]Entry, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			logger.Debug().Str("key", key).Msg("Skipping duplicate key")
			continue
		}
		seen[key] = true

		value, err := store.Read(ctx, domain, key)
		if err != nil {
			logger.Debug().Err(err).Str("key", key).Msg("Skipping unreadable key")
			continue
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}

	logger.Trace().Int("entries", len(entries)).Msg("Extracted domain")
	return entries
}
