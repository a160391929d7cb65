package defaults

import (
	"context"
	"sync"

	"github.com/arthur-debert/macstage/pkg/errors"
)

// GlobalDomain is the system-wide preference domain
const GlobalDomain = "NSGlobalDomain"

// PreferenceStore is the read side of the operating system preference mechanism
type PreferenceStore interface {
	// ListDomains returns every domain known to the store
	ListDomains(ctx context.Context) ([]string, error)
	// ListKeys returns the keys of domain in store order
	ListKeys(ctx context.Context, domain string) ([]string, error)
	// Read returns the textual value of one key
	Read(ctx context.Context, domain, key string) (string, error)
}

// Provenance tells why a domain is captured
type Provenance int

const (
	// Builtin domains come from configuration and are always captured
	Builtin Provenance = iota
	// Discovered domains belong to an installed application
	Discovered
)

// String returns the provenance name
func (p Provenance) String() string {
	switch p {
	case Builtin:
		return "builtin"
	case Discovered:
		return "discovered"
	default:
		return "unknown"
	}
}

// Domain is a preference namespace selected for capture
type Domain struct {
	ID         string
	Provenance Provenance
}

// Entry is one captured preference
type Entry struct {
	Key   string
	Value string
}

// MemoryStore is an in-memory PreferenceStore
type MemoryStore struct {
	mu       sync.RWMutex
	domains  []string
	entries  map[string][]Entry
	broken   map[string]map[string]bool
	rejected map[string]bool
	listErr  error
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:  make(map[string][]Entry),
		broken:   make(map[string]map[string]bool),
		rejected: make(map[string]bool),
	}
}

// AddDomain registers a domain without keys
func (m *MemoryStore) AddDomain(domain string) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addDomainLocked(domain)
	return m
}

func (m *MemoryStore) addDomainLocked(domain string) {
	if _, ok := m.entries[domain]; ok {
		return
	}
	m.entries[domain] = nil
	// the global domain is never listed, like defaults(1)
	if domain != GlobalDomain {
		m.domains = append(m.domains, domain)
	}
}

// Set appends a key to a domain, registering the domain when needed
func (m *MemoryStore) Set(domain, key, value string) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addDomainLocked(domain)
	m.entries[domain] = append(m.entries[domain], Entry{Key: key, Value: value})
	return m
}

// BreakKey makes Read fail for one key
func (m *MemoryStore) BreakKey(domain, key string) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.broken[domain] == nil {
		m.broken[domain] = make(map[string]bool)
	}
	m.broken[domain][key] = true
	return m
}

// Reject makes ListKeys fail for a domain
func (m *MemoryStore) Reject(domain string) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[domain] = true
	return m
}

// FailListing makes ListDomains return err
func (m *MemoryStore) FailListing(err error) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErr = err
	return m
}

// ListDomains implements PreferenceStore
func (m *MemoryStore) ListDomains(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	domains := make([]string, len(m.domains))
	copy(domains, m.domains)
	return domains, nil
}

// ListKeys implements PreferenceStore
func (m *MemoryStore) ListKeys(ctx context.Context, domain string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.rejected[domain] {
		return nil, errors.Newf(errors.ErrStoreQuery, "domain %s rejected", domain)
	}
	entries, ok := m.entries[domain]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "domain %s does not exist", domain)
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	return keys, nil
}

// Read implements PreferenceStore
func (m *MemoryStore) Read(ctx context.Context, domain, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.broken[domain][key] {
		return "", errors.Newf(errors.ErrStoreQuery, "cannot read %s %s", domain, key)
	}
	for _, e := range m.entries[domain] {
		if e.Key == key {
			return e.Value, nil
		}
	}
	return "", errors.Newf(errors.ErrNotFound, "key %s does not exist in %s", key, domain)
}

var _ PreferenceStore = (*MemoryStore)(nil)
