// Package defaults captures macOS application preferences into a document.
//
// A capture run has three stages:
//
//   - EnumerateDomains: built-in domains from configuration, then every
//     domain known to the preference store whose last identifier component
//     matches an installed application.
//   - Extract: the (key, value) pairs of one domain, in store order. It never
//     fails; unreadable domains are empty and unreadable keys are skipped.
//   - WriteDocument: a YAML document, one mapping per domain, rewritten from
//     scratch on every run.
//
// The preference store is reached through the PreferenceStore interface.
// CommandStore implements it with the defaults(1) command; MemoryStore is an
// in-memory implementation for tests and dry runs.
package defaults
