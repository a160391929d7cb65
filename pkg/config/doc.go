// Package config handles configuration management for macstage.
//
// Configuration is layered with koanf, later sources overriding earlier ones:
//
//   - embedded defaults (embedded/defaults.toml)
//   - the user file, $XDG_CONFIG_HOME/macstage/config.toml or --config
//   - MACSTAGE_* environment variables (MACSTAGE_CAPTURE_MATCH=exact)
//   - command-line flag overrides
//
// The result is decoded once into an immutable Config value that is passed
// to every component.
package config
