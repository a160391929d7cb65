package config

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/macstage/pkg/errors"
)

// Application match modes
const (
	MatchSubstring = "substring"
	MatchExact     = "exact"
)

// Config is the fully merged macstage configuration
type Config struct {
	Capture   Capture   `koanf:"capture" toml:"capture"`
	Packages  Packages  `koanf:"packages" toml:"packages"`
	Staging   Staging   `koanf:"staging" toml:"staging"`
	Bootstrap Bootstrap `koanf:"bootstrap" toml:"bootstrap"`
}

// Capture controls preference capture
type Capture struct {
	BuiltinDomains []string `koanf:"builtin_domains" toml:"builtin_domains"`
	AppDirs        []string `koanf:"app_dirs" toml:"app_dirs"`
	Match          string   `koanf:"match" toml:"match"`
	Document       string   `koanf:"document" toml:"document"`
}

// Packages controls the package manifest export
type Packages struct {
	Manager  string `koanf:"manager" toml:"manager"`
	Manifest string `koanf:"manifest" toml:"manifest"`
}

// Staging holds the destination of a run
type Staging struct {
	BasePath  string `koanf:"base_path" toml:"base_path"`
	Workspace string `koanf:"workspace" toml:"workspace"`
	Bootstrap bool   `koanf:"bootstrap" toml:"bootstrap"`
}

// Bootstrap describes the external dotfiles tool
type Bootstrap struct {
	Repository   string `koanf:"repository" toml:"repository"`
	Dir          string `koanf:"dir" toml:"dir"`
	PinLatestTag bool   `koanf:"pin_latest_tag" toml:"pin_latest_tag"`
}

// Validate checks the invariants the rest of macstage relies on
func (c *Config) Validate() error {
	switch c.Capture.Match {
	case MatchSubstring, MatchExact:
	default:
		return errors.Newf(errors.ErrConfigValid, "capture.match must be %q or %q, got %q",
			MatchSubstring, MatchExact, c.Capture.Match)
	}

	for key, value := range map[string]string{
		"capture.document":  c.Capture.Document,
		"packages.manager":  c.Packages.Manager,
		"packages.manifest": c.Packages.Manifest,
		"bootstrap.dir":     c.Bootstrap.Dir,
	} {
		if strings.TrimSpace(value) == "" {
			return errors.Newf(errors.ErrConfigValid, "%s must not be empty", key)
		}
		if strings.ContainsRune(value, '/') {
			return errors.Newf(errors.ErrConfigValid, "%s must be a plain name, got %q", key, value)
		}
	}

	if c.Bootstrap.Repository == "" {
		return errors.New(errors.ErrConfigValid, "bootstrap.repository must not be empty")
	}

	return nil
}

// String renders a short description for debug logs
func (c *Config) String() string {
	return fmt.Sprintf("base=%s workspace=%s bootstrap=%t domains=%d match=%s",
		c.Staging.BasePath, c.Staging.Workspace, c.Staging.Bootstrap,
		len(c.Capture.BuiltinDomains), c.Capture.Match)
}
