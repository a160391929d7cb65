package config

import (
	"bytes"

	"github.com/arthur-debert/macstage/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# macstage configuration
# Save as $XDG_CONFIG_HOME/macstage/config.toml and edit as needed.

`

// GenerateTOML renders the configuration as a user config file
func GenerateTOML(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return buf.Bytes(), nil
}
