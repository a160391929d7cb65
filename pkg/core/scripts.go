package core

// Placeholder bodies for the setup hooks zero.sh runs around a workspace
const (
	beforeScript = `#!/usr/bin/env bash
#
# Runs before zero.sh applies this workspace.
# Add commands that must happen before packages and defaults are installed.

set -euo pipefail
`

	afterScript = `#!/usr/bin/env bash
#
# Runs after zero.sh has applied this workspace.
# Add commands that depend on installed packages or restored defaults.

set -euo pipefail
`
)
