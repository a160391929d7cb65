// Package paths resolves the staging layout macstage writes into.
//
// A layout is rooted either at the base directory or, when a workspace name
// is given, at base/workspaces/<name>. Everything else is a fixed offset from
// that root:
//
//	<root>/Brewfile                 package manifest
//	<root>/defaults.yaml            captured preferences
//	<root>/symlinks/shell/          shell run-control and profile files
//	<root>/symlinks/git/            version-control configuration
//	<root>/symlinks/config/         contents of ~/.config
//	<root>/run/before/01-before.sh  pre-setup placeholder
//	<root>/run/after/01-after.sh    post-setup placeholder
//	<base>/zero/                    bootstrap tool checkout
//
// Resolve is pure; Materialize creates the directories and may be called
// any number of times.
package paths
