// Package core sequences a staging run.
//
// A run resolves and creates the workspace layout, then exports the package
// manifest, captures preferences, stages shell, git and config files, writes
// the placeholder setup scripts and, when asked, stages the zero.sh tool.
// Steps never depend on each other's in-memory results, only on the layout.
//
// Only a layout that cannot be created stops a run. Every other problem is
// recorded as a StepResult and the run carries on.
package core
