package core

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/macstage/pkg/bootstrap"
	"github.com/arthur-debert/macstage/pkg/defaults"
	"github.com/arthur-debert/macstage/pkg/paths"
	"github.com/arthur-debert/macstage/pkg/shell"
)

// Step names a stage of the run
type Step string

const (
	StepLayout      Step = "layout"
	StepManifest    Step = "brewfile"
	StepPreferences Step = "defaults"
	StepShell       Step = "shell"
	StepGit         Step = "git"
	StepConfig      Step = "config"
	StepScripts     Step = "scripts"
	StepBootstrap   Step = "bootstrap"
)

// Status is the outcome of a step
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusWarning Status = "warning"
)

// StepResult records one reported outcome. A step may report several.
type StepResult struct {
	Step    Step
	Status  Status
	Message string
	Path    string
}

// Result is everything a run produced
type Result struct {
	Layout    paths.Layout
	Shell     shell.Shell
	Document  *defaults.Document
	Bootstrap *bootstrap.Result
	Steps     []StepResult
}

// For returns the results reported by step
func (r *Result) For(step Step) []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if s.Step == step {
			out = append(out, s)
		}
	}
	return out
}

// Warnings counts results with StatusWarning
func (r *Result) Warnings() int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == StatusWarning {
			n++
		}
	}
	return n
}

// Summary renders the run as a Markdown table
func (r *Result) Summary() string {
	var b strings.Builder
	b.WriteString("# Staging summary\n\n")
	fmt.Fprintf(&b, "Staged into `%s`", r.Layout.Root)
	if r.Layout.Workspace != "" {
		fmt.Fprintf(&b, " (workspace `%s`)", r.Layout.Workspace)
	}
	b.WriteString("\n\n| Step | Status | Details |\n|---|---|---|\n")
	for _, s := range r.Steps {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", s.Step, s.Status, escapeCell(s.Message))
	}
	if n := r.Warnings(); n > 0 {
		fmt.Fprintf(&b, "\n%d step(s) reported warnings, see the log for details.\n", n)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}
