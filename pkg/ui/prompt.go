package ui

import (
	"strings"

	"github.com/pterm/pterm"
)

// Prompter asks the user for a line of text
type Prompter interface {
	Ask(question, defaultValue string) (string, error)
}

// TerminalPrompter prompts with pterm's interactive text input
type TerminalPrompter struct{}

// Ask shows question with defaultValue prefilled. An empty answer selects
// the default.
func (TerminalPrompter) Ask(question, defaultValue string) (string, error) {
	answer, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText(defaultValue).
		Show(question)
	if err != nil {
		return "", err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// StaticPrompter answers every question with Answer
type StaticPrompter struct {
	Answer string
	Err    error
	Asked  []string
}

// Ask implements Prompter
func (s *StaticPrompter) Ask(question, defaultValue string) (string, error) {
	s.Asked = append(s.Asked, question)
	if s.Err != nil {
		return "", s.Err
	}
	if strings.TrimSpace(s.Answer) == "" {
		return defaultValue, nil
	}
	return s.Answer, nil
}
