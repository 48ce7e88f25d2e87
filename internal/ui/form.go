package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// NewInputForm builds the grammar and input-string form bound to grammar
// and input.
func NewInputForm(grammar, input *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("grammar").
				Title("Grammar").
				Description("One production per line, for example: E -> E + T").
				Lines(8).
				Value(grammar).
				Validate(notBlank("grammar")),
			huh.NewInput().
				Key("input").
				Title("Input string").
				Description("Space separated tokens, for example: id + id * id").
				Value(input).
				Validate(notBlank("input string")),
		),
	).WithShowHelp(true)
}

// RunInputForm shows the form outside the TUI and fills grammar and input
func RunInputForm(grammar, input *string) error {
	return NewInputForm(grammar, input).Run()
}

func notBlank(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " must not be empty")
		}
		return nil
	}
}
