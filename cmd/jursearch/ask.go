package main

import (
	"fmt"

	"github.com/fwojciec/jursearch"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.Ask(deps.Ctx, c.Question, jursearch.SearchPreference(c.Prefer))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jursearch.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
