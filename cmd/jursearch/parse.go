package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/jursearch"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	payload, err := c.read(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	ext := deps.Parser.Parse(payload)
	if c.Fragments {
		for _, f := range ext.Fragments {
			fmt.Fprintln(deps.Stdout, f)
		}
		return nil
	}

	title, err := deps.Parser.Title(payload)
	if err != nil {
		title = jursearch.UntitledPlaceholder
	}
	fmt.Fprintln(deps.Stdout, title)
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, ext.Text)
	return nil
}

func (c *ParseCmd) read(stdin io.Reader) ([]byte, error) {
	if c.File == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(c.File)
}
