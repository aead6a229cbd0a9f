package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/marq/arena"
	"github.com/dhamidi/marq/diag"
	"github.com/dhamidi/marq/html"
	"github.com/dhamidi/marq/span"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var warningsAsErrors bool

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse an HTML file and report diagnostics only",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "<stdin>"
			if len(args) == 1 && args[0] != "-" {
				name = args[0]
			}
			source, err := readSource(args)
			if err != nil {
				return err
			}

			a := arena.New()
			defer a.Release()

			result, err := html.NewParser(a, source).Parse()
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			text := span.NewSourceText(source)
			for _, d := range result.Errors {
				pos := text.PositionAt(d.Span.Start)
				fmt.Fprintf(os.Stdout, "%s:%d:%d: %s: %s\n",
					name, pos.Line, pos.Column, d.Severity, d.Message)
			}

			failing := diag.HasErrors(result.Errors)
			if warningsAsErrors && len(result.Errors) > 0 {
				failing = true
			}
			if failing {
				return fmt.Errorf("%d issue(s) in %s", len(result.Errors), name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&warningsAsErrors, "strict", "s", false, "treat warnings as errors")

	return cmd
}
