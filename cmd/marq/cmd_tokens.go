package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/marq/format"
	"github.com/dhamidi/marq/html"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Tokenize an HTML file and dump the token stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				return err
			}

			lexer := html.NewLexer(source)
			var tokens []html.Token
			for {
				tok := lexer.Next()
				tokens = append(tokens, tok)
				if tok.Kind == html.TokenEOF {
					break
				}
			}

			if err := format.NewTokenLineEncoder(os.Stdout).Encode(tokens); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			for _, d := range lexer.Diagnostics() {
				fmt.Fprintln(os.Stderr, d)
			}
			return nil
		},
	}
}
