package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/marq/arena"
	"github.com/dhamidi/marq/format"
	"github.com/dhamidi/marq/html"
	"github.com/dhamidi/marq/span"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var scripts bool
	var styles bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an HTML file and dump the tree",
		Long:  "Parse an HTML file and dump the tree. Reads stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				return err
			}

			options := html.DefaultOptions()
			options.EnableScriptParsing = scripts
			options.EnableStyleParsing = styles

			a := arena.New()
			defer a.Release()

			result, err := html.NewParser(a, source).WithOptions(options).Parse()
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			doc := &format.Document{
				Source:  span.NewSourceText(source),
				Program: result.Program,
				Errors:  result.Errors,
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewASTJSONEncoder(os.Stdout)
			case "tree":
				encoder = format.NewTreeEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(doc); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if outputFormat == "json" {
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree)")
	cmd.Flags().BoolVar(&scripts, "scripts", true, "run registered embedded parsers on <script> content")
	cmd.Flags().BoolVar(&styles, "styles", true, "run registered embedded parsers on <style> content")

	return cmd
}

func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}
