package main

import (
	"fmt"

	"github.com/jlrickert/adoc/pkg/parser"
	"github.com/spf13/cobra"
)

func newWarningsCmd(deps *rootDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warnings [file]",
		Short: "Parse an AsciiDoc document and print only the warnings it produced",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(deps, args)
			if err != nil {
				return err
			}

			doc := parser.Default().Parse(source)
			out := cmd.OutOrStdout()

			if len(doc.Warnings) == 0 {
				fmt.Fprintln(out, "no warnings")
				return nil
			}
			for _, w := range doc.Warnings {
				fmt.Fprintf(out, "line %d, col %d: %s: %s\n", w.Source.Line(), w.Source.Col(), w.Type, w.Message)
			}
			return nil
		},
	}
	return cmd
}
