package main

import (
	"io"

	"github.com/spf13/cobra"
)

// Version may be overridden at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// rootDeps carries the dependencies injected into every subcommand, so
// tests can swap IO streams without touching the real
// stdin/stdout/stderr.
type rootDeps struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func newRootCmd(deps *rootDeps) *cobra.Command {
	root := &cobra.Command{
		Use:     "adoc",
		Short:   "adoc — an AsciiDoc lexer, block classifier, and substitution pipeline",
		Long:    "adoc parses AsciiDoc source into a document tree: header, sections, blocks, and substituted inline content.",
		Version: Version,
	}

	root.SetIn(deps.In)
	root.SetOut(deps.Out)
	root.SetErr(deps.Err)

	root.AddCommand(newParseCmd(deps))
	root.AddCommand(newWarningsCmd(deps))

	return root
}

// Execute builds and runs the root command against os.Args.
func Execute() error {
	return newRootCmd(&rootDeps{}).Execute()
}
