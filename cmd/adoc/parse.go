package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jlrickert/adoc/pkg/config"
	"github.com/jlrickert/adoc/pkg/document"
	"github.com/jlrickert/adoc/pkg/parser"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"
)

type parseFlags struct {
	configFile string
	json       bool
}

func newParseCmd(deps *rootDeps) *cobra.Command {
	var flags parseFlags

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an AsciiDoc document and print its tree",
		Long:  "Parse reads AsciiDoc source from the given file, or from stdin if no file is given, and writes the parsed document tree.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(deps, args)
			if err != nil {
				return err
			}

			p := parser.Default()
			if flags.configFile != "" {
				defaults, err := config.Load(flags.configFile)
				if err != nil {
					return err
				}
				defaults.ExpandEnv()
				for name, def := range defaults {
					p = p.WithIntrinsicAttribute(name, def.Value, modificationContextFromString(def.Context))
				}
			}

			doc := p.Parse(source)

			if flags.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}

			printTree(cmd.OutOrStdout(), doc)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.configFile, "config", "", "path to a YAML intrinsic attribute defaults file")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the document tree as JSON instead of a text dump")

	return cmd
}

func modificationContextFromString(s string) document.ModificationContext {
	switch s {
	case "header":
		return document.ApiOrHeader
	case "api":
		return document.ApiOnly
	default:
		return document.Anywhere
	}
}

func readSource(deps *rootDeps, args []string) (string, error) {
	if len(args) == 0 {
		in := deps.In
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
