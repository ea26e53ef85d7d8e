package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jlrickert/adoc/pkg/blocks"
	"github.com/jlrickert/adoc/pkg/parser"
)

// printTree writes a human-readable indented dump of a parsed document:
// short lines, one block per line, no decoration beyond indentation.
func printTree(w io.Writer, doc parser.Document) {
	if doc.Header.HasTitle {
		fmt.Fprintf(w, "= %s\n", doc.Header.Title.Rendered)
	}
	for _, a := range doc.Header.Authors {
		fmt.Fprintf(w, "author: %s <%s>\n", a.FullName(), a.Email)
	}
	if doc.Header.HasRevision {
		fmt.Fprintf(w, "revision: %s\n", doc.Header.Revision.Version)
	}

	for _, b := range doc.Body {
		printBlock(w, b, 0)
	}

	if len(doc.Warnings) > 0 {
		fmt.Fprintf(w, "\n%d warning(s):\n", len(doc.Warnings))
		for _, warn := range doc.Warnings {
			fmt.Fprintf(w, "  %s:%d: %s: %s\n", "source", warn.Source.Line(), warn.Type, warn.Message)
		}
	}
}

func printBlock(w io.Writer, b blocks.Block, depth int) {
	indent := strings.Repeat("  ", depth)

	switch blk := b.(type) {
	case *blocks.SectionBlock:
		fmt.Fprintf(w, "%ssection[%d] #%s: %s\n", indent, blk.Level, blk.ID, blk.Title.Rendered)
		for _, child := range blk.Children {
			printBlock(w, child, depth+1)
		}
	case *blocks.PreambleBlock:
		fmt.Fprintf(w, "%spreamble:\n", indent)
		for _, child := range blk.Children {
			printBlock(w, child, depth+1)
		}
	case *blocks.CompoundDelimitedBlock:
		fmt.Fprintf(w, "%s%s block:\n", indent, blk.Kind)
		for _, child := range blk.Children {
			printBlock(w, child, depth+1)
		}
	case *blocks.RawDelimitedBlock:
		fmt.Fprintf(w, "%s%s block: %s\n", indent, blk.Kind, summarize(blk.Content.Rendered))
	case *blocks.SimpleBlock:
		fmt.Fprintf(w, "%sparagraph: %s\n", indent, summarize(blk.Content.Rendered))
	case *blocks.ListBlock:
		fmt.Fprintf(w, "%s%s list (%d items):\n", indent, blk.Type, len(blk.Items))
		for _, item := range blk.Items {
			fmt.Fprintf(w, "%s  - %s\n", indent, summarize(item.Principal.Rendered))
			for _, child := range item.Children {
				printBlock(w, child, depth+2)
			}
		}
	case *blocks.MediaBlock:
		fmt.Fprintf(w, "%s%s:: %s\n", indent, blk.Kind, blk.Target)
	case *blocks.MacroBlock:
		fmt.Fprintf(w, "%s%s:: %s\n", indent, blk.Name, blk.Target)
	case *blocks.BreakBlock:
		fmt.Fprintf(w, "%s%s break\n", indent, blk.Kind)
	case *blocks.DocumentAttributeBlock:
		fmt.Fprintf(w, "%s:%s: %s\n", indent, blk.Name, blk.Value)
	default:
		fmt.Fprintf(w, "%s<unknown block>\n", indent)
	}
}

func summarize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	const max = 72
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
