package blocks

import (
	"github.com/jlrickert/adoc/pkg/content"
	"github.com/jlrickert/adoc/pkg/span"
)

// breakKind classifies a line as a thematic break ("'''" and the
// markdown-style "---", "- - -", "***", "* * *" forms) or a page break
// ("<<<").
func breakKind(data string) (string, bool) {
	switch data {
	case "'''", "---", "- - -", "***", "* * *":
		return "thematic", true
	case "<<<":
		return "page", true
	}
	return "", false
}

// tryBreak recognizes a thematic or page break on its own line.
func tryBreak(rest span.Span, meta BlockMetadata, start span.Span, ctx *ParseContext) (Block, span.Span, bool) {
	line, ok := rest.TakeNonEmptyLine()
	if !ok {
		return nil, rest, false
	}

	kind, isBreak := breakKind(line.Item.Data())
	if !isBreak {
		return nil, rest, false
	}

	resolveGroup(&meta, content.Normal)

	return &BreakBlock{
		BlockMetadata: meta,
		SourceSpan:    start.TrimRemainder(line.After),
		Kind:          kind,
	}, line.After, true
}
