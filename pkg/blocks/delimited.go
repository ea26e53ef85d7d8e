package blocks

import (
	"strings"

	"github.com/jlrickert/adoc/pkg/content"
	"github.com/jlrickert/adoc/pkg/span"
	"github.com/jlrickert/adoc/pkg/warnings"
)

// detectFence reports whether line (with trailing whitespace already
// trimmed by the caller) is a delimited-block fence: a run of one
// repeated character, either exactly two dashes (open block) or at
// least four of "-", ".", "+", "=", "*", "_", or "/".
func detectFence(line string) (ch byte, length int, ok bool) {
	if line == "" {
		return 0, 0, false
	}
	ch = line[0]
	for i := 1; i < len(line); i++ {
		if line[i] != ch {
			return 0, 0, false
		}
	}
	length = len(line)
	if ch == '-' && length == 2 {
		return ch, length, true
	}
	if length >= 4 && strings.IndexByte("-.+=*_/", ch) >= 0 {
		return ch, length, true
	}
	return 0, 0, false
}

// delimiterKind maps a fence character/length to a block kind name and
// reports whether it introduces a raw (unparsed-content) or compound
// (nested-block) delimited block.
func delimiterKind(ch byte, length int) (kind string, isRaw bool) {
	switch {
	case ch == '-' && length == 2:
		return "open", false
	case ch == '-':
		return "listing", true
	case ch == '.':
		return "literal", true
	case ch == '+':
		return "pass", true
	case ch == '=':
		return "example", false
	case ch == '*':
		return "sidebar", false
	case ch == '_':
		return "quote", false
	case ch == '/':
		return "comment", true
	default:
		return "unknown", true
	}
}

// tryDelimitedBlock recognizes a delimited block, scanning for a
// matching closing fence. An unterminated block consumes all remaining
// input as its body and records an UnterminatedDelimitedBlock warning,
// matching Asciidoctor's own best-effort recovery.
func tryDelimitedBlock(rest span.Span, meta BlockMetadata, start span.Span, ctx *ParseContext) (Block, span.Span, bool) {
	firstLine := rest.TakeNormalizedLine()
	ch, length, ok := detectFence(firstLine.Item.Data())
	if !ok {
		return nil, rest, false
	}

	bodyStart := firstLine.After
	cursor := bodyStart
	bodyEnd := cursor
	remainder := cursor
	terminated := false

	for !cursor.IsEmpty() {
		lineMatch := cursor.TakeNormalizedLine()
		lch, llen, lok := detectFence(lineMatch.Item.Data())
		if lok && lch == ch && llen == length {
			bodyEnd = cursor
			remainder = lineMatch.After
			terminated = true
			break
		}
		cursor = lineMatch.After
	}

	if !terminated {
		ctx.warn(rest, warnings.UnterminatedDelimitedBlock, "delimited block was not terminated before end of input")
		bodyEnd = cursor
		remainder = cursor
	}

	bodySpan := bodyStart.TrimRemainder(bodyEnd)
	if terminated {
		bodySpan = bodySpan.TrimTrailingLineEnd()
	}
	kind, isRaw := delimiterKind(ch, length)
	delimiter := strings.Repeat(string(ch), length)

	if isRaw {
		var c content.Content
		switch kind {
		case "comment":
			resolveGroup(&meta, content.Pass)
			c = content.Content{Original: bodySpan}
		case "pass":
			c = ctx.substituteBlockContent(bodySpan, &meta, content.Pass)
		default:
			c = ctx.substituteBlockContent(bodySpan, &meta, content.Verbatim)
		}
		return &RawDelimitedBlock{
			BlockMetadata: meta,
			SourceSpan:    start.TrimRemainder(remainder),
			Delimiter:     delimiter,
			Kind:          kind,
			Content:       c,
		}, remainder, true
	}

	// A terminated compound block parses its body recursively. An
	// unterminated one must not: re-classifying the swallowed text would
	// reinterpret stray delimiter lines as further nested blocks, so the
	// whole remaining body becomes one paragraph instead.
	var children []Block
	if terminated {
		children, _ = parseBlockSequence(bodySpan, nil, ctx)
	} else if !bodySpan.IsEmpty() {
		var childMeta BlockMetadata
		c := ctx.substituteBlockContent(bodySpan, &childMeta, content.Normal)
		children = []Block{&SimpleBlock{
			BlockMetadata: childMeta,
			SourceSpan:    bodySpan,
			Content:       c,
		}}
	}
	resolveGroup(&meta, content.Normal)
	return &CompoundDelimitedBlock{
		BlockMetadata: meta,
		SourceSpan:    start.TrimRemainder(remainder),
		Delimiter:     delimiter,
		Kind:          kind,
		Children:      children,
	}, remainder, true
}
