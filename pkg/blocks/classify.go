package blocks

import (
	"strings"

	"github.com/jlrickert/adoc/pkg/content"
	"github.com/jlrickert/adoc/pkg/document"
	"github.com/jlrickert/adoc/pkg/span"
	"github.com/jlrickert/adoc/pkg/warnings"
)

// ParseBlock classifies and parses exactly one block starting at rest
// (after discarding any leading blank lines), trying each block kind's
// recognizer in turn. A fast first-byte check on the first non-blank
// line would be a pure performance optimization; the dispatch order
// below is chosen so the cheapest, least ambiguous checks (document
// attribute entries, breaks) run before the more expensive ones.
func ParseBlock(rest span.Span, ctx *ParseContext) (Block, span.Span, bool) {
	rest = rest.DiscardEmptyLines()
	if rest.IsEmpty() {
		return nil, rest, false
	}

	meta, afterMeta := parseBlockMetadata(rest, ctx)
	afterMeta = afterMeta.DiscardEmptyLines()
	if afterMeta.IsEmpty() {
		if meta.HasTitle || meta.HasAttrlist || meta.HasAnchor {
			ctx.warn(rest, warnings.MissingBlockAfterTitleOrAttributeList,
				"block title or attribute list is not followed by a block")
			return reparseMetadataLines(rest, ctx)
		}
		return nil, rest, false
	}
	start := rest

	type recognizer func(span.Span, BlockMetadata, span.Span, *ParseContext) (Block, span.Span, bool)
	for _, try := range []recognizer{
		tryDocumentAttribute,
		tryBreak,
		trySection,
		tryDelimitedBlock,
		tryMediaOrMacro,
		tryList,
	} {
		if blk, next, ok := try(afterMeta, meta, start, ctx); ok {
			return blk, next, true
		}
	}

	return trySimple(afterMeta, meta, start, ctx)
}

// tryDocumentAttribute recognizes a body-level ":name: value" or
// ":name!:" attribute entry, applying it to the document attribute
// table immediately.
func tryDocumentAttribute(rest span.Span, meta BlockMetadata, start span.Span, ctx *ParseContext) (Block, span.Span, bool) {
	line, ok := rest.TakeNonEmptyLine()
	if !ok {
		return nil, rest, false
	}

	name, value, isEntry := document.ParseAttributeEntryLine(line.Item.Data())
	if !isEntry {
		return nil, rest, false
	}

	unset := strings.HasSuffix(name, "!") || strings.HasPrefix(name, "!")
	cleanName := strings.TrimSuffix(strings.TrimPrefix(name, "!"), "!")
	if unset {
		ctx.Attributes.Unset(cleanName)
	} else {
		ctx.Attributes.SetFromBody(cleanName, value)
	}

	resolveGroup(&meta, content.Normal)

	return &DocumentAttributeBlock{
		BlockMetadata: meta,
		SourceSpan:    start.TrimRemainder(line.After),
		Name:          cleanName,
		Value:         value,
		Unset:         unset,
	}, line.After, true
}

// trySimple is the fallback block kind: a run of contiguous non-blank
// lines, ending at the first blank line or the first line any other
// recognizer would claim.
func trySimple(rest span.Span, meta BlockMetadata, start span.Span, ctx *ParseContext) (Block, span.Span, bool) {
	cursor := rest
	for {
		if cursor.IsEmpty() {
			break
		}
		line, ok := cursor.TakeNonEmptyLine()
		if !ok {
			break
		}
		if cursor.ByteOffset() != rest.ByteOffset() && startsNewBlock(cursor, ctx) {
			break
		}
		cursor = line.After
	}

	bodySpan := rest.TrimRemainder(cursor)
	if bodySpan.IsEmpty() {
		return nil, rest, false
	}

	c := ctx.substituteBlockContent(bodySpan, &meta, content.Normal)
	return &SimpleBlock{
		BlockMetadata: meta,
		SourceSpan:    start.TrimRemainder(cursor),
		Content:       c,
	}, cursor, true
}

// reparseMetadataLines turns a run of orphaned metadata lines (a title
// or attribute list with no block after it) back into an ordinary
// paragraph, discarding the metadata interpretation entirely.
func reparseMetadataLines(rest span.Span, ctx *ParseContext) (Block, span.Span, bool) {
	cursor := rest
	for {
		line, ok := cursor.TakeNonEmptyLine()
		if !ok {
			break
		}
		cursor = line.After
	}

	bodySpan := rest.TrimRemainder(cursor)
	if bodySpan.IsEmpty() {
		return nil, rest, false
	}

	var meta BlockMetadata
	c := ctx.substituteBlockContent(bodySpan, &meta, content.Normal)
	return &SimpleBlock{
		BlockMetadata: meta,
		SourceSpan:    bodySpan,
		Content:       c,
	}, cursor, true
}

// startsNewBlock reports whether rest looks like the start of a new,
// non-paragraph block, so a paragraph in progress should stop before it
// rather than swallowing it.
func startsNewBlock(rest span.Span, ctx *ParseContext) bool {
	if _, ok := peekSectionLevel(rest); ok {
		return true
	}
	if line, ok := rest.TakeNonEmptyLine(); ok {
		data := line.Item.Data()
		if _, _, ok := detectFence(data); ok {
			return true
		}
		if _, ok := breakKind(data); ok {
			return true
		}
		if _, _, isEntry := document.ParseAttributeEntryLine(data); isEntry {
			return true
		}
		if blockMacroRe.MatchString(data) {
			return true
		}
	}
	if _, ok := rest.TakePrefix("["); ok {
		return true
	}
	if _, _, _, ok := matchListMarker(rest); ok {
		return true
	}
	return false
}

// ParseBlocks parses an entire top-level span of source into a sequence
// of blocks. If at least one section appears among the top-level
// results, every block preceding the first section is wrapped in a
// single PreambleBlock, matching Asciidoctor's document structure.
func ParseBlocks(source span.Span, ctx *ParseContext) []Block {
	top, _ := parseBlockSequence(source, nil, ctx)

	firstSection := -1
	for i, b := range top {
		if _, ok := b.(*SectionBlock); ok {
			firstSection = i
			break
		}
	}
	if firstSection <= 0 {
		return top
	}

	preambleChildren := top[:firstSection]
	preamble := &PreambleBlock{
		SourceSpan: preambleChildren[0].Span().TrimRemainder(top[firstSection].Span()),
		Children:   preambleChildren,
	}

	result := make([]Block, 0, len(top)-firstSection+1)
	result = append(result, preamble)
	result = append(result, top[firstSection:]...)
	return result
}
