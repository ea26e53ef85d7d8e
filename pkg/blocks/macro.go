package blocks

import (
	"regexp"

	"github.com/jlrickert/adoc/pkg/content"
	"github.com/jlrickert/adoc/pkg/span"
	"github.com/jlrickert/adoc/pkg/warnings"
)

// blockMacroRe matches a block macro invocation on its own line:
// "name::target[attrs]". The target may be empty; the attrlist interior
// (possibly empty) is captured whole.
var blockMacroRe = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9_-]*)::([^\[\n]*)\[(.*)\]$`)

var mediaMacroNames = map[string]bool{"image": true, "audio": true, "video": true}

// tryMediaOrMacro recognizes a block macro line, producing a MediaBlock
// for image/audio/video and a generic MacroBlock otherwise.
func tryMediaOrMacro(rest span.Span, meta BlockMetadata, start span.Span, ctx *ParseContext) (Block, span.Span, bool) {
	line, ok := rest.TakeNonEmptyLine()
	if !ok {
		return nil, rest, false
	}

	m := blockMacroRe.FindStringSubmatch(line.Item.Data())
	if m == nil {
		diagnoseMediaMacroLine(line.Item, ctx)
		return nil, rest, false
	}

	name, target, attrsText := m[1], m[2], m[3]
	if mediaMacroNames[name] && target == "" {
		ctx.warn(line.Item, warnings.MediaMacroMissingTarget, name+" macro is missing its target")
		return nil, rest, false
	}

	attrs := ctx.parseAttrlist(span.New(attrsText))
	sourceSpan := start.TrimRemainder(line.After)
	resolveGroup(&meta, content.Normal)

	if mediaMacroNames[name] {
		return &MediaBlock{
			BlockMetadata: meta, SourceSpan: sourceSpan,
			Kind: name, Target: target, Attrs: attrs,
		}, line.After, true
	}

	return &MacroBlock{
		BlockMetadata: meta, SourceSpan: sourceSpan,
		Name: name, Target: target, Attrs: attrs,
	}, line.After, true
}

// mediaSingleColonRe matches a whole line of the form "image:target[attrs]":
// a media macro written with a single colon where the block form needs two.
var mediaSingleColonRe = regexp.MustCompile(`^(image|audio|video):([^:\[\n][^\[\n]*)\[.*\]$`)

// mediaNoAttrlistRe matches a whole line of the form "image::target": a
// media macro with no bracketed attribute list at all.
var mediaNoAttrlistRe = regexp.MustCompile(`^(image|audio|video)::([^\[\n]*)$`)

// diagnoseMediaMacroLine reports why a line shaped like a media block
// macro failed the block-macro grammar. Only media names are diagnosed,
// and only when the whole line is the malformed macro; any other line
// that merely contains "::" is a legitimate paragraph or description
// list candidate, so it falls through silently.
func diagnoseMediaMacroLine(line span.Span, ctx *ParseContext) {
	if m := mediaSingleColonRe.FindStringSubmatch(line.Data()); m != nil {
		ctx.warn(line, warnings.MacroMissingDoubleColon, m[1]+" block macro requires a double colon")
		return
	}
	if m := mediaNoAttrlistRe.FindStringSubmatch(line.Data()); m != nil {
		ctx.warn(line, warnings.MacroMissingAttributeList, m[1]+" block macro is missing its attribute list")
	}
}
