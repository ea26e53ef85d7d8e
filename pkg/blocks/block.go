// Package blocks implements the block classifier and recursive block
// parser: turning a span of AsciiDoc source into a tree of typed Block
// values (paragraphs, sections, lists, delimited blocks, block macros,
// breaks, and document attribute entries).
package blocks

import (
	"log/slog"

	"github.com/jlrickert/adoc/pkg/attrlist"
	"github.com/jlrickert/adoc/pkg/content"
	"github.com/jlrickert/adoc/pkg/document"
	"github.com/jlrickert/adoc/pkg/log"
	"github.com/jlrickert/adoc/pkg/render"
	"github.com/jlrickert/adoc/pkg/span"
	"github.com/jlrickert/adoc/pkg/warnings"
)

// BlockMetadata holds the attributes common to every block kind: an
// optional anchor ID, an optional title, roles and options parsed from
// shorthand or named attributes, the full parsed Attrlist (if an
// attribute line preceded the block), a block style name, and the
// substitution group actually applied to the block's content (either
// its kind's default, or an override from a "subs=" attrlist entry).
type BlockMetadata struct {
	ID              string
	HasAnchor       bool
	AnchorReftext   string
	Title           content.Content
	HasTitle        bool
	Roles           []string
	Options         []string
	Attrlist        attrlist.Attrlist
	HasAttrlist     bool
	Style           string
	SubsOverride    string
	HasSubsOverride bool
	Group           content.Group
}

// Metadata returns m itself; embedding BlockMetadata in a concrete block
// type promotes this method, satisfying the Block interface.
func (m BlockMetadata) Metadata() BlockMetadata { return m }

// HasOption reports whether name was set via a "%name" shorthand item or
// the "options"/"opts" attrlist entry.
func (m BlockMetadata) HasOption(name string) bool {
	for _, o := range m.Options {
		if o == name {
			return true
		}
	}
	return false
}

// DeclaredStyle returns the block style named by the attrlist's
// shorthand first-positional segment, if any.
func (m BlockMetadata) DeclaredStyle() (string, bool) {
	return m.Style, m.Style != ""
}

// SubstitutionGroup returns the substitution group actually applied to
// the block's content.
func (m BlockMetadata) SubstitutionGroup() content.Group {
	return m.Group
}

// ContentModel classifies the shape of a block's content, mirroring
// Asciidoctor's content_model: whether it holds nested blocks, inline
// text, literal/verbatim text, unprocessed raw text, or nothing.
type ContentModel int

const (
	ContentCompound ContentModel = iota
	ContentSimple
	ContentVerbatim
	ContentRaw
	ContentEmpty
)

func (m ContentModel) String() string {
	switch m {
	case ContentCompound:
		return "compound"
	case ContentSimple:
		return "simple"
	case ContentVerbatim:
		return "verbatim"
	case ContentRaw:
		return "raw"
	case ContentEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// resolvedContext returns style if the block declared one via shorthand
// or named style attribute, otherwise raw falls back unchanged:
// Asciidoctor's resolved_context reflects a style override, while
// raw_context always names the block's structural kind.
func resolvedContext(meta BlockMetadata, raw string) string {
	if style, ok := meta.DeclaredStyle(); ok {
		return style
	}
	return raw
}

// Block is implemented by every block kind. Metadata returns the
// block's common attributes; Span returns the full source text the
// block was parsed from, title line and attribute line included.
// ContentModel, RawContext, and ResolvedContext expose the block's
// structural classification; NestedBlocks is the uniform accessor over
// a block's children (nil for leaf kinds); HasOption, DeclaredStyle,
// and SubstitutionGroup are promoted from BlockMetadata.
type Block interface {
	Metadata() BlockMetadata
	Span() span.Span
	ContentModel() ContentModel
	RawContext() string
	ResolvedContext() string
	NestedBlocks() []Block
	HasOption(name string) bool
	DeclaredStyle() (string, bool)
	SubstitutionGroup() content.Group
}

// SimpleBlock is an ordinary paragraph: one or more contiguous
// non-blank lines, substituted with the Normal group.
type SimpleBlock struct {
	BlockMetadata
	SourceSpan span.Span
	Content    content.Content
}

func (b *SimpleBlock) Span() span.Span            { return b.SourceSpan }
func (b *SimpleBlock) NestedBlocks() []Block      { return nil }
func (b *SimpleBlock) ContentModel() ContentModel { return ContentSimple }
func (b *SimpleBlock) RawContext() string         { return "paragraph" }
func (b *SimpleBlock) ResolvedContext() string    { return resolvedContext(b.BlockMetadata, "paragraph") }

// SectionType distinguishes ordinary numbered/nested sections from
// discrete headings (style "discrete": a heading with no section body
// semantics) and appendices (style "appendix").
type SectionType int

const (
	SectionNormal SectionType = iota
	SectionDiscrete
	SectionAppendix
)

func (t SectionType) String() string {
	switch t {
	case SectionDiscrete:
		return "discrete"
	case SectionAppendix:
		return "appendix"
	default:
		return "normal"
	}
}

// SectionBlock is a titled section and the blocks nested beneath it,
// up to (but not including) the next peer or ancestor section title.
// Number is the dotted section number ("1.2.") assigned when the
// "sectnums" attribute is set; empty otherwise.
type SectionBlock struct {
	BlockMetadata
	SourceSpan span.Span
	Level      int
	Title      content.Content
	Type       SectionType
	Number     string
	Children   []Block
}

func (b *SectionBlock) Span() span.Span            { return b.SourceSpan }
func (b *SectionBlock) NestedBlocks() []Block      { return b.Children }
func (b *SectionBlock) ContentModel() ContentModel { return ContentCompound }
func (b *SectionBlock) RawContext() string         { return "section" }
func (b *SectionBlock) ResolvedContext() string    { return resolvedContext(b.BlockMetadata, "section") }

// MediaBlock is a block-level image/audio/video macro
// ("image::target[attrs]" on its own line).
type MediaBlock struct {
	BlockMetadata
	SourceSpan span.Span
	Kind       string
	Target     string
	Attrs      attrlist.Attrlist
}

func (b *MediaBlock) Span() span.Span            { return b.SourceSpan }
func (b *MediaBlock) NestedBlocks() []Block      { return nil }
func (b *MediaBlock) ContentModel() ContentModel { return ContentEmpty }
func (b *MediaBlock) RawContext() string         { return b.Kind }
func (b *MediaBlock) ResolvedContext() string    { return resolvedContext(b.BlockMetadata, b.Kind) }

// MacroBlock is any other block macro ("name::target[attrs]").
type MacroBlock struct {
	BlockMetadata
	SourceSpan span.Span
	Name       string
	Target     string
	Attrs      attrlist.Attrlist
}

func (b *MacroBlock) Span() span.Span            { return b.SourceSpan }
func (b *MacroBlock) NestedBlocks() []Block      { return nil }
func (b *MacroBlock) ContentModel() ContentModel { return ContentEmpty }
func (b *MacroBlock) RawContext() string         { return b.Name }
func (b *MacroBlock) ResolvedContext() string    { return resolvedContext(b.BlockMetadata, b.Name) }

// RawDelimitedBlock is a delimited block whose content is never parsed
// into child blocks: listing, literal, passthrough, and comment blocks.
type RawDelimitedBlock struct {
	BlockMetadata
	SourceSpan span.Span
	Delimiter  string
	Kind       string
	Content    content.Content
}

func (b *RawDelimitedBlock) Span() span.Span       { return b.SourceSpan }
func (b *RawDelimitedBlock) NestedBlocks() []Block { return nil }

func (b *RawDelimitedBlock) ContentModel() ContentModel {
	switch b.Kind {
	case "comment":
		return ContentEmpty
	case "pass":
		return ContentRaw
	default:
		return ContentVerbatim
	}
}
func (b *RawDelimitedBlock) RawContext() string      { return b.Kind }
func (b *RawDelimitedBlock) ResolvedContext() string { return resolvedContext(b.BlockMetadata, b.Kind) }

// CompoundDelimitedBlock is a delimited block whose content is parsed
// recursively as nested blocks: example, sidebar, quote, and open
// blocks.
type CompoundDelimitedBlock struct {
	BlockMetadata
	SourceSpan span.Span
	Delimiter  string
	Kind       string
	Children   []Block
}

func (b *CompoundDelimitedBlock) Span() span.Span            { return b.SourceSpan }
func (b *CompoundDelimitedBlock) NestedBlocks() []Block      { return b.Children }
func (b *CompoundDelimitedBlock) ContentModel() ContentModel { return ContentCompound }
func (b *CompoundDelimitedBlock) RawContext() string         { return b.Kind }
func (b *CompoundDelimitedBlock) ResolvedContext() string {
	return resolvedContext(b.BlockMetadata, b.Kind)
}

// ListBlock is a run of list items sharing one marker style.
type ListBlock struct {
	BlockMetadata
	SourceSpan span.Span
	Type       string
	Items      []*ListItemBlock
}

func (b *ListBlock) Span() span.Span { return b.SourceSpan }
func (b *ListBlock) NestedBlocks() []Block {
	out := make([]Block, len(b.Items))
	for i, item := range b.Items {
		out[i] = item
	}
	return out
}
func (b *ListBlock) ContentModel() ContentModel { return ContentCompound }
func (b *ListBlock) RawContext() string {
	switch b.Type {
	case "ordered":
		return "olist"
	case "description":
		return "dlist"
	default:
		return "ulist"
	}
}
func (b *ListBlock) ResolvedContext() string { return resolvedContext(b.BlockMetadata, b.RawContext()) }

// ListItemBlock is a single list item: its principal text, plus any
// nested list attached when a deeper or differently-marked run of items
// follows it. Continuation blocks beyond nested lists are not parsed.
type ListItemBlock struct {
	BlockMetadata
	SourceSpan span.Span
	Marker     string
	Principal  content.Content
	Children   []Block
}

func (b *ListItemBlock) Span() span.Span       { return b.SourceSpan }
func (b *ListItemBlock) NestedBlocks() []Block { return b.Children }
func (b *ListItemBlock) ContentModel() ContentModel {
	if len(b.Children) > 0 {
		return ContentCompound
	}
	return ContentSimple
}
func (b *ListItemBlock) RawContext() string         { return "list_item" }
func (b *ListItemBlock) ResolvedContext() string {
	return resolvedContext(b.BlockMetadata, "list_item")
}

// BreakBlock is a thematic or page break.
type BreakBlock struct {
	BlockMetadata
	SourceSpan span.Span
	Kind       string
}

func (b *BreakBlock) Span() span.Span            { return b.SourceSpan }
func (b *BreakBlock) NestedBlocks() []Block      { return nil }
func (b *BreakBlock) ContentModel() ContentModel { return ContentEmpty }
func (b *BreakBlock) RawContext() string         { return b.Kind + "_break" }
func (b *BreakBlock) ResolvedContext() string    { return resolvedContext(b.BlockMetadata, b.RawContext()) }

// PreambleBlock wraps the blocks that precede the first section of a
// document that has at least one section.
type PreambleBlock struct {
	BlockMetadata
	SourceSpan span.Span
	Children   []Block
}

func (b *PreambleBlock) Span() span.Span            { return b.SourceSpan }
func (b *PreambleBlock) NestedBlocks() []Block      { return b.Children }
func (b *PreambleBlock) ContentModel() ContentModel { return ContentCompound }
func (b *PreambleBlock) RawContext() string         { return "preamble" }
func (b *PreambleBlock) ResolvedContext() string {
	return resolvedContext(b.BlockMetadata, "preamble")
}

// DocumentAttributeBlock is a body-level ":name: value" or ":name!:"
// attribute entry.
type DocumentAttributeBlock struct {
	BlockMetadata
	SourceSpan span.Span
	Name       string
	Value      string
	Unset      bool
}

func (b *DocumentAttributeBlock) Span() span.Span            { return b.SourceSpan }
func (b *DocumentAttributeBlock) NestedBlocks() []Block      { return nil }
func (b *DocumentAttributeBlock) ContentModel() ContentModel { return ContentEmpty }
func (b *DocumentAttributeBlock) RawContext() string         { return "document_attribute" }
func (b *DocumentAttributeBlock) ResolvedContext() string {
	return resolvedContext(b.BlockMetadata, "document_attribute")
}

// ParseContext carries the shared, mutable state threaded through block
// parsing: the document attribute table and ID catalog, the renderer
// used by the substitution pipeline, the warning sink, and the
// most-recently-seen section level used to detect skipped levels.
type ParseContext struct {
	Attributes       *document.AttributeTable
	Catalog          *document.Catalog
	Renderer         render.Renderer
	Warnings         *[]warnings.Warning
	Logger           *slog.Logger
	MostRecentLevel  int
	IDPrefix         string
	IDSeparator      string
	MissingAttribute content.MissingAttributePolicy

	sectionCounters []int
}

// NewParseContext returns a ParseContext with no section seen yet, the
// default ID prefix ("_") and separator ("_"), and a no-op logger (set
// one with SetLogger to observe warnings as they're recorded).
func NewParseContext(attrs *document.AttributeTable, catalog *document.Catalog, renderer render.Renderer, warns *[]warnings.Warning) *ParseContext {
	return &ParseContext{
		Attributes:      attrs,
		Catalog:         catalog,
		Renderer:        renderer,
		Warnings:        warns,
		Logger:          log.NewNopLogger(),
		MostRecentLevel: -1,
		IDPrefix:        "_",
		IDSeparator:     "_",
	}
}

// SetLogger installs lg as the logger used to report warnings as
// they're appended. A nil lg is treated as a no-op logger.
func (ctx *ParseContext) SetLogger(lg *slog.Logger) {
	if lg == nil {
		lg = log.NewNopLogger()
	}
	ctx.Logger = lg
}

func (ctx *ParseContext) contentCtx() *content.Context {
	return &content.Context{
		Attributes:       ctx.Attributes,
		Renderer:         ctx.Renderer,
		Warnings:         ctx.Warnings,
		MissingAttribute: ctx.MissingAttribute,
	}
}

func (ctx *ParseContext) warn(s span.Span, t warnings.Type, msg string) {
	ctx.appendWarning(warnings.New(s, t, msg))
}

func (ctx *ParseContext) appendWarning(w warnings.Warning) {
	if ctx.Logger != nil {
		ctx.Logger.Debug("parser warning", "type", w.Type.String(), "line", w.Source.Line(), "col", w.Source.Col(), "message", w.Message)
	}
	if ctx.Warnings == nil {
		return
	}
	*ctx.Warnings = append(*ctx.Warnings, w)
}

// attrSubstituter returns the Substituter block parsers hand to the
// attrlist parser: it applies the attribute-entry-value substitutions to
// raw values that contain characters those substitutions act on.
func (ctx *ParseContext) attrSubstituter() attrlist.Substituter {
	return func(raw string) string {
		return content.New(span.New(raw)).Apply(content.AttributeEntryValue, ctx.contentCtx()).Rendered
	}
}

// parseAttrlist parses an attribute list interior, recording any
// diagnostics it produces against the enclosing document.
func (ctx *ParseContext) parseAttrlist(inner span.Span) attrlist.Attrlist {
	al, warns := attrlist.ParseWithWarnings(inner, ctx.attrSubstituter())
	for _, w := range warns {
		ctx.appendWarning(w)
	}
	return al
}

// substituteContent applies group to source, bracketing the steps with
// passthrough extraction and restoration when the group includes the
// macros step. Groups without macros (verbatim, pass) never extract, so
// passthrough delimiters in their content stay literal.
func (ctx *ParseContext) substituteContent(source span.Span, group content.Group) content.Content {
	cctx := ctx.contentCtx()
	c := content.New(source)
	if !group.HasStep(content.StepMacros) {
		return c.Apply(group, cctx)
	}
	extracted, stash := content.ExtractPassthroughs(c)
	applied := extracted.Apply(group, cctx)
	return content.RestorePassthroughs(applied, stash, cctx)
}

// resolveGroup returns the group meta's "subs=" attrlist entry names, if
// present and valid, otherwise def, recording whichever was chosen on
// meta for later retrieval via Block.SubstitutionGroup.
func resolveGroup(meta *BlockMetadata, def content.Group) content.Group {
	group := def
	if meta.HasSubsOverride {
		if g, ok := content.ParseGroup(meta.SubsOverride); ok {
			group = g
		}
	}
	meta.Group = group
	return group
}

// substituteBlockContent resolves meta's effective substitution group
// (honoring a "subs=" override over def) and substitutes source under
// it, recording the resolved group on meta.
func (ctx *ParseContext) substituteBlockContent(source span.Span, meta *BlockMetadata, def content.Group) content.Content {
	return ctx.substituteContent(source, resolveGroup(meta, def))
}
