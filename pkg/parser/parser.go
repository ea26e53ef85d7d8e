// Package parser assembles the span, content, attrlist, document, and
// blocks packages into a single entry point: Parser.Parse turns a
// string of AsciiDoc source into a Document.
package parser

import (
	"log/slog"

	"github.com/jlrickert/adoc/pkg/blocks"
	"github.com/jlrickert/adoc/pkg/content"
	"github.com/jlrickert/adoc/pkg/document"
	"github.com/jlrickert/adoc/pkg/log"
	"github.com/jlrickert/adoc/pkg/render"
	"github.com/jlrickert/adoc/pkg/span"
	"github.com/jlrickert/adoc/pkg/warnings"
)

// Document is the fully parsed form of an AsciiDoc source document: its
// header, its top-level block sequence, the catalog of IDs referenced
// within it, and the final attribute table.
type Document struct {
	Source     span.Span
	Header     document.Header
	Body       []blocks.Block
	Catalog    *document.Catalog
	Attributes *document.AttributeTable
	Warnings   []warnings.Warning
}

// intrinsicAttribute is one attribute seeded before parsing begins, via
// WithIntrinsicAttribute.
type intrinsicAttribute struct {
	name  string
	value string
	ctx   document.ModificationContext
}

// Parser builds Documents from source text. The zero value is not
// usable; construct one with Default.
type Parser struct {
	renderer         render.Renderer
	intrinsics       []intrinsicAttribute
	idPrefix         string
	idSeparator      string
	logger           *slog.Logger
	missingAttribute content.MissingAttributePolicy
}

// Default returns a Parser configured with the standard HTML renderer,
// Asciidoctor's default ID prefix ("_") and separator ("_"), and a
// no-op logger.
func Default() *Parser {
	return &Parser{
		renderer:    render.HTML{},
		idPrefix:    "_",
		idSeparator: "_",
		logger:      log.NewNopLogger(),
	}
}

// WithLogger returns a copy of p that logs each recorded warning (at
// Debug level) through lg as parsing proceeds, in addition to
// collecting it in the returned Document's Warnings.
func (p *Parser) WithLogger(lg *slog.Logger) *Parser {
	cp := *p
	cp.logger = lg
	return &cp
}

// WithRenderer returns a copy of p using r in place of the default HTML
// renderer.
func (p *Parser) WithRenderer(r render.Renderer) *Parser {
	cp := *p
	cp.renderer = r
	return &cp
}

// WithIntrinsicAttribute returns a copy of p that seeds name to value
// before parsing begins, fixed under the given modification context.
// Intrinsic attributes are applied in the order registered, each
// overriding any earlier registration of the same name.
func (p *Parser) WithIntrinsicAttribute(name, value string, ctx document.ModificationContext) *Parser {
	cp := *p
	cp.intrinsics = append(append([]intrinsicAttribute{}, p.intrinsics...), intrinsicAttribute{name, value, ctx})
	return &cp
}

// WithIDPrefix returns a copy of p that generates section anchor IDs
// with the given prefix instead of the default "_".
func (p *Parser) WithIDPrefix(prefix string) *Parser {
	cp := *p
	cp.idPrefix = prefix
	return &cp
}

// WithIDSeparator returns a copy of p that collapses whitespace in
// generated section anchor IDs to the given separator instead of the
// default "_".
func (p *Parser) WithIDSeparator(sep string) *Parser {
	cp := *p
	cp.idSeparator = sep
	return &cp
}

// WithMissingAttributePolicy returns a copy of p that handles
// unresolvable `{name}` attribute references per policy: left in place
// (the default), dropped from the output, or left in place with a
// warning recorded.
func (p *Parser) WithMissingAttributePolicy(policy content.MissingAttributePolicy) *Parser {
	cp := *p
	cp.missingAttribute = policy
	return &cp
}

// Parse parses source into a Document: a header, a catalog-registered
// body of blocks, and the final attribute table. Recoverable issues
// (unterminated delimited blocks, skipped section levels, unresolved
// attribute references, duplicate IDs) are recorded in the returned
// Document's Warnings rather than failing the parse.
func (p *Parser) Parse(source string) Document {
	attrs := document.NewAttributeTable()
	attrs.SetIntrinsic("sectids", "", document.Anywhere)
	for _, in := range p.intrinsics {
		attrs.SetIntrinsic(in.name, in.value, in.ctx)
	}

	catalog := document.NewCatalog()
	var warns []warnings.Warning

	src := span.New(source)
	header, rest := document.ParseHeader(src, attrs)

	ctx := blocks.NewParseContext(attrs, catalog, p.renderer, &warns)
	ctx.IDPrefix = p.idPrefix
	ctx.IDSeparator = p.idSeparator
	ctx.MissingAttribute = p.missingAttribute
	ctx.SetLogger(p.logger)

	body := blocks.ParseBlocks(rest, ctx)

	return Document{
		Source:     src,
		Header:     header,
		Body:       body,
		Catalog:    catalog,
		Attributes: attrs,
		Warnings:   warns,
	}
}
