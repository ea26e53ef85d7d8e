// Package render defines the hooks through which the substitution
// pipeline in pkg/content turns recognized inline constructs (quoted
// text, links, images, icons, line breaks, symbols, character
// references) into output markup, and provides a default HTML renderer.
package render

import (
	"html"
	"strconv"
	"strings"

	"github.com/jlrickert/adoc/pkg/attrlist"
)

// QuoteKind identifies which quoted-text formatting constraint matched.
type QuoteKind int

const (
	Emphasis QuoteKind = iota
	Strong
	Monospace
	Superscript
	Subscript
	DoubleCurved
	SingleCurved
	Marked
)

// LinkType distinguishes a plain link from a mailto link.
type LinkType int

const (
	LinkPlain LinkType = iota
	LinkMailto
)

// QuotedSubstitutionParams carries the inputs to RenderQuotedSubstitution.
type QuotedSubstitutionParams struct {
	Kind    QuoteKind
	Content string
}

// ImageRenderParams carries the inputs to RenderImage.
type ImageRenderParams struct {
	Target   string
	Alt      string
	Width    string
	Height   string
	Attrlist attrlist.Attrlist
}

// IconRenderParams carries the inputs to RenderIcon.
type IconRenderParams struct {
	Target   string
	Alt      string
	Size     string
	Attrlist attrlist.Attrlist
}

// LinkRenderParams carries the inputs to RenderLink. NewWindow is set
// when the link text carried a trailing "^", requesting the link open in
// a new window.
type LinkRenderParams struct {
	Target    string
	Text      string
	ID        string
	Roles     []string
	Type      LinkType
	NewWindow bool
	Attrlist  attrlist.Attrlist
}

// Renderer turns recognized inline constructs into output text. Each
// method appends its output to dest rather than returning a string, so
// callers can reuse a single growing buffer across a whole substitution
// pass.
type Renderer interface {
	RenderQuotedSubstitution(p QuotedSubstitutionParams, dest *strings.Builder)
	RenderLink(p LinkRenderParams, dest *strings.Builder)
	RenderImage(p ImageRenderParams, dest *strings.Builder)
	RenderIcon(p IconRenderParams, dest *strings.Builder)
	RenderLineBreak(dest *strings.Builder)
	RenderSymbol(name string, dest *strings.Builder)
	RenderCharacterReference(r rune, dest *strings.Builder)
	RenderCallout(number int, dest *strings.Builder)
}

// HTML is the default Renderer, producing plain HTML5 output.
type HTML struct{}

var quoteTags = map[QuoteKind][2]string{
	Emphasis:     {"<em>", "</em>"},
	Strong:       {"<strong>", "</strong>"},
	Monospace:    {"<code>", "</code>"},
	Superscript:  {"<sup>", "</sup>"},
	Subscript:    {"<sub>", "</sub>"},
	DoubleCurved: {"&#8220;", "&#8221;"},
	SingleCurved: {"&#8216;", "&#8217;"},
	Marked:       {"<mark>", "</mark>"},
}

func (HTML) RenderQuotedSubstitution(p QuotedSubstitutionParams, dest *strings.Builder) {
	tags, ok := quoteTags[p.Kind]
	if !ok {
		dest.WriteString(p.Content)
		return
	}
	dest.WriteString(tags[0])
	dest.WriteString(p.Content)
	dest.WriteString(tags[1])
}

func (HTML) RenderLink(p LinkRenderParams, dest *strings.Builder) {
	dest.WriteString(`<a href="`)
	dest.WriteString(html.EscapeString(p.Target))
	dest.WriteString(`"`)
	if len(p.Roles) > 0 {
		dest.WriteString(` class="`)
		dest.WriteString(strings.Join(p.Roles, " "))
		dest.WriteString(`"`)
	}
	if p.ID != "" {
		dest.WriteString(` id="`)
		dest.WriteString(html.EscapeString(p.ID))
		dest.WriteString(`"`)
	}
	if p.NewWindow {
		dest.WriteString(` target="_blank" rel="noopener"`)
	}
	dest.WriteString(">")
	dest.WriteString(p.Text)
	dest.WriteString("</a>")
}

func (HTML) RenderImage(p ImageRenderParams, dest *strings.Builder) {
	dest.WriteString(`<img src="`)
	dest.WriteString(html.EscapeString(p.Target))
	dest.WriteString(`" alt="`)
	dest.WriteString(html.EscapeString(p.Alt))
	dest.WriteString(`"`)
	if p.Width != "" {
		dest.WriteString(` width="` + html.EscapeString(p.Width) + `"`)
	}
	if p.Height != "" {
		dest.WriteString(` height="` + html.EscapeString(p.Height) + `"`)
	}
	dest.WriteString(">")
}

func (HTML) RenderIcon(p IconRenderParams, dest *strings.Builder) {
	dest.WriteString(`<span class="icon-`)
	dest.WriteString(html.EscapeString(p.Target))
	dest.WriteString(`" title="`)
	dest.WriteString(html.EscapeString(p.Alt))
	dest.WriteString(`"></span>`)
}

func (HTML) RenderLineBreak(dest *strings.Builder) {
	dest.WriteString("<br>")
}

var symbolReferences = map[string]string{
	"copyright":   "&#169;",
	"registered":  "&#174;",
	"trademark":   "&#8482;",
	"emdash":      "&#8212;",
	"ellipsis":    "&#8230;",
	"rightarrow":  "&#8594;",
	"rightdouble": "&#8658;",
	"leftarrow":   "&#8592;",
	"leftdouble":  "&#8656;",
	"apostrophe":  "&#8217;",
}

func (HTML) RenderSymbol(name string, dest *strings.Builder) {
	if ref, ok := symbolReferences[name]; ok {
		dest.WriteString(ref)
		return
	}
	dest.WriteString(name)
}

func (HTML) RenderCharacterReference(r rune, dest *strings.Builder) {
	dest.WriteRune(r)
}

func (HTML) RenderCallout(number int, dest *strings.Builder) {
	dest.WriteString(`<b class="conum">(`)
	dest.WriteString(strconv.Itoa(number))
	dest.WriteString(")</b>")
}
