package content

import (
	"regexp"
	"strings"

	"github.com/jlrickert/adoc/pkg/render"
)

type quoteDef struct {
	kind render.QuoteKind
	re   *regexp.Regexp
}

// quoteDefs enumerates the constrained quoted-text forms, most specific
// first (the curved-quote forms must be tried before the plain backtick
// monospace form, since they both start with a backtick). The content
// may not begin or end with the delimiter character itself, so a bare
// delimiter run like "****" is never formatted.
var quoteDefs = []quoteDef{
	{render.DoubleCurved, regexp.MustCompile(`"` + "`([^\\s`]|[^\\s`].*?[^\\s`])`" + `"`)},
	{render.SingleCurved, regexp.MustCompile(`'` + "`([^\\s`]|[^\\s`].*?[^\\s`])`" + `'`)},
	{render.Strong, regexp.MustCompile(`\*([^\s*]|[^\s*].*?[^\s*])\*`)},
	{render.Emphasis, regexp.MustCompile(`_([^\s_]|[^\s_].*?[^\s_])_`)},
	{render.Monospace, regexp.MustCompile("`([^\\s`]|[^\\s`].*?[^\\s`])`")},
	{render.Marked, regexp.MustCompile(`#([^\s#]|[^\s#].*?[^\s#])#`)},
}

// unconstrainedQuoteDefs enumerates the forms that match anywhere,
// including inside a word: the double-mark forms, plus superscript and
// subscript, which have no constrained variant. They run before the
// constrained forms so "**x**" is claimed whole rather than as two
// nested "*" pairs.
var unconstrainedQuoteDefs = []quoteDef{
	{render.Strong, regexp.MustCompile(`\*\*(.+?)\*\*`)},
	{render.Emphasis, regexp.MustCompile(`__(.+?)__`)},
	{render.Monospace, regexp.MustCompile("``(.+?)``")},
	{render.Marked, regexp.MustCompile(`##(.+?)##`)},
	{render.Superscript, regexp.MustCompile(`\^(\S|\S.*?\S)\^`)},
	{render.Subscript, regexp.MustCompile(`~(\S|\S.*?\S)~`)},
}

// applyQuotes recognizes Asciidoctor's constrained quoted-text forms.
//
// Go's regexp package (RE2) has no lookaround, so the word-boundary
// context a constrained form requires cannot live in the pattern
// itself. Instead each candidate match is found unconstrained, and then
// validated here: a constrained quote is only honored if the byte
// immediately before the opening delimiter and the byte immediately after
// the closing delimiter are not word characters (or are missing, at a
// line/string boundary).
func (c Content) applyQuotes(ctx *Context) Content {
	renderer := rendererOf(ctx)
	result := c

	for _, qd := range unconstrainedQuoteDefs {
		locs := qd.re.FindAllStringSubmatchIndex(result.Rendered, -1)
		if locs == nil {
			continue
		}
		kind := qd.kind
		result = result.applyRegexLTR(StepQuotes, locs, func(groups []string) (string, bool) {
			var buf strings.Builder
			renderer.RenderQuotedSubstitution(render.QuotedSubstitutionParams{
				Kind:    kind,
				Content: groups[1],
			}, &buf)
			return buf.String(), true
		})
	}

	for _, qd := range quoteDefs {
		locs := qd.re.FindAllStringSubmatchIndex(result.Rendered, -1)
		if locs == nil {
			continue
		}
		locs = filterConstrainedBoundaries(result.Rendered, locs)
		kind := qd.kind
		result = result.applyRegexLTR(StepQuotes, locs, func(groups []string) (string, bool) {
			var buf strings.Builder
			renderer.RenderQuotedSubstitution(render.QuotedSubstitutionParams{
				Kind:    kind,
				Content: groups[1],
			}, &buf)
			return buf.String(), true
		})
	}

	return result
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// filterConstrainedBoundaries keeps only matches not flanked by a word
// character on either side.
func filterConstrainedBoundaries(s string, locs [][]int) [][]int {
	var out [][]int
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if start > 0 && isWordByte(s[start-1]) {
			continue
		}
		if end < len(s) && isWordByte(s[end]) {
			continue
		}
		out = append(out, loc)
	}
	return out
}
