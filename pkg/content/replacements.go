package content

import (
	"regexp"
	"strings"
)

// charReplacement pairs a literal sequence with the symbol name passed to
// Renderer.RenderSymbol.
type charReplacement struct {
	pattern *regexp.Regexp
	symbol  string
}

// The arrow patterns match the character-reference forms because this
// step runs after special-character escaping has already rewritten "<"
// and ">" in the rendered text.
var simpleReplacements = []charReplacement{
	{regexp.MustCompile(`\(C\)`), "copyright"},
	{regexp.MustCompile(`\(R\)`), "registered"},
	{regexp.MustCompile(`\(TM\)`), "trademark"},
	{regexp.MustCompile(`-&gt;`), "rightarrow"},
	{regexp.MustCompile(`=&gt;`), "rightdouble"},
	{regexp.MustCompile(`&lt;-`), "leftarrow"},
	{regexp.MustCompile(`&lt;=`), "leftdouble"},
}

var ellipsisRe = regexp.MustCompile(`\.\.\.`)
var apostropheBetweenWords = regexp.MustCompile(`(\w)'(\w)`)
var emDashBetweenWords = regexp.MustCompile(`(\w)--(\w)`)
var emDashSpaced = regexp.MustCompile(` -- `)

// applyCharacterReplacements replaces Asciidoctor's text-symbol
// sequences ((C), (R), (TM), em dash, ellipsis, arrows, and the
// typewriter apostrophe) with their rendered forms.
func (c Content) applyCharacterReplacements(ctx *Context) Content {
	renderer := rendererOf(ctx)
	result := c

	if locs := emDashSpaced.FindAllStringIndex(result.Rendered, -1); locs != nil {
		idxLocs := make([][]int, len(locs))
		for i, l := range locs {
			idxLocs[i] = []int{l[0], l[1]}
		}
		result = result.applyRegexLTR(StepCharacterReplacements, idxLocs, func(groups []string) (string, bool) {
			var buf strings.Builder
			buf.WriteString("&#8201;")
			renderer.RenderSymbol("emdash", &buf)
			buf.WriteString("&#8201;")
			return buf.String(), true
		})
	}

	if locs := emDashBetweenWords.FindAllStringSubmatchIndex(result.Rendered, -1); locs != nil {
		result = result.applyRegexLTR(StepCharacterReplacements, locs, func(groups []string) (string, bool) {
			var buf strings.Builder
			buf.WriteString(groups[1])
			renderer.RenderSymbol("emdash", &buf)
			buf.WriteString("&#8203;")
			buf.WriteString(groups[2])
			return buf.String(), true
		})
	}

	if locs := ellipsisRe.FindAllStringIndex(result.Rendered, -1); locs != nil {
		idxLocs := make([][]int, len(locs))
		for i, l := range locs {
			idxLocs[i] = []int{l[0], l[1]}
		}
		result = result.applyRegexLTR(StepCharacterReplacements, idxLocs, func(groups []string) (string, bool) {
			var buf strings.Builder
			renderer.RenderSymbol("ellipsis", &buf)
			buf.WriteString("&#8203;")
			return buf.String(), true
		})
	}

	for _, repl := range simpleReplacements {
		locs := repl.pattern.FindAllStringIndex(result.Rendered, -1)
		if locs == nil {
			continue
		}
		idxLocs := make([][]int, len(locs))
		for i, l := range locs {
			idxLocs[i] = []int{l[0], l[1]}
		}
		symbol := repl.symbol
		result = result.applyRegexLTR(StepCharacterReplacements, idxLocs, func(groups []string) (string, bool) {
			var buf strings.Builder
			renderer.RenderSymbol(symbol, &buf)
			return buf.String(), true
		})
	}

	if locs := apostropheBetweenWords.FindAllStringSubmatchIndex(result.Rendered, -1); locs != nil {
		result = result.applyRegexLTR(StepCharacterReplacements, locs, func(groups []string) (string, bool) {
			var buf strings.Builder
			buf.WriteString(groups[1])
			renderer.RenderSymbol("apostrophe", &buf)
			buf.WriteString(groups[2])
			return buf.String(), true
		})
	}

	return result
}
