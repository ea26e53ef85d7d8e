package content

import (
	"regexp"
	"strings"
)

// lineBreakRe matches a space followed by a single trailing '+' at the
// end of a line: Asciidoctor's explicit hard line break marker.
var lineBreakRe = regexp.MustCompile(`(?m)( \+)$`)

// applyPostReplacement recognizes the explicit hard-line-break marker
// (a line ending in " +") and replaces it with the renderer's line-break
// output.
func (c Content) applyPostReplacement(ctx *Context) Content {
	renderer := rendererOf(ctx)
	locs := lineBreakRe.FindAllStringSubmatchIndex(c.Rendered, -1)
	if locs == nil {
		return c
	}
	return c.applyRegexLTR(StepPostReplacement, locs, func(groups []string) (string, bool) {
		var buf strings.Builder
		renderer.RenderLineBreak(&buf)
		return buf.String(), true
	})
}
