package content

import (
	"regexp"
	"strconv"
	"strings"
)

// calloutRe matches a callout marker at the end of a verbatim line, e.g.
// "some command <1>". The angle brackets are matched in both their raw
// and character-reference forms, since special-character escaping has
// usually already run over verbatim content by the time this step does.
var calloutRe = regexp.MustCompile(`(?m)(?:<|&lt;)(\d+)(?:>|&gt;)[ \t]*$`)

// applyCallouts recognizes callout markers in verbatim block content and
// replaces them with the renderer's callout markup.
func (c Content) applyCallouts(ctx *Context) Content {
	renderer := rendererOf(ctx)
	locs := calloutRe.FindAllStringSubmatchIndex(c.Rendered, -1)
	if locs == nil {
		return c
	}
	return c.applyRegexLTR(StepCallouts, locs, func(groups []string) (string, bool) {
		n, err := strconv.Atoi(groups[1])
		if err != nil {
			return "", false
		}
		var buf strings.Builder
		renderer.RenderCallout(n, &buf)
		return buf.String(), true
	})
}
