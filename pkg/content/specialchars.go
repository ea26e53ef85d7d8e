package content

import "regexp"

var specialCharsRe = regexp.MustCompile(`[<>&]`)

var specialCharsReplacement = map[string]string{
	"<": "&lt;",
	">": "&gt;",
	"&": "&amp;",
}

// applySpecialCharacters replaces the three HTML-significant characters
// with their named character references. This step always runs first so
// that later steps never have to worry about literal markup characters
// appearing in already-substituted output.
func (c Content) applySpecialCharacters() Content {
	locs := specialCharsRe.FindAllStringIndex(c.Rendered, -1)
	if locs == nil {
		return c
	}

	result := c
	for i := len(locs) - 1; i >= 0; i-- {
		start, end := locs[i][0], locs[i][1]
		replacement := specialCharsReplacement[result.Rendered[start:end]]
		source := result.sourceForRenderedRange(start, end)
		result = result.replace(start, end, replacement, source, StepSpecialCharacters)
	}
	return result
}
