package content

import (
	"regexp"
	"strconv"

	"github.com/jlrickert/adoc/pkg/span"
)

// passthroughRe recognizes the five passthrough forms: `+++text+++`,
// `++text++`, `$$text$$`, `pass:subs[text]`, and the constrained
// single-plus form `+text+`, each optionally preceded by an escaping
// backslash. Dot matches newline so a passthrough region may span
// multiple lines. The single-plus alternative is listed last so the
// longer +++/++ forms are preferred at any given starting position.
var passthroughRe = regexp.MustCompile(
	`(?s)(\\)?(?:\+\+\+(.*?)\+\+\+|\+\+(.*?)\+\+|\$\$(.*?)\$\$|pass:([a-zA-Z,]*)\[(.*?[^\\])\]|\+(\S|\S.*?\S)\+)`,
)

// sentinelRe recognizes a previously-inserted passthrough sentinel.
var sentinelRe = regexp.MustCompile("\x01PASS(\\d+)\x02")

// stepPassthroughExtraction tags Substitutions created by
// ExtractPassthroughs. It is not one of the seven named pipeline steps
// and never appears in a Group: passthrough handling runs before and
// after the substitution pipeline, not as a step within it.
const stepPassthroughExtraction Step = -1

// Passthrough is one extracted passthrough region awaiting restoration.
// Subs is the substitution spec named by the pass: macro form ("" for
// the delimiter forms, which always restore the text verbatim).
type Passthrough struct {
	Text string
	Subs string
}

// ExtractPassthroughs replaces every passthrough region in c's rendered
// text with an opaque sentinel marker, returning the modified Content
// alongside the stash of extracted raw text (indexed by sentinel number).
// Run this before applying any SubstitutionGroup, and pair it with a
// later call to RestorePassthroughs so that passthrough content is never
// seen by the quoting, macro, or character-replacement steps.
func ExtractPassthroughs(c Content) (Content, []Passthrough) {
	locs := passthroughRe.FindAllStringSubmatchIndex(c.Rendered, -1)
	if locs == nil {
		return c, nil
	}

	var stash []Passthrough
	result := c

	for i := len(locs) - 1; i >= 0; i-- {
		loc := locs[i]
		// Group 7 (the constrained single-plus form) requires a
		// non-word boundary on each side, the same rule applied to
		// constrained quoted-text; skip matches that fail it so the
		// plus signs are left untouched (e.g. "2+2=4+x").
		if loc[14] >= 0 && !validPlusBoundary(result.Rendered, loc[0], loc[1]) {
			continue
		}

		groups := submatches(result.Rendered, loc)
		whole := groups[0]

		if groups[1] == `\` {
			result = result.replace(loc[0], loc[1], whole[1:], result.sourceForRenderedRange(loc[0], loc[1]), stepPassthroughExtraction)
			continue
		}

		var entry Passthrough
		switch {
		case groups[2] != "":
			entry.Text = groups[2]
		case groups[3] != "":
			entry.Text = groups[3]
		case groups[4] != "":
			entry.Text = groups[4]
		case groups[7] != "":
			entry.Text = groups[7]
		default:
			entry.Text = groups[6]
			entry.Subs = groups[5]
		}

		idx := len(stash)
		stash = append(stash, entry)
		sentinel := "\x01PASS" + strconv.Itoa(idx) + "\x02"
		result = result.replace(loc[0], loc[1], sentinel, result.sourceForRenderedRange(loc[0], loc[1]), stepPassthroughExtraction)
	}

	return result, stash
}

// validPlusBoundary reports whether the match [start,end) of s is
// flanked by a non-word character (or a string boundary) on both
// sides, the constraint that distinguishes genuine single-plus
// passthroughs from incidental pluses in running text.
func validPlusBoundary(s string, start, end int) bool {
	if start > 0 && isWordByte(s[start-1]) {
		return false
	}
	if end < len(s) && isWordByte(s[end]) {
		return false
	}
	return true
}

// RestorePassthroughs replaces every sentinel previously inserted by
// ExtractPassthroughs with its original text. A pass: macro region with
// a non-empty subs spec has that spec's substitution group applied to
// its body first; every other region restores verbatim.
func RestorePassthroughs(c Content, stash []Passthrough, ctx *Context) Content {
	locs := sentinelRe.FindAllStringSubmatchIndex(c.Rendered, -1)
	if locs == nil {
		return c
	}

	return c.applyRegexLTR(stepPassthroughExtraction, locs, func(groups []string) (string, bool) {
		idx, err := strconv.Atoi(groups[1])
		if err != nil || idx < 0 || idx >= len(stash) {
			return "", false
		}
		entry := stash[idx]
		if entry.Subs != "" {
			if g, ok := ParseGroup(entry.Subs); ok {
				return New(span.New(entry.Text)).Apply(g, ctx).Rendered, true
			}
		}
		return entry.Text, true
	})
}
