// Package content implements the substitution pipeline applied to the
// rendered text of a block: special character escaping, quoted-text
// formatting, attribute reference expansion, character replacements,
// inline macros, post-replacement line breaks, and callout markers.
//
// A Content value pairs the original source Span with the text produced
// by applying zero or more SubstitutionSteps, and keeps an ordered list of
// Substitutions recording which parts of the rendered text came from
// which part of the source, and by which step.
package content

import "github.com/jlrickert/adoc/pkg/span"

// Step identifies one of the seven substitution steps that can be applied
// to a block's content, in the canonical order Asciidoctor applies them.
type Step int

const (
	StepSpecialCharacters Step = iota
	StepQuotes
	StepAttributeReferences
	StepCharacterReplacements
	StepMacros
	StepPostReplacement
	StepCallouts
)

func (s Step) String() string {
	switch s {
	case StepSpecialCharacters:
		return "specialcharacters"
	case StepQuotes:
		return "quotes"
	case StepAttributeReferences:
		return "attributes"
	case StepCharacterReplacements:
		return "replacements"
	case StepMacros:
		return "macros"
	case StepPostReplacement:
		return "post_replacement"
	case StepCallouts:
		return "callouts"
	default:
		return "unknown"
	}
}

// Substitution records that the half-open byte range [RenderedStart,
// RenderedEnd) of a Content's Rendered text was produced by Step acting on
// Source, a span of the original document.
type Substitution struct {
	Source        span.Span
	RenderedStart int
	RenderedEnd   int
	Step          Step
}

// Content is the rendered form of a span of source text, together with
// the original span it was derived from and the history of substitutions
// applied to produce it.
type Content struct {
	Original      span.Span
	Rendered      string
	Substitutions []Substitution
}

// New creates a Content whose Rendered text is an unmodified copy of
// original's data: the starting point before any substitution step runs.
func New(original span.Span) Content {
	return Content{Original: original, Rendered: original.Data()}
}

// IsEmpty reports whether the rendered text is empty.
func (c Content) IsEmpty() bool { return len(c.Rendered) == 0 }

// SpanOrSubstitution is one element of the sequence returned by
// SpansAndSubstitutions: exactly one of Span or Substitution is set.
type SpanOrSubstitution struct {
	Span         *span.Span
	Substitution *Substitution
}

// SpansAndSubstitutions walks the Original span and the Substitutions
// list together, yielding alternating runs of unmodified source text and
// the substitutions that replaced other runs, in source order. This is
// the primary way callers recover which parts of a rendered Content came
// from literal source text versus a substitution.
func (c Content) SpansAndSubstitutions() []SpanOrSubstitution {
	var out []SpanOrSubstitution

	origOffset := 0
	for i := range c.Substitutions {
		sub := c.Substitutions[i]
		gapLen := sub.Source.ByteOffset() - (c.Original.ByteOffset() + origOffset)
		if gapLen > 0 {
			gap := c.Original.Slice(origOffset, origOffset+gapLen)
			out = append(out, SpanOrSubstitution{Span: &gap})
		}
		out = append(out, SpanOrSubstitution{Substitution: &sub})
		origOffset = (sub.Source.ByteOffset() - c.Original.ByteOffset()) + sub.Source.Len()
	}

	if origOffset < c.Original.Len() {
		tail := c.Original.Slice(origOffset, c.Original.Len())
		out = append(out, SpanOrSubstitution{Span: &tail})
	}

	return out
}

// replace rewrites the half-open byte range [renderedStart, renderedEnd)
// of Rendered with newText, recording a Substitution attributing the
// change to source and step. Existing substitutions positioned at or
// after renderedEnd are shifted by the resulting length delta.
func (c Content) replace(renderedStart, renderedEnd int, newText string, source span.Span, step Step) Content {
	delta := len(newText) - (renderedEnd - renderedStart)

	var rendered []byte
	rendered = append(rendered, c.Rendered[:renderedStart]...)
	rendered = append(rendered, newText...)
	rendered = append(rendered, c.Rendered[renderedEnd:]...)

	newSub := Substitution{
		Source:        source,
		RenderedStart: renderedStart,
		RenderedEnd:   renderedStart + len(newText),
		Step:          step,
	}

	subs := make([]Substitution, 0, len(c.Substitutions)+1)
	inserted := false
	for _, s := range c.Substitutions {
		if s.RenderedStart >= renderedEnd {
			s.RenderedStart += delta
			s.RenderedEnd += delta
		}
		if !inserted && s.RenderedStart >= newSub.RenderedStart {
			subs = append(subs, newSub)
			inserted = true
		}
		subs = append(subs, s)
	}
	if !inserted {
		subs = append(subs, newSub)
	}

	return Content{Original: c.Original, Rendered: string(rendered), Substitutions: subs}
}

// sourceForRenderedRange maps a byte range of the current Rendered text
// back to a Span of Original, for provenance purposes. Ranges that fall
// within text untouched by any prior substitution map exactly; ranges
// that overlap a prior substitution's output are attributed to that
// substitution's own Source span, since the text no longer corresponds
// byte-for-byte to any single point in Original.
func (c Content) sourceForRenderedRange(start, end int) span.Span {
	origOffset := 0
	renderedOffset := 0

	for _, s := range c.Substitutions {
		gapRenderedLen := s.RenderedStart - renderedOffset
		if start >= renderedOffset && start < renderedOffset+gapRenderedLen {
			origStart := origOffset + (start - renderedOffset)
			origEnd := origStart + (end - start)
			maxOrigEnd := origOffset + gapRenderedLen
			if origEnd > maxOrigEnd {
				origEnd = maxOrigEnd
			}
			return c.sliceOriginal(origStart, origEnd)
		}
		if start >= s.RenderedStart && start < s.RenderedEnd {
			return s.Source
		}

		origOffset += s.Source.Len()
		renderedOffset = s.RenderedEnd
	}

	origStart := origOffset + (start - renderedOffset)
	origEnd := origStart + (end - start)
	return c.sliceOriginal(origStart, origEnd)
}

func (c Content) sliceOriginal(start, end int) span.Span {
	if start < 0 {
		start = 0
	}
	if end > c.Original.Len() {
		end = c.Original.Len()
	}
	if end < start {
		end = start
	}
	return c.Original.Slice(start, end)
}
