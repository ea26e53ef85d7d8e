package content

import (
	"github.com/jlrickert/adoc/pkg/render"
	"github.com/jlrickert/adoc/pkg/warnings"
)

// AttributeResolver resolves attribute references by name during the
// AttributeReferences step. Implemented by pkg/document's attribute
// table.
type AttributeResolver interface {
	Attribute(name string) (string, bool)
}

// MissingAttributePolicy selects what the AttributeReferences step does
// with a `{name}` reference that does not resolve.
type MissingAttributePolicy int

const (
	// MissingAttributeLeave keeps the unresolved reference in the
	// rendered text untouched. This is the default.
	MissingAttributeLeave MissingAttributePolicy = iota

	// MissingAttributeDrop removes the unresolved reference from the
	// rendered text.
	MissingAttributeDrop

	// MissingAttributeWarn keeps the reference, like
	// MissingAttributeLeave, and records a Warning.
	MissingAttributeWarn
)

// Context carries everything a substitution step needs beyond the
// Content itself: attribute resolution, a Renderer for macro/quote
// output, a sink for non-fatal diagnostics, and the unresolved
// attribute-reference policy.
type Context struct {
	Attributes       AttributeResolver
	Renderer         render.Renderer
	Warnings         *[]warnings.Warning
	MissingAttribute MissingAttributePolicy
}

func (c *Context) warn(w warnings.Warning) {
	if c == nil || c.Warnings == nil {
		return
	}
	*c.Warnings = append(*c.Warnings, w)
}

// rendererOf returns ctx's Renderer, falling back to the default HTML
// renderer if ctx or its Renderer is unset.
func rendererOf(ctx *Context) render.Renderer {
	if ctx == nil || ctx.Renderer == nil {
		return render.HTML{}
	}
	return ctx.Renderer
}

// resolverOf returns ctx's AttributeResolver, or a resolver that never
// resolves anything if ctx or its Attributes is unset.
func resolverOf(ctx *Context) AttributeResolver {
	if ctx == nil || ctx.Attributes == nil {
		return noAttributes{}
	}
	return ctx.Attributes
}

type noAttributes struct{}

func (noAttributes) Attribute(string) (string, bool) { return "", false }

// Apply runs every Step named by group, in order, against Content and
// returns the result. Passthrough text previously extracted by
// ExtractPassthroughs is left untouched: Apply never descends into it.
func (c Content) Apply(group Group, ctx *Context) Content {
	result := c
	for _, step := range group.Steps {
		result = result.applyStep(step, ctx)
	}
	return result
}

func (c Content) applyStep(step Step, ctx *Context) Content {
	switch step {
	case StepSpecialCharacters:
		return c.applySpecialCharacters()
	case StepQuotes:
		return c.applyQuotes(ctx)
	case StepAttributeReferences:
		return c.applyAttributeReferences(ctx)
	case StepCharacterReplacements:
		return c.applyCharacterReplacements(ctx)
	case StepMacros:
		return c.applyMacros(ctx)
	case StepPostReplacement:
		return c.applyPostReplacement(ctx)
	case StepCallouts:
		return c.applyCallouts(ctx)
	default:
		return c
	}
}

// applyRegexLTR finds all non-overlapping matches of re in c.Rendered and
// replaces each, processing rightmost-first so earlier match offsets
// remain valid without needing cross-match delta bookkeeping. fn returns
// the replacement text and whether the match should be replaced at all
// (false skips it, e.g. an escaped match that should only lose its
// backslash).
func (c Content) applyRegexLTR(step Step, locs [][]int, fn func(groups []string) (string, bool)) Content {
	result := c
	for i := len(locs) - 1; i >= 0; i-- {
		loc := locs[i]
		start, end := loc[0], loc[1]
		groups := submatches(result.Rendered, loc)
		newText, ok := fn(groups)
		if !ok {
			continue
		}
		source := result.sourceForRenderedRange(start, end)
		result = result.replace(start, end, newText, source, step)
	}
	return result
}

// submatches extracts the substrings captured by a regexp submatch-index
// slice (as returned by FindAllStringSubmatchIndex), one entry per group
// including group 0, with unmatched optional groups returned as "".
func submatches(s string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 || end < 0 {
			groups[i] = ""
			continue
		}
		groups[i] = s[start:end]
	}
	return groups
}
