package content

import (
	"regexp"

	"github.com/jlrickert/adoc/pkg/warnings"
)

var attributeReferenceRe = regexp.MustCompile(`\\?\{([A-Za-z0-9_][A-Za-z0-9_-]*)\}`)

// applyAttributeReferences expands `{name}` references using the
// resolver in ctx. A reference preceded by a backslash is an escape: the
// backslash is dropped and the reference is left literal. A reference
// that does not resolve is handled per ctx's MissingAttributePolicy:
// left untouched (the default), dropped from the rendered text, or left
// untouched with a Warning recorded.
func (c Content) applyAttributeReferences(ctx *Context) Content {
	resolver := resolverOf(ctx)
	locs := attributeReferenceRe.FindAllStringSubmatchIndex(c.Rendered, -1)
	if locs == nil {
		return c
	}

	var policy MissingAttributePolicy
	if ctx != nil {
		policy = ctx.MissingAttribute
	}

	return c.applyRegexLTR(StepAttributeReferences, locs, func(groups []string) (string, bool) {
		whole := groups[0]
		name := groups[1]

		if len(whole) > 0 && whole[0] == '\\' {
			return whole[1:], true
		}

		value, ok := resolver.Attribute(name)
		if !ok {
			switch policy {
			case MissingAttributeDrop:
				return "", true
			case MissingAttributeWarn:
				ctx.warn(warnings.New(c.Original, warnings.UnresolvedAttributeReference, "unresolved attribute reference: "+name))
			}
			return "", false
		}
		return value, true
	})
}
