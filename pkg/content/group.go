package content

import "strings"

// Group names a fixed or custom sequence of substitution Steps to apply,
// in order, to a block's Content. Asciidoctor's built-in groups
// (normal, header, attribute_entry_value, title, verbatim, pass/none) are
// predefined; a "subs" attribute value that doesn't match a built-in name
// is parsed as a comma-separated custom list of step names via
// ParseGroup.
type Group struct {
	Name  string
	Steps []Step
}

var (
	// Normal is applied to ordinary paragraph and most inline content.
	Normal = Group{Name: "normal", Steps: []Step{
		StepSpecialCharacters, StepQuotes, StepAttributeReferences,
		StepCharacterReplacements, StepMacros, StepPostReplacement,
	}}

	// Header is applied to the document title.
	Header = Group{Name: "header", Steps: []Step{
		StepSpecialCharacters, StepAttributeReferences,
	}}

	// AttributeEntryValue is applied to the value of a document
	// attribute entry.
	AttributeEntryValue = Group{Name: "attribute_entry_value", Steps: []Step{
		StepSpecialCharacters, StepAttributeReferences,
	}}

	// Title is applied to block and section titles.
	Title = Group{Name: "title", Steps: []Step{
		StepSpecialCharacters, StepQuotes, StepAttributeReferences,
		StepCharacterReplacements, StepMacros, StepPostReplacement,
	}}

	// Verbatim is applied to listing/literal block content: only
	// character escaping and callout recognition, no quoting or macros.
	Verbatim = Group{Name: "verbatim", Steps: []Step{
		StepSpecialCharacters, StepCallouts,
	}}

	// Pass applies no substitutions at all; content passes through
	// verbatim.
	Pass = Group{Name: "pass"}

	// None is an alias for Pass used when a block explicitly sets
	// subs=none.
	None = Group{Name: "none"}
)

// HasStep reports whether g's step list includes s.
func (g Group) HasStep(s Step) bool {
	for _, step := range g.Steps {
		if step == s {
			return true
		}
	}
	return false
}

var builtinGroups = map[string]Group{
	Normal.Name:              Normal,
	Header.Name:              Header,
	AttributeEntryValue.Name: AttributeEntryValue,
	Title.Name:               Title,
	Verbatim.Name:            Verbatim,
	Pass.Name:                Pass,
	None.Name:                None,
}

// canonicalSteps lists every step in the fixed order the pipeline always
// runs them in, regardless of the order a custom "subs" spec names them.
var canonicalSteps = []Step{
	StepSpecialCharacters, StepQuotes, StepAttributeReferences,
	StepCharacterReplacements, StepMacros, StepPostReplacement, StepCallouts,
}

// stepNames maps both the short single-letter token and the long token
// to the step it names.
var stepNames = map[string]Step{
	"c":                 StepSpecialCharacters,
	"specialcharacters": StepSpecialCharacters,
	"specialchars":      StepSpecialCharacters,
	"q":                 StepQuotes,
	"quotes":            StepQuotes,
	"a":                 StepAttributeReferences,
	"attributes":        StepAttributeReferences,
	"r":                 StepCharacterReplacements,
	"replacements":      StepCharacterReplacements,
	"m":                 StepMacros,
	"macros":            StepMacros,
	"p":                 StepPostReplacement,
	"post replacements": StepPostReplacement,
	"post_replacements": StepPostReplacement,
	"post-replacements": StepPostReplacement,
	"postreplacements":  StepPostReplacement,
	"callouts":          StepCallouts,
}

// aliasGroups maps a base-group alias token to the Group whose step set
// it seeds the accumulator with.
var aliasGroups = map[string]Group{
	"n":        Normal,
	"normal":   Normal,
	"v":        Verbatim,
	"verbatim": Verbatim,
}

// ParseGroup parses the value of a block's "subs" attribute: either a
// built-in group name on its own, or a comma-separated custom spec of
// step tokens (short "c,q,a,r,m,p" or long names) and group aliases
// ("n"/"normal", "v"/"verbatim"), each optionally prefixed with "-" to
// remove rather than add. A base alias token seeds the accumulator with
// that group's steps; subsequent tokens add or remove individual steps.
// The resulting Group always runs its steps in the fixed canonical
// order, independent of the order tokens were declared in spec. Returns
// false only if spec is empty.
func ParseGroup(spec string) (Group, bool) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Group{}, false
	}

	if g, ok := builtinGroups[spec]; ok {
		return g, true
	}

	set := map[Step]bool{}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		remove := strings.HasPrefix(part, "-")
		if remove {
			part = strings.TrimSpace(part[1:])
		}

		if alias, ok := aliasGroups[part]; ok {
			for _, s := range alias.Steps {
				set[s] = !remove
			}
			continue
		}
		if step, ok := stepNames[part]; ok {
			set[step] = !remove
		}
	}

	var steps []Step
	for _, s := range canonicalSteps {
		if set[s] {
			steps = append(steps, s)
		}
	}
	return Group{Name: spec, Steps: steps}, true
}
