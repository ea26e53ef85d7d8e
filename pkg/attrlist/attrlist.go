// Package attrlist parses the contents of an AsciiDoc attribute list: the
// comma-separated, optionally-named, optionally-quoted values found inside
// block attribute lines (`[...]`) and inline macro targets (`image:f.png[...]`).
package attrlist

import (
	"strings"

	"github.com/jlrickert/adoc/internal/adocerr"
	"github.com/jlrickert/adoc/pkg/span"
	"github.com/jlrickert/adoc/pkg/warnings"
)

// ElementAttribute is a single entry of an Attrlist: either named
// ("name=value") or positional (just "value").
type ElementAttribute struct {
	Name   string
	value  string
	Source span.Span
}

// IsNamed reports whether this attribute had an explicit "name=" prefix.
func (a ElementAttribute) IsNamed() bool { return a.Name != "" }

// Value returns the attribute's value text (quotes, if any, removed).
func (a ElementAttribute) Value() string { return a.value }

// Attrlist is the parsed form of an attribute list's interior text (the
// part between `[` and `]`, exclusive). Shorthand syntax is honored only
// when the list's very first entry is an unnamed positional, recorded in
// firstEntryPositional while parsing.
type Attrlist struct {
	Source     span.Span
	Positional []ElementAttribute
	Named      map[string]ElementAttribute

	firstEntryPositional bool
}

// Substituter rewrites a raw attribute value before it is stored; block
// parsers supply one that applies the attribute-entry-value substitutions
// when the raw value contains characters they act on.
type Substituter func(raw string) string

// Parse parses the full interior of an attribute list, discarding any
// diagnostics. The caller is responsible for extracting the span between
// the enclosing brackets.
func Parse(source span.Span) Attrlist {
	al, _ := ParseWithWarnings(source, nil)
	return al
}

// ParseWithWarnings parses the full interior of an attribute list,
// collecting recoverable diagnostics (unterminated quotes, stray text
// after a quoted value, empty entries, empty shorthand items). substitute,
// if non-nil, is applied to every unquoted raw value containing "<", ">",
// "&", or "{" before the value is stored.
func ParseWithWarnings(source span.Span, substitute Substituter) (Attrlist, []warnings.Warning) {
	al := Attrlist{Source: source, Named: map[string]ElementAttribute{}}
	var warns []warnings.Warning

	rest := source
	for {
		rest = rest.DiscardWhitespace()
		if rest.IsEmpty() {
			break
		}
		if comma, ok := rest.TakePrefix(","); ok {
			warns = append(warns, warnings.New(rest.SliceTo(1), warnings.EmptyAttributeValue,
				"empty attribute value"))
			rest = comma.After
			continue
		}

		attr, after, entryWarns, dropped := parseEntry(rest, substitute)
		warns = append(warns, entryWarns...)
		if !dropped {
			if attr.IsNamed() {
				if _, exists := al.Named[attr.Name]; !exists {
					al.Named[attr.Name] = attr
				}
			} else {
				if len(al.Positional) == 0 && len(al.Named) == 0 {
					al.firstEntryPositional = true
				}
				al.Positional = append(al.Positional, attr)
			}
		}

		rest = after.DiscardWhitespace()
		if comma, ok := rest.TakePrefix(","); ok {
			rest = comma.After
			continue
		}
		break
	}

	warns = append(warns, al.shorthandWarnings()...)
	return al, warns
}

// parseEntry parses one attribute entry starting at rest: an optional
// "name=" prefix followed by a quoted or bare value. dropped is true when
// the entry could not be stored (an unterminated quoted value).
func parseEntry(rest span.Span, substitute Substituter) (attr ElementAttribute, after span.Span, warns []warnings.Warning, dropped bool) {
	var name string
	cursor := rest
	if m, ok := cursor.TakeAttrName(); ok {
		afterName := m.After.DiscardWhitespace()
		if eq, eqOK := afterName.TakePrefix("="); eqOK {
			v := eq.After.DiscardWhitespace()
			if !v.IsEmpty() && !v.StartsWith(",") {
				name = m.Item.Data()
				cursor = v
			}
		}
	}

	if cursor.StartsWith(`'`) || cursor.StartsWith(`"`) {
		quote := cursor.Data()[0]
		qm, ok := cursor.TakeQuotedString()
		if !ok {
			warns = append(warns, warnings.New(cursor, warnings.AttributeValueMissingTerminatingQuote,
				adocerr.NewUnterminatedQuotedStringError(quote).Error()))
			return ElementAttribute{}, cursor.DiscardAll(), warns, true
		}
		value := strings.ReplaceAll(qm.Item.Data(), `\`+string(quote), string(quote))
		after = qm.After
		leftover := after.DiscardWhitespace()
		if !leftover.IsEmpty() && !leftover.StartsWith(",") {
			warns = append(warns, warnings.New(leftover, warnings.MissingCommaAfterQuotedAttributeValue,
				"expected a comma after the quoted attribute value"))
			after = skipToComma(leftover)
		}
		return ElementAttribute{Name: name, value: value, Source: rest.TrimRemainder(after)}, after, warns, false
	}

	after = skipToComma(cursor)
	raw := strings.TrimSpace(cursor.TrimRemainder(after).Data())
	raw = strings.ReplaceAll(raw, `\,`, ",")
	if substitute != nil && strings.ContainsAny(raw, "<>&{") {
		raw = substitute(raw)
	}
	return ElementAttribute{Name: name, value: raw, Source: rest.TrimRemainder(after)}, after, warns, false
}

// skipToComma advances past everything up to (but not including) the next
// unescaped comma, or to the end of input.
func skipToComma(s span.Span) span.Span {
	data := s.Data()
	for i := 0; i < len(data); i++ {
		if data[i] == '\\' && i+1 < len(data) && data[i+1] == ',' {
			i++
			continue
		}
		if data[i] == ',' {
			return s.SliceFrom(i)
		}
	}
	return s.DiscardAll()
}

// shorthandWarnings reports an EmptyShorthandItem for every bare "#", ".",
// or "%" delimiter in the first positional attribute's shorthand value.
func (a Attrlist) shorthandWarnings() []warnings.Warning {
	var warns []warnings.Warning
	for _, item := range a.ShorthandItems() {
		if len(item) == 1 && isShorthandDelimiter(item[0]) {
			warns = append(warns, warnings.New(a.Source, warnings.EmptyShorthandItem,
				"empty "+item+" shorthand item"))
		}
	}
	return warns
}

// NamedAttribute returns the named attribute matching name, if present.
func (a Attrlist) NamedAttribute(name string) (ElementAttribute, bool) {
	attr, ok := a.Named[name]
	return attr, ok
}

// NthAttribute returns the n'th (1-based) positional attribute.
func (a Attrlist) NthAttribute(n int) (ElementAttribute, bool) {
	if n < 1 || n > len(a.Positional) {
		return ElementAttribute{}, false
	}
	return a.Positional[n-1], true
}

// NamedOrPositionalAttribute returns the named attribute "name" if
// present, otherwise falls back to the n'th (1-based) positional
// attribute. The name always wins when both are present.
func (a Attrlist) NamedOrPositionalAttribute(name string, n int) (ElementAttribute, bool) {
	if attr, ok := a.NamedAttribute(name); ok {
		return attr, true
	}
	return a.NthAttribute(n)
}

const shorthandDelimiters = "#.%"

// ShorthandItems splits the first positional attribute's value into its
// shorthand components (block style, #id, .role, %option), in the order
// they appear. The block style, if present, has no leading delimiter and
// must come first. Shorthand applies only when the list's first entry is
// an unnamed positional; a positional that follows a named entry is
// ordinary data.
func (a Attrlist) ShorthandItems() []string {
	if !a.firstEntryPositional {
		return nil
	}
	first, ok := a.NthAttribute(1)
	if !ok {
		return nil
	}
	value := first.Value()
	if value == "" || !strings.ContainsAny(value, shorthandDelimiters) {
		if value != "" && !isShorthandDelimiter(value[0]) {
			return []string{value}
		}
	}

	var items []string
	start := 0
	for i := 1; i < len(value); i++ {
		if isShorthandDelimiter(value[i]) {
			items = append(items, value[start:i])
			start = i
		}
	}
	items = append(items, value[start:])
	return items
}

func isShorthandDelimiter(c byte) bool {
	return strings.IndexByte(shorthandDelimiters, c) >= 0
}

// BlockStyle returns the shorthand block style, if the first positional
// attribute's value begins with a bare style name before any `#`/`.`/`%`
// delimiter.
func (a Attrlist) BlockStyle() (string, bool) {
	items := a.ShorthandItems()
	if len(items) == 0 {
		return "", false
	}
	if items[0] != "" && !isShorthandDelimiter(items[0][0]) {
		return items[0], true
	}
	return "", false
}

// ID returns the block's ID: the shorthand `#id` component of the first
// positional attribute if present, otherwise a named "id" attribute.
func (a Attrlist) ID() (string, bool) {
	for _, item := range a.ShorthandItems() {
		if len(item) > 1 && item[0] == '#' {
			return item[1:], true
		}
	}
	if attr, ok := a.NamedAttribute("id"); ok {
		return attr.Value(), true
	}
	return "", false
}

// Roles returns all `.role` shorthand components plus the space-separated
// contents of a named "role"/"roles" attribute, shorthand roles first.
func (a Attrlist) Roles() []string {
	var roles []string
	for _, item := range a.ShorthandItems() {
		if len(item) > 1 && item[0] == '.' {
			roles = append(roles, item[1:])
		}
	}
	for _, name := range []string{"role", "roles"} {
		if attr, ok := a.NamedAttribute(name); ok {
			roles = append(roles, strings.Fields(attr.Value())...)
		}
	}
	return roles
}

// Options returns all `%option` shorthand components plus the
// comma-separated contents of a named "options"/"opts" attribute.
func (a Attrlist) Options() []string {
	var options []string
	for _, item := range a.ShorthandItems() {
		if len(item) > 1 && item[0] == '%' {
			options = append(options, item[1:])
		}
	}
	for _, name := range []string{"options", "opts"} {
		if attr, ok := a.NamedAttribute(name); ok {
			for _, o := range strings.Split(attr.Value(), ",") {
				o = strings.TrimSpace(o)
				if o != "" {
					options = append(options, o)
				}
			}
		}
	}
	return options
}
