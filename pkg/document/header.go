package document

import (
	"strings"

	"github.com/jlrickert/adoc/pkg/content"
	"github.com/jlrickert/adoc/pkg/span"
)

// Header is the parsed form of a document's header block: an optional
// document title, author line, and revision line, followed by zero or
// more document attribute entries.
type Header struct {
	Title       content.Content
	HasTitle    bool
	Authors     []Author
	Revision    RevisionLine
	HasRevision bool
}

// ParseHeader parses a document header from the start of source,
// registering any attribute entries it finds into table, and returns the
// parsed Header along with the remaining, unconsumed span. table's
// header is closed (via CloseHeader) before returning, whether or not a
// header was actually present.
func ParseHeader(source span.Span, table *AttributeTable) (Header, span.Span) {
	var h Header
	rest := discardComments(source)

	m, hasMarker := rest.TakePrefix("= ")
	if !hasMarker {
		m, hasMarker = rest.TakePrefix("# ")
	}
	if hasMarker {
		lineMatch := m.After.TakeNormalizedLine()
		extracted, stash := content.ExtractPassthroughs(content.New(lineMatch.Item))
		cctx := &content.Context{Attributes: table}
		applied := extracted.Apply(content.Header, cctx)
		h.Title = content.RestorePassthroughs(applied, stash, cctx)
		h.HasTitle = true
		table.SetFromHeader("doctitle", h.Title.Rendered)
		rest = lineMatch.After

		if al, ok := rest.TakeNonEmptyLine(); ok && !looksLikeAttributeEntry(al.Item.Data()) {
			h.Authors = ParseAuthorLine(al.Item.Data(), table.Attribute)
			storeAuthors(table, h.Authors)
			rest = al.After

			if rl, ok := rest.TakeNonEmptyLine(); ok && !looksLikeAttributeEntry(rl.Item.Data()) {
				h.Revision = ParseRevisionLine(rl.Item.Data())
				h.HasRevision = true
				storeRevision(table, h.Revision)
				rest = rl.After
			}
		}
	}

	for {
		trimmed := discardComments(rest)
		line, ok := trimmed.TakeNonEmptyLine()
		if !ok {
			rest = trimmed
			break
		}
		name, value, isEntry := ParseAttributeEntryLine(line.Item.Data())
		if !isEntry {
			rest = trimmed
			break
		}
		value, after := readContinuation(value, line.After)

		unset := strings.HasSuffix(name, "!") || strings.HasPrefix(name, "!")
		cleanName := strings.TrimSuffix(strings.TrimPrefix(name, "!"), "!")
		if unset {
			table.Unset(cleanName)
		} else if cleanName == "author" {
			setAuthorAttribute(table, value)
		} else {
			table.SetFromHeader(cleanName, substituteAttributeEntryValue(value, table))
		}
		rest = after
	}

	table.CloseHeader()
	return h, rest
}

func looksLikeAttributeEntry(line string) bool {
	_, _, ok := ParseAttributeEntryLine(line)
	return ok
}

// isCommentFenceLine reports whether data is a block-comment fence: a
// run of four or more '/' characters and nothing else.
func isCommentFenceLine(data string) bool {
	if len(data) < 4 {
		return false
	}
	for i := 0; i < len(data); i++ {
		if data[i] != '/' {
			return false
		}
	}
	return true
}

// discardComments consumes leading blank lines, line comments ("//…"),
// and block comments ("////…////") from the start of rest, stopping at
// the first line that is neither, or at end of input. A block comment
// left unterminated consumes all remaining input.
func discardComments(rest span.Span) span.Span {
	cursor := rest
	for {
		trimmed := cursor.DiscardEmptyLines()
		line, ok := trimmed.TakeNonEmptyLine()
		if !ok {
			return trimmed
		}
		data := line.Item.Data()
		if isCommentFenceLine(data) {
			length := len(data)
			body := line.After
			for !body.IsEmpty() {
				lm := body.TakeNormalizedLine()
				body = lm.After
				if isCommentFenceLine(lm.Item.Data()) && len(lm.Item.Data()) == length {
					break
				}
			}
			cursor = body
			continue
		}
		if strings.HasPrefix(data, "//") {
			cursor = line.After
			continue
		}
		return trimmed
	}
}

// splitContinuationMarker reports whether value ends with a line
// continuation backslash, stripping it (and, for the hard-wrap form, a
// preceding "+") from the returned value. hard is true for the " + \"
// hard-wrap form, which preserves the line break; false for the plain
// " \" soft-wrap form, which folds into a single space.
func splitContinuationMarker(value string) (stripped string, hard bool, ok bool) {
	if !strings.HasSuffix(value, "\\") {
		return value, false, false
	}
	stripped = strings.TrimRight(strings.TrimSuffix(value, "\\"), " \t")
	if strings.HasSuffix(stripped, "+") {
		stripped = strings.TrimRight(strings.TrimSuffix(stripped, "+"), " \t")
		return stripped, true, true
	}
	return stripped, false, true
}

// readContinuation joins any soft-wrap (" \") or hard-wrap (" + \")
// continuation lines following an attribute entry's first line into its
// value: soft-wrap folds into a single space, hard-wrap preserves the
// line break.
func readContinuation(value string, rest span.Span) (string, span.Span) {
	for {
		stripped, hard, ok := splitContinuationMarker(value)
		if !ok {
			return value, rest
		}
		next, lok := rest.TakeNonEmptyLine()
		if !lok {
			return stripped, rest
		}
		nextValue := strings.TrimLeft(next.Item.Data(), " \t")
		if hard {
			value = stripped + "\n" + nextValue
		} else {
			value = stripped + " " + nextValue
		}
		rest = next.After
	}
}

// substituteAttributeEntryValue applies the AttributeEntryValue
// substitution group (special characters, attribute references) to a raw
// header attribute value before it is stored in the table.
func substituteAttributeEntryValue(value string, table *AttributeTable) string {
	c := content.New(span.New(value))
	return c.Apply(content.AttributeEntryValue, &content.Context{Attributes: table}).Rendered
}

// storeAuthors populates the author-derived document attributes from a
// parsed header author line. Only the first author feeds the singular
// attributes.
func storeAuthors(table *AttributeTable, authors []Author) {
	if len(authors) == 0 {
		return
	}
	a := authors[0]
	if name := a.FullName(); name != "" {
		table.SetFromHeader("author", name)
	}
	if a.FirstName != "" {
		table.SetFromHeader("firstname", a.FirstName)
	}
	if a.MiddleName != "" {
		table.SetFromHeader("middlename", a.MiddleName)
	}
	if a.LastName != "" {
		table.SetFromHeader("lastname", a.LastName)
	}
	if initials := a.Initials(); initials != "" {
		table.SetFromHeader("authorinitials", initials)
	}
	if a.Email != "" {
		table.SetFromHeader("email", a.Email)
	}
}

// storeRevision populates revnumber/revdate/revremark from a parsed
// header revision line.
func storeRevision(table *AttributeTable, rev RevisionLine) {
	if rev.Version != "" {
		table.SetFromHeader("revnumber", rev.Version)
	}
	if rev.Date != "" {
		table.SetFromHeader("revdate", rev.Date)
	}
	if rev.Remark != "" {
		table.SetFromHeader("revremark", rev.Remark)
	}
}

// setAuthorAttribute implements the ":author:" auto-population rule:
// setting the author attribute derives firstname/middlename/lastname/
// authorinitials/email from its (unsubstituted) value using the same
// name-parsing algorithm as an author line, then stores the
// substituted form of the original value as "author" itself.
func setAuthorAttribute(table *AttributeTable, value string) {
	authors := ParseAuthorLine(value, table.Attribute)
	if len(authors) > 0 {
		a := authors[0]
		if a.FirstName != "" {
			table.SetFromHeader("firstname", a.FirstName)
		}
		if a.MiddleName != "" {
			table.SetFromHeader("middlename", a.MiddleName)
		}
		if a.LastName != "" {
			table.SetFromHeader("lastname", a.LastName)
		}
		if initials := a.Initials(); initials != "" {
			table.SetFromHeader("authorinitials", initials)
		}
		if a.Email != "" {
			table.SetFromHeader("email", a.Email)
		}
	}
	table.SetFromHeader("author", substituteAttributeEntryValue(value, table))
}

// ParseAttributeEntryLine parses a ":name: value" or ":name!:" attribute
// entry line. name retains a trailing "!" for the unset form so the
// caller can distinguish it.
func ParseAttributeEntryLine(line string) (name, value string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		return "", "", false
	}
	rest := line[1:]
	idx := strings.Index(rest, ":")
	if idx < 0 {
		return "", "", false
	}
	name = rest[:idx]
	value = strings.TrimSpace(rest[idx+1:])
	if name == "" {
		return "", "", false
	}
	return name, value, true
}
