package blocks

import (
	"strings"

	"github.com/jlrickert/adoc/pkg/content"
	"github.com/jlrickert/adoc/pkg/span"
)

// matchListMarker recognizes a list item marker at the start of line:
// unordered ("-", "*", "**", ...), ordered ("." runs, "1.", "a.", "A.",
// "ii.", ...), or description ("term::"). It returns the marker span
// itself and the remainder of the line following the marker and its
// required trailing whitespace.
func matchListMarker(line span.Span) (marker span.Span, rest span.Span, kind string, ok bool) {
	ws := line.DiscardWhitespace()
	data := ws.Data()

	// The description-term separator must sit on the marker's own line.
	firstLine := data
	if nl := strings.IndexByte(firstLine, '\n'); nl >= 0 {
		firstLine = firstLine[:nl]
	}
	if idx := strings.Index(firstLine, ":: "); idx > 0 {
		return ws.SliceTo(idx + 2), ws.SliceFrom(idx + 3), "description", true
	}

	if len(data) > 0 && (data[0] == '-' || data[0] == '*') {
		c := rune(data[0])
		m := ws.TakeWhile(func(r rune) bool { return r == c })
		if sp, spaceOk := m.After.TakeRequiredWhitespace(); spaceOk {
			return m.Item, sp.After, "unordered", true
		}
	}

	if len(data) > 0 && data[0] == '.' {
		m := ws.TakeWhile(func(r rune) bool { return r == '.' })
		if sp, spaceOk := m.After.TakeRequiredWhitespace(); spaceOk {
			return m.Item, sp.After, "ordered", true
		}
	}

	for _, pred := range []func(rune) bool{
		func(r rune) bool { return r >= '0' && r <= '9' },
		func(r rune) bool { return r >= 'a' && r <= 'z' },
		func(r rune) bool { return r >= 'A' && r <= 'Z' },
	} {
		run := ws.TakeWhile(pred)
		if run.Item.IsEmpty() {
			continue
		}
		if dot, dotOk := run.After.TakePrefix("."); dotOk {
			if sp, spaceOk := dot.After.TakeRequiredWhitespace(); spaceOk {
				full := ws.Slice(0, run.Item.Len()+1)
				return full, sp.After, "ordered", true
			}
		}
		break
	}

	return span.Span{}, span.Span{}, "", false
}

func containsShape(shapes []string, s string) bool {
	for _, sh := range shapes {
		if sh == s {
			return true
		}
	}
	return false
}

const romanLowerChars = "ivxlcdm"
const romanUpperChars = "IVXLCDM"

// orderedMarkerClass groups an explicit ordered marker by its numbering
// style rather than its text, so "1." and "2." (or "b." and "c.")
// continue one list. A multi-character letter run drawn entirely from
// the roman numeral alphabet counts as roman; a single letter counts as
// alphabetic, so "i." starts an alphabetic list and "ii." a roman one.
func orderedMarkerClass(markerText string) string {
	body := strings.TrimSuffix(markerText, ".")
	if body == "" {
		return markerText
	}
	switch {
	case body[0] >= '0' && body[0] <= '9':
		return "arabic"
	case len(body) > 1 && strings.Trim(body, romanLowerChars) == "":
		return "roman-lower"
	case len(body) > 1 && strings.Trim(body, romanUpperChars) == "":
		return "roman-upper"
	case body[0] >= 'a' && body[0] <= 'z':
		return "alpha-lower"
	default:
		return "alpha-upper"
	}
}

// markerShape reduces a marker to the key used to decide whether
// consecutive items belong to the same list: description items group by
// kind alone (each term differs), explicit ordered markers group by
// numbering style (each ordinal differs), and the remaining marker
// kinds must share the exact marker text (so "-" and "*" start distinct
// lists, and so does a change in repetition depth such as "*" versus
// "**").
func markerShape(kind, markerText string) string {
	if kind == "description" {
		return "description"
	}
	if kind == "ordered" && !strings.HasPrefix(markerText, ".") {
		return orderedMarkerClass(markerText)
	}
	return markerText
}

// tryList parses a run of list items sharing the first item's marker
// shape. When a following item carries a list marker of a different
// shape or kind (a deeper "**" run, a switch from "-" to "*", an
// ordered run inside an unordered one), that run is parsed recursively
// as its own ListBlock and attached inside the item that precedes it,
// then parsing of the current list resumes: markers that are not
// structurally equivalent to the list's first marker begin a nested
// list rather than ending this one.
func tryList(rest span.Span, meta BlockMetadata, start span.Span, ctx *ParseContext) (Block, span.Span, bool) {
	return parseList(rest, meta, start, ctx, nil)
}

// parseList is tryList with the marker shapes of the enclosing lists
// threaded through, so a marker that returns to an ancestor's shape
// terminates the nested list instead of starting a deeper one.
func parseList(rest span.Span, meta BlockMetadata, start span.Span, ctx *ParseContext, ancestors []string) (Block, span.Span, bool) {
	_, _, kind, ok := matchListMarker(rest)
	if !ok {
		return nil, rest, false
	}

	// The metadata lines preceding the list (title, anchor, attrlist)
	// describe the list itself, not its items: each item gets a fresh
	// BlockMetadata carrying only the resolved substitution group.
	group := resolveGroup(&meta, content.Normal)

	var items []*ListItemBlock
	var shape string
	cursor := rest

	for {
		ms, am, k, mok := matchListMarker(cursor)
		if !mok {
			break
		}
		thisShape := markerShape(k, ms.Data())
		if shape == "" {
			shape = thisShape
		} else if k != kind || thisShape != shape {
			if containsShape(ancestors, thisShape) {
				break
			}
			var nestedMeta BlockMetadata
			nested, next, nok := parseList(cursor, nestedMeta, cursor, ctx, append(ancestors, shape))
			if !nok {
				break
			}
			last := items[len(items)-1]
			last.Children = append(last.Children, nested)
			cursor = next
			continue
		}

		lineMatch := am.TakeNormalizedLine()
		principal := ctx.substituteContent(lineMatch.Item, group)
		itemSpan := cursor.TrimRemainder(lineMatch.After)
		items = append(items, &ListItemBlock{
			BlockMetadata: BlockMetadata{Group: group},
			SourceSpan:    itemSpan,
			Marker:        ms.Data(),
			Principal:     principal,
		})
		cursor = lineMatch.After
	}

	if len(items) == 0 {
		return nil, rest, false
	}

	return &ListBlock{
		BlockMetadata: meta,
		SourceSpan:    start.TrimRemainder(cursor),
		Type:          kind,
		Items:         items,
	}, cursor, true
}
