package blocks

import (
	"strings"

	"github.com/jlrickert/adoc/pkg/content"
	"github.com/jlrickert/adoc/pkg/document"
	"github.com/jlrickert/adoc/pkg/span"
	"github.com/jlrickert/adoc/pkg/warnings"
)

// parseBlockMetadata consumes any leading attribute lines ("[...]") and
// a title line (".Title text") preceding a block, merging them into a
// BlockMetadata. Either may repeat or be absent; parsing stops at the
// first line that is neither.
func parseBlockMetadata(rest span.Span, ctx *ParseContext) (BlockMetadata, span.Span) {
	var meta BlockMetadata

	for {
		if _, ok := rest.TakePrefix("[["); ok {
			lineMatch := rest.TakeNormalizedLine()
			data := lineMatch.Item.Data()
			if strings.HasSuffix(data, "]]") && len(data) >= 4 {
				inner := lineMatch.Item.Slice(2, lineMatch.Item.Len()-2)
				id, reftext := splitAnchor(inner.Data())
				meta.ID = id
				meta.AnchorReftext = reftext
				meta.HasAnchor = true
				if id != "" {
					if err := ctx.Catalog.RegisterRef(id, reftext, document.RefAnchor); err != nil {
						unique := ctx.Catalog.GenerateAndRegisterUniqueID(id, reftext, document.RefAnchor)
						ctx.warn(lineMatch.Item, warnings.DuplicateID,
							"anchor id \""+id+"\" already registered; using \""+unique+"\" instead")
						meta.ID = unique
					}
				}
				rest = lineMatch.After
				continue
			}
		}

		if m, ok := rest.TakePrefix("["); ok {
			lineMatch := rest.TakeNormalizedLine()
			data := lineMatch.Item.Data()
			if strings.HasSuffix(data, "]") && len(data) >= 2 {
				inner := lineMatch.Item.Slice(1, lineMatch.Item.Len()-1)
				al := ctx.parseAttrlist(inner)
				meta.Attrlist = al
				meta.HasAttrlist = true
				if id, ok := al.ID(); ok {
					meta.ID = id
				}
				meta.Roles = al.Roles()
				meta.Options = al.Options()
				if style, ok := al.BlockStyle(); ok {
					meta.Style = style
				}
				if subs, ok := al.NamedAttribute("subs"); ok {
					meta.SubsOverride = subs.Value()
					meta.HasSubsOverride = true
				}
				rest = lineMatch.After
				continue
			}
			_ = m
		}

		if m, ok := rest.TakePrefix("."); ok {
			data := m.After.Data()
			if len(data) > 0 && data[0] != ' ' && data[0] != '.' && data[0] != '\t' {
				lineMatch := rest.TakeNormalizedLine()
				titleSpan := lineMatch.Item.Slice(1, lineMatch.Item.Len())
				meta.Title = ctx.substituteContent(titleSpan, content.Title)
				meta.HasTitle = true
				rest = lineMatch.After
				continue
			}
		}

		break
	}

	return meta, rest
}

// splitAnchor splits an "[[id]]" or "[[id,reftext]]" line's interior
// (already stripped of its enclosing double brackets) into the id and
// the optional reftext, trimming surrounding whitespace from each.
func splitAnchor(inner string) (id, reftext string) {
	if idx := strings.IndexByte(inner, ','); idx >= 0 {
		return strings.TrimSpace(inner[:idx]), strings.TrimSpace(inner[idx+1:])
	}
	return strings.TrimSpace(inner), ""
}
