package blocks

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jlrickert/adoc/pkg/content"
	"github.com/jlrickert/adoc/pkg/document"
	"github.com/jlrickert/adoc/pkg/span"
	"github.com/jlrickert/adoc/pkg/warnings"
)

// maxSectionLevel is the deepest supported section nesting level.
const maxSectionLevel = 5

// parseTitleLine recognizes a section/document title line: a run of one
// or more '=' characters (or the '#' markdown-style alternative),
// required whitespace, then the title text. level is the run length
// minus one (so "=" is level 0, "==" is level 1, and so on).
func parseTitleLine(rest span.Span) (level int, title span.Span, after span.Span, ok bool) {
	data := rest.Data()
	if data == "" || (data[0] != '=' && data[0] != '#') {
		return 0, span.Span{}, span.Span{}, false
	}
	marker := rune(data[0])
	run := rest.TakeWhile(func(r rune) bool { return r == marker })
	sp, hasSpace := run.After.TakeRequiredWhitespace()
	if !hasSpace {
		return 0, span.Span{}, span.Span{}, false
	}
	m, lok := sp.After.TakeNonEmptyLine()
	if !lok {
		return 0, span.Span{}, span.Span{}, false
	}
	return run.Item.Len() - 1, m.Item, m.After, true
}

// peekSectionLevel reports the level of a title line at the start of
// rest, without otherwise consuming anything meaningful (Spans are
// immutable views, so "peeking" is just discarding the result).
func peekSectionLevel(rest span.Span) (int, bool) {
	level, _, _, ok := parseTitleLine(rest)
	return level, ok
}

var invalidSectionIDCharsRe = regexp.MustCompile(`<[^>]+>|&[a-zA-Z]+;|&#\d+;|&#x[0-9a-fA-F]+;|[^\w\s.-]+`)
var separatorTargetRe = regexp.MustCompile(`[\s.-]+`)

// sectionIDSettings resolves the effective ID-generation settings:
// generation is enabled only while the "sectids" attribute is set, and
// the "idprefix"/"idseparator" attributes override the context defaults.
func (ctx *ParseContext) sectionIDSettings() (prefix, separator string, enabled bool) {
	prefix, separator = ctx.IDPrefix, ctx.IDSeparator
	if ctx.Attributes != nil {
		if _, ok := ctx.Attributes.Attribute("sectids"); !ok {
			return "", "", false
		}
		if v, ok := ctx.Attributes.Attribute("idprefix"); ok {
			prefix = v
		}
		if v, ok := ctx.Attributes.Attribute("idseparator"); ok {
			separator = v
		}
	}
	return prefix, separator, true
}

// generateSectionID derives an anchor ID from a section title: strip
// markup, character references, and other invalid characters; lowercase;
// then either remove spaces (empty separator) or collapse runs of
// spaces, dots, and hyphens into the separator's first character,
// dropping repeated, trailing, and (with an empty prefix) leading
// separators. The result is registered in the catalog, disambiguated if
// necessary.
func (ctx *ParseContext) generateSectionID(title string) (string, bool) {
	prefix, separator, enabled := ctx.sectionIDSettings()
	if !enabled {
		return "", false
	}

	s := invalidSectionIDCharsRe.ReplaceAllString(title, "")
	s = strings.ToLower(strings.TrimSpace(s))

	if separator == "" {
		s = strings.ReplaceAll(s, " ", "")
	} else {
		sep := separator[:1]
		s = separatorTargetRe.ReplaceAllString(s, sep)
		collapse := regexp.MustCompile(regexp.QuoteMeta(sep) + "{2,}")
		s = collapse.ReplaceAllString(s, sep)
		s = strings.TrimSuffix(s, sep)
		if prefix == "" {
			s = strings.TrimPrefix(s, sep)
		}
	}

	base := prefix + s
	if s == "" {
		base = prefix + "section"
	}
	return ctx.Catalog.GenerateAndRegisterUniqueID(base, title, document.RefSection), true
}

// sectionTypeOf maps a declared block style to the section type it
// selects.
func sectionTypeOf(style string) SectionType {
	switch style {
	case "discrete":
		return SectionDiscrete
	case "appendix":
		return SectionAppendix
	default:
		return SectionNormal
	}
}

// nextSectionNumber advances the per-level section counters for a
// numbered section at level and returns the dotted number string
// ("1.", "1.2.", ...).
func (ctx *ParseContext) nextSectionNumber(level int) string {
	for len(ctx.sectionCounters) < level {
		ctx.sectionCounters = append(ctx.sectionCounters, 0)
	}
	ctx.sectionCounters = ctx.sectionCounters[:level]
	ctx.sectionCounters[level-1]++

	var b strings.Builder
	for _, n := range ctx.sectionCounters {
		b.WriteString(strconv.Itoa(n))
		b.WriteByte('.')
	}
	return b.String()
}

// trySection parses a section title and its nested body, recursing
// until a peer or ancestor section title (or end of input) is reached.
func trySection(rest span.Span, meta BlockMetadata, start span.Span, ctx *ParseContext) (Block, span.Span, bool) {
	level, titleSpan, after, ok := parseTitleLine(rest)
	if !ok {
		return nil, rest, false
	}

	if level == 0 {
		ctx.warn(rest, warnings.DocumentTitleLevelInvalid, "document title not allowed in the body")
	} else if level > maxSectionLevel {
		ctx.warn(rest, warnings.SectionTitleLevelExceedsMaximum,
			fmt.Sprintf("section title level %d exceeds the maximum of %d", level, maxSectionLevel))
	} else if ctx.MostRecentLevel >= 0 && level > ctx.MostRecentLevel+1 {
		ctx.warn(rest, warnings.SectionTitleLevelSkipped,
			fmt.Sprintf("section title level %d skips level %d", level, ctx.MostRecentLevel+1))
	}
	ctx.MostRecentLevel = level

	secType := sectionTypeOf(meta.Style)

	titleContent := ctx.substituteContent(titleSpan, content.Title)
	if meta.ID != "" {
		if !meta.HasAnchor {
			if err := ctx.Catalog.RegisterRef(meta.ID, titleSpan.Data(), document.RefSection); err != nil {
				unique := ctx.Catalog.GenerateAndRegisterUniqueID(meta.ID, titleSpan.Data(), document.RefSection)
				ctx.warn(titleSpan, warnings.DuplicateID,
					"section id \""+meta.ID+"\" already registered; using \""+unique+"\" instead")
				meta.ID = unique
			}
		}
	} else if id, generated := ctx.generateSectionID(titleSpan.Data()); generated {
		meta.ID = id
	}

	var number string
	if secType != SectionDiscrete && level >= 1 && level <= maxSectionLevel && ctx.Attributes != nil {
		if _, numbered := ctx.Attributes.Attribute("sectnums"); numbered {
			number = ctx.nextSectionNumber(level)
		}
	}

	resolveGroup(&meta, content.Normal)

	children, remainder := parseSectionBody(after, level, ctx)

	return &SectionBlock{
		BlockMetadata: meta,
		SourceSpan:    start.TrimRemainder(remainder),
		Level:         level,
		Title:         titleContent,
		Type:          secType,
		Number:        number,
		Children:      children,
	}, remainder, true
}

// parseBlockSequence parses consecutive blocks from rest, stopping
// before any point where stop (if non-nil) reports true, or at the end
// of input.
func parseBlockSequence(rest span.Span, stop func(span.Span) bool, ctx *ParseContext) ([]Block, span.Span) {
	var result []Block
	for {
		trimmed := rest.DiscardEmptyLines()
		if trimmed.IsEmpty() {
			return result, trimmed
		}
		if stop != nil && stop(trimmed) {
			return result, trimmed
		}
		blk, next, ok := ParseBlock(trimmed, ctx)
		if !ok {
			return result, trimmed
		}
		result = append(result, blk)
		rest = next
	}
}

// parseSectionBody parses blocks following a section title until a
// title line at level <= the parent's level is encountered (a peer or
// ancestor section), or input is exhausted.
func parseSectionBody(rest span.Span, level int, ctx *ParseContext) ([]Block, span.Span) {
	return parseBlockSequence(rest, func(s span.Span) bool {
		lvl, ok := peekSectionLevel(s)
		return ok && lvl <= level
	}, ctx)
}
