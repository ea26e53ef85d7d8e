package parser_test

import (
	"log/slog"
	"testing"

	"github.com/jlrickert/adoc/pkg/blocks"
	"github.com/jlrickert/adoc/pkg/document"
	"github.com/jlrickert/adoc/pkg/log"
	"github.com/jlrickert/adoc/pkg/parser"
	"github.com/jlrickert/adoc/pkg/warnings"
	"github.com/stretchr/testify/require"
)

func TestScenario1_SectionWithSimpleChild(t *testing.T) {
	t.Parallel()
	doc := parser.Default().Parse("== Section Title\n\nabc")
	require.Len(t, doc.Body, 1)
	sec, ok := doc.Body[0].(*blocks.SectionBlock)
	require.True(t, ok)
	require.Equal(t, 1, sec.Level)
	require.Equal(t, "Section Title", sec.Title.Rendered)
	require.Len(t, sec.Children, 1)
	simple := sec.Children[0].(*blocks.SimpleBlock)
	require.Equal(t, "abc", simple.Content.Rendered)

	entry, ok := doc.Catalog.Ref("_section_title")
	require.True(t, ok)
	require.Equal(t, document.RefSection, entry.Type)
}

func TestScenario2_ThematicBreak(t *testing.T) {
	t.Parallel()
	doc := parser.Default().Parse("'''")
	require.Len(t, doc.Body, 1)
	br, ok := doc.Body[0].(*blocks.BreakBlock)
	require.True(t, ok)
	require.Equal(t, "thematic", br.Kind)
}

func TestScenario3_PassthroughsAppliedBeforeOtherSubs(t *testing.T) {
	t.Parallel()
	doc := parser.Default().Parse("A +word+, a ++char++ escape.")
	require.Len(t, doc.Body, 1)
	simple, ok := doc.Body[0].(*blocks.SimpleBlock)
	require.True(t, ok)
	require.Equal(t, "A word, a char escape.", simple.Content.Rendered)
}

func TestScenario4_TitleAndShorthandAttrlist(t *testing.T) {
	t.Parallel()
	doc := parser.Default().Parse(".Title\n[sidebar]\nabc\ndef")
	require.Len(t, doc.Body, 1)
	simple, ok := doc.Body[0].(*blocks.SimpleBlock)
	require.True(t, ok)
	require.True(t, simple.HasTitle)
	require.Equal(t, "Title", simple.Title.Rendered)
	style, ok := simple.Attrlist.BlockStyle()
	require.True(t, ok)
	require.Equal(t, "sidebar", style)
	require.Equal(t, "abc\ndef", simple.Content.Rendered)
}

func TestScenario5_ListingBlockEscapesAngleBrackets(t *testing.T) {
	t.Parallel()
	doc := parser.Default().Parse("----\n<pre>\n----")
	require.Len(t, doc.Body, 1)
	raw, ok := doc.Body[0].(*blocks.RawDelimitedBlock)
	require.True(t, ok)
	require.Equal(t, "listing", raw.Kind)
	require.Equal(t, "&lt;pre&gt;", raw.Content.Rendered)
}

func TestScenario6_AuthorAttributeDerivation(t *testing.T) {
	t.Parallel()
	doc := parser.Default().Parse(":author: John Q. Smith <john@example.com>")

	firstname, _ := doc.Attributes.Attribute("firstname")
	middlename, _ := doc.Attributes.Attribute("middlename")
	lastname, _ := doc.Attributes.Attribute("lastname")
	initials, _ := doc.Attributes.Attribute("authorinitials")
	email, _ := doc.Attributes.Attribute("email")
	author, _ := doc.Attributes.Attribute("author")

	require.Equal(t, "John", firstname)
	require.Equal(t, "Q.", middlename)
	require.Equal(t, "Smith", lastname)
	require.Equal(t, "JQS", initials)
	require.Equal(t, "john@example.com", email)
	require.Equal(t, "John Q. Smith &lt;john@example.com&gt;", author)
}

func TestBoundary_EmptyInput(t *testing.T) {
	t.Parallel()
	doc := parser.Default().Parse("")
	require.False(t, doc.Header.HasTitle)
	require.Empty(t, doc.Body)
	require.Empty(t, doc.Warnings)
}

func TestBoundary_SingleCharacter(t *testing.T) {
	t.Parallel()
	doc := parser.Default().Parse("a")
	require.Len(t, doc.Body, 1)
	simple, ok := doc.Body[0].(*blocks.SimpleBlock)
	require.True(t, ok)
	require.Equal(t, "a", simple.Content.Rendered)
	require.Empty(t, doc.Warnings)
}

func TestBoundary_MismatchedDelimiterLengthsFallsBackWithWarning(t *testing.T) {
	t.Parallel()
	// The closing "****" is shorter than the opening "********", so the
	// outer sidebar never terminates and swallows the rest of the input
	// as its body, which is kept as one literal paragraph: "abc" plus
	// the too-short "****" line, with a single warning.
	doc := parser.Default().Parse("********\nabc\n****")
	require.Len(t, doc.Body, 1)
	outer, ok := doc.Body[0].(*blocks.CompoundDelimitedBlock)
	require.True(t, ok)
	require.Equal(t, "sidebar", outer.Kind)
	require.Len(t, outer.Children, 1)

	simple, ok := outer.Children[0].(*blocks.SimpleBlock)
	require.True(t, ok)
	require.Equal(t, "abc\n****", simple.Content.Rendered)

	var count int
	for _, w := range doc.Warnings {
		if w.Type == warnings.UnterminatedDelimitedBlock {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestWithIntrinsicAttribute_SeedsAttributeTable(t *testing.T) {
	t.Parallel()
	doc := parser.Default().
		WithIntrinsicAttribute("doctype", "book", document.ApiOnly).
		Parse("")
	v, ok := doc.Attributes.Attribute("doctype")
	require.True(t, ok)
	require.Equal(t, "book", v)
}

func TestWithIDPrefixAndSeparator_AffectsSectionIDs(t *testing.T) {
	t.Parallel()
	doc := parser.Default().
		WithIDPrefix("sec-").
		WithIDSeparator("-").
		Parse("== My Section\n\nabc")
	sec := doc.Body[0].(*blocks.SectionBlock)
	require.Equal(t, "sec-my-section", sec.ID)
}

func TestWithLogger_LogsAppendedWarnings(t *testing.T) {
	t.Parallel()
	lg, th := log.NewTestLogger(t, slog.LevelDebug)

	doc := parser.Default().WithLogger(lg).Parse("----\nabc")
	require.NotEmpty(t, doc.Warnings)

	entries := log.FindEntries(th, func(e log.LoggedEntry) bool {
		return e.Msg == "parser warning"
	})
	require.NotEmpty(t, entries)
}

func TestParse_HeaderTitleCarriesIntoDocument(t *testing.T) {
	t.Parallel()
	doc := parser.Default().Parse("= Doc Title\n\nbody paragraph")
	require.True(t, doc.Header.HasTitle)
	require.Equal(t, "Doc Title", doc.Header.Title.Rendered)
	require.Len(t, doc.Body, 1)

	doctitle, ok := doc.Attributes.Attribute("doctitle")
	require.True(t, ok)
	require.Equal(t, "Doc Title", doctitle)
}

func TestParse_HeaderTitleNeverGainsFormattingMarkup(t *testing.T) {
	t.Parallel()
	doc := parser.Default().Parse("= A *bold* `code` title\n\nbody")
	require.Equal(t, "A *bold* `code` title", doc.Header.Title.Rendered)
}

func TestParse_SectidsUnsetDisablesSectionIDs(t *testing.T) {
	t.Parallel()
	doc := parser.Default().Parse(":sectids!:\n\n== No ID\n\ntext")
	sec := doc.Body[0].(*blocks.SectionBlock)
	require.Equal(t, "", sec.ID)
}

func TestParse_SectnumsAssignsSectionNumbers(t *testing.T) {
	t.Parallel()
	doc := parser.Default().Parse(":sectnums:\n\n== First\n\ntext\n\n== Second\n\ntext")
	first := doc.Body[0].(*blocks.SectionBlock)
	second := doc.Body[1].(*blocks.SectionBlock)
	require.Equal(t, "1.", first.Number)
	require.Equal(t, "2.", second.Number)
}
