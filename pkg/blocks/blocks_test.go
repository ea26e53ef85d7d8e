package blocks_test

import (
	"testing"

	"github.com/jlrickert/adoc/pkg/blocks"
	"github.com/jlrickert/adoc/pkg/document"
	"github.com/jlrickert/adoc/pkg/render"
	"github.com/jlrickert/adoc/pkg/span"
	"github.com/jlrickert/adoc/pkg/warnings"
	"github.com/stretchr/testify/require"
)

func newCtx(t *testing.T) (*blocks.ParseContext, *[]warnings.Warning) {
	t.Helper()
	warns := []warnings.Warning{}
	attrs := document.NewAttributeTable()
	attrs.SetIntrinsic("sectids", "", document.Anywhere)
	ctx := blocks.NewParseContext(attrs, document.NewCatalog(), render.HTML{}, &warns)
	return ctx, &warns
}

func parseAll(t *testing.T, src string) ([]blocks.Block, *blocks.ParseContext) {
	t.Helper()
	ctx, _ := newCtx(t)
	return blocks.ParseBlocks(span.New(src), ctx), ctx
}

func TestParseBlocks_SimpleParagraph(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "just a paragraph\nsecond line")
	require.Len(t, result, 1)
	p, ok := result[0].(*blocks.SimpleBlock)
	require.True(t, ok)
	require.Equal(t, "just a paragraph\nsecond line", p.Content.Rendered)
}

func TestParseBlocks_SectionWithGeneratedID(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "== Section One\n\nBody text")
	require.Len(t, result, 1)
	sec, ok := result[0].(*blocks.SectionBlock)
	require.True(t, ok)
	require.Equal(t, 1, sec.Level)
	require.Equal(t, "Section One", sec.Title.Rendered)
	require.Equal(t, "_section_one", sec.ID)
	require.Len(t, sec.Children, 1)
}

func TestParseBlocks_SectionLevelSkipWarning(t *testing.T) {
	t.Parallel()
	_, ctx := parseAll(t, "== Level1\n\n==== Level3\n\ntext")
	var found bool
	for _, w := range *ctx.Warnings {
		if w.Type == warnings.SectionTitleLevelSkipped {
			found = true
		}
	}
	require.True(t, found)
}

func TestParseBlocks_DocumentTitleInBodyWarning(t *testing.T) {
	t.Parallel()
	_, ctx := parseAll(t, "= Not allowed here\n\ntext")
	var found bool
	for _, w := range *ctx.Warnings {
		if w.Type == warnings.DocumentTitleLevelInvalid {
			found = true
		}
	}
	require.True(t, found)
}

func TestParseBlocks_AnchorLineRegistersID(t *testing.T) {
	t.Parallel()
	result, ctx := parseAll(t, "[[custom-id,Custom Text]]\nParagraph.")
	require.Len(t, result, 1)
	p := result[0].(*blocks.SimpleBlock)
	require.True(t, p.HasAnchor)
	require.Equal(t, "custom-id", p.ID)
	require.Equal(t, "Custom Text", p.AnchorReftext)

	entry, ok := ctx.Catalog.Ref("custom-id")
	require.True(t, ok)
	require.Equal(t, "Custom Text", entry.Reftext)
}

func TestParseBlocks_DuplicateAnchorGetsUniqueSuffix(t *testing.T) {
	t.Parallel()
	result, ctx := parseAll(t, "[[dup]]\nFirst para.\n\n[[dup]]\nSecond para.")
	require.Len(t, result, 2)
	first := result[0].(*blocks.SimpleBlock)
	second := result[1].(*blocks.SimpleBlock)
	require.Equal(t, "dup", first.ID)
	require.Equal(t, "dup-2", second.ID)

	var found bool
	for _, w := range *ctx.Warnings {
		if w.Type == warnings.DuplicateID {
			found = true
		}
	}
	require.True(t, found)
}

func TestParseBlocks_RawDelimitedListing(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "----\ncode here\n----")
	require.Len(t, result, 1)
	raw, ok := result[0].(*blocks.RawDelimitedBlock)
	require.True(t, ok)
	require.Equal(t, "listing", raw.Kind)
	require.Equal(t, "code here", raw.Content.Rendered)
}

func TestParseBlocks_UnterminatedDelimitedBlockWarns(t *testing.T) {
	t.Parallel()
	result, ctx := parseAll(t, "----\nbody")
	require.Len(t, result, 1)
	_, ok := result[0].(*blocks.RawDelimitedBlock)
	require.True(t, ok)

	var found bool
	for _, w := range *ctx.Warnings {
		if w.Type == warnings.UnterminatedDelimitedBlock {
			found = true
		}
	}
	require.True(t, found)
}

func TestParseBlocks_CompoundExampleBlock(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "====\nInside text\n====")
	require.Len(t, result, 1)
	ex, ok := result[0].(*blocks.CompoundDelimitedBlock)
	require.True(t, ok)
	require.Equal(t, "example", ex.Kind)
	require.Len(t, ex.Children, 1)
	inner := ex.Children[0].(*blocks.SimpleBlock)
	require.Equal(t, "Inside text", inner.Content.Rendered)
}

func TestParseBlocks_UnorderedList(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "* one\n* two\n* three")
	require.Len(t, result, 1)
	list, ok := result[0].(*blocks.ListBlock)
	require.True(t, ok)
	require.Equal(t, "unordered", list.Type)
	require.Len(t, list.Items, 3)
	require.Equal(t, "one", list.Items[0].Principal.Rendered)
	require.Equal(t, "two", list.Items[1].Principal.Rendered)
	require.Equal(t, "three", list.Items[2].Principal.Rendered)
}

func TestParseBlocks_ListItemsCarrySubstitutionGroup(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "* one\n* two")
	list := result[0].(*blocks.ListBlock)
	require.Equal(t, "normal", list.SubstitutionGroup().Name)
	for _, item := range list.Items {
		require.Equal(t, "normal", item.SubstitutionGroup().Name)
	}
}

func TestParseBlocks_ListMetadataStaysOnListNotItems(t *testing.T) {
	t.Parallel()
	result, ctx := parseAll(t, ".Groceries\n[[mylist]]\n[square]\n* milk\n* eggs")
	require.Len(t, result, 1)
	list := result[0].(*blocks.ListBlock)

	require.True(t, list.HasTitle)
	require.Equal(t, "Groceries", list.Title.Rendered)
	require.Equal(t, "mylist", list.ID)
	style, ok := list.DeclaredStyle()
	require.True(t, ok)
	require.Equal(t, "square", style)

	require.Len(t, list.Items, 2)
	for _, item := range list.Items {
		require.False(t, item.HasTitle)
		require.Empty(t, item.ID)
		require.False(t, item.HasAnchor)
		require.False(t, item.HasAttrlist)
		_, hasStyle := item.DeclaredStyle()
		require.False(t, hasStyle)
	}

	_, registered := ctx.Catalog.Ref("mylist")
	require.True(t, registered)
}

func TestParseBlocks_MarkerShapeChangeNestsList(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "* one\n** two")
	require.Len(t, result, 1)
	outer := result[0].(*blocks.ListBlock)
	require.Len(t, outer.Items, 1)

	require.Len(t, outer.Items[0].Children, 1)
	nested := outer.Items[0].Children[0].(*blocks.ListBlock)
	require.Len(t, nested.Items, 1)
	require.Equal(t, "**", nested.Items[0].Marker)
	require.Equal(t, "two", nested.Items[0].Principal.Rendered)
	require.Equal(t, blocks.ContentCompound, outer.Items[0].ContentModel())
}

func TestParseBlocks_NestedListReturnsToOuterLevel(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "* one\n** a\n** b\n* two")
	require.Len(t, result, 1)
	outer := result[0].(*blocks.ListBlock)
	require.Len(t, outer.Items, 2)
	require.Equal(t, "one", outer.Items[0].Principal.Rendered)
	require.Equal(t, "two", outer.Items[1].Principal.Rendered)

	nested := outer.Items[0].Children[0].(*blocks.ListBlock)
	require.Len(t, nested.Items, 2)
	require.Equal(t, "a", nested.Items[0].Principal.Rendered)
	require.Empty(t, outer.Items[1].Children)
}

func TestParseBlocks_OrderedListNestsInsideUnordered(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "* outer\n. first\n. second")
	require.Len(t, result, 1)
	outer := result[0].(*blocks.ListBlock)
	require.Equal(t, "unordered", outer.Type)
	require.Len(t, outer.Items, 1)

	nested := outer.Items[0].Children[0].(*blocks.ListBlock)
	require.Equal(t, "ordered", nested.Type)
	require.Len(t, nested.Items, 2)
}

func TestParseBlocks_ExplicitNumberedListContinues(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "1. first\n2. second\n3. third")
	require.Len(t, result, 1)
	list := result[0].(*blocks.ListBlock)
	require.Equal(t, "ordered", list.Type)
	require.Len(t, list.Items, 3)
	require.Equal(t, "2.", list.Items[1].Marker)
}

func TestParseBlocks_AlphaAndRomanListMarkers(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "a. alpha one\nb. alpha two")
	require.Len(t, result, 1)
	list := result[0].(*blocks.ListBlock)
	require.Len(t, list.Items, 2)

	result, _ = parseAll(t, "ii. roman two\niii. roman three")
	require.Len(t, result, 1)
	list = result[0].(*blocks.ListBlock)
	require.Len(t, list.Items, 2)
}

func TestParseBlocks_DescriptionList(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "term one:: definition one\nterm two:: definition two")
	require.Len(t, result, 1)
	list := result[0].(*blocks.ListBlock)
	require.Equal(t, "description", list.Type)
	require.Len(t, list.Items, 2)
	require.Equal(t, "term one::", list.Items[0].Marker)
	require.Equal(t, "definition one", list.Items[0].Principal.Rendered)
}

func TestParseBlocks_MediaBlockImage(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "image::foo.png[Alt text]")
	require.Len(t, result, 1)
	media, ok := result[0].(*blocks.MediaBlock)
	require.True(t, ok)
	require.Equal(t, "image", media.Kind)
	require.Equal(t, "foo.png", media.Target)
	v, ok := media.Attrs.NthAttribute(1)
	require.True(t, ok)
	require.Equal(t, "Alt text", v.Value())
}

func TestParseBlocks_GenericMacroBlock(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "custom::target[key=val]")
	require.Len(t, result, 1)
	macro, ok := result[0].(*blocks.MacroBlock)
	require.True(t, ok)
	require.Equal(t, "custom", macro.Name)
	require.Equal(t, "target", macro.Target)
	v, ok := macro.Attrs.NamedAttribute("key")
	require.True(t, ok)
	require.Equal(t, "val", v.Value())
}

func TestParseBlocks_ThematicBreak(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "'''")
	require.Len(t, result, 1)
	br, ok := result[0].(*blocks.BreakBlock)
	require.True(t, ok)
	require.Equal(t, "thematic", br.Kind)
}

func TestParseBlocks_DocumentAttributeEntry(t *testing.T) {
	t.Parallel()
	result, ctx := parseAll(t, ":foo: bar\n\ntext")
	require.Len(t, result, 2)
	entry, ok := result[0].(*blocks.DocumentAttributeBlock)
	require.True(t, ok)
	require.Equal(t, "foo", entry.Name)
	require.Equal(t, "bar", entry.Value)
	require.False(t, entry.Unset)

	v, ok := ctx.Attributes.Attribute("foo")
	require.True(t, ok)
	require.Equal(t, "bar", v)
}

func TestParseBlocks_LeadingBangUnsetsAttribute(t *testing.T) {
	t.Parallel()
	result, ctx := parseAll(t, ":foo: bar\n\n:!foo:\n\ntext")
	require.Len(t, result, 3)
	entry, ok := result[1].(*blocks.DocumentAttributeBlock)
	require.True(t, ok)
	require.Equal(t, "foo", entry.Name)
	require.True(t, entry.Unset)

	_, ok = ctx.Attributes.Attribute("foo")
	require.False(t, ok)
}

func TestParseBlocks_PreambleWrapsBlocksBeforeFirstSection(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "intro text\n\n== Section\n\nbody")
	require.Len(t, result, 2)
	preamble, ok := result[0].(*blocks.PreambleBlock)
	require.True(t, ok)
	require.Len(t, preamble.Children, 1)
	_, ok = result[1].(*blocks.SectionBlock)
	require.True(t, ok)
}

func TestParseBlocks_TitleAndShorthandRoleMetadata(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "[.lead]\n.My Title\nParagraph text.")
	require.Len(t, result, 1)
	p, ok := result[0].(*blocks.SimpleBlock)
	require.True(t, ok)
	require.True(t, p.HasTitle)
	require.Equal(t, "My Title", p.Title.Rendered)
	require.Equal(t, []string{"lead"}, p.Roles)
}

func TestParseBlocks_NoSectionsMeansNoPreamble(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "just one paragraph")
	require.Len(t, result, 1)
	_, ok := result[0].(*blocks.PreambleBlock)
	require.False(t, ok)
}

func TestParseBlocks_ListingKeepsPassthroughDelimitersLiteral(t *testing.T) {
	t.Parallel()
	// Verbatim content runs no macro step, so passthrough delimiters
	// are ordinary text there.
	result, _ := parseAll(t, "----\na ++literal++ run\n----")
	raw := result[0].(*blocks.RawDelimitedBlock)
	require.Equal(t, "a ++literal++ run", raw.Content.Rendered)
}

func TestParseBlocks_ListingCalloutMarker(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "----\nrun this <1>\n----")
	raw := result[0].(*blocks.RawDelimitedBlock)
	require.Equal(t, `run this <b class="conum">(1)</b>`, raw.Content.Rendered)
}

func TestParseBlocks_CommentBlockDiscardsContent(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "////\nsecret notes\n////")
	require.Len(t, result, 1)
	raw, ok := result[0].(*blocks.RawDelimitedBlock)
	require.True(t, ok)
	require.Equal(t, "comment", raw.Kind)
	require.Equal(t, "", raw.Content.Rendered)
	require.Equal(t, blocks.ContentEmpty, raw.ContentModel())
}

func TestParseBlocks_SubsOverrideSelectsCustomGroup(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "[subs=\"verbatim\"]\nA <tag> & *bold*")
	require.Len(t, result, 1)
	p, ok := result[0].(*blocks.SimpleBlock)
	require.True(t, ok)
	require.Equal(t, "verbatim", p.SubstitutionGroup().Name)
	require.Equal(t, "A &lt;tag&gt; &amp; *bold*", p.Content.Rendered)
}

func TestParseBlocks_SubsOverrideCustomSpec(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "[subs=\"n,-r\"]\nPlain text")
	require.Len(t, result, 1)
	p, ok := result[0].(*blocks.SimpleBlock)
	require.True(t, ok)
	require.Equal(t, "n,-r", p.SubstitutionGroup().Name)
}

func TestParseBlocks_BlockAccessors(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "just a paragraph")
	require.Len(t, result, 1)
	p := result[0].(*blocks.SimpleBlock)
	require.Equal(t, "paragraph", p.RawContext())
	require.Equal(t, "paragraph", p.ResolvedContext())
	require.Equal(t, blocks.ContentSimple, p.ContentModel())
	require.False(t, p.HasOption("nonexistent"))
	_, hasStyle := p.DeclaredStyle()
	require.False(t, hasStyle)
}

func TestParseBlocks_SectionLevelExceedsMaximumWarning(t *testing.T) {
	t.Parallel()
	_, ctx := parseAll(t, "======= Too Deep\n\ntext")
	var found bool
	for _, w := range *ctx.Warnings {
		if w.Type == warnings.SectionTitleLevelExceedsMaximum {
			found = true
		}
	}
	require.True(t, found)
}

func TestParseBlocks_HashMarkerSection(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "## Hash Section\n\nbody")
	require.Len(t, result, 1)
	sec, ok := result[0].(*blocks.SectionBlock)
	require.True(t, ok)
	require.Equal(t, 1, sec.Level)
	require.Equal(t, "Hash Section", sec.Title.Rendered)
}

func TestParseBlocks_MarkdownStyleThematicBreaks(t *testing.T) {
	t.Parallel()
	for _, src := range []string{"---", "- - -", "***", "* * *"} {
		result, _ := parseAll(t, src)
		require.Len(t, result, 1, "input %q", src)
		br, ok := result[0].(*blocks.BreakBlock)
		require.True(t, ok, "input %q", src)
		require.Equal(t, "thematic", br.Kind)
	}
}

func TestParseBlocks_PageBreak(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "<<<")
	require.Len(t, result, 1)
	br := result[0].(*blocks.BreakBlock)
	require.Equal(t, "page", br.Kind)
}

func TestParseBlocks_MediaMacroMissingTargetWarns(t *testing.T) {
	t.Parallel()
	result, ctx := parseAll(t, "image::[no target]")
	require.Len(t, result, 1)
	_, isSimple := result[0].(*blocks.SimpleBlock)
	require.True(t, isSimple)

	var found bool
	for _, w := range *ctx.Warnings {
		if w.Type == warnings.MediaMacroMissingTarget {
			found = true
		}
	}
	require.True(t, found)
}

func TestParseBlocks_MediaMacroSingleColonWarns(t *testing.T) {
	t.Parallel()
	result, ctx := parseAll(t, "video:clip.mp4[]")
	require.Len(t, result, 1)
	_, isSimple := result[0].(*blocks.SimpleBlock)
	require.True(t, isSimple)

	var found bool
	for _, w := range *ctx.Warnings {
		if w.Type == warnings.MacroMissingDoubleColon {
			found = true
		}
	}
	require.True(t, found)
}

func TestParseBlocks_MediaMacroWithoutAttrlistWarns(t *testing.T) {
	t.Parallel()
	_, ctx := parseAll(t, "image::diagram.svg")
	var found bool
	for _, w := range *ctx.Warnings {
		if w.Type == warnings.MacroMissingAttributeList {
			found = true
		}
	}
	require.True(t, found)
}

func TestParseBlocks_MissingBlockAfterMetadataReparsesAsParagraph(t *testing.T) {
	t.Parallel()
	result, ctx := parseAll(t, ".Orphan Title\n[sidebar]")
	require.Len(t, result, 1)
	p, ok := result[0].(*blocks.SimpleBlock)
	require.True(t, ok)
	require.False(t, p.HasTitle)
	require.Equal(t, ".Orphan Title\n[sidebar]", p.Content.Rendered)

	var found bool
	for _, w := range *ctx.Warnings {
		if w.Type == warnings.MissingBlockAfterTitleOrAttributeList {
			found = true
		}
	}
	require.True(t, found)
}

func TestParseBlocks_SectionIDsDisabledWithoutSectids(t *testing.T) {
	t.Parallel()
	warns := []warnings.Warning{}
	ctx := blocks.NewParseContext(document.NewAttributeTable(), document.NewCatalog(), render.HTML{}, &warns)
	result := blocks.ParseBlocks(span.New("== No ID Here\n\ntext"), ctx)
	sec := result[0].(*blocks.SectionBlock)
	require.Equal(t, "", sec.ID)
}

func TestParseBlocks_IDPrefixAndSeparatorAttributesOverride(t *testing.T) {
	t.Parallel()
	ctx, _ := newCtx(t)
	ctx.Attributes.SetIntrinsic("idprefix", "ref-", document.Anywhere)
	ctx.Attributes.SetIntrinsic("idseparator", "-", document.Anywhere)
	result := blocks.ParseBlocks(span.New("== Some Long Title\n\ntext"), ctx)
	sec := result[0].(*blocks.SectionBlock)
	require.Equal(t, "ref-some-long-title", sec.ID)
}

func TestParseBlocks_EmptyIDSeparatorRemovesSpaces(t *testing.T) {
	t.Parallel()
	ctx, _ := newCtx(t)
	ctx.Attributes.SetIntrinsic("idseparator", "", document.Anywhere)
	result := blocks.ParseBlocks(span.New("== My Section\n\ntext"), ctx)
	sec := result[0].(*blocks.SectionBlock)
	require.Equal(t, "_mysection", sec.ID)
}

func TestParseBlocks_ExplicitAnchorSuppressesGeneratedID(t *testing.T) {
	t.Parallel()
	result, ctx := parseAll(t, "[[custom]]\n== Custom Anchor Section\n\ntext")
	sec := result[0].(*blocks.SectionBlock)
	require.Equal(t, "custom", sec.ID)
	_, generated := ctx.Catalog.Ref("_custom_anchor_section")
	require.False(t, generated)
}

func TestParseBlocks_SectionNumbering(t *testing.T) {
	t.Parallel()
	ctx, _ := newCtx(t)
	ctx.Attributes.SetIntrinsic("sectnums", "", document.Anywhere)
	result := blocks.ParseBlocks(span.New("== One\n\n=== One-One\n\ntext\n\n== Two\n\ntext"), ctx)

	first := result[0].(*blocks.SectionBlock)
	require.Equal(t, "1.", first.Number)
	nested := first.Children[0].(*blocks.SectionBlock)
	require.Equal(t, "1.1.", nested.Number)
	second := result[1].(*blocks.SectionBlock)
	require.Equal(t, "2.", second.Number)
}

func TestParseBlocks_DiscreteSectionSkipsNumbering(t *testing.T) {
	t.Parallel()
	ctx, _ := newCtx(t)
	ctx.Attributes.SetIntrinsic("sectnums", "", document.Anywhere)
	result := blocks.ParseBlocks(span.New("[discrete]\n== Heading\n\ntext"), ctx)
	sec := result[0].(*blocks.SectionBlock)
	require.Equal(t, blocks.SectionDiscrete, sec.Type)
	require.Equal(t, "", sec.Number)
}

func TestParseBlocks_AppendixSectionType(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "[appendix]\n== Extra Material\n\ntext")
	sec := result[0].(*blocks.SectionBlock)
	require.Equal(t, blocks.SectionAppendix, sec.Type)
}

func TestParseBlocks_DeclaredStyleOverridesResolvedContext(t *testing.T) {
	t.Parallel()
	result, _ := parseAll(t, "[source]\nParagraph text.")
	require.Len(t, result, 1)
	p := result[0].(*blocks.SimpleBlock)
	style, ok := p.DeclaredStyle()
	require.True(t, ok)
	require.Equal(t, "source", style)
	require.Equal(t, "paragraph", p.RawContext())
	require.Equal(t, "source", p.ResolvedContext())
}
