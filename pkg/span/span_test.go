package span_test

import (
	"testing"

	"github.com/jlrickert/adoc/pkg/span"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	s := span.New("hello")
	require.Equal(t, 1, s.Line())
	require.Equal(t, 1, s.Col())
	require.Equal(t, 0, s.ByteOffset())
	require.Equal(t, "hello", s.Data())
}

func TestSlice_RecomputesLineCol(t *testing.T) {
	t.Parallel()
	s := span.New("abc\ndef\nghi")

	// Slice into the second line ("def").
	second := s.SliceFrom(4)
	require.Equal(t, "def\nghi", second.Data())
	require.Equal(t, 2, second.Line())
	require.Equal(t, 1, second.Col())
	require.Equal(t, 4, second.ByteOffset())

	// Slice further, into the middle of the second line.
	mid := second.SliceFrom(1)
	require.Equal(t, "ef\nghi", mid.Data())
	require.Equal(t, 2, mid.Line())
	require.Equal(t, 2, mid.Col())
	require.Equal(t, 5, mid.ByteOffset())
}

func TestSlice_UTF8RuneColumns(t *testing.T) {
	t.Parallel()
	s := span.New("héllo wörld")
	// 'h', 'é' are runes 1 and 2; slicing past "hé" (3 bytes) should
	// report column 3 (rune count), not byte count.
	after := s.SliceFrom(len("h") + len("é"))
	require.Equal(t, 3, after.Col())
	require.Equal(t, "llo wörld", after.Data())
}

func TestEqual(t *testing.T) {
	t.Parallel()
	a := span.New("same data")
	b := span.New("same data")
	require.True(t, a.Equal(b))

	c := a.SliceFrom(1)
	require.False(t, a.Equal(c))
}

func TestTakePrefix(t *testing.T) {
	t.Parallel()
	s := span.New("==Title")
	m, ok := s.TakePrefix("==")
	require.True(t, ok)
	require.Equal(t, "==", m.Item.Data())
	require.Equal(t, "Title", m.After.Data())

	_, ok = s.TakePrefix("!!")
	require.False(t, ok)
}

func TestTakeWhitespace(t *testing.T) {
	t.Parallel()
	s := span.New("  \tabc")
	m := s.TakeWhitespace()
	require.Equal(t, "  \t", m.Item.Data())
	require.Equal(t, "abc", m.After.Data())

	none := span.New("abc")
	m2 := none.TakeWhitespace()
	require.True(t, m2.Item.IsEmpty())
}

func TestTakeRequiredWhitespace(t *testing.T) {
	t.Parallel()
	_, ok := span.New("abc").TakeRequiredWhitespace()
	require.False(t, ok)

	m, ok := span.New(" abc").TakeRequiredWhitespace()
	require.True(t, ok)
	require.Equal(t, " ", m.Item.Data())
}

func TestTakeLine(t *testing.T) {
	t.Parallel()
	s := span.New("first\nsecond")
	m := s.TakeLine()
	require.Equal(t, "first", m.Item.Data())
	require.Equal(t, "second", m.After.Data())

	last := span.New("onlyline")
	m2 := last.TakeLine()
	require.Equal(t, "onlyline", m2.Item.Data())
	require.True(t, m2.After.IsEmpty())
}

func TestTakeNormalizedLine_StripsTrailingWhitespace(t *testing.T) {
	t.Parallel()
	s := span.New("abc   \nnext")
	m := s.TakeNormalizedLine()
	require.Equal(t, "abc", m.Item.Data())
	require.Equal(t, "next", m.After.Data())
}

func TestTakeNonEmptyLine(t *testing.T) {
	t.Parallel()
	_, ok := span.New("   \nrest").TakeNonEmptyLine()
	require.False(t, ok)

	m, ok := span.New("abc\nrest").TakeNonEmptyLine()
	require.True(t, ok)
	require.Equal(t, "abc", m.Item.Data())
}

func TestDiscardEmptyLines(t *testing.T) {
	t.Parallel()
	s := span.New("\n\n   \nabc\ndef")
	after := s.DiscardEmptyLines()
	require.Equal(t, "abc\ndef", after.Data())
}

func TestDiscardEmptyLines_AllBlank(t *testing.T) {
	t.Parallel()
	s := span.New("\n\n  \n")
	after := s.DiscardEmptyLines()
	require.True(t, after.IsEmpty())
}

func TestTakeWhile(t *testing.T) {
	t.Parallel()
	s := span.New("aaabbb")
	m := s.TakeWhile(func(r rune) bool { return r == 'a' })
	require.Equal(t, "aaa", m.Item.Data())
	require.Equal(t, "bbb", m.After.Data())
}

func TestTakeIdent(t *testing.T) {
	t.Parallel()
	m, ok := span.New("my_ident2 rest").TakeIdent()
	require.True(t, ok)
	require.Equal(t, "my_ident2", m.Item.Data())

	// Hyphens are not permitted in an ident.
	m2, ok := span.New("my-ident rest").TakeIdent()
	require.True(t, ok)
	require.Equal(t, "my", m2.Item.Data())

	_, ok = span.New("-nope").TakeIdent()
	require.False(t, ok)
}

func TestTakeAttrName(t *testing.T) {
	t.Parallel()
	m, ok := span.New("data-foo=bar").TakeAttrName()
	require.True(t, ok)
	require.Equal(t, "data-foo", m.Item.Data())

	// A leading digit is permitted, as it is for TakeIdent.
	m2, ok := span.New("1col=x").TakeAttrName()
	require.True(t, ok)
	require.Equal(t, "1col", m2.Item.Data())
}

func TestTakeQuotedString(t *testing.T) {
	t.Parallel()
	m, ok := span.New(`"hello world" rest`).TakeQuotedString()
	require.True(t, ok)
	require.Equal(t, "hello world", m.Item.Data())
	require.Equal(t, " rest", m.After.Data())

	m2, ok := span.New(`'it\'s fine' rest`).TakeQuotedString()
	require.True(t, ok)
	require.Equal(t, `it\'s fine`, m2.Item.Data())

	escaped, ok := span.New(`"say \"hi\"" rest`).TakeQuotedString()
	require.True(t, ok)
	require.Equal(t, `say \"hi\"`, escaped.Item.Data())

	_, ok = span.New(`"unterminated`).TakeQuotedString()
	require.False(t, ok)

	_, ok = span.New("no quote here").TakeQuotedString()
	require.False(t, ok)
}

func TestSplitAtMatchNonEmpty(t *testing.T) {
	t.Parallel()
	m, ok := span.New("abc=def").SplitAtMatchNonEmpty(func(r rune) bool { return r == '=' })
	require.True(t, ok)
	require.Equal(t, "abc", m.Item.Data())
	require.Equal(t, "=def", m.After.Data())

	_, ok = span.New("=abc").SplitAtMatchNonEmpty(func(r rune) bool { return r == '=' })
	require.False(t, ok, "prefix would be empty")

	_, ok = span.New("abc").SplitAtMatchNonEmpty(func(r rune) bool { return r == '=' })
	require.False(t, ok, "no match at all")
}

func TestTrimRemainder(t *testing.T) {
	t.Parallel()
	s := span.New("abcdef")
	after := s.SliceFrom(4)
	prefix := s.TrimRemainder(after)
	require.Equal(t, "abcd", prefix.Data())
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	s := span.New("abcdef")
	after := s.Discard(3)
	require.Equal(t, "def", after.Data())

	clipped := s.Discard(100)
	require.True(t, clipped.IsEmpty())
}

func TestTrimTrailingLineEnd(t *testing.T) {
	t.Parallel()
	s := span.New("abc\r\n")
	trimmed := s.TrimTrailingLineEnd()
	require.Equal(t, "abc", trimmed.Data())

	none := span.New("abc")
	require.Equal(t, "abc", none.TrimTrailingLineEnd().Data())
}
