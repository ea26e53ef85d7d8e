// Package span implements a zero-copy, line/column/offset-tracking view over
// a UTF-8 source string. A Span never allocates or copies the underlying
// bytes; every operation that "consumes" part of a Span returns a new Span
// that shares the same backing string.
//
// Slicing recomputes line and column by counting newlines and runes in
// the discarded prefix, so a Span always knows exactly where it sits in
// the original document regardless of how many times it has been sliced.
package span

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// Span is an immutable view over a subset of a source string, annotated with
// 1-based line and column numbers and a 0-based byte offset, all relative to
// the beginning of the original source.
type Span struct {
	data   string
	line   int
	col    int
	offset int
}

// New creates a Span describing the entirety of data, starting at line 1,
// column 1, byte offset 0.
func New(data string) Span {
	return Span{data: data, line: 1, col: 1, offset: 0}
}

// Line returns the 1-based line number at the start of this Span.
func (s Span) Line() int { return s.line }

// Col returns the 1-based column number (in runes, not bytes) at the start
// of this Span.
func (s Span) Col() int { return s.col }

// ByteOffset returns the 0-based byte offset of the start of this Span
// relative to the original source.
func (s Span) ByteOffset() int { return s.offset }

// Data returns the raw string content of this Span.
func (s Span) Data() string { return s.data }

// Len returns the length of the Span's data in bytes.
func (s Span) Len() int { return len(s.data) }

// IsEmpty reports whether the Span's data is the empty string.
func (s Span) IsEmpty() bool { return len(s.data) == 0 }

// Equal reports whether two spans have identical data, line, column, and
// offset.
func (s Span) Equal(other Span) bool {
	return s.data == other.data && s.line == other.line && s.col == other.col && s.offset == other.offset
}

// StartsWith reports whether the Span's data begins with prefix.
func (s Span) StartsWith(prefix string) bool {
	return strings.HasPrefix(s.data, prefix)
}

// Contains reports whether the Span's data contains substr.
func (s Span) Contains(substr string) bool {
	return strings.Contains(s.data, substr)
}

// Slice returns the sub-span covering the byte range [start:end) of this
// Span's data, with line/col/offset recomputed for the new start position.
func (s Span) Slice(start, end int) Span {
	return s.sliceAt(start, s.data[start:end])
}

// SliceFrom returns the sub-span starting at byte offset start through the
// end of the data.
func (s Span) SliceFrom(start int) Span {
	return s.sliceAt(start, s.data[start:])
}

// SliceTo returns the sub-span covering the first end bytes of data.
func (s Span) SliceTo(end int) Span {
	return s.sliceAt(0, s.data[:end])
}

// sliceAt recomputes line/col/offset for nextData, which must begin at
// byte offset start of s.data.
func (s Span) sliceAt(start int, nextData string) Span {
	if start == 0 {
		return Span{data: nextData, line: s.line, col: s.col, offset: s.offset}
	}

	discarded := s.data[:start]
	newlines := strings.Count(discarded, "\n")

	var col int
	if newlines == 0 {
		col = s.col + utf8.RuneCountInString(discarded)
	} else {
		lastNL := strings.LastIndexByte(discarded, '\n')
		col = utf8.RuneCountInString(discarded[lastNL+1:]) + 1
	}

	return Span{
		data:   nextData,
		line:   s.line + newlines,
		col:    col,
		offset: s.offset + start,
	}
}

// Match pairs a matched sub-span ("Item") with the remainder of the span
// that follows it ("After"). It is the Go analogue of the original
// implementation's ParseResult / MatchedItem types.
type Match struct {
	Item  Span
	After Span
}

// TakePrefix matches an exact literal prefix. Returns false if the Span's
// data does not begin with literal.
func (s Span) TakePrefix(literal string) (Match, bool) {
	if !strings.HasPrefix(s.data, literal) {
		return Match{}, false
	}
	return Match{Item: s.SliceTo(len(literal)), After: s.SliceFrom(len(literal))}, true
}

func isSpaceOrTab(r rune) bool { return r == ' ' || r == '\t' }

// TakeWhitespace consumes leading spaces and tabs (never newlines). Always
// succeeds; the matched item may be empty.
func (s Span) TakeWhitespace() Match {
	return s.TakeWhile(isSpaceOrTab)
}

// TakeRequiredWhitespace is like TakeWhitespace but fails (returns false) if
// no whitespace was consumed.
func (s Span) TakeRequiredWhitespace() (Match, bool) {
	m := s.TakeWhitespace()
	if m.Item.IsEmpty() {
		return Match{}, false
	}
	return m, true
}

// DiscardWhitespace returns the Span with leading spaces/tabs removed.
func (s Span) DiscardWhitespace() Span {
	return s.TakeWhitespace().After
}

// TakeWhile consumes runes from the start of the Span while pred holds,
// returning the consumed prefix and the remainder. Always succeeds (the
// matched item may be empty).
func (s Span) TakeWhile(pred func(rune) bool) Match {
	i := 0
	for i < len(s.data) {
		r, size := utf8.DecodeRuneInString(s.data[i:])
		if !pred(r) {
			break
		}
		i += size
	}
	return Match{Item: s.SliceTo(i), After: s.SliceFrom(i)}
}

// Position returns the byte index of the first rune matching pred, or false
// if no such rune exists.
func (s Span) Position(pred func(rune) bool) (int, bool) {
	for i, r := range s.data {
		if pred(r) {
			return i, true
		}
	}
	return 0, false
}

// SplitAtMatchNonEmpty consumes a non-empty prefix up to (but not including)
// the first rune matching pred. Fails if there is no such rune, or if the
// prefix would be empty.
func (s Span) SplitAtMatchNonEmpty(pred func(rune) bool) (Match, bool) {
	idx, found := s.Position(pred)
	if !found || idx == 0 {
		return Match{}, false
	}
	return Match{Item: s.SliceTo(idx), After: s.SliceFrom(idx)}, true
}

// isLineEnd reports whether r terminates a line.
func isLineEnd(r rune) bool { return r == '\n' }

// TakeLine consumes through (and including) the next '\n', or to the end of
// the data if none is found. The "Item" does not include the trailing
// newline; "After" starts just past it.
func (s Span) TakeLine() Match {
	idx := strings.IndexByte(s.data, '\n')
	if idx < 0 {
		return Match{Item: s, After: s.SliceFrom(len(s.data))}
	}
	return Match{Item: s.SliceTo(idx), After: s.SliceFrom(idx + 1)}
}

// TakeNormalizedLine is like TakeLine but strips trailing spaces/tabs
// (and a trailing '\r') from the returned line item.
func (s Span) TakeNormalizedLine() Match {
	m := s.TakeLine()
	return Match{Item: trimTrailingSpaceTab(m.Item), After: m.After}
}

func trimTrailingSpaceTab(s Span) Span {
	data := s.data
	end := len(data)
	for end > 0 {
		c := data[end-1]
		if c == ' ' || c == '\t' || c == '\r' {
			end--
			continue
		}
		break
	}
	return s.SliceTo(end)
}

// TrimTrailingWhitespace strips trailing spaces, tabs, and newlines from the
// end of the span's data (without altering its start position).
func (s Span) TrimTrailingWhitespace() Span {
	end := len(s.data)
	for end > 0 {
		c := s.data[end-1]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			end--
			continue
		}
		break
	}
	return s.SliceTo(end)
}

// TrimTrailingLineEnd strips a single trailing '\n' (and preceding '\r'),
// if present.
func (s Span) TrimTrailingLineEnd() Span {
	data := s.data
	end := len(data)
	if end > 0 && data[end-1] == '\n' {
		end--
		if end > 0 && data[end-1] == '\r' {
			end--
		}
	}
	return s.SliceTo(end)
}

// TakeNonEmptyLine is like TakeLine but fails if the line (after trimming
// trailing whitespace) would be empty.
func (s Span) TakeNonEmptyLine() (Match, bool) {
	m := s.TakeNormalizedLine()
	if m.Item.IsEmpty() {
		return Match{}, false
	}
	return m, true
}

// DiscardEmptyLines consumes leading blank lines (lines containing only
// whitespace), returning the remainder starting at the first non-blank
// line, or at EOF.
func (s Span) DiscardEmptyLines() Span {
	rest := s
	for {
		trimmed := rest.DiscardWhitespace()
		if trimmed.IsEmpty() {
			return rest
		}
		if trimmed.data[0] != '\n' && trimmed.data[0] != '\r' {
			return rest
		}
		m := rest.TakeLine()
		rest = m.After
	}
}

// Discard returns the Span with the first n bytes removed.
func (s Span) Discard(n int) Span {
	if n > len(s.data) {
		n = len(s.data)
	}
	return s.SliceFrom(n)
}

// DiscardAll returns an empty Span positioned at the end of this Span's
// data.
func (s Span) DiscardAll() Span {
	return s.SliceFrom(len(s.data))
}

// TrimRemainder returns the prefix of s that precedes after, assuming after
// is a suffix of s (i.e. after was produced by slicing s). If after is not a
// suffix of s.data, s is returned unchanged.
func (s Span) TrimRemainder(after Span) Span {
	if after.offset < s.offset || after.offset > s.offset+len(s.data) {
		return s
	}
	n := after.offset - s.offset
	if n > len(s.data) {
		return s
	}
	return s.SliceTo(n)
}

// identStart reports whether r may begin an identifier: any letter, digit,
// or underscore (but not a hyphen).
func identStart(r rune) bool {
	return r == '_' || isLetterOrDigit(r)
}

func identCont(r rune) bool {
	return r == '_' || isLetterOrDigit(r)
}

func isLetterOrDigit(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r > utf8.RuneSelf
}

// TakeIdent matches an identifier: a letter, digit, or underscore, followed
// by word characters, digits, and underscores. Hyphens are not permitted
// anywhere (contrast with TakeAttrName).
func (s Span) TakeIdent() (Match, bool) {
	if s.IsEmpty() {
		return Match{}, false
	}
	r, size := utf8.DecodeRuneInString(s.data)
	if !identStart(r) {
		return Match{}, false
	}
	i := size
	for i < len(s.data) {
		r, size := utf8.DecodeRuneInString(s.data[i:])
		if !identCont(r) {
			break
		}
		i += size
	}
	return Match{Item: s.SliceTo(i), After: s.SliceFrom(i)}, true
}

func attrNameStart(r rune) bool {
	return r == '_' || isLetterOrDigit(r)
}

func attrNameCont(r rune) bool {
	return r == '_' || r == '-' || isLetterOrDigit(r)
}

// TakeAttrName matches an attribute name: a letter, digit, or underscore,
// followed by word characters, digits, underscores, and hyphens (unlike
// TakeIdent, which permits no hyphens).
func (s Span) TakeAttrName() (Match, bool) {
	if s.IsEmpty() {
		return Match{}, false
	}
	r, size := utf8.DecodeRuneInString(s.data)
	if !attrNameStart(r) {
		return Match{}, false
	}
	i := size
	for i < len(s.data) {
		r, size := utf8.DecodeRuneInString(s.data[i:])
		if !attrNameCont(r) {
			break
		}
		i += size
	}
	return Match{Item: s.SliceTo(i), After: s.SliceFrom(i)}, true
}

// TakeQuotedString matches a span enclosed in a matching pair of single or
// double quotes, honoring backslash-escaped quotes of the same kind. The
// returned Match's Item is the *interior* of the quotes (the quotes
// themselves are not included). Fails if the Span does not begin with a
// quote character, or if the quoted string is unterminated.
func (s Span) TakeQuotedString() (Match, bool) {
	if s.IsEmpty() {
		return Match{}, false
	}
	quote := s.data[0]
	if quote != '\'' && quote != '"' {
		return Match{}, false
	}

	i := 1
	for i < len(s.data) {
		c := s.data[i]
		if c == '\\' && i+1 < len(s.data) && s.data[i+1] == quote {
			i += 2
			continue
		}
		if c == quote {
			interior := s.Slice(1, i)
			after := s.SliceFrom(i + 1)
			return Match{Item: interior, After: after}, true
		}
		i++
	}
	return Match{}, false
}

// spanJSON is the wire representation of a Span: its text plus its
// position in the original source, for tools that dump a parse tree.
type spanJSON struct {
	Text   string `json:"text"`
	Line   int    `json:"line"`
	Col    int    `json:"col"`
	Offset int    `json:"offset"`
}

// MarshalJSON encodes a Span as its text and starting position, since
// its fields are otherwise unexported.
func (s Span) MarshalJSON() ([]byte, error) {
	return json.Marshal(spanJSON{Text: s.data, Line: s.line, Col: s.col, Offset: s.offset})
}
