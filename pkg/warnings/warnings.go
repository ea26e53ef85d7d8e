// Package warnings defines the non-fatal diagnostics the parser collects
// while turning source text into a Document. A Warning never stops
// parsing: it is recorded and parsing proceeds using the parser's best
// recovery strategy for that situation.
package warnings

import "github.com/jlrickert/adoc/pkg/span"

// Type identifies the kind of condition a Warning reports.
type Type int

const (
	// UnterminatedDelimitedBlock is reported when a delimited block (raw or
	// compound) is opened but never closed before the end of the document
	// or its enclosing block.
	UnterminatedDelimitedBlock Type = iota

	// SectionTitleLevelSkipped is reported when a nested section's title
	// level jumps by more than one past the most recently opened section
	// (e.g. a level-1 section immediately followed by a level-3 section).
	SectionTitleLevelSkipped

	// DocumentTitleLevelInvalid is reported when a `=` (level 0) title
	// appears somewhere other than the very beginning of the document.
	DocumentTitleLevelInvalid

	// EmptyAttributeValue is reported when an attribute entry or
	// element-attribute has a name but no value where one was expected.
	EmptyAttributeValue

	// DuplicateID is reported when a block or section ID collides with
	// one already registered in the document's catalog; the parser
	// generates a disambiguated ID and continues.
	DuplicateID

	// UnresolvedAttributeReference is reported when an `{attribute}`
	// reference does not resolve to a known document or intrinsic
	// attribute during the AttributeReferences substitution step.
	UnresolvedAttributeReference

	// InvalidMacroTarget is reported when an inline macro's target cannot
	// be parsed (e.g. a malformed attrlist).
	InvalidMacroTarget

	// SectionTitleLevelExceedsMaximum is reported when a section title
	// uses more marker characters than the deepest supported nesting
	// level allows.
	SectionTitleLevelExceedsMaximum

	// MissingBlockAfterTitleOrAttributeList is reported when a block
	// title or attribute line is not followed by any block before the
	// end of its enclosing context; the metadata lines are reparsed as
	// ordinary content.
	MissingBlockAfterTitleOrAttributeList

	// AttributeValueMissingTerminatingQuote is reported when an attribute
	// value opens with a quote that is never closed; the entry is
	// dropped.
	AttributeValueMissingTerminatingQuote

	// MissingCommaAfterQuotedAttributeValue is reported when extra
	// characters follow a quoted attribute value before the next comma.
	MissingCommaAfterQuotedAttributeValue

	// EmptyShorthandItem is reported when a shorthand delimiter ("#",
	// ".", "%") in a first positional attribute is not followed by any
	// text.
	EmptyShorthandItem

	// MediaMacroMissingTarget is reported when an image, audio, or video
	// block macro has an empty target; the line is reparsed as ordinary
	// content.
	MediaMacroMissingTarget

	// MacroMissingDoubleColon is reported when a line uses a block macro
	// name with a single colon where the block form requires two.
	MacroMissingDoubleColon

	// MacroMissingAttributeList is reported when a block macro line has
	// a name and target but no bracketed attribute list.
	MacroMissingAttributeList

	// InvalidMacroName is reported when macro syntax is used with a name
	// that is not a valid macro identifier.
	InvalidMacroName
)

// String returns a short, stable, human-readable name for the warning
// type, suitable for logging and test assertions.
func (t Type) String() string {
	switch t {
	case UnterminatedDelimitedBlock:
		return "unterminated_delimited_block"
	case SectionTitleLevelSkipped:
		return "section_title_level_skipped"
	case DocumentTitleLevelInvalid:
		return "document_title_level_invalid"
	case EmptyAttributeValue:
		return "empty_attribute_value"
	case DuplicateID:
		return "duplicate_id"
	case UnresolvedAttributeReference:
		return "unresolved_attribute_reference"
	case InvalidMacroTarget:
		return "invalid_macro_target"
	case SectionTitleLevelExceedsMaximum:
		return "section_title_level_exceeds_maximum"
	case MissingBlockAfterTitleOrAttributeList:
		return "missing_block_after_title_or_attribute_list"
	case AttributeValueMissingTerminatingQuote:
		return "attribute_value_missing_terminating_quote"
	case MissingCommaAfterQuotedAttributeValue:
		return "missing_comma_after_quoted_attribute_value"
	case EmptyShorthandItem:
		return "empty_shorthand_item"
	case MediaMacroMissingTarget:
		return "media_macro_missing_target"
	case MacroMissingDoubleColon:
		return "macro_missing_double_colon"
	case MacroMissingAttributeList:
		return "macro_missing_attribute_list"
	case InvalidMacroName:
		return "invalid_macro_name"
	default:
		return "unknown"
	}
}

// Warning pairs a diagnostic Type with the span of source text it
// concerns, so callers can report line/column locations to users.
type Warning struct {
	Source  span.Span
	Type    Type
	Message string
}

// New creates a Warning with an explicit human-readable message.
func New(source span.Span, typ Type, message string) Warning {
	return Warning{Source: source, Type: typ, Message: message}
}
