package document

// ModificationContext restricts when and how a document attribute may be
// set, mirroring Asciidoctor's distinction between attributes that are
// fixed by the API, attributes that may only be set in the document
// header, and ordinary attributes that can be set anywhere in the body.
type ModificationContext int

const (
	// Anywhere attributes can be set by a header entry or a body
	// attribute entry at any point in the document.
	Anywhere ModificationContext = iota

	// ApiOrHeader attributes can only be set via the parser's API
	// (WithIntrinsicAttribute) or a header attribute entry; once the
	// header ends, further attempts to set them from the body are
	// rejected.
	ApiOrHeader

	// ApiOnly attributes can only be set via the parser's API; no
	// in-document attribute entry, header or body, can change them.
	ApiOnly
)

// AttributeTable holds the current value of every document attribute,
// along with the modification rules governing attributes that are not
// ordinary Anywhere attributes. It implements content.AttributeResolver.
type AttributeTable struct {
	values       map[string]string
	contexts     map[string]ModificationContext
	headerClosed bool
}

// NewAttributeTable returns an empty AttributeTable.
func NewAttributeTable() *AttributeTable {
	return &AttributeTable{values: map[string]string{}, contexts: map[string]ModificationContext{}}
}

// Attribute resolves name's current value. Implements
// content.AttributeResolver.
func (t *AttributeTable) Attribute(name string) (string, bool) {
	v, ok := t.values[name]
	return v, ok
}

// SetIntrinsic sets name unconditionally and fixes its modification
// context going forward; used by the parser's WithIntrinsicAttribute
// builder to seed attribute defaults before parsing begins.
func (t *AttributeTable) SetIntrinsic(name, value string, ctx ModificationContext) {
	t.values[name] = value
	t.contexts[name] = ctx
}

func (t *AttributeTable) contextOf(name string) ModificationContext {
	if ctx, ok := t.contexts[name]; ok {
		return ctx
	}
	return Anywhere
}

// SetFromHeader sets name from a header attribute entry. Returns false,
// leaving the table unchanged, if name's context is ApiOnly.
func (t *AttributeTable) SetFromHeader(name, value string) bool {
	if t.contextOf(name) == ApiOnly {
		return false
	}
	t.values[name] = value
	return true
}

// CloseHeader marks the end of header parsing; subsequent SetFromBody
// calls against ApiOrHeader attributes will fail.
func (t *AttributeTable) CloseHeader() { t.headerClosed = true }

// SetFromBody sets name from a body attribute entry. Returns false,
// leaving the table unchanged, if name's context forbids it in the
// current phase.
func (t *AttributeTable) SetFromBody(name, value string) bool {
	ctx := t.contextOf(name)
	if ctx == ApiOnly {
		return false
	}
	if ctx == ApiOrHeader && t.headerClosed {
		return false
	}
	t.values[name] = value
	return true
}

// Unset removes name, subject to the same modification rules as
// SetFromBody.
func (t *AttributeTable) Unset(name string) bool {
	ctx := t.contextOf(name)
	if ctx == ApiOnly {
		return false
	}
	if ctx == ApiOrHeader && t.headerClosed {
		return false
	}
	delete(t.values, name)
	return true
}
