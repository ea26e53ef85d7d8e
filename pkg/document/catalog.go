// Package document models the parts of an AsciiDoc document that exist
// above the level of an individual block: the header (title, author and
// revision lines, document attribute entries), the document attribute
// table with its per-attribute modification rules, and the catalog of
// referenceable IDs built up as blocks and sections are parsed.
package document

import (
	"fmt"

	"github.com/jlrickert/adoc/internal/adocerr"
)

// RefType distinguishes the kind of element an ID in the Catalog refers
// to.
type RefType int

const (
	RefAnchor RefType = iota
	RefSection
	RefBibliography
)

// RefEntry is one registered, referenceable ID.
type RefEntry struct {
	ID      string
	Reftext string
	Type    RefType
}

// Catalog tracks every ID registered while parsing a document, and
// supports looking an ID back up by its reference text. When two entries
// share the same reftext, the first one registered wins the reverse
// lookup; later registrations still get their own forward entry.
type Catalog struct {
	refs        map[string]RefEntry
	reftextToID map[string]string
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{refs: map[string]RefEntry{}, reftextToID: map[string]string{}}
}

// RegisterRef registers id with the given reftext and type. It returns a
// *adocerr.DuplicateIDError (use adocerr.IsDuplicateID to check) if id is
// already registered; callers should fall back to
// GenerateAndRegisterUniqueID in that case.
func (c *Catalog) RegisterRef(id, reftext string, t RefType) error {
	if _, exists := c.refs[id]; exists {
		return adocerr.NewDuplicateIDError(id)
	}
	c.register(id, reftext, t)
	return nil
}

// GenerateAndRegisterUniqueID registers base under a unique ID, appending
// "-2", "-3", ... if base already exists, and returns the ID actually
// used.
func (c *Catalog) GenerateAndRegisterUniqueID(base, reftext string, t RefType) string {
	id := base
	for suffix := 2; ; suffix++ {
		if _, exists := c.refs[id]; !exists {
			break
		}
		id = fmt.Sprintf("%s-%d", base, suffix)
	}
	c.register(id, reftext, t)
	return id
}

func (c *Catalog) register(id, reftext string, t RefType) {
	c.refs[id] = RefEntry{ID: id, Reftext: reftext, Type: t}
	if reftext != "" {
		if _, exists := c.reftextToID[reftext]; !exists {
			c.reftextToID[reftext] = id
		}
	}
}

// ResolveID looks up the ID registered for the given reftext.
func (c *Catalog) ResolveID(reftext string) (string, bool) {
	id, ok := c.reftextToID[reftext]
	return id, ok
}

// Ref returns the entry registered for id, if any.
func (c *Catalog) Ref(id string) (RefEntry, bool) {
	e, ok := c.refs[id]
	return e, ok
}

// Has reports whether id is already registered.
func (c *Catalog) Has(id string) bool {
	_, ok := c.refs[id]
	return ok
}
