package document

import (
	"regexp"
	"strings"
)

// Author is one parsed entry of a document's author line.
type Author struct {
	FirstName  string
	MiddleName string
	LastName   string
	Email      string
}

// FullName joins the name components with single spaces.
func (a Author) FullName() string {
	parts := make([]string, 0, 3)
	if a.FirstName != "" {
		parts = append(parts, a.FirstName)
	}
	if a.MiddleName != "" {
		parts = append(parts, a.MiddleName)
	}
	if a.LastName != "" {
		parts = append(parts, a.LastName)
	}
	return strings.Join(parts, " ")
}

// Initials returns the first letter of each non-empty name component, in
// firstname/middlename/lastname order.
func (a Author) Initials() string {
	var b strings.Builder
	for _, p := range []string{a.FirstName, a.MiddleName, a.LastName} {
		if p != "" {
			b.WriteRune([]rune(p)[0])
		}
	}
	return b.String()
}

var (
	singleAttributeReferenceRe = regexp.MustCompile(`^\{([A-Za-z0-9_][A-Za-z0-9_-]*)\}$`)
	authorEmailRe              = regexp.MustCompile(`<([^<>\s]+)>\s*$`)
)

// ParseAuthorLine splits an author line's value on semicolons (Asciidoctor
// supports multiple authors separated by ";") and parses each author.
// resolve is used to expand the single-attribute-reference special case:
// when an individual author's entire value is just `{attr}`, the
// attribute is expanded and the result is used as a literal full name,
// without running the firstname/middlename/lastname split on it.
func ParseAuthorLine(value string, resolve func(string) (string, bool)) []Author {
	var authors []Author
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		authors = append(authors, parseAuthor(part, resolve))
	}
	return authors
}

func parseAuthor(value string, resolve func(string) (string, bool)) Author {
	if m := singleAttributeReferenceRe.FindStringSubmatch(value); m != nil {
		if expanded, ok := resolve(m[1]); ok {
			return Author{FirstName: strings.TrimSpace(expanded)}
		}
	}

	var email string
	if loc := authorEmailRe.FindStringSubmatchIndex(value); loc != nil {
		email = value[loc[2]:loc[3]]
		value = strings.TrimSpace(value[:loc[0]])
	}

	tokens := strings.Fields(strings.ReplaceAll(value, "_", " "))
	switch len(tokens) {
	case 0:
		return Author{Email: email}
	case 1:
		return Author{FirstName: tokens[0], Email: email}
	case 2:
		return Author{FirstName: tokens[0], LastName: tokens[1], Email: email}
	case 3:
		return Author{
			FirstName:  tokens[0],
			MiddleName: tokens[1],
			LastName:   tokens[2],
			Email:      email,
		}
	default:
		// More than three name tokens doesn't fit the
		// firstname/middlename/lastname grammar; keep the whole
		// string as the first name.
		return Author{FirstName: value, Email: email}
	}
}
