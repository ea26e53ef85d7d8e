package document

import "strings"

// RevisionLine is the parsed form of the document header's third line:
// "version, date: remark", any part of which may be omitted.
type RevisionLine struct {
	Version string
	Date    string
	Remark  string
}

// ParseRevisionLine parses a raw revision line value. Supported shapes:
//
//	v1.0, 2021-01-01: Initial release
//	v1.0: Initial release
//	2021-01-01
//	v1.0
func ParseRevisionLine(value string) RevisionLine {
	value = strings.TrimSpace(value)

	var remark string
	if idx := strings.Index(value, ":"); idx >= 0 {
		remark = strings.TrimSpace(value[idx+1:])
		value = strings.TrimSpace(value[:idx])
	}

	var version, date string
	if idx := strings.Index(value, ","); idx >= 0 {
		version = trimToFirstDigit(strings.TrimSpace(value[:idx]))
		date = strings.TrimSpace(value[idx+1:])
	} else if looksLikeVersion(value) {
		version = trimVersionPrefix(value)
	} else {
		date = value
	}

	return RevisionLine{Version: version, Date: date, Remark: remark}
}

func looksLikeVersion(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == 'v' || s[0] == 'V' {
		return true
	}
	return false
}

func trimVersionPrefix(s string) string {
	if s == "" {
		return s
	}
	if s[0] == 'v' || s[0] == 'V' {
		return s[1:]
	}
	return s
}

// trimToFirstDigit strips any non-digit prefix from a version component.
// Used only when a comma follows the version, where the whole prefix
// (e.g. "Revision " or "v") is decoration rather than content.
func trimToFirstDigit(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return s[i:]
		}
	}
	return s
}
