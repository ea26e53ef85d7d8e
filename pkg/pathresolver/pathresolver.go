// Package pathresolver resolves link and image targets the way
// Asciidoctor's PathResolver does: normalizing path separators and
// folding "." and ".." segments, while treating web (URI) targets
// specially so a URI prefix and query/fragment suffix are never
// mangled by filesystem-style folding.
package pathresolver

import (
	"regexp"
	"strings"
)

// uriSniffRe recognizes a URI scheme prefix (e.g. "https://", "mailto:").
var uriSniffRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9.+-]*:/{0,2}`)

// PathResolver resolves relative and absolute paths for link/image
// targets. FileSeparator is the separator written into resolved
// filesystem paths (defaults to "/" if unset).
type PathResolver struct {
	FileSeparator string
}

func New() PathResolver {
	return PathResolver{FileSeparator: "/"}
}

func (r PathResolver) separator() string {
	if r.FileSeparator == "" {
		return "/"
	}
	return r.FileSeparator
}

// Posixify converts a path to use forward slashes, regardless of the
// resolver's configured FileSeparator.
func (r PathResolver) Posixify(p string) string {
	if r.FileSeparator == "/" || r.FileSeparator == "" {
		return p
	}
	return strings.ReplaceAll(p, r.FileSeparator, "/")
}

// IsWebRoot reports whether p begins with "/" but not "//" (a
// server-relative root path, as opposed to a protocol-relative URL).
func (r PathResolver) IsWebRoot(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//")
}

// ExtractURIPrefix returns the leading URI scheme (and any protocol
// slashes) of p, and the remainder, if p looks like a URI. If p is not a
// URI, ok is false and remainder equals p.
func (r PathResolver) ExtractURIPrefix(p string) (prefix, remainder string, ok bool) {
	loc := uriSniffRe.FindStringIndex(p)
	if loc == nil {
		return "", p, false
	}
	return p[:loc[1]], p[loc[1]:], true
}

// WebPath resolves target relative to start the way a web browser
// resolves a relative hyperlink: URI-prefixed targets are returned
// unchanged apart from space-encoding; filesystem-style targets have "."
// and ".." segments folded against start, and spaces percent-encoded.
func (r PathResolver) WebPath(target, start string) string {
	if prefix, rest, ok := r.ExtractURIPrefix(target); ok {
		return prefix + encodeSpaces(rest)
	}

	posixTarget := r.Posixify(target)
	webRoot := r.IsWebRoot(posixTarget)

	var base []string
	if !webRoot && start != "" {
		if _, rest, ok := r.ExtractURIPrefix(r.Posixify(start)); ok {
			base = partitionPath(rest)
		} else {
			base = partitionPath(r.Posixify(start))
			if len(base) > 0 {
				base = base[:len(base)-1]
			}
		}
	}

	segments := append(base, partitionPath(posixTarget)...)
	resolved := foldSegments(segments)

	joined := joinPath(resolved)
	if webRoot {
		joined = "/" + joined
	}
	return encodeSpaces(joined)
}

func partitionPath(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// foldSegments resolves "." and ".." segments against the segments that
// precede them, the way a filesystem path normalizer would.
func foldSegments(segments []string) []string {
	var out []string
	for _, seg := range segments {
		switch seg {
		case ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	return out
}

func joinPath(segments []string) string {
	return strings.Join(segments, "/")
}

func encodeSpaces(p string) string {
	return strings.ReplaceAll(p, " ", "%20")
}
