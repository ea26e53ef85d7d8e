package pathresolver_test

import (
	"testing"

	"github.com/jlrickert/adoc/pkg/pathresolver"
	"github.com/stretchr/testify/require"
)

func TestPosixify(t *testing.T) {
	t.Parallel()
	r := pathresolver.PathResolver{FileSeparator: `\`}
	require.Equal(t, "a/b/c", r.Posixify(`a\b\c`))

	def := pathresolver.New()
	require.Equal(t, "a/b", def.Posixify("a/b"))
}

func TestIsWebRoot(t *testing.T) {
	t.Parallel()
	r := pathresolver.New()
	require.True(t, r.IsWebRoot("/foo/bar"))
	require.False(t, r.IsWebRoot("//example.com/foo"))
	require.False(t, r.IsWebRoot("foo/bar"))
}

func TestExtractURIPrefix(t *testing.T) {
	t.Parallel()
	r := pathresolver.New()

	prefix, rest, ok := r.ExtractURIPrefix("https://example.com/page")
	require.True(t, ok)
	require.Equal(t, "https://", prefix)
	require.Equal(t, "example.com/page", rest)

	prefix, rest, ok = r.ExtractURIPrefix("mailto:me@example.com")
	require.True(t, ok)
	require.Equal(t, "mailto:", prefix)
	require.Equal(t, "me@example.com", rest)

	_, rest, ok = r.ExtractURIPrefix("relative/path.adoc")
	require.False(t, ok)
	require.Equal(t, "relative/path.adoc", rest)
}

func TestWebPath_URITargetUnfolded(t *testing.T) {
	t.Parallel()
	r := pathresolver.New()
	require.Equal(t, "https://example.com/a%20b", r.WebPath("https://example.com/a b", "docs/index.adoc"))
}

func TestWebPath_RelativeFoldedAgainstStart(t *testing.T) {
	t.Parallel()
	r := pathresolver.New()
	require.Equal(t, "docs/images/foo.png", r.WebPath("images/foo.png", "docs/index.adoc"))
}

func TestWebPath_DotDotFoldsUpOneLevel(t *testing.T) {
	t.Parallel()
	r := pathresolver.New()
	require.Equal(t, "docs/images/foo.png", r.WebPath("../images/foo.png", "docs/chapters/index.adoc"))
}

func TestWebPath_WebRootTargetIgnoresStart(t *testing.T) {
	t.Parallel()
	r := pathresolver.New()
	require.Equal(t, "/assets/logo.png", r.WebPath("/assets/logo.png", "docs/index.adoc"))
}

func TestWebPath_SpacesEncoded(t *testing.T) {
	t.Parallel()
	r := pathresolver.New()
	require.Equal(t, "docs/my%20file.png", r.WebPath("my file.png", "docs/index.adoc"))
}

func TestWebPath_NoStartUsesTargetAlone(t *testing.T) {
	t.Parallel()
	r := pathresolver.New()
	require.Equal(t, "foo/bar.png", r.WebPath("foo/bar.png", ""))
}

func TestWebPath_BackslashSeparatorNormalized(t *testing.T) {
	t.Parallel()
	r := pathresolver.PathResolver{FileSeparator: `\`}
	require.Equal(t, "docs/images/foo.png", r.WebPath(`images\foo.png`, `docs\index.adoc`))
}
