package content

import (
	"path"
	"regexp"
	"strings"

	"github.com/jlrickert/adoc/pkg/attrlist"
	"github.com/jlrickert/adoc/pkg/render"
	"github.com/jlrickert/adoc/pkg/span"
)

// inlineImageMacroRe matches `image:target[attrs]` and `icon:target[attrs]`,
// with an optional leading backslash escape and an optional target.
var inlineImageMacroRe = regexp.MustCompile(
	`\\?i(?:mage|con):([^:\s\[\n][^\[\n]*?[^\s\[\n])?\[((?:|.*?[^\\]))\]`,
)

// inlineLinkMacroRe matches `link:target[text]` and `mailto:target[text]`,
// with an optional leading backslash escape. Group 1 is non-empty only for
// mailto; group 3 is the target (group 2 marks an empty target); group 5
// is the link text (group 4 marks an empty label).
var inlineLinkMacroRe = regexp.MustCompile(
	`\\?(?:link|(mailto)):(?:()|([^:\s\[][^\s\[]*))\[(?:()|(.*?[^\\]))\]`,
)

// applyMacros recognizes the inline image, icon, link, and mailto macros
// and replaces them with the Renderer's output for each.
func (c Content) applyMacros(ctx *Context) Content {
	result := c

	text := result.Rendered
	if strings.Contains(text, "[") && (strings.Contains(text, "image:") || strings.Contains(text, "icon:")) {
		result = result.applyImageMacros(ctx)
	}

	text = result.Rendered
	if strings.Contains(text, "[") && (strings.Contains(text, "link:") || strings.Contains(text, "mailto:")) {
		result = result.applyLinkMacros(ctx)
	}

	return result
}

func (c Content) applyImageMacros(ctx *Context) Content {
	renderer := rendererOf(ctx)
	locs := inlineImageMacroRe.FindAllStringSubmatchIndex(c.Rendered, -1)
	if locs == nil {
		return c
	}

	return c.applyRegexLTR(StepMacros, locs, func(groups []string) (string, bool) {
		whole := groups[0]
		if strings.HasPrefix(whole, "\\") {
			return whole[1:], true
		}

		target := groups[1]
		attrSource := span.New(groups[2])
		attrs := attrlist.Parse(attrSource)

		defaultAlt := basenameWithoutExt(strings.NewReplacer("_", " ", "-", " ").Replace(target))

		var buf strings.Builder
		if strings.HasPrefix(whole, "image:") {
			alt := defaultAlt
			if a, ok := attrs.NamedOrPositionalAttribute("alt", 1); ok {
				alt = normalizeAltText(a.Value())
			}
			var width, height string
			if w, ok := attrs.NamedOrPositionalAttribute("width", 2); ok {
				width = w.Value()
			}
			if h, ok := attrs.NamedOrPositionalAttribute("height", 3); ok {
				height = h.Value()
			}
			renderer.RenderImage(render.ImageRenderParams{
				Target: target, Alt: alt, Width: width, Height: height, Attrlist: attrs,
			}, &buf)
		} else {
			alt := defaultAlt
			if a, ok := attrs.NamedAttribute("alt"); ok {
				alt = normalizeAltText(a.Value())
			}
			var size string
			if s, ok := attrs.NamedOrPositionalAttribute("size", 1); ok {
				size = s.Value()
			}
			renderer.RenderIcon(render.IconRenderParams{
				Target: target, Alt: alt, Size: size, Attrlist: attrs,
			}, &buf)
		}
		return buf.String(), true
	})
}

func (c Content) applyLinkMacros(ctx *Context) Content {
	renderer := rendererOf(ctx)
	locs := inlineLinkMacroRe.FindAllStringSubmatchIndex(c.Rendered, -1)
	if locs == nil {
		return c
	}

	return c.applyRegexLTR(StepMacros, locs, func(groups []string) (string, bool) {
		whole := groups[0]
		if strings.HasPrefix(whole, "\\") {
			return whole[1:], true
		}

		isMailto := groups[1] != ""
		rawTarget := groups[3]

		var target string
		linkType := render.LinkPlain
		if isMailto {
			target = "mailto:" + rawTarget
			linkType = render.LinkMailto
		} else {
			target = rawTarget
		}

		linkText := groups[5]

		var attrs attrlist.Attrlist
		var id string
		newWindow := false
		if linkText != "" {
			linkText = strings.ReplaceAll(linkText, `\]`, "]")
			if strings.HasSuffix(linkText, "^") {
				newWindow = true
				linkText = strings.TrimSuffix(linkText, "^")
			}
			if !isMailto && strings.Contains(linkText, "=") {
				attrs = attrlist.Parse(span.New(linkText))
				if idAttr, ok := attrs.NamedAttribute("id"); ok {
					id = idAttr.Value()
				}
			}
		}
		if linkText == "" {
			if isMailto {
				linkText = rawTarget
			} else {
				linkText = target
			}
		}

		roles := attrs.Roles()
		if linkText == target && !isMailto {
			hasBare := false
			for _, r := range roles {
				if r == "bare" {
					hasBare = true
				}
			}
			if !hasBare {
				roles = append([]string{"bare"}, roles...)
			}
		}

		var buf strings.Builder
		renderer.RenderLink(render.LinkRenderParams{
			Target: target, Text: linkText, ID: id, Roles: roles, Type: linkType,
			NewWindow: newWindow, Attrlist: attrs,
		}, &buf)
		return buf.String(), true
	})
}

func basenameWithoutExt(p string) string {
	base := path.Base(p)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

func normalizeAltText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, `\]`, "]")
	return s
}
