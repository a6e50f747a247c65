package markup

import (
	"cmp"
	"fmt"
	"regexp"
	"strings"
)

var colorPattern = regexp.MustCompile(`^#?[a-zA-Z0-9]+$`)

var containerFlags = Flags{LiteralNewlines: true, NoAutoLink: true, NoCosmetic: true}

// DefaultRules returns the baseline formatting tags followed by the tags
// used in Steam announcements.
func DefaultRules() []Rule {
	rules := []Rule{
		simple("b", "<strong>{value}</strong>"),
		simple("i", "<em>{value}</em>"),
		simple("u", "<u>{value}</u>"),
		simple("s", "<s>{value}</s>"),
		simple("strike", "<s>{value}</s>"),
		simple("sub", "<sub>{value}</sub>"),
		simple("sup", "<sup>{value}</sup>"),
		simple("center", `<div style="text-align:center;">{value}</div>`),
		{Name: "hr", Kind: Standalone, Template: "<hr />", Flags: Flags{SwallowTrailingNewline: true}},
		{Name: "br", Kind: Standalone, Template: "<br />"},
		{
			Name: "quote", Kind: Functional, Func: renderQuote,
			Flags: Flags{StripWhitespace: true, SwallowTrailingNewline: true},
		},
		{
			Name: "code", Kind: Simple, Template: "<code>{value}</code>",
			Flags: Flags{RawContent: true, LiteralNewlines: true, NoAutoLink: true, NoCosmetic: true, SwallowTrailingNewline: true},
		},
		{Name: "color", Kind: Functional, Func: renderColor},
		{
			Name: "url", Kind: Functional, Func: renderURL,
			Flags: Flags{NoAutoLink: true, NoCosmetic: true},
		},
		{
			Name: "list", Kind: Functional, Func: renderList,
			Flags: Flags{StripWhitespace: true, LiteralNewlines: true, SwallowTrailingNewline: true},
		},
		{
			Name: "*", Kind: Simple, Template: "<li>{value}</li>",
			Flags: Flags{NewlineCloses: true, SameTagCloses: true, StripWhitespace: true, LiteralNewlines: true},
		},

		simple("p", "<p>{value}</p>"),
		{
			Name: "img", Kind: Functional, Func: renderImage,
			Flags: Flags{RawContent: true, StripWhitespace: true, NoAutoLink: true, NoCosmetic: true},
		},
		simple("spoiler", "<details><summary>Spoiler</summary>{value}</details>"),
		{
			Name: "olist", Kind: Simple, Template: "<ol>{value}</ol>",
			Flags: Flags{LiteralNewlines: true, SwallowTrailingNewline: true},
		},
		{
			Name: "carousel", Kind: Functional, Func: func(inner string, _ Options) string { return inner },
			Flags: Flags{StripWhitespace: true},
		},
		{Name: "video", Kind: Standalone, Func: renderVideo},
	}

	for level := 1; level <= 6; level++ {
		name := fmt.Sprintf("h%d", level)
		rules = append(rules, simple(name, "<"+name+">{value}</"+name+">"))
	}

	for _, name := range []string{"table", "thead", "tbody", "tfoot", "tr"} {
		rules = append(rules, Rule{Name: name, Kind: Simple, Template: "<" + name + ">{value}</" + name + ">", Flags: containerFlags})
	}
	for _, name := range []string{"th", "td"} {
		rules = append(rules, simple(name, "<"+name+">{value}</"+name+">"))
	}

	return rules
}

func simple(name, template string) Rule {
	return Rule{Name: name, Kind: Simple, Template: template}
}

func attr(s string) string {
	return attrEscaper.Replace(s)
}

func renderImage(inner string, opts Options) string {
	src := cmp.Or(strings.TrimSpace(inner), strings.TrimSpace(opts.Get("src")))
	if src == "" {
		return ""
	}
	return `<img src="` + attr(src) + `" />`
}

// renderVideo emits one source per format, mp4 first. Without any source
// there is nothing to play and the tag renders to nothing.
func renderVideo(_ string, opts Options) string {
	var sources []string
	if mp4 := opts.Get("mp4"); mp4 != "" {
		sources = append(sources, `<source src="`+attr(mp4)+`" type="video/mp4">`)
	}
	if webm := opts.Get("webm"); webm != "" {
		sources = append(sources, `<source src="`+attr(webm)+`" type="video/webm">`)
	}
	if len(sources) == 0 {
		return ""
	}

	return `<video controls poster="` + attr(opts.Get("poster")) + `">` + "\n" +
		strings.Join(sources, "\n") + "\n</video>"
}

func renderURL(inner string, opts Options) string {
	href := cmp.Or(strings.TrimSpace(opts.Get("url")), strings.TrimSpace(inner))
	if href == "" {
		return inner
	}

	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "data:") {
		return inner
	}
	if !strings.Contains(href, "://") && !strings.HasPrefix(href, "/") &&
		!strings.HasPrefix(href, "#") && !strings.HasPrefix(lower, "mailto:") {
		href = "http://" + href
	}

	text := inner
	if text == "" {
		text = href
	}
	return `<a rel="nofollow" href="` + attr(href) + `">` + text + `</a>`
}

func renderQuote(inner string, opts Options) string {
	if author := strings.TrimSpace(opts.Get("quote")); author != "" {
		return "<blockquote><cite>" + attr(author) + "</cite>" + inner + "</blockquote>"
	}
	return "<blockquote>" + inner + "</blockquote>"
}

func renderColor(inner string, opts Options) string {
	color := strings.TrimSpace(opts.Get("color"))
	if !colorPattern.MatchString(color) {
		return inner
	}
	return `<span style="color:` + color + `;">` + inner + `</span>`
}

func renderList(inner string, opts Options) string {
	switch opts.Get("list") {
	case "1", "a", "A", "i", "I":
		return `<ol type="` + opts.Get("list") + `">` + inner + `</ol>`
	default:
		return "<ul>" + inner + "</ul>"
	}
}
