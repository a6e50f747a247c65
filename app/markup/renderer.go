package markup

import (
	"regexp"
	"strings"
	"unicode"
)

const lineBreak = "<br />\n"

var (
	urlPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>"'\[\]]*[^\s<>"'\[\].,;:!?)]`)

	cosmeticReplacer = strings.NewReplacer(
		"---", "&mdash;",
		"--", "&ndash;",
		"...", "&#8230;",
		"(c)", "&copy;",
		"(reg)", "&reg;",
		"(tm)", "&trade;",
	)

	attrEscaper = strings.NewReplacer(`"`, "&quot;", "<", "&lt;", ">", "&gt;")

	newlineNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// Renderer converts bracket markup to HTML. It is immutable and safe for
// concurrent use once constructed.
type Renderer struct {
	rules map[string]Rule
}

// New builds a renderer from a copy of the registry; later registrations
// do not affect it.
func New(reg *Registry) *Renderer {
	return &Renderer{rules: reg.snapshot()}
}

func NewDefault() *Renderer {
	return New(NewRegistry(DefaultRules()...))
}

// Render never fails: unknown, unbalanced or stray tags are emitted as text.
func (r *Renderer) Render(src string) string {
	toks := r.lex(newlineNormalizer.Replace(src))

	var sb strings.Builder
	r.render(&sb, toks, nil, &renderState{})
	return sb.String()
}

type renderState struct {
	anchors int
}

func (r *Renderer) render(sb *strings.Builder, toks []token, parent *Rule, st *renderState) {
	for i := 0; i < len(toks); i++ {
		tok := toks[i]

		switch tok.kind {
		case tokenData:
			if tok.html {
				st.track(tok.text)
				sb.WriteString(tok.text)
				continue
			}
			sb.WriteString(transform(tok.text, parent, st))

		case tokenNewline:
			switch {
			case parent != nil && parent.Flags.LiteralNewlines:
				sb.WriteString("\n")
			case i > 0 && isLineBreak(toks[i-1]), i > 0 && i+1 < len(toks) && toks[i-1].html && toks[i+1].html:
				// layout of already rendered HTML
				sb.WriteString("\n")
			default:
				sb.WriteString(lineBreak)
			}

		case tokenClose:
			// closing tags of standalone rules carry no meaning
			if rule := r.rules[tok.name]; rule.Kind == Standalone {
				continue
			}
			sb.WriteString(transform(tok.text, parent, st))

		case tokenOpen:
			rule := r.rules[tok.name]

			if rule.Kind == Standalone {
				sb.WriteString(rule.Render("", tok.opts))
				if rule.Flags.SwallowTrailingNewline && i+1 < len(toks) && toks[i+1].kind == tokenNewline {
					i++
				}
				continue
			}

			end, consume, ok := r.closing(rule, toks, i+1)
			if !ok {
				sb.WriteString(transform(tok.text, parent, st))
				continue
			}

			inner := toks[i+1 : end]
			var content string
			if rule.Flags.RawContent {
				content = rawText(inner)
				if rule.Flags.StripWhitespace {
					content = strings.TrimSpace(content)
				}
			} else {
				if rule.Flags.StripWhitespace {
					inner = trimTokens(inner)
				}
				var nested strings.Builder
				r.render(&nested, inner, &rule, st)
				content = nested.String()
			}
			sb.WriteString(rule.Render(content, tok.opts))

			next := end
			if consume {
				next++
			}
			if rule.Flags.SwallowTrailingNewline && next < len(toks) && toks[next].kind == tokenNewline {
				next++
			}
			i = next - 1
		}
	}
}

func isLineBreak(tok token) bool {
	if !tok.html || len(tok.text) < 4 {
		return false
	}
	if !strings.EqualFold(tok.text[:3], "<br") {
		return false
	}
	switch tok.text[3] {
	case '>', '/', ' ', '\t', '\n':
		return true
	}
	return false
}

// closing finds the token that ends rule, starting at pos. consume reports
// whether that token belongs to the tag (an explicit closing tag) or must be
// processed again by the caller (a newline or a sibling opener).
func (r *Renderer) closing(rule Rule, toks []token, pos int) (end int, consume bool, ok bool) {
	depth := 0
	blocks := 0

	for j := pos; j < len(toks); j++ {
		tok := toks[j]

		switch tok.kind {
		case tokenNewline:
			if rule.Flags.NewlineCloses && blocks == 0 {
				return j, false, true
			}

		case tokenOpen:
			if tok.name == rule.Name {
				if rule.Flags.SameTagCloses {
					return j, false, true
				}
				depth++
				continue
			}
			if inner := r.rules[tok.name]; rule.Flags.NewlineCloses && inner.Kind != Standalone && inner.Flags.LiteralNewlines {
				blocks++
			}

		case tokenClose:
			if tok.name == rule.Name {
				if depth == 0 {
					return j, true, true
				}
				depth--
				continue
			}
			if inner := r.rules[tok.name]; rule.Flags.NewlineCloses && inner.Flags.LiteralNewlines && blocks > 0 {
				blocks--
			}
		}
	}

	if rule.Flags.NewlineCloses || rule.Flags.SameTagCloses {
		return len(toks), false, true
	}

	return 0, false, false
}

func rawText(toks []token) string {
	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(tok.text)
	}
	return sb.String()
}

func trimTokens(toks []token) []token {
	out := append([]token(nil), toks...)

	for len(out) > 0 {
		first := out[0]
		if first.kind == tokenNewline {
			out = out[1:]
			continue
		}
		if first.kind == tokenData {
			first.text = strings.TrimLeftFunc(first.text, unicode.IsSpace)
			if first.text == "" {
				out = out[1:]
				continue
			}
			out[0] = first
		}
		break
	}

	for len(out) > 0 {
		last := out[len(out)-1]
		if last.kind == tokenNewline {
			out = out[:len(out)-1]
			continue
		}
		if last.kind == tokenData {
			last.text = strings.TrimRightFunc(last.text, unicode.IsSpace)
			if last.text == "" {
				out = out[:len(out)-1]
				continue
			}
			out[len(out)-1] = last
		}
		break
	}

	return out
}

// transform applies auto-linking and cosmetic substitutions to plain text.
func transform(text string, parent *Rule, st *renderState) string {
	links := (parent == nil || !parent.Flags.NoAutoLink) && st.anchors == 0
	cosmetic := parent == nil || !parent.Flags.NoCosmetic
	if !links && !cosmetic {
		return text
	}

	return prose(text, links, cosmetic)
}

// track follows anchor nesting through the HTML tags of the source, so text
// inside an existing anchor is never linked again.
func (st *renderState) track(tag string) {
	lower := strings.ToLower(tag)
	switch {
	case strings.HasPrefix(lower, "<a ") || strings.HasPrefix(lower, "<a\n") || lower == "<a>":
		st.anchors++
	case strings.HasPrefix(lower, "</a") && st.anchors > 0:
		st.anchors--
	}
}

func prose(text string, links, cosmetic bool) string {
	substitute := func(s string) string {
		if cosmetic {
			return cosmeticReplacer.Replace(s)
		}
		return s
	}

	if !links {
		return substitute(text)
	}

	matches := urlPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return substitute(text)
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(substitute(text[last:m[0]]))
		sb.WriteString(linkHTML(text[m[0]:m[1]]))
		last = m[1]
	}
	sb.WriteString(substitute(text[last:]))

	return sb.String()
}

func linkHTML(url string) string {
	href := url
	if strings.HasPrefix(strings.ToLower(url), "www.") {
		href = "http://" + url
	}
	return `<a rel="nofollow" href="` + attrEscaper.Replace(href) + `">` + url + `</a>`
}
