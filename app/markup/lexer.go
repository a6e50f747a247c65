package markup

import (
	"strings"
)

type tokenKind int

const (
	tokenData tokenKind = iota
	tokenNewline
	tokenOpen
	tokenClose
)

type token struct {
	kind tokenKind
	name string
	opts Options
	text string // source text, used when the token is emitted literally
	html bool   // data token holding exactly one HTML tag or comment
}

// lex splits normalized markup into data, newline and tag tokens. Only tags
// known to the renderer become tag tokens; everything else stays data.
// Backslash-escaped brackets are always data. HTML tags already present in
// the source become single data tokens, even when they span lines.
func (r *Renderer) lex(src string) []token {
	var toks []token
	var data strings.Builder

	flush := func() {
		if data.Len() > 0 {
			toks = append(toks, token{kind: tokenData, text: data.String()})
			data.Reset()
		}
	}

	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == '\\' && i+1 < len(src) && (src[i+1] == '[' || src[i+1] == ']'):
			data.WriteByte(src[i+1])
			i += 2

		case c == '\n':
			flush()
			toks = append(toks, token{kind: tokenNewline, text: "\n"})
			i++

		case c == '<':
			if end := htmlTagEnd(src, i); end > 0 {
				flush()
				toks = append(toks, token{kind: tokenData, text: src[i:end], html: true})
				i = end
				continue
			}
			data.WriteByte(c)
			i++

		case c == '[':
			if end, ok := tagExtent(src, i); ok {
				if tok, ok := r.parseTag(src[i:end]); ok {
					flush()
					toks = append(toks, tok)
					i = end
					continue
				}
			}
			data.WriteByte(c)
			i++

		default:
			data.WriteByte(c)
			i++
		}
	}
	flush()

	return toks
}

// tagExtent returns the index just past the ']' closing the tag opened at
// start. A newline or another '[' outside of a quoted value means the
// bracket does not open a tag.
func tagExtent(src string, start int) (int, bool) {
	quotable := false
	var quote byte

	for j := start + 1; j < len(src); j++ {
		ch := src[j]
		if ch == '\n' {
			return 0, false
		}

		if quote != 0 {
			if ch == quote {
				quote = 0
				quotable = false
			}
			continue
		}

		switch ch {
		case '=':
			quotable = true
		case '"', '\'':
			if quotable {
				quote = ch
			}
		case '[':
			return 0, false
		case ']':
			return j + 1, true
		}
	}

	return 0, false
}

// htmlTagEnd returns the index just past the HTML tag or comment opened at
// start, or -1. A '<' before the closing '>' means start opens no tag.
func htmlTagEnd(src string, start int) int {
	rest := src[start:]

	if strings.HasPrefix(rest, "<!--") {
		if j := strings.Index(rest[4:], "-->"); j >= 0 {
			return start + 4 + j + 3
		}
		return -1
	}

	if len(rest) < 3 {
		return -1
	}
	c := rest[1]
	if c == '/' || c == '!' {
		c = rest[2]
	}
	if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
		return -1
	}

	j := strings.IndexAny(rest[1:], "<>")
	if j < 0 || rest[1+j] != '>' {
		return -1
	}
	return start + 1 + j + 1
}

func (r *Renderer) parseTag(raw string) (token, bool) {
	body := strings.TrimSpace(raw[1 : len(raw)-1])
	if body == "" {
		return token{}, false
	}

	if strings.HasPrefix(body, "/") {
		name := strings.ToLower(strings.TrimSpace(body[1:]))
		if _, ok := r.rules[name]; !ok {
			return token{}, false
		}
		return token{kind: tokenClose, name: name, text: raw}, true
	}

	name, opts := parseOptions(body)
	if _, ok := r.rules[name]; !ok {
		return token{}, false
	}

	return token{kind: tokenOpen, name: name, opts: opts, text: raw}, true
}

// parseOptions handles [name], [name=value] and [name key=value key2="v 2"].
// An unquoted value may contain spaces when no further '=' follows it.
func parseOptions(body string) (string, Options) {
	idx := strings.IndexAny(body, " \t=")
	if idx < 0 {
		return strings.ToLower(body), nil
	}

	name := strings.ToLower(body[:idx])
	opts := Options{}
	rest := body[idx:]

	if rest[0] == '=' {
		var value string
		value, rest = readValue(rest[1:])
		opts[name] = value
	}

	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			break
		}

		end := strings.IndexAny(rest, " \t=")
		if end < 0 {
			opts[strings.ToLower(rest)] = ""
			break
		}

		key := strings.ToLower(rest[:end])
		rest = rest[end:]
		if rest[0] != '=' {
			opts[key] = ""
			continue
		}

		var value string
		value, rest = readValue(rest[1:])
		opts[key] = value
	}

	return name, opts
}

func readValue(s string) (string, string) {
	if s == "" {
		return "", ""
	}

	if q := s[0]; q == '"' || q == '\'' {
		var value strings.Builder
		for i := 1; i < len(s); i++ {
			switch {
			case s[i] == '\\' && i+1 < len(s) && (s[i+1] == q || s[i+1] == '\\'):
				value.WriteByte(s[i+1])
				i++
			case s[i] == q:
				return strings.TrimSpace(value.String()), s[i+1:]
			default:
				value.WriteByte(s[i])
			}
		}
		return strings.TrimSpace(value.String()), ""
	}

	end := strings.IndexAny(s, " \t")
	if end < 0 {
		return s, ""
	}
	if !strings.Contains(s[end:], "=") {
		return strings.TrimSpace(s), ""
	}

	return s[:end], s[end:]
}
