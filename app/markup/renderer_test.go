package markup

import (
	"strings"
	"testing"
)

func TestRenderTags(t *testing.T) {
	r := NewDefault()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bold", "[b]x[/b]", "<strong>x</strong>"},
		{"uppercase tag names", "[B]x[/B]", "<strong>x</strong>"},
		{"italic and underline", "[i]a[/i][u]b[/u]", "<em>a</em><u>b</u>"},
		{"paragraph", "[p]Hello world[/p]", "<p>Hello world</p>"},
		{"heading 1", "[h1]Title[/h1]", "<h1>Title</h1>"},
		{"heading 6", "[h6]Small[/h6]", "<h6>Small</h6>"},
		{"strikethrough", "[s]old[/s]", "<s>old</s>"},
		{"strike alias", "[strike]old[/strike]", "<s>old</s>"},
		{"image", "[img]https://cdn.example.com/a.png[/img]", `<img src="https://cdn.example.com/a.png" />`},
		{"image from src option", `[img src="https://cdn.example.com/b.png"][/img]`, `<img src="https://cdn.example.com/b.png" />`},
		{"empty image", "[img][/img]", ""},
		{"spoiler", "[spoiler]secret[/spoiler]", "<details><summary>Spoiler</summary>secret</details>"},
		{"url with option", "[url=https://example.com]Site[/url]", `<a rel="nofollow" href="https://example.com">Site</a>`},
		{"url with quoted option", `[url="https://example.com" style="button"]Site[/url]`, `<a rel="nofollow" href="https://example.com">Site</a>`},
		{"url from content", "[url]https://example.com[/url]", `<a rel="nofollow" href="https://example.com">https://example.com</a>`},
		{"url rejects javascript", "[url=javascript:alert(1)]x[/url]", "x"},
		{"color", "[color=#ff0000]red[/color]", `<span style="color:#ff0000;">red</span>`},
		{"invalid color", `[color=red;background:x]red[/color]`, "red"},
		{"quote with author", "[quote=Gabe]Hi[/quote]\nnext", "<blockquote><cite>Gabe</cite>Hi</blockquote>next"},
		{"code keeps markup", "[code][b]x[/b] https://a.com[/code]", "<code>[b]x[/b] https://a.com</code>"},
		{"horizontal rule swallows newline", "a\n[hr]\nb", "a<br />\n<hr />b"},
		{"list", "[list]\n[*]one\n[*]two\n[/list]\nafter", "<ul><li>one</li>\n<li>two</li></ul>after"},
		{"numbered list", "[list=1][*]one[/list]", `<ol type="1"><li>one</li></ol>`},
		{"olist with images", "[olist][*][img]a.png[/img][/olist]", `<ol><li><img src="a.png" /></li></ol>`},
		{
			"carousel is transparent",
			"[carousel]\n[img]a.png[/img]\n[img]b.png[/img]\n[/carousel]",
			`<img src="a.png" /><br />` + "\n" + `<img src="b.png" />`,
		},
		{"newlines", "a\nb", "a<br />\nb"},
		{"carriage returns", "a\r\nb\rc", "a<br />\nb<br />\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Render(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderVideo(t *testing.T) {
	r := NewDefault()

	html := r.Render(`[video mp4="a.mp4" webm="a.webm"]`)

	if !strings.HasPrefix(html, `<video controls poster="">`) {
		t.Errorf("Expected video element with empty poster, got %q", html)
	}
	if count := strings.Count(html, "<source"); count != 2 {
		t.Fatalf("Expected 2 source elements, got %d in %q", count, html)
	}
	mp4 := strings.Index(html, `<source src="a.mp4" type="video/mp4">`)
	webm := strings.Index(html, `<source src="a.webm" type="video/webm">`)
	if mp4 < 0 || webm < 0 || mp4 > webm {
		t.Errorf("Expected mp4 source before webm source, got %q", html)
	}
	if !strings.HasSuffix(html, "</video>") {
		t.Errorf("Expected closing video tag, got %q", html)
	}
}

func TestRenderVideoVariants(t *testing.T) {
	r := NewDefault()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no options", "[video]", ""},
		{"poster only", `[video poster="p.jpg"]`, ""},
		{
			"webm with poster",
			`[video webm="a.webm" poster="p.jpg"]`,
			"<video controls poster=\"p.jpg\">\n<source src=\"a.webm\" type=\"video/webm\">\n</video>",
		},
		{
			"closing tag is dropped",
			`[video mp4="a.mp4"][/video]`,
			"<video controls poster=\"\">\n<source src=\"a.mp4\" type=\"video/mp4\">\n</video>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Render(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderOlistSwallowsOneTrailingNewline(t *testing.T) {
	r := NewDefault()

	got := r.Render("[olist][*]a\n[*]b[/olist]\n")
	expected := "<ol><li>a</li>\n<li>b</li></ol>"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	got = r.Render("[olist][*]a[/olist]\n\nnext")
	expected = "<ol><li>a</li></ol><br />\nnext"
	if got != expected {
		t.Errorf("Expected only one newline to be swallowed, got %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	r := NewDefault()

	input := "[table]\n[tr]\n[th]Map[/th]\n[td]https://a.com -- x[/td]\n[/tr]\n[/table]"
	expected := "<table>\n<tr>\n<th>Map</th>\n" +
		`<td><a rel="nofollow" href="https://a.com">https://a.com</a> &ndash; x</td>` +
		"\n</tr>\n</table>"

	if got := r.Render(input); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestRenderTableContainersSkipProseTransforms(t *testing.T) {
	r := NewDefault()

	for _, name := range []string{"table", "thead", "tbody", "tfoot", "tr"} {
		input := "[" + name + "]https://a.com -- x\ny[/" + name + "]"
		expected := "<" + name + ">https://a.com -- x\ny</" + name + ">"
		if got := r.Render(input); got != expected {
			t.Errorf("%s: expected %q, got %q", name, expected, got)
		}
	}
}

func TestRenderEscapedBrackets(t *testing.T) {
	r := NewDefault()

	tests := []struct {
		input    string
		expected string
	}{
		{`\[tag\]`, "[tag]"},
		{`\[b\]not bold\[/b\]`, "[b]not bold[/b]"},
		{`[b]\[1\][/b]`, "<strong>[1]</strong>"},
	}

	for _, tt := range tests {
		if got := r.Render(tt.input); got != tt.expected {
			t.Errorf("Render(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestRenderMalformedMarkup(t *testing.T) {
	r := NewDefault()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"unknown tag", "[foo]bar[/foo]", "[foo]bar[/foo]"},
		{"unknown tag with options", `[previewyoutube=abc;full][/previewyoutube]`, `[previewyoutube=abc;full][/previewyoutube]`},
		{"stray closing tag", "[/b]x", "[/b]x"},
		{"unclosed tag", "[b]x", "[b]x"},
		{"mismatched nesting", "[b][i]x[/b]", "<strong>[i]x</strong>"},
		{"unterminated bracket", "a [b b", "a [b b"},
		{"bracket across newline", "[b\n]", "[b<br />\n]"},
		{"empty brackets", "[]", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Render(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderTextTransforms(t *testing.T) {
	r := NewDefault()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"cosmetic", "wait... -- ok --- (c) (tm)", "wait&#8230; &ndash; ok &mdash; &copy; &trade;"},
		{"bare link", "see https://example.com/path.", `see <a rel="nofollow" href="https://example.com/path">https://example.com/path</a>.`},
		{"www link", "www.example.com", `<a rel="nofollow" href="http://www.example.com">www.example.com</a>`},
		{"image url is not linked", "[img]https://a.com/x--y.png[/img]", `<img src="https://a.com/x--y.png" />`},
		{"html attributes untouched", `<a href="https://a.com/--">https://a.com</a>`, `<a href="https://a.com/--">https://a.com</a>`},
		{"html comments untouched", "<!-- a -- b -->", "<!-- a -- b -->"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Render(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderIsIdempotentOnRenderedHTML(t *testing.T) {
	r := NewDefault()

	inputs := []string{
		"[b]Bold[/b] [url=https://x.com]X[/url] visit https://a.com/b -- now...",
		"[img]https://c.com/i.png[/img] [spoiler]s[/spoiler] [h2]T[/h2]",
		"[olist][*][img]a.png[/img][/olist]",
		"[table][tr][td]www.example.com[/td][/tr][/table]",
		"[p][s]gone[/s] (c)[/p]",
		"[olist][*]a\n[*]b[/olist]\n",
		"[list]\n[*]one https://a.com\n[*]two\n[/list]\nafter",
		`[video mp4="v.mp4" webm="v.webm" poster="https://c.com/p.jpg"][/video]`,
		"[table]\n[tr]\n[th]Map[/th]\n[td]https://a.com -- x[/td]\n[/tr]\n[/table]",
		"[carousel]\n[img]a.png[/img]\n[img]b.png[/img]\n[/carousel]\nline one\nline two",
		"[h1]Title[/h1]\n\n[p]text[/p]\n[hr]\nend",
	}

	for _, input := range inputs {
		once := r.Render(input)
		twice := r.Render(once)
		if once != twice {
			t.Errorf("Re-rendering changed output for %q:\nonce:  %q\ntwice: %q", input, once, twice)
		}
	}
}

func TestRenderKeepsMultilineHTML(t *testing.T) {
	r := NewDefault()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tag spanning lines", "<img\nsrc=\"http://x.com/a.png\">", "<img\nsrc=\"http://x.com/a.png\">"},
		{"anchor spanning lines", "<a href=\"https://a.com\">see\nhttps://a.com</a>", "<a href=\"https://a.com\">see<br />\nhttps://a.com</a>"},
		{"newline between tags", "<li>a</li>\n<li>b</li>", "<li>a</li>\n<li>b</li>"},
		{"newline after text", "a\n<b>b</b>", "a<br />\n<b>b</b>"},
		{"rendered line break", "a<br />\nb", "a<br />\nb"},
		{"less-than in prose", "1 < 2\nx<y", "1 < 2<br />\nx<y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Render(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := NewDefault()
	input := "[h1]Release Notes[/h1]\n[list]\n[*]Fixed https://example.com\n[*]Maps -- [b]new[/b]\n[/list]\n" +
		`[video mp4="v.mp4" webm="v.webm" poster="p.jpg"]`

	first := r.Render(input)
	for i := 0; i < 5; i++ {
		if got := r.Render(input); got != first {
			t.Fatalf("Expected identical output on run %d", i)
		}
	}
}
