package markup

import (
	"testing"
)

func TestRegistryResolveIsCaseInsensitive(t *testing.T) {
	reg := NewRegistry(Rule{Name: "Spoiler", Kind: Simple, Template: "<x>{value}</x>"})

	for _, name := range []string{"spoiler", "SPOILER", "SpOiLeR"} {
		rule, ok := reg.Resolve(name)
		if !ok {
			t.Fatalf("Expected %q to resolve", name)
		}
		if rule.Name != "spoiler" {
			t.Errorf("Expected normalized name 'spoiler', got '%s'", rule.Name)
		}
	}

	if _, ok := reg.Resolve("missing"); ok {
		t.Error("Expected unknown tag not to resolve")
	}
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	reg := NewRegistry(
		Rule{Name: "p", Kind: Simple, Template: "<p>{value}</p>"},
		Rule{Name: "P", Kind: Simple, Template: "<p class=\"x\">{value}</p>"},
	)

	if reg.Len() != 1 {
		t.Fatalf("Expected 1 rule, got %d", reg.Len())
	}

	rule, _ := reg.Resolve("p")
	if got := rule.Render("a", nil); got != `<p class="x">a</p>` {
		t.Errorf("Expected last registration to win, got %q", got)
	}
}

func TestRendererIgnoresLaterRegistrations(t *testing.T) {
	reg := NewRegistry(DefaultRules()...)
	r := New(reg)

	reg.Register(Rule{Name: "b", Kind: Simple, Template: "<b>{value}</b>"})

	if got := r.Render("[b]x[/b]"); got != "<strong>x</strong>" {
		t.Errorf("Expected renderer to keep its own rule set, got %q", got)
	}
}

func TestRuleRenderKinds(t *testing.T) {
	tests := []struct {
		name     string
		rule     Rule
		inner    string
		opts     Options
		expected string
	}{
		{
			name:     "simple template",
			rule:     Rule{Kind: Simple, Template: "<em>{value}</em>"},
			inner:    "hi",
			expected: "<em>hi</em>",
		},
		{
			name: "functional uses options",
			rule: Rule{Kind: Functional, Func: func(inner string, opts Options) string {
				return opts.Get("x") + inner
			}},
			inner:    "b",
			opts:     Options{"x": "a"},
			expected: "ab",
		},
		{
			name:     "functional without func passes inner through",
			rule:     Rule{Kind: Functional},
			inner:    "inner",
			expected: "inner",
		},
		{
			name:     "standalone template ignores inner",
			rule:     Rule{Kind: Standalone, Template: "<hr />"},
			inner:    "ignored",
			expected: "<hr />",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Render(tt.inner, tt.opts); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		body     string
		name     string
		expected Options
	}{
		{"b", "b", nil},
		{"URL=https://example.com", "url", Options{"url": "https://example.com"}},
		{`url="https://example.com" style="button"`, "url", Options{"url": "https://example.com", "style": "button"}},
		{`video mp4="a.mp4" webm='a.webm' poster=p.jpg`, "video", Options{"mp4": "a.mp4", "webm": "a.webm", "poster": "p.jpg"}},
		{"quote=Gabe Newell", "quote", Options{"quote": "Gabe Newell"}},
		{"video autoplay", "video", Options{"autoplay": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			name, opts := parseOptions(tt.body)
			if name != tt.name {
				t.Errorf("Expected name %q, got %q", tt.name, name)
			}
			if len(opts) != len(tt.expected) {
				t.Fatalf("Expected %d options, got %v", len(tt.expected), opts)
			}
			for k, v := range tt.expected {
				if opts[k] != v {
					t.Errorf("Expected option %s=%q, got %q", k, v, opts[k])
				}
			}
		})
	}
}
