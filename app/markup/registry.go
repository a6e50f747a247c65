package markup

import (
	"strings"
)

type Kind int

const (
	// Simple rules substitute the rendered inner content into Template.
	Simple Kind = iota
	// Functional rules compute their output from the inner content and tag options.
	Functional
	// Standalone rules take no inner content and have no closing tag.
	Standalone
)

func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Functional:
		return "functional"
	case Standalone:
		return "standalone"
	default:
		return "unknown"
	}
}

type Flags struct {
	StripWhitespace        bool // trim whitespace and newlines at the edges of the inner content
	LiteralNewlines        bool // newlines inside stay "\n" instead of becoming <br />
	NoAutoLink             bool
	NoCosmetic             bool
	SwallowTrailingNewline bool // drop one newline right after the closing tag

	NewlineCloses bool // a newline ends the tag, e.g. [*]
	SameTagCloses bool // an opening tag of the same name ends the tag
	RawContent    bool // inner tokens are not interpreted as tags
}

// Options holds tag attributes. [url=x] stores x under the tag name.
type Options map[string]string

func (o Options) Get(key string) string {
	if o == nil {
		return ""
	}
	return o[key]
}

type RenderFunc func(inner string, opts Options) string

type Rule struct {
	Name     string
	Kind     Kind
	Template string // Simple only, "{value}" is replaced with the inner content
	Func     RenderFunc
	Flags    Flags
}

func (r Rule) Render(inner string, opts Options) string {
	switch r.Kind {
	case Simple:
		return strings.ReplaceAll(r.Template, "{value}", inner)
	case Standalone:
		if r.Func == nil {
			return r.Template
		}
		return r.Func("", opts)
	default:
		if r.Func == nil {
			return inner
		}
		return r.Func(inner, opts)
	}
}

// Registry maps lower-cased tag names to rules.
type Registry struct {
	rules map[string]Rule
}

func NewRegistry(rules ...Rule) *Registry {
	reg := &Registry{rules: make(map[string]Rule, len(rules))}
	for _, rule := range rules {
		reg.Register(rule)
	}
	return reg
}

func (reg *Registry) Register(rule Rule) {
	rule.Name = strings.ToLower(rule.Name)
	reg.rules[rule.Name] = rule
}

func (reg *Registry) Resolve(name string) (Rule, bool) {
	rule, ok := reg.rules[strings.ToLower(name)]
	return rule, ok
}

func (reg *Registry) Len() int {
	return len(reg.rules)
}

func (reg *Registry) snapshot() map[string]Rule {
	rules := make(map[string]Rule, len(reg.rules))
	for name, rule := range reg.rules {
		rules[name] = rule
	}
	return rules
}
