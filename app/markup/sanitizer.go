package markup

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips anything from rendered HTML that the default rules would
// never produce, e.g. raw <script> elements passed through from the source.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()

	p.AllowElements("video", "source", "details", "summary", "s", "u", "cite")
	p.AllowAttrs("controls").OnElements("video")
	p.AllowAttrs("poster").OnElements("video")
	p.AllowAttrs("src").OnElements("source")
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^video/(mp4|webm)$`)).OnElements("source")
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^[1aAiI]$`)).OnElements("ol")
	p.AllowStyles("color").OnElements("span")
	p.AllowStyles("text-align").OnElements("div")

	return &Sanitizer{policy: p}
}

func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

type htmlRenderer interface {
	Render(src string) string
}

// SanitizingRenderer sanitizes the output of another renderer.
type SanitizingRenderer struct {
	next      htmlRenderer
	sanitizer *Sanitizer
}

func (s *Sanitizer) Wrap(r htmlRenderer) *SanitizingRenderer {
	return &SanitizingRenderer{next: r, sanitizer: s}
}

func (sr *SanitizingRenderer) Render(src string) string {
	return sr.sanitizer.Sanitize(sr.next.Render(src))
}
