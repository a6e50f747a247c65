package feed

import (
	"time"
)

type Kind int

// Steam partner event types.
const (
	KindUpdate Kind = 12
	KindNews   Kind = 13
)

func (k Kind) String() string {
	switch k {
	case KindNews:
		return "news"
	case KindUpdate:
		return "updates"
	default:
		return "unknown"
	}
}

func (k Kind) Valid() bool {
	return k == KindNews || k == KindUpdate
}

// Record is one upstream entry before rendering. Records reaching NewItem
// are complete; incomplete ones are dropped by the fetch collaborator.
type Record struct {
	GUID       string
	Kind       Kind
	UpdateTime int64 // unix seconds
	Headline   string
	Body       string
	URL        string
}

type Renderer interface {
	Render(src string) string
}

type Item struct {
	GUID        string
	Kind        Kind
	PublishedAt time.Time // UTC
	Headline    string
	RawBody     string
	URL         string

	renderedBody string
}

// NewItem renders the record body; the rendered HTML is never set any other way.
func NewItem(rec Record, r Renderer) Item {
	return Item{
		GUID:         rec.GUID,
		Kind:         rec.Kind,
		PublishedAt:  time.Unix(rec.UpdateTime, 0).UTC(),
		Headline:     rec.Headline,
		RawBody:      rec.Body,
		URL:          rec.URL,
		renderedBody: r.Render(rec.Body),
	}
}

func (i Item) RenderedBody() string {
	return i.renderedBody
}

// Metadata holds the channel-level fields of one feed file.
type Metadata struct {
	ID           string // canonical feed URL, written as the channel link
	Title        string
	Description  string
	Link         string // self link
	Language     string // language code, e.g. "en"
	LanguageName string // Steam language name used in update links, e.g. "english"
}

// Fingerprint summarizes the newest entry of a persisted feed.
type Fingerprint struct {
	GUID    string
	PubDate string // as serialized in the file
}

type Language struct {
	Name string `yaml:"lang"`
	Code string `yaml:"code"`
}
