package feed

import (
	"testing"
	"time"
)

func TestNewItemRendersBody(t *testing.T) {
	item := NewItem(Record{
		GUID:       "42",
		Kind:       KindNews,
		UpdateTime: newerTime,
		Headline:   "Headline",
		Body:       " raw ",
		URL:        NewsEntryURL + "42",
	}, paragraphRenderer{})

	if item.RenderedBody() != "<p>raw</p>" {
		t.Errorf("Expected rendered body '<p>raw</p>', got '%s'", item.RenderedBody())
	}
	if item.RawBody != " raw " {
		t.Errorf("Expected raw body to be kept, got '%s'", item.RawBody)
	}

	want := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	if !item.PublishedAt.Equal(want) {
		t.Errorf("Expected published at %v, got %v", want, item.PublishedAt)
	}
	if item.PublishedAt.Location() != time.UTC {
		t.Errorf("Expected UTC location, got %v", item.PublishedAt.Location())
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind  Kind
		want  string
		valid bool
	}{
		{KindNews, "news", true},
		{KindUpdate, "updates", true},
		{Kind(0), "unknown", false},
		{Kind(28), "unknown", false},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %s, want %s", int(tt.kind), got, tt.want)
		}
		if got := tt.kind.Valid(); got != tt.valid {
			t.Errorf("Kind(%d).Valid() = %v, want %v", int(tt.kind), got, tt.valid)
		}
	}
}
