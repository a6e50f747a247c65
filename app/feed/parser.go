package feed

import (
	"log/slog"
	"os"
	"strings"

	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// ReadFingerprint returns the newest entry of the feed file at path, or nil
// when the file is missing, unparsable or empty. All three mean the feed
// has to be written again.
func (p *Parser) ReadFingerprint(path string) *Fingerprint {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to open feed file", "path", path, "error", err)
		}
		return nil
	}
	defer f.Close()

	parsed, err := p.gofeedParser.Parse(f)
	if err != nil {
		slog.Warn("Failed to parse feed file", "path", path, "error", err)
		return nil
	}

	newest := p.newestItem(parsed.Items)
	if newest == nil {
		return nil
	}

	return &Fingerprint{
		GUID:    strings.TrimSpace(newest.GUID),
		PubDate: strings.TrimSpace(newest.Published),
	}
}

// newestItem picks the entry with the latest pubDate; a later position in
// the document wins ties. Without any parseable date the last entry is used.
func (p *Parser) newestItem(items []*gofeed.Item) *gofeed.Item {
	var newest *gofeed.Item
	var last *gofeed.Item

	for _, item := range items {
		if item == nil {
			continue
		}
		last = item

		if item.PublishedParsed == nil {
			continue
		}
		if newest == nil || !item.PublishedParsed.Before(*newest.PublishedParsed) {
			newest = item
		}
	}

	if newest == nil {
		return last
	}
	return newest
}

func ReadFingerprint(path string) *Fingerprint {
	return NewParser().ReadFingerprint(path)
}
