package feed

import (
	"log/slog"
	"time"
)

// PubDateLayout is RFC 1123 with a numeric zone, which is RFC 2822 compatible.
const PubDateLayout = time.RFC1123Z

func FormatPubDate(t time.Time) string {
	return t.UTC().Format(PubDateLayout)
}

// ShouldSkip reports whether the persisted feed already starts with newest.
// Identity alone is not enough: an upstream correction may move the
// timestamp of an already published item, so the serialized pubDate has to
// match as well.
func ShouldSkip(fp *Fingerprint, newest Item) bool {
	if fp == nil {
		return false
	}

	if fp.GUID != newest.GUID {
		slog.Debug("Newest item changed", "persisted_guid", fp.GUID, "fetched_guid", newest.GUID)
		return false
	}

	if pubDate := FormatPubDate(newest.PublishedAt); fp.PubDate != pubDate {
		slog.Debug("Newest item republished", "guid", newest.GUID, "persisted_pub_date", fp.PubDate, "fetched_pub_date", pubDate)
		return false
	}

	return true
}
