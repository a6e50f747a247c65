package steam

import (
	"log/slog"
	"strings"

	"github.com/iceq1337/cs-rss-feed/app/feed"
)

const (
	ClanImagePlaceholder = "{STEAM_CLAN_IMAGE}"
	ClanImageURL         = "https://clan.akamai.steamstatic.com/images"
)

// Records converts events into feed records in upstream order. Events
// missing an id, a known type, a timestamp, a headline, a body or a
// language are dropped.
func Records(events []Event) []feed.Record {
	records := make([]feed.Record, 0, len(events))

	for _, event := range events {
		rec, ok := record(event)
		if !ok {
			slog.Debug("Dropping incomplete event", "gid", event.GID, "event_type", event.EventType)
			continue
		}
		records = append(records, rec)
	}

	return records
}

func record(event Event) (feed.Record, bool) {
	body := event.AnnouncementBody
	if body == nil {
		return feed.Record{}, false
	}

	kind := feed.Kind(event.EventType)
	if event.GID == "" || !kind.Valid() || body.UpdateTime == 0 ||
		body.Headline == "" || body.Body == "" || body.Language == nil {
		return feed.Record{}, false
	}

	return feed.Record{
		GUID:       event.GID,
		Kind:       kind,
		UpdateTime: body.UpdateTime,
		Headline:   body.Headline,
		Body:       ExpandPlaceholders(body.Body),
		URL:        ItemURL(kind, event.GID),
	}, true
}

func ItemURL(kind feed.Kind, gid string) string {
	if kind == feed.KindNews {
		return feed.NewsEntryURL + gid
	}
	return feed.UpdatesURL
}

func ExpandPlaceholders(body string) string {
	return strings.ReplaceAll(body, ClanImagePlaceholder, ClanImageURL)
}
