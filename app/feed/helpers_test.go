package feed

import (
	"strings"
)

type paragraphRenderer struct{}

func (paragraphRenderer) Render(src string) string {
	return "<p>" + strings.TrimSpace(src) + "</p>"
}

const (
	// Tue, 14 Nov 2023 22:13:20 +0000
	newerTime int64 = 1700000000
	// Sun, 13 Sep 2020 12:26:40 +0000
	olderTime int64 = 1600000000
)

func newsItem(guid string, updateTime int64, headline string) Item {
	return NewItem(Record{
		GUID:       guid,
		Kind:       KindNews,
		UpdateTime: updateTime,
		Headline:   headline,
		Body:       headline + " body",
		URL:        NewsEntryURL + guid,
	}, paragraphRenderer{})
}

func updateItem(guid string, updateTime int64, headline string) Item {
	return NewItem(Record{
		GUID:       guid,
		Kind:       KindUpdate,
		UpdateTime: updateTime,
		Headline:   headline,
		Body:       headline + " body",
		URL:        UpdatesURL,
	}, paragraphRenderer{})
}

var englishLanguage = Language{Name: "english", Code: "en"}
