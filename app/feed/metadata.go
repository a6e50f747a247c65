package feed

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	SiteURL            = "https://www.counter-strike.net"
	NewsEntryURL       = SiteURL + "/newsentry/"
	UpdatesURL         = SiteURL + "/news/updates"
	DefaultFeedBaseURL = "https://raw.githubusercontent.com/IceQ1337/CS-RSS-Feed/master/feeds/"

	gameTitle = "Counter-Strike 2"
)

var titleCaser = cases.Title(language.English)

// NewMetadata describes the feed file of one kind and language. baseURL is
// where the published files can be fetched from.
func NewMetadata(kind Kind, lang Language, baseURL string) Metadata {
	if baseURL == "" {
		baseURL = DefaultFeedBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	self := baseURL + fmt.Sprintf("%s-feed-%s.xml", kind, lang.Code)
	kindTitle := titleCaser.String(kind.String())

	return Metadata{
		ID:           self,
		Title:        fmt.Sprintf("%s - %s (%s)", gameTitle, kindTitle, titleCaser.String(lang.Name)),
		Description:  fmt.Sprintf("%s %s Feed", gameTitle, kindTitle),
		Link:         self,
		Language:     lang.Code,
		LanguageName: lang.Name,
	}
}
