package cfg

import "time"

type Cfg struct {
	// Output
	FeedsDir      string
	LanguagesFile string
	FeedBaseURL   string
	Sanitize      bool

	// Steam partner events API
	APIURL    string
	AppID     int
	Origin    string
	Count     int
	Timeout   time.Duration
	UserAgent string

	// Run history
	HistoryDB string

	// Serve mode
	Serve        bool
	Port         string
	APIAccessKey string

	Debug   bool
	Version string
}
