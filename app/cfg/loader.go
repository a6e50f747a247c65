package cfg

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Output configuration
	FeedsDir      string `long:"feeds-dir" env:"FEEDS_DIR" description:"Directory the feed files are written to (defaults to $GITHUB_WORKSPACE/feeds or ./feeds)"`
	LanguagesFile string `long:"languages" env:"LANGUAGES_FILE" description:"YAML file listing the languages to build feeds for"`
	FeedBaseURL   string `long:"feed-base-url" env:"FEED_BASE_URL" default:"https://raw.githubusercontent.com/IceQ1337/CS-RSS-Feed/master/feeds/" description:"Public URL the feed files are published under"`
	Sanitize      bool   `long:"sanitize" env:"SANITIZE" description:"Sanitize rendered HTML before writing feeds"`

	// Steam configuration
	APIURL    string `long:"api-url" env:"STEAM_API_URL" default:"https://store.steampowered.com/events/ajaxgetpartnereventspageable/" description:"Steam partner events endpoint"`
	AppID     int    `long:"app-id" env:"STEAM_APP_ID" default:"730" description:"Steam app id"`
	Origin    string `long:"origin" env:"STEAM_ORIGIN" default:"https://www.counter-strike.net" description:"Origin sent with partner event requests"`
	Count     int    `long:"count" env:"STEAM_COUNT" default:"100" description:"Number of events fetched per language"`
	Timeout   int    `long:"timeout" env:"HTTP_TIMEOUT" default:"30" description:"HTTP timeout in seconds"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"CS-RSS-Feed/1.0" description:"User agent string for HTTP requests"`

	// History configuration
	HistoryDB string `long:"history-db" env:"HISTORY_DB" description:"SQLite file recording refresh runs (disabled when empty)"`

	// Serve mode
	Serve        bool   `long:"serve" env:"SERVE" description:"Serve the feed directory over HTTP instead of refreshing"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key enabling POST /api/refresh (optional)"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs parses args and the environment. It returns nil, nil when help
// was requested.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedsDir:      resolveFeedsDir(raw.FeedsDir),
		LanguagesFile: raw.LanguagesFile,
		FeedBaseURL:   raw.FeedBaseURL,
		Sanitize:      raw.Sanitize,
		APIURL:        raw.APIURL,
		AppID:         raw.AppID,
		Origin:        raw.Origin,
		Count:         raw.Count,
		Timeout:       time.Duration(raw.Timeout) * time.Second,
		UserAgent:     raw.UserAgent,
		HistoryDB:     raw.HistoryDB,
		Serve:         raw.Serve,
		Port:          raw.Port,
		APIAccessKey:  raw.APIAccessKey,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func resolveFeedsDir(dir string) string {
	if dir != "" {
		return dir
	}
	if workspace := os.Getenv("GITHUB_WORKSPACE"); workspace != "" {
		return filepath.Join(workspace, "feeds")
	}
	return "feeds"
}

func validate(cfg *Cfg) error {
	if cfg.APIURL == "" {
		return fmt.Errorf("api url is required")
	}
	if cfg.AppID <= 0 {
		return fmt.Errorf("app id must be positive")
	}
	if cfg.Count <= 0 || cfg.Count > 100 {
		return fmt.Errorf("count must be between 1 and 100")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
