package api

import (
	"context"
	"sync"

	"github.com/iceq1337/cs-rss-feed/app/database"
	"github.com/iceq1337/cs-rss-feed/app/tasks"
)

// RefreshFunc runs one refresh pass over all configured languages.
type RefreshFunc func(ctx context.Context) (tasks.Summary, error)

type Handler struct {
	feedsDir string
	runRepo  database.RunRepository // nil when history is disabled
	refresh  RefreshFunc            // nil when refresh over HTTP is disabled
	version  string

	refreshMu sync.Mutex
}
