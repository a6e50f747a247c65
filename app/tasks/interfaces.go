package tasks

import (
	"context"
	"time"

	"github.com/iceq1337/cs-rss-feed/app/steam"
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	GetFeedName() string
	Start()
	GetDuration() time.Duration
}

// EventsFetcher is satisfied by *steam.Client.
type EventsFetcher interface {
	FetchEvents(ctx context.Context, language string) (*steam.EventsResponse, error)
}

var _ EventsFetcher = (*steam.Client)(nil)
