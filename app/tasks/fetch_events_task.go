package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iceq1337/cs-rss-feed/app/feed"
	"github.com/iceq1337/cs-rss-feed/app/steam"
)

var _ TaskInterface = (*FetchEventsTask)(nil)

// FetchEventsTask loads the events of one language and renders them into
// feed items, newest first.
type FetchEventsTask struct {
	Task
	Language feed.Language
	Items    []feed.Item
	client   EventsFetcher
	renderer feed.Renderer
}

func NewFetchEventsTask(lang feed.Language, client EventsFetcher, renderer feed.Renderer) *FetchEventsTask {
	return &FetchEventsTask{
		Task:     NewTask(TaskTypeFetchEvents, lang.Code),
		Language: lang,
		client:   client,
		renderer: renderer,
	}
}

func (t *FetchEventsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	t.Start()

	resp, err := t.client.FetchEvents(ctx, t.Language.Name)
	if err != nil {
		return fmt.Errorf("failed to fetch events for %s: %w", t.Language.Name, err)
	}

	records := steam.Records(resp.Events)

	t.Items = make([]feed.Item, 0, len(records))
	for _, rec := range records {
		t.Items = append(t.Items, feed.NewItem(rec, t.renderer))
	}

	slog.Info("Task completed",
		"type", "FetchEvents",
		"language", t.Language.Name,
		"duration", t.GetDuration(),
		"events", len(resp.Events),
		"items", len(t.Items))

	return nil
}
