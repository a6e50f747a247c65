package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iceq1337/cs-rss-feed/app/database"
	"github.com/iceq1337/cs-rss-feed/app/feed"
)

var _ TaskInterface = (*RefreshFeedTask)(nil)

// RefreshFeedTask rewrites one feed file when its newest item changed.
type RefreshFeedTask struct {
	Task
	Language feed.Language
	Kind     feed.Kind
	Items    []feed.Item // newest first by PublishedAt
	Status   database.RunStatus

	feedsDir    string
	feedBaseURL string
	parser      *feed.Parser
	generator   *feed.Generator
	runRepo     database.RunRepository
}

func NewRefreshFeedTask(lang feed.Language, kind feed.Kind, items []feed.Item, feedsDir, feedBaseURL string,
	parser *feed.Parser, generator *feed.Generator, runRepo database.RunRepository) *RefreshFeedTask {
	return &RefreshFeedTask{
		Task:        NewTask(TaskTypeRefreshFeed, FeedName(kind, lang.Code)),
		Language:    lang,
		Kind:        kind,
		Items:       feed.SortNewestFirst(items),
		feedsDir:    feedsDir,
		feedBaseURL: feedBaseURL,
		parser:      parser,
		generator:   generator,
		runRepo:     runRepo,
	}
}

func FeedName(kind feed.Kind, code string) string {
	return fmt.Sprintf("%s-feed-%s", kind, code)
}

func (t *RefreshFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	t.Start()

	if len(t.Items) == 0 {
		slog.Info("No items to process", "feed", t.FeedName)
		t.finish(database.RunStatusEmpty, nil)
		return nil
	}

	path := feed.FeedPath(t.feedsDir, t.Kind, t.Language.Code)
	newest := t.Items[0]

	if feed.ShouldSkip(t.parser.ReadFingerprint(path), newest) {
		slog.Info("Feed is up to date", "feed", t.FeedName, "guid", newest.GUID)
		t.finish(database.RunStatusSkipped, nil)
		return nil
	}

	meta := feed.NewMetadata(t.Kind, t.Language, t.feedBaseURL)

	data, err := t.generator.Run(meta, t.Items)
	if err != nil {
		err = fmt.Errorf("failed to generate feed: %w", err)
		t.finish(database.RunStatusFailed, err)
		return err
	}

	if err := feed.WriteFile(path, data); err != nil {
		err = fmt.Errorf("failed to write feed: %w", err)
		t.finish(database.RunStatusFailed, err)
		return err
	}

	slog.Info("Task completed",
		"type", "RefreshFeed",
		"feed", t.FeedName,
		"duration", t.GetDuration(),
		"items", len(t.Items),
		"newest", newest.GUID,
		"path", path)

	t.finish(database.RunStatusWritten, nil)
	return nil
}

func (t *RefreshFeedTask) finish(status database.RunStatus, runErr error) {
	t.Status = status

	if t.runRepo == nil {
		return
	}

	run := database.Run{
		TaskID:    t.ID,
		FeedName:  t.FeedName,
		Language:  t.Language.Code,
		Kind:      t.Kind.String(),
		Status:    status,
		ItemCount: len(t.Items),
		Duration:  t.GetDuration(),
	}
	if t.StartedAt != nil {
		run.StartedAt = *t.StartedAt
	}
	if len(t.Items) > 0 {
		run.NewestGUID = t.Items[0].GUID
		run.PubDate = feed.FormatPubDate(t.Items[0].PublishedAt)
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	if err := t.runRepo.RecordRun(run); err != nil {
		slog.Warn("Failed to record run", "feed", t.FeedName, "error", err)
	}
}
