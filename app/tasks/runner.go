package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iceq1337/cs-rss-feed/app/database"
	"github.com/iceq1337/cs-rss-feed/app/feed"
)

type RunnerOptions struct {
	FeedsDir    string
	FeedBaseURL string
	Generator   string
}

// Summary counts the outcomes of one run.
type Summary struct {
	Languages   int
	FetchFailed int
	Written     int
	Skipped     int
	Empty       int
	Failed      int
}

func (s Summary) Err() error {
	if s.FetchFailed == 0 && s.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d languages failed to fetch, %d feeds failed to write", s.FetchFailed, s.Languages, s.Failed)
}

// Runner refreshes the feeds of every language one after another. A failing
// language or feed is logged and the run continues.
type Runner struct {
	client    EventsFetcher
	renderer  feed.Renderer
	parser    *feed.Parser
	filterer  *feed.Filterer
	generator *feed.Generator
	runRepo   database.RunRepository
	opts      RunnerOptions
}

func NewRunner(client EventsFetcher, renderer feed.Renderer, runRepo database.RunRepository, opts RunnerOptions) *Runner {
	return &Runner{
		client:    client,
		renderer:  renderer,
		parser:    feed.NewParser(),
		filterer:  feed.NewFilterer(),
		generator: feed.NewGenerator(opts.Generator),
		runRepo:   runRepo,
		opts:      opts,
	}
}

func (r *Runner) Run(ctx context.Context, langs []feed.Language) (Summary, error) {
	var summary Summary

	for _, lang := range langs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.Languages++
		slog.Info("Processing language", "language", lang.Name, "code", lang.Code)

		fetchTask := NewFetchEventsTask(lang, r.client, r.renderer)
		if err := fetchTask.Execute(ctx); err != nil {
			slog.Error("Task failed", "type", "FetchEvents", "language", lang.Name, "error", err)
			summary.FetchFailed++
			continue
		}

		if len(fetchTask.Items) == 0 {
			slog.Info("No feed items found, skipping", "language", lang.Name)
			continue
		}

		groups := r.filterer.Split(fetchTask.Items)
		slog.Debug("Items split by kind", "language", lang.Name,
			"news", len(groups[feed.KindNews]), "updates", len(groups[feed.KindUpdate]))

		for _, kind := range []feed.Kind{feed.KindNews, feed.KindUpdate} {
			task := NewRefreshFeedTask(lang, kind, groups[kind], r.opts.FeedsDir, r.opts.FeedBaseURL,
				r.parser, r.generator, r.runRepo)

			if err := task.Execute(ctx); err != nil {
				slog.Error("Task failed", "type", "RefreshFeed", "feed", task.FeedName, "error", err)
				summary.Failed++
				continue
			}

			switch task.Status {
			case database.RunStatusWritten:
				summary.Written++
			case database.RunStatusSkipped:
				summary.Skipped++
			case database.RunStatusEmpty:
				summary.Empty++
			}
		}
	}

	slog.Info("Run completed",
		"languages", summary.Languages,
		"fetch_failed", summary.FetchFailed,
		"written", summary.Written,
		"skipped", summary.Skipped,
		"empty", summary.Empty,
		"failed", summary.Failed)

	return summary, summary.Err()
}
