package database

import (
	"time"
)

type RunStatus string

const (
	RunStatusWritten RunStatus = "written"
	RunStatusSkipped RunStatus = "skipped"
	RunStatusEmpty   RunStatus = "empty"
	RunStatusFailed  RunStatus = "failed"
)

// Run is one refresh attempt of a single feed file.
type Run struct {
	ID         int64
	TaskID     string
	FeedName   string // file name without extension, e.g. news-feed-en
	Language   string
	Kind       string
	Status     RunStatus
	NewestGUID string
	PubDate    string
	ItemCount  int
	Error      string
	StartedAt  time.Time
	Duration   time.Duration
}

// FeedStat summarizes the history of one feed file.
type FeedStat struct {
	FeedName      string
	Runs          int
	Writes        int
	Failures      int
	LastStatus    RunStatus
	LastRunAt     time.Time
	LastWrittenAt *time.Time
}
