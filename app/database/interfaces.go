package database

type RunRepository interface {
	RecordRun(run Run) error
	GetLatestRuns(limit int) ([]Run, error)
	GetFeedStats() ([]FeedStat, error)
	GetRunCount() (int, error)
}
