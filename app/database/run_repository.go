package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ RunRepository = (*SQLiteRunRepository)(nil)

type SQLiteRunRepository struct {
	db *DB
}

func NewRunRepository(db *DB) *SQLiteRunRepository {
	return &SQLiteRunRepository{db: db}
}

func (r *SQLiteRunRepository) RecordRun(run Run) error {
	_, err := r.db.Exec(`
		INSERT INTO feed_runs (
			task_id, feed_name, language, kind, status,
			newest_guid, pub_date, item_count, error, started_at, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.TaskID, run.FeedName, run.Language, run.Kind, string(run.Status),
		run.NewestGUID, run.PubDate, run.ItemCount, run.Error,
		run.StartedAt.UTC().UnixMilli(), run.Duration.Milliseconds())

	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

func (r *SQLiteRunRepository) GetLatestRuns(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT id, task_id, feed_name, language, kind, status,
			newest_guid, pub_date, item_count, error, started_at, duration_ms
		FROM feed_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var status string
		var startedAt, durationMs int64

		if err := rows.Scan(&run.ID, &run.TaskID, &run.FeedName, &run.Language, &run.Kind, &status,
			&run.NewestGUID, &run.PubDate, &run.ItemCount, &run.Error, &startedAt, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.Status = RunStatus(status)
		run.StartedAt = time.UnixMilli(startedAt).UTC()
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

func (r *SQLiteRunRepository) GetFeedStats() ([]FeedStat, error) {
	rows, err := r.db.Query(`
		SELECT
			feed_name,
			COUNT(*),
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END),
			MAX(started_at),
			MAX(CASE WHEN status = ? THEN started_at END)
		FROM feed_runs
		GROUP BY feed_name
		ORDER BY feed_name
	`, string(RunStatusWritten), string(RunStatusFailed), string(RunStatusWritten))
	if err != nil {
		return nil, fmt.Errorf("failed to get feed stats: %w", err)
	}
	defer rows.Close()

	var stats []FeedStat
	for rows.Next() {
		var stat FeedStat
		var lastRun int64
		var lastWritten sql.NullInt64

		if err := rows.Scan(&stat.FeedName, &stat.Runs, &stat.Writes, &stat.Failures, &lastRun, &lastWritten); err != nil {
			return nil, fmt.Errorf("failed to scan feed stats: %w", err)
		}

		stat.LastRunAt = time.UnixMilli(lastRun).UTC()
		if lastWritten.Valid {
			t := time.UnixMilli(lastWritten.Int64).UTC()
			stat.LastWrittenAt = &t
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feed stats: %w", err)
	}

	for i := range stats {
		var status string
		err := r.db.QueryRow(`
			SELECT status FROM feed_runs
			WHERE feed_name = ?
			ORDER BY started_at DESC, id DESC
			LIMIT 1
		`, stats[i].FeedName).Scan(&status)
		if err != nil {
			return nil, fmt.Errorf("failed to get last status: %w", err)
		}
		stats[i].LastStatus = RunStatus(status)
	}

	return stats, nil
}

func (r *SQLiteRunRepository) GetRunCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM feed_runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}
