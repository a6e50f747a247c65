package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iceq1337/cs-rss-feed/app/database"
	"github.com/iceq1337/cs-rss-feed/app/feed"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 100
)

var feedNamePattern = regexp.MustCompile(`^(news|updates)-feed-[a-z]{2,3}(-[a-z]+)?$`)

func NewHandler(feedsDir string, runRepo database.RunRepository, refresh RefreshFunc, version string) *Handler {
	return &Handler{
		feedsDir: feedsDir,
		runRepo:  runRepo,
		refresh:  refresh,
		version:  version,
	}
}

func (h *Handler) GetFeed(c *gin.Context) {
	name := strings.TrimSuffix(c.Param("name"), ".xml")
	if !feedNamePattern.MatchString(name) {
		c.Status(http.StatusNotFound)
		return
	}

	path := filepath.Join(h.feedsDir, name+".xml")

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("Failed to open feed", "feed", name, "error", err)
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNotFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.Header("X-Feed-Name", name)
	if fp := feed.ReadFingerprint(path); fp != nil {
		c.Header("X-Feed-Newest", fp.GUID)
	}

	http.ServeContent(c.Writer, c.Request, name+".xml", info.ModTime(), f)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	feeds, err := h.listFeeds()
	if err != nil {
		slog.Error("Failed to list feeds", "error", err)
		health["status"] = "degraded"
	}
	health["feeds"] = len(feeds)

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	if h.runRepo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Run history is disabled"})
		return
	}

	stats, err := h.runRepo.GetFeedStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_feed_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	runs, err := h.runRepo.GetRunCount()
	if err != nil {
		slog.Error("Database error", "operation", "get_run_count", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	limit := defaultRunLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRunLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("limit must be between 1 and %d", maxRunLimit)})
			return
		}
		limit = n
	}

	latest, err := h.runRepo.GetLatestRuns(limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_latest_runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	feeds := make([]gin.H, 0, len(stats))
	for _, s := range stats {
		feeds = append(feeds, gin.H{
			"name":            s.FeedName,
			"runs":            s.Runs,
			"writes":          s.Writes,
			"failures":        s.Failures,
			"last_status":     s.LastStatus,
			"last_run_at":     s.LastRunAt,
			"last_written_at": s.LastWrittenAt,
		})
	}

	latestRuns := make([]gin.H, 0, len(latest))
	for _, run := range latest {
		entry := gin.H{
			"task_id":     run.TaskID,
			"feed":        run.FeedName,
			"status":      run.Status,
			"newest_guid": run.NewestGUID,
			"items":       run.ItemCount,
			"started_at":  run.StartedAt,
			"duration_ms": run.Duration.Milliseconds(),
		}
		if run.Error != "" {
			entry["error"] = run.Error
		}
		latestRuns = append(latestRuns, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":        runs,
		"feeds":       feeds,
		"latest_runs": latestRuns,
	})
}

func (h *Handler) GetIndex(c *gin.Context) {
	feeds, err := h.listFeeds()
	if err != nil {
		slog.Error("Failed to list feeds", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list feeds"})
		return
	}

	links := make([]string, 0, len(feeds))
	for _, name := range feeds {
		links = append(links, "/feeds/"+name)
	}

	c.JSON(http.StatusOK, gin.H{
		"service": "CS-RSS-Feed",
		"version": h.version,
		"feeds":   links,
		"endpoints": gin.H{
			"feed":   "/feeds/<name>",
			"health": "/health",
			"stats":  "/stats",
		},
	})
}

func (h *Handler) APIRefresh(c *gin.Context) {
	if !h.refreshMu.TryLock() {
		c.JSON(http.StatusConflict, gin.H{"error": "Refresh already running"})
		return
	}
	defer h.refreshMu.Unlock()

	summary, err := h.refresh(c.Request.Context())

	response := gin.H{
		"success":      err == nil,
		"languages":    summary.Languages,
		"fetch_failed": summary.FetchFailed,
		"written":      summary.Written,
		"skipped":      summary.Skipped,
		"empty":        summary.Empty,
		"failed":       summary.Failed,
	}
	if err != nil {
		slog.Error("Refresh failed", "error", err)
		response["error"] = err.Error()
		c.JSON(http.StatusBadGateway, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) listFeeds() ([]string, error) {
	entries, err := os.ReadDir(h.feedsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".xml")
		if e.Type().IsRegular() && name != e.Name() && feedNamePattern.MatchString(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names, nil
}
