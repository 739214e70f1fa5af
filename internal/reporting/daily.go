// internal/reporting/daily.go
package reporting

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"screening-workers/internal/common/logger"
	"screening-workers/internal/common/metrics"
	"screening-workers/internal/common/observability"
	"screening-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	dailyKeyPrefix = "screening:metrics:"
	dailyKeyTTL    = 14 * 24 * time.Hour
)

// DailyMetrics aggregates screening outcomes per calendar day. Counters are
// kept in memory for fast reads and mirrored to Redis hashes so that multiple
// worker instances contribute to the same daily totals.
type DailyMetrics struct {
	mu sync.Mutex

	day              string
	total            int64
	byRecommendation map[models.Recommendation]int64
	confidenceSum    float64
	latencySum       time.Duration

	rdb *redis.Client
	obs *observability.Observability
	log logger.Logger
}

// Snapshot is a point-in-time copy of one day's counters.
type Snapshot struct {
	Day               string                          `json:"day"`
	Total             int64                           `json:"total"`
	ByRecommendation  map[models.Recommendation]int64 `json:"by_recommendation"`
	AverageConfidence float64                         `json:"average_confidence"`
	AverageLatencyMS  float64                         `json:"average_latency_ms"`
}

// NewDailyMetrics creates an aggregator. rdb may be nil, in which case the
// aggregator is purely in-memory.
func NewDailyMetrics(rdb *redis.Client, log logger.Logger) *DailyMetrics {
	return &DailyMetrics{
		day:              dayKey(time.Now()),
		byRecommendation: make(map[models.Recommendation]int64),
		rdb:              rdb,
		log:              log,
	}
}

// WithObservability mirrors each screening into the OTel instruments as well.
func (d *DailyMetrics) WithObservability(obs *observability.Observability) *DailyMetrics {
	d.obs = obs
	return d
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// RecordScreening implements engine.MetricsSink.
func (d *DailyMetrics) RecordScreening(ctx context.Context, recommendation models.Recommendation, latency time.Duration, confidence float64) {
	d.mu.Lock()
	day := dayKey(time.Now())
	if day != d.day {
		d.rollover(day)
	}
	d.total++
	d.byRecommendation[recommendation]++
	d.confidenceSum += confidence
	d.latencySum += latency
	d.mu.Unlock()

	metrics.ScreeningsCompleted.WithLabelValues(string(recommendation)).Inc()
	metrics.ScreeningDuration.Observe(latency.Seconds())
	metrics.ScreeningConfidence.Observe(confidence)

	if d.obs != nil {
		d.obs.RecordScreening(ctx, string(recommendation), latency)
	}

	if d.rdb != nil {
		d.mirror(ctx, day, recommendation, latency, confidence)
	}
}

// rollover resets in-memory counters for a new day. Caller holds d.mu.
func (d *DailyMetrics) rollover(day string) {
	d.day = day
	d.total = 0
	d.byRecommendation = make(map[models.Recommendation]int64)
	d.confidenceSum = 0
	d.latencySum = 0
}

func (d *DailyMetrics) mirror(ctx context.Context, day string, recommendation models.Recommendation, latency time.Duration, confidence float64) {
	key := dailyKeyPrefix + day

	pipe := d.rdb.Pipeline()
	pipe.HIncrBy(ctx, key, "total", 1)
	pipe.HIncrBy(ctx, key, "recommendation:"+string(recommendation), 1)
	pipe.HIncrByFloat(ctx, key, "confidence_sum", confidence)
	pipe.HIncrByFloat(ctx, key, "latency_ms_sum", float64(latency.Milliseconds()))
	pipe.Expire(ctx, key, dailyKeyTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		d.log.Warn("failed to mirror daily metrics to redis", map[string]interface{}{
			"day":   day,
			"error": err.Error(),
		})
	}
}

// Today returns a snapshot of the current day's in-memory counters.
func (d *DailyMetrics) Today() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := Snapshot{
		Day:              d.day,
		Total:            d.total,
		ByRecommendation: make(map[models.Recommendation]int64, len(d.byRecommendation)),
	}
	for rec, n := range d.byRecommendation {
		snap.ByRecommendation[rec] = n
	}
	if d.total > 0 {
		snap.AverageConfidence = d.confidenceSum / float64(d.total)
		snap.AverageLatencyMS = float64(d.latencySum.Milliseconds()) / float64(d.total)
	}
	return snap
}

// Day reads a day's totals back from Redis. Returns an empty snapshot when
// no counters exist for that day.
func (d *DailyMetrics) Day(ctx context.Context, day string) (Snapshot, error) {
	snap := Snapshot{
		Day:              day,
		ByRecommendation: make(map[models.Recommendation]int64),
	}
	if d.rdb == nil {
		return snap, fmt.Errorf("redis not configured")
	}

	fields, err := d.rdb.HGetAll(ctx, dailyKeyPrefix+day).Result()
	if err != nil {
		return snap, fmt.Errorf("failed to read daily metrics: %w", err)
	}

	var confidenceSum, latencySum float64
	for field, raw := range fields {
		switch {
		case field == "total":
			snap.Total, _ = strconv.ParseInt(raw, 10, 64)
		case field == "confidence_sum":
			confidenceSum, _ = strconv.ParseFloat(raw, 64)
		case field == "latency_ms_sum":
			latencySum, _ = strconv.ParseFloat(raw, 64)
		case strings.HasPrefix(field, "recommendation:"):
			n, _ := strconv.ParseInt(raw, 10, 64)
			snap.ByRecommendation[models.Recommendation(strings.TrimPrefix(field, "recommendation:"))] = n
		}
	}
	if snap.Total > 0 {
		snap.AverageConfidence = confidenceSum / float64(snap.Total)
		snap.AverageLatencyMS = latencySum / float64(snap.Total)
	}
	return snap, nil
}
