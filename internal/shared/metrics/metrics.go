package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	gapAnalysisStartedTotal   atomic.Uint64
	gapAnalysisCompletedTotal atomic.Uint64
	gapAnalysisFailedTotal    atomic.Uint64

	chatMessagesTotal          atomic.Uint64
	chatWrapUpsTotal           atomic.Uint64
	chatRepeatSubstitutedTotal atomic.Uint64

	gapAnalysisDuration = newHistogram([]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000})
)

// IncGapAnalysisStarted increments the started counter.
func IncGapAnalysisStarted() {
	gapAnalysisStartedTotal.Add(1)
}

// IncGapAnalysisCompleted increments the completed counter.
func IncGapAnalysisCompleted() {
	gapAnalysisCompletedTotal.Add(1)
}

// IncGapAnalysisFailed increments the failed counter.
func IncGapAnalysisFailed() {
	gapAnalysisFailedTotal.Add(1)
}

// ObserveGapAnalysisDurationMs records a gap analysis duration in milliseconds.
func ObserveGapAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	gapAnalysisDuration.Observe(value)
}

// ObserveChatReply records one assistant reply and its post-processing flags.
func ObserveChatReply(wrapUp, substituted bool) {
	chatMessagesTotal.Add(1)
	if wrapUp {
		chatWrapUpsTotal.Add(1)
	}
	if substituted {
		chatRepeatSubstitutedTotal.Add(1)
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "gap_analysis_started_total", "Total gap analyses started", gapAnalysisStartedTotal.Load())
	writeCounter(&buf, "gap_analysis_completed_total", "Total gap analyses completed", gapAnalysisCompletedTotal.Load())
	writeCounter(&buf, "gap_analysis_failed_total", "Total gap analyses failed", gapAnalysisFailedTotal.Load())
	writeHistogram(&buf, "gap_analysis_duration_ms", "Gap analysis duration in milliseconds", gapAnalysisDuration.Snapshot())
	writeCounter(&buf, "chat_messages_total", "Total assistant replies", chatMessagesTotal.Load())
	writeCounter(&buf, "chat_wrap_ups_total", "Total replies to sign-off messages", chatWrapUpsTotal.Load())
	writeCounter(&buf, "chat_repeat_substituted_total", "Total replies replaced to avoid repetition", chatRepeatSubstitutedTotal.Load())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	// Observe already counts each value into every bucket it fits, so counts are cumulative.
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// SinceMillis returns the elapsed time since start in milliseconds.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
