package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	uploadsStartedTotal      atomic.Uint64
	uploadsCompletedTotal    atomic.Uint64
	uploadsFailedTotal       atomic.Uint64
	replacementRequestsTotal atomic.Uint64
	signedURLsIssuedTotal    atomic.Uint64

	orphansReceivedTotal atomic.Uint64
	orphansDeletedTotal  atomic.Uint64
	orphansSkippedTotal  atomic.Uint64
	orphansFailedTotal   atomic.Uint64

	uploadSizeBytes = newHistogram([]float64{1 << 10, 10 << 10, 100 << 10, 512 << 10, 1 << 20, 2 << 20, 5 << 20})
)

// IncUploadStarted increments the started counter.
func IncUploadStarted() {
	uploadsStartedTotal.Add(1)
}

// IncUploadCompleted increments the completed counter.
func IncUploadCompleted() {
	uploadsCompletedTotal.Add(1)
}

// IncUploadFailed increments the failed counter.
func IncUploadFailed() {
	uploadsFailedTotal.Add(1)
}

// IncReplacementRequest increments the replacement request counter.
func IncReplacementRequest() {
	replacementRequestsTotal.Add(1)
}

// IncSignedURLIssued increments the signed URL counter.
func IncSignedURLIssued() {
	signedURLsIssuedTotal.Add(1)
}

// IncOrphanReceived increments the orphan messages received counter.
func IncOrphanReceived() {
	orphansReceivedTotal.Add(1)
}

// IncOrphanDeleted increments the orphan objects deleted counter.
func IncOrphanDeleted() {
	orphansDeletedTotal.Add(1)
}

// IncOrphanSkipped increments the counter of orphans found referenced again.
func IncOrphanSkipped() {
	orphansSkippedTotal.Add(1)
}

// IncOrphanFailed increments the orphan processing failure counter.
func IncOrphanFailed() {
	orphansFailedTotal.Add(1)
}

// ObserveUploadSizeBytes records an accepted upload's decoded size.
func ObserveUploadSizeBytes(value float64) {
	if value < 0 {
		value = 0
	}
	uploadSizeBytes.Observe(value)
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
	writeCounter(&buf, "uploads_started_total", "Total document uploads started", uploadsStartedTotal.Load())
	writeCounter(&buf, "uploads_completed_total", "Total document uploads completed", uploadsCompletedTotal.Load())
	writeCounter(&buf, "uploads_failed_total", "Total document uploads failed", uploadsFailedTotal.Load())
	writeCounter(&buf, "replacement_requests_total", "Total document replacement requests", replacementRequestsTotal.Load())
	writeCounter(&buf, "signed_urls_issued_total", "Total signed read URLs issued", signedURLsIssuedTotal.Load())
	writeCounter(&buf, "orphans_received_total", "Total orphan reconciliation messages received", orphansReceivedTotal.Load())
	writeCounter(&buf, "orphans_deleted_total", "Total orphaned objects deleted", orphansDeletedTotal.Load())
	writeCounter(&buf, "orphans_skipped_total", "Total orphan messages skipped as referenced", orphansSkippedTotal.Load())
	writeCounter(&buf, "orphans_failed_total", "Total orphan messages that failed processing", orphansFailedTotal.Load())
	writeHistogram(&buf, "upload_size_bytes", "Decoded upload size in bytes", uploadSizeBytes.Snapshot())
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
			break
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
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
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
