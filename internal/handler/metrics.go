package handler

import (
	"fmt"
	"net/http"

	"github.com/townboard/townboard/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "townboard_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "townboard_sessions_created_total %d\n", snap.SessionsCreated)
	writeMetric(w, "townboard_logins_failed_total %d\n", snap.LoginsFailed)

	writeMetric(w, "townboard_events_created_total %d\n", snap.EventsCreated)
	writeMetric(w, "townboard_events_updated_total %d\n", snap.EventsUpdated)
	writeMetric(w, "townboard_events_deleted_total %d\n", snap.EventsDeleted)
	writeMetric(w, "townboard_comments_created_total %d\n", snap.CommentsCreated)

	writeMetric(w, "townboard_searches_total %d\n", snap.SearchesPerformed)

	writeMetric(w, "townboard_activity_published_total{status=\"success\"} %d\n", snap.ActivitiesPublished)
	writeMetric(w, "townboard_activity_published_total{status=\"dropped\"} %d\n", snap.ActivitiesDropped)
	writeMetric(w, "townboard_activity_processed_total{status=\"success\"} %d\n", snap.ActivitiesProcessed)
	writeMetric(w, "townboard_activity_processed_total{status=\"failed\"} %d\n", snap.ActivitiesFailed)
	writeMetric(w, "townboard_activity_processed_total{status=\"dead_lettered\"} %d\n", snap.ActivitiesDeadLettered)
	writeMetric(w, "townboard_activity_queue_depth %d\n", snap.ActivityQueueDepth)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
