// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncUserRegistered()
	IncSessionCreated()
	IncLoginFailed()

	// Catalog metrics
	IncEventCreated()
	IncEventUpdated()
	IncEventDeleted()
	IncCommentCreated()

	// Search metrics
	IncSearchPerformed()

	// Activity feed pipeline metrics. Status is "success", "dropped",
	// "failed" or "dead_lettered".
	IncActivityPublished(status string)
	IncActivityProcessed(status string)
	SetActivityQueueDepth(depth int64)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
