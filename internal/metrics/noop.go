package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncSessionCreated is a no-op.
func (n *NoopRecorder) IncSessionCreated() {}

// IncLoginFailed is a no-op.
func (n *NoopRecorder) IncLoginFailed() {}

// IncEventCreated is a no-op.
func (n *NoopRecorder) IncEventCreated() {}

// IncEventUpdated is a no-op.
func (n *NoopRecorder) IncEventUpdated() {}

// IncEventDeleted is a no-op.
func (n *NoopRecorder) IncEventDeleted() {}

// IncCommentCreated is a no-op.
func (n *NoopRecorder) IncCommentCreated() {}

// IncSearchPerformed is a no-op.
func (n *NoopRecorder) IncSearchPerformed() {}

// IncActivityPublished is a no-op.
func (n *NoopRecorder) IncActivityPublished(status string) {}

// IncActivityProcessed is a no-op.
func (n *NoopRecorder) IncActivityProcessed(status string) {}

// SetActivityQueueDepth is a no-op.
func (n *NoopRecorder) SetActivityQueueDepth(depth int64) {}
