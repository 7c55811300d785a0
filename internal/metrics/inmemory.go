package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered   uint64 `json:"users_registered"`
	SessionsCreated   uint64 `json:"sessions_created"`
	LoginsFailed      uint64 `json:"logins_failed"`
	EventsCreated     uint64 `json:"events_created"`
	EventsUpdated     uint64 `json:"events_updated"`
	EventsDeleted     uint64 `json:"events_deleted"`
	CommentsCreated   uint64 `json:"comments_created"`
	SearchesPerformed uint64 `json:"searches_performed"`

	ActivitiesPublished    uint64 `json:"activities_published"`
	ActivitiesDropped      uint64 `json:"activities_dropped"`
	ActivitiesProcessed    uint64 `json:"activities_processed"`
	ActivitiesFailed       uint64 `json:"activities_failed"`
	ActivitiesDeadLettered uint64 `json:"activities_dead_lettered"`
	ActivityQueueDepth     int64  `json:"activity_queue_depth"`
}

// InMemoryRecorder stores metrics in memory. Suitable for the internal
// metrics endpoint and for tests.
type InMemoryRecorder struct {
	usersRegistered   uint64
	sessionsCreated   uint64
	loginsFailed      uint64
	eventsCreated     uint64
	eventsUpdated     uint64
	eventsDeleted     uint64
	commentsCreated   uint64
	searchesPerformed uint64

	activitiesPublished    uint64
	activitiesDropped      uint64
	activitiesProcessed    uint64
	activitiesFailed       uint64
	activitiesDeadLettered uint64
	activityQueueDepth     int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:   atomic.LoadUint64(&m.usersRegistered),
		SessionsCreated:   atomic.LoadUint64(&m.sessionsCreated),
		LoginsFailed:      atomic.LoadUint64(&m.loginsFailed),
		EventsCreated:     atomic.LoadUint64(&m.eventsCreated),
		EventsUpdated:     atomic.LoadUint64(&m.eventsUpdated),
		EventsDeleted:     atomic.LoadUint64(&m.eventsDeleted),
		CommentsCreated:   atomic.LoadUint64(&m.commentsCreated),
		SearchesPerformed: atomic.LoadUint64(&m.searchesPerformed),

		ActivitiesPublished:    atomic.LoadUint64(&m.activitiesPublished),
		ActivitiesDropped:      atomic.LoadUint64(&m.activitiesDropped),
		ActivitiesProcessed:    atomic.LoadUint64(&m.activitiesProcessed),
		ActivitiesFailed:       atomic.LoadUint64(&m.activitiesFailed),
		ActivitiesDeadLettered: atomic.LoadUint64(&m.activitiesDeadLettered),
		ActivityQueueDepth:     atomic.LoadInt64(&m.activityQueueDepth),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncSessionCreated increments the session counter.
func (m *InMemoryRecorder) IncSessionCreated() {
	atomic.AddUint64(&m.sessionsCreated, 1)
}

// IncLoginFailed increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailed() {
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncEventCreated increments the event creation counter.
func (m *InMemoryRecorder) IncEventCreated() {
	atomic.AddUint64(&m.eventsCreated, 1)
}

// IncEventUpdated increments the event update counter.
func (m *InMemoryRecorder) IncEventUpdated() {
	atomic.AddUint64(&m.eventsUpdated, 1)
}

// IncEventDeleted increments the event deletion counter.
func (m *InMemoryRecorder) IncEventDeleted() {
	atomic.AddUint64(&m.eventsDeleted, 1)
}

// IncCommentCreated increments the comment counter.
func (m *InMemoryRecorder) IncCommentCreated() {
	atomic.AddUint64(&m.commentsCreated, 1)
}

// IncSearchPerformed increments the search counter.
func (m *InMemoryRecorder) IncSearchPerformed() {
	atomic.AddUint64(&m.searchesPerformed, 1)
}

// IncActivityPublished increments the publish counter for the status.
func (m *InMemoryRecorder) IncActivityPublished(status string) {
	if status == "dropped" {
		atomic.AddUint64(&m.activitiesDropped, 1)
		return
	}
	atomic.AddUint64(&m.activitiesPublished, 1)
}

// IncActivityProcessed increments the processing counter for the status.
func (m *InMemoryRecorder) IncActivityProcessed(status string) {
	switch status {
	case "failed":
		atomic.AddUint64(&m.activitiesFailed, 1)
	case "dead_lettered":
		atomic.AddUint64(&m.activitiesDeadLettered, 1)
	default:
		atomic.AddUint64(&m.activitiesProcessed, 1)
	}
}

// SetActivityQueueDepth records the current stream backlog.
func (m *InMemoryRecorder) SetActivityQueueDepth(depth int64) {
	atomic.StoreInt64(&m.activityQueueDepth, depth)
}
