// Package queue defines message payloads exchanged over the message broker.
package queue

// Activity event types published by the write endpoints.
const (
	TypeRatingUpserted = "rating.upserted"
	TypeCommentCreated = "comment.created"
)

// ActivityQueueName is the durable queue all catalog activity goes to.
const ActivityQueueName = "catalog.activity"

// ActivityEvent is published after a rating upsert or a comment
// creation succeeds. It carries enough information for downstream
// consumers to log, notify, or feed analytics without querying the
// primary database. Score is only set for rating events.
type ActivityEvent struct {
	Type       string  `json:"type"`
	MovieID    string  `json:"movie_id"`
	UserID     string  `json:"user_id"`
	Score      float64 `json:"score,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}
