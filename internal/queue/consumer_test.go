package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLineRatingEvent(t *testing.T) {
	// Same wire shape the rating endpoint publishes.
	raw := `{"type":"rating.upserted","movie_id":"20dddede-13d9-4963-b6ad-acffb41d86b7","user_id":"u1","score":4.5,"occurred_at":"2026-08-30T00:28:24Z"}`

	var ev ActivityEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &ev))

	line := logLine(ev)
	assert.Equal(t, "[2026-08-30T00:28:24Z] rating.upserted | movie=20dddede-13d9-4963-b6ad-acffb41d86b7 | user_id=u1 | score=4.5\n", line)
	assert.NotContains(t, line, `movie=""`)
}

func TestLogLineCommentEvent(t *testing.T) {
	line := logLine(ActivityEvent{
		Type:       TypeCommentCreated,
		MovieID:    "m1",
		UserID:     "u2",
		OccurredAt: "2026-08-30T01:00:00Z",
	})
	assert.Equal(t, "[2026-08-30T01:00:00Z] comment.created | movie=m1 | user_id=u2\n", line)
}
