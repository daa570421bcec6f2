package messaging

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_PublishCreationJob(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	p := NewProducer(rdb, "", 0)
	ctx := context.Background()

	id, err := p.PublishCreationJob(ctx, &CreationJobMessage{
		JobID:          "job-1",
		SessionID:      "s1",
		Turn:           2,
		Strategy:       "outline",
		Trigger:        "readiness_threshold",
		Confidence:     0.635,
		Chapter:        1,
		TargetLength:   800,
		Settings:       map[string]any{"world": map[string]any{"world_type": "科幻"}},
		IdempotencyKey: "s1:2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	entries, err := rdb.XRange(ctx, string(StreamStoryGen), "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var msg Message
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values["data"].(string)), &msg))
	assert.Equal(t, MessageTypeCreationJob, msg.Type)
	assert.Equal(t, "s1", msg.SessionID)
	assert.Equal(t, "1", msg.Metadata["chapter"])
	assert.Equal(t, "s1:2", msg.Metadata["idempotency_key"])

	var job CreationJobMessage
	require.NoError(t, msg.UnmarshalPayload(&job))
	assert.Equal(t, "outline", job.Strategy)
	assert.Equal(t, 800, job.TargetLength)
	assert.InDelta(t, 0.635, job.Confidence, 1e-9)
}

func TestProducer_PublishFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	mr.Close()

	p := NewProducer(rdb, "custom:stream", 10)
	_, err := p.PublishCreationJob(context.Background(), &CreationJobMessage{JobID: "j", SessionID: "s"})
	assert.Error(t, err)
}
