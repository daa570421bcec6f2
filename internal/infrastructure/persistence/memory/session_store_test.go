package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", []byte("a"), time.Minute))
	data, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	data[0] = 'b'
	again, _ := store.Load(ctx, "s1")
	assert.Equal(t, "a", string(again))

	now = now.Add(time.Minute)
	data, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Zero(t, store.Len())

	require.NoError(t, store.Save(ctx, "s2", []byte("x"), 0))
	require.NoError(t, store.Delete(ctx, "s2"))
	data, _ = store.Load(ctx, "s2")
	assert.Nil(t, data)
}
