package reminders

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	l := &LocalLocker{}

	release, ok, err := l.TryLock(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.TryLock(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	release()

	release, ok, err = l.TryLock(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	release()
}

func TestRedisLocker(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()
	client, err := NewRedisClient(ctx, url)
	require.NoError(t, err)
	defer client.Close()

	key := "eyegrade:test:" + uuid.NewString()
	a := NewRedisLocker(client, key, time.Minute)
	b := NewRedisLocker(client, key, time.Minute)

	release, ok, err := a.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = b.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	release()

	releaseB, ok, err := b.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	releaseB()
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-redis-url")
	assert.ErrorContains(t, err, "invalid REDIS_URL")
}
