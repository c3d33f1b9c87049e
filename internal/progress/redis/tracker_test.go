package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-pipes/internal/progress"
	"github.com/vovakirdan/tui-pipes/internal/progress/redis"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

func TestRedisTracker_Contract(t *testing.T) {
	_, client := setup(t)
	progress.RunTrackerContract(t, redis.NewFromClient(client))
}

func TestRedisTracker_Keys(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	tracker := redis.NewFromClient(client, redis.WithPrefix("test:"), redis.WithPlayer("alice"))
	require.NoError(t, tracker.RecordCleared(ctx, "01-tutorial"))

	members, err := mr.Members("test:alice:cleared")
	require.NoError(t, err)
	assert.Equal(t, []string{"01-tutorial"}, members)
}

func TestRedisTracker_PlayersAreIsolated(t *testing.T) {
	_, client := setup(t)
	ctx := context.Background()

	alice := redis.NewFromClient(client, redis.WithPlayer("alice"))
	bob := alice.ForPlayer("bob")

	require.NoError(t, alice.RecordCleared(ctx, "02-bend"))

	ok, err := bob.IsCleared(ctx, "02-bend")
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := alice.Cleared(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"02-bend"}, ids)
}

func TestRedisTracker_TTL(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	tracker := redis.NewFromClient(client, redis.WithTTL(time.Hour))
	require.NoError(t, tracker.RecordCleared(ctx, "03-detour"))
	assert.Equal(t, time.Hour, mr.TTL("pipes:progress:local:cleared"))

	mr.FastForward(2 * time.Hour)

	ok, err := tracker.IsCleared(ctx, "03-detour")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisTracker_Reset(t *testing.T) {
	_, client := setup(t)
	ctx := context.Background()

	tracker := redis.NewFromClient(client)
	require.NoError(t, tracker.RecordCleared(ctx, "04-fork"))
	require.NoError(t, tracker.Reset(ctx))

	ids, err := tracker.Cleared(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, tracker.Ping(ctx))
}

func TestRedisTracker_ResetWrapsError(t *testing.T) {
	mr, client := setup(t)
	tracker := redis.NewFromClient(client)
	mr.Close()

	err := tracker.Reset(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "progress: failed to reset")
}
