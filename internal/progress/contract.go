package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTrackerContract checks the behaviour every Tracker must share.
// Trackers that implement Resetter are emptied at the end.
func RunTrackerContract(t *testing.T, tracker Tracker) {
	ctx := context.Background()
	stageID := "contract-stage-" + time.Now().Format("20060102150405")

	t.Run("Unknown stage is not cleared", func(t *testing.T) {
		ok, err := tracker.IsCleared(ctx, "never-"+stageID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Record and query", func(t *testing.T) {
		require.NoError(t, tracker.RecordCleared(ctx, stageID))

		ok, err := tracker.IsCleared(ctx, stageID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Record is idempotent", func(t *testing.T) {
		require.NoError(t, tracker.RecordCleared(ctx, stageID))
		require.NoError(t, tracker.RecordCleared(ctx, stageID))

		ok, err := tracker.IsCleared(ctx, stageID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Clear set", func(t *testing.T) {
		set, err := ClearSet(ctx, tracker, []string{stageID, "never-" + stageID})
		require.NoError(t, err)
		assert.True(t, set[stageID])
		assert.False(t, set["never-"+stageID])
	})

	if _, ok := tracker.(Resetter); ok {
		t.Run("Reset forgets clears", func(t *testing.T) {
			require.NoError(t, Reset(ctx, tracker))

			ok, err := tracker.IsCleared(ctx, stageID)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}
