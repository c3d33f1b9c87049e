package progress_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-pipes/internal/progress"
)

func TestMemory_Contract(t *testing.T) {
	progress.RunTrackerContract(t, progress.NewMemory())
}

func TestMemoryCleared(t *testing.T) {
	ctx := context.Background()
	m := progress.NewMemory()

	require.NoError(t, m.RecordCleared(ctx, "b"))
	require.NoError(t, m.RecordCleared(ctx, "a"))

	ids, err := m.Cleared(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

// queryOnly hides Memory's Lister so ClearSet falls back to IsCleared.
type queryOnly struct{ progress.Tracker }

func TestClearSetWithoutLister(t *testing.T) {
	ctx := context.Background()
	m := progress.NewMemory()
	require.NoError(t, m.RecordCleared(ctx, "02-bend"))

	set, err := progress.ClearSet(ctx, queryOnly{m}, []string{"01-tutorial", "02-bend"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"02-bend": true}, set)
}

func TestResetUnsupported(t *testing.T) {
	err := progress.Reset(context.Background(), queryOnly{progress.NewMemory()})
	assert.ErrorIs(t, err, progress.ErrResetUnsupported)
}
