package fswatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/workshop-sync/internal/application"
	"github.com/bnema/workshop-sync/internal/domain"
	"github.com/bnema/workshop-sync/internal/ports/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWaiterReturnsWhenDirectoryIsCreated(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	target := filepath.Join(root, "123")
	waiter := NewWaiter(application.ReadinessSettings{Attempts: 10, Step: 250 * time.Millisecond}, mocks.NewMockReadinessWaiter(t), zerolog.Nop())

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.MkdirAll(filepath.Join(target, "About"), 0o755)
	}()

	require.NoError(t, waiter.WaitForDir(context.Background(), target))
}

func TestWaiterReturnsImmediatelyForExistingDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	target := filepath.Join(root, "123")
	require.NoError(t, os.Mkdir(target, 0o755))
	waiter := NewWaiter(application.ReadinessSettings{}, mocks.NewMockReadinessWaiter(t), zerolog.Nop())

	require.NoError(t, waiter.WaitForDir(context.Background(), target))
}

func TestWaiterGivesUpAfterBudget(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	waiter := NewWaiter(application.ReadinessSettings{Attempts: 2, Step: 10 * time.Millisecond}, mocks.NewMockReadinessWaiter(t), zerolog.Nop())

	err := waiter.WaitForDir(context.Background(), filepath.Join(root, "404"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStagingNotReady)
}

func TestWaiterLenientProceedsAfterBudget(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	waiter := NewWaiter(application.ReadinessSettings{Attempts: 2, Step: 10 * time.Millisecond, Lenient: true}, mocks.NewMockReadinessWaiter(t), zerolog.Nop())

	require.NoError(t, waiter.WaitForDir(context.Background(), filepath.Join(root, "404")))
}

func TestWaiterFallsBackWhenParentCannotBeWatched(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "no-such-root", "123")
	fallback := mocks.NewMockReadinessWaiter(t)
	fallback.EXPECT().WaitForDir(mock.Anything, missing).Return(nil).Once()
	waiter := NewWaiter(application.ReadinessSettings{}, fallback, zerolog.Nop())

	require.NoError(t, waiter.WaitForDir(context.Background(), missing))
}
