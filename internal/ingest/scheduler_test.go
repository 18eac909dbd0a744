package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gridbill/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFeedFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestSchedulerRunOnce(t *testing.T) {
	pipeline, store := newTestPipeline(t)

	path := writeFeedFile(t, "timestamp_utc,alpha_cons_kwh\n2024-03-20T13:00:00Z,10.5\n")
	scheduler := NewScheduler(pipeline, FeedConfig{File: path}, zap.NewNop())

	require.NoError(t, scheduler.RunOnce(context.Background()))

	customers, err := store.Customers().List(context.Background(), repository.CustomerFilter{})
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "alpha", customers[0].Name)
}

func TestSchedulerRunOnceReplace(t *testing.T) {
	pipeline, store := newTestPipeline(t)

	seed := writeFeedFile(t, "timestamp_utc,old_cons_kwh\n2024-03-19T13:00:00Z,1.0\n")
	require.NoError(t, NewScheduler(pipeline, FeedConfig{File: seed}, zap.NewNop()).RunOnce(context.Background()))

	fresh := writeFeedFile(t, "timestamp_utc,fresh_cons_kwh\n2024-03-20T13:00:00Z,2.0\n")
	scheduler := NewScheduler(pipeline, FeedConfig{File: fresh, Replace: true}, zap.NewNop())
	require.NoError(t, scheduler.RunOnce(context.Background()))

	customers, err := store.Customers().List(context.Background(), repository.CustomerFilter{})
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "fresh", customers[0].Name)
}

func TestSchedulerRunOnceMissingFile(t *testing.T) {
	pipeline, _ := newTestPipeline(t)
	scheduler := NewScheduler(pipeline, FeedConfig{File: "/nonexistent/feed.csv"}, zap.NewNop())

	assert.Error(t, scheduler.RunOnce(context.Background()))
}

func TestSchedulerStartDisabled(t *testing.T) {
	pipeline, _ := newTestPipeline(t)
	scheduler := NewScheduler(pipeline, FeedConfig{Enabled: false}, zap.NewNop())

	// A disabled feed returns without blocking on the context.
	assert.NoError(t, scheduler.Start(context.Background()))
}

func TestSchedulerStartRejectsBadSchedule(t *testing.T) {
	pipeline, _ := newTestPipeline(t)
	scheduler := NewScheduler(pipeline, FeedConfig{Enabled: true, Schedule: "not a schedule"}, zap.NewNop())

	assert.Error(t, scheduler.Start(context.Background()))
}
