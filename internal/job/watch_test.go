package job_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/offscreen/internal/job"
)

const testDebounce = 100 * time.Millisecond

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// startWatcher watches the given files and runs the watcher in the
// background. The returned channel yields Run's result.
func startWatcher(t *testing.T, ctx context.Context, files []string, rerun func() error) <-chan error {
	t.Helper()
	w, err := job.NewWatcher(files, testDebounce, quiet)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, rerun) }()
	return done
}

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatchDebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	shader := filepath.Join(dir, "fp.frag")
	touch(t, shader, "v0")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var runs atomic.Int32
	startWatcher(t, ctx, []string{shader}, func() error {
		runs.Add(1)
		return nil
	})

	for i := 0; i < 5; i++ {
		touch(t, shader, "v"+string(rune('1'+i)))
	}

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return runs.Load() > 1 }, 3*testDebounce, 10*time.Millisecond)
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	shader := filepath.Join(dir, "fp.frag")
	touch(t, shader, "v0")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var runs atomic.Int32
	startWatcher(t, ctx, []string{shader}, func() error {
		runs.Add(1)
		return nil
	})

	touch(t, filepath.Join(dir, "notes.txt"), "unrelated")
	assert.Never(t, func() bool { return runs.Load() > 0 }, 4*testDebounce, 10*time.Millisecond)
}

func TestWatchStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	shader := filepath.Join(dir, "fp.frag")
	touch(t, shader, "v0")

	ctx, cancel := context.WithCancel(context.Background())
	done := startWatcher(t, ctx, []string{shader}, func() error { return nil })
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatchSurvivesRerunError(t *testing.T) {
	dir := t.TempDir()
	shader := filepath.Join(dir, "fp.frag")
	touch(t, shader, "v0")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var runs atomic.Int32
	done := startWatcher(t, ctx, []string{shader}, func() error {
		runs.Add(1)
		return errors.New("shader does not compile")
	})

	touch(t, shader, "v1")
	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	select {
	case err := <-done:
		t.Fatalf("watcher stopped after a failed rerun: %v", err)
	default:
	}

	touch(t, shader, "v2")
	assert.Eventually(t, func() bool { return runs.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatchMissingDirectory(t *testing.T) {
	err := job.Watch(context.Background(), []string{filepath.Join(t.TempDir(), "nope", "fp.frag")}, testDebounce, quiet, func() error { return nil })
	require.Error(t, err)
}
