package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"wire/enums.go", true},
		{"wire/enums_test.go", false},
		{"wire/wire_enumarg.go", false},
		{"wire/README.md", false},
		{"enumarg.yaml", true},
		{"proj/enumarg.toml", true},
		{"proj/other.yaml", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Relevant(tt.path))
		})
	}
}

func TestWatcher_Run_RegeneratesOnChange(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32

	done := make(chan error, 1)
	go func() {
		done <- New([]string{dir}, WithDebounce(20*time.Millisecond)).Run(ctx, func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 5*time.Millisecond,
		"initial run")

	// ignored: generated output
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wire_enumarg.go"), []byte("package wire\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enums.go"), []byte("package wire\n"), 0o644))

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond,
		"run after change")

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_Run_SkipInitialRun(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32

	done := make(chan error, 1)
	go func() {
		w := New([]string{dir}, WithDebounce(20*time.Millisecond), SkipInitialRun())
		done <- w.Run(ctx, func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}()

	assert.Never(t, func() bool { return calls.Load() > 0 }, 150*time.Millisecond, 5*time.Millisecond,
		"no call before a change")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "enums.go"), []byte("package wire\n"), 0o644))

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 5*time.Millisecond,
		"one run after change")

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_Run_MissingDir(t *testing.T) {
	err := New([]string{filepath.Join(t.TempDir(), "absent")}).Run(context.Background(), func(context.Context) error {
		return nil
	})
	require.ErrorContains(t, err, "watching")
}
