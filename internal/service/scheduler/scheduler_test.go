package scheduler

import (
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_Register(t *testing.T) {
	s := New(slog.New(slog.DiscardHandler))

	assert.NoError(t, s.Register("sweep", "@every 1m", func() {}))
	assert.NoError(t, s.Register("hourly", "0 * * * *", func() {}))

	err := s.Register("broken", "not a schedule", func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register job broken")
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := New(slog.New(slog.DiscardHandler))

	var runs atomic.Int32
	require.NoError(t, s.Register("tick", "@every 10ms", func() { runs.Add(1) }))

	s.Start()
	defer s.Stop()

	deadline := time.After(2 * time.Second)
	for runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("job never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestScheduler_StopWaitsForCompletion(t *testing.T) {
	s := New(slog.New(slog.DiscardHandler))
	s.Start()
	s.Stop()
}
