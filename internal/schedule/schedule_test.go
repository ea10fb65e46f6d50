package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/babarot/tidyup/internal/utils/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		runs     int32
		inFlight int32
		overlap  bool
		waits    []time.Duration
	)

	s := New(time.Hour, WithLogger(log.Discard()), WithRetryDelay(time.Minute))
	s.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}

	err := s.Run(ctx, func(context.Context) error {
		if atomic.AddInt32(&inFlight, 1) > 1 {
			overlap = true
		}
		defer atomic.AddInt32(&inFlight, -1)

		n := atomic.AddInt32(&runs, 1)
		switch n {
		case 2:
			return errors.New("boom")
		case 3:
			cancel()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int32(3), runs)
	assert.False(t, overlap)
	assert.Equal(t, []time.Duration{time.Hour, time.Minute, time.Hour}, waits)
}

func TestSchedulerStopsOnFailureAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := New(time.Millisecond, WithLogger(log.Discard()))
	runs := 0
	err := s.Run(ctx, func(ctx context.Context) error {
		runs++
		cancel()
		return ctx.Err()
	})
	require.NoError(t, err)
	assert.Equal(t, 1, runs)
}

func TestSchedulerRealTimer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s := New(5*time.Millisecond, WithLogger(log.Discard()))
	runs := 0
	err := s.Run(ctx, func(context.Context) error {
		runs++
		if runs == 3 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, runs)
}

func TestSchedulerRejectsZeroInterval(t *testing.T) {
	err := New(0).Run(context.Background(), func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "6", want: 6 * time.Hour},
		{in: "0.5", want: 30 * time.Minute},
		{in: "6 hours", want: 6 * time.Hour},
		{in: "1 day", want: 24 * time.Hour},
		{in: "30 minutes", want: 30 * time.Minute},
		{in: "0", wantErr: true},
		{in: "-2", wantErr: true},
		{in: "soon", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "-Inf", wantErr: true},
		{in: "1e20", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInterval(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
