package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunOnce(t *testing.T) {
	s := NewScheduler()

	var ran int32
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})
	s.AddJob("fails", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())
	assert.Equal(t, int32(2), atomic.LoadInt32(&ran))
}

func TestSchedulerStopWaitsForJobs(t *testing.T) {
	s := NewScheduler()

	var ran int32
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})

	s.Start()
	s.Stop()

	// Jobs run once immediately on start.
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
}
