package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRejectsBeforeStart(t *testing.T) {
	q := NewQueue("test", func(context.Context, Job) error { return nil }, QueueConfig{})
	accepted, err := q.Enqueue(Job{ID: "a"})
	require.Error(t, err)
	assert.False(t, accepted)
	assert.Zero(t, q.Pending())
}

func TestQueueProcessesJobs(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)
	var seen int32
	q := NewQueue("test", func(_ context.Context, job Job) error {
		atomic.AddInt32(&seen, 1)
		wg.Done()
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	_, err := q.Enqueue(Job{ID: "a"})
	require.NoError(t, err)
	_, err = q.Enqueue(Job{ID: "b"})
	require.NoError(t, err)

	wg.Wait()
	assert.EqualValues(t, 2, atomic.LoadInt32(&seen))
}

func TestQueueCoalescesWaitingDuplicates(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{}, 4)
	var runs int32
	q := NewQueue("test", func(_ context.Context, job Job) error {
		atomic.AddInt32(&runs, 1)
		started <- struct{}{}
		<-block
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 4})
	q.Start(context.Background())
	defer q.Stop()

	_, err := q.Enqueue(Job{ID: "first"})
	require.NoError(t, err)
	<-started

	accepted, err := q.Enqueue(Job{ID: "dup"})
	require.NoError(t, err)
	assert.True(t, accepted)
	accepted, err = q.Enqueue(Job{ID: "dup"})
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, 1, q.Pending())

	close(block)
	<-started
	require.Eventually(t, func() bool { return q.Pending() == 0 }, time.Second, 10*time.Millisecond)
	assert.EqualValues(t, 2, atomic.LoadInt32(&runs))
}

func TestQueueDoesNotRetryPermanentFailures(t *testing.T) {
	var runs int32
	q := NewQueue("test", func(context.Context, Job) error {
		atomic.AddInt32(&runs, 1)
		return Permanent(errors.New("course gone"))
	}, QueueConfig{RetryDelay: 5 * time.Millisecond, MaxRetries: 3})
	q.Start(context.Background())
	defer q.Stop()

	_, err := q.Enqueue(Job{ID: "x"})
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 1, atomic.LoadInt32(&runs))
}

func TestQueueRetriesTransientFailures(t *testing.T) {
	var runs int32
	q := NewQueue("test", func(context.Context, Job) error {
		if atomic.AddInt32(&runs, 1) < 3 {
			return errors.New("db busy")
		}
		return nil
	}, QueueConfig{RetryDelay: 5 * time.Millisecond, MaxRetries: 3})
	q.Start(context.Background())
	defer q.Stop()

	_, err := q.Enqueue(Job{ID: "x"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&runs) == 3 }, time.Second, 5*time.Millisecond)
}

func TestPermanentNil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}
