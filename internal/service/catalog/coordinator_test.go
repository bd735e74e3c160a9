package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"modelhub/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_ConcurrentCallersShareOneFetch(t *testing.T) {
	c := NewCoordinator()
	gate := make(chan struct{})
	var calls atomic.Int32
	fn := func(ctx context.Context) (ProviderCatalog, error) {
		calls.Add(1)
		<-gate
		return ProviderCatalog{Provider: core.ProviderOpenAI, Models: []ModelRecord{{ID: "m1"}}}, nil
	}

	const n = 8
	results := make([]ProviderCatalog, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, _, err := c.FetchOnce(context.Background(), core.ProviderOpenAI, fn)
			assert.NoError(t, err)
			results[i] = res
		}()
	}

	require.Eventually(t, func() bool { return c.Waiters(core.ProviderOpenAI) == n }, time.Second, time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, res := range results {
		assert.Equal(t, []string{"m1"}, modelIDs(res))
	}
	assert.Equal(t, 0, c.Waiters(core.ProviderOpenAI))
}

func TestCoordinator_ErrorDeliveredToAllWaiters(t *testing.T) {
	c := NewCoordinator()
	gate := make(chan struct{})
	boom := errors.New("boom")
	fn := func(ctx context.Context) (ProviderCatalog, error) {
		<-gate
		return ProviderCatalog{}, boom
	}

	errs := make(chan error, 3)
	for i := 0; i < 3; i++ {
		go func() {
			_, _, err := c.FetchOnce(context.Background(), core.ProviderGroq, fn)
			errs <- err
		}()
	}
	require.Eventually(t, func() bool { return c.Waiters(core.ProviderGroq) == 3 }, time.Second, time.Millisecond)
	close(gate)
	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, <-errs, boom)
	}
}

func TestCoordinator_DepartingCallerDoesNotCancelFetch(t *testing.T) {
	c := NewCoordinator()
	gate := make(chan struct{})
	var fetchCtxErr atomic.Value
	fn := func(ctx context.Context) (ProviderCatalog, error) {
		<-gate
		if err := ctx.Err(); err != nil {
			fetchCtxErr.Store(err)
		}
		return ProviderCatalog{Provider: core.ProviderMistral, Models: []ModelRecord{{ID: "x"}}}, nil
	}

	leaverCtx, cancel := context.WithCancel(context.Background())
	leaverDone := make(chan error, 1)
	go func() {
		_, _, err := c.FetchOnce(leaverCtx, core.ProviderMistral, fn)
		leaverDone <- err
	}()
	stayerDone := make(chan ProviderCatalog, 1)
	go func() {
		res, _, err := c.FetchOnce(context.Background(), core.ProviderMistral, fn)
		assert.NoError(t, err)
		stayerDone <- res
	}()

	require.Eventually(t, func() bool { return c.Waiters(core.ProviderMistral) == 2 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-leaverDone, context.Canceled)

	close(gate)
	res := <-stayerDone
	assert.Equal(t, []string{"x"}, modelIDs(res))
	assert.Nil(t, fetchCtxErr.Load(), "shared fetch must not observe the departing caller's cancellation")
}

func TestCoordinator_DifferentProvidersDoNotCoalesce(t *testing.T) {
	c := NewCoordinator()
	var calls atomic.Int32
	fn := func(ctx context.Context) (ProviderCatalog, error) {
		calls.Add(1)
		return ProviderCatalog{}, nil
	}
	_, _, err := c.FetchOnce(context.Background(), core.ProviderOpenAI, fn)
	require.NoError(t, err)
	_, _, err = c.FetchOnce(context.Background(), core.ProviderAnthropic, fn)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCoordinator_OnWaitReportsCounts(t *testing.T) {
	c := NewCoordinator()
	var mu sync.Mutex
	var seen []int
	c.onWait = func(p core.ProviderName, n int) {
		mu.Lock()
		seen = append(seen, n)
		mu.Unlock()
	}
	_, _, err := c.FetchOnce(context.Background(), core.ProviderXAI, func(ctx context.Context) (ProviderCatalog, error) {
		return ProviderCatalog{}, nil
	})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 0}, seen)
}

func TestCoordinator_WaiterGaugeFollowsCount(t *testing.T) {
	c := NewCoordinator()
	var mu sync.Mutex
	var seen []int
	c.onWait = func(p core.ProviderName, n int) {
		mu.Lock()
		seen = append(seen, n)
		mu.Unlock()
	}
	gate := make(chan struct{})
	fn := func(ctx context.Context) (ProviderCatalog, error) {
		<-gate
		return ProviderCatalog{Provider: core.ProviderGroq}, nil
	}

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := c.FetchOnce(context.Background(), core.ProviderGroq, fn)
			assert.NoError(t, err)
		}()
	}
	require.Eventually(t, func() bool { return c.Waiters(core.ProviderGroq) == n }, time.Second, time.Millisecond)
	close(gate)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2*n)
	// 每次通知都只比前一次差 1，最後一定回到 0
	prev := 0
	for i, v := range seen {
		assert.Equal(t, 1, abs(v-prev), "step %d: %d -> %d", i, prev, v)
		prev = v
	}
	assert.Equal(t, 0, seen[len(seen)-1])
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
