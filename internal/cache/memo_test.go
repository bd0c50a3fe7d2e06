package cache

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"titanicdash/domain/core"
	"titanicdash/domain/passenger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	key   string
	calls atomic.Int32
	fail  atomic.Bool
	delay time.Duration
}

func (p *countingProvider) Key() string { return p.key }

func (p *countingProvider) LoadDataset(ctx context.Context) (passenger.Dataset, error) {
	p.calls.Add(1)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.fail.Load() {
		return passenger.Dataset{}, core.NewDataUnavailableError(p.key, errors.New("unreachable"))
	}
	return passenger.Dataset{
		Records: []passenger.Record{
			{Age: 22, Sex: passenger.SexMale, Class: passenger.ThirdClass},
			{Age: 40, Sex: passenger.SexFemale, Class: passenger.FirstClass, Survived: true},
		},
		Meta: passenger.Meta{Key: p.key},
	}, nil
}

func TestMemoProviderLoadsOnce(t *testing.T) {
	inner := &countingProvider{key: "openml:titanic@1"}
	memo := NewMemoProvider(inner)
	assert.False(t, memo.Loaded())

	first, err := memo.LoadDataset(context.Background())
	require.NoError(t, err)
	second, err := memo.LoadDataset(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, first, second)
	assert.Same(t, &first.Records[0], &second.Records[0], "same table instance is returned")
	for _, r := range second.Records {
		assert.False(t, math.IsNaN(r.Age), "ages are defined")
	}
	assert.True(t, memo.Loaded())
}

func TestMemoProviderDoesNotCacheFailures(t *testing.T) {
	inner := &countingProvider{key: "openml:titanic@1"}
	inner.fail.Store(true)
	memo := NewMemoProvider(inner)

	_, err := memo.LoadDataset(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsDataUnavailable(err))

	inner.fail.Store(false)
	ds, err := memo.LoadDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestMemoProviderClear(t *testing.T) {
	inner := &countingProvider{key: "file:titanic.csv"}
	memo := NewMemoProvider(inner)

	_, err := memo.LoadDataset(context.Background())
	require.NoError(t, err)
	memo.Clear()
	assert.False(t, memo.Loaded())

	_, err = memo.LoadDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestMemoProviderCollapsesConcurrentLoads(t *testing.T) {
	inner := &countingProvider{key: "postgres:passengers", delay: 50 * time.Millisecond}
	memo := NewMemoProvider(inner)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := memo.LoadDataset(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), inner.calls.Load())
}

type contextAwareProvider struct {
	countingProvider
}

func (p *contextAwareProvider) LoadDataset(ctx context.Context) (passenger.Dataset, error) {
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return passenger.Dataset{}, ctx.Err()
	}
	return p.countingProvider.LoadDataset(context.Background())
}

func TestMemoProviderJoinedCallerOutlivesFirstCallerDeadline(t *testing.T) {
	inner := &contextAwareProvider{countingProvider{key: "openml:titanic@1", delay: 60 * time.Millisecond}}
	memo := NewMemoProvider(inner)

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = memo.LoadDataset(short)
	}()
	time.Sleep(5 * time.Millisecond)

	ds, err := memo.LoadDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	wg.Wait()

	assert.Equal(t, int32(1), inner.calls.Load())
	assert.True(t, memo.Loaded())
}
