package catalog_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/amirasaad/tokenswap/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Fetch(ctx context.Context) ([]catalog.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Currency), args.Error(1)
}

func TestSharedSource_CachesSuccess(t *testing.T) {
	src := new(MockSource)
	src.On("Fetch", mock.Anything).Return([]catalog.Currency{cur("USD", "1")}, nil).Once()
	shared := catalog.NewSharedSource(src)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := shared.Fetch(context.Background())
			assert.NoError(t, err)
			assert.Len(t, got, 1)
		}()
	}
	wg.Wait()

	src.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestSharedSource_DoesNotCacheFailure(t *testing.T) {
	src := new(MockSource)
	src.On("Fetch", mock.Anything).Return(nil, errors.New("down")).Once()
	src.On("Fetch", mock.Anything).Return([]catalog.Currency{cur("USD", "1")}, nil).Once()
	shared := catalog.NewSharedSource(src)

	_, err := shared.Fetch(context.Background())
	require.Error(t, err)

	got, err := shared.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	src.AssertExpectations(t)
}

// blockingSource holds the fetch until release is closed and fails if the
// context it was handed has been cancelled by then.
type blockingSource struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (b *blockingSource) Fetch(ctx context.Context) ([]catalog.Currency, error) {
	b.calls.Add(1)
	close(b.started)
	<-b.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []catalog.Currency{cur("USD", "1")}, nil
}

func TestSharedSource_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	shared := catalog.NewSharedSource(src)

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := shared.Fetch(ctx)
		firstErr <- err
	}()
	<-src.started

	type result struct {
		got []catalog.Currency
		err error
	}
	second := make(chan result, 1)
	go func() {
		got, err := shared.Fetch(context.Background())
		second <- result{got, err}
	}()

	cancel()
	err := <-firstErr
	assert.ErrorIs(t, err, catalog.ErrNetworkFailure)
	assert.ErrorIs(t, err, context.Canceled)

	close(src.release)
	res := <-second
	require.NoError(t, res.err)
	assert.Len(t, res.got, 1)
	assert.Equal(t, int32(1), src.calls.Load())

	got, err := shared.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSharedSource_AlreadyCancelled(t *testing.T) {
	src := new(MockSource)
	shared := catalog.NewSharedSource(src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := shared.Fetch(ctx)
	assert.ErrorIs(t, err, catalog.ErrNetworkFailure)
	src.AssertNotCalled(t, "Fetch", mock.Anything)
}
