package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// SharedSource lets many sessions share one upstream fetch. Concurrent callers
// wait on the same in-flight request and the first successful result is
// reused for the lifetime of the process. Failures are not cached.
type SharedSource struct {
	src    Source
	group  singleflight.Group
	mu     sync.RWMutex
	cached []Currency
}

// NewSharedSource wraps src.
func NewSharedSource(src Source) *SharedSource {
	return &SharedSource{src: src}
}

// Fetch returns the cached currencies or performs the shared fetch. The
// shared fetch is detached from ctx and bounded only by the source's own
// timeout. A cancelled caller stops waiting with a network failure while the
// other callers keep waiting on the same fetch.
func (s *SharedSource) Fetch(ctx context.Context) ([]Currency, error) {
	if cached, ok := s.load(); ok {
		return cached, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, networkFailure(err)
	}
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan("catalog", func() (any, error) {
		if cached, ok := s.load(); ok {
			return cached, nil
		}
		currencies, err := s.src.Fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cached = currencies
		s.mu.Unlock()
		return currencies, nil
	})

	select {
	case <-ctx.Done():
		return nil, networkFailure(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		currencies := res.Val.([]Currency)
		out := make([]Currency, len(currencies))
		copy(out, currencies)
		return out, nil
	}
}

func (s *SharedSource) load() ([]Currency, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil {
		return nil, false
	}
	out := make([]Currency, len(s.cached))
	copy(out, s.cached)
	return out, true
}
