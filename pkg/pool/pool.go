package pool

import (
	"context"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pool bounds the number of goroutines used for parallel searches.
//
// Functions needing a *Pool will work with a nil receiver, doing the equivalent
// work on the current goroutine instead.
type Pool struct {
	workerCount int
}

// NewPool creates a new pool, with a certain number of workers.
//
// If count <= 0, this will use the number of available CPUs instead.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}
	return &Pool{workerCount: count}
}

// Workers returns the number of goroutines used by Search.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workerCount
}

// searchAlone runs f until count results are found, or f fails.
func searchAlone(count int, f func() (interface{}, error)) ([]interface{}, error) {
	results := make([]interface{}, 0, count)
	for len(results) < count {
		res, err := f()
		if err != nil {
			return nil, err
		}
		if res != nil {
			results = append(results, res)
		}
	}
	return results, nil
}

// Search queries the function f, until count successes are found.
//
// f is supposed to try a single candidate, returning nil if that candidate isn't
// successful. An error returned by f stops every worker, and is returned by Search.
//
// The result will be a slice containing the first count successes.
func (p *Pool) Search(count int, f func() (interface{}, error)) ([]interface{}, error) {
	if p == nil || p.workerCount == 1 {
		return searchAlone(count, f)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errGroup, ctx := errgroup.WithContext(ctx)

	found := make(chan interface{})
	for i := 0; i < p.workerCount; i++ {
		errGroup.Go(func() error {
			for ctx.Err() == nil {
				res, err := f()
				if err != nil {
					return err
				}
				if res == nil {
					continue
				}
				select {
				case found <- res:
				case <-ctx.Done():
				}
			}
			return nil
		})
	}

	results := make([]interface{}, 0, count)
	done := make(chan error, 1)
	go func() { done <- errGroup.Wait() }()
	for len(results) < count {
		select {
		case res := <-found:
			results = append(results, res)
		case err := <-done:
			// every worker stopped before enough results were found
			return nil, err
		}
	}
	cancel()
	// drain workers so no goroutine outlives Search
	for {
		select {
		case <-found:
		case err := <-done:
			if err != nil && err != context.Canceled {
				return nil, err
			}
			return results, nil
		}
	}
}

// LockedReader wraps an io.Reader to be safe for concurrent reads.
//
// This type implements io.Reader, returning the same output.
//
// This means acquiring a lock whenever a read happens, so be aware of that
// for performance or concurrency reasons.
type LockedReader struct {
	reader io.Reader
	m      sync.Mutex
}

// NewLockedReader creates a LockedReader by wrapping an underlying value.
func NewLockedReader(r io.Reader) *LockedReader {
	// Intentionally not initializing m, since the zero value is ok
	return &LockedReader{reader: r}
}

// Read implements io.Reader for LockedReader.
//
// Concurrent callers never read the same bytes twice, but which caller receives
// which part of the stream is raced.
func (r *LockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.reader.Read(p)
}
