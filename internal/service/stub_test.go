package service

import (
	"context"
	"sync"
	"time"

	"webrecon/internal/process"
)

type call struct {
	name string
	args []string
}

// stubRunner returns canned output per tool name and records every call.
type stubRunner struct {
	mu      sync.Mutex
	calls   []call
	results map[string]process.Result
	errs    map[string]error
	block   map[string]bool
}

func newStubRunner() *stubRunner {
	return &stubRunner{
		results: map[string]process.Result{},
		errs:    map[string]error{},
		block:   map[string]bool{},
	}
}

func (r *stubRunner) Run(ctx context.Context, name string, args []string, timeout time.Duration) (process.Result, error) {
	r.mu.Lock()
	r.calls = append(r.calls, call{name: name, args: append([]string(nil), args...)})
	block := r.block[name]
	res, err := r.results[name], r.errs[name]
	r.mu.Unlock()

	if block {
		<-ctx.Done()
		return process.Result{ExitCode: -1}, ctx.Err()
	}
	return res, err
}

func (r *stubRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type stubFetcher struct {
	mu     sync.Mutex
	calls  int
	result *FetchResult
	err    error
}

func (f *stubFetcher) Fetch(ctx context.Context, targetURL string) (*FetchResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
