package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/domain"
)

// Runner executes one job to completion and returns the output path.
type Runner interface {
	Extract(ctx context.Context, job domain.Job) (string, error)
}

// Scheduler runs a batch of jobs through a bounded worker pool and collects
// one result per job in input order.
type Scheduler struct {
	runner          Runner
	workers         int
	continueOnError bool
	onResult        func(domain.Result)
	mu              sync.Mutex
}

// New creates a Scheduler with at most workers concurrently-active jobs.
func New(runner Runner, workers int, continueOnError bool) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	return &Scheduler{
		runner:          runner,
		workers:         workers,
		continueOnError: continueOnError,
	}
}

// OnResult sets a callback invoked once per completed or skipped job, in
// completion order. Calls are serialized.
func (s *Scheduler) OnResult(fn func(domain.Result)) {
	s.onResult = fn
}

// Run executes the jobs and returns a summary with exactly one result per
// job, ordered by input position. Without continue-on-error, the first
// recorded failure stops further dispatch; jobs already handed to a worker
// finish normally and undispatched jobs are recorded as skipped.
func (s *Scheduler) Run(ctx context.Context, jobs []domain.Job) domain.Summary {
	results := make([]domain.Result, len(jobs))
	dispatched := make([]bool, len(jobs))

	workers := s.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	jobCh := make(chan domain.Job)
	var failed atomic.Bool
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				// A failure recorded while the dispatcher was already parked
				// on the send still hands that job to a worker; honor the
				// halt here instead of executing it.
				if !s.continueOnError && failed.Load() {
					res := domain.Result{Job: job, Err: domain.ErrSkipped}
					results[job.Index] = res
					s.notify(res)
					continue
				}
				start := time.Now()
				path, err := s.runner.Extract(ctx, job)
				res := domain.Result{
					Job:        job,
					OutputPath: path,
					Err:        err,
					Duration:   time.Since(start),
				}
				if err != nil {
					failed.Store(true)
				}
				results[job.Index] = res
				s.notify(res)
			}
		}()
	}

	skipReason := domain.ErrSkipped
dispatch:
	for i, job := range jobs {
		if !s.continueOnError && failed.Load() {
			break
		}
		select {
		case <-ctx.Done():
			skipReason = domain.ErrCanceled
			break dispatch
		case jobCh <- job:
			dispatched[i] = true
		}
	}
	close(jobCh)
	wg.Wait()

	// Every input URL gets a result, dispatched or not.
	for i, job := range jobs {
		if !dispatched[i] {
			res := domain.Result{Job: job, Err: skipReason}
			results[i] = res
			s.notify(res)
		}
	}

	return domain.Summary{Results: results}
}

func (s *Scheduler) notify(res domain.Result) {
	if s.onResult == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResult(res)
}
