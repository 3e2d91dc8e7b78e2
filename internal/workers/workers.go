package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Workers is an ordered batch of jobs executed with a concurrency limit.
type Workers[R any] struct {
	limit int
	jobs  []Job[R]
}

// New returns a batch running at most limit jobs at a time.
// A limit below 1 runs the jobs one after another.
func New[R any](limit int, jobs ...Job[R]) *Workers[R] {
	if limit < 1 {
		limit = 1
	}

	return &Workers[R]{limit: limit, jobs: jobs}
}

// Add appends a job to the batch.
func (w *Workers[R]) Add(job Job[R]) {
	w.jobs = append(w.jobs, job)
}

// Run executes every job and returns the results in the order the jobs were
// added. It blocks until all jobs return; jobs observe ctx themselves.
func (w *Workers[R]) Run(ctx context.Context) []R {
	results := make([]R, len(w.jobs))

	var g errgroup.Group
	g.SetLimit(w.limit)
	for i, job := range w.jobs {
		g.Go(func() error {
			results[i] = job.Run(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
