// Package workers runs independent jobs on a bounded number of goroutines
// and collects their results in submission order.
//
// The application uses it to decode several QR images at once; decoding is
// the only slow step of a dump and each image is independent.
package workers

import "context"

// Job is a unit of work producing a single result. Failures are part of R,
// so one failing job never cancels its siblings.
//
// Example implementation:
//
//	type decodeJob struct{ path string }
//
//	func (j decodeJob) Run(ctx context.Context) []qr.Result {
//	    // decode j.path
//	}
type Job[R any] interface {
	Run(ctx context.Context) R
}

// JobFunc adapts an ordinary function to the Job interface.
type JobFunc[R any] func(ctx context.Context) R

// Run calls f(ctx).
func (f JobFunc[R]) Run(ctx context.Context) R {
	return f(ctx)
}
