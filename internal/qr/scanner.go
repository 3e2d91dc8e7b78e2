package qr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-otp-migrate/internal/logger"
	"github.com/MKhiriev/go-otp-migrate/internal/workers"
)

// Scanner decodes many images concurrently and flattens their attempts into
// one list in input order.
type Scanner struct {
	decoder ImageDecoder
	workers int
	timeout time.Duration
	log     *logger.Logger
}

// NewScanner returns a Scanner running at most workerCount decodes at a time.
// A positive timeout bounds the decoding of each image.
func NewScanner(decoder ImageDecoder, workerCount int, timeout time.Duration, log *logger.Logger) *Scanner {
	return &Scanner{
		decoder: decoder,
		workers: workerCount,
		timeout: timeout,
		log:     log,
	}
}

// textPrefix marks inputs that are already decoded URLs rather than images.
const textPrefix = "otpauth"

// Scan decodes every image in inputs. Inputs starting with "otpauth" (in any
// letter case) are taken as already decoded text. Images that cannot be read
// produce a single Result carrying the error; they never stop the other
// images.
func (s *Scanner) Scan(ctx context.Context, inputs []string) []Result {
	batch := workers.New[[]Result](s.workers)
	for _, input := range inputs {
		if isText(input) {
			batch.Add(workers.JobFunc[[]Result](func(context.Context) []Result {
				return []Result{{Source: input, Text: input}}
			}))
			continue
		}
		batch.Add(workers.JobFunc[[]Result](func(ctx context.Context) []Result {
			return s.scanOne(ctx, input)
		}))
	}

	var results []Result
	for _, found := range batch.Run(ctx) {
		results = append(results, found...)
	}

	return results
}

type decodeOutcome struct {
	results []Result
	err     error
}

func (s *Scanner) scanOne(ctx context.Context, path string) []Result {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// the decoder picks its logger up from ctx
	ctx = s.log.GetChildLogger("decoder").WithContext(ctx)

	start := time.Now()
	done := make(chan decodeOutcome, 1)
	go func() {
		results, err := s.decoder.Decode(ctx, path)
		done <- decodeOutcome{results: results, err: err}
	}()

	abandon := func() []Result {
		s.log.Warn().Str("image", path).Dur("elapsed", time.Since(start)).Msg("QR decoding abandoned")
		return []Result{{Source: path, Err: fmt.Errorf("%w: %w", ErrDecodeTimeout, ctx.Err())}}
	}

	select {
	case <-ctx.Done():
		return abandon()
	case out := <-done:
		if out.err != nil && ctx.Err() != nil {
			return abandon()
		}
		if out.err != nil {
			s.log.Debug().Err(out.err).Str("image", path).Msg("image could not be decoded")
			return []Result{{Source: path, Err: out.err}}
		}
		s.log.Debug().Str("image", path).Int("symbols", len(out.results)).Dur("elapsed", time.Since(start)).Msg("image decoded")
		return out.results
	}
}

func isText(input string) bool {
	return len(input) >= len(textPrefix) && strings.EqualFold(input[:len(textPrefix)], textPrefix)
}
