// Package batch hashes a list of inputs on a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"mdsum/internal/digest"
	"mdsum/internal/hash"
	"mdsum/internal/progress"
	"mdsum/internal/source"
)

// Options configures a Run.
type Options struct {
	Algorithm digest.Algorithm
	Format    hash.Format
	ChunkSize int
	Jobs      int
	Stdin     io.Reader

	// Progress receives throughput reports. Ignored unless Jobs is 1 or
	// there is a single input.
	Progress io.Writer
	Logger   zerolog.Logger
}

// Result is the outcome for one input.
type Result struct {
	Path   string
	Digest string
	Bytes  uint64
	Blocks uint64
	Err    error
}

// Run hashes every path and returns results in the order of paths. The
// returned error aggregates the per-input failures.
func Run(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	results := make([]Result, len(paths))
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	if jobs > len(paths) {
		jobs = len(paths)
	}
	showProgress := opts.Progress != nil && jobs <= 1

	if jobs <= 1 {
		for i, path := range paths {
			results[i] = hashOne(ctx, path, opts, showProgress)
		}
	} else {
		// Every "-" shares one stdin reader, so those entries stay on this
		// goroutine and in argument order.
		for i, path := range paths {
			if path == source.Stdin {
				results[i] = hashOne(ctx, path, opts, false)
			}
		}
		wp := workerpool.New(jobs)
		for i, path := range paths {
			if path == source.Stdin {
				continue
			}
			i, path := i, path
			wp.Submit(func() {
				results[i] = hashOne(ctx, path, opts, false)
			})
		}
		wp.StopWait()
	}

	var merr *multierror.Error
	for _, r := range results {
		if r.Err != nil {
			merr = multierror.Append(merr, r.Err)
		}
	}
	return results, merr.ErrorOrNil()
}

func hashOne(ctx context.Context, path string, opts Options, showProgress bool) Result {
	res := Result{Path: path}
	log := opts.Logger.With().Str("path", path).Str("algorithm", opts.Algorithm.String()).Logger()
	started := time.Now()

	in, err := source.Open(path, opts.Stdin)
	if err != nil {
		res.Err = err
		log.Error().Err(err).Msg("open input")
		return res
	}
	defer func() { _ = in.Close() }()

	h, err := hash.New(opts.Algorithm)
	if err != nil {
		res.Err = err
		return res
	}

	feedOpts := source.Options{ChunkSize: opts.ChunkSize}
	var reporter *progress.Reporter
	if showProgress {
		reporter = progress.NewReporter(opts.Progress, path, in.Size)
		feedOpts.OnChunk = reporter.Update
	}

	n, err := source.Feed(ctx, h, in, feedOpts)
	res.Bytes = n
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
		log.Error().Err(err).Uint64("bytes", n).Msg("read input")
		return res
	}

	res.Digest, err = h.Render(opts.Format)
	if err != nil {
		res.Err = err
		return res
	}
	res.Blocks = h.Blocks()
	if reporter != nil {
		reporter.Done(n)
	}

	log.Debug().
		Uint64("bytes", n).
		Uint64("blocks", res.Blocks).
		Dur("elapsed", time.Since(started)).
		Msg("hashed input")
	return res
}
