// =============================================================================
// UPN to EPC Converter - Batch Runner
// =============================================================================
//
// RunBatch fans a list of files out to Converters, at most MaxConcurrency at
// a time. Results keep the order of the input paths.
//
// =============================================================================

package converter

import (
	"context"
	"sync"

	"github.com/fklezin/qr.upn/pkg/utils"
	"github.com/rs/zerolog"
)

// BatchOptions controls a batch run.
type BatchOptions struct {
	Options

	// MaxConcurrency bounds the number of files converted at once.
	MaxConcurrency int

	// StopOnError stops starting new files after the first failure.
	// Files already running finish normally.
	StopOnError bool
}

// RunBatch converts every file in paths and returns one Result per path, in
// the same order. Files that were never started because ctx was cancelled or
// StopOnError tripped have a zero Result apart from FilePath and Error.
func RunBatch(ctx context.Context, paths []string, files *utils.FileManager, opts BatchOptions, logger zerolog.Logger) []Result {
	limit := opts.MaxConcurrency
	if limit < 1 {
		limit = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Result, len(paths))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, path := range paths {
		select {
		case <-ctx.Done():
			results[i] = Result{FilePath: path, Error: ctx.Err()}
			continue
		case sem <- struct{}{}:
		}

		// The semaphore may win the race against a cancellation.
		if ctx.Err() != nil {
			<-sem
			results[i] = Result{FilePath: path, Error: ctx.Err()}
			continue
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			results[i] = New(path, files, opts.Options, logger).Run()
			if !results[i].Success && opts.StopOnError {
				cancel()
			}
		}(i, path)
	}

	wg.Wait()
	return results
}
