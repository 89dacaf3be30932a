package interpolate

import (
	"fmt"
	"io"
	"runtime"
	"sync"
)

// ProcessOptions controls batch tuple processing and error handling.
type ProcessOptions struct {
	// Parallel enables concurrent tuple processing.
	// When true, tuples are augmented by multiple worker goroutines.
	// Output order across tuples is then unspecified; each tuple's
	// anchors still reach the sink contiguously and in order.
	Parallel bool

	// Workers specifies the number of worker goroutines.
	// If 0, defaults to runtime.NumCPU().
	// Only used when Parallel is true.
	Workers int

	// SkipErrors causes processing to continue when individual tuples
	// fail. Failed tuples are skipped and their errors collected.
	// When false, the first error stops processing.
	SkipErrors bool

	// Progress is an optional callback invoked after each tuple is
	// processed (successfully or with error), with counts so far.
	Progress func(done, total int)

	// ErrorLog is an optional writer for per-tuple error details.
	ErrorLog io.Writer
}

// DefaultProcessOptions returns processing options with sensible defaults.
func DefaultProcessOptions() ProcessOptions {
	return ProcessOptions{
		Parallel:   false,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}

// Process augments a set of tuples against one sink.
//
// By default tuples are processed sequentially in input order. With
// opts.Parallel, a worker pool processes disjoint tuples concurrently;
// each worker buffers its tuple's anchors and flushes them to the sink
// under a lock, so the sink always sees whole tuples and never interleaved
// ones.
//
// Returns the errors of failed tuples (empty on full success). With
// SkipErrors false, processing stops at the first error.
func Process(aug *Augmenter, tuples []LookupTuple, sink Sink, opts ProcessOptions) []error {
	if len(tuples) == 0 {
		return nil
	}

	if !opts.Parallel {
		return processSerial(aug, tuples, sink, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(tuples) {
		workers = len(tuples)
	}

	var (
		sinkMu sync.Mutex
		errMu  sync.Mutex
		wg     sync.WaitGroup

		errs []error
		done int
		stop bool
	)

	jobs := make(chan LookupTuple)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tuple := range jobs {
				buffer := &bufferSink{}
				err := aug.Augment(tuple, buffer)
				if err == nil {
					sinkMu.Lock()
					err = buffer.flush(sink)
					sinkMu.Unlock()
				}

				errMu.Lock()
				done++
				if err != nil {
					errs = append(errs, err)
					if opts.ErrorLog != nil {
						fmt.Fprintf(opts.ErrorLog, "tuple failed: %v\n", err)
					}
					if !opts.SkipErrors {
						stop = true
					}
				}
				if opts.Progress != nil {
					opts.Progress(done, len(tuples))
				}
				errMu.Unlock()
			}
		}()
	}

	for _, tuple := range tuples {
		errMu.Lock()
		stopped := stop
		errMu.Unlock()
		if stopped {
			break
		}
		jobs <- tuple
	}
	close(jobs)
	wg.Wait()

	return errs
}

// processSerial processes tuples one after another in input order.
func processSerial(aug *Augmenter, tuples []LookupTuple, sink Sink, opts ProcessOptions) []error {
	var errs []error
	for i, tuple := range tuples {
		err := aug.Augment(tuple, sink)
		if err != nil {
			errs = append(errs, err)
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "tuple failed: %v\n", err)
			}
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(tuples))
		}
		if err != nil && !opts.SkipErrors {
			return errs
		}
	}
	return errs
}

// bufferSink accumulates one tuple's anchors in memory. The buffer is
// bounded by the tuple's own size: its batch plus the vertex anchors of
// its streets.
type bufferSink struct {
	anchors []Anchor
}

func (b *bufferSink) WriteAnchor(a Anchor) error {
	b.anchors = append(b.anchors, a)
	return nil
}

func (b *bufferSink) EndTuple() error {
	return nil
}

// flush writes the buffered anchors and the tuple boundary to the real sink.
func (b *bufferSink) flush(sink Sink) error {
	for _, a := range b.anchors {
		if err := sink.WriteAnchor(a); err != nil {
			return err
		}
	}
	return sink.EndTuple()
}
