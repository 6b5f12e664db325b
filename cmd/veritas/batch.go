package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/highlight"
	"github.com/fwojciec/veritas/jsonl"
	"github.com/fwojciec/veritas/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxRetries is the default number of detection attempts per sample.
const DefaultMaxRetries = 3

// BatchRunner runs detection over many samples and writes one JSONL result
// per sample, in input order.
type BatchRunner struct {
	// Output receives results when OutputPath is empty.
	Output io.Writer
	// OutputPath, when set, receives results through Saver.
	OutputPath string
	Saver      veritas.SampleResultSaver
	ErrOutput  io.Writer

	Samples     []veritas.Sample
	Detector    veritas.Detector
	Highlighter veritas.Highlighter
	Settings    veritas.Settings
	MaxRetries  int
	// Workers sets the number of parallel workers. If <= 1, runs sequentially.
	Workers int
	// BackoffFn returns the backoff duration for a given attempt (1-indexed).
	// If nil, uses exponential backoff (1s, 2s, 4s...).
	BackoffFn func(attempt int) time.Duration
}

// sampleOutcome holds the result of detecting a single sample.
type sampleOutcome struct {
	result  *veritas.SampleResult
	skipMsg string
}

// Run detects every sample. Samples that fail after MaxRetries attempts are
// skipped with a warning.
func (b *BatchRunner) Run(ctx context.Context) error {
	workers := max(b.Workers, 1)
	outcomes := make([]sampleOutcome, len(b.Samples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range b.Samples {
		sample := b.Samples[i]
		g.Go(func() error {
			outcomes[i] = b.detect(gctx, sample)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// gctx is always done after Wait, so check the caller's context instead.
	if err := ctx.Err(); err != nil {
		return err
	}

	// Write results in order
	errOut := b.ErrOutput
	if errOut == nil {
		errOut = os.Stderr
	}
	for _, o := range outcomes {
		if o.result == nil {
			fmt.Fprint(errOut, o.skipMsg)
			continue
		}
		if err := b.write(*o.result); err != nil {
			return err
		}
	}
	return nil
}

func (b *BatchRunner) write(r veritas.SampleResult) error {
	if b.OutputPath != "" {
		return b.Saver.Save(b.OutputPath, r)
	}
	return json.NewEncoder(b.Output).Encode(r)
}

func (b *BatchRunner) detect(ctx context.Context, sample veritas.Sample) sampleOutcome {
	maxRetries := b.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	if err := veritas.ValidateText("text", sample.Text); err != nil {
		return sampleOutcome{skipMsg: fmt.Sprintf("warning: skipping sample %s: %s\n", sample.ID, errorMessage(err))}
	}
	if veritas.IsBlank(sample.Text) {
		return sampleOutcome{skipMsg: fmt.Sprintf("warning: skipping sample %s: empty text\n", sample.ID)}
	}

	result, attempts, err := b.detectWithRetry(ctx, sample.Text, maxRetries)
	if err != nil {
		return sampleOutcome{skipMsg: fmt.Sprintf("warning: skipping sample %s after %d %s: %v\n", sample.ID, attempts, plural(attempts, "attempt", "attempts"), err)}
	}

	found := veritas.HighlightedValues(b.Highlighter.Highlight(sample.Text, result.Phrases))
	if found == nil {
		found = []string{}
	}
	return sampleOutcome{result: &veritas.SampleResult{
		ID:           sample.ID,
		Result:       result,
		PhrasesFound: found,
	}}
}

// detectWithRetry attempts detection with exponential backoff. It returns the
// number of attempts made.
func (b *BatchRunner) detectWithRetry(ctx context.Context, text string, maxRetries int) (*veritas.DetectionResult, int, error) {
	backoffFn := b.BackoffFn
	if backoffFn == nil {
		backoffFn = func(attempt int) time.Duration {
			return time.Duration(1<<(attempt-1)) * time.Second
		}
	}

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= maxRetries; attempt++ {
		// Check for context cancellation before each attempt
		select {
		case <-ctx.Done():
			return nil, attempts, ctx.Err()
		default:
		}

		attempts = attempt
		result, err := b.Detector.Detect(ctx, text, b.Settings)
		if err == nil {
			return result, attempts, nil
		}
		lastErr = err

		// Invalid input fails the same way every time.
		if veritas.ErrorCode(err) == veritas.EINVALID {
			break
		}

		// Don't sleep after last attempt
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return nil, attempts, ctx.Err()
			case <-time.After(backoffFn(attempt)):
			}
		}
	}
	return nil, attempts, lastErr
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func newBatchCmd(app *App) *cobra.Command {
	var output string
	var workers, retries int

	cmd := &cobra.Command{
		Use:   "batch <input.jsonl>",
		Short: "Run detection over a JSONL file of {id, text} samples",
		Long: "Run detection over a JSONL file of {id, text} samples. Each result is written as a " +
			"JSONL {id, result, phrases_found} record in input order.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			samples, err := jsonl.NewLoader().Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load samples: %w", err)
			}
			if len(samples) == 0 {
				return veritas.Errorf(veritas.EINVALID, "no samples found in %s", args[0])
			}

			settings, err := app.settings()
			if err != nil {
				return err
			}
			detector, err := app.detector(ctx)
			if err != nil {
				return err
			}

			runner := &BatchRunner{
				Output:      app.Stdout,
				OutputPath:  output,
				Saver:       jsonl.NewSaver(),
				Samples:     samples,
				Detector:    detector,
				Highlighter: highlight.NewSegmenter(),
				Settings:    settings,
				MaxRetries:  retries,
				Workers:     workers,
			}
			if err := runner.Run(ctx); err != nil {
				return err
			}
			if output != "" {
				log.Successf("wrote results to %s\n", output)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "append results to this JSONL file instead of stdout")
	f.IntVar(&workers, "workers", 4, "number of parallel workers (1 = sequential)")
	f.IntVar(&retries, "retries", DefaultMaxRetries, "attempts per sample before it is skipped")

	return cmd
}
