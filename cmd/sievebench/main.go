package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/0x19f/sievebench"
	"github.com/0x19f/sievebench/internal/logging"
	"github.com/0x19f/sievebench/internal/metrics"
	"github.com/0x19f/sievebench/wordio"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid environment configuration:", err)
		os.Exit(2)
	}

	flag.StringVar(&cfg.WordFile, "words", cfg.WordFile, "Path to the word list to insert")
	flag.StringVar(&cfg.QueryFile, "queries", cfg.QueryFile, "Path to the labeled query list (\"word bit\" per line)")
	flag.Float64Var(&cfg.TargetFPRate, "fp-rate", cfg.TargetFPRate, "Target false-positive rate in (0, 1)")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Worker count for the parallel phases (0 = GOMAXPROCS)")
	flag.StringVar(&cfg.HashFamily, "hash", cfg.HashFamily, "Hash family: ap, xxh3, or murmur3")
	flag.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Address for the Prometheus /metrics listener (empty = disabled)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: json or console")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, or error")
	flag.Parse()

	// Bare "sievebench words.txt query.txt" still works.
	if args := flag.Args(); len(args) == 2 {
		cfg.WordFile, cfg.QueryFile = args[0], args[1]
	}

	if err := ValidateConfig(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(2)
	}

	logger, err := logging.NewLogger(logging.Config{Format: cfg.LogFormat, Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(2)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.MetricsAddr != "" {
		go func() {
			logger.Info("starting metrics server", zap.String("address", cfg.MetricsAddr))
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	if err := run(context.Background(), cfg, logger, os.Stdout); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

// run executes one benchmark lifecycle: read both sources, size and
// build the filter, evaluate the labeled queries, report.
func run(ctx context.Context, cfg Config, logger *zap.Logger, out io.Writer) error {
	totalStart := time.Now()

	family, err := sievebench.FamilyByName(cfg.HashFamily)
	if err != nil {
		return err
	}

	// Word and query files are independent; read them concurrently.
	var (
		words   []string
		queries []sievebench.QueryRecord
	)
	readStart := time.Now()
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		words, err = wordio.ReadWords(cfg.WordFile)
		return err
	})
	g.Go(func() error {
		var err error
		queries, err = wordio.ReadQueries(cfg.QueryFile)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	metrics.ObservePhase("read", time.Since(readStart))
	logger.Info("sources loaded",
		zap.Int("words", len(words)),
		zap.Int("queries", len(queries)),
		zap.Duration("elapsed", time.Since(readStart)))

	filter, err := sievebench.NewAtomic(len(words), cfg.TargetFPRate, family)
	if err != nil {
		return err
	}
	logger.Info("filter sized",
		zap.Uint64("bits", filter.BitCount()),
		zap.Uint32("hashes", filter.HashCount()),
		zap.String("hash_family", family.Name()),
		zap.Float64("target_fp_rate", cfg.TargetFPRate))

	insertStart := time.Now()
	if err := sievebench.ParallelInsertAll(ctx, filter, words, cfg.Workers); err != nil {
		return err
	}
	metrics.ObservePhase("insert", time.Since(insertStart))
	metrics.WordsInserted.Add(float64(len(words)))
	metrics.FillRatio.Set(filter.FillRatio())
	logger.Info("insert phase complete",
		zap.Duration("elapsed", time.Since(insertStart)),
		zap.Float64("fill_ratio", filter.FillRatio()),
		zap.Float64("estimated_fp_rate", filter.EstimatedFalsePositiveRate()))

	evalStart := time.Now()
	result, evalErr := sievebench.NewEvaluator(logger, cfg.Workers).Evaluate(ctx, filter, queries)
	var violation *sievebench.InvariantViolationError
	if evalErr != nil && !errors.As(evalErr, &violation) {
		return evalErr
	}
	metrics.ObservePhase("evaluate", time.Since(evalStart))
	metrics.RecordEvaluation(result)
	logger.Info("evaluate phase complete", zap.Duration("elapsed", time.Since(evalStart)))

	printReport(out, filter, result)
	metrics.ObservePhase("total", time.Since(totalStart))
	logger.Info("run complete", zap.Duration("elapsed", time.Since(totalStart)))

	// The report above is still valid output, but a violated
	// no-false-negative guarantee means the filter itself is defective,
	// so the run as a whole fails.
	if violation != nil {
		return violation
	}
	return nil
}

func printReport(w io.Writer, f *sievebench.AtomicFilter, r sievebench.EvaluationResult) {
	fmt.Fprintf(w, "Bit array size (m):        %d\n", f.BitCount())
	fmt.Fprintf(w, "Hash count (k):            %d\n", f.HashCount())
	fmt.Fprintf(w, "Words inserted:            %d\n", f.Count())
	fmt.Fprintf(w, "Queries evaluated:         %d\n", r.TotalPositives+r.TotalNegatives)
	fmt.Fprintf(w, "False negatives:           %d\n", r.FalseNegatives)
	fmt.Fprintf(w, "False positives:           %d\n", r.FalsePositives)
	fmt.Fprintf(w, "False Negative Percentage: %s\n", formatRate(r.FalseNegativeRate()))
	fmt.Fprintf(w, "False Positive Percentage: %s\n", formatRate(r.FalsePositiveRate()))
}

// formatRate renders a rate as a percentage, or "undefined" when the
// query set had no records in the rate's denominator class.
func formatRate(rate float64, ok bool) string {
	if !ok {
		return "undefined"
	}
	return fmt.Sprintf("%.6f%%", rate*100)
}
