// Package service wires the scoring pipeline: CSV loading, the scorer, and
// the concurrent ranking harness used by the command line.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/aucscore/internal/adapters/csvio"
	"github.com/okian/aucscore/internal/adapters/mq/queue"
	workerpool "github.com/okian/aucscore/internal/adapters/mq/worker"
	"github.com/okian/aucscore/internal/adapters/repository"
	"github.com/okian/aucscore/internal/domain/auc"
	"github.com/okian/aucscore/internal/domain/dedupe"
	"github.com/okian/aucscore/internal/domain/model"
	"github.com/okian/aucscore/internal/domain/scoring"
	"github.com/okian/aucscore/internal/domain/table"
	"github.com/okian/aucscore/internal/domain/types"
	"github.com/okian/aucscore/internal/synth"
	"github.com/okian/aucscore/pkg/logger"
	"github.com/okian/aucscore/pkg/metrics"
)

// File names written by Generate.
const (
	SolutionFile   = "solution.csv"
	SubmissionFile = "submission.csv"
)

const (
	enqueueRetryDelay = time.Millisecond
	dirPermission     = 0o750
)

// Sentinel kinds for service errors.
var (
	ErrNoSubmissions = errors.New("no submission files given")
	ErrLoadSolution  = errors.New("load solution")
)

// Report is the outcome of a ranking run.
type Report struct {
	Entries    []types.Entry     `json:"leaderboard"`
	Failures   []types.Failure   `json:"failures"`
	Duplicates []types.Duplicate `json:"duplicates"`
}

// Service scores submission files.
type Service struct {
	workerCount int
	queueSize   int
	dedupeSize  int
	rowIDColumn string
	average     auc.Average

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the number of remembered submission digests.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithRowIDColumn sets the identifier column dropped before scoring.
func WithRowIDColumn(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.rowIDColumn = name
		}
	}
}

// WithAverage sets how per-column AUC values are combined.
func WithAverage(avg auc.Average) Option {
	return func(s *Service) {
		if avg != "" {
			s.average = avg
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU(),
		queueSize:   queue.DefaultCapacity,
		dedupeSize:  dedupe.DefaultMaxSize,
		rowIDColumn: scoring.DefaultRowIDColumn,
		average:     auc.Macro,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	return s
}

func (s *Service) scorer() *scoring.MacroAUCScorer {
	return scoring.NewMacroAUCScorer(
		scoring.WithRowIDColumn(s.rowIDColumn),
		scoring.WithAverage(s.average),
		scoring.WithLogger(s.logger.Named("scoring")),
	)
}

// ScoreFiles scores one submission file against a solution file.
func (s *Service) ScoreFiles(ctx context.Context, solutionPath, submissionPath string) (scoring.Result, error) {
	solution, err := s.loadSolution(solutionPath)
	if err != nil {
		return scoring.Result{}, err
	}

	submission, err := csvio.ReadFile(submissionPath)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("load submission %s: %w", submissionPath, err)
	}

	return s.scorer().Score(ctx, scoring.Input{
		SubmissionID: model.SubmissionIDFromPath(submissionPath),
		Solution:     solution,
		Submission:   submission,
	})
}

// RankFiles scores every submission file against the solution concurrently
// and returns the leaderboard. Files with identical content are scored once;
// later copies are reported as duplicates.
func (s *Service) RankFiles(ctx context.Context, solutionPath string, submissionPaths []string) (Report, error) {
	if len(submissionPaths) == 0 {
		return Report{}, ErrNoSubmissions
	}

	solution, err := s.loadSolution(solutionPath)
	if err != nil {
		return Report{}, err
	}

	store := repository.NewMemoryStore()
	deduper := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	q := queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	loader := workerpool.LoaderFunc(func(_ context.Context, path string) (*table.Frame, error) {
		return csvio.ReadFile(path)
	})
	pool := workerpool.NewPool(s.workerCount, q, loader, s.scorer(), store, solution)

	s.logger.Info(ctx, "ranking submissions",
		logger.Int("submissions", len(submissionPaths)),
		logger.Int("workers", pool.Size()),
		logger.Int("queue_size", q.Capacity()),
	)

	start := time.Now()
	ids := model.SubmissionIDs(submissionPaths)

	var duplicates []types.Duplicate
	g, gctx := errgroup.WithContext(ctx)
	pool.Start(gctx)

	g.Go(func() error {
		defer func() { _ = q.Close() }()
		for i, path := range submissionPaths {
			dup, err := s.enqueue(gctx, q, deduper, store, ids[i], path)
			if err != nil {
				return err
			}
			if dup != nil {
				duplicates = append(duplicates, *dup)
			}
		}
		return nil
	})

	g.Go(func() error {
		return pool.Wait(gctx)
	})

	if err := g.Wait(); err != nil {
		_ = pool.Shutdown(context.Background())
		return Report{}, fmt.Errorf("rank submissions: %w", err)
	}

	entries, err := store.TopN(ctx, 0)
	if err != nil {
		return Report{}, fmt.Errorf("read leaderboard: %w", err)
	}

	report := Report{
		Entries:    entries,
		Failures:   store.Failures(ctx),
		Duplicates: duplicates,
	}
	s.logger.Info(ctx, "ranking finished",
		logger.Int("ranked", store.Count(ctx)),
		logger.Int("failed", len(report.Failures)),
		logger.Int("duplicates", len(report.Duplicates)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// enqueue digests one file and queues it under id unless its content was
// seen. A full queue is retried until ctx ends.
func (s *Service) enqueue(ctx context.Context, q *queue.InMemoryQueue, d dedupe.Deduper, store repository.Store, id, path string) (*types.Duplicate, error) {
	digest, err := dedupe.DigestFile(path)
	if err != nil {
		metrics.RecordErrorByComponent("service", "digest_failed")
		store.RecordFailure(ctx, types.Failure{
			SubmissionID: id,
			Path:         path,
			Kind:         scoring.KindInternal.String(),
			Message:      scoring.PublicMessage(err),
			Detail:       err.Error(),
		})
		return nil, nil
	}

	if first, seen := d.SeenAndRecord(ctx, digest, id); seen {
		metrics.RecordDuplicateSubmission()
		s.logger.Debug(ctx, "duplicate submission skipped",
			logger.String("submission", id),
			logger.String("same_as", first),
		)
		return &types.Duplicate{SubmissionID: id, SameAs: first}, nil
	}

	job := model.NewJob(id, path, digest)
	for {
		err := q.Enqueue(ctx, job)
		if err == nil {
			return nil, nil
		}
		if !errors.Is(err, queue.ErrFull) {
			d.Unrecord(ctx, digest)
			return nil, fmt.Errorf("enqueue %s: %w", id, err)
		}
		select {
		case <-ctx.Done():
			d.Unrecord(ctx, digest)
			return nil, fmt.Errorf("enqueue %s: %w", id, ctx.Err())
		case <-time.After(enqueueRetryDelay):
		}
	}
}

// Generate writes a synthetic solution and submission pair into dir and
// returns their paths.
func (s *Service) Generate(ctx context.Context, opts synth.Options, dir string) (solutionPath, submissionPath string, err error) {
	if opts.RowIDColumn == "" {
		opts.RowIDColumn = s.rowIDColumn
	}
	solution, submission, err := synth.Generate(opts)
	if err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(dir, dirPermission); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	solutionPath = filepath.Join(dir, SolutionFile)
	submissionPath = filepath.Join(dir, SubmissionFile)
	if err := csvio.WriteFile(solutionPath, solution); err != nil {
		return "", "", err
	}
	if err := csvio.WriteFile(submissionPath, submission); err != nil {
		return "", "", err
	}

	s.logger.Info(ctx, "generated scoring data",
		logger.String("solution", solutionPath),
		logger.String("submission", submissionPath),
		logger.Int("rows", opts.Rows),
		logger.Int("classes", opts.Classes),
	)
	return solutionPath, submissionPath, nil
}

func (s *Service) loadSolution(path string) (*table.Frame, error) {
	f, err := csvio.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrLoadSolution, path, err)
	}
	return f, nil
}
