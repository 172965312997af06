package indexing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hotelsearch/internal/domain"
	"github.com/kailas-cloud/hotelsearch/internal/domain/hotel"
)

// Defaults for the reindex worker pool.
const (
	DefaultWorkers   = 4
	DefaultBatchSize = 500
)

// Report summarizes a reindex run.
type Report struct {
	RunID    string
	Total    int
	Indexed  int
	Failed   int
	Failures []hotel.IndexFailure
}

// Service keeps the search index in step with the record database.
type Service struct {
	records   Records
	writer    Writer
	pool      *ants.Pool
	batchSize int
	indexed   *prometheus.CounterVec
	logger    *zap.Logger
}

// New creates an indexing service backed by a pool of workers goroutines.
// indexed is a counter vec with label "status", passed explicitly; may be nil.
func New(
	records Records,
	writer Writer,
	workers, batchSize int,
	indexed *prometheus.CounterVec,
	logger *zap.Logger,
) (*Service, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	return &Service{
		records:   records,
		writer:    writer,
		pool:      pool,
		batchSize: batchSize,
		indexed:   indexed,
		logger:    logger,
	}, nil
}

// Close releases the worker pool.
func (s *Service) Close() {
	s.pool.Release()
}

// IndexByID loads a hotel record and writes its search document.
func (s *Service) IndexByID(ctx context.Context, id int64) error {
	h, err := s.records.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find hotel %d: %w", id, err)
	}

	if err := s.writer.Index(ctx, hotel.FromHotel(h)); err != nil {
		s.count("failed", 1)
		return fmt.Errorf("%w: index hotel %d: %w", domain.ErrSearchFailed, id, err)
	}
	s.count("indexed", 1)
	return nil
}

// DeleteByID removes a hotel's search document.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	if err := s.writer.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return fmt.Errorf("delete hotel %d: %w", id, err)
		}
		return fmt.Errorf("%w: delete hotel %d: %w", domain.ErrSearchFailed, id, err)
	}
	s.count("deleted", 1)
	return nil
}

// Reindex rewrites every hotel record into the index in parallel bulk
// batches. Item rejections are counted in the report; batches that fail
// outright are counted as failed and joined into the returned error.
func (s *Service) Reindex(ctx context.Context) (Report, error) {
	rep := Report{RunID: uuid.NewString()}
	log := s.logger.With(zap.String("run_id", rep.RunID))

	hotels, err := s.records.ListAll(ctx)
	if err != nil {
		return rep, fmt.Errorf("list hotels: %w", err)
	}
	rep.Total = len(hotels)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		batchErr []error
	)
	record := func(n int, failures []hotel.IndexFailure, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			rep.Failed += n
			batchErr = append(batchErr, err)
			return
		}
		rep.Indexed += n - len(failures)
		rep.Failed += len(failures)
		rep.Failures = append(rep.Failures, failures...)
	}

	for start := 0; start < len(hotels); start += s.batchSize {
		end := min(start+s.batchSize, len(hotels))
		docs := make([]hotel.Document, 0, end-start)
		for _, h := range hotels[start:end] {
			docs = append(docs, hotel.FromHotel(h))
		}

		if err := ctx.Err(); err != nil {
			record(len(docs), nil, err)
			continue
		}

		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			failures, err := s.writer.Bulk(ctx, docs)
			record(len(docs), failures, err)
		})
		if submitErr != nil {
			wg.Done()
			record(len(docs), nil, fmt.Errorf("submit batch: %w", submitErr))
		}
	}
	wg.Wait()

	s.count("indexed", rep.Indexed)
	s.count("failed", rep.Failed)
	log.Info("Reindex finished",
		zap.Int("total", rep.Total),
		zap.Int("indexed", rep.Indexed),
		zap.Int("failed", rep.Failed),
	)

	if len(batchErr) > 0 {
		return rep, fmt.Errorf("%w: reindex: %w", domain.ErrSearchFailed, errors.Join(batchErr...))
	}
	return rep, nil
}

func (s *Service) count(status string, n int) {
	if s.indexed != nil && n > 0 {
		s.indexed.WithLabelValues(status).Add(float64(n))
	}
}
