package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ExportKind selects which report an ExportRequest produces.
type ExportKind string

const (
	ExportAttendance ExportKind = "attendance"
	ExportCompletion ExportKind = "completion"
	ExportStudent    ExportKind = "student"
)

// ExportRequest is one queued export. TargetID is a class id for the class
// reports and a student id for the student report.
type ExportRequest struct {
	Kind     ExportKind
	TargetID int64
	Format   ExportFormat

	attempt  int
	enqueued time.Time
}

// ExportQueueConfig configures the worker pool.
type ExportQueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
}

// ExportQueue renders report exports in the background so a slow PDF never
// blocks the caller. Failed renders are retried with a delay.
type ExportQueue struct {
	exports *ExportService
	logger  *zap.Logger

	workers    int
	maxRetries int
	retryDelay time.Duration

	requests chan ExportRequest
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	pending  sync.WaitGroup
	mu       sync.Mutex
	started  bool
}

// NewExportQueue builds a queue draining into the given export service.
func NewExportQueue(exports *ExportService, cfg ExportQueueConfig, logger *zap.Logger) *ExportQueue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportQueue{
		exports:    exports,
		logger:     logger,
		workers:    cfg.Workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		requests:   make(chan ExportRequest, cfg.BufferSize),
	}
}

// Start begins worker consumption. Safe to call once.
func (q *ExportQueue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
	q.logger.Sugar().Infow("export queue started", "workers", q.workers)
}

// Stop cancels workers and waits for them to exit. Queued requests that have
// not started rendering are dropped.
func (q *ExportQueue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.cancel()
	q.mu.Unlock()
	q.wg.Wait()
	q.logger.Sugar().Infow("export queue stopped")
}

// Enqueue schedules an export for background rendering.
func (q *ExportQueue) Enqueue(req ExportRequest) error {
	q.mu.Lock()
	ctx := q.ctx
	started := q.started
	q.mu.Unlock()

	if !started {
		return fmt.Errorf("export queue not started")
	}
	if req.enqueued.IsZero() {
		req.enqueued = time.Now().UTC()
	}

	q.pending.Add(1)
	select {
	case <-ctx.Done():
		q.pending.Done()
		return fmt.Errorf("export queue stopped: %w", ctx.Err())
	case q.requests <- req:
		return nil
	}
}

// Drain blocks until every accepted request has either rendered or given up
// retrying. Call before Stop when queued work must not be dropped.
func (q *ExportQueue) Drain() {
	q.pending.Wait()
}

func (q *ExportQueue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case req := <-q.requests:
			if err := q.render(q.ctx, req); err != nil {
				q.handleFailure(req, err)
			} else {
				q.pending.Done()
			}
		}
	}
}

func (q *ExportQueue) render(ctx context.Context, req ExportRequest) error {
	var (
		path string
		err  error
	)
	switch req.Kind {
	case ExportAttendance:
		path, err = q.exports.ExportClassAttendance(ctx, req.TargetID, req.Format)
	case ExportCompletion:
		path, err = q.exports.ExportClassAssignmentCompletion(ctx, req.TargetID, req.Format)
	case ExportStudent:
		path, err = q.exports.ExportStudentReport(ctx, req.TargetID, req.Format)
	default:
		q.logger.Sugar().Errorw("dropping export with unknown kind", "kind", req.Kind)
		return nil
	}
	if err != nil {
		return err
	}
	q.logger.Sugar().Infow("export rendered", "kind", req.Kind, "target_id", req.TargetID, "path", path)
	return nil
}

func (q *ExportQueue) handleFailure(req ExportRequest, err error) {
	req.attempt++
	if req.attempt > q.maxRetries {
		q.logger.Sugar().Errorw("export exceeded retries", "kind", req.Kind, "target_id", req.TargetID, "error", err)
		q.pending.Done()
		return
	}
	q.logger.Sugar().Warnw("export failed, retrying", "kind", req.Kind, "target_id", req.TargetID, "attempt", req.attempt, "error", err)

	// the retried request keeps its original pending slot
	go func(r ExportRequest) {
		timer := time.NewTimer(q.retryDelay)
		defer timer.Stop()
		select {
		case <-q.ctx.Done():
			q.pending.Done()
		case <-timer.C:
			select {
			case <-q.ctx.Done():
				q.pending.Done()
			case q.requests <- r:
			}
		}
	}(req)
}
