package exporter

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/atelier/backend/internal/domain/export"
	"github.com/atelier/backend/internal/domain/reporting"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/infrastructure/config"
	"github.com/atelier/backend/internal/infrastructure/storage"
)

// Extractor builds the table an export job covers
type Extractor interface {
	Extract(ctx context.Context, job *export.Job) (*Table, error)
}

// WorkerPool runs durable export jobs. Workers poll the job queue,
// claim the oldest pending job with a row lock, produce the artifact and
// upload it to object storage. A sweeper requeues jobs abandoned in
// RUNNING by a crashed worker. Cancellation is cooperative: each
// progress write re-reads the job on a version conflict and stops when
// an operator has cancelled it.
type WorkerPool struct {
	config    config.ExportConfig
	jobs      export.Repository
	templates reporting.TemplateRepository
	extractor Extractor
	renderer  PDFRenderer
	store     storage.ObjectStore
	keyPrefix string
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	processed atomic.Int64
	failed    atomic.Int64
	requeued  atomic.Int64
}

// NewWorkerPool creates an export worker pool
func NewWorkerPool(
	cfg config.ExportConfig,
	jobs export.Repository,
	templates reporting.TemplateRepository,
	extractor Extractor,
	renderer PDFRenderer,
	store storage.ObjectStore,
	keyPrefix string,
	logger *zap.Logger,
) (*WorkerPool, error) {
	if cfg.Workers <= 0 || cfg.PollInterval <= 0 || cfg.JobTimeout <= 0 {
		return nil, ErrInvalidConfig
	}
	if cfg.StaleAfter <= 0 || cfg.SweepInterval <= 0 {
		return nil, ErrInvalidConfig
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WorkerPool{
		config:    cfg,
		jobs:      jobs,
		templates: templates,
		extractor: extractor,
		renderer:  renderer,
		store:     store,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		logger:    logger,
	}, nil
}

// Start launches the workers and the stale-job sweeper
func (p *WorkerPool) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = true
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.config.Workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	p.wg.Add(1)
	go p.sweeper(ctx)

	p.logger.Info("Export worker pool started",
		zap.Int("workers", p.config.Workers),
		zap.Duration("poll_interval", p.config.PollInterval),
		zap.Duration("job_timeout", p.config.JobTimeout),
	)

	return nil
}

// Stop gracefully stops the pool, waiting for in-flight jobs
func (p *WorkerPool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = false
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("Export worker pool stopped gracefully")
		return nil
	case <-ctx.Done():
		p.logger.Warn("Export worker pool stop timed out")
		return ctx.Err()
	}
}

// worker drains the queue, then sleeps until the next poll
func (p *WorkerPool) worker(ctx context.Context, workerID int) {
	defer p.wg.Done()

	logger := p.logger.With(zap.Int("worker_id", workerID))
	logger.Debug("Export worker started")

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.drain(ctx, workerID)

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Export worker stopping")
			return
		case <-ticker.C:
			p.drain(ctx, workerID)
		}
	}
}

// drain claims and runs pending jobs until the queue is empty
func (p *WorkerPool) drain(ctx context.Context, workerID int) {
	for {
		if ctx.Err() != nil {
			return
		}

		job, err := p.jobs.ClaimNextPending(ctx)
		if err != nil {
			p.logger.Error("Failed to claim export job", zap.Error(err), zap.Int("worker_id", workerID))
			return
		}
		if job == nil {
			return
		}

		p.processJob(ctx, job, workerID)
	}
}

func (p *WorkerPool) processJob(ctx context.Context, job *export.Job, workerID int) {
	ctx, cancel := context.WithTimeout(ctx, p.config.JobTimeout)
	defer cancel()

	logger := p.logger.With(
		zap.String("job_id", job.GetID().String()),
		zap.String("dataset", job.Dataset.String()),
		zap.String("format", job.Format.String()),
		zap.Int("attempt", job.Attempts),
		zap.Int("worker_id", workerID),
	)
	logger.Info("Export job started")

	key, err := p.runJob(ctx, job)
	if err != nil {
		if errors.Is(err, errJobCancelled) {
			logger.Info("Export job cancelled, abandoning run")
			return
		}
		p.failJob(ctx, job, err, logger)
		return
	}

	p.completeJob(ctx, job, key, logger)
}

// runJob produces the artifact and returns its storage key
func (p *WorkerPool) runJob(ctx context.Context, job *export.Job) (string, error) {
	table, err := p.extractor.Extract(ctx, job)
	if err != nil {
		return "", err
	}
	if err := p.checkpoint(ctx, job, 40); err != nil {
		return "", err
	}

	var data []byte
	var contentType string

	switch job.Format {
	case export.FormatPDF:
		data, err = p.renderPDF(ctx, job, table)
		contentType = "application/pdf"
	default:
		data, err = EncodeCSV(table)
		contentType = "text/csv"
	}
	if err != nil {
		return "", err
	}
	if err := p.checkpoint(ctx, job, 70); err != nil {
		return "", err
	}

	key := p.artifactKey(job)
	if err := p.store.Upload(ctx, key, data, contentType); err != nil {
		return "", err
	}
	if err := p.checkpoint(ctx, job, 95); err != nil {
		return "", err
	}

	return key, nil
}

func (p *WorkerPool) renderPDF(ctx context.Context, job *export.Job, table *Table) ([]byte, error) {
	if p.renderer == nil {
		return nil, shared.NewDomainError("RENDER_FAILED", "No PDF renderer is configured")
	}
	if job.TemplateID == nil {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "PDF export requires a template")
	}

	tpl, err := p.templates.FindByID(ctx, *job.TemplateID)
	if err != nil {
		return nil, err
	}
	if !tpl.Active {
		return nil, shared.NewDomainError("INACTIVE_TEMPLATE", "Template is no longer active: "+tpl.Name)
	}

	html, err := BuildDocumentHTML(tpl.Name, PeriodLabel(job.PeriodStart, job.PeriodEnd), time.Now(), table)
	if err != nil {
		return nil, err
	}

	return p.renderer.Render(ctx, &RenderRequest{
		HTML:        html,
		Title:       tpl.Name,
		PaperSize:   tpl.PaperSize,
		Orientation: tpl.Orientation,
	})
}

// artifactKey builds the storage key the completed job records.
// Download URLs are presigned from this key on each request.
func (p *WorkerPool) artifactKey(job *export.Job) string {
	name := job.GetID().String() + job.Format.FileExtension()
	if p.keyPrefix == "" {
		return name
	}
	return p.keyPrefix + "/" + name
}

// checkpoint persists job progress. A version conflict means someone
// else wrote the job; if that write was a cancellation the run stops.
func (p *WorkerPool) checkpoint(ctx context.Context, job *export.Job, percent int) error {
	if err := job.UpdateProgress(percent); err != nil {
		return err
	}
	job.IncrementVersion()

	err := p.jobs.SaveWithLock(ctx, job)
	if err == nil {
		return nil
	}

	var derr *shared.DomainError
	if errors.As(err, &derr) && derr.Code == "CONCURRENT_MODIFICATION" {
		current, findErr := p.jobs.FindByID(ctx, job.GetID())
		if findErr != nil {
			return findErr
		}
		if current.Status == export.JobStatusCancelled {
			return errJobCancelled
		}
	}
	return err
}

func (p *WorkerPool) completeJob(ctx context.Context, job *export.Job, key string, logger *zap.Logger) {
	if err := job.Complete(key); err != nil {
		logger.Error("Failed to mark export job completed", zap.Error(err))
		return
	}
	job.IncrementVersion()
	if err := p.jobs.SaveWithLock(ctx, job); err != nil {
		logger.Error("Failed to persist completed export job", zap.Error(err))
		return
	}

	p.processed.Add(1)
	logger.Info("Export job completed", zap.String("artifact_key", key))
}

func (p *WorkerPool) failJob(ctx context.Context, job *export.Job, cause error, logger *zap.Logger) {
	if err := job.Fail(cause.Error()); err != nil {
		logger.Error("Failed to mark export job failed", zap.Error(err), zap.NamedError("cause", cause))
		return
	}
	job.IncrementVersion()

	// The job may have been cancelled mid-run; a conflicting write wins.
	saveCtx := ctx
	if saveCtx.Err() != nil {
		var cancelSave context.CancelFunc
		saveCtx, cancelSave = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelSave()
	}
	if err := p.jobs.SaveWithLock(saveCtx, job); err != nil {
		logger.Error("Failed to persist failed export job", zap.Error(err), zap.NamedError("cause", cause))
		return
	}

	p.failed.Add(1)
	if job.Status == export.JobStatusPending {
		logger.Warn("Export job attempt failed, requeued",
			zap.NamedError("cause", cause),
			zap.Int("attempts", job.Attempts),
			zap.Int("max_attempts", job.MaxAttempts))
		return
	}
	logger.Error("Export job failed permanently", zap.NamedError("cause", cause), zap.Int("attempts", job.Attempts))
}

// sweeper requeues jobs stuck in RUNNING: once at startup, so jobs
// abandoned by a crash before a restart come back immediately, then on
// every sweep interval
func (p *WorkerPool) sweeper(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.SweepInterval)
	defer ticker.Stop()

	p.sweepStale(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sweepStale(ctx)
		}
	}
}

// sweepStale returns abandoned RUNNING jobs to the queue, or fails
// them for good when their attempts are spent
func (p *WorkerPool) sweepStale(ctx context.Context) {
	cutoff := time.Now().Add(-p.config.StaleAfter)

	stale, err := p.jobs.FindStaleRunning(ctx, cutoff)
	if err != nil {
		p.logger.Error("Stale export job sweep failed", zap.Error(err))
		return
	}

	for i := range stale {
		job := &stale[i]

		var terr error
		if job.HasAttemptsLeft() {
			terr = job.Requeue()
		} else {
			terr = job.Fail("abandoned by crashed worker")
		}
		if terr != nil {
			p.logger.Error("Failed to transition stale export job",
				zap.Error(terr), zap.String("job_id", job.GetID().String()))
			continue
		}

		job.IncrementVersion()
		if err := p.jobs.SaveWithLock(ctx, job); err != nil {
			// The owning worker may have finished in the meantime.
			p.logger.Warn("Stale export job changed under sweep",
				zap.Error(err), zap.String("job_id", job.GetID().String()))
			continue
		}

		p.requeued.Add(1)
		p.logger.Warn("Stale export job swept",
			zap.String("job_id", job.GetID().String()),
			zap.String("status", job.Status.String()),
			zap.Int("attempts", job.Attempts))
	}
}

// TriggerSweep runs a stale-job sweep immediately
func (p *WorkerPool) TriggerSweep() error {
	p.mu.Lock()
	running := p.isRunning
	p.mu.Unlock()
	if !running {
		return ErrPoolNotRunning
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	p.sweepStale(ctx)
	return nil
}

// GetStatus returns pool state for the system status endpoint
func (p *WorkerPool) GetStatus() map[string]interface{} {
	p.mu.Lock()
	running := p.isRunning
	p.mu.Unlock()

	return map[string]interface{}{
		"running":        running,
		"workers":        p.config.Workers,
		"poll_interval":  p.config.PollInterval.String(),
		"jobs_processed": p.processed.Load(),
		"jobs_failed":    p.failed.Load(),
		"jobs_requeued":  p.requeued.Load(),
	}
}
