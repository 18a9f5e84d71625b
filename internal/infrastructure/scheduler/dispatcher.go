package scheduler

import (
	"context"
	"sync"
	"time"

	schedulingapp "github.com/atelier/backend/internal/application/scheduling"
	"github.com/atelier/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// DispatchService is the application operation a sweep invokes
type DispatchService interface {
	Dispatch(ctx context.Context, now time.Time) (*schedulingapp.DispatchResult, error)
}

// Dispatcher periodically sweeps for due schedules and fires them. Report
// schedules become queued export jobs, maintenance schedules become open
// tickets. A single sweep handles every due schedule; the interval only
// bounds how stale a NextRunAt can get.
type Dispatcher struct {
	config  config.DispatchConfig
	service DispatchService
	logger  *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastSweepAt *time.Time
}

// NewDispatcher creates a new schedule dispatcher
func NewDispatcher(cfg config.DispatchConfig, service DispatchService, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		config:  cfg,
		service: service,
		logger:  logger,
	}
}

// Start starts the sweep loop
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.isRunning {
		d.mu.Unlock()
		return nil
	}
	if d.config.SweepInterval <= 0 {
		d.mu.Unlock()
		return ErrInvalidConfig
	}
	d.isRunning = true
	d.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.wg.Add(1)
	go d.sweepLoop(ctx)

	d.logger.Info("Schedule dispatcher started",
		zap.Duration("sweep_interval", d.config.SweepInterval),
	)
	return nil
}

// Stop stops the sweep loop and waits for an in-flight sweep to finish
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.isRunning {
		d.mu.Unlock()
		return nil
	}
	d.isRunning = false
	d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("Schedule dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.logger.Warn("Schedule dispatcher stop timed out")
		return ctx.Err()
	}
}

func (d *Dispatcher) sweepLoop(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.config.SweepInterval)
	defer ticker.Stop()

	// Run one sweep immediately so a restart picks up overdue schedules
	// without waiting a full interval.
	d.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.sweep(ctx)
		}
	}
}

func (d *Dispatcher) sweep(ctx context.Context) {
	now := time.Now()
	d.mu.Lock()
	d.lastSweepAt = &now
	d.mu.Unlock()

	result, err := d.service.Dispatch(ctx, now)
	if err != nil {
		d.logger.Error("Schedule sweep failed", zap.Error(err))
		return
	}

	if result.Dispatched > 0 || result.Skipped > 0 {
		d.logger.Info("Schedule sweep completed",
			zap.Int("dispatched", result.Dispatched),
			zap.Int("reports", result.Reports),
			zap.Int("tickets", result.Tickets),
			zap.Int("skipped", result.Skipped),
		)
	}
}

// TriggerSweep runs a sweep outside the regular interval. Uses a background
// context so an HTTP caller disconnecting does not abort the sweep.
func (d *Dispatcher) TriggerSweep() error {
	d.mu.Lock()
	if !d.isRunning {
		d.mu.Unlock()
		return ErrDispatcherNotRunning
	}
	d.mu.Unlock()

	go d.sweep(context.Background())
	return nil
}

// GetStatus returns the current dispatcher state
func (d *Dispatcher) GetStatus() map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()

	return map[string]any{
		"enabled":        d.config.Enabled,
		"is_running":     d.isRunning,
		"sweep_interval": d.config.SweepInterval.String(),
		"last_sweep_at":  d.lastSweepAt,
	}
}
