package resource

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when a reservation would exceed the
// memory budget.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds resource limits. Zero values mean unlimited, except
// MaxConcurrentRuns which defaults to 1.
type Config struct {
	// MemoryLimitBytes caps the bytes reserved by concurrent runs.
	MemoryLimitBytes int64

	// MaxConcurrentRuns caps the number of sieves running at once.
	MaxConcurrentRuns int64

	// ExportBytesPerSec throttles prime set exports.
	ExportBytesPerSec int64
}

// Controller tracks memory, run slots and export bandwidth.
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	runSem *semaphore.Weighted

	exportLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a controller for cfg.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentRuns <= 0 {
		cfg.MaxConcurrentRuns = 1
	}

	c := &Controller{
		cfg:    cfg,
		runSem: semaphore.NewWeighted(cfg.MaxConcurrentRuns),
	}
	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.ExportBytesPerSec > 0 {
		c.exportLimiter = rate.NewLimiter(rate.Limit(cfg.ExportBytesPerSec), int(cfg.ExportBytesPerSec))
	}
	return c
}

// AcquireMemory reserves bytes without blocking.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return ErrMemoryLimitExceeded
	}
	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory returns a reservation.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the bytes currently reserved.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the memory budget, 0 if unlimited.
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// AcquireRun blocks until a run slot is free or ctx is done.
func (c *Controller) AcquireRun(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.runSem.Acquire(ctx, 1)
}

// TryAcquireRun reserves a run slot without blocking.
func (c *Controller) TryAcquireRun() bool {
	if c == nil {
		return true
	}
	return c.runSem.TryAcquire(1)
}

// ReleaseRun frees a run slot.
func (c *Controller) ReleaseRun() {
	if c == nil {
		return
	}
	c.runSem.Release(1)
}

// MaxConcurrentRuns returns the number of run slots.
func (c *Controller) MaxConcurrentRuns() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MaxConcurrentRuns
}

// WaitExport blocks until n export bytes may be written.
func (c *Controller) WaitExport(ctx context.Context, n int) error {
	if c == nil || c.exportLimiter == nil || n <= 0 {
		return nil
	}
	burst := c.exportLimiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := c.exportLimiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// exportChunk is the most a single read may charge against the export
// limiter, 0 if unlimited.
func (c *Controller) exportChunk() int {
	if c == nil || c.exportLimiter == nil {
		return 0
	}
	return c.exportLimiter.Burst()
}

// RateLimitedReader throttles reads through a Controller's export limiter.
// Bytes are handed to the caller only after the limiter admits them, so a
// store uploading from it sends at most ExportBytesPerSec.
type RateLimitedReader struct {
	ctx context.Context
	r   io.Reader
	c   *Controller
}

// NewRateLimitedReader wraps r.
func NewRateLimitedReader(ctx context.Context, r io.Reader, c *Controller) *RateLimitedReader {
	return &RateLimitedReader{ctx: ctx, r: r, c: c}
}

// Read implements io.Reader.
func (r *RateLimitedReader) Read(p []byte) (int, error) {
	if chunk := r.c.exportChunk(); chunk > 0 && len(p) > chunk {
		p = p[:chunk]
	}
	n, err := r.r.Read(p)
	if n > 0 {
		if werr := r.c.WaitExport(r.ctx, n); werr != nil {
			return 0, werr
		}
	}
	return n, err
}
