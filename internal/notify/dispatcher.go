package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultWorkers     = 2
	defaultQueueSize   = 100
	defaultSendTimeout = 30 * time.Second
)

// Dispatcher delivers emails in the background through a bounded queue.
// Delivery failures are logged and never reported to the enqueuer.
type Dispatcher struct {
	mailer  Mailer
	logger  *slog.Logger
	workers int
	timeout time.Duration

	mu      sync.Mutex
	queue   chan Email
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher. Non-positive sizes fall back to defaults.
func NewDispatcher(mailer Mailer, workers, queueSize int, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		mailer:  mailer,
		logger:  logger,
		workers: workers,
		timeout: timeout,
		queue:   make(chan Email, queueSize),
	}
}

// Start launches the workers. They exit when ctx is cancelled or Stop is called.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.run(ctx)
		}()
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case email, ok := <-d.queue:
			if !ok {
				return
			}
			d.deliver(ctx, email)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, email Email) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	if err := d.mailer.Send(ctx, email); err != nil {
		d.logger.ErrorContext(ctx, "email delivery failed", "subject", email.Subject, "error", err)
	}
}

// Enqueue schedules email for delivery without blocking.
// It reports false when the queue is full or the dispatcher is stopped.
func (d *Dispatcher) Enqueue(email Email) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return false
	}
	select {
	case d.queue <- email:
		return true
	default:
		d.logger.Warn("email queue full, dropping message", "subject", email.Subject)
		return false
	}
}

// Stop closes the queue and waits for workers to deliver what is already queued.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.mu.Unlock()
}
