package notifications

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"time"

	"devswipe/internal/middleware"
	"devswipe/internal/observability"
)

// DispatcherConfig sizes the push worker pool.
type DispatcherConfig struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
	// OnUnregistered is called when the gateway reports a dead token.
	OnUnregistered func(ctx context.Context, token string)
}

// Dispatcher delivers pushes on a bounded worker pool so request handlers
// never wait on the vendor gateway.
type Dispatcher struct {
	gateway PushGateway
	cfg     DispatcherConfig
	queue   chan Push

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher starts cfg.Workers workers in front of gw.
func NewDispatcher(gw PushGateway, cfg DispatcherConfig) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	d := &Dispatcher{
		gateway: gw,
		cfg:     cfg,
		queue:   make(chan Push, cfg.QueueSize),
	}
	d.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go d.worker()
	}
	return d
}

// Gateway returns the gateway name, for logging.
func (d *Dispatcher) Gateway() string { return d.gateway.Name() }

// Enqueue queues p without blocking. It reports false when the queue is full
// or the dispatcher is shut down; the push is then dropped.
func (d *Dispatcher) Enqueue(p Push) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		observability.PushDispatch.WithLabelValues(d.gateway.Name(), "closed").Inc()
		return false
	}
	select {
	case d.queue <- p:
		observability.PushQueueDepth.Inc()
		return true
	default:
		observability.PushDispatch.WithLabelValues(d.gateway.Name(), "dropped").Inc()
		middleware.Logger.Warn("push queue full, dropping notification", "gateway", d.gateway.Name())
		return false
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for p := range d.queue {
		observability.PushQueueDepth.Dec()
		d.deliver(p)
	}
}

func (d *Dispatcher) deliver(p Push) {
	defer func() {
		if r := recover(); r != nil {
			observability.PushDispatch.WithLabelValues(d.gateway.Name(), "panic").Inc()
			middleware.Logger.Error("panic in push worker", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout)
	defer cancel()

	err := d.gateway.Send(ctx, p)
	switch {
	case err == nil:
		observability.PushDispatch.WithLabelValues(d.gateway.Name(), "sent").Inc()
	case errors.Is(err, ErrUnregisteredToken):
		observability.PushDispatch.WithLabelValues(d.gateway.Name(), "unregistered").Inc()
		if d.cfg.OnUnregistered != nil {
			d.cfg.OnUnregistered(ctx, p.Token)
		}
	default:
		observability.PushDispatch.WithLabelValues(d.gateway.Name(), "failed").Inc()
		middleware.Logger.Warn("push delivery failed", "gateway", d.gateway.Name(), "error", err)
	}
}

// Shutdown stops accepting pushes and waits for queued ones to finish or for
// ctx to end.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
