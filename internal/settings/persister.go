package settings

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/iiroan/blue/internal/storage"
)

// persister writes settings blobs from a single goroutine. Only the latest
// pending blob is kept, so storage always converges on the most recent
// in-memory state and never sees an older blob after a newer one.
type persister struct {
	adapter storage.Adapter
	key     string
	timeout time.Duration
	logger  *log.Logger

	mu      sync.Mutex
	pending *string
	queued  uint64 // sequence of the latest enqueued blob
	written uint64 // sequence of the latest attempted blob
	waiters []flushWaiter
	closed  bool

	wake    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
}

type flushWaiter struct {
	seq  uint64
	done chan struct{}
}

func newPersister(adapter storage.Adapter, key string, timeout time.Duration, logger *log.Logger) *persister {
	p := &persister{
		adapter: adapter,
		key:     key,
		timeout: timeout,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go p.run()
	return p
}

// enqueue schedules blob for writing, replacing any blob not yet written.
func (p *persister) enqueue(blob string) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.logger.Warn("settings store closed, dropping write")
		return
	}
	p.pending = &blob
	p.queued++
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// flush blocks until every blob enqueued so far has been attempted.
func (p *persister) flush(ctx context.Context) error {
	p.mu.Lock()
	if p.written >= p.queued {
		p.mu.Unlock()
		return nil
	}
	w := flushWaiter{seq: p.queued, done: make(chan struct{})}
	p.waiters = append(p.waiters, w)
	p.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close flushes and stops the writer goroutine.
func (p *persister) close(ctx context.Context) error {
	err := p.flush(ctx)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return err
	}
	p.closed = true
	p.mu.Unlock()

	close(p.quit)
	select {
	case <-p.stopped:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}

func (p *persister) run() {
	defer close(p.stopped)
	for {
		select {
		case <-p.wake:
			p.drain()
		case <-p.quit:
			p.drain()
			return
		}
	}
}

func (p *persister) drain() {
	for {
		p.mu.Lock()
		if p.pending == nil {
			p.mu.Unlock()
			return
		}
		blob, seq := *p.pending, p.queued
		p.pending = nil
		p.mu.Unlock()

		p.write(blob)

		p.mu.Lock()
		p.written = seq
		remaining := p.waiters[:0]
		for _, w := range p.waiters {
			if w.seq <= seq {
				close(w.done)
				continue
			}
			remaining = append(remaining, w)
		}
		p.waiters = remaining
		p.mu.Unlock()
	}
}

func (p *persister) write(blob string) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.adapter.Set(ctx, p.key, blob); err != nil {
		// At most once: the in-memory record stays authoritative.
		p.logger.Error("failed to save settings", "key", p.key, "error", err)
		return
	}
	p.logger.Debug("settings saved", "key", p.key, "bytes", len(blob))
}
