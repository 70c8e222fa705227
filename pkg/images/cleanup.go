package images

import (
	"log/slog"
	"sync"
)

type remover interface {
	Remove(ref string) error
}

// Cleaner deletes stale images in the background. Requests hand it a
// reference and move on; failures only ever reach the log.
type Cleaner struct {
	store remover
	log   *slog.Logger
	jobs  chan string

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewCleaner(store remover, log *slog.Logger, buffer int) *Cleaner {
	c := &Cleaner{
		store: store,
		log:   log,
		jobs:  make(chan string, buffer),
	}
	c.wg.Add(1)
	go c.run()
	return c
}

// Enqueue schedules a reference for deletion without blocking. When the
// queue is full the deletion gets its own goroutine.
func (c *Cleaner) Enqueue(ref string) {
	if ref == "" {
		return
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		c.remove(ref)
		return
	}

	select {
	case c.jobs <- ref:
	default:
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.remove(ref)
		}()
	}
}

// Close stops accepting work and waits for queued deletions to finish.
func (c *Cleaner) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.jobs)
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Cleaner) run() {
	defer c.wg.Done()
	for ref := range c.jobs {
		c.remove(ref)
	}
}

func (c *Cleaner) remove(ref string) {
	if err := c.store.Remove(ref); err != nil {
		c.log.Error("failed to delete stale image", slog.String("ref", ref), slog.Any("err", err))
		return
	}
	c.log.Debug("deleted stale image", slog.String("ref", ref))
}
