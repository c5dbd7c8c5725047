package widget

import (
	"context"
	"sync"
	"time"
)

// DefaultSlideInterval is the carousel auto-advance period.
const DefaultSlideInterval = 4 * time.Second

// Carousel cycles through a fixed number of slides.
type Carousel struct {
	mu       sync.Mutex
	count    int
	current  int
	paused   bool
	interval time.Duration
	restart  chan struct{}
}

func NewCarousel(count int, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = DefaultSlideInterval
	}
	return &Carousel{count: count, interval: interval, restart: make(chan struct{}, 1)}
}

// GoTo moves to slide i, wrapping in both directions, and restarts the
// auto-advance timer.
func (c *Carousel) GoTo(i int) int {
	c.mu.Lock()
	idx := c.goTo(i)
	c.mu.Unlock()
	select {
	case c.restart <- struct{}{}:
	default:
	}
	return idx
}

func (c *Carousel) goTo(i int) int {
	if c.count <= 0 {
		return 0
	}
	c.current = ((i % c.count) + c.count) % c.count
	return c.current
}

// Next advances by one slide.
func (c *Carousel) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goTo(c.current + 1)
}

func (c *Carousel) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Pause stops auto-advance (hover); Resume restarts it.
func (c *Carousel) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
}

func (c *Carousel) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
	select {
	case c.restart <- struct{}{}:
	default:
	}
}

// Run auto-advances until ctx is done, calling onChange with each new index.
func (c *Carousel) Run(ctx context.Context, onChange func(int)) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.restart:
			ticker.Reset(c.interval)
		case <-ticker.C:
			c.mu.Lock()
			if c.paused {
				c.mu.Unlock()
				continue
			}
			idx := c.goTo(c.current + 1)
			c.mu.Unlock()
			if onChange != nil {
				onChange(idx)
			}
		}
	}
}
