package console

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Pacer holds the display for a fixed delay so a human can read each phase
type Pacer struct {
	clock quartz.Clock
	delay time.Duration
	stop  chan struct{}
	once  sync.Once
}

// NewPacer creates a pacer that pauses for delay. A zero delay never waits.
func NewPacer(clock quartz.Clock, delay time.Duration) *Pacer {
	return &Pacer{
		clock: clock,
		delay: delay,
		stop:  make(chan struct{}),
	}
}

// Pause blocks for the configured delay or until Stop is called
func (p *Pacer) Pause() {
	if p == nil || p.delay <= 0 {
		return
	}

	fired := make(chan struct{})
	timer := p.clock.AfterFunc(p.delay, func() {
		close(fired)
	})
	defer timer.Stop()

	select {
	case <-fired:
	case <-p.stop:
	}
}

// Stop releases any pause in progress and makes later pauses return at once
func (p *Pacer) Stop() {
	p.once.Do(func() {
		close(p.stop)
	})
}
