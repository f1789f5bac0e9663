// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-clerk-fapi/internal/logger"
)

// DefaultPollInterval is used when a Poller is created with a non-positive
// interval.
const DefaultPollInterval = 30 * time.Second

// Poller calls Syncer.Refresh on a fixed interval.
type Poller struct {
	syncer   Syncer
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a stopped poller.
func NewPoller(syncer Syncer, interval time.Duration, log *logger.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Poller{syncer: syncer, interval: interval, logger: log}
}

// Interval returns the refresh period.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Run starts polling in a new goroutine. Calling Run on a running poller is
// a no-op.
func (p *Poller) Run(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.runningLocked() {
		return
	}
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.loop(ctx, p.done)
}

// Stop cancels polling and waits for an in-flight refresh to return.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the polling loop is alive. It turns false once
// Stop is called or the context passed to Run is done.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runningLocked()
}

func (p *Poller) runningLocked() bool {
	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	err := p.syncer.Refresh(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	p.logger.Warn().
		Err(err).
		Str("func", "Poller.refresh").
		Dur("interval", p.interval).
		Msg("background refresh failed")
}
