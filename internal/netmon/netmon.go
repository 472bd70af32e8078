// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

// Package netmon watches network reachability with a periodic dial probe and
// reports transitions, so the engine can run a catch-up pass the moment
// connectivity returns.
package netmon

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/crohrer/booksync/internal/config"
	"github.com/crohrer/booksync/internal/logger"
)

// Status is the observed reachability of the remote endpoint.
type Status int

const (
	Offline Status = iota
	Online
)

func (s Status) String() string {
	if s == Online {
		return "online"
	}
	return "offline"
}

// Observer exposes the stream of reachability transitions.
type Observer interface {
	Events() <-chan Status
}

// DialFunc probes one address. A nil error means reachable.
type DialFunc func(ctx context.Context, addr string) error

// Monitor probes a fixed address on an interval and emits a Status only when
// it changes.
type Monitor struct {
	addr     string
	interval time.Duration
	dial     DialFunc
	events   chan Status
	log      *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMonitor(cfg config.Net, log *logger.Logger) *Monitor {
	interval := cfg.ProbeInterval
	if interval <= 0 {
		interval = config.DefaultProbeInterval
	}

	return &Monitor{
		addr:     cfg.ProbeAddress,
		interval: interval,
		dial:     tcpProbe,
		events:   make(chan Status, 4),
		log:      log,
	}
}

// Start launches the probe loop. The first probe runs immediately so the
// initial state is known without waiting a full interval.
func (m *Monitor) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		last := Offline
		probe := func() {
			status := m.probe(ctx)
			if status != last {
				m.log.Info().Str("status", status.String()).Msg("network reachability changed")
				m.emit(status)
				last = status
			}
		}

		probe()

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				probe()
			}
		}
	}()
}

// Stop ends the probe loop.
func (m *Monitor) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}

// Events returns the transition stream. A transition arriving while the
// buffer is full is dropped rather than queued.
func (m *Monitor) Events() <-chan Status {
	return m.events
}

func (m *Monitor) probe(ctx context.Context) Status {
	if err := m.dial(ctx, m.addr); err != nil {
		return Offline
	}
	return Online
}

func (m *Monitor) emit(s Status) {
	select {
	case m.events <- s:
	default:
	}
}

func tcpProbe(ctx context.Context, addr string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return conn.Close()
}
