package server

import (
	"net"
	"slices"
	"time"

	"go.uber.org/zap"
)

// probeTimeout bounds the non-blocking readiness check on a parked socket.
const probeTimeout = time.Millisecond

// Monitor sweeps the still-pending lobbies and evicts seats whose sockets
// have closed, so an abandoned lobby frees its admission slots within
// roughly one polling interval. Full lobbies belong to their referee and
// are never touched.
type Monitor struct {
	registry  *Registry
	admission *Admission
	stats     *Stats
	interval  time.Duration
	logger    *zap.Logger
	stop      chan struct{}
}

func NewMonitor(registry *Registry, admission *Admission, stats *Stats, interval time.Duration, logger *zap.Logger) *Monitor {
	return &Monitor{
		registry:  registry,
		admission: admission,
		stats:     stats,
		interval:  interval,
		logger:    logger,
		stop:      make(chan struct{}),
	}
}

// Run loops until Stop is called. Meant to be launched as a goroutine at
// server startup.
func (m *Monitor) Run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-m.stop:
			return
		}
	}
}

func (m *Monitor) Stop() {
	close(m.stop)
}

// Sweep probes every seat of every pending lobby once. Runs under the
// registry lock, which serializes it against joins: a lobby observed full
// here is already owned by a referee and is skipped.
func (m *Monitor) Sweep() {
	m.registry.mu.Lock()
	defer m.registry.mu.Unlock()

	for name, g := range m.registry.pending {
		if g.full {
			continue
		}
		for i := 0; i < len(g.Seats); {
			entry := g.Seats[i]
			if !seatClosed(entry) {
				i++
				continue
			}
			entry.Conn.Close()
			g.Seats = slices.Delete(g.Seats, i, i+1)
			m.admission.Release()
			m.stats.ConnectionClosed()
			m.logger.Info("evicted disconnected player from lobby",
				zap.String("game", g.Name),
				zap.String("player", entry.Name))
		}
		if len(g.Seats) == 0 {
			delete(m.registry.pending, name)
		}
	}
}

// seatClosed performs a bounded peek on the seat's buffered reader. A
// timeout means the peer is quiet but alive; data means alive (the bytes
// stay buffered for the referee); anything else means the socket is gone.
func seatClosed(entry SeatEntry) bool {
	if err := entry.Conn.SetReadDeadline(time.Now().Add(probeTimeout)); err != nil {
		return true
	}
	_, err := entry.Reader.Peek(1)
	// Clear the deadline so a later blocking read is unaffected.
	_ = entry.Conn.SetReadDeadline(time.Time{})

	if err == nil {
		return false
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return false
	}
	return true
}
