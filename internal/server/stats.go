package server

import (
	"fmt"
	"io"
	"sync/atomic"
)

// Stats holds the process-wide counters. All fields are atomics, so no
// mutex is needed; a snapshot reads each field independently and makes no
// cross-field atomicity promise. Constructed once at startup and handed to
// every component that touches a counter.
type Stats struct {
	currentConns    atomic.Int64
	totalConns      atomic.Int64
	gamesRunning    atomic.Int64
	gamesCompleted  atomic.Int64
	gamesTerminated atomic.Int64
	tricksPlayed    atomic.Int64
}

func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) ConnectionOpened() {
	s.currentConns.Add(1)
	s.totalConns.Add(1)
}

func (s *Stats) ConnectionClosed() {
	s.currentConns.Add(-1)
}

func (s *Stats) GameStarted() {
	s.gamesRunning.Add(1)
}

func (s *Stats) GameEnded() {
	s.gamesRunning.Add(-1)
}

func (s *Stats) GameCompleted() {
	s.gamesCompleted.Add(1)
}

func (s *Stats) GameTerminated() {
	s.gamesTerminated.Add(1)
}

func (s *Stats) TrickPlayed() {
	s.tricksPlayed.Add(1)
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	CurrentConns    int64
	TotalConns      int64
	GamesRunning    int64
	GamesCompleted  int64
	GamesTerminated int64
	TricksPlayed    int64
}

func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		CurrentConns:    s.currentConns.Load(),
		TotalConns:      s.totalConns.Load(),
		GamesRunning:    s.gamesRunning.Load(),
		GamesCompleted:  s.gamesCompleted.Load(),
		GamesTerminated: s.gamesTerminated.Load(),
		TricksPlayed:    s.tricksPlayed.Load(),
	}
}

// Dump writes the snapshot to the diagnostic channel, one counter per line.
func (snap Snapshot) Dump(w io.Writer) {
	fmt.Fprintf(w, "Connected clients: %d\n", snap.CurrentConns)
	fmt.Fprintf(w, "Total clients: %d\n", snap.TotalConns)
	fmt.Fprintf(w, "Games running: %d\n", snap.GamesRunning)
	fmt.Fprintf(w, "Games completed: %d\n", snap.GamesCompleted)
	fmt.Fprintf(w, "Games terminated: %d\n", snap.GamesTerminated)
	fmt.Fprintf(w, "Tricks played: %d\n", snap.TricksPlayed)
}
