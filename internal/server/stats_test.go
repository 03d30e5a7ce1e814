package server

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats_Counters(t *testing.T) {
	assert := assert.New(t)
	s := NewStats()

	s.ConnectionOpened()
	s.ConnectionOpened()
	s.ConnectionClosed()
	s.GameStarted()
	s.GameCompleted()
	s.GameEnded()
	s.GameTerminated()
	for rep0 := 0; rep0 < 13; rep0++ {
		s.TrickPlayed()
	}

	snap := s.Snapshot()
	assert.Equal(int64(1), snap.CurrentConns)
	assert.Equal(int64(2), snap.TotalConns)
	assert.Equal(int64(0), snap.GamesRunning)
	assert.Equal(int64(1), snap.GamesCompleted)
	assert.Equal(int64(1), snap.GamesTerminated)
	assert.Equal(int64(13), snap.TricksPlayed)
}

func TestStats_ConcurrentIncrements(t *testing.T) {
	s := NewStats()

	var wg sync.WaitGroup
	for rep0 := 0; rep0 < 50; rep0++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rep0 := 0; rep0 < 100; rep0++ {
				s.ConnectionOpened()
				s.TrickPlayed()
				s.ConnectionClosed()
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, int64(5000), snap.TotalConns)
	assert.Equal(t, int64(0), snap.CurrentConns)
	assert.Equal(t, int64(5000), snap.TricksPlayed)
}

func TestSnapshot_Dump(t *testing.T) {
	s := NewStats()
	s.ConnectionOpened()
	s.GameStarted()

	var b strings.Builder
	s.Snapshot().Dump(&b)

	out := b.String()
	assert.Contains(t, out, "Connected clients: 1")
	assert.Contains(t, out, "Total clients: 1")
	assert.Contains(t, out, "Games running: 1")
	assert.Contains(t, out, "Games completed: 0")
	assert.Contains(t, out, "Games terminated: 0")
	assert.Contains(t, out, "Tricks played: 0")
}
