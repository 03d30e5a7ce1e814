package server

import (
	"bufio"
	"errors"
	"net"
	"slices"
	"sync"
)

// GameSize is the only supported table size.
const GameSize = 4

var ErrLobbyFull = errors.New("LOBBY_FULL: game already has four seats")

// SeatEntry is one joined player awaiting a full table: display name,
// socket, and the buffered reader that already consumed the join lines
// (and must survive into the game so no buffered bytes are lost).
type SeatEntry struct {
	Name   string
	Conn   net.Conn
	Reader *bufio.Reader
}

// PendingGame is a named lobby of 0–3 seated players. Seat order is join
// order; eviction compacts the slice, so seat indices are not stable
// identities. All mutation happens under the owning Registry's lock until
// the lobby fills, after which the refereeing worker owns it exclusively.
type PendingGame struct {
	Name  string
	Seats []SeatEntry
	full  bool
}

// Registry maps game names to pending lobbies. A single mutex covers every
// compound operation (lookup-or-create, seat, unlink, evict) so that the
// fill-vs-evict race has one linearization point: Seat marking a lobby full
// makes it invisible to eviction before the registry lock is released.
type Registry struct {
	mu      sync.Mutex
	pending map[string]*PendingGame
}

func NewRegistry() *Registry {
	return &Registry{pending: make(map[string]*PendingGame)}
}

// FindOrCreate returns the still-filling lobby named name, creating one if
// absent. A lobby that has filled is unreachable here even before its
// referee calls Unlink; a new join under the same name starts a fresh one.
func (r *Registry) FindOrCreate(name string) *PendingGame {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.pending[name]; ok && !g.full {
		return g
	}
	g := &PendingGame{Name: name, Seats: make([]SeatEntry, 0, GameSize)}
	r.pending[name] = g
	return g
}

// Seat appends a player to the lobby and returns the 0-based join-order
// index. full is true when this seat was the fourth: the caller must then
// Unlink the lobby and referee the game.
func (r *Registry) Seat(g *PendingGame, player string, conn net.Conn, reader *bufio.Reader) (index int, full bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.full || len(g.Seats) >= GameSize {
		return -1, false, ErrLobbyFull
	}
	g.Seats = append(g.Seats, SeatEntry{Name: player, Conn: conn, Reader: reader})
	if len(g.Seats) == GameSize {
		g.full = true
	}
	return len(g.Seats) - 1, g.full, nil
}

// Unlink removes the lobby from the visible set so no future FindOrCreate
// can return it. Safe to call on an already-removed lobby.
func (r *Registry) Unlink(g *PendingGame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.pending[g.Name]; ok && cur == g {
		delete(r.pending, g.Name)
	}
}

// EvictSeat drops one seat from a still-pending lobby, compacting later
// seats down. It refuses full lobbies: once the fourth seat fills, the
// lobby belongs to its referee.
func (r *Registry) EvictSeat(g *PendingGame, index int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.full || index < 0 || index >= len(g.Seats) {
		return false
	}
	g.Seats = slices.Delete(g.Seats, index, index+1)
	return true
}

// PendingCount returns the number of lobbies currently registered.
func (r *Registry) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
