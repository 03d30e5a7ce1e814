package server

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rats-server/internal/cards"
	"rats-server/internal/rats"
)

// GameSession is a full table unlinked from the registry: four sockets,
// four display names, seats fixed by the deterministic reseat. Owned
// exclusively by one referee from creation to teardown.
type GameSession struct {
	ID       string
	GameName string
	Seats    [GameSize]SeatEntry
}

// NewGameSession reseats a full lobby: seats are renumbered by ascending
// player name, ties keeping join order, so the same four players end up in
// the same seats regardless of arrival races.
func NewGameSession(g *PendingGame) *GameSession {
	names := make([]string, GameSize)
	for i, e := range g.Seats {
		names[i] = e.Name
	}
	order := rats.Reseat(names)

	s := &GameSession{ID: uuid.New().String(), GameName: g.Name}
	for seat, joinIdx := range order {
		s.Seats[seat] = g.Seats[joinIdx]
	}
	return s
}

// displayName falls back to the seat label when a name is somehow absent.
func (s *GameSession) displayName(seat int) string {
	if name := s.Seats[seat].Name; name != "" {
		return name
	}
	return seatLabel(seat)
}

// Referee runs one GameSession from deal to teardown.
type Referee struct {
	session   *GameSession
	deck      cards.Source
	admission *Admission
	stats     *Stats
	logger    *zap.Logger
}

func NewReferee(session *GameSession, deck cards.Source, admission *Admission, stats *Stats, logger *zap.Logger) *Referee {
	return &Referee{
		session:   session,
		deck:      deck,
		admission: admission,
		stats:     stats,
		logger: logger.With(
			zap.String("session", session.ID),
			zap.String("game", session.GameName)),
	}
}

// send writes one protocol line to a seat. Write failures are deliberately
// ignored: a dead peer surfaces as a read failure on its own turn, which is
// the defined disconnect path.
func (r *Referee) send(seat int, line string) {
	fmt.Fprintf(r.session.Seats[seat].Conn, "%s\n", line)
}

// broadcast sends a line to every seat except the excluded one (-1 for all).
func (r *Referee) broadcast(exclude int, line string) {
	for seat := 0; seat < GameSize; seat++ {
		if seat != exclude {
			r.send(seat, line)
		}
	}
}

// readLine blocks on one line from a seat. An error means the peer is gone;
// there is no read timeout, a stalled peer stalls only its own game.
func (r *Referee) readLine(seat int) (string, error) {
	line, err := r.session.Seats[seat].Reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Run referees the game to completion. The returned error is non-nil only
// when the deck source fails, which the caller treats as fatal to the
// whole process.
func (r *Referee) Run() error {
	defer r.teardown()

	r.announceTeams()

	r.stats.GameStarted()
	defer r.stats.GameEnded()

	game, err := r.deal()
	if err != nil {
		return err
	}

	completed := r.playTricks(game)
	if completed {
		a, b := game.Tally()
		r.broadcast(-1, msgInfo(finalLine(a, b)))
		r.broadcast(-1, msgOver())
		r.stats.GameCompleted()
		r.logger.Info("game completed",
			zap.Int("teamATricks", a),
			zap.Int("teamBTricks", b))
	}
	return nil
}

func (r *Referee) announceTeams() {
	var names [GameSize]string
	for seat := 0; seat < GameSize; seat++ {
		names[seat] = r.session.displayName(seat)
	}
	r.broadcast(-1, msgInfo(teamLine(names)))
}

func (r *Referee) deal() (*rats.Game, error) {
	deck, err := r.deck.NextDeck()
	if err != nil {
		return nil, fmt.Errorf("deck source: %w", err)
	}
	hands, err := cards.Deal(deck)
	if err != nil {
		return nil, fmt.Errorf("deck source: %w", err)
	}
	for seat := 0; seat < GameSize; seat++ {
		r.send(seat, msgHand(hands[seat]))
	}
	return rats.NewGame(hands), nil
}

// playTricks drives the 13-trick loop. Returns false if a seat
// disconnected mid-game, in which case the survivors have already been
// notified and the game counted as terminated.
func (r *Referee) playTricks(game *rats.Game) bool {
	for !game.Finished() {
		for !game.TrickComplete() {
			seat := game.Turn()
			if !r.collectPlay(game, seat) {
				r.handleDisconnect(seat)
				return false
			}
		}
		winner := game.ResolveTrick()
		r.broadcast(-1, msgInfo(trickWonLine(winner)))
		r.stats.TrickPlayed()
	}
	return true
}

// collectPlay prompts seat and reads until one legal play is accepted.
// Invalid input re-prompts the same seat indefinitely without advancing
// the turn: the leader just sees the lead prompt again, a follower gets an
// explicit invalid notice first. Returns false on a read failure.
func (r *Referee) collectPlay(game *rats.Game, seat int) bool {
	leader := seat == game.Leader()
	r.prompt(game, seat, leader)

	for {
		token, err := r.readLine(seat)
		if err != nil {
			return false
		}

		card, err := game.Play(seat, token)
		if err != nil {
			if !leader {
				r.send(seat, msgInvalid())
			}
			r.prompt(game, seat, leader)
			continue
		}

		r.send(seat, msgAccept())
		r.broadcast(seat, msgInfo(playedLine(r.session.displayName(seat), card)))
		return true
	}
}

func (r *Referee) prompt(game *rats.Game, seat int, leader bool) {
	if leader {
		r.send(seat, msgLead())
		return
	}
	lead, _ := game.LeadSuit()
	r.send(seat, msgPlayPrompt(lead))
}

// handleDisconnect tells the three surviving seats who dropped and ends
// the game. The interrupted trick credits no one.
func (r *Referee) handleDisconnect(seat int) {
	r.broadcast(seat, msgInfo(disconnectLine(r.session.displayName(seat))))
	r.broadcast(seat, msgOver())
	r.stats.GameTerminated()
	r.logger.Info("game terminated by disconnect",
		zap.String("player", r.session.displayName(seat)))
}

// teardown closes every seat's socket and releases the four admission
// slots, once each, whether or not the sockets are still open.
func (r *Referee) teardown() {
	for seat := 0; seat < GameSize; seat++ {
		r.session.Seats[seat].Conn.Close()
		r.admission.Release()
		r.stats.ConnectionClosed()
	}
}
