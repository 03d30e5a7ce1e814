package server

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"rats-server/internal/cards"
)

// defaultPollInterval is how often the disconnect monitor sweeps pending
// lobbies. Frequent enough that an abandoned lobby never blocks admission
// for long; the exact value is not load-bearing.
const defaultPollInterval = 100 * time.Millisecond

type Config struct {
	// MaxConns bounds concurrently admitted connections; 0 means unlimited.
	MaxConns int
	// Greeting is sent as an M line the moment a client connects.
	Greeting string
	// Deck supplies shuffled decks; defaults to the math/rand source.
	Deck cards.Source
	// PollInterval overrides the disconnect monitor cadence.
	PollInterval time.Duration
	Logger       *zap.Logger
}

// Server owns the shared state: admission counters, the pending-game
// registry, and the stats counters. One goroutine per accepted connection;
// the accept loop itself is sequential and gated by admission.
type Server struct {
	greeting  string
	deck      cards.Source
	admission *Admission
	registry  *Registry
	stats     *Stats
	monitor   *Monitor
	logger    *zap.Logger
	fatalc    chan error
}

func New(cfg Config) *Server {
	if cfg.Deck == nil {
		cfg.Deck = cards.NewRandomSource()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	s := &Server{
		greeting:  cfg.Greeting,
		deck:      cfg.Deck,
		admission: NewAdmission(cfg.MaxConns),
		registry:  NewRegistry(),
		stats:     NewStats(),
		logger:    cfg.Logger,
		fatalc:    make(chan error, 1),
	}
	s.monitor = NewMonitor(s.registry, s.admission, s.stats, cfg.PollInterval, cfg.Logger)
	return s
}

func (s *Server) Stats() *Stats {
	return s.stats
}

// Fatals delivers errors that must take the whole process down, such as a
// deck source failure observed inside a referee goroutine.
func (s *Server) Fatals() <-chan error {
	return s.fatalc
}

// Serve runs the dispatcher loop until the listener closes: block in
// admission, block in accept, hand the socket to a worker goroutine.
func (s *Server) Serve(ln net.Listener) error {
	go s.monitor.Run()
	defer s.monitor.Stop()

	for {
		s.admission.Acquire()

		conn, err := ln.Accept()
		if err != nil {
			s.admission.Release()
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			// Fatal to this connection only; the dispatcher carries on.
			s.logger.Warn("accept failed", zap.Error(err))
			continue
		}

		s.stats.ConnectionOpened()
		go s.handleConn(conn)
	}
}

// handleConn performs the join handshake and seats the player. The worker
// that fills a table's fourth seat becomes that table's referee and does
// not return until the game is torn down.
func (s *Server) handleConn(conn net.Conn) {
	reader := bufio.NewReader(conn)
	fmt.Fprintf(conn, "%s\n", msgInfo(s.greeting))

	player, errP := readJoinLine(reader)
	game, errG := readJoinLine(reader)
	if errP != nil || errG != nil {
		s.abandon(conn)
		return
	}

	// A full lobby can appear between lookup and seat when four joins race;
	// the next lookup starts a fresh lobby under the same name.
	var lobby *PendingGame
	var full bool
	for {
		lobby = s.registry.FindOrCreate(game)
		var err error
		_, full, err = s.registry.Seat(lobby, player, conn, reader)
		if err == nil {
			break
		}
	}

	s.logger.Info("player joined",
		zap.String("game", game),
		zap.String("player", player))

	if !full {
		// The connection is parked in the lobby; the disconnect monitor
		// owns liveness until a fourth player arrives.
		return
	}

	s.registry.Unlink(lobby)
	session := NewGameSession(lobby)
	referee := NewReferee(session, s.deck, s.admission, s.stats, s.logger)
	if err := referee.Run(); err != nil {
		select {
		case s.fatalc <- err:
		default:
		}
	}
}

// abandon drops a connection that failed its join handshake.
func (s *Server) abandon(conn net.Conn) {
	conn.Close()
	s.admission.Release()
	s.stats.ConnectionClosed()
}

// readJoinLine reads one handshake line. An empty name or a peer that
// disconnects before sending both lines fails the handshake.
func readJoinLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("EMPTY_NAME: handshake line is empty")
	}
	return line, nil
}
