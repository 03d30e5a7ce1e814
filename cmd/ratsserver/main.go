package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"rats-server/internal/server"
)

// Each fatal startup condition has its own exit status.
const (
	exitInvalidPort   = 1
	exitListenFailure = 6
	exitDeckFailure   = 9
	exitUsage         = 16
)

const maxConnsLimit = 10000

func dieUsage() {
	fmt.Fprintln(os.Stderr, "Usage: ./ratsserver maxconns greeting [portnum]")
	os.Exit(exitUsage)
}

// parseMaxConns accepts a base-10 integer 0..10000, optionally with a
// leading '+'. No whitespace, no trailing junk; 0 means unlimited.
func parseMaxConns(s string) (int, bool) {
	if s == "" || strings.HasPrefix(s, "-") {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > maxConnsLimit {
		return 0, false
	}
	return v, true
}

func main() {
	if len(os.Args) < 3 || len(os.Args) > 4 {
		dieUsage()
	}
	maxConns, ok := parseMaxConns(os.Args[1])
	if !ok {
		dieUsage()
	}
	greeting := os.Args[2]
	if greeting == "" {
		dieUsage()
	}

	// Port: explicit argument, then $PORT (godotenv), then OS-assigned.
	port := "0"
	if len(os.Args) == 4 {
		port = os.Args[3]
	} else if env := os.Getenv("PORT"); env != "" {
		port = env
	}

	addr, err := net.ResolveTCPAddr("tcp", net.JoinHostPort("", port))
	if err != nil {
		fmt.Fprintln(os.Stderr, "ratsserver: port invalid")
		os.Exit(exitInvalidPort)
	}
	ln, err := net.ListenTCP("tcp", addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ratsserver: unable to listen on given port \"%s\"\n", port)
		os.Exit(exitListenFailure)
	}

	// Report the actual bound port on the diagnostic channel.
	fmt.Fprintf(os.Stderr, "%d\n", ln.Addr().(*net.TCPAddr).Port)

	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	srv := server.New(server.Config{
		MaxConns: maxConns,
		Greeting: greeting,
		Logger:   logger,
	})

	// SIGHUP dumps one stats snapshot per delivery.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			srv.Stats().Snapshot().Dump(os.Stderr)
		}
	}()

	go srv.Serve(ln)

	// The server runs until the external deck generator fails, which is
	// the one runtime condition nothing useful can survive.
	err = <-srv.Fatals()
	logger.Error("deck source failed", zap.Error(err))
	fmt.Fprintln(os.Stderr, "ratsserver: unable to deal")
	os.Exit(exitDeckFailure)
}
