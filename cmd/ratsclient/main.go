package main

import (
	"errors"
	"fmt"
	"net"
	"os"

	"rats-server/internal/client"
)

const (
	exitUsage       = 3
	exitConnect     = 5
	exitProtocol    = 7
	exitUserQuit    = 17
	exitInvalidArgs = 20
)

func dieConnect() {
	fmt.Fprintln(os.Stderr, "ratsclient: unable to connect to the server")
	os.Exit(exitConnect)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "Usage: ./ratsclient clientname game port")
		os.Exit(exitUsage)
	}
	for _, arg := range os.Args[1:] {
		if arg == "" {
			fmt.Fprintln(os.Stderr, "ratsclient: invalid arguments")
			os.Exit(exitInvalidArgs)
		}
	}
	name, game, port := os.Args[1], os.Args[2], os.Args[3]

	conn, err := net.Dial("tcp", net.JoinHostPort("localhost", port))
	if err != nil {
		dieConnect()
	}
	defer conn.Close()

	c := client.New(conn, conn, os.Stdin, os.Stdout)
	if err := c.Join(name, game); err != nil {
		dieConnect()
	}

	switch err := c.Run(); {
	case err == nil:
		os.Exit(0)
	case errors.Is(err, client.ErrUserQuit):
		fmt.Fprintln(os.Stderr, "ratsclient: user has quit")
		os.Exit(exitUserQuit)
	default:
		fmt.Fprintln(os.Stderr, "ratsclient: a protocol error occurred")
		os.Exit(exitProtocol)
	}
}
