// Package client implements the interactive peer of the wire protocol:
// it displays the dealt hand, prompts the human for plays, and validates
// every card locally before it ever reaches the server.
package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"rats-server/internal/cards"
)

var (
	// ErrProtocol means the server sent something the client has no legal
	// way to recover from mid-protocol.
	ErrProtocol = errors.New("a protocol error occurred")
	// ErrUserQuit means the human closed stdin.
	ErrUserQuit = errors.New("user has quit")
)

// Client drives one game from the player's side. Reader/writer pairs are
// injected so tests can script both the server and the human.
type Client struct {
	server *bufio.Reader
	out    io.Writer // to the server
	stdin  *bufio.Reader
	ui     io.Writer // to the human

	hand     []cards.Card
	dealt    bool
	lastSent cards.Card
	haveLast bool
}

func New(server io.Reader, out io.Writer, stdin io.Reader, ui io.Writer) *Client {
	return &Client{
		server: bufio.NewReader(server),
		out:    out,
		stdin:  bufio.NewReader(stdin),
		ui:     ui,
	}
}

// Join sends the two handshake lines: player name, then game name.
func (c *Client) Join(name, game string) error {
	if _, err := fmt.Fprintf(c.out, "%s\n%s\n", name, game); err != nil {
		return fmt.Errorf("join handshake: %w", err)
	}
	return nil
}

// Run dispatches server lines until the game ends. A nil return means the
// server sent the game-over marker; everything else is ErrProtocol or
// ErrUserQuit.
func (c *Client) Run() error {
	for {
		raw, err := c.server.ReadString('\n')
		if err != nil {
			// The server never goes silent mid-game on purpose.
			return ErrProtocol
		}
		line := strings.TrimRight(raw, "\r\n")
		if line == "" {
			return ErrProtocol
		}

		switch line[0] {
		case 'M':
			fmt.Fprintf(c.ui, "Info: %s\n", line[1:])
		case 'H':
			if err := c.handleHand(line[1:]); err != nil {
				return err
			}
		case 'L':
			if err := c.promptAndPlay(0, false); err != nil {
				return err
			}
		case 'P':
			lead, ok := parseLeadSuit(line[1:])
			if !ok {
				return ErrProtocol
			}
			if err := c.promptAndPlay(lead, true); err != nil {
				return err
			}
		case 'I':
			fmt.Fprintln(c.ui, "Invalid play.")
		case 'A':
			c.handleAccept()
		case 'O':
			return nil
		default:
			return ErrProtocol
		}
	}
}

// handleHand parses the dealt-hand payload. A second deal is a protocol
// violation. Any even-length payload is accepted; the server is free to
// deal and display more cards than the 13 that become legal plays.
func (c *Client) handleHand(payload string) error {
	if c.dealt {
		return ErrProtocol
	}
	if len(payload)%2 != 0 || payload == "" {
		return ErrProtocol
	}
	for i := 0; i < len(payload); i += 2 {
		card, err := cards.Parse(payload[i : i+2])
		if err != nil {
			return ErrProtocol
		}
		c.hand = append(c.hand, card)
	}
	c.sortHand()
	c.dealt = true
	c.displayHand()
	return nil
}

// parseLeadSuit accepts both "PS" and "P S" shapes of the follow prompt.
func parseLeadSuit(payload string) (cards.Suit, bool) {
	payload = strings.TrimPrefix(payload, " ")
	if len(payload) != 1 {
		return 0, false
	}
	s := cards.Suit(payload[0])
	return s, s.Valid()
}

// promptAndPlay loops until the human enters a card that is well-formed,
// in hand, and (for a follower holding the led suit) follows suit. Invalid
// input re-prompts locally and never reaches the server.
func (c *Client) promptAndPlay(lead cards.Suit, following bool) error {
	for {
		c.displayHand()
		if following {
			fmt.Fprintf(c.ui, "[%s] play> ", lead)
		} else {
			fmt.Fprint(c.ui, "Lead> ")
		}

		raw, err := c.stdin.ReadString('\n')
		if err != nil && raw == "" {
			return ErrUserQuit
		}
		input := strings.TrimRight(raw, "\r\n")

		card, err := cards.Parse(input)
		if err != nil {
			continue
		}
		if !c.inHand(card) {
			continue
		}
		if following && card.Suit != lead && c.holdsSuit(lead) {
			continue
		}

		if _, err := fmt.Fprintf(c.out, "%s\n", card); err != nil {
			return ErrProtocol
		}
		c.lastSent = card
		c.haveLast = true
		return nil
	}
}

// handleAccept removes the last transmitted card from the local hand.
func (c *Client) handleAccept() {
	if !c.haveLast {
		return
	}
	for i, card := range c.hand {
		if card == c.lastSent {
			c.hand = append(c.hand[:i], c.hand[i+1:]...)
			break
		}
	}
	c.haveLast = false
}

func (c *Client) inHand(card cards.Card) bool {
	for _, held := range c.hand {
		if held == card {
			return true
		}
	}
	return false
}

func (c *Client) holdsSuit(suit cards.Suit) bool {
	for _, held := range c.hand {
		if held.Suit == suit {
			return true
		}
	}
	return false
}

// sortHand groups by suit (S, C, D, H) with ranks descending inside each
// suit, for a stable display.
func (c *Client) sortHand() {
	sort.SliceStable(c.hand, func(i, j int) bool {
		a, b := c.hand[i], c.hand[j]
		if a.Suit != b.Suit {
			return a.Suit.Order() < b.Suit.Order()
		}
		return a.Rank.Value() > b.Rank.Value()
	})
}

// displayHand prints one row per suit, e.g. "S: A T 3".
func (c *Client) displayHand() {
	for _, suit := range cards.Suits {
		fmt.Fprintf(c.ui, "%s:", suit)
		for _, card := range c.hand {
			if card.Suit == suit {
				fmt.Fprintf(c.ui, " %c", byte(card.Rank))
			}
		}
		fmt.Fprintln(c.ui)
	}
}
