package server

import (
	"fmt"
	"strings"

	"rats-server/internal/cards"
	"rats-server/internal/rats"
)

// Wire protocol: newline-terminated lines, identified by a leading tag.
const (
	TagMessage = 'M' // free text, printed to the human
	TagHand    = 'H' // dealt hand, concatenated rank/suit pairs
	TagLead    = 'L' // "you lead this trick"
	TagPlay    = 'P' // "follow this suit", payload one suit char
	TagInvalid = 'I' // "your previous input was invalid"
	TagAccept  = 'A' // "your card was accepted"
	TagOver    = 'O' // "game over"
)

func msgInfo(text string) string {
	return string(TagMessage) + text
}

func msgHand(hand []cards.Card) string {
	var b strings.Builder
	b.WriteByte(TagHand)
	for _, c := range hand {
		b.WriteString(c.String())
	}
	return b.String()
}

func msgLead() string {
	return string(TagLead)
}

func msgPlayPrompt(lead cards.Suit) string {
	return string(TagPlay) + lead.String()
}

func msgInvalid() string {
	return string(TagInvalid)
}

func msgAccept() string {
	return string(TagAccept)
}

func msgOver() string {
	return string(TagOver)
}

// seatLabel names a seat on the wire ("P1".."P4"). Used where the protocol
// calls for a seat label rather than a display name, and as the fallback
// when a display name is absent.
func seatLabel(seat int) string {
	return fmt.Sprintf("P%d", seat+1)
}

func teamLine(names [GameSize]string) string {
	return fmt.Sprintf("Team A is %s and %s. Team B is %s and %s.",
		names[0], names[2], names[1], names[3])
}

func playedLine(player string, card cards.Card) string {
	return fmt.Sprintf("%s played %s.", player, card)
}

func trickWonLine(seat int) string {
	return fmt.Sprintf("Trick won by %s.", seatLabel(seat))
}

func disconnectLine(player string) string {
	return fmt.Sprintf("%s has disconnected.", player)
}

func finalLine(a, b int) string {
	result := fmt.Sprintf("Game over. Team A took %d tricks, Team B took %d tricks. ", a, b)
	switch {
	case a > b:
		return result + rats.TeamA.String() + " wins!"
	case b > a:
		return result + rats.TeamB.String() + " wins!"
	default:
		return result + "The game is a draw."
	}
}
