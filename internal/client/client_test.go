package client

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newScripted(serverLines, stdinLines string) (*Client, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	ui := &bytes.Buffer{}
	c := New(strings.NewReader(serverLines), out, strings.NewReader(stdinLines), ui)
	return c, out, ui
}

func TestJoin_SendsBothLines(t *testing.T) {
	c, out, _ := newScripted("", "")
	assert.NoError(t, c.Join("Ann", "Foo"))
	assert.Equal(t, "Ann\nFoo\n", out.String())
}

func TestRun_FullExchange(t *testing.T) {
	assert := assert.New(t)

	server := "Mwelcome\n" +
		"HAS2S3C\n" +
		"L\n" +
		"A\n" +
		"PC\n" +
		"A\n" +
		"O\n"
	// Garbage then a real lead; an off-suit attempt then the forced club.
	stdin := "xx\nAS\n2S\n3C\n"

	c, out, ui := newScripted(server, stdin)
	err := c.Run()
	assert.NoError(err)

	// Only validated plays reach the server.
	assert.Equal("AS\n3C\n", out.String())

	display := ui.String()
	assert.Contains(display, "Info: welcome")
	assert.Contains(display, "Lead> ")
	assert.Contains(display, "[C] play> ")
	assert.Contains(display, "S: A 2")
	assert.Contains(display, "C: 3")
}

func TestRun_AcceptRemovesLastSent(t *testing.T) {
	server := "H2S3S\n" + "L\n" + "A\n" + "L\n" + "A\n" + "O\n"
	// After 2S is accepted it is gone: resending it is rejected locally
	// and the client re-prompts for the remaining 3S.
	stdin := "2S\n2S\n3S\n"

	c, out, _ := newScripted(server, stdin)
	assert.NoError(t, c.Run())
	assert.Equal(t, "2S\n3S\n", out.String())
	assert.Empty(t, c.hand)
}

func TestRun_VoidSeatMayDiscard(t *testing.T) {
	// Holding two spades and no hearts, a heart lead permits a spade.
	server := "H2S3S\n" + "PH\n" + "O\n"
	stdin := "2S\n"

	c, out, _ := newScripted(server, stdin)
	assert.NoError(t, c.Run())
	assert.Equal(t, "2S\n", out.String())
}

func TestRun_FollowSuitEnforcedLocally(t *testing.T) {
	// Holding a heart, the heart lead forbids the spade.
	server := "H2SAH\n" + "PH\n" + "O\n"
	stdin := "2S\nAH\n"

	c, out, _ := newScripted(server, stdin)
	assert.NoError(t, c.Run())
	assert.Equal(t, "AH\n", out.String())
}

func TestRun_InvalidNoticePrinted(t *testing.T) {
	server := "H2S\n" + "I\n" + "O\n"
	c, _, ui := newScripted(server, "")
	assert.NoError(t, c.Run())
	assert.Contains(t, ui.String(), "Invalid play.")
}

func TestRun_SpacedFollowPrompt(t *testing.T) {
	// The follow prompt is tolerated with or without a space.
	server := "H2H\n" + "P H\n" + "O\n"
	stdin := "2H\n"

	c, out, _ := newScripted(server, stdin)
	assert.NoError(t, c.Run())
	assert.Equal(t, "2H\n", out.String())
}

func TestRun_ProtocolErrors(t *testing.T) {
	assert := assert.New(t)

	cases := map[string]string{
		"unknown tag":    "X\n",
		"second deal":    "H2S\nH3S\n",
		"bad suit":       "H2S\nPX\n",
		"empty payload":  "H\n",
		"odd hand chars": "H2SA\n",
		"server eof":     "Mhi\n",
	}
	for label, server := range cases {
		c, _, _ := newScripted(server, "")
		err := c.Run()
		assert.ErrorIs(err, ErrProtocol, "case %q", label)
	}
}

func TestRun_UserQuit(t *testing.T) {
	server := "H2S\n" + "L\n"
	c, _, _ := newScripted(server, "") // stdin closed immediately
	assert.ErrorIs(t, c.Run(), ErrUserQuit)
}

func TestDisplayHand_SortedBySuitAndRank(t *testing.T) {
	c, _, ui := newScripted("H2SAS5CKH3D\nO\n", "")
	assert.NoError(t, c.Run())

	out := ui.String()
	assert.Contains(t, out, "S: A 2\n")
	assert.Contains(t, out, "C: 5\n")
	assert.Contains(t, out, "D: 3\n")
	assert.Contains(t, out, "H: K\n")
}
