package cards

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Valid(t *testing.T) {
	assert := assert.New(t)

	card, err := Parse("AS")
	assert.NoError(err)
	assert.Equal(Rank('A'), card.Rank)
	assert.Equal(Spades, card.Suit)
	assert.Equal("AS", card.String())

	card, err = Parse("2H")
	assert.NoError(err)
	assert.Equal(2, card.Rank.Value())
	assert.Equal(Hearts, card.Suit)
}

func TestParse_Invalid(t *testing.T) {
	invalid := []string{
		"",    // empty
		"A",   // too short
		"ASX", // too long
		"1S",  // no rank '1'
		"0S",
		"AX", // no suit 'X'
		"SA", // suit/rank swapped
		"as", // lowercase
	}

	for _, token := range invalid {
		_, err := Parse(token)
		assert.ErrorIs(t, err, ErrBadToken, "token %q should not parse", token)
	}
}

func TestRankOrdering(t *testing.T) {
	assert := assert.New(t)

	order := []Rank{'2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K', 'A'}
	for i := 1; i < len(order); i++ {
		assert.Greater(order[i].Value(), order[i-1].Value(),
			"rank %c should outrank %c", order[i], order[i-1])
	}
}

func TestBeats(t *testing.T) {
	assert := assert.New(t)

	aceSpades := Card{'A', Spades}
	twoSpades := Card{'2', Spades}
	kingHearts := Card{'K', Hearts}

	// Higher rank of the led suit wins.
	assert.True(aceSpades.Beats(twoSpades, Spades))
	assert.False(twoSpades.Beats(aceSpades, Spades))

	// Off-suit cards never win, regardless of rank.
	assert.False(kingHearts.Beats(twoSpades, Spades))
	assert.True(twoSpades.Beats(kingHearts, Spades))
}

// buildDeck lays out the 52 cards in suit-major order as a token stream.
func buildDeck() string {
	var b strings.Builder
	for _, suit := range Suits {
		for _, rank := range Ranks {
			b.WriteString(Card{rank, suit}.String())
		}
	}
	return b.String()
}

func TestDeal_PartitionsDeck(t *testing.T) {
	assert := assert.New(t)

	hands, err := Deal(buildDeck())
	assert.NoError(err)

	seen := make(map[Card]bool)
	for p := 0; p < 4; p++ {
		assert.Len(hands[p], HandSize)
		for _, c := range hands[p] {
			assert.False(seen[c], "card %s dealt twice", c)
			seen[c] = true
		}
	}
	assert.Equal(52, len(seen))
}

func TestDeal_StrideInterleave(t *testing.T) {
	deck := buildDeck()
	hands, err := Deal(deck)
	assert.NoError(t, err)

	// Hand p takes pairs at offsets p*2, p*2+8, p*2+16, ...
	for p := 0; p < 4; p++ {
		for i, c := range hands[p] {
			off := p*2 + i*8
			assert.Equal(t, deck[off:off+2], c.String())
		}
	}
}

func TestDeal_Malformed(t *testing.T) {
	assert := assert.New(t)

	_, err := Deal("")
	assert.Error(err)

	_, err = Deal(strings.Repeat("AS", 52)) // 104 chars but all duplicates
	assert.Error(err)

	bad := "XY" + buildDeck()[2:]
	_, err = Deal(bad)
	assert.Error(err)
}

func TestRandomSource_ProducesValidDecks(t *testing.T) {
	assert := assert.New(t)

	src := NewSeededSource(42)
	deck, err := src.NextDeck()
	assert.NoError(err)
	assert.Len(deck, DeckChars)

	_, err = Deal(deck)
	assert.NoError(err)

	// Same seed, same sequence.
	again, err := NewSeededSource(42).NextDeck()
	assert.NoError(err)
	assert.Equal(deck, again)
}
