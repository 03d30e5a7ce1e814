package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand_ContainsAndRemove(t *testing.T) {
	assert := assert.New(t)

	h := NewHand([]Card{{'A', Spades}, {'K', Hearts}, {'2', Clubs}})
	assert.Equal(3, h.Count())

	assert.True(h.Contains(Card{'A', Spades}))
	assert.False(h.Contains(Card{'A', Hearts}))

	assert.True(h.Remove(Card{'A', Spades}))
	assert.False(h.Contains(Card{'A', Spades}), "removed card must not remain in hand")
	assert.Equal(2, h.Count())

	// A card can only be played once.
	assert.False(h.Remove(Card{'A', Spades}))
	assert.Equal(2, h.Count())
}

func TestHand_HasSuit(t *testing.T) {
	assert := assert.New(t)

	h := NewHand([]Card{{'A', Spades}, {'3', Spades}, {'K', Hearts}})
	assert.True(h.HasSuit(Spades))
	assert.True(h.HasSuit(Hearts))
	assert.False(h.HasSuit(Diamonds))

	h.Remove(Card{'K', Hearts})
	assert.False(h.HasSuit(Hearts), "suit presence must track removals")
}

func TestHand_Cards(t *testing.T) {
	dealt := []Card{{'A', Spades}, {'K', Hearts}}
	h := NewHand(dealt)
	assert.ElementsMatch(t, dealt, h.Cards())
}
