// Package deck implements the shared draw pile: the integers 1 through 100,
// shuffled uniformly per level. Every card in play is globally unique.
package deck

import (
	rand "math/rand/v2"
	"slices"
)

// Size is the number of cards in a fresh deck.
const Size = 100

// Deck holds the undealt cards for a single level.
type Deck struct {
	cards []int
	rng   *rand.Rand
}

// New creates a full deck and shuffles it with the provided RNG.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]int, 0, Size),
		rng:   rng,
	}
	for v := 1; v <= Size; v++ {
		d.cards = append(d.cards, v)
	}
	d.shuffle()
	return d
}

func (d *Deck) shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes n cards from the top of the deck and returns them sorted
// ascending, the order hands are kept in. Deals fewer if the deck runs short.
func (d *Deck) Deal(n int) []int {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	hand := make([]int, n)
	copy(hand, d.cards[:n])
	d.cards = d.cards[n:]
	slices.Sort(hand)
	return hand
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
