package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrEmptyDeck is returned when drawing from an exhausted deck. With a
// bounded number of seats this is unreachable in normal play, so callers
// treat it as an internal invariant violation.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is an ordered sequence of at most 52 unique cards. Cards drawn
// during a hand are never returned until the next Reset.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a standard 52-card deck in canonical order. The RNG is
// required so shuffles are reproducible under a fixed seed.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// Reset restores the deck to the canonical 52-card order:
// suits Spades through Clubs, ranks Two through Ace within each suit.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
}

// Shuffle performs an in-place Fisher-Yates pass. Given an unbiased
// source every permutation of the deck is equally likely.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the last card of the sequence.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// DrawN draws n cards. If the deck runs out it returns the cards drawn
// so far alongside ErrEmptyDeck.
func (d *Deck) DrawN(n int) ([]Card, error) {
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, err := d.Draw()
		if err != nil {
			return cards, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
