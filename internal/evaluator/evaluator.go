// Package evaluator ranks Texas Hold'em hands. Given 2 hole cards and up
// to 5 community cards it finds the best 5-card hand, producing a
// Category and a descending tie-break vector that together define a
// total order over hands.
package evaluator

import (
	"fmt"
	"sort"

	"holdem/internal/deck"
)

// Result describes an evaluated 5-card hand: a category, the tie-break
// values (category-defining values first, then kickers, all descending)
// and the five cards that form the hand.
type Result struct {
	Category Category
	Values   []int
	Cards    []deck.Card
}

// String returns a readable description such as "Full House (Ks over 9s)".
func (r Result) String() string {
	switch r.Category {
	case FourOfAKind:
		return fmt.Sprintf("%s (%ss)", r.Category, deck.Rank(r.Values[0]))
	case FullHouse:
		return fmt.Sprintf("%s (%ss over %ss)", r.Category, deck.Rank(r.Values[0]), deck.Rank(r.Values[3]))
	case ThreeOfAKind, OnePair:
		return fmt.Sprintf("%s (%ss)", r.Category, deck.Rank(r.Values[0]))
	case TwoPair:
		return fmt.Sprintf("%s (%ss and %ss)", r.Category, deck.Rank(r.Values[0]), deck.Rank(r.Values[2]))
	case Straight, StraightFlush, Flush, HighCard:
		return fmt.Sprintf("%s (%s-high)", r.Category, deck.Rank(r.Values[0]))
	default:
		return r.Category.String()
	}
}

// Evaluate finds the best 5-card hand from hole plus community cards.
// With 6 or 7 cards every 5-card subset is tried and the maximum kept.
func Evaluate(hole, community []deck.Card) (Result, error) {
	cards := make([]deck.Card, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)

	if len(cards) < 5 {
		return Result{}, fmt.Errorf("need at least 5 cards, have %d", len(cards))
	}
	if len(cards) == 5 {
		return evaluateFive(cards), nil
	}

	var best Result
	for _, combo := range combinations(cards, 5) {
		hand := evaluateFive(combo)
		if best.Category == 0 || Compare(hand, best) > 0 {
			best = hand
		}
	}
	return best, nil
}

// evaluateFive evaluates exactly 5 cards, testing categories strictly
// high to low with the first match winning.
func evaluateFive(cards []deck.Card) Result {
	sorted := make([]deck.Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Value() > sorted[j].Value()
	})

	values := make([]int, 5)
	for i, c := range sorted {
		values[i] = c.Value()
	}

	flush := isFlush(sorted)
	straightTop, straight := straightHigh(values)

	if flush && straight {
		if straightTop == int(deck.Ace) {
			return Result{Category: RoyalFlush, Values: runFrom(straightTop), Cards: sorted}
		}
		return Result{Category: StraightFlush, Values: runFrom(straightTop), Cards: sorted}
	}

	groups := groupByRank(sorted)

	if groups[0].size() == 4 {
		quad := groups[0].value()
		kicker := groups[1].value()
		return Result{
			Category: FourOfAKind,
			Values:   []int{quad, quad, quad, quad, kicker},
			Cards:    sorted,
		}
	}

	if groups[0].size() == 3 && groups[1].size() == 2 {
		trips, pair := groups[0].value(), groups[1].value()
		return Result{
			Category: FullHouse,
			Values:   []int{trips, trips, trips, pair, pair},
			Cards:    sorted,
		}
	}

	if flush {
		return Result{Category: Flush, Values: values, Cards: sorted}
	}
	if straight {
		return Result{Category: Straight, Values: runFrom(straightTop), Cards: sorted}
	}

	if groups[0].size() == 3 {
		trips := groups[0].value()
		return Result{
			Category: ThreeOfAKind,
			Values:   []int{trips, trips, trips, groups[1].value(), groups[2].value()},
			Cards:    sorted,
		}
	}

	if groups[0].size() == 2 && groups[1].size() == 2 {
		hi, lo := groups[0].value(), groups[1].value()
		return Result{
			Category: TwoPair,
			Values:   []int{hi, hi, lo, lo, groups[2].value()},
			Cards:    sorted,
		}
	}

	if groups[0].size() == 2 {
		pair := groups[0].value()
		return Result{
			Category: OnePair,
			Values:   []int{pair, pair, groups[1].value(), groups[2].value(), groups[3].value()},
			Cards:    sorted,
		}
	}

	return Result{Category: HighCard, Values: values, Cards: sorted}
}

// group is a set of same-rank cards within one 5-card hand.
type group []deck.Card

func (g group) size() int  { return len(g) }
func (g group) value() int { return g[0].Value() }

// groupByRank groups cards by rank, ordered by group size then rank,
// both descending. The hand's defining combination is always first.
func groupByRank(cards []deck.Card) []group {
	byValue := make(map[int]group)
	for _, c := range cards {
		byValue[c.Value()] = append(byValue[c.Value()], c)
	}

	groups := make([]group, 0, len(byValue))
	for _, g := range byValue {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i]) != len(groups[j]) {
			return len(groups[i]) > len(groups[j])
		}
		return groups[i].value() > groups[j].value()
	})
	return groups
}

func isFlush(cards []deck.Card) bool {
	suit := cards[0].Suit
	for _, c := range cards[1:] {
		if c.Suit != suit {
			return false
		}
	}
	return true
}

// straightHigh reports whether the descending values form a straight and
// returns the top value. The wheel (A-5-4-3-2) counts as a 5-high
// straight, the lowest possible one.
func straightHigh(values []int) (int, bool) {
	consecutive := true
	for i := 0; i < len(values)-1; i++ {
		if values[i]-values[i+1] != 1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return values[0], true
	}

	if values[0] == int(deck.Ace) &&
		values[1] == 5 && values[2] == 4 && values[3] == 3 && values[4] == 2 {
		return 5, true
	}
	return 0, false
}

// runFrom builds the tie-break vector for a straight topped by high.
// For the wheel this yields [5 4 3 2 1], ranking it below a 6-high run.
func runFrom(high int) []int {
	run := make([]int, 5)
	for i := range run {
		run[i] = high - i
	}
	return run
}

// combinations returns every k-card subset of cards.
func combinations(cards []deck.Card, k int) [][]deck.Card {
	var result [][]deck.Card
	chosen := make([]deck.Card, 0, k)

	var combine func(start int)
	combine = func(start int) {
		if len(chosen) == k {
			combo := make([]deck.Card, k)
			copy(combo, chosen)
			result = append(result, combo)
			return
		}
		for i := start; i < len(cards); i++ {
			chosen = append(chosen, cards[i])
			combine(i + 1)
			chosen = chosen[:len(chosen)-1]
		}
	}
	combine(0)
	return result
}
