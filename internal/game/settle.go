package game

import (
	"fmt"
	"sort"

	"holdem/internal/evaluator"
)

// Pot is a settlement tier: an amount and the players eligible to win
// it. With no all-ins there is a single tier holding the whole pot;
// otherwise contributions are grouped into tiers bounded by each
// all-in total, and a player only contests tiers they contributed to.
type Pot struct {
	Amount   int
	Eligible []*Player
}

// Payout is one player's winnings from settlement
type Payout struct {
	Player *Player
	Amount int
	Hand   evaluator.Result
}

// buildPots partitions total-hand contributions into settlement tiers.
// Folded players' chips count toward tier amounts but folded players
// are never eligible to win.
func (e *Engine) buildPots() []Pot {
	seen := make(map[int]bool)
	var caps []int
	for _, p := range e.active {
		if p.IsAllIn() && p.TotalBet > 0 && !seen[p.TotalBet] {
			seen[p.TotalBet] = true
			caps = append(caps, p.TotalBet)
		}
	}

	if len(caps) == 0 {
		pot := Pot{Amount: e.pot}
		for _, p := range e.active {
			if p.IsInHand() {
				pot.Eligible = append(pot.Eligible, p)
			}
		}
		return []Pot{pot}
	}

	sort.Ints(caps)

	var pots []Pot
	prev := 0
	for _, tierCap := range caps {
		var pot Pot
		for _, p := range e.active {
			if p.IsInHand() && p.TotalBet > prev {
				pot.Eligible = append(pot.Eligible, p)
			}
		}
		for _, p := range e.active {
			contribution := min(p.TotalBet-prev, tierCap-prev)
			if contribution > 0 {
				pot.Amount += contribution
			}
		}
		if pot.Amount > 0 && len(pot.Eligible) > 0 {
			pots = append(pots, pot)
		}
		prev = tierCap
	}

	// Contributions above the largest all-in form the final tier.
	var residual Pot
	for _, p := range e.active {
		if p.TotalBet > prev {
			residual.Amount += p.TotalBet - prev
			if p.IsInHand() {
				residual.Eligible = append(residual.Eligible, p)
			}
		}
	}
	if residual.Amount > 0 {
		if len(residual.Eligible) > 0 {
			pots = append(pots, residual)
		} else if len(pots) > 0 {
			// Only folded players contributed above the last cap; their
			// chips stay in play rather than vanishing.
			pots[len(pots)-1].Amount += residual.Amount
		}
	}
	return pots
}

// Settle evaluates every in-hand player at showdown and distributes
// each pot tier among its best hands. Split shares use integer
// division; the odd chip goes to the first winner clockwise from the
// dealer. Settlement only redistributes chips, never creates them.
func (e *Engine) Settle() ([]Payout, error) {
	if e.state != StateShowdown {
		return nil, fmt.Errorf("cannot settle in state %s", e.state)
	}

	hands := make(map[*Player]evaluator.Result)
	for _, p := range e.active {
		if !p.IsInHand() {
			continue
		}
		result, err := evaluator.Evaluate(p.HoleCards, e.community)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", p.Name, err)
		}
		hands[p] = result
	}

	won := make(map[*Player]int)
	for _, pot := range e.buildPots() {
		results := make([]evaluator.Result, len(pot.Eligible))
		for i, p := range pot.Eligible {
			results[i] = hands[p]
		}

		winnerIdx := evaluator.DetermineWinners(results)
		winners := make([]*Player, len(winnerIdx))
		for i, wi := range winnerIdx {
			winners[i] = pot.Eligible[wi]
		}
		e.sortByDealerDistance(winners)

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for i, w := range winners {
			amount := share
			if i == 0 {
				amount += remainder
			}
			won[w] += amount
		}
	}

	var payouts []Payout
	for _, p := range e.active {
		if amount, ok := won[p]; ok {
			p.AddChips(amount)
			payouts = append(payouts, Payout{Player: p, Amount: amount, Hand: hands[p]})
			e.logger.Debug("pot share awarded",
				"player", p.Name,
				"amount", amount,
				"hand", hands[p].String())
		}
	}

	e.pot = 0
	e.state = StateEnded
	e.notifyPot()
	e.notifyState()
	return payouts, nil
}

// sortByDealerDistance orders players by clockwise distance from the
// seat after the dealer, the order used to assign odd chips.
func (e *Engine) sortByDealerDistance(players []*Player) {
	n := len(e.active)
	index := make(map[*Player]int, n)
	for i, p := range e.active {
		index[p] = i
	}
	distance := func(p *Player) int {
		return (index[p] - (e.dealerIdx + 1) + n) % n
	}
	sort.Slice(players, func(i, j int) bool {
		return distance(players[i]) < distance(players[j])
	})
}
