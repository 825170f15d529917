package betting

import (
	"github.com/shopspring/decimal"

	"github.com/lox/pokerstats/internal/action"
)

// Outcome is one player's monetary result for a hand.
type Outcome struct {
	Player    string
	Invested  decimal.Decimal
	Collected decimal.Decimal
	Profit    decimal.Decimal
	Won       bool
}

// Resolve combines aggregated investments with collected-pot amounts into
// per-player outcomes. A player may collect from more than one pot; all
// collections sum. A player with no collections and no investment (folded
// preflop without posting) resolves to zero profit, not won.
//
// Won means the player finished the hand ahead. Collecting back less than was
// contributed, including the degenerate case of a transcript that records an
// uncalled raise as a "collection", is not a win.
func Resolve(stream *action.Stream, investments map[string]*Investment) map[string]Outcome {
	collected := make(map[string]decimal.Decimal)
	for _, c := range stream.Collections {
		collected[c.Player] = collected[c.Player].Add(c.Amount)
	}

	outcomes := make(map[string]Outcome, len(investments))
	for player, inv := range investments {
		outcomes[player] = newOutcome(player, inv.Total(), collected[player])
	}
	// players that collected without ever acting (dead blind edge cases)
	for player, amt := range collected {
		if _, ok := outcomes[player]; !ok {
			outcomes[player] = newOutcome(player, decimal.Zero, amt)
		}
	}
	return outcomes
}

func newOutcome(player string, invested, collected decimal.Decimal) Outcome {
	profit := collected.Sub(invested)
	return Outcome{
		Player:    player,
		Invested:  invested,
		Collected: collected,
		Profit:    profit,
		Won:       profit.IsPositive(),
	}
}

// NetSum returns the signed sum of all profits in a hand. With rake ignored
// it is zero; with rake parsed out of collections it is minus the rake. A
// positive sum indicates a parsing defect.
func NetSum(outcomes map[string]Outcome) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range outcomes {
		sum = sum.Add(o.Profit)
	}
	return sum
}
