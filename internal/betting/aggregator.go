// Package betting aggregates an action stream into per-street investments
// and per-player monetary outcomes.
package betting

import (
	"github.com/shopspring/decimal"

	"github.com/lox/pokerstats/internal/action"
)

// Investment is one player's committed chips, broken out by street.
type Investment struct {
	Streets  map[action.Street]decimal.Decimal
	Uncalled decimal.Decimal
}

// Street returns the final amount committed on the given street.
func (inv *Investment) Street(s action.Street) decimal.Decimal {
	if amt, ok := inv.Streets[s]; ok {
		return amt
	}
	return decimal.Zero
}

// Total is the player's net investment: the sum of all street commitments
// minus any uncalled bet returned to them.
func (inv *Investment) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amt := range inv.Streets {
		total = total.Add(amt)
	}
	return total.Sub(inv.Uncalled)
}

// Aggregate walks the action stream in order and computes each player's final
// street investments.
//
// The one rule that matters: a raise REPLACES the player's running street
// total with its cumulative "to" amount, while bets, calls, blinds and antes
// ADD their incremental amounts. Street boundaries commit the running value
// and reset it.
func Aggregate(stream *action.Stream) map[string]*Investment {
	investments := make(map[string]*Investment)
	running := make(map[string]decimal.Decimal)
	current := action.Preflop

	commit := func(street action.Street) {
		for player, amt := range running {
			if amt.IsZero() {
				continue
			}
			inv := investmentFor(investments, player)
			inv.Streets[street] = inv.Streets[street].Add(amt)
		}
		running = make(map[string]decimal.Decimal)
	}

	for _, a := range stream.Actions {
		if a.Street != current {
			commit(current)
			current = a.Street
		}
		switch a.Kind {
		case action.Raise:
			running[a.Player] = a.Amount
		case action.Bet, action.Call, action.PostSmallBlind, action.PostBigBlind, action.PostAnte:
			running[a.Player] = running[a.Player].Add(a.Amount)
		}
		// ensure folders and checkers still appear in the result
		investmentFor(investments, a.Player)
	}
	commit(current)

	for player, inv := range investments {
		inv.Uncalled = stream.UncalledFor(player)
	}
	return investments
}

func investmentFor(investments map[string]*Investment, player string) *Investment {
	inv, ok := investments[player]
	if !ok {
		inv = &Investment{Streets: make(map[action.Street]decimal.Decimal)}
		investments[player] = inv
	}
	return inv
}
