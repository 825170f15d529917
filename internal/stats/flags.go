// Package stats derives per-player behavioral statistic flags from a
// resolved action stream.
package stats

import (
	"github.com/lox/pokerstats/internal/action"
)

// CBetFlags is the continuation-bet flag set for one postflop street. The
// response flags form a partition: a player who faced a c-bet has exactly one
// of Folded, Called or Raised set.
type CBetFlags struct {
	Opportunity bool
	Made        bool
	Faced       bool
	Folded      bool
	Called      bool
	Raised      bool
}

// Flags is the full statistic flag set for one player in one hand. Every
// flag defaults to false when its precondition never arose.
type Flags struct {
	// Preflop
	VPIP        bool
	PFR         bool
	Limp        bool
	PotUnopened bool // RFI opportunity: no raise and no limp ahead

	ThreeBetOpportunity bool
	MadeThreeBet        bool
	FacedThreeBet       bool
	FoldedToThreeBet    bool
	CalledThreeBet      bool

	FourBetOpportunity bool
	MadeFourBet        bool
	FacedFourBet       bool
	FoldedToFourBet    bool
	CalledFourBet      bool

	// Postflop
	Flop  CBetFlags
	Turn  CBetFlags
	River CBetFlags

	SawFlop        bool
	WentToShowdown bool
}

// CBet returns the c-bet flag set for a postflop street.
func (f *Flags) CBet(s action.Street) *CBetFlags {
	switch s {
	case action.Flop:
		return &f.Flop
	case action.Turn:
		return &f.Turn
	default:
		return &f.River
	}
}

// Calculate replays the ordered action stream and derives the flag set for
// every player that appears in it.
func Calculate(stream *action.Stream) map[string]*Flags {
	flags := make(map[string]*Flags)
	for _, player := range stream.Players() {
		flags[player] = &Flags{}
	}

	calcPreflop(stream, flags)
	aggressor := preflopAggressor(stream)
	for _, street := range []action.Street{action.Flop, action.Turn, action.River} {
		aggressor = calcCBets(stream, flags, street, aggressor)
	}
	calcRunouts(stream, flags)
	return flags
}

// calcPreflop applies the preflop rules in transcript order.
//
// Two different raise accountings coexist on purpose. The 3-bet opportunity
// rule counts raises the acting player has not yet answered, so the opener
// facing exactly one re-raise has the opportunity just like a player facing
// the open. The faced-a-raise response groups are keyed to absolute raise
// levels (second raise = 3-bet, third = 4-bet) and record only each player's
// first action inside a level; the raiser never faces its own raise.
func calcPreflop(stream *action.Stream, flags map[string]*Flags) {
	raises := 0
	raiser := make(map[int]string) // raise level -> player who made it
	limped := false
	acted := make(map[string]bool)
	actedVoluntarily := make(map[string]bool)
	lastRaiseCount := make(map[string]int) // raise count after the player's last action
	seenLevel := make(map[string]map[int]bool)

	for _, a := range stream.Actions {
		if a.Street != action.Preflop {
			break
		}
		if a.Kind == action.PostSmallBlind || a.Kind == action.PostBigBlind || a.Kind == action.PostAnte {
			continue
		}
		f := flags[a.Player]

		if !acted[a.Player] {
			acted[a.Player] = true
			if raises == 0 {
				// a limp ahead removes RFI eligibility even without a raise
				f.PotUnopened = !limped
			}
		}

		if raises >= 1 && raises-lastRaiseCount[a.Player] == 1 && raiser[raises] != a.Player {
			f.ThreeBetOpportunity = true
			// only a raise over the single opening raise is a 3-bet;
			// a raise at a deeper level is a 4-bet and recorded below
			if a.Kind == action.Raise && raises == 1 {
				f.MadeThreeBet = true
			}
		}

		levels := seenLevel[a.Player]
		if levels == nil {
			levels = make(map[int]bool)
			seenLevel[a.Player] = levels
		}
		if !levels[raises] {
			levels[raises] = true
			switch raises {
			case 2:
				if a.Player != raiser[2] {
					f.FacedThreeBet = true
					f.FourBetOpportunity = true
					switch a.Kind {
					case action.Fold:
						f.FoldedToThreeBet = true
					case action.Call:
						f.CalledThreeBet = true
					case action.Raise:
						f.MadeFourBet = true
					}
				}
			case 3:
				if a.Player != raiser[3] {
					f.FacedFourBet = true
					switch a.Kind {
					case action.Fold:
						f.FoldedToFourBet = true
					case action.Call:
						f.CalledFourBet = true
					}
				}
			}
		}

		switch a.Kind {
		case action.Call:
			f.VPIP = true
			if raises == 0 {
				f.Limp = true
				limped = true
			}
		case action.Bet:
			f.VPIP = true
		case action.Raise:
			f.VPIP = true
			if !actedVoluntarily[a.Player] {
				f.PFR = true
			}
			raises++
			raiser[raises] = a.Player
		}
		if a.Kind.Voluntary() {
			actedVoluntarily[a.Player] = true
		}
		lastRaiseCount[a.Player] = raises
	}
}

// preflopAggressor returns the last preflop raiser, the seed aggressor for
// flop continuation bets. Blind posts are not aggression.
func preflopAggressor(stream *action.Stream) string {
	aggressor := ""
	for _, a := range stream.Actions {
		if a.Street != action.Preflop {
			break
		}
		if a.Kind == action.Raise || a.Kind == action.Bet {
			aggressor = a.Player
		}
	}
	return aggressor
}

// calcCBets derives the continuation-bet flags for one street and returns
// the street's last aggressor, which seeds the next street. The previous
// street's aggressor has a c-bet opportunity if the street is still unopened
// when they first act; everyone acting after a made c-bet and before any
// raise records their first response.
func calcCBets(stream *action.Stream, flags map[string]*Flags, street action.Street, prevAggressor string) string {
	aggressor := ""
	cbettor := ""
	betOccurred := false
	raisedOver := false
	responded := make(map[string]bool)

	for _, a := range stream.Actions {
		if a.Street != street {
			continue
		}
		f := flags[a.Player]
		cb := f.CBet(street)

		if a.Player == prevAggressor && prevAggressor != "" && !betOccurred && !cb.Opportunity {
			cb.Opportunity = true
			if a.Kind == action.Bet {
				cb.Made = true
				cbettor = a.Player
			}
		} else if cbettor != "" && !raisedOver && a.Player != cbettor && !responded[a.Player] {
			responded[a.Player] = true
			cb.Faced = true
			switch a.Kind {
			case action.Fold:
				cb.Folded = true
			case action.Call:
				cb.Called = true
			case action.Raise:
				cb.Raised = true
			}
		}

		switch a.Kind {
		case action.Bet:
			betOccurred = true
			aggressor = a.Player
		case action.Raise:
			if betOccurred {
				raisedOver = true
			}
			betOccurred = true
			aggressor = a.Player
		}
	}
	return aggressor
}

// calcRunouts marks who saw the flop and who reached showdown.
func calcRunouts(stream *action.Stream, flags map[string]*Flags) {
	foldedPreflop := make(map[string]bool)
	folded := make(map[string]bool)
	flopSeen := false
	for _, a := range stream.Actions {
		if a.Kind == action.Fold {
			folded[a.Player] = true
			if a.Street == action.Preflop {
				foldedPreflop[a.Player] = true
			}
		}
		if a.Street >= action.Flop && a.Street <= action.River {
			flopSeen = true
		}
	}

	survivors := 0
	for _, player := range stream.Players() {
		if !folded[player] {
			survivors++
		}
	}
	for player, f := range flags {
		f.SawFlop = flopSeen && !foldedPreflop[player]
		f.WentToShowdown = survivors >= 2 && !folded[player]
	}
}
