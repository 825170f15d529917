// Package action converts the text lines of a segmented transcript into an
// ordered stream of typed player actions.
package action

import (
	"github.com/shopspring/decimal"

	"github.com/lox/pokerstats/internal/table"
)

// Street is the betting round an action occurred on.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// Kind is the action vocabulary recognized in transcripts.
type Kind int

const (
	Fold Kind = iota
	Check
	Call
	Bet
	Raise
	PostSmallBlind
	PostBigBlind
	PostAnte
)

func (k Kind) String() string {
	return [...]string{
		"fold", "check", "call", "bet", "raise",
		"post_small_blind", "post_big_blind", "post_ante",
	}[k]
}

// Voluntary reports whether the kind puts chips in the pot by choice,
// as opposed to a forced blind or ante post.
func (k Kind) Voluntary() bool {
	return k == Call || k == Bet || k == Raise
}

// Aggressive reports whether the kind is a bet or raise.
func (k Kind) Aggressive() bool {
	return k == Bet || k == Raise
}

// Action is one resolved player action. For Raise the amount is the
// cumulative street total the raise is "to"; every other kind carries the
// incremental amount added by the action.
type Action struct {
	Index    int
	Player   string
	Position table.Position
	Street   Street
	Kind     Kind
	Amount   decimal.Decimal
	AllIn    bool
}

// Collection records chips awarded to a player from a pot (or side pot).
type Collection struct {
	Player string
	Street Street
	Amount decimal.Decimal
}

// UncalledReturn records an uncalled bet handed back to the player who made
// it. Returned chips never count toward that player's net investment.
type UncalledReturn struct {
	Player string
	Amount decimal.Decimal
}

// SkippedLine is a line that matched an action keyword but whose amount could
// not be parsed. The line is dropped; the rest of the hand remains usable.
type SkippedLine struct {
	Street Street
	Line   string
	Err    error
}

// Stream is the fully resolved event stream for one hand, in transcript
// order.
type Stream struct {
	Actions     []Action
	Collections []Collection
	Uncalled    []UncalledReturn
	Skipped     []SkippedLine
}

// Players returns every player that appears in the action stream, in order of
// first appearance.
func (s *Stream) Players() []string {
	seen := make(map[string]bool)
	var players []string
	for _, a := range s.Actions {
		if !seen[a.Player] {
			seen[a.Player] = true
			players = append(players, a.Player)
		}
	}
	return players
}

// UncalledFor sums the uncalled amounts returned to the named player.
func (s *Stream) UncalledFor(player string) decimal.Decimal {
	total := decimal.Zero
	for _, u := range s.Uncalled {
		if u.Player == player {
			total = total.Add(u.Amount)
		}
	}
	return total
}
