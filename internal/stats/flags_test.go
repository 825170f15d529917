package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerstats/internal/action"
)

func act(player string, street action.Street, kind action.Kind, amount string) action.Action {
	return action.Action{Player: player, Street: street, Kind: kind, Amount: decimal.RequireFromString(amount)}
}

func stream(actions ...action.Action) *action.Stream {
	return &action.Stream{Actions: actions}
}

func TestPreflopOpenRaise(t *testing.T) {
	flags := Calculate(stream(
		act("erin", action.Preflop, action.PostSmallBlind, "0.50"),
		act("frank", action.Preflop, action.PostBigBlind, "1"),
		act("alice", action.Preflop, action.Raise, "3"),
		act("bob", action.Preflop, action.Fold, "0"),
		act("carol", action.Preflop, action.Call, "3"),
		act("erin", action.Preflop, action.Fold, "0"),
		act("frank", action.Preflop, action.Fold, "0"),
	))

	alice := flags["alice"]
	assert.True(t, alice.VPIP)
	assert.True(t, alice.PFR)
	assert.True(t, alice.PotUnopened, "first to act with no limpers")
	assert.False(t, alice.Limp)
	assert.False(t, alice.ThreeBetOpportunity, "nobody raised before alice")

	bob := flags["bob"]
	assert.False(t, bob.VPIP, "folding is not voluntary money")
	assert.False(t, bob.PotUnopened, "alice already raised")
	assert.True(t, bob.ThreeBetOpportunity)
	assert.False(t, bob.MadeThreeBet)

	carol := flags["carol"]
	assert.True(t, carol.VPIP)
	assert.False(t, carol.PFR)
	assert.False(t, carol.Limp, "calling a raise is not a limp")
	assert.True(t, carol.ThreeBetOpportunity)
}

func TestPreflopLimpRemovesRFI(t *testing.T) {
	flags := Calculate(stream(
		act("alice", action.Preflop, action.Call, "1"),
		act("bob", action.Preflop, action.Raise, "4"),
	))

	alice := flags["alice"]
	assert.True(t, alice.PotUnopened, "alice acted first into an unopened pot")
	assert.True(t, alice.Limp)
	assert.True(t, alice.VPIP)

	bob := flags["bob"]
	assert.False(t, bob.PotUnopened, "a limp ahead removes the open opportunity")
	assert.True(t, bob.PFR, "raising over a limp is still a first raise")
	assert.False(t, bob.ThreeBetOpportunity, "a limp is not a raise")
}

func TestOpenerFacingThreeBet(t *testing.T) {
	flags := Calculate(stream(
		act("alice", action.Preflop, action.Raise, "3"),
		act("bob", action.Preflop, action.Raise, "9"),
		act("alice", action.Preflop, action.Fold, "0"),
	))

	bob := flags["bob"]
	assert.True(t, bob.ThreeBetOpportunity)
	assert.True(t, bob.MadeThreeBet)
	assert.False(t, bob.FacedThreeBet, "the 3-bettor does not face its own raise")

	// The opener now faces exactly one unanswered raise, so a 3-bet style
	// opportunity exists even though responding with a raise would be a
	// 4-bet.
	alice := flags["alice"]
	assert.True(t, alice.ThreeBetOpportunity)
	assert.False(t, alice.MadeThreeBet)
	assert.True(t, alice.FacedThreeBet)
	assert.True(t, alice.FourBetOpportunity)
	assert.True(t, alice.FoldedToThreeBet)
	assert.False(t, alice.CalledThreeBet)
}

func TestOpenerCallingThreeBet(t *testing.T) {
	flags := Calculate(stream(
		act("alice", action.Preflop, action.Raise, "3"),
		act("bob", action.Preflop, action.Raise, "9"),
		act("alice", action.Preflop, action.Call, "6"),
	))

	alice := flags["alice"]
	assert.True(t, alice.ThreeBetOpportunity)
	assert.True(t, alice.CalledThreeBet)
	assert.False(t, alice.FoldedToThreeBet)
}

func TestFourBetFlow(t *testing.T) {
	flags := Calculate(stream(
		act("alice", action.Preflop, action.Raise, "3"),
		act("bob", action.Preflop, action.Raise, "9"),
		act("alice", action.Preflop, action.Raise, "21"),
		act("bob", action.Preflop, action.Fold, "0"),
	))

	alice := flags["alice"]
	assert.True(t, alice.FacedThreeBet)
	assert.True(t, alice.FourBetOpportunity)
	assert.True(t, alice.MadeFourBet)
	assert.False(t, alice.MadeThreeBet, "the re-raise over a 3-bet is a 4-bet")
	assert.False(t, alice.FoldedToThreeBet)
	assert.False(t, alice.CalledThreeBet)

	bob := flags["bob"]
	assert.True(t, bob.MadeThreeBet)
	assert.True(t, bob.FacedFourBet)
	assert.True(t, bob.FoldedToFourBet)
	assert.False(t, bob.CalledFourBet)
}

func TestColdPlayerFacingThreeBet(t *testing.T) {
	flags := Calculate(stream(
		act("alice", action.Preflop, action.Raise, "3"),
		act("bob", action.Preflop, action.Raise, "9"),
		act("carol", action.Preflop, action.Fold, "0"),
	))

	// carol faces two raises she never answered, which is not a 3-bet
	// spot, but she still cold-faces the 3-bet itself.
	carol := flags["carol"]
	assert.False(t, carol.ThreeBetOpportunity)
	assert.True(t, carol.FacedThreeBet)
	assert.True(t, carol.FoldedToThreeBet)
}

func TestNoRaiseMeansNoRaiseFlags(t *testing.T) {
	flags := Calculate(stream(
		act("alice", action.Preflop, action.Call, "1"),
		act("bob", action.Preflop, action.Check, "0"),
	))

	for player, f := range flags {
		assert.False(t, f.ThreeBetOpportunity, player)
		assert.False(t, f.MadeThreeBet, player)
		assert.False(t, f.FacedThreeBet, player)
		assert.False(t, f.FourBetOpportunity, player)
		assert.False(t, f.FacedFourBet, player)
	}
}

func TestCBetFlow(t *testing.T) {
	flags := Calculate(stream(
		act("alice", action.Preflop, action.Raise, "3"),
		act("carol", action.Preflop, action.Call, "3"),
		act("alice", action.Flop, action.Bet, "4"),
		act("carol", action.Flop, action.Call, "4"),
		act("alice", action.Turn, action.Check, "0"),
		act("carol", action.Turn, action.Bet, "10"),
		act("alice", action.Turn, action.Fold, "0"),
	))

	alice := flags["alice"]
	assert.True(t, alice.Flop.Opportunity, "preflop aggressor first in on an unopened flop")
	assert.True(t, alice.Flop.Made)
	assert.True(t, alice.Turn.Opportunity, "still the aggressor after the flop c-bet")
	assert.False(t, alice.Turn.Made)
	assert.False(t, alice.Turn.Faced, "carol's stab is not a continuation bet")

	carol := flags["carol"]
	assert.False(t, carol.Flop.Opportunity)
	assert.True(t, carol.Flop.Faced)
	assert.True(t, carol.Flop.Called)
	assert.False(t, carol.Flop.Folded)
	assert.False(t, carol.Flop.Raised)
	assert.False(t, carol.Turn.Faced)

	assert.True(t, alice.SawFlop)
	assert.True(t, carol.SawFlop)
	assert.False(t, alice.WentToShowdown, "alice folded on the turn")
	assert.False(t, carol.WentToShowdown, "a hand needs two survivors to show down")
}

func TestCBetRaised(t *testing.T) {
	flags := Calculate(stream(
		act("alice", action.Preflop, action.Raise, "3"),
		act("bob", action.Preflop, action.Call, "3"),
		act("carol", action.Preflop, action.Call, "3"),
		act("alice", action.Flop, action.Bet, "5"),
		act("bob", action.Flop, action.Raise, "15"),
		act("carol", action.Flop, action.Fold, "0"),
		act("alice", action.Flop, action.Fold, "0"),
	))

	bob := flags["bob"]
	assert.True(t, bob.Flop.Faced)
	assert.True(t, bob.Flop.Raised)
	assert.False(t, bob.Flop.Called)
	assert.False(t, bob.Flop.Folded)

	// carol acts after the raise over the c-bet; her fold responds to the
	// raise, not the c-bet.
	carol := flags["carol"]
	assert.False(t, carol.Flop.Faced)
	assert.False(t, carol.Flop.Folded)
}

func TestCBetResponsePartition(t *testing.T) {
	flags := Calculate(stream(
		act("alice", action.Preflop, action.Raise, "3"),
		act("bob", action.Preflop, action.Call, "3"),
		act("alice", action.Flop, action.Bet, "5"),
		act("bob", action.Flop, action.Fold, "0"),
	))

	bob := flags["bob"]
	require.True(t, bob.Flop.Faced)
	responses := 0
	for _, set := range []bool{bob.Flop.Folded, bob.Flop.Called, bob.Flop.Raised} {
		if set {
			responses++
		}
	}
	assert.Equal(t, 1, responses, "exactly one response flag per faced c-bet")
}

func TestCheckedThroughFlopKillsCBetChain(t *testing.T) {
	flags := Calculate(stream(
		act("alice", action.Preflop, action.Raise, "3"),
		act("bob", action.Preflop, action.Call, "3"),
		act("alice", action.Flop, action.Check, "0"),
		act("bob", action.Flop, action.Check, "0"),
		act("alice", action.Turn, action.Bet, "5"),
	))

	alice := flags["alice"]
	assert.True(t, alice.Flop.Opportunity)
	assert.False(t, alice.Flop.Made)
	assert.False(t, alice.Turn.Opportunity, "no flop bet means no turn continuation")
	assert.False(t, alice.Turn.Made)
}

func TestWentToShowdown(t *testing.T) {
	flags := Calculate(stream(
		act("alice", action.Preflop, action.Raise, "3"),
		act("bob", action.Preflop, action.Call, "3"),
		act("alice", action.Flop, action.Bet, "4"),
		act("bob", action.Flop, action.Call, "4"),
		act("alice", action.Turn, action.Check, "0"),
		act("bob", action.Turn, action.Check, "0"),
		act("alice", action.River, action.Check, "0"),
		act("bob", action.River, action.Check, "0"),
	))

	assert.True(t, flags["alice"].WentToShowdown)
	assert.True(t, flags["bob"].WentToShowdown)
}

func TestPreflopFoldersDidNotSeeFlop(t *testing.T) {
	flags := Calculate(stream(
		act("alice", action.Preflop, action.Raise, "3"),
		act("bob", action.Preflop, action.Fold, "0"),
		act("carol", action.Preflop, action.Call, "3"),
		act("alice", action.Flop, action.Check, "0"),
		act("carol", action.Flop, action.Check, "0"),
	))

	assert.True(t, flags["alice"].SawFlop)
	assert.True(t, flags["carol"].SawFlop)
	assert.False(t, flags["bob"].SawFlop)
}
