package transcript

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHand = `PokerStars Hand #243123456789: Hold'em No Limit ($0.50/$1.00 USD) - 2024/05/14 20:11:03 ET
Table 'Aludra III' 6-max Seat #3 is the button
Seat 1: alice ($100 in chips)
Seat 2: bob ($85.50 in chips)
Seat 3: carol ($120 in chips)
Seat 4: dave ($60 in chips) is sitting out
Seat 5: erin ($100 in chips)
Seat 6: frank ($100 in chips)
erin: posts small blind $0.50
frank: posts big blind $1
*** HOLE CARDS ***
alice: raises $2 to $3
bob: folds
carol: calls $3
erin: folds
frank: folds
*** FLOP *** [Ah 7d 2c]
alice: bets $4
carol: calls $4
*** TURN *** [Ah 7d 2c Qs]
alice: checks
carol: bets $10
alice: folds
Uncalled bet ($10) returned to carol
carol collected $14.50 from pot
*** SUMMARY ***
Total pot $15.50 | Rake $1
Board [Ah 7d 2c Qs]
Seat 3: carol collected ($14.50)`

func TestParseHeader(t *testing.T) {
	hand, err := Parse(sampleHand)
	require.NoError(t, err)

	assert.Equal(t, "243123456789", hand.HandID)
	assert.Equal(t, "$0.50/$1.00 USD", hand.Stake)
	assert.Equal(t, 3, hand.ButtonSeat)
	assert.Equal(t, time.Date(2024, 5, 14, 20, 11, 3, 0, time.UTC), hand.Timestamp)

	require.Len(t, hand.Seats, 6)
	assert.Equal(t, "alice", hand.Seats[0].Player)
	assert.True(t, hand.Seats[0].Stack.Equal(decimal.NewFromInt(100)))
	assert.True(t, hand.Seats[1].Stack.Equal(decimal.RequireFromString("85.50")))
	assert.False(t, hand.Seats[0].SittingOut)
	assert.True(t, hand.Seats[3].SittingOut, "dave is sitting out")
}

func TestParseSections(t *testing.T) {
	hand, err := Parse(sampleHand)
	require.NoError(t, err)

	for _, section := range []Section{Header, Preflop, Flop, Turn, Summary} {
		assert.True(t, hand.HasSection(section), "expected section %s", section)
	}
	assert.False(t, hand.HasSection(River), "hand ended on the turn")
	assert.False(t, hand.HasSection(Showdown))

	// Blind posts precede the hole-cards marker, so they live in the header.
	assert.Contains(t, hand.Sections[Header], "erin: posts small blind $0.50")
	assert.Equal(t, []string{
		"alice: raises $2 to $3",
		"bob: folds",
		"carol: calls $3",
		"erin: folds",
		"frank: folds",
	}, hand.Sections[Preflop])
	assert.Equal(t, []string{"alice: bets $4", "carol: calls $4"}, hand.Sections[Flop])
}

func TestParseMissingHoleCardsMarker(t *testing.T) {
	_, err := Parse(`PokerStars Hand #1: Hold'em No Limit ($1/$2) - 2024/05/14 20:11:03 ET
Table 'Broken' 6-max Seat #1 is the button
Seat 1: alice ($100 in chips)
Seat 2: bob ($100 in chips)
alice: posts small blind $1`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedTranscript))
}

func TestParseCommaStacks(t *testing.T) {
	hand, err := Parse(`Hand #7
Seat 1: alice ($1,240.50 in chips)
Seat 2: bob (12,000 in chips)
*** HOLE CARDS ***
alice: checks`)
	require.NoError(t, err)
	require.Len(t, hand.Seats, 2)
	assert.True(t, hand.Seats[0].Stack.Equal(decimal.RequireFromString("1240.50")))
	assert.True(t, hand.Seats[1].Stack.Equal(decimal.NewFromInt(12000)))
}

func TestParseMissingHeaderMetadata(t *testing.T) {
	// A transcript without a title line or button declaration still parses.
	hand, err := Parse(`Seat 1: alice (100 in chips)
Seat 2: bob (100 in chips)
*** HOLE CARDS ***
alice: checks`)
	require.NoError(t, err)
	assert.Empty(t, hand.HandID)
	assert.Equal(t, -1, hand.ButtonSeat)
}

func TestParseSkipsBlankAndCRLF(t *testing.T) {
	hand, err := Parse("Hand #9\r\n\r\nSeat 1: alice (100 in chips)\r\n*** HOLE CARDS ***\r\nalice: checks\r\n")
	require.NoError(t, err)
	assert.Equal(t, "9", hand.HandID)
	assert.Equal(t, []string{"alice: checks"}, hand.Sections[Preflop])
}
