// Package pipeline wires the interpretation stages together: segmentation,
// position resolution, action stream building, betting aggregation, outcome
// resolution, flag calculation and scenario observation.
//
// Interpretation is a pure function of the transcript. Running it twice on
// the same text yields identical results, and no state is shared across
// hands, so batches parallelize freely.
package pipeline

import (
	"errors"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/pokerstats/internal/action"
	"github.com/lox/pokerstats/internal/betting"
	"github.com/lox/pokerstats/internal/scenario"
	"github.com/lox/pokerstats/internal/stats"
	"github.com/lox/pokerstats/internal/table"
	"github.com/lox/pokerstats/internal/transcript"
)

// Result is the complete interpretation of one hand.
type Result struct {
	HandID    string
	Stake     string
	Positions map[string]table.Position

	Actions     []action.Action
	Investments map[string]*betting.Investment
	Outcomes    map[string]betting.Outcome
	Flags       map[string]*stats.Flags
	Scenarios   []scenario.Observation

	// PositionsAmbiguous is set when fewer than two active players were
	// found. Positional data (Positions, Scenarios) is withheld while the
	// non-positional results above remain valid.
	PositionsAmbiguous bool
	SkippedLines       int
}

// Interpreter runs the hand-history interpretation pipeline.
type Interpreter struct {
	logger zerolog.Logger
	clock  quartz.Clock
}

// New returns an Interpreter that logs recoverable parse problems to the
// given logger.
func New(logger zerolog.Logger) *Interpreter {
	return NewWithClock(logger, quartz.NewReal())
}

// NewWithClock is New with an injectable clock for the batch progress
// ticker.
func NewWithClock(logger zerolog.Logger, clock quartz.Clock) *Interpreter {
	return &Interpreter{logger: logger, clock: clock}
}

// Interpret runs all stages over one raw transcript. The only unrecoverable
// failure is transcript.ErrMalformedTranscript; everything else degrades to
// a partial result per the recovery rules of each stage.
func (ip *Interpreter) Interpret(raw string) (*Result, error) {
	hand, err := transcript.Parse(raw)
	if err != nil {
		return nil, err
	}

	logger := ip.logger.With().Str("hand", hand.HandID).Logger()

	positions, err := table.Resolve(hand.Seats, hand.ButtonSeat)
	ambiguous := false
	if err != nil {
		if !errors.Is(err, table.ErrAmbiguousPosition) {
			return nil, err
		}
		ambiguous = true
		positions = nil
		logger.Warn().Err(err).Msg("withholding positional statistics")
	}

	stream := action.NewBuilder(positions, logger).Build(hand)
	investments := betting.Aggregate(stream)
	outcomes := betting.Resolve(stream, investments)

	if net := betting.NetSum(outcomes); net.IsPositive() {
		// chips cannot appear out of thin air; rake only ever drains
		logger.Warn().Str("net", net.String()).Msg("positive profit sum, transcript likely inconsistent")
	}

	result := &Result{
		HandID:             hand.HandID,
		Stake:              hand.Stake,
		Positions:          positions,
		Actions:            stream.Actions,
		Investments:        investments,
		Outcomes:           outcomes,
		Flags:              stats.Calculate(stream),
		PositionsAmbiguous: ambiguous,
		SkippedLines:       len(stream.Skipped),
	}
	if !ambiguous {
		result.Scenarios = scenario.Observe(stream)
	}
	return result, nil
}
