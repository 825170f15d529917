// Package scenario maps positional facing-contexts to canonical scenario
// keys and resolves reference frequencies from an externally supplied table.
package scenario

import (
	"fmt"

	"github.com/lox/pokerstats/internal/action"
	"github.com/lox/pokerstats/internal/table"
)

// Facing enumerates the aggression context a player responded to.
type Facing int

const (
	Open     Facing = iota // facing the first raise
	ThreeBet               // facing the second raise
	FourBet                // facing the third raise
)

func (f Facing) String() string {
	return [...]string{"open", "3bet", "4bet"}[f]
}

// keySegment is the raise-level segment embedded in scenario keys. Facing an
// open has no segment by convention.
func (f Facing) keySegment() string {
	switch f {
	case ThreeBet:
		return "_3bet"
	case FourBet:
		return "_4bet"
	default:
		return ""
	}
}

// Response is the action taken in a scenario.
type Response string

const (
	Fold  Response = "fold"
	Call  Response = "call"
	Raise Response = "raise"
)

// Key builds the canonical scenario key:
// {position}_vs_{opponent_position}[_{raise-level}]_{response}, for example
// "BB_vs_UTG_call" or "UTG_vs_CO_3bet_fold".
func Key(pos, opponent table.Position, facing Facing, response Response) string {
	return fmt.Sprintf("%s_vs_%s%s_%s", pos, opponent, facing.keySegment(), response)
}

// Observation is one positional decision extracted from a hand, ready to be
// joined against reference frequencies.
type Observation struct {
	Player   string
	Position table.Position
	Facing   Facing
	Response Response
	Key      string
}

// Observe extracts the preflop scenario observations from a resolved action
// stream. One observation is emitted per player per raise level, for the
// player's first response at that level. Streams without position tags yield
// no observations.
func Observe(stream *action.Stream) []Observation {
	var out []Observation
	raises := 0
	raiserPos := make(map[int]table.Position)
	raiser := make(map[int]string)
	seenLevel := make(map[string]map[int]bool)

	for _, a := range stream.Actions {
		if a.Street != action.Preflop {
			break
		}
		if !a.Kind.Voluntary() && a.Kind != action.Fold {
			continue
		}
		if a.Position != "" && raises >= 1 && raises <= 3 && raiser[raises] != a.Player {
			levels := seenLevel[a.Player]
			if levels == nil {
				levels = make(map[int]bool)
				seenLevel[a.Player] = levels
			}
			if !levels[raises] {
				levels[raises] = true
				if response, ok := responseFor(a.Kind); ok {
					facing := Facing(raises - 1)
					out = append(out, Observation{
						Player:   a.Player,
						Position: a.Position,
						Facing:   facing,
						Response: response,
						Key:      Key(a.Position, raiserPos[raises], facing, response),
					})
				}
			}
		}
		if a.Kind == action.Raise {
			raises++
			raiser[raises] = a.Player
			raiserPos[raises] = a.Position
		}
	}
	return out
}

func responseFor(k action.Kind) (Response, bool) {
	switch k {
	case action.Fold:
		return Fold, true
	case action.Call:
		return Call, true
	case action.Raise:
		return Raise, true
	default:
		return "", false
	}
}
