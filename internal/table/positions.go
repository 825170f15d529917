// Package table resolves canonical position labels for the active players at
// a table of any supported size.
package table

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lox/pokerstats/internal/transcript"
)

// ErrAmbiguousPosition indicates positions cannot be assigned, typically
// because fewer than two active players remain. Positional statistics are
// withheld for such hands; non-positional results are still valid.
var ErrAmbiguousPosition = errors.New("ambiguous position")

// Position is a canonical table position label.
type Position string

const (
	SmallBlind Position = "SB"
	BigBlind   Position = "BB"
	UTG        Position = "UTG"
	UTG1       Position = "UTG+1"
	UTG2       Position = "UTG+2"
	MP         Position = "MP"
	Hijack     Position = "HJ"
	Cutoff     Position = "CO"
	Button     Position = "BTN"
)

// orderings holds the fixed position sequences for table sizes with
// conventional names. The sequence is in assignment order walking from the
// seat after the button: SB first, button last.
var orderings = map[int][]Position{
	2: {SmallBlind, BigBlind},
	3: {SmallBlind, BigBlind, Button},
	6: {SmallBlind, BigBlind, UTG, MP, Cutoff, Button},
	9: {SmallBlind, BigBlind, UTG, UTG1, UTG2, MP, Hijack, Cutoff, Button},
}

// Ordering returns the canonical position list for the given active player
// count. Counts without a fixed table fall back to SB, BB, UTG, MP1..MPk, BTN.
func Ordering(count int) []Position {
	if fixed, ok := orderings[count]; ok {
		out := make([]Position, len(fixed))
		copy(out, fixed)
		return out
	}
	out := []Position{SmallBlind, BigBlind, UTG}
	for i := 1; i <= count-4; i++ {
		out = append(out, Position(fmt.Sprintf("MP%d", i)))
	}
	return append(out, Button)
}

// Resolve assigns a position to every active (not sitting out) player.
//
// The button is located by its index in the active list, not the raw seat
// list, so a sitting-out player between two active seats cannot shift the
// assignment. Heads-up the button posts the small blind.
func Resolve(seats []transcript.Seat, buttonSeat int) (map[string]Position, error) {
	active := make([]transcript.Seat, 0, len(seats))
	for _, s := range seats {
		if !s.SittingOut {
			active = append(active, s)
		}
	}
	if len(active) < 2 {
		return nil, fmt.Errorf("%w: %d active players", ErrAmbiguousPosition, len(active))
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Number < active[j].Number })

	btnIdx := buttonIndex(active, buttonSeat)
	n := len(active)
	positions := make(map[string]Position, n)

	if n == 2 {
		positions[active[btnIdx].Player] = SmallBlind
		positions[active[(btnIdx+1)%2].Player] = BigBlind
		return positions, nil
	}

	order := Ordering(n)
	for i := 1; i <= n; i++ {
		positions[active[(btnIdx+i)%n].Player] = order[i-1]
	}
	return positions, nil
}

// buttonIndex finds the button within the active list. If the declared button
// seat is itself sitting out, the nearest active seat at or before it acts as
// the effective button.
func buttonIndex(active []transcript.Seat, buttonSeat int) int {
	idx := len(active) - 1
	for i, s := range active {
		if s.Number == buttonSeat {
			return i
		}
		if s.Number < buttonSeat {
			idx = i
		}
	}
	return idx
}
