package action

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/lox/pokerstats/internal/table"
	"github.com/lox/pokerstats/internal/transcript"
)

// Line grammar. Each action line has the shape
// "name: <verb> [currency]<amount>[ to [currency]<amount>]"; names are
// matched non-greedily so embedded spaces survive.
var (
	foldRe  = regexp.MustCompile(`^(.+?): folds`)
	checkRe = regexp.MustCompile(`^(.+?): checks`)
	callRe  = regexp.MustCompile(`^(.+?): calls (\S+)`)
	betRe   = regexp.MustCompile(`^(.+?): bets (\S+)`)
	raiseRe = regexp.MustCompile(`^(.+?): raises (\S+) to (\S+)`)
	sbRe    = regexp.MustCompile(`^(.+?): posts small blind (\S+)`)
	bbRe    = regexp.MustCompile(`^(.+?): posts big blind (\S+)`)
	anteRe  = regexp.MustCompile(`^(.+?): posts the ante (\S+)`)

	collectedRe = regexp.MustCompile(`^(.+?) collected (\S+)(?: from (?:(?:main|side) )?pot)?$`)
	uncalledRe  = regexp.MustCompile(`^Uncalled bet \((.+?)\) returned to (.+)$`)
)

const allInMarker = "and is all-in"

// sectionStreets maps transcript sections to the street their action lines
// belong to. Blind and ante posts appear before the hole-cards marker, so the
// header is scanned as part of preflop.
var sectionStreets = []struct {
	section transcript.Section
	street  Street
}{
	{transcript.Header, Preflop},
	{transcript.Preflop, Preflop},
	{transcript.Flop, Flop},
	{transcript.Turn, Turn},
	{transcript.River, River},
	{transcript.Showdown, Showdown},
}

// Builder converts segmented transcripts into action streams, tagging each
// action with the acting player's resolved position.
type Builder struct {
	positions map[string]table.Position
	logger    zerolog.Logger
}

// NewBuilder returns a Builder. positions may be nil when position resolution
// failed; actions are then emitted without position tags.
func NewBuilder(positions map[string]table.Position, logger zerolog.Logger) *Builder {
	return &Builder{positions: positions, logger: logger}
}

// Build walks every street section in transcript order and emits the typed
// event stream. Lines that match no action keyword (chat, timeout notices,
// sit-out announcements) are ignored. Lines that match a keyword but carry an
// unparseable amount are skipped with a warning and recorded in
// Stream.Skipped; a single bad line never discards the hand.
func (b *Builder) Build(hand *transcript.Hand) *Stream {
	stream := &Stream{}

	for _, ss := range sectionStreets {
		lines, ok := hand.Sections[ss.section]
		if !ok {
			continue
		}
		for _, line := range lines {
			b.classify(stream, ss.street, line)
		}
	}

	// Uncalled-return lines may also sit in the summary. Collections are
	// deliberately not scanned there: the summary restates them as
	// "Seat N:" recap lines and would double count.
	for _, line := range hand.Sections[transcript.Summary] {
		if m := uncalledRe.FindStringSubmatch(line); m != nil {
			b.addUncalled(stream, Showdown, line, m)
		}
	}

	return stream
}

func (b *Builder) classify(stream *Stream, street Street, line string) {
	if m := uncalledRe.FindStringSubmatch(line); m != nil {
		b.addUncalled(stream, street, line, m)
		return
	}
	if m := collectedRe.FindStringSubmatch(line); m != nil {
		amount, err := ParseAmount(m[2])
		if err != nil {
			b.skip(stream, street, line, err)
			return
		}
		stream.Collections = append(stream.Collections, Collection{
			Player: m[1],
			Street: street,
			Amount: amount,
		})
		return
	}

	kind, player, amountToken, ok := classifyAction(line)
	if !ok {
		return
	}

	amount := decimal.Zero
	if amountToken != "" {
		parsed, err := ParseAmount(amountToken)
		if err != nil {
			b.skip(stream, street, line, err)
			return
		}
		amount = parsed
	}

	stream.Actions = append(stream.Actions, Action{
		Index:    len(stream.Actions),
		Player:   player,
		Position: b.positions[player],
		Street:   street,
		Kind:     kind,
		Amount:   amount,
		AllIn:    strings.Contains(line, allInMarker),
	})
}

// classifyAction matches a line against the action vocabulary. The returned
// amount token is empty for fold and check. For raises the token is the "to"
// amount: raise amounts are cumulative street totals, never increments.
func classifyAction(line string) (Kind, string, string, bool) {
	if m := raiseRe.FindStringSubmatch(line); m != nil {
		return Raise, m[1], m[3], true
	}
	if m := callRe.FindStringSubmatch(line); m != nil {
		return Call, m[1], m[2], true
	}
	if m := betRe.FindStringSubmatch(line); m != nil {
		return Bet, m[1], m[2], true
	}
	if m := foldRe.FindStringSubmatch(line); m != nil {
		return Fold, m[1], "", true
	}
	if m := checkRe.FindStringSubmatch(line); m != nil {
		return Check, m[1], "", true
	}
	if m := sbRe.FindStringSubmatch(line); m != nil {
		return PostSmallBlind, m[1], m[2], true
	}
	if m := bbRe.FindStringSubmatch(line); m != nil {
		return PostBigBlind, m[1], m[2], true
	}
	if m := anteRe.FindStringSubmatch(line); m != nil {
		return PostAnte, m[1], m[2], true
	}
	return 0, "", "", false
}

func (b *Builder) addUncalled(stream *Stream, street Street, line string, m []string) {
	amount, err := ParseAmount(m[1])
	if err != nil {
		b.skip(stream, street, line, err)
		return
	}
	stream.Uncalled = append(stream.Uncalled, UncalledReturn{Player: m[2], Amount: amount})
}

func (b *Builder) skip(stream *Stream, street Street, line string, err error) {
	b.logger.Warn().
		Str("street", street.String()).
		Str("line", line).
		Err(err).
		Msg("skipping unparseable action line")
	stream.Skipped = append(stream.Skipped, SkippedLine{Street: street, Line: line, Err: err})
}
