// Package transcript segments a raw hand-history transcript into its street
// sections and extracts the table metadata (seat list, button, stakes) that
// later pipeline stages consume.
package transcript

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrMalformedTranscript indicates the transcript cannot be interpreted at
// all, typically because the hole-cards marker that starts preflop action is
// missing. The whole hand should be skipped.
var ErrMalformedTranscript = errors.New("malformed transcript")

// Section identifies one segment of a hand transcript.
type Section int

const (
	Header Section = iota
	Preflop
	Flop
	Turn
	River
	Showdown
	Summary
)

func (s Section) String() string {
	return [...]string{"header", "preflop", "flop", "turn", "river", "showdown", "summary"}[s]
}

// Streets lists the betting sections in act order.
var Streets = []Section{Preflop, Flop, Turn, River}

// Seat is one entry from the transcript's seat list.
type Seat struct {
	Number     int
	Player     string
	Stack      decimal.Decimal
	SittingOut bool
}

// Hand is a segmented transcript: header metadata, the seat list, and the
// lines of each section that was present. Sections the hand never reached are
// simply absent.
type Hand struct {
	HandID     string
	Stake      string
	Timestamp  time.Time
	ButtonSeat int
	Seats      []Seat
	Sections   map[Section][]string
}

// HasSection reports whether the transcript contained the given section.
func (h *Hand) HasSection(s Section) bool {
	_, ok := h.Sections[s]
	return ok
}

var sectionMarkers = []struct {
	prefix  string
	section Section
}{
	{"*** HOLE CARDS ***", Preflop},
	{"*** FLOP ***", Flop},
	{"*** TURN ***", Turn},
	{"*** RIVER ***", River},
	{"*** SHOW DOWN ***", Showdown},
	{"*** SUMMARY ***", Summary},
}

var (
	seatRe    = regexp.MustCompile(`^Seat (\d+): (.+?) \([^\d]*([\d,]+(?:\.\d+)?) in chips\)(.*)$`)
	buttonRe  = regexp.MustCompile(`Seat #?(\d+) is the button`)
	handIDRe  = regexp.MustCompile(`Hand #([0-9A-Za-z-]+)`)
	stakeRe   = regexp.MustCompile(`\(([^)]*[0-9][^)]*)\)`)
	headerTSs = []string{"2006/01/02 15:04:05", "2006-01-02 15:04:05"}
	tsRe      = regexp.MustCompile(`\d{4}[/-]\d{2}[/-]\d{2} \d{2}:\d{2}:\d{2}`)
)

// Parse segments raw transcript text. It returns ErrMalformedTranscript when
// no hole-cards marker is present, since preflop action has no defined start
// without it.
func Parse(raw string) (*Hand, error) {
	hand := &Hand{
		ButtonSeat: -1,
		Sections:   make(map[Section][]string),
	}

	current := Header
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if section, ok := matchMarker(trimmed); ok {
			current = section
			hand.Sections[section] = nil
			continue
		}

		if current == Header {
			if err := hand.parseHeaderLine(trimmed); err != nil {
				return nil, err
			}
		}
		hand.Sections[current] = append(hand.Sections[current], trimmed)
	}

	if !hand.HasSection(Preflop) {
		return nil, fmt.Errorf("%w: no hole-cards marker", ErrMalformedTranscript)
	}
	return hand, nil
}

// matchMarker checks whether a line begins a new section. Markers may carry a
// board suffix ("*** FLOP *** [Ah 7d 2c]"), so only the prefix is compared.
func matchMarker(line string) (Section, bool) {
	for _, m := range sectionMarkers {
		if strings.HasPrefix(line, m.prefix) {
			return m.section, true
		}
	}
	return Header, false
}

func (h *Hand) parseHeaderLine(line string) error {
	if m := seatRe.FindStringSubmatch(line); m != nil {
		number, _ := strconv.Atoi(m[1])
		stack, err := decimal.NewFromString(strings.ReplaceAll(m[3], ",", ""))
		if err != nil {
			return fmt.Errorf("%w: seat %d stack %q", ErrMalformedTranscript, number, m[3])
		}
		h.Seats = append(h.Seats, Seat{
			Number:     number,
			Player:     m[2],
			Stack:      stack,
			SittingOut: strings.Contains(m[4], "sitting out"),
		})
		return nil
	}

	if m := buttonRe.FindStringSubmatch(line); m != nil {
		h.ButtonSeat, _ = strconv.Atoi(m[1])
		return nil
	}

	// The title line carries hand ID, stake and timestamp when present.
	// None of them are required for interpretation.
	if h.HandID == "" {
		if m := handIDRe.FindStringSubmatch(line); m != nil {
			h.HandID = m[1]
			if sm := stakeRe.FindStringSubmatch(line); sm != nil {
				h.Stake = sm[1]
			}
			if tm := tsRe.FindString(line); tm != "" {
				for _, layout := range headerTSs {
					if ts, err := time.Parse(layout, tm); err == nil {
						h.Timestamp = ts
						break
					}
				}
			}
		}
	}
	return nil
}
