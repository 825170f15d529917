package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/lox/pokerstats/cmd/pokerstats/shared"
	"github.com/lox/pokerstats/internal/config"
	"github.com/lox/pokerstats/internal/fileutil"
	"github.com/lox/pokerstats/internal/pipeline"
)

// AnalyzeCmd interprets hand history files and prints per-player
// statistics.
type AnalyzeCmd struct {
	Paths []string `arg:"" optional:"" name:"path" help:"Hand history files or glob patterns"`

	Config   string `help:"Path to HCL config file" default:"pokerstats.hcl"`
	Workers  int    `help:"Number of parallel workers (0 = from config)"`
	Report   string `help:"Write a JSON report to this file"`
	LogLevel string `help:"Log level (debug, info, warn, error)"`
	JSONLogs bool   `help:"Emit structured JSON logs"`
}

func (cmd AnalyzeCmd) Run() error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", cmd.Config, err)
	}
	if cmd.Workers > 0 {
		cfg.Workers = cmd.Workers
	}
	if cmd.LogLevel != "" {
		cfg.LogLevel = cmd.LogLevel
	}
	if cmd.Report != "" {
		cfg.ReportFile = cmd.Report
	}
	if len(cmd.Paths) > 0 {
		cfg.HandGlobs = cmd.Paths
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(cfg.HandGlobs) == 0 {
		return errors.New("no hand history files given, pass paths or set hand_globs in the config")
	}

	logger := shared.SetupLogger(cfg.LogLevel)
	if cmd.JSONLogs {
		logger = shared.SetupStructuredLogger(cfg.LogLevel)
	}

	files, err := expandGlobs(cfg.HandGlobs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched %v", cfg.HandGlobs)
	}

	var raws []string
	for _, file := range files {
		data, err := os.ReadFile(filepath.Clean(file))
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
		raws = append(raws, splitHands(string(data))...)
	}
	logger.Info().Int("files", len(files)).Int("hands", len(raws)).Msg("loaded hand histories")

	interpreter := pipeline.New(logger)
	monitor := pipeline.NewLogMonitor(logger, nil, 0)
	results := interpreter.Batch(context.Background(), raws, cfg.Workers, monitor)

	report := buildReport(results, logger)
	printReport(os.Stdout, report)

	if cfg.ReportFile != "" {
		if err := fileutil.WriteJSONAtomic(cfg.ReportFile, report, 0o644); err != nil {
			return fmt.Errorf("writing report %s: %w", cfg.ReportFile, err)
		}
		logger.Info().Str("file", cfg.ReportFile).Msg("wrote report")
	}
	return nil
}

// expandGlobs resolves glob patterns to a deduplicated, sorted file list.
// A literal path with no matches is an error, a pattern with none is not.
func expandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", pattern, err)
		}
		if len(matches) == 0 && !strings.ContainsAny(pattern, "*?[") {
			return nil, fmt.Errorf("no such file: %s", pattern)
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				files = append(files, match)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// splitHands cuts a hand history file into one raw transcript per hand.
// Hands are separated by blank lines; a transcript itself never contains
// one.
func splitHands(data string) []string {
	var hands []string
	var cur []string
	flush := func() {
		if len(cur) == 0 {
			return
		}
		hands = append(hands, strings.Join(cur, "\n"))
		cur = cur[:0]
	}
	for _, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return hands
}

// PlayerReport is one player's aggregate counts across a batch.
type PlayerReport struct {
	Player string `json:"player"`
	Hands  int    `json:"hands"`

	VPIP        int `json:"vpip"`
	PFR         int `json:"pfr"`
	Limp        int `json:"limp"`
	RFIChances  int `json:"rfi_chances"`
	ThreeBetOps int `json:"three_bet_opportunities"`
	ThreeBets   int `json:"three_bets"`
	FourBetOps  int `json:"four_bet_opportunities"`
	FourBets    int `json:"four_bets"`

	FlopCBetOps int `json:"flop_cbet_opportunities"`
	FlopCBets   int `json:"flop_cbets"`

	SawFlop        int `json:"saw_flop"`
	WentToShowdown int `json:"went_to_showdown"`
	HandsWon       int `json:"hands_won"`

	Profit decimal.Decimal `json:"profit"`
}

// Report is the batch-level output: per-player aggregates plus hand
// accounting.
type Report struct {
	HandsAnalyzed int             `json:"hands_analyzed"`
	HandsSkipped  int             `json:"hands_skipped"`
	LinesSkipped  int             `json:"lines_skipped"`
	Players       []*PlayerReport `json:"players"`
	Scenarios     map[string]int  `json:"scenarios,omitempty"`
}

func buildReport(results []pipeline.BatchResult, logger zerolog.Logger) *Report {
	report := &Report{}
	players := make(map[string]*PlayerReport)

	for _, r := range results {
		if r.Err != nil {
			report.HandsSkipped++
			logger.Warn().Err(r.Err).Int("hand_index", r.Index).Msg("skipping hand")
			continue
		}
		report.HandsAnalyzed++
		report.LinesSkipped += r.Result.SkippedLines

		for _, obs := range r.Result.Scenarios {
			if report.Scenarios == nil {
				report.Scenarios = make(map[string]int)
			}
			report.Scenarios[obs.Key]++
		}

		for player, flags := range r.Result.Flags {
			pr := players[player]
			if pr == nil {
				pr = &PlayerReport{Player: player, Profit: decimal.Zero}
				players[player] = pr
			}
			pr.Hands++
			countFlag(&pr.VPIP, flags.VPIP)
			countFlag(&pr.PFR, flags.PFR)
			countFlag(&pr.Limp, flags.Limp)
			countFlag(&pr.RFIChances, flags.PotUnopened)
			countFlag(&pr.ThreeBetOps, flags.ThreeBetOpportunity)
			countFlag(&pr.ThreeBets, flags.MadeThreeBet)
			countFlag(&pr.FourBetOps, flags.FourBetOpportunity)
			countFlag(&pr.FourBets, flags.MadeFourBet)
			countFlag(&pr.FlopCBetOps, flags.Flop.Opportunity)
			countFlag(&pr.FlopCBets, flags.Flop.Made)
			countFlag(&pr.SawFlop, flags.SawFlop)
			countFlag(&pr.WentToShowdown, flags.WentToShowdown)

			if outcome, ok := r.Result.Outcomes[player]; ok {
				pr.Profit = pr.Profit.Add(outcome.Profit)
				countFlag(&pr.HandsWon, outcome.Won)
			}
		}
	}

	for _, pr := range players {
		report.Players = append(report.Players, pr)
	}
	sort.Slice(report.Players, func(i, j int) bool {
		return report.Players[i].Player < report.Players[j].Player
	})
	return report
}

func countFlag(counter *int, set bool) {
	if set {
		*counter++
	}
}

func printReport(w io.Writer, report *Report) {
	fmt.Fprintf(w, "Analyzed %d hands (%d skipped, %d unparseable lines)\n\n",
		report.HandsAnalyzed, report.HandsSkipped, report.LinesSkipped)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tHANDS\tVPIP%\tPFR%\t3BET%\tCBET%\tWTSD%\tPROFIT")
	for _, pr := range report.Players {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			pr.Player,
			pr.Hands,
			percent(pr.VPIP, pr.Hands),
			percent(pr.PFR, pr.Hands),
			percent(pr.ThreeBets, pr.ThreeBetOps),
			percent(pr.FlopCBets, pr.FlopCBetOps),
			percent(pr.WentToShowdown, pr.SawFlop),
			pr.Profit.StringFixed(2),
		)
	}
	tw.Flush() //nolint:errcheck // best effort console output
}

// percent formats a ratio as a percentage, or a dash when the player never
// had the opportunity.
func percent(made, chances int) string {
	if chances == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", float64(made)/float64(chances)*100)
}
