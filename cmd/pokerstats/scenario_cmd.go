package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lox/pokerstats/internal/config"
	"github.com/lox/pokerstats/internal/scenario"
)

// ScenarioCmd looks up a reference frequency in a TOML scenario table.
type ScenarioCmd struct {
	Key  string `arg:"" help:"Scenario key, e.g. BTN_vs_BB_3bet_call"`
	Hand string `arg:"" help:"Starting hand type, e.g. AKs, T9o, 77"`

	Table  string `help:"Path to TOML scenario frequency table (defaults to scenario_file from config)"`
	Config string `help:"Path to HCL config file" default:"pokerstats.hcl"`
}

func (cmd ScenarioCmd) Run() error {
	path := cmd.Table
	if path == "" {
		cfg, err := config.Load(cmd.Config)
		if err != nil {
			return err
		}
		path = cfg.ScenarioFile
	}
	if path == "" {
		return errors.New("no scenario table, pass --table or set scenario_file in the config")
	}

	table, err := scenario.LoadTOML(path)
	if err != nil {
		return err
	}

	freq, ok := table.Lookup(cmd.Key, cmd.Hand)
	if !ok {
		fmt.Fprintf(os.Stdout, "%s %s: no reference frequency\n", cmd.Key, cmd.Hand)
		return nil
	}
	fmt.Fprintf(os.Stdout, "%s %s: %.2f\n", cmd.Key, cmd.Hand, freq)
	return nil
}
