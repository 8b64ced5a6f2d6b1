package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"basv2/internal/cfg"
	"basv2/internal/prg"
)

// Environment overrides honoured by check.
const (
	envNoReach   = "C64_NO_REACH"
	envReachMode = "C64_REACH_MODE"
)

// checkSettings is the resolved configuration of one check run.
// Precedence: flag > environment > basv2.toml > default.
type checkSettings struct {
	format         string
	noReach        bool
	mode           cfg.Mode
	maxDiagnostics int
	noWarnings     bool
	withNotes      bool
	fullPath       bool
	jobs           int
	cache          bool
	cacheDir       string
	ui             uiMode
}

var checkFormats = []string{"text", "json", "pretty", "short", "sarif"}

func resolveCheckSettings(cmd *cobra.Command, m *projectManifest, getenv func(string) string) (checkSettings, error) {
	var s checkSettings
	flags := cmd.Flags()
	var err error

	if s.format, err = flags.GetString("format"); err != nil {
		return s, fmt.Errorf("failed to get format flag: %w", err)
	}
	if !flags.Changed("format") && m.IsDefined("check", "format") {
		s.format = m.Config.Check.Format
	}
	s.format = strings.ToLower(s.format)
	if !slices.Contains(checkFormats, s.format) {
		return s, fmt.Errorf("unknown format: %s (expected %s)", s.format, strings.Join(checkFormats, "|"))
	}

	if s.noReach, err = flags.GetBool("no-reach"); err != nil {
		return s, fmt.Errorf("failed to get no-reach flag: %w", err)
	}
	if !flags.Changed("no-reach") {
		switch {
		case getenv(envNoReach) == "1":
			s.noReach = true
		case m.IsDefined("check", "no_reach"):
			s.noReach = m.Config.Check.NoReach
		}
	}

	reach, err := flags.GetString("reach")
	if err != nil {
		return s, fmt.Errorf("failed to get reach flag: %w", err)
	}
	if !flags.Changed("reach") {
		if env := getenv(envReachMode); env == "strict" || env == "relaxed" {
			reach = env
		} else if m.IsDefined("check", "reachability") {
			reach = m.Config.Check.Reachability
		}
	}
	if s.mode, err = cfg.ParseMode(reach); err != nil {
		return s, err
	}

	if s.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && m.IsDefined("check", "max_diagnostics") {
		s.maxDiagnostics = m.Config.Check.MaxDiagnostics
	}

	if s.noWarnings, err = flags.GetBool("no-warnings"); err != nil {
		return s, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if s.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return s, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if s.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return s, fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return s, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !flags.Changed("jobs") && m.IsDefined("check", "jobs") {
		s.jobs = m.Config.Check.Jobs
	}

	if s.cache, err = flags.GetBool("cache"); err != nil {
		return s, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if !flags.Changed("cache") && m.IsDefined("check", "cache") {
		s.cache = m.Config.Check.Cache
	}
	if m.IsDefined("check", "cache_dir") {
		s.cacheDir = m.Config.Check.CacheDir
	}

	uiValue, err := flags.GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(uiValue); err != nil {
		return s, err
	}
	return s, nil
}

// encodeSettings is the resolved configuration of one encode run.
type encodeSettings struct {
	opts   prg.Options
	output string
	debug  bool
}

func resolveEncodeSettings(cmd *cobra.Command, m *projectManifest) (encodeSettings, error) {
	s := encodeSettings{opts: prg.DefaultOptions()}
	flags := cmd.Flags()

	addr, err := flags.GetString("start-addr")
	if err != nil {
		return s, fmt.Errorf("failed to get start-addr flag: %w", err)
	}
	if !flags.Changed("start-addr") && m.IsDefined("encode", "load_address") {
		addr = m.Config.Encode.LoadAddress
	}
	if s.opts.LoadAddress, err = prg.ParseAddress(addr); err != nil {
		return s, exitWith(1, "Invalid start address: %s", addr)
	}

	boolOpts := []struct {
		flag string
		key  string
		conf bool
		dst  *bool
	}{
		{"invert-case", "invert_case", m.configEncode().InvertCase, &s.opts.InvertCase},
		{"autonumber", "auto_number", m.configEncode().AutoNumber, &s.opts.AutoNumber},
		{"trim-spaces", "trim_spaces", m.configEncode().TrimSpaces, &s.opts.TrimSpaces},
		{"collapse-spaces", "collapse_spaces", m.configEncode().CollapseSpaces, &s.opts.CollapseSpaces},
	}
	for _, o := range boolOpts {
		v, err := flags.GetBool(o.flag)
		if err != nil {
			return s, fmt.Errorf("failed to get %s flag: %w", o.flag, err)
		}
		if !flags.Changed(o.flag) && m.IsDefined("encode", o.key) {
			v = o.conf
		}
		*o.dst = v
	}

	if s.output, err = flags.GetString("output"); err != nil {
		return s, fmt.Errorf("failed to get output flag: %w", err)
	}
	if s.debug, err = flags.GetBool("debug"); err != nil {
		return s, fmt.Errorf("failed to get debug flag: %w", err)
	}
	return s, nil
}

func (m *projectManifest) configEncode() encodeConfig {
	if m == nil {
		return encodeConfig{}
	}
	return m.Config.Encode
}

func manifestFor(cmd *cobra.Command, input string) (*projectManifest, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	return loadManifest(explicit, input)
}
