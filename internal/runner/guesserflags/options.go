// Package guesserflags parses the pcfg-guess CLI surface: grouped goflags,
// gologger verbosity switches, and a banner print before any real work
// starts.
package guesserflags

import (
	"fmt"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	pcfg "github.com/weircrack/pcfg"
)

// Options is the parsed guesser CLI surface.
type Options struct {
	TrainedModel string
	GuessesFile  string
	GuessNumber  int
	GuessMinLen  int
	GuessMaxLen  int
	Config       string
	GuessConfig  string
	Verbose      bool
	Silent       bool
}

// ParseFlags parses os.Args into Options, exiting the process via
// gologger.Fatal on a missing required flag or an unparseable flag set.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Probability-ordered PCFG password guesser.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.TrainedModel, "trained-model", "tm", "", "root directory of a trained pcfg model"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.GuessesFile, "guesses-file", "o", "", "output file to write guesses to"),
		flagSet.IntVarP(&opts.GuessNumber, "guess-number", "n", pcfg.DefaultConfig.GuessNumber, "maximum number of guesses to emit before clean exit"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.IntVar(&opts.GuessMinLen, "guess-min-len", pcfg.DefaultConfig.GuessMinLen, "inclusive lower length bound in bytes"),
		flagSet.IntVar(&opts.GuessMaxLen, "guess-max-len", pcfg.DefaultConfig.GuessMaxLen, "inclusive upper length bound in bytes"),
		flagSet.StringVar(&opts.Config, "config", "", `pcfg-guess cli config file (default '$HOME/.config/pcfg/config.yaml')`),
		flagSet.StringVarP(&opts.GuessConfig, "guess-config", "gc", "", fmt.Sprintf(`pcfg guesser defaults file (default '$HOME/.config/pcfg/guesser_%v.yaml')`, version)),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s\n", err)
	}

	if opts.Config != "" {
		if err := flagSet.MergeConfigFile(opts.Config); err != nil {
			gologger.Error().Msgf("failed to read config file got %v", err)
		}
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if opts.TrainedModel == "" {
		gologger.Fatal().Msg("pcfg-guess: --trained-model is required")
	}
	if opts.GuessesFile == "" {
		gologger.Fatal().Msg("pcfg-guess: --guesses-file is required")
	}
	if opts.GuessMinLen > opts.GuessMaxLen {
		gologger.Fatal().Msg("pcfg-guess: --guess-min-len exceeds --guess-max-len")
	}

	return opts
}
