// Package trainerflags parses the pcfg-train CLI surface, following the
// same grouped-goflags, gologger-verbosity, banner-first shape as
// guesserflags.
package trainerflags

import (
	"fmt"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	pcfg "github.com/weircrack/pcfg"
)

// Options is the parsed trainer CLI surface.
type Options struct {
	TrainingSet    string
	TrainedModel   string
	Dictionaries   string
	TrainLengthMin int
	TrainLengthMax int
	StartFrom      int
	RMExisted      bool
	Config         string
	TrainConfig    string
	Verbose        bool
	Silent         bool
}

// ParseFlags parses os.Args into Options.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Trains a PCFG password model from a plaintext corpus and wordlist.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.TrainingSet, "training-set", "ts", "", "plaintext corpus of observed passwords, one per line"),
		flagSet.StringVarP(&opts.Dictionaries, "dictionaries", "d", "", "external wordlist to enrich the letter dictionary, one word per line"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.TrainedModel, "trained-model", "tm", "", "root directory to write the trained model into"),
		flagSet.BoolVar(&opts.RMExisted, "rm-existed", false, "remove existing digits/special/grammar tables under --trained-model before writing"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.IntVar(&opts.TrainLengthMin, "train-length-min", pcfg.DefaultTrainConfig.TrainLengthMin, "passwords shorter than this are excluded from the in-window training maps"),
		flagSet.IntVar(&opts.TrainLengthMax, "train-length-max", pcfg.DefaultTrainConfig.TrainLengthMax, "passwords longer than this are excluded from the in-window training maps"),
		flagSet.IntVar(&opts.StartFrom, "start-from", pcfg.DefaultTrainConfig.StartFrom, "minimum length at which an out-of-window password still contributes whole-line runs"),
		flagSet.StringVar(&opts.Config, "config", "", `pcfg-train cli config file (default '$HOME/.config/pcfg/config.yaml')`),
		flagSet.StringVarP(&opts.TrainConfig, "train-config", "tc", "", fmt.Sprintf(`pcfg trainer defaults file (default '$HOME/.config/pcfg/trainer_%v.yaml')`, version)),
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

	if opts.TrainingSet == "" {
		gologger.Fatal().Msg("pcfg-train: --training-set is required")
	}
	if opts.TrainedModel == "" {
		gologger.Fatal().Msg("pcfg-train: --trained-model is required")
	}
	if opts.Dictionaries == "" {
		gologger.Fatal().Msg("pcfg-train: --dictionaries is required")
	}
	if opts.TrainLengthMin > opts.TrainLengthMax {
		gologger.Fatal().Msg("pcfg-train: --train-length-min exceeds --train-length-max")
	}

	return opts
}
