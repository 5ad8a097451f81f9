// Command pcfg-train turns a plaintext password corpus and an external
// wordlist into the on-disk probability tables internal/model loads.
package main

import (
	"time"

	"github.com/projectdiscovery/gologger"

	pcfg "github.com/weircrack/pcfg"
	"github.com/weircrack/pcfg/internal/runner/trainerflags"
	"github.com/weircrack/pcfg/internal/train"
)

func main() {
	opts := trainerflags.ParseFlags()

	if opts.TrainConfig != "" {
		config, err := pcfg.NewTrainConfig(opts.TrainConfig)
		if err != nil {
			gologger.Fatal().Msgf("failed to read %v file got: %v", opts.TrainConfig, err)
		}
		if config.TrainLengthMin > 0 {
			opts.TrainLengthMin = config.TrainLengthMin
		}
		if config.TrainLengthMax > 0 {
			opts.TrainLengthMax = config.TrainLengthMax
		}
		if config.StartFrom > 0 {
			opts.StartFrom = config.StartFrom
		}
		if opts.TrainLengthMin > opts.TrainLengthMax {
			gologger.Fatal().Msg("pcfg-train: train-length-min exceeds train-length-max")
		}
	}

	start := time.Now()
	stats, err := train.Run(train.Config{
		TrainingSet:    opts.TrainingSet,
		TrainedModel:   opts.TrainedModel,
		Dictionaries:   opts.Dictionaries,
		TrainLengthMin: opts.TrainLengthMin,
		TrainLengthMax: opts.TrainLengthMax,
		StartFrom:      opts.StartFrom,
		RMExisted:      opts.RMExisted,
	})
	if err != nil {
		gologger.Fatal().Msgf("pcfg-train: %s\n", err)
	}

	gologger.Info().Msgf(
		"trained on %d lines (%d useful) -> %d structures, %d digit entries, %d special entries, %d dictionary words in %s",
		stats.TrainingSetSize, stats.UsefulSetSize, stats.Structures, stats.DigitEntries, stats.SpecialEntries,
		stats.DictionaryWords, time.Since(start).Round(time.Millisecond),
	)
}
