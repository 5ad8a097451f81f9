// Command pcfg-guess loads a trained PCFG model and streams
// probability-ordered password guesses to a file, stopping once the
// configured count is emitted.
package main

import (
	"os"
	"time"

	"github.com/projectdiscovery/gologger"

	pcfg "github.com/weircrack/pcfg"
	"github.com/weircrack/pcfg/internal/engine"
	"github.com/weircrack/pcfg/internal/model"
	"github.com/weircrack/pcfg/internal/runner/guesserflags"
)

func main() {
	opts := guesserflags.ParseFlags()

	if opts.GuessConfig != "" {
		config, err := pcfg.NewConfig(opts.GuessConfig)
		if err != nil {
			gologger.Fatal().Msgf("failed to read %v file got: %v", opts.GuessConfig, err)
		}
		if config.GuessNumber > 0 {
			opts.GuessNumber = config.GuessNumber
		}
		if config.GuessMinLen > 0 {
			opts.GuessMinLen = config.GuessMinLen
		}
		if config.GuessMaxLen > 0 {
			opts.GuessMaxLen = config.GuessMaxLen
		}
		if opts.GuessMinLen > opts.GuessMaxLen {
			gologger.Fatal().Msg("pcfg-guess: guess-min-len exceeds guess-max-len")
		}
	}

	start := time.Now()
	m, err := model.Load(opts.TrainedModel)
	if err != nil {
		gologger.Fatal().Msgf("pcfg-guess: %s\n", err)
	}
	if m.Stats.MalformedLines > 0 {
		gologger.Warning().Msgf("skipped %d malformed lines while loading model", m.Stats.MalformedLines)
	}
	if m.Stats.RejectedTemplates > 0 {
		gologger.Warning().Msgf("rejected %d templates with unresolved segments or zero joint probability", m.Stats.RejectedTemplates)
	}
	if m.Stats.DictionaryDuplicates > 0 {
		gologger.Verbose().Msgf("dropped %d duplicate dictionary words", m.Stats.DictionaryDuplicates)
	}
	gologger.Info().Msgf("loaded %d templates, %d groups", len(m.Templates), m.Arena.Len())

	out, err := os.Create(opts.GuessesFile)
	if err != nil {
		gologger.Fatal().Msgf("pcfg-guess: could not create guesses file %q: %s\n", opts.GuessesFile, err)
	}
	defer out.Close()

	result, err := engine.Run(m, engine.Config{
		MinLen:      opts.GuessMinLen,
		MaxLen:      opts.GuessMaxLen,
		GuessNumber: opts.GuessNumber,
	}, out)
	if err != nil {
		gologger.Fatal().Msgf("pcfg-guess: %s\n", err)
	}

	gologger.Info().Msgf("emitted %d guesses in %s", result.Emitted, time.Since(start).Round(time.Millisecond))
}
