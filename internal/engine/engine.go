// Package engine threads a loaded model and a run configuration through the
// pop/emit/expand loop. All run state (length bounds, emission counter) is
// carried in one explicit value per run rather than process-wide globals.
package engine

import (
	"bufio"
	"errors"
	"io"

	"github.com/weircrack/pcfg/internal/emit"
	"github.com/weircrack/pcfg/internal/model"
	"github.com/weircrack/pcfg/internal/queue"
)

// ErrConfig is returned when MinLen > MaxLen, before any queue work starts.
var ErrConfig = errors.New("engine: guess-min-len exceeds guess-max-len")

// Config is the per-run configuration the engine threads through the loop,
// in place of the source's process-wide globals.
type Config struct {
	MinLen      int
	MaxLen      int
	GuessNumber int // cap; 0 means emit nothing and exit cleanly
}

// Result summarizes a completed run.
type Result struct {
	Emitted int
}

// Run drives the priority queue to completion against m, writing every
// length-in-range terminal to w until either the queue drains or the
// configured cap is reached.
func Run(m *model.Model, cfg Config, w io.Writer) (Result, error) {
	if cfg.MinLen > cfg.MaxLen {
		return Result{}, ErrConfig
	}
	if cfg.GuessNumber <= 0 {
		return Result{}, nil
	}

	q := queue.New()
	queue.Seed(q, m.Templates)

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	result := Result{}
	for {
		pd, ok := q.Pop()
		if !ok {
			break
		}

		capReached := false
		var writeErr error
		emit.Walk(m.Arena, pd.Groups, func(s string) bool {
			if len(s) < cfg.MinLen || len(s) > cfg.MaxLen {
				return true
			}
			if _, err := bw.WriteString(s); err != nil {
				writeErr = err
				return false
			}
			if err := bw.WriteByte('\n'); err != nil {
				writeErr = err
				return false
			}
			result.Emitted++
			if result.Emitted >= cfg.GuessNumber {
				capReached = true
				return false
			}
			return true
		})
		if writeErr != nil {
			return result, writeErr
		}
		if capReached {
			break
		}

		queue.Expand(q, m.Arena, pd)
	}

	if err := bw.Flush(); err != nil {
		return result, err
	}
	return result, nil
}
