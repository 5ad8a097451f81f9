package engine

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weircrack/pcfg/internal/grammar"
	"github.com/weircrack/pcfg/internal/model"
)

// A single one-segment template over a two-word dictionary emits both
// words and drains.
func TestRunSingleTemplateDictionary(t *testing.T) {
	arena := grammar.NewArena()
	dict := arena.Add(grammar.Group{Probability: 0.5, Strings: []string{"cat", "dog"}, Next: grammar.NoNext})

	m := &model.Model{
		Arena: arena,
		Templates: []grammar.ResolvedTemplate{
			{
				Template:         grammar.Template{Segments: []grammar.Segment{{Category: grammar.Letter, Length: 3}}, BaseProbability: 1.0},
				Heads:            []int{dict},
				JointProbability: 0.5,
			},
		},
	}

	var buf bytes.Buffer
	res, err := Run(m, Config{MinLen: 1, MaxLen: 5, GuessNumber: 10}, &buf)
	require.NoError(t, err)
	require.Equal(t, 2, res.Emitted)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	sort.Strings(lines)
	require.Equal(t, []string{"cat", "dog"}, lines)
}

// Templates LD(0.6)/DL(0.4) over an L/2 chain [{"ab":0.5}] and a D/1
// chain [{"1":0.7},{"2":0.3}] must yield exactly ab1 (0.21), 1ab (0.14),
// ab2 (0.09), 2ab (0.06) in that order.
func TestRunInterleavesTemplatesByProbability(t *testing.T) {
	arena := grammar.NewArena()
	dTwo := arena.Add(grammar.Group{Probability: 0.3, Strings: []string{"2"}, Next: grammar.NoNext})
	dOne := arena.Add(grammar.Group{Probability: 0.7, Strings: []string{"1"}, Next: dTwo})
	lAB := arena.Add(grammar.Group{Probability: 0.5, Strings: []string{"ab"}, Next: grammar.NoNext})

	ld := grammar.Template{Segments: []grammar.Segment{{Category: grammar.Letter, Length: 2}, {Category: grammar.Digit, Length: 1}}, BaseProbability: 0.6}
	dl := grammar.Template{Segments: []grammar.Segment{{Category: grammar.Digit, Length: 1}, {Category: grammar.Letter, Length: 2}}, BaseProbability: 0.4}

	m := &model.Model{
		Arena: arena,
		Templates: []grammar.ResolvedTemplate{
			{Template: ld, Heads: []int{lAB, dOne}, JointProbability: 0.6 * 0.5 * 0.7},
			{Template: dl, Heads: []int{dOne, lAB}, JointProbability: 0.4 * 0.7 * 0.5},
		},
	}

	var buf bytes.Buffer
	res, err := Run(m, Config{MinLen: 3, MaxLen: 3, GuessNumber: 10}, &buf)
	require.NoError(t, err)
	require.Equal(t, 4, res.Emitted)

	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, []string{"ab1", "1ab", "ab2", "2ab"}, got)
}

// A template referencing an absent chain never reaches the model (the
// loader drops it); the engine simply runs on whatever templates survived
// loading.
func TestRunSurvivingTemplatesOnly(t *testing.T) {
	arena := grammar.NewArena()
	letters := arena.Add(grammar.Group{Probability: 1.0, Strings: []string{"ab"}, Next: grammar.NoNext})

	m := &model.Model{
		Arena: arena,
		Templates: []grammar.ResolvedTemplate{
			{
				Template:         grammar.Template{Segments: []grammar.Segment{{Category: grammar.Letter, Length: 2}}, BaseProbability: 0.5},
				Heads:            []int{letters},
				JointProbability: 0.5,
			},
		},
		Stats: model.Stats{RejectedTemplates: 1},
	}

	var buf bytes.Buffer
	res, err := Run(m, Config{MinLen: 1, MaxLen: 5, GuessNumber: 10}, &buf)
	require.NoError(t, err)
	require.Equal(t, 1, res.Emitted)
	require.Equal(t, "ab\n", buf.String())
}

// A zero cap must emit nothing and leave the sink untouched but clean.
func TestRunZeroCap(t *testing.T) {
	arena := grammar.NewArena()
	letters := arena.Add(grammar.Group{Probability: 1.0, Strings: []string{"ab"}, Next: grammar.NoNext})
	m := &model.Model{
		Arena: arena,
		Templates: []grammar.ResolvedTemplate{
			{Template: grammar.Template{Segments: []grammar.Segment{{Category: grammar.Letter, Length: 2}}, BaseProbability: 1.0}, Heads: []int{letters}, JointProbability: 1.0},
		},
	}

	var buf bytes.Buffer
	res, err := Run(m, Config{MinLen: 1, MaxLen: 5, GuessNumber: 0}, &buf)
	require.NoError(t, err)
	require.Equal(t, 0, res.Emitted)
	require.Empty(t, buf.String())
}

// min=10,max=20 but no template can reach 10 bytes: queue drains, zero
// emissions, no error.
func TestRunAllFilteredOut(t *testing.T) {
	arena := grammar.NewArena()
	letters := arena.Add(grammar.Group{Probability: 1.0, Strings: []string{"ab"}, Next: grammar.NoNext})
	m := &model.Model{
		Arena: arena,
		Templates: []grammar.ResolvedTemplate{
			{Template: grammar.Template{Segments: []grammar.Segment{{Category: grammar.Letter, Length: 2}}, BaseProbability: 1.0}, Heads: []int{letters}, JointProbability: 1.0},
		},
	}

	var buf bytes.Buffer
	res, err := Run(m, Config{MinLen: 10, MaxLen: 20, GuessNumber: 100}, &buf)
	require.NoError(t, err)
	require.Equal(t, 0, res.Emitted)
	require.Empty(t, buf.String())
}

// Two segments of one template both reference the same D/1 chain
// [{"0":0.5},{"1":0.5}]; all four combinations must appear exactly once.
func TestRunSameChainBothSegments(t *testing.T) {
	arena := grammar.NewArena()
	one := arena.Add(grammar.Group{Probability: 0.5, Strings: []string{"1"}, Next: grammar.NoNext})
	zero := arena.Add(grammar.Group{Probability: 0.5, Strings: []string{"0"}, Next: one})

	m := &model.Model{
		Arena: arena,
		Templates: []grammar.ResolvedTemplate{
			{
				Template:         grammar.Template{Segments: []grammar.Segment{{Category: grammar.Digit, Length: 1}, {Category: grammar.Digit, Length: 1}}, BaseProbability: 1.0},
				Heads:            []int{zero, zero},
				JointProbability: 0.25,
			},
		},
	}

	var buf bytes.Buffer
	res, err := Run(m, Config{MinLen: 2, MaxLen: 2, GuessNumber: 100}, &buf)
	require.NoError(t, err)
	require.Equal(t, 4, res.Emitted)

	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	sort.Strings(got)
	require.Equal(t, []string{"00", "01", "10", "11"}, got)
}

// The cap stops the run before the queue drains: a template with four
// one-terminal derivations and a cap of 3 must write exactly three lines.
func TestRunStopsAtGuessNumber(t *testing.T) {
	arena := grammar.NewArena()
	one := arena.Add(grammar.Group{Probability: 0.5, Strings: []string{"1"}, Next: grammar.NoNext})
	zero := arena.Add(grammar.Group{Probability: 0.5, Strings: []string{"0"}, Next: one})

	m := &model.Model{
		Arena: arena,
		Templates: []grammar.ResolvedTemplate{
			{
				Template:         grammar.Template{Segments: []grammar.Segment{{Category: grammar.Digit, Length: 1}, {Category: grammar.Digit, Length: 1}}, BaseProbability: 1.0},
				Heads:            []int{zero, zero},
				JointProbability: 0.25,
			},
		},
	}

	var buf bytes.Buffer
	res, err := Run(m, Config{MinLen: 1, MaxLen: 5, GuessNumber: 3}, &buf)
	require.NoError(t, err)
	require.Equal(t, 3, res.Emitted)
	require.Len(t, strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"), 3)
}

func TestRunRejectsInvertedLengthBounds(t *testing.T) {
	m := &model.Model{Arena: grammar.NewArena()}
	var buf bytes.Buffer
	_, err := Run(m, Config{MinLen: 10, MaxLen: 5, GuessNumber: 10}, &buf)
	require.ErrorIs(t, err, ErrConfig)
}
