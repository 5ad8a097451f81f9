// Package model loads a trained PCFG model directory into the in-memory
// arena/chain/template tables the queue and emitter operate on.
package model

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/weircrack/pcfg/internal/grammar"
)

// MaxRunLength bounds the digit/special length tables scanned on disk
// (model/digits/<n>.txt, model/special/<n>.txt).
const MaxRunLength = 32

// Stats records the non-fatal anomalies the loader skipped over, so callers
// can log a summary (gologger.Warning) without aborting the load.
type Stats struct {
	MalformedLines       int
	RejectedTemplates    int
	DictionaryDuplicates int
}

// Model is the fully resolved, read-only in-memory form of a trained PCFG:
// the shared group arena, the per-category/per-length chain heads, and the
// list of templates whose segments all resolved.
type Model struct {
	Arena     *grammar.Arena
	Heads     map[grammar.Category]map[int]int
	Templates []grammar.ResolvedTemplate
	Stats     Stats
}

// head looks up the arena index of the chain head for (cat, length), or
// returns (grammar.NoNext, false) if that combination is unrealizable.
func (m *Model) head(cat grammar.Category, length int) (int, bool) {
	byLen, ok := m.Heads[cat]
	if !ok {
		return grammar.NoNext, false
	}
	idx, ok := byLen[length]
	if !ok {
		return grammar.NoNext, false
	}
	return idx, true
}

// Load reads dictionary.txt, model/grammar/structures.txt, and every
// model/digits/<n>.txt and model/special/<n>.txt under dir into a Model.
func Load(dir string) (*Model, error) {
	const tag = "pcfg-model"

	if !fileutil.FolderExists(dir) {
		return nil, errorutil.NewWithTag(tag, "trained model directory %q does not exist", dir)
	}

	m := &Model{
		Arena: grammar.NewArena(),
		Heads: map[grammar.Category]map[int]int{
			grammar.Letter:  {},
			grammar.Digit:   {},
			grammar.Special: {},
		},
	}

	if err := m.loadDictionary(filepath.Join(dir, "dictionary.txt")); err != nil {
		return nil, err
	}

	loadedDigits, err := m.loadChainDir(filepath.Join(dir, "model", "digits"), grammar.Digit)
	if err != nil {
		return nil, err
	}
	loadedSpecial, err := m.loadChainDir(filepath.Join(dir, "model", "special"), grammar.Special)
	if err != nil {
		return nil, err
	}
	if loadedDigits == 0 && loadedSpecial == 0 {
		return nil, ErrNoProbabilityTables
	}

	if err := m.loadStructures(filepath.Join(dir, "model", "grammar", "structures.txt")); err != nil {
		return nil, err
	}
	if len(m.Templates) == 0 {
		return nil, ErrNoTemplates
	}

	return m, nil
}

// loadChainDir loads model/<digits|special>/<n>.txt for every n in
// [1, MaxRunLength) that exists, returning how many of those files
// yielded a non-empty chain.
func (m *Model) loadChainDir(dir string, cat grammar.Category) (int, error) {
	loaded := 0
	for n := 1; n < MaxRunLength; n++ {
		path := filepath.Join(dir, fmt.Sprintf("%d.txt", n))
		if !fileutil.FileExists(path) {
			continue
		}
		head, err := m.loadProbabilityFile(path)
		if err != nil {
			return loaded, err
		}
		if head != grammar.NoNext {
			m.Heads[cat][n] = head
			loaded++
		}
	}
	return loaded, nil
}

// loadProbabilityFile parses a "<string>\t<probability>" file already
// sorted descending by probability, grouping contiguous equal-probability
// lines into one Group apiece and linking groups in file order. Lines
// without a tab or with an unparseable probability are skipped silently.
func (m *Model) loadProbabilityFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return grammar.NoNext, errorutil.NewWithTag("pcfg-model", "could not open %q: %v", path, err)
	}
	defer f.Close()

	head := grammar.NoNext
	tailIdx := grammar.NoNext
	var curProb float64
	haveGroup := false

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		tab := strings.IndexByte(line, '\t')
		if tab < 0 {
			m.Stats.MalformedLines++
			continue
		}
		word := line[:tab]
		prob, perr := strconv.ParseFloat(line[tab+1:], 64)
		if perr != nil {
			m.Stats.MalformedLines++
			continue
		}
		if haveGroup && prob == curProb {
			g := m.Arena.Get(tailIdx)
			g.Strings = append(g.Strings, word)
			continue
		}
		idx := m.Arena.Add(grammar.Group{Probability: prob, Strings: []string{word}, Next: grammar.NoNext})
		if haveGroup {
			m.Arena.Get(tailIdx).Next = idx
		} else {
			head = idx
		}
		tailIdx = idx
		curProb = prob
		haveGroup = true
	}
	if err := scanner.Err(); err != nil {
		return grammar.NoNext, errorutil.NewWithTag("pcfg-model", "reading %q: %v", path, err)
	}
	return head, nil
}

// loadDictionary builds one Group per observed word length, assigning every
// word in that length's group the uniform probability 1/count. Duplicate
// words are dropped and counted in Stats.
func (m *Model) loadDictionary(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDictionary, err)
	}
	defer f.Close()

	byLength := map[int][]string{}
	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		word := scanner.Text()
		word = strings.TrimSuffix(word, "\r")
		if word == "" {
			continue
		}
		if _, dup := seen[word]; dup {
			m.Stats.DictionaryDuplicates++
			continue
		}
		seen[word] = struct{}{}
		byLength[len(word)] = append(byLength[len(word)], word)
	}
	if err := scanner.Err(); err != nil {
		return errorutil.NewWithTag("pcfg-model", "reading %q: %v", path, err)
	}

	for length, words := range byLength {
		prob := 1.0 / float64(len(words))
		idx := m.Arena.Add(grammar.Group{Probability: prob, Strings: words, Next: grammar.NoNext})
		m.Heads[grammar.Letter][length] = idx
	}
	return nil
}

// loadStructures parses grammar/structures.txt, resolving every segment of
// every template against the loaded chains. A template with any unresolved
// segment, or whose resulting joint probability is 0, is dropped (counted
// in Stats.RejectedTemplates) rather than aborting the whole load.
func (m *Model) loadStructures(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoStructures, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		tab := strings.IndexByte(line, '\t')
		if tab < 0 {
			m.Stats.MalformedLines++
			continue
		}
		structureStr := line[:tab]
		baseProb, perr := strconv.ParseFloat(line[tab+1:], 64)
		if perr != nil {
			m.Stats.MalformedLines++
			continue
		}
		segments, serr := grammar.ParseStructure(structureStr)
		if serr != nil {
			m.Stats.MalformedLines++
			continue
		}

		heads := make([]int, len(segments))
		joint := baseProb
		resolved := true
		for i, seg := range segments {
			headIdx, ok := m.head(seg.Category, seg.Length)
			if !ok {
				resolved = false
				break
			}
			heads[i] = headIdx
			joint *= m.Arena.Get(headIdx).Probability
		}
		if !resolved || joint <= 0 {
			m.Stats.RejectedTemplates++
			continue
		}

		m.Templates = append(m.Templates, grammar.ResolvedTemplate{
			Template:         grammar.Template{Segments: segments, BaseProbability: baseProb},
			Heads:            heads,
			JointProbability: joint,
		})
	}
	if err := scanner.Err(); err != nil {
		return errorutil.NewWithTag("pcfg-model", "reading %q: %v", path, err)
	}
	return nil
}
