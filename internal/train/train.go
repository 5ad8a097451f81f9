// Package train implements the trainer side of the system: turning a
// plaintext password corpus and an external wordlist into the on-disk
// probability tables the guesser's internal/model loader reads.
package train

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"
	sliceutil "github.com/projectdiscovery/utils/slice"

	"github.com/weircrack/pcfg/internal/corpus"
)

// Config is the trainer's run configuration.
type Config struct {
	TrainingSet    string
	TrainedModel   string
	Dictionaries   string
	TrainLengthMin int
	TrainLengthMax int
	StartFrom      int
	RMExisted      bool
}

// Stats summarizes one completed training run for the CLI's info log.
type Stats struct {
	TrainingSetSize int
	UsefulSetSize   int
	Structures      int
	DigitEntries    int
	SpecialEntries  int
	DictionaryWords int
}

// ErrConfig marks a trainer configuration error caught before any file I/O.
var ErrConfig = errorutil.NewWithTag("pcfg-train", "train-length-min exceeds train-length-max")

type state struct {
	cfg Config

	usefulSetSize int

	structureMap *countMap

	digitLong  *countMap
	digitShort *countMap

	letterLong  *countMap
	letterShort *countMap

	specialLong  *countMap
	specialShort *countMap
}

// Run executes a full training pass: reads cfg.TrainingSet line by line,
// classifies each line's category runs into the long/short/structure maps
// by length window, then writes structures.txt, digits/<n>.txt,
// special/<n>.txt and dictionary.txt under cfg.TrainedModel.
func Run(cfg Config) (Stats, error) {
	if cfg.TrainLengthMin > cfg.TrainLengthMax {
		return Stats{}, ErrConfig
	}

	modelDir := cfg.TrainedModel
	grammarDir := filepath.Join(modelDir, "model", "grammar")
	digitsDir := filepath.Join(modelDir, "model", "digits")
	specialDir := filepath.Join(modelDir, "model", "special")

	if cfg.RMExisted {
		gologger.Warning().Msg("removing existing model directories")
		for _, d := range []string{digitsDir, specialDir, grammarDir} {
			_ = os.RemoveAll(d)
		}
	}
	for _, d := range []string{grammarDir, digitsDir, specialDir} {
		if !fileutil.FolderExists(d) {
			if err := fileutil.CreateFolder(d); err != nil {
				return Stats{}, errorutil.NewWithTag("pcfg-train", "creating %q: %v", d, err)
			}
		}
	}

	s := &state{
		cfg:          cfg,
		structureMap: newCountMap(),
		digitLong:    newCountMap(),
		digitShort:   newCountMap(),
		letterLong:   newCountMap(),
		letterShort:  newCountMap(),
		specialLong:  newCountMap(),
		specialShort: newCountMap(),
	}

	trainingSetSize, err := s.scanTrainingSet()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{TrainingSetSize: trainingSetSize, UsefulSetSize: s.usefulSetSize}

	structures, err := s.writeStructures(grammarDir)
	if err != nil {
		return stats, err
	}
	stats.Structures = structures

	weight := CalcWeight(s.usefulSetSize)

	digitEntries, err := s.writeRunTable(digitsDir, s.digitLong, s.digitShort, weight)
	if err != nil {
		return stats, err
	}
	stats.DigitEntries = digitEntries

	specialEntries, err := s.writeRunTable(specialDir, s.specialLong, s.specialShort, weight)
	if err != nil {
		return stats, err
	}
	stats.SpecialEntries = specialEntries

	dictWords, err := s.writeDictionary(modelDir)
	if err != nil {
		return stats, err
	}
	stats.DictionaryWords = dictWords

	return stats, nil
}

// scanTrainingSet classifies each password three ways by length: in-window
// lines feed the structure map and the long category maps and count toward
// usefulSetSize; below-StartFrom-length lines contribute every run to the
// short maps; at-or-above-StartFrom but out-of-window lines contribute
// only whole-line runs to the short maps.
func (s *state) scanTrainingSet() (int, error) {
	f, err := os.Open(s.cfg.TrainingSet)
	if err != nil {
		return 0, errorutil.NewWithTag("pcfg-train", "opening training set %q: %v", s.cfg.TrainingSet, err)
	}
	defer f.Close()

	trainingSetSize := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		size := len(line)
		if size <= 0 {
			continue
		}
		trainingSetSize++

		switch {
		case s.cfg.TrainLengthMin <= size && size <= s.cfg.TrainLengthMax:
			s.usefulSetSize++
			s.structureMap.add(ExtractStructure(line))
			addRuns(s.digitLong, ExtractDigitRuns(line, 1))
			addRuns(s.letterLong, ExtractLetterRuns(line, 1))
			addRuns(s.specialLong, ExtractSpecialRuns(line, 1))
		case size >= s.cfg.StartFrom && (size < s.cfg.TrainLengthMin || size > s.cfg.TrainLengthMax):
			addRuns(s.digitShort, ExtractDigitRuns(line, size))
			addRuns(s.letterShort, ExtractLetterRuns(line, size))
			addRuns(s.specialShort, ExtractSpecialRuns(line, size))
		case size > 0 && size < s.cfg.StartFrom:
			addRuns(s.digitShort, ExtractDigitRuns(line, 1))
			addRuns(s.letterShort, ExtractLetterRuns(line, 1))
			addRuns(s.specialShort, ExtractSpecialRuns(line, 1))
		}
	}
	if err := scanner.Err(); err != nil {
		return trainingSetSize, errorutil.NewWithTag("pcfg-train", "reading training set: %v", err)
	}
	return trainingSetSize, nil
}

func addRuns(m *countMap, runs []string) {
	for _, r := range runs {
		m.add(r)
	}
}

// writeStructures writes grammar/structures.txt: one <template>\t<prob>
// line per observed structure, probability = count / total observations,
// sorted descending by count with ties kept in first-seen order.
func (s *state) writeStructures(grammarDir string) (int, error) {
	type entry struct {
		str string
		cnt int
	}
	entries := make([]entry, 0, len(s.structureMap.order))
	total := 0
	for _, str := range s.structureMap.order {
		cnt := s.structureMap.get(str)
		entries = append(entries, entry{str, cnt})
		total += cnt
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].cnt > entries[j].cnt })

	f, err := os.Create(filepath.Join(grammarDir, "structures.txt"))
	if err != nil {
		return 0, errorutil.NewWithTag("pcfg-train", "creating structures.txt: %v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		prob := 0.0
		if total > 0 {
			prob = float64(e.cnt) / float64(total)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", e.str, formatProb(prob)); err != nil {
			return 0, err
		}
	}
	if err := w.Flush(); err != nil {
		return 0, errorutil.NewWithTag("pcfg-train", "writing structures.txt: %v", err)
	}
	return len(entries), nil
}

// writeRunTable is shared by the digit and special tables: the two differ
// only in which maps they read and which directory they write, so one
// function serves both.
func (s *state) writeRunTable(dir string, long, short *countMap, weight float64) (int, error) {
	totalLong := map[int]int{}
	totalShort := map[int]int{}
	for _, k := range long.order {
		totalLong[len(k)] += long.get(k)
	}
	for _, k := range short.order {
		totalShort[len(k)] += short.get(k)
	}

	type entry struct {
		str  string
		prob float64
	}
	var entries []entry
	for _, k := range long.order {
		probLong := float64(long.get(k)) / float64(totalLong[len(k)])
		if short.has(k) {
			probShort := float64(short.get(k)) / float64(totalShort[len(k)])
			entries = append(entries, entry{k, probLong*weight + probShort*(1-weight)})
		} else {
			entries = append(entries, entry{k, probLong * weight})
		}
	}
	for _, k := range short.order {
		if long.has(k) {
			continue
		}
		probShort := float64(short.get(k)) / float64(totalShort[len(k)])
		entries = append(entries, entry{k, probShort * (1 - weight)})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].prob > entries[j].prob })

	byLength := map[int][]entry{}
	var lengths []int
	for _, e := range entries {
		if _, ok := byLength[len(e.str)]; !ok {
			lengths = append(lengths, len(e.str))
		}
		byLength[len(e.str)] = append(byLength[len(e.str)], e)
	}
	sort.Ints(lengths)

	for _, n := range lengths {
		path := filepath.Join(dir, fmt.Sprintf("%d.txt", n))
		f, err := os.Create(path)
		if err != nil {
			return 0, errorutil.NewWithTag("pcfg-train", "creating %q: %v", path, err)
		}
		w := bufio.NewWriter(f)
		for _, e := range byLength[n] {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", e.str, formatProb(e.prob)); err != nil {
				f.Close()
				return 0, err
			}
		}
		if err := w.Flush(); err != nil {
			f.Close()
			return 0, errorutil.NewWithTag("pcfg-train", "writing %q: %v", path, err)
		}
		f.Close()
	}
	return len(entries), nil
}

// writeDictionary merges letter runs observed in the long and short maps
// with every line of cfg.Dictionaries, deduplicating through a
// internal/corpus.Merger (so a multi-gigabyte external wordlist spills to
// the disk-backed backend instead of blowing up memory), then applies
// sliceutil.Dedupe as a final pass before writing one word per line with
// no probability column. The guesser derives uniform letter probabilities
// at load time.
func (s *state) writeDictionary(modelDir string) (int, error) {
	estimatedBytes := 0
	for _, w := range s.letterLong.order {
		estimatedBytes += len(w)
	}
	for _, w := range s.letterShort.order {
		if !s.letterLong.has(w) {
			estimatedBytes += len(w)
		}
	}
	dictionaryReadable := s.cfg.Dictionaries != "" && fileutil.FileExists(s.cfg.Dictionaries)
	if s.cfg.Dictionaries != "" && !dictionaryReadable {
		gologger.Warning().Msgf("external dictionary %q not found, training without it", s.cfg.Dictionaries)
	}
	if dictionaryReadable {
		if fi, err := os.Stat(s.cfg.Dictionaries); err == nil {
			estimatedBytes += int(fi.Size())
		}
	}

	candidates := make(chan string, 256)
	go func() {
		defer close(candidates)
		for _, w := range s.letterLong.order {
			candidates <- w
		}
		for _, w := range s.letterShort.order {
			if s.letterLong.has(w) {
				continue
			}
			candidates <- w
		}
		if !dictionaryReadable {
			return
		}
		f, err := os.Open(s.cfg.Dictionaries)
		if err != nil {
			gologger.Warning().Msgf("opening dictionaries file: %v", err)
			return
		}
		defer f.Close()
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			candidates <- scanner.Text()
		}
	}()

	merger := corpus.NewMerger(candidates, estimatedBytes)
	merger.Drain()

	var words []string
	for w := range merger.Words() {
		words = append(words, w)
	}
	words = sliceutil.Dedupe(words)
	sort.Strings(words)

	path := filepath.Join(modelDir, "dictionary.txt")
	f, err := os.Create(path)
	if err != nil {
		return 0, errorutil.NewWithTag("pcfg-train", "creating dictionary.txt: %v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, word := range words {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return 0, err
		}
	}
	if err := w.Flush(); err != nil {
		return 0, errorutil.NewWithTag("pcfg-train", "writing dictionary.txt: %v", err)
	}
	return len(words), nil
}

// formatProb renders a probability with 30 fractional digits, the
// precision the loader side expects probability columns to carry.
func formatProb(p float64) string {
	return strconv.FormatFloat(p, 'f', 30, 64)
}
