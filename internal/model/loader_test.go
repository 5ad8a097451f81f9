package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeModelDir materializes a minimal trained-model directory tree under a
// temp dir for the loader to read back.
func writeModelDir(t *testing.T, dictionary string, digits, special map[int]string, structures string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dictionary.txt"), []byte(dictionary), 0o644))

	grammarDir := filepath.Join(dir, "model", "grammar")
	require.NoError(t, os.MkdirAll(grammarDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(grammarDir, "structures.txt"), []byte(structures), 0o644))

	digitsDir := filepath.Join(dir, "model", "digits")
	require.NoError(t, os.MkdirAll(digitsDir, 0o755))
	for n, content := range digits {
		require.NoError(t, os.WriteFile(filepath.Join(digitsDir, itoa(n)+".txt"), []byte(content), 0o644))
	}

	specialDir := filepath.Join(dir, "model", "special")
	require.NoError(t, os.MkdirAll(specialDir, 0o755))
	for n, content := range special {
		require.NoError(t, os.WriteFile(filepath.Join(specialDir, itoa(n)+".txt"), []byte(content), 0o644))
	}
	return dir
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestLoadBasicModel(t *testing.T) {
	dir := writeModelDir(t,
		"cat\ndog\n",
		map[int]string{1: "1\t0.700000000000000000000000000000\n2\t0.300000000000000000000000000000\n"},
		nil,
		"LLL\t1.0\n",
	)
	m, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, m.Templates, 1)

	letterHead, ok := m.head('L', 3)
	require.True(t, ok)
	g := m.Arena.Get(letterHead)
	require.InDelta(t, 0.5, g.Probability, 1e-9)
	require.ElementsMatch(t, []string{"cat", "dog"}, g.Strings)
}

func TestLoadDropsUnresolvedTemplate(t *testing.T) {
	// (S,4) chain is absent entirely: the LLSSSS-shaped template must be
	// dropped at load without aborting the whole load.
	dir := writeModelDir(t,
		"ab\n",
		map[int]string{1: "1\t1.0\n"},
		nil,
		"LL\t0.5\nLLSSSS\t0.5\n",
	)
	m, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, m.Templates, 1)
	require.Equal(t, 1, m.Stats.RejectedTemplates)
}

func TestLoadChainDescendingAndGrouping(t *testing.T) {
	dir := writeModelDir(t,
		"ab\n",
		map[int]string{
			2: "11\t0.500000000000000000000000000000\n22\t0.500000000000000000000000000000\n33\t0.200000000000000000000000000000\n",
		},
		nil,
		"LL\t1.0\n",
	)
	m, err := Load(dir)
	require.NoError(t, err)

	head, ok := m.head('D', 2)
	require.True(t, ok)
	g0 := m.Arena.Get(head)
	require.ElementsMatch(t, []string{"11", "22"}, g0.Strings)
	require.NotEqual(t, -1, g0.Next)

	g1 := m.Arena.Get(g0.Next)
	require.InDelta(t, 0.2, g1.Probability, 1e-9)
	require.Greater(t, g0.Probability, g1.Probability)
	require.Equal(t, -1, g1.Next)
}

func TestLoadMalformedLinesAreSkipped(t *testing.T) {
	dir := writeModelDir(t,
		"ab\n",
		map[int]string{1: "1\t1.0\nnotabline\n2\tnotanumber\n"},
		nil,
		"LL\t1.0\n",
	)
	m, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, 2, m.Stats.MalformedLines)
}

func TestLoadMissingStructuresIsFatal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dictionary.txt"), []byte("ab\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "model", "digits"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model", "digits", "1.txt"), []byte("1\t1.0\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "model", "special"), 0o755))

	_, err := Load(dir)
	require.ErrorIs(t, err, ErrNoStructures)
}

func TestLoadZeroTemplatesIsFatal(t *testing.T) {
	dir := writeModelDir(t, "ab\n", map[int]string{1: "1\t1.0\n"}, nil, "SSSS\t1.0\n")
	_, err := Load(dir)
	require.ErrorIs(t, err, ErrNoTemplates)
}

func TestLoadNoProbabilityTablesIsFatal(t *testing.T) {
	dir := writeModelDir(t, "ab\n", nil, nil, "L\t1.0\n")
	_, err := Load(dir)
	require.ErrorIs(t, err, ErrNoProbabilityTables)
}
