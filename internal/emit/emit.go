// Package emit realizes the terminal strings of one popped partial
// derivation: the Cartesian product of the string sets bound to each of its
// segments.
package emit

import (
	"strings"

	"github.com/weircrack/pcfg/internal/grammar"
)

// Terminals returns every concatenation produced by picking one string from
// each segment's group, in the order the groups list their strings. The
// result is NOT sorted or filtered by length; callers apply min/max length
// filtering themselves, since a derivation can yield zero, some, or all
// in-range terminals.
func Terminals(arena *grammar.Arena, groups []int) []string {
	sets := make([][]string, len(groups))
	for i, gi := range groups {
		sets[i] = arena.Get(gi).Strings
	}
	var out []string
	clusterBomb(sets, nil, func(parts []string) {
		out = append(out, strings.Join(parts, ""))
	})
	return out
}

// Walk is the streaming counterpart of Terminals: it invokes visit once per
// terminal string and stops early (without building the full slice) if
// visit returns false. Used by the engine so an emission cap can halt mid
// derivation without materializing terminals the cap will never reach.
func Walk(arena *grammar.Arena, groups []int, visit func(string) bool) bool {
	sets := make([][]string, len(groups))
	for i, gi := range groups {
		sets[i] = arena.Get(gi).Strings
	}
	return clusterBombEarlyExit(sets, nil, visit)
}

// clusterBomb is the unconditional (non-stoppable) Cartesian-product walk.
func clusterBomb(sets [][]string, prefix []string, callback func(parts []string)) {
	if len(sets) == 0 {
		callback(prefix)
		return
	}
	index := len(prefix)
	if index == len(sets)-1 {
		for _, v := range sets[index] {
			callback(append(append([]string{}, prefix...), v))
		}
		return
	}
	for _, v := range sets[index] {
		clusterBomb(sets, append(append([]string{}, prefix...), v), callback)
	}
}

// clusterBombEarlyExit mirrors clusterBomb but propagates a false return
// from visit all the way back up, aborting the remaining branches.
func clusterBombEarlyExit(sets [][]string, prefix []string, visit func(string) bool) bool {
	if len(sets) == 0 {
		return visit(strings.Join(prefix, ""))
	}
	index := len(prefix)
	if index == len(sets)-1 {
		for _, v := range sets[index] {
			if !visit(strings.Join(append(append([]string{}, prefix...), v), "")) {
				return false
			}
		}
		return true
	}
	for _, v := range sets[index] {
		if !clusterBombEarlyExit(sets, append(append([]string{}, prefix...), v), visit) {
			return false
		}
	}
	return true
}
