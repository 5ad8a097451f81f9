// Package corpus merges the trainer's observed letter-run vocabulary with
// an external wordlist into one deduplicated word stream, spilling to a
// disk-backed store when the corpus is too large to hold in memory.
package corpus

import "runtime/debug"

// Backend is a deduplicating word store.
type Backend interface {
	// Upsert records word as seen.
	Upsert(word string)
	// IterCallback invokes callback once per distinct word.
	IterCallback(callback func(word string))
	// Cleanup releases any resources the backend holds.
	Cleanup()
}

// MapBackend is the in-memory Backend, used when the corpus is small
// enough to comfortably hold in a Go map.
type MapBackend struct {
	words map[string]struct{}
}

func NewMapBackend() *MapBackend {
	return &MapBackend{words: map[string]struct{}{}}
}

func (m *MapBackend) Upsert(word string) {
	m.words[word] = struct{}{}
}

func (m *MapBackend) IterCallback(callback func(word string)) {
	for w := range m.words {
		callback(w)
	}
}

func (m *MapBackend) Cleanup() {
	m.words = nil
	debug.FreeOSMemory()
}
