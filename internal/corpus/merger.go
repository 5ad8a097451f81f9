package corpus

// MaxInMemoryMergeSize bounds how many candidate bytes the trainer will
// dedupe with MapBackend before switching to the disk-backed
// LevelDBBackend (default: 100 MB).
var MaxInMemoryMergeSize = 100 * 1024 * 1024

// Merger drains a channel of candidate words into a deduplicating Backend.
type Merger struct {
	receive <-chan string
	backend Backend
}

// NewMerger picks MapBackend or LevelDBBackend based on estimatedBytes,
// the caller's estimate of total candidate word bytes.
func NewMerger(ch <-chan string, estimatedBytes int) *Merger {
	m := &Merger{receive: ch}
	if estimatedBytes <= MaxInMemoryMergeSize {
		m.backend = NewMapBackend()
	} else {
		m.backend = NewLevelDBBackend()
	}
	return m
}

// Drain consumes every candidate word from the channel into the backend.
func (m *Merger) Drain() {
	for word := range m.receive {
		m.backend.Upsert(word)
	}
}

// Words returns the deduplicated word set as a channel and releases the
// backend once fully iterated.
func (m *Merger) Words() <-chan string {
	out := make(chan string, 100)
	go func() {
		defer close(out)
		m.backend.IterCallback(func(word string) {
			out <- word
		})
		m.backend.Cleanup()
	}()
	return out
}
