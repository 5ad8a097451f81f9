package corpus

import (
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/hmap/store/hybrid"
)

// LevelDBBackend is the disk-backed Backend, used once the corpus grows
// past MaxInMemoryMergeSize so a multi-gigabyte wordlist merge doesn't
// have to fit entirely in RAM.
type LevelDBBackend struct {
	storage *hybrid.HybridMap
}

func NewLevelDBBackend() *LevelDBBackend {
	l := &LevelDBBackend{}
	db, err := hybrid.New(hybrid.DefaultDiskOptions)
	if err != nil {
		gologger.Fatal().Msgf("corpus: failed to create temp dir for dictionary merge: %v", err)
	}
	l.storage = db
	return l
}

func (l *LevelDBBackend) Upsert(word string) {
	if err := l.storage.Set(word, nil); err != nil {
		gologger.Error().Msgf("corpus: leveldb: got %v while writing %v", err, word)
	}
}

func (l *LevelDBBackend) IterCallback(callback func(word string)) {
	l.storage.Scan(func(k, _ []byte) error {
		callback(string(k))
		return nil
	})
}

func (l *LevelDBBackend) Cleanup() {
	_ = l.storage.Close()
}
