package transcript

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/example/maintenance-agent/internal/models"
	"github.com/example/maintenance-agent/internal/persist"
)

// Log is the append-only conversation transcript. Turns are never edited
// or reordered; the full sequence is persisted after every change and
// replayed as model-call context on every turn.
type Log struct {
	mu    sync.RWMutex
	turns []models.Turn
	kv    persist.Store
}

// Load reads the persisted transcript, falling back to an empty one when
// the key is absent or does not parse.
func Load(kv persist.Store) *Log {
	l := &Log{kv: kv}
	data, ok, err := kv.Get(persist.KeyTranscript)
	if err != nil {
		log.Printf("transcript: read: %v; starting empty", err)
		return l
	}
	if ok {
		var turns []models.Turn
		if jerr := json.Unmarshal(data, &turns); jerr != nil {
			log.Printf("transcript: parse: %v; starting empty", jerr)
		} else {
			l.turns = turns
		}
	}
	return l
}

// Snapshot returns a copy of the current turn sequence.
func (l *Log) Snapshot() []models.Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len reports the number of turns.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}

// Append adds one turn to the end of the transcript.
func (l *Log) Append(turn models.Turn) {
	l.mu.Lock()
	l.turns = append(l.turns, turn)
	l.saveLocked()
	l.mu.Unlock()
}

// Replace swaps in a full turn sequence atomically. The orchestration loop
// uses this to commit a completed turn, so the projection never observes a
// partially built turn.
func (l *Log) Replace(turns []models.Turn) {
	cp := make([]models.Turn, len(turns))
	copy(cp, turns)
	l.mu.Lock()
	l.turns = cp
	l.saveLocked()
	l.mu.Unlock()
}

func (l *Log) saveLocked() {
	data, err := json.Marshal(l.turns)
	if err != nil {
		log.Printf("transcript: marshal: %v", err)
		return
	}
	if err := l.kv.Set(persist.KeyTranscript, data); err != nil {
		log.Printf("transcript: save: %v", err)
	}
}
