package game

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ulidEntropy   = mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	ulidEntropyMu sync.Mutex
)

func newHandID() string {
	ulidEntropyMu.Lock()
	defer ulidEntropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}

// Record is one entry in a hand's action history. Records are written
// once and never mutated.
type Record struct {
	Seq        int
	PlayerID   string
	PlayerName string
	Action     Action
	Amount     int
	Pot        int // pot after the action
	Street     State
}

// History is the append-only action log for a single hand.
type History struct {
	HandID  string
	records []Record
}

func newHistory() *History {
	return &History{HandID: newHandID()}
}

func (h *History) append(r Record) {
	r.Seq = len(h.records)
	h.records = append(h.records, r)
}

// Records returns a copy of the history so far
func (h *History) Records() []Record {
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Len returns the number of recorded actions
func (h *History) Len() int {
	return len(h.records)
}
