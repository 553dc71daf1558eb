// Package store holds note events in memory and answers tick-range overlap
// queries. Two backends implement the same contract: Linear keeps an
// unordered slice and scans it, Indexed keeps start and end tick indices
// alongside the primary records.
//
// Stores are not safe for concurrent use. Callers sharing one across
// goroutines must serialize every operation.
package store

import (
	"errors"
	"fmt"

	"github.com/jsphweid/notestore/model"
)

// Store is the operation set shared by every backend. Operations on unknown
// ids are silent no-ops, and adding an id that already exists replaces the
// stored record.
type Store interface {
	AddEvent(event model.NoteEvent)
	AddEvents(events []model.NoteEvent)
	UpdateEvent(patch model.NoteEventUpdate)
	UpdateEvents(patches []model.NoteEventUpdate)
	DeleteEvent(id string)
	DeleteEvents(ids []string)

	// GetEvent returns a copy of the stored record.
	GetEvent(id string) (model.NoteEvent, bool)

	// GetEventsByRange returns every record overlapping the closed interval
	// [start, end], each exactly once and in no particular order.
	GetEventsByRange(start, end uint64) []model.NoteEvent

	Len() int
}

var (
	_ Store = (*Linear)(nil)
	_ Store = (*Indexed)(nil)
)

type Kind string

const (
	KindLinear  Kind = "linear"
	KindIndexed Kind = "indexed"
)

var ErrUnknownKind = errors.New("unknown store kind")

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindLinear, KindIndexed:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// New returns an empty store of the given kind. Anything other than
// KindLinear gets the indexed backend.
func New(kind Kind) Store {
	if kind == KindLinear {
		return NewLinear()
	}
	return NewIndexed()
}
