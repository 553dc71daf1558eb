package store

import (
	"fmt"

	"github.com/jsphweid/notestore/model"
	"github.com/jsphweid/notestore/tickindex"
)

// Indexed keeps the primary records in a map and two derived indices: one
// from start tick to ids, one from end tick to ids. Every id in events sits
// in exactly the start bucket for its StartTicks and the end bucket for its
// EndTicks. Mutations keep the three structures in lockstep.
type Indexed struct {
	events map[string]model.NoteEvent
	starts *tickindex.Index[uint64]
	ends   *tickindex.Index[uint64]
}

func NewIndexed() *Indexed {
	return &Indexed{
		events: make(map[string]model.NoteEvent),
		starts: tickindex.New[uint64](),
		ends:   tickindex.New[uint64](),
	}
}

func (s *Indexed) AddEvent(event model.NoteEvent) {
	if old, ok := s.events[event.ID]; ok {
		s.starts.Remove(old.StartTicks, old.ID)
		s.ends.Remove(old.EndTicks, old.ID)
	}
	s.events[event.ID] = event
	s.starts.Insert(event.StartTicks, event.ID)
	s.ends.Insert(event.EndTicks, event.ID)
}

func (s *Indexed) AddEvents(events []model.NoteEvent) {
	for _, e := range events {
		s.AddEvent(e)
	}
}

func (s *Indexed) UpdateEvent(patch model.NoteEventUpdate) {
	e, ok := s.events[patch.ID]
	if !ok {
		return
	}

	// remove old, insert new, then commit
	if patch.StartTicks != nil {
		s.starts.Remove(e.StartTicks, e.ID)
		s.starts.Insert(*patch.StartTicks, e.ID)
		e.StartTicks = *patch.StartTicks
	}
	if patch.EndTicks != nil {
		s.ends.Remove(e.EndTicks, e.ID)
		s.ends.Insert(*patch.EndTicks, e.ID)
		e.EndTicks = *patch.EndTicks
	}
	if patch.NoteNumber != nil {
		e.NoteNumber = *patch.NoteNumber
	}
	if patch.Velocity != nil {
		e.Velocity = *patch.Velocity
	}
	s.events[e.ID] = e
}

func (s *Indexed) UpdateEvents(patches []model.NoteEventUpdate) {
	for _, p := range patches {
		s.UpdateEvent(p)
	}
}

func (s *Indexed) DeleteEvent(id string) {
	e, ok := s.events[id]
	if !ok {
		return
	}
	delete(s.events, id)
	s.starts.Remove(e.StartTicks, id)
	s.ends.Remove(e.EndTicks, id)
}

func (s *Indexed) DeleteEvents(ids []string) {
	for _, id := range ids {
		s.DeleteEvent(id)
	}
}

func (s *Indexed) GetEvent(id string) (model.NoteEvent, bool) {
	e, ok := s.events[id]
	return e, ok
}

// GetEventsByRange finds [a, b] with a <= end && b >= start in two passes.
// The start index yields every event with a in [start, end]; those already
// satisfy both bounds. The end index then yields every event with b >= start,
// which still needs a <= end checked against the record, and skips ids the
// first pass produced.
func (s *Indexed) GetEventsByRange(start, end uint64) []model.NoteEvent {
	var res []model.NoteEvent
	seen := make(map[string]struct{})

	s.starts.AscendRange(start, end, func(_ uint64, id string) bool {
		if e, ok := s.events[id]; ok {
			seen[id] = struct{}{}
			res = append(res, e)
		}
		return true
	})

	s.ends.AscendFrom(start, func(_ uint64, id string) bool {
		if _, dup := seen[id]; dup {
			return true
		}
		if e, ok := s.events[id]; ok && e.StartTicks <= end {
			seen[id] = struct{}{}
			res = append(res, e)
		}
		return true
	})

	return res
}

func (s *Indexed) Len() int {
	return len(s.events)
}

// Rebuild recomputes both tick indices from the primary records.
func (s *Indexed) Rebuild() {
	s.starts.Clear()
	s.ends.Clear()
	for id, e := range s.events {
		s.starts.Insert(e.StartTicks, id)
		s.ends.Insert(e.EndTicks, id)
	}
}

// checkIndices reports the first way the tick indices disagree with the
// primary records.
func (s *Indexed) checkIndices() error {
	for id, e := range s.events {
		if !s.starts.Contains(e.StartTicks, id) {
			return fmt.Errorf("id %q missing from start bucket %d", id, e.StartTicks)
		}
		if !s.ends.Contains(e.EndTicks, id) {
			return fmt.Errorf("id %q missing from end bucket %d", id, e.EndTicks)
		}
	}
	if err := checkIndex("start", s.starts, s.events, func(e model.NoteEvent) uint64 { return e.StartTicks }); err != nil {
		return err
	}
	return checkIndex("end", s.ends, s.events, func(e model.NoteEvent) uint64 { return e.EndTicks })
}

func checkIndex(name string, x *tickindex.Index[uint64], events map[string]model.NoteEvent, tick func(model.NoteEvent) uint64) error {
	for _, k := range x.Keys() {
		ids := x.Bucket(k)
		if len(ids) == 0 {
			return fmt.Errorf("empty %s bucket %d", name, k)
		}
		for _, id := range ids {
			e, ok := events[id]
			if !ok {
				return fmt.Errorf("%s bucket %d holds deleted id %q", name, k, id)
			}
			if tick(e) != k {
				return fmt.Errorf("%s bucket %d holds id %q whose tick is %d", name, k, id, tick(e))
			}
		}
	}
	return nil
}
