package store

import "github.com/jsphweid/notestore/model"

// Linear is the reference backend: an unordered slice where every operation
// is a full scan.
type Linear struct {
	events []model.NoteEvent
}

func NewLinear() *Linear {
	return &Linear{}
}

func (s *Linear) indexOf(id string) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Linear) AddEvent(event model.NoteEvent) {
	if i := s.indexOf(event.ID); i >= 0 {
		s.events[i] = event
		return
	}
	s.events = append(s.events, event)
}

func (s *Linear) AddEvents(events []model.NoteEvent) {
	for _, e := range events {
		s.AddEvent(e)
	}
}

func (s *Linear) UpdateEvent(patch model.NoteEventUpdate) {
	if i := s.indexOf(patch.ID); i >= 0 {
		s.events[i] = patch.Apply(s.events[i])
	}
}

func (s *Linear) UpdateEvents(patches []model.NoteEventUpdate) {
	for _, p := range patches {
		s.UpdateEvent(p)
	}
}

func (s *Linear) DeleteEvent(id string) {
	s.retain(func(e model.NoteEvent) bool { return e.ID != id })
}

func (s *Linear) DeleteEvents(ids []string) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	s.retain(func(e model.NoteEvent) bool {
		_, ok := drop[e.ID]
		return !ok
	})
}

// retain keeps only the events for which keep returns true, preserving order.
func (s *Linear) retain(keep func(model.NoteEvent) bool) {
	n := 0
	for _, e := range s.events {
		if keep(e) {
			s.events[n] = e
			n++
		}
	}
	clear(s.events[n:])
	s.events = s.events[:n]
}

func (s *Linear) GetEvent(id string) (model.NoteEvent, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.events[i], true
	}
	return model.NoteEvent{}, false
}

func (s *Linear) GetEventsByRange(start, end uint64) []model.NoteEvent {
	var res []model.NoteEvent
	for _, e := range s.events {
		if e.Overlaps(start, end) {
			res = append(res, e)
		}
	}
	return res
}

func (s *Linear) Len() int {
	return len(s.events)
}
