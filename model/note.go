package model

// NoteEvent is one note held over the closed tick interval
// [StartTicks, EndTicks]. StartTicks <= EndTicks is expected but not checked.
type NoteEvent struct {
	ID         string `json:"id"`
	StartTicks uint64 `json:"start_ticks"`
	EndTicks   uint64 `json:"end_ticks"`
	NoteNumber uint8  `json:"note_number"`
	Velocity   uint8  `json:"velocity"`
}

// Overlaps reports whether the event intersects the closed interval [start, end].
func (e NoteEvent) Overlaps(start, end uint64) bool {
	return e.StartTicks <= end && e.EndTicks >= start
}

// NoteEventUpdate is a sparse patch. Nil fields are left untouched.
type NoteEventUpdate struct {
	ID         string  `json:"id"`
	StartTicks *uint64 `json:"start_ticks,omitempty"`
	EndTicks   *uint64 `json:"end_ticks,omitempty"`
	NoteNumber *uint8  `json:"note_number,omitempty"`
	Velocity   *uint8  `json:"velocity,omitempty"`
}

func (u NoteEventUpdate) IsEmpty() bool {
	return u.StartTicks == nil && u.EndTicks == nil && u.NoteNumber == nil && u.Velocity == nil
}

// Apply returns e with the fields present in u overwritten. The id never changes.
func (u NoteEventUpdate) Apply(e NoteEvent) NoteEvent {
	if u.StartTicks != nil {
		e.StartTicks = *u.StartTicks
	}
	if u.EndTicks != nil {
		e.EndTicks = *u.EndTicks
	}
	if u.NoteNumber != nil {
		e.NoteNumber = *u.NoteNumber
	}
	if u.Velocity != nil {
		e.Velocity = *u.Velocity
	}
	return e
}

// Ticks and Byte are small helpers for building patches inline.
func Ticks(v uint64) *uint64 { return &v }

func Byte(v uint8) *uint8 { return &v }
