package midi

import (
	"sort"

	"github.com/google/uuid"
	"github.com/jsphweid/notestore/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Option func(*options)

type options struct {
	newID func() string
}

// WithIDFunc sets how extracted notes get their ids. The default is a random
// uuid per note.
func WithIDFunc(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

type voice struct {
	track   int
	channel uint8
	key     uint8
}

type sounding struct {
	start    uint64
	velocity uint8
}

type extracted struct {
	voice
	model.NoteEvent
}

// ExtractNoteEvents pairs note starts with note ends in every track and
// returns one NoteEvent per sounded note, with absolute tick positions.
// A note-on with velocity 0 counts as a note end. Striking a key that is
// already sounding ends the earlier note at that tick, and notes still
// sounding when a track runs out end at the track's last tick.
//
// Events are ordered by start tick, then pitch; ids are assigned in that order.
func ExtractNoteEvents(s *smf.SMF, opts ...Option) []model.NoteEvent {
	o := options{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	var notes []extracted
	for ti, track := range s.Tracks {
		var absTicks uint64
		open := make(map[voice]sounding)
		finish := func(v voice, end uint64) {
			n := open[v]
			delete(open, v)
			notes = append(notes, extracted{v, model.NoteEvent{
				StartTicks: n.start,
				EndTicks:   end,
				NoteNumber: v.key,
				Velocity:   n.velocity,
			}})
		}

		for _, ev := range track {
			absTicks += uint64(ev.Delta)
			msg := gomidi.Message(ev.Message)
			var ch, key, vel uint8
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				v := voice{ti, ch, key}
				if _, ok := open[v]; ok {
					finish(v, absTicks)
				}
				open[v] = sounding{start: absTicks, velocity: vel}
			case msg.GetNoteEnd(&ch, &key):
				v := voice{ti, ch, key}
				if _, ok := open[v]; ok {
					finish(v, absTicks)
				}
			}
		}

		for v := range open {
			finish(v, absTicks)
		}
	}

	sort.Slice(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		switch {
		case a.StartTicks != b.StartTicks:
			return a.StartTicks < b.StartTicks
		case a.NoteNumber != b.NoteNumber:
			return a.NoteNumber < b.NoteNumber
		case a.EndTicks != b.EndTicks:
			return a.EndTicks < b.EndTicks
		case a.track != b.track:
			return a.track < b.track
		}
		return a.channel < b.channel
	})

	res := make([]model.NoteEvent, 0, len(notes))
	for _, n := range notes {
		e := n.NoteEvent
		e.ID = o.newID()
		res = append(res, e)
	}
	return res
}
