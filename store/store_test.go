package store

import (
	"sort"
	"testing"

	"github.com/jsphweid/notestore/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backends = []struct {
	name string
	new  func() Store
}{
	{"linear", func() Store { return NewLinear() }},
	{"indexed", func() Store { return NewIndexed() }},
}

// forEachBackend runs fn once per backend against a fresh empty store.
func forEachBackend(t *testing.T, fn func(t *testing.T, s Store)) {
	for _, b := range backends {
		b := b
		t.Run(b.name, func(t *testing.T) {
			s := b.new()
			fn(t, s)
			if ix, ok := s.(*Indexed); ok {
				require.NoError(t, ix.checkIndices())
			}
		})
	}
}

func note(id string, start, end uint64, num, vel uint8) model.NoteEvent {
	return model.NoteEvent{ID: id, StartTicks: start, EndTicks: end, NoteNumber: num, Velocity: vel}
}

func ids(events []model.NoteEvent) []string {
	res := make([]string, 0, len(events))
	for _, e := range events {
		res = append(res, e.ID)
	}
	sort.Strings(res)
	return res
}

func mustGet(t *testing.T, s Store, id string) model.NoteEvent {
	t.Helper()
	e, ok := s.GetEvent(id)
	require.True(t, ok, "expected event %q", id)
	return e
}

func TestAddEvent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		want := note("0", 0, 10, 60, 100)
		s.AddEvent(want)

		assert.Equal(t, want, mustGet(t, s, "0"))
		assert.Equal(t, 1, s.Len())
	})
}

func TestAddEvents(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvents([]model.NoteEvent{
			note("0", 0, 10, 60, 100),
			note("1", 10, 20, 70, 90),
		})

		assert := assert.New(t)
		assert.Equal(note("0", 0, 10, 60, 100), mustGet(t, s, "0"))
		assert.Equal(note("1", 10, 20, 70, 90), mustGet(t, s, "1"))
		assert.Equal(2, s.Len())
	})
}

func TestAddEventDuplicateIdOverwrites(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvent(note("0", 0, 10, 60, 100))
		s.AddEvent(note("0", 50, 60, 61, 101))

		assert := assert.New(t)
		assert.Equal(1, s.Len())
		assert.Equal(note("0", 50, 60, 61, 101), mustGet(t, s, "0"))
		assert.Empty(s.GetEventsByRange(0, 10))
		assert.Equal([]string{"0"}, ids(s.GetEventsByRange(55, 55)))
	})
}

func TestUpdateEventAllFields(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvent(note("0", 0, 10, 60, 100))
		s.UpdateEvent(model.NoteEventUpdate{
			ID:         "0",
			StartTicks: model.Ticks(5),
			EndTicks:   model.Ticks(15),
			NoteNumber: model.Byte(70),
			Velocity:   model.Byte(90),
		})

		assert.Equal(t, note("0", 5, 15, 70, 90), mustGet(t, s, "0"))
	})
}

func TestUpdateEventPartial(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvent(note("0", 0, 10, 60, 100))
		s.UpdateEvent(model.NoteEventUpdate{
			ID:         "0",
			StartTicks: model.Ticks(5),
			Velocity:   model.Byte(90),
		})

		assert.Equal(t, note("0", 5, 10, 60, 90), mustGet(t, s, "0"))
	})
}

func TestUpdateEventAllAbsent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvent(note("0", 0, 10, 60, 100))
		s.UpdateEvent(model.NoteEventUpdate{ID: "0"})

		assert.Equal(t, note("0", 0, 10, 60, 100), mustGet(t, s, "0"))
	})
}

func TestUpdateEventNotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvent(note("1", 0, 10, 60, 100))
		s.UpdateEvent(model.NoteEventUpdate{
			ID:         "0",
			StartTicks: model.Ticks(5),
			EndTicks:   model.Ticks(15),
			NoteNumber: model.Byte(70),
			Velocity:   model.Byte(90),
		})

		_, ok := s.GetEvent("0")
		assert := assert.New(t)
		assert.False(ok)
		assert.Equal(1, s.Len())
		assert.Equal(note("1", 0, 10, 60, 100), mustGet(t, s, "1"))
	})
}

func TestUpdateEvents(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvent(note("0", 0, 10, 60, 100))
		s.AddEvent(note("1", 10, 20, 70, 90))
		s.UpdateEvents([]model.NoteEventUpdate{
			{ID: "0", StartTicks: model.Ticks(5), EndTicks: model.Ticks(15), NoteNumber: model.Byte(70), Velocity: model.Byte(90)},
			{ID: "1", StartTicks: model.Ticks(15), EndTicks: model.Ticks(25), NoteNumber: model.Byte(80), Velocity: model.Byte(80)},
		})

		assert := assert.New(t)
		assert.Equal(note("0", 5, 15, 70, 90), mustGet(t, s, "0"))
		assert.Equal(note("1", 15, 25, 80, 80), mustGet(t, s, "1"))
	})
}

func TestUpdateEventsLaterPatchWins(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvent(note("0", 0, 10, 60, 100))
		s.UpdateEvents([]model.NoteEventUpdate{
			{ID: "0", StartTicks: model.Ticks(2), Velocity: model.Byte(1)},
			{ID: "0", StartTicks: model.Ticks(3)},
		})

		assert.Equal(t, note("0", 3, 10, 60, 1), mustGet(t, s, "0"))
	})
}

func TestUpdateEventMovesRangeMembership(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvent(note("0", 0, 10, 60, 100))
		s.UpdateEvent(model.NoteEventUpdate{ID: "0", StartTicks: model.Ticks(100), EndTicks: model.Ticks(110)})

		assert := assert.New(t)
		assert.Empty(s.GetEventsByRange(0, 50))
		assert.Equal([]string{"0"}, ids(s.GetEventsByRange(105, 200)))
	})
}

func TestDeleteEvent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvent(note("0", 0, 10, 60, 100))
		s.DeleteEvent("0")

		_, ok := s.GetEvent("0")
		assert := assert.New(t)
		assert.False(ok)
		assert.Equal(0, s.Len())
		assert.Empty(s.GetEventsByRange(0, 100))
	})
}

func TestDeleteEventIsIdempotent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvent(note("0", 0, 10, 60, 100))
		s.DeleteEvent("0")
		s.DeleteEvent("0")

		_, ok := s.GetEvent("0")
		assert.False(t, ok)
	})
}

func TestDeleteEventNotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.DeleteEvent("missing")

		_, ok := s.GetEvent("missing")
		assert.False(t, ok)
		assert.Equal(t, 0, s.Len())
	})
}

func TestDeleteEvents(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvent(note("0", 0, 10, 60, 100))
		s.AddEvent(note("1", 10, 20, 70, 90))
		s.AddEvent(note("2", 20, 30, 70, 90))
		s.DeleteEvents([]string{"0", "1", "missing"})

		assert := assert.New(t)
		_, ok := s.GetEvent("0")
		assert.False(ok)
		_, ok = s.GetEvent("1")
		assert.False(ok)
		assert.Equal(note("2", 20, 30, 70, 90), mustGet(t, s, "2"))
	})
}

func TestGetEventReturnsCopy(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvent(note("0", 0, 10, 60, 100))
		e := mustGet(t, s, "0")
		e.Velocity = 1

		assert.Equal(t, uint8(100), mustGet(t, s, "0").Velocity)
	})
}

func TestGetEventsByRange(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvents([]model.NoteEvent{
			note("0", 0, 4, 60, 100),
			note("1", 0, 5, 60, 100),
			note("2", 10, 15, 60, 100),
			note("3", 11, 15, 60, 100),
			note("4", 0, 15, 60, 100),
			note("5", 7, 8, 60, 100),
		})

		assert.Equal(t, []string{"1", "2", "4", "5"}, ids(s.GetEventsByRange(5, 10)))
	})
}

func TestGetEventsByRangeEdges(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		s.AddEvents([]model.NoteEvent{
			note("a", 10, 20, 60, 100),
			note("b", 20, 20, 60, 100),
			note("c", 21, 30, 60, 100),
		})

		assert := assert.New(t)
		assert.Equal([]string{"a", "b"}, ids(s.GetEventsByRange(20, 20)))
		assert.Equal([]string{"a"}, ids(s.GetEventsByRange(0, 10)))
		assert.Equal([]string{"c"}, ids(s.GetEventsByRange(30, 1000)))
		assert.Equal([]string{"a", "b", "c"}, ids(s.GetEventsByRange(0, 1000)))
		assert.Empty(s.GetEventsByRange(31, 1000))
	})
}

func TestGetEventsByRangeSharedTicks(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		// several events per bucket on both indices
		for i, id := range []string{"p", "q", "r"} {
			s.AddEvent(note(id, 5, 9, uint8(60+i), 100))
		}
		s.AddEvent(note("s", 0, 9, 60, 100))

		got := s.GetEventsByRange(6, 7)
		assert.Len(t, got, 4)
		assert.Equal(t, []string{"p", "q", "r", "s"}, ids(got))
	})
}

func TestInvertedIntervalDoesNotPanic(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		assert.NotPanics(t, func() {
			s.AddEvent(note("bad", 10, 2, 60, 100))
			s.GetEventsByRange(0, 100)
			s.GetEventsByRange(50, 1)
			s.UpdateEvent(model.NoteEventUpdate{ID: "bad", EndTicks: model.Ticks(0)})
			s.DeleteEvent("bad")
		})
	})
}

func TestParseKind(t *testing.T) {
	assert := assert.New(t)

	k, err := ParseKind("linear")
	assert.NoError(err)
	assert.Equal(KindLinear, k)

	k, err = ParseKind("indexed")
	assert.NoError(err)
	assert.Equal(KindIndexed, k)

	_, err = ParseKind("btree")
	assert.ErrorIs(err, ErrUnknownKind)
}

func TestNewSelectsBackend(t *testing.T) {
	assert := assert.New(t)
	assert.IsType(&Linear{}, New(KindLinear))
	assert.IsType(&Indexed{}, New(KindIndexed))
	assert.IsType(&Indexed{}, New(""))
}
