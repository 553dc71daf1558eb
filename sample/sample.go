// Package sample builds small Standard MIDI Files with known note layouts.
package sample

import (
	"bytes"
	"os"
	"path/filepath"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// TicksPerQuarter is the resolution of every file built here.
const TicksPerQuarter = 96

func single(tr smf.Track) *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)
	if err := s.Add(tr); err != nil {
		panic("sample track rejected: " + err.Error())
	}
	return s
}

// Song yields notes [0,96] 60/100, [0,96] 64/90, [192,240] 67/80 and
// [240,336] 67/70. The E is released by a zero velocity note on, the second
// G restrikes the first, and the last G is left sounding until end of track.
func Song() *smf.SMF {
	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 60, 100))
	tr.Add(0, midi.NoteOn(0, 64, 90))
	tr.Add(96, midi.NoteOff(0, 60))
	tr.Add(0, midi.NoteOn(0, 64, 0))
	tr.Add(96, midi.NoteOn(0, 67, 80))
	tr.Add(48, midi.NoteOn(0, 67, 70))
	tr.Close(96)
	return single(tr)
}

// Chords yields a C major triad over [0,96] then an F major triad over
// [96,192], all at velocity 100.
func Chords() *smf.SMF {
	var tr smf.Track
	var delta uint32
	for _, triad := range [][]uint8{{60, 64, 67}, {60, 65, 69}} {
		for _, key := range triad {
			tr.Add(delta, midi.NoteOn(0, key, 100))
			delta = 0
		}
		delta = TicksPerQuarter
		for _, key := range triad {
			tr.Add(delta, midi.NoteOff(0, key))
			delta = 0
		}
	}
	tr.Close(0)
	return single(tr)
}

func Bytes(s *smf.SMF) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes s to path, creating parent directories as needed.
func WriteFile(path string, s *smf.SMF) error {
	data, err := Bytes(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
