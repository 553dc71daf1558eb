package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadMidiFile reads and parses the Standard MIDI File at path.
func ReadMidiFile(path string) (*smf.SMF, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	return ReadFrom(bytes.NewReader(dat))
}

// ReadFrom parses an SMF from r. gomidi can panic on malformed input
// (https://github.com/gomidi/midi/issues/20); that panic comes back as an error.
func ReadFrom(r io.Reader) (s *smf.SMF, e error) {
	defer func() {
		if rec := recover(); rec != nil {
			s, e = nil, fmt.Errorf("parsing midi file: %v", rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}
	return res, nil
}
