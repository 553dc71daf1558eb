package cmd

import (
	"fmt"

	"github.com/jsphweid/notestore/midi"
	"github.com/jsphweid/notestore/model"
	"github.com/jsphweid/notestore/store"
	"github.com/jsphweid/notestore/util"
	"github.com/spf13/cobra"
)

var importMax int

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().IntVar(&importMax, "max", 0, "most files to read from a directory (0 for all)")
}

var importCmd = &cobra.Command{
	Use:   "import <file.mid|dir>",
	Short: "Loads MIDI files into a store",
	Long: `Loads every note of a MIDI file, or of every MIDI file beneath a directory,
into a store and reports what was imported.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, events, err := loadMidi(args[0], importMax)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %v notes into %v store\n", s.Len(), cfg.Backend)
		if len(events) > 0 {
			lo, hi := span(events)
			fmt.Fprintf(out, "Tick span: %v-%v\n", lo, hi)
		}
		return nil
	},
}

// loadMidi reads the MIDI files at path and adds their notes to a new store
// of the configured kind. Files from a directory share one tick timeline.
func loadMidi(path string, maxFiles int) (store.Store, []model.NoteEvent, error) {
	paths, err := util.GatherMidiPaths(path, maxFiles)
	if err != nil {
		return nil, nil, err
	}

	var events []model.NoteEvent
	for _, p := range paths {
		parsed, err := midi.ReadMidiFile(p)
		if err != nil {
			return nil, nil, err
		}
		events = append(events, midi.ExtractNoteEvents(parsed)...)
	}

	s := store.New(cfg.Backend)
	s.AddEvents(events)
	return s, events, nil
}

func span(events []model.NoteEvent) (lo, hi uint64) {
	lo, hi = events[0].StartTicks, events[0].EndTicks
	for _, e := range events[1:] {
		lo = min(lo, e.StartTicks)
		hi = max(hi, e.EndTicks)
	}
	return lo, hi
}
