package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <file.mid|dir> <start> <end>",
	Short: "Lists the notes of a MIDI file sounding between two ticks",
	Long:  `Loads a MIDI file and lists every note overlapping the closed tick range [start, end].`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		end, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("end: %w", err)
		}

		s, _, err := loadMidi(args[0], 0)
		if err != nil {
			return err
		}

		events := s.GetEventsByRange(start, end)
		sort.Slice(events, func(i, j int) bool {
			if events[i].StartTicks != events[j].StartTicks {
				return events[i].StartTicks < events[j].StartTicks
			}
			return events[i].NoteNumber < events[j].NoteNumber
		})

		out := cmd.OutOrStdout()
		for _, e := range events {
			fmt.Fprintf(out, "%8d %8d  note %v  vel %3d  %v\n", e.StartTicks, e.EndTicks, color.CyanString("%3d", e.NoteNumber), e.Velocity, color.HiBlackString("%v", e.ID))
		}
		fmt.Fprintf(out, "%v notes between %v and %v\n", len(events), start, end)
		return nil
	},
}
