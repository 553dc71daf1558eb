package cmd

import (
	"fmt"
	"math/rand"
	"text/tabwriter"
	"time"

	"github.com/jsphweid/notestore/model"
	"github.com/jsphweid/notestore/store"
	"github.com/jsphweid/notestore/workload"
	"github.com/spf13/cobra"
)

var (
	benchN     int
	benchShape string
	benchSeed  int64
	benchWidth uint64
)

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVarP(&benchN, "num", "n", 1000, "number of events")
	benchCmd.Flags().StringVar(&benchShape, "shape", string(workload.Random), "tick layout: random, ascending or descending")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "random seed")
	benchCmd.Flags().Uint64Var(&benchWidth, "width", 50, "width of each range query in ticks")
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compares the store backends",
	Long:  `Runs the same synthetic workload against the linear and indexed backends and reports how long each step took.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		shape, err := workload.ParseShape(benchShape)
		if err != nil {
			return err
		}
		if benchN <= 0 {
			return fmt.Errorf("--num must be positive, got %v", benchN)
		}

		rng := rand.New(rand.NewSource(benchSeed))
		events := workload.Generate(shape, benchN, rng)
		patches := workload.Patches(events, rng)

		linear := runBench(store.KindLinear, events, patches, benchWidth)
		indexed := runBench(store.KindIndexed, events, patches, benchWidth)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "%v events, %v ticks\n", benchN, shape)
		fmt.Fprintln(w, "step\tlinear\tindexed\t")
		for i := range linear {
			fmt.Fprintf(w, "%v\t%v\t%v\t\n", linear[i].step, linear[i].took, indexed[i].took)
		}
		return w.Flush()
	},
}

type benchStep struct {
	step string
	took time.Duration
}

// runBench times each contract operation over the whole workload on a fresh
// store of the given kind. Steps run in the same order for every kind.
func runBench(kind store.Kind, events []model.NoteEvent, patches []model.NoteEventUpdate, width uint64) []benchStep {
	s := store.New(kind)
	var steps []benchStep
	timed := func(name string, fn func()) {
		start := time.Now()
		fn()
		steps = append(steps, benchStep{name, time.Since(start)})
	}

	timed("add", func() {
		for _, e := range events {
			s.AddEvent(e)
		}
	})
	timed("get", func() {
		for _, e := range events {
			s.GetEvent(e.ID)
		}
	})
	timed("range", func() {
		for i := range events {
			start := uint64(i)
			s.GetEventsByRange(start, start+width)
		}
	})
	timed("update", func() {
		s.UpdateEvents(patches)
	})
	timed("delete", func() {
		ids := make([]string, 0, len(events))
		for _, e := range events {
			ids = append(ids, e.ID)
		}
		s.DeleteEvents(ids)
	})
	return steps
}
