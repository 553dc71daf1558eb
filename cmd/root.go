package cmd

import (
	"github.com/jsphweid/notestore/config"
	"github.com/jsphweid/notestore/store"
	"github.com/spf13/cobra"
)

var (
	cfg         config.Config
	backendFlag string
)

var rootCmd = &cobra.Command{
	Use:   "notestore",
	Short: "In-memory MIDI note store",
	Long: `notestore keeps MIDI note events in memory and answers tick range
overlap queries, using either a linear or an indexed backend.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if backendFlag != "" {
			kind, err := store.ParseKind(backendFlag)
			if err != nil {
				return err
			}
			c.Backend = kind
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "store backend, linear or indexed (default $NOTESTORE_BACKEND, else indexed)")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
