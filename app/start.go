package app

import (
	"github.com/spf13/cobra"

	"github.com/crowdlink/crowdlink/internal/daemon"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(startCmd)
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the crowdlink web service",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		d, err := daemon.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		return d.Start()
	},
}
