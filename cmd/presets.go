package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var presetsDefaultsPath string

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the parameter presets in the defaults file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadDefaultsConfig(presetsDefaultsPath)
		if err != nil {
			logrus.Fatalf("Failed to load presets: %v", err)
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tGRID\tBETA\tGAMMA\tDT\tDESCRIPTION")
		for _, name := range cfg.presetNames() {
			p := cfg.Presets[name]
			fmt.Fprintf(tw, "%s\t%dx%d\t%g\t%g\t%g\t%s\n", name, p.Width, p.Height, p.Beta, p.Gamma, p.Dt, p.Description)
		}
		if err := tw.Flush(); err != nil {
			logrus.Fatalf("Failed to write presets: %v", err)
		}
	},
}

func init() {
	presetsCmd.Flags().StringVar(&presetsDefaultsPath, "defaults", "defaults.yaml", "Path to the presets file")

	rootCmd.AddCommand(presetsCmd)
}
