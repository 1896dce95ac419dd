package main

import (
	"github.com/spf13/cobra"

	"github.com/BeatGlow/gc9a01/pixel"
)

var fillCmd = &cobra.Command{
	Use:   "fill <#rrggbb>",
	Short: "fill the display with a color",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := pixel.ParseHex(args[0])
		if err != nil {
			return err
		}

		d, bus, err := openDisplay()
		if err != nil {
			return err
		}
		// Leave the panel on.
		defer bus.Close()

		return d.SetBackground(c)
	},
}

func init() {
	rootCmd.AddCommand(fillCmd)
}
