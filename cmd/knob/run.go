package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/BeatGlow/gc9a01/pixel"
	"github.com/BeatGlow/gc9a01/ui"
)

// retryDelay is waited after a failed render before trying again.
const retryDelay = time.Second

var intervalFlag time.Duration

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "cycle through the views",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d, _, err := openDisplay()
		if err != nil {
			return err
		}
		defer func() {
			if err := d.Close(); err != nil {
				log.Printf("close failed: %v", err)
			}
		}()

		var views ui.Manager
		views.Add(ui.NewLightView("Light"))
		views.Add(ui.NewColorView("Warm", pixel.Pack(0xff, 0x8c, 0x00)))
		views.Add(ui.NewColorView("Cool", pixel.Pack(0x00, 0x64, 0xc8)))
		return cycle(ctx, &views, d, intervalFlag)
	},
}

func init() {
	runCmd.Flags().DurationVar(&intervalFlag, `interval`, 5*time.Second, `time each view is shown`)
	rootCmd.AddCommand(runCmd)
}

// cycle selects the next view every interval until ctx is done. Failed renders
// are retried after retryDelay.
func cycle(ctx context.Context, views *ui.Manager, screen ui.Screen, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 0; ; {
		wait := ticker.C
		if err := views.Select(i, screen); err != nil {
			log.Printf("view %d failed, retrying in %s: %v", i, retryDelay, err)
			wait = time.After(retryDelay)
		} else {
			i = (i + 1) % views.Len()
		}
		select {
		case <-ctx.Done():
			return nil
		case <-wait:
		}
	}
}
