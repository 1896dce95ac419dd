package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/gc9a01"
	"github.com/BeatGlow/gc9a01/conn"
)

var rootCmd = &cobra.Command{
	Use:          "knob",
	Short:        "knob drives a GC9A01 round display",
	Long:         "knob drives a 240x240 GC9A01 round display connected over SPI",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
		os.Exit(1)
	},
}

var (
	spiPortFlag    string
	frequencyFlag  string
	dcPinFlag      string
	resetPinFlag   string
	csPinFlag      string
	directFlag     bool
	sleepDelayFlag time.Duration
)

func init() {
	cobra.EnablePrefixMatching = true
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&spiPortFlag, `spi`, ``, `SPI port name (default: first available)`)
	flags.StringVar(&frequencyFlag, `frequency`, conn.DefaultSPIConfig.Frequency.String(), `SPI clock frequency`)
	flags.StringVar(&dcPinFlag, `dc`, `GPIO24`, `Data/Command GPIO pin (DC)`)
	flags.StringVar(&resetPinFlag, `reset`, `GPIO25`, `Reset GPIO pin`)
	flags.StringVar(&csPinFlag, `cs`, ``, `Chip select GPIO pin (default: driven by the SPI controller)`)
	flags.BoolVar(&directFlag, `direct`, false, `draw directly to the panel, without a frame buffer`)
	flags.DurationVar(&sleepDelayFlag, `sleep-delay`, 0, `settling delay after sleep and wake commands`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDisplay opens the bus and initializes the display.
func openDisplay() (*gc9a01.Display, *conn.SPI, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}

	var frequency physic.Frequency
	if err := frequency.Set(frequencyFlag); err != nil {
		return nil, nil, fmt.Errorf("invalid frequency %q: %w", frequencyFlag, err)
	}

	config := conn.DefaultSPIConfig
	config.Frequency = frequency
	if csPinFlag != "" {
		if config.CS = gpioreg.ByName(csPinFlag); config.CS == nil {
			return nil, nil, fmt.Errorf("unknown chip select pin %q", csPinFlag)
		}
	}

	bus, err := conn.OpenSPI(spiPortFlag, &config)
	if err != nil {
		return nil, nil, err
	}

	strategy := gc9a01.Buffered
	if directFlag {
		strategy = gc9a01.Direct
	}
	d, err := gc9a01.New(bus, gpioreg.ByName(dcPinFlag), gpioreg.ByName(resetPinFlag), &gc9a01.Config{
		Strategy:   strategy,
		SleepDelay: sleepDelayFlag,
	})
	if err != nil {
		_ = bus.Close()
		return nil, nil, err
	}
	log.Printf("using %s (%s) on %s", d, strategy, bus)

	if err = d.Begin(); err != nil {
		_ = bus.Close()
		return nil, nil, err
	}
	return d, bus, nil
}
