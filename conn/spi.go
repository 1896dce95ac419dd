// Package conn implements the serial bus transport used to talk to display panels.
package conn

import (
	"fmt"
	"io"
	"log"
	"os"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

var debug = os.Getenv("DISPLAY_DEBUG") != ""

// MaxFrequency is the highest supported bus clock.
const MaxFrequency = 80 * physic.MegaHertz

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Frequency is the bus clock, in the range (0, MaxFrequency].
	Frequency physic.Frequency

	// Mode is the SPI clock mode (Mode0 through Mode3).
	Mode spi.Mode

	// BitsPerWord defaults to 8.
	BitsPerWord int

	// BatchSize splits larger transfers in chunks, 0 disables splitting.
	BatchSize int

	// CS is an optional chip select pin driven by software.
	CS gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Frequency:   40 * physic.MegaHertz,
	Mode:        spi.Mode0,
	BitsPerWord: 8,
	BatchSize:   4096,
}

// SPI is a chip select gated SPI transport.
type SPI struct {
	port      spi.Port
	closer    io.Closer
	conn      spi.Conn
	cs        gpio.PinOut
	frequency physic.Frequency
	batchSize int
}

func (config *SPIConfig) validate() error {
	if config.Frequency <= 0 || config.Frequency > MaxFrequency {
		return fmt.Errorf("%w: frequency %s out of range (0, %s]", ErrConfig, config.Frequency, MaxFrequency)
	}
	switch config.Mode {
	case spi.Mode0, spi.Mode1, spi.Mode2, spi.Mode3:
	default:
		return fmt.Errorf("%w: unsupported mode %#x", ErrConfig, int(config.Mode))
	}
	if config.BitsPerWord < 8 || config.BitsPerWord > 32 {
		return fmt.Errorf("%w: bits per word need to be 8 or more and 32 or less, got %d", ErrConfig, config.BitsPerWord)
	}
	if config.BatchSize < 0 {
		return fmt.Errorf("%w: negative batch size %d", ErrConfig, config.BatchSize)
	}
	return nil
}

func withDefaults(config *SPIConfig) SPIConfig {
	if config == nil {
		return DefaultSPIConfig
	}
	c := *config
	if c.BitsPerWord == 0 {
		c.BitsPerWord = DefaultSPIConfig.BitsPerWord
	}
	return c
}

// OpenSPI opens the named SPI port (see [spireg.Open]); an empty name selects the first available port.
func OpenSPI(name string, config *SPIConfig) (*SPI, error) {
	c := withDefaults(config)
	if err := c.validate(); err != nil {
		return nil, err
	}

	p, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	s, err := NewSPI(p, &c)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	s.closer = p
	return s, nil
}

// NewSPI connects to the SPI port. The configuration is validated before
// the port or the chip select pin are touched.
func NewSPI(port spi.Port, config *SPIConfig) (*SPI, error) {
	c := withDefaults(config)
	if err := c.validate(); err != nil {
		return nil, err
	}

	bus, err := port.Connect(c.Frequency, c.Mode, c.BitsPerWord)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	if c.CS != nil {
		if err = c.CS.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("%w: chip select: %v", ErrConfig, err)
		}
	}

	return &SPI{
		port:      port,
		conn:      bus,
		cs:        c.CS,
		frequency: c.Frequency,
		batchSize: c.BatchSize,
	}, nil
}

func (s *SPI) String() string {
	return fmt.Sprintf("SPI bus %s at %s", s.port, s.frequency)
}

// Close releases the port if it was opened by OpenSPI.
func (s *SPI) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Frequency is the configured bus clock.
func (s *SPI) Frequency() physic.Frequency {
	return s.frequency
}

// Write sends p to the device.
func (s *SPI) Write(p []byte) (err error) {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty write buffer", ErrInvalidParameters)
	}

	release, err := s.claim()
	defer func() {
		if rerr := release(); rerr != nil && err == nil {
			err = fmt.Errorf("%w: chip select release: %v", ErrWriteFailed, rerr)
		}
	}()
	if err != nil {
		return fmt.Errorf("%w: chip select: %v", ErrWriteFailed, err)
	}

	if err = s.tx(p, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// Read fills p with data clocked out of the device.
func (s *SPI) Read(p []byte) (err error) {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty read buffer", ErrInvalidParameters)
	}

	release, err := s.claim()
	defer func() {
		if rerr := release(); rerr != nil && err == nil {
			err = fmt.Errorf("%w: chip select release: %v", ErrReadFailed, rerr)
		}
	}()
	if err != nil {
		return fmt.Errorf("%w: chip select: %v", ErrReadFailed, err)
	}

	if err = s.tx(nil, p); err != nil {
		return fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	return nil
}

// Transfer does a full-duplex transfer, w and r must have the same length.
func (s *SPI) Transfer(r, w []byte) (err error) {
	if len(w) == 0 || len(r) == 0 {
		return fmt.Errorf("%w: empty transfer buffer", ErrInvalidParameters)
	}
	if len(w) != len(r) {
		return fmt.Errorf("%w: read buffer is %d bytes, write buffer is %d bytes", ErrInvalidParameters, len(r), len(w))
	}

	release, err := s.claim()
	defer func() {
		if rerr := release(); rerr != nil && err == nil {
			err = fmt.Errorf("%w: chip select release: %v", ErrTransferFailed, rerr)
		}
	}()
	if err != nil {
		return fmt.Errorf("%w: chip select: %v", ErrTransferFailed, err)
	}

	if err = s.tx(w, r); err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	return nil
}

// claim asserts chip select. The returned release func must always be
// called, also when claim fails.
func (s *SPI) claim() (release func() error, err error) {
	if s.cs == nil {
		return func() error { return nil }, nil
	}
	return func() error { return s.cs.Out(gpio.High) }, s.cs.Out(gpio.Low)
}

func (s *SPI) tx(w, r []byte) error {
	n := max(len(w), len(r))
	step := s.batchSize
	if step <= 0 || step > n {
		step = n
	}

	if debug && step < n {
		log.Printf("conn: transfer %d bytes of data in %d chunks", n, (n+step-1)/step)
	}

	for i := 0; i < n; i += step {
		j := min(i+step, n)
		var wc, rc []byte
		if w != nil {
			wc = w[i:j]
		}
		if r != nil {
			rc = r[i:j]
		}
		if err := s.conn.Tx(wc, rc); err != nil {
			return err
		}
	}
	return nil
}
