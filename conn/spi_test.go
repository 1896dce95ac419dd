package conn

import (
	"bytes"
	"errors"
	"testing"

	periph "periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

type testPort struct {
	conn      *testConn
	connected int
	frequency physic.Frequency
	mode      spi.Mode
	bits      int
}

func (p *testPort) String() string { return "test" }

func (p *testPort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.connected++
	p.frequency, p.mode, p.bits = f, mode, bits
	return p.conn, nil
}

type testTx struct {
	w, r []byte
	cs   gpio.Level
}

type testConn struct {
	cs  *gpiotest.Pin
	txs []testTx
	err error
}

func (c *testConn) String() string { return "test" }

func (c *testConn) Duplex() periph.Duplex { return periph.Full }

func (c *testConn) TxPackets([]spi.Packet) error { return errors.New("not implemented") }

func (c *testConn) Tx(w, r []byte) error {
	if c.err != nil {
		return c.err
	}
	tx := testTx{w: append([]byte(nil), w...)}
	if c.cs != nil {
		tx.cs = c.cs.Read()
	}
	for i := range r {
		r[i] = byte(i + 1)
	}
	tx.r = r
	c.txs = append(c.txs, tx)
	return nil
}

func newTestSPI(t *testing.T, batchSize int) (*SPI, *testConn, *gpiotest.Pin) {
	t.Helper()
	cs := &gpiotest.Pin{N: "CS", L: gpio.Low}
	c := &testConn{cs: cs}
	s, err := NewSPI(&testPort{conn: c}, &SPIConfig{
		Frequency: 10 * physic.MegaHertz,
		BatchSize: batchSize,
		CS:        cs,
	})
	if err != nil {
		t.Fatal(err)
	}
	return s, c, cs
}

func TestNewSPIConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  *SPIConfig
		wantErr bool
	}{
		{"nil config (uses defaults)", nil, false},
		{"minimum", &SPIConfig{Frequency: 1}, false},
		{"maximum", &SPIConfig{Frequency: MaxFrequency, Mode: spi.Mode3}, false},
		{"zero frequency", &SPIConfig{}, true},
		{"negative frequency", &SPIConfig{Frequency: -physic.MegaHertz}, true},
		{"too fast", &SPIConfig{Frequency: MaxFrequency + 1}, true},
		{"invalid mode", &SPIConfig{Frequency: physic.MegaHertz, Mode: spi.Mode(7)}, true},
		{"invalid bits", &SPIConfig{Frequency: physic.MegaHertz, BitsPerWord: 4}, true},
		{"negative batch size", &SPIConfig{Frequency: physic.MegaHertz, BatchSize: -1}, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			var (
				cs   = &gpiotest.Pin{N: "CS", L: gpio.Low}
				port = &testPort{conn: &testConn{}}
			)
			if test.config != nil {
				test.config.CS = cs
			}

			_, err := NewSPI(port, test.config)
			if !test.wantErr {
				if err != nil {
					it.Fatalf("unexpected error: %v", err)
				}
				if port.connected != 1 {
					it.Errorf("expected one connect, got %d", port.connected)
				}
				if port.bits != 8 {
					it.Errorf("expected 8 bits per word, got %d", port.bits)
				}
				return
			}

			if !errors.Is(err, ErrConfig) {
				it.Fatalf("expected ErrConfig, got %v", err)
			}
			if port.connected != 0 {
				it.Error("expected the port not to be touched")
			}
			if cs.L != gpio.Low {
				it.Error("expected the chip select pin not to be touched")
			}
		})
	}
}

func TestNewSPIReleasesChipSelect(t *testing.T) {
	_, _, cs := newTestSPI(t, 0)
	if cs.L != gpio.High {
		t.Error("expected chip select to idle high")
	}
}

func TestSPIWrite(t *testing.T) {
	s, c, cs := newTestSPI(t, 0)

	if err := s.Write([]byte{0x2a, 0x00, 0xef}); err != nil {
		t.Fatal(err)
	}
	if len(c.txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(c.txs))
	}
	if !bytes.Equal(c.txs[0].w, []byte{0x2a, 0x00, 0xef}) {
		t.Errorf("expected written bytes to match, got % x", c.txs[0].w)
	}
	if c.txs[0].cs != gpio.Low {
		t.Error("expected chip select to be asserted during the transaction")
	}
	if cs.L != gpio.High {
		t.Error("expected chip select to be released")
	}
}

func TestSPIWriteChunked(t *testing.T) {
	s, c, _ := newTestSPI(t, 4)

	data := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	if err := s.Write(data); err != nil {
		t.Fatal(err)
	}
	if len(c.txs) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(c.txs))
	}
	var joined []byte
	for _, tx := range c.txs {
		if len(tx.w) > 4 {
			t.Errorf("expected chunks of at most 4 bytes, got %d", len(tx.w))
		}
		joined = append(joined, tx.w...)
	}
	if !bytes.Equal(joined, data) {
		t.Errorf("expected chunks to add up to % x, got % x", data, joined)
	}
}

func TestSPIInvalidParameters(t *testing.T) {
	s, c, cs := newTestSPI(t, 0)
	cs.L = gpio.Low // sentinel: must remain untouched

	tests := []struct {
		name string
		call func() error
	}{
		{"empty write", func() error { return s.Write(nil) }},
		{"empty read", func() error { return s.Read([]byte{}) }},
		{"empty transfer", func() error { return s.Transfer(nil, nil) }},
		{"mismatched transfer", func() error { return s.Transfer(make([]byte, 2), make([]byte, 3)) }},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			if err := test.call(); !errors.Is(err, ErrInvalidParameters) {
				it.Errorf("expected ErrInvalidParameters, got %v", err)
			}
		})
	}
	if len(c.txs) != 0 {
		t.Errorf("expected no bus traffic, got %d transactions", len(c.txs))
	}
	if cs.L != gpio.Low {
		t.Error("expected chip select not to be touched")
	}
}

func TestSPIFailureReleasesChipSelect(t *testing.T) {
	s, c, cs := newTestSPI(t, 0)
	c.err = errors.New("bus fault")

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"write", func() error { return s.Write([]byte{1}) }, ErrWriteFailed},
		{"read", func() error { return s.Read(make([]byte, 1)) }, ErrReadFailed},
		{"transfer", func() error { return s.Transfer(make([]byte, 1), []byte{1}) }, ErrTransferFailed},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			if err := test.call(); !errors.Is(err, test.want) {
				it.Errorf("expected %v, got %v", test.want, err)
			}
			if cs.L != gpio.High {
				it.Error("expected chip select to be released after a failure")
			}
		})
	}
}

func TestSPITransfer(t *testing.T) {
	s, c, _ := newTestSPI(t, 0)

	r := make([]byte, 3)
	if err := s.Transfer(r, []byte{9, 8, 7}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(r, []byte{1, 2, 3}) {
		t.Errorf("expected read bytes 01 02 03, got % x", r)
	}
	if !bytes.Equal(c.txs[0].w, []byte{9, 8, 7}) {
		t.Errorf("expected written bytes 09 08 07, got % x", c.txs[0].w)
	}
}

func TestSPIRead(t *testing.T) {
	s, c, _ := newTestSPI(t, 0)

	r := make([]byte, 2)
	if err := s.Read(r); err != nil {
		t.Fatal(err)
	}
	if len(c.txs[0].w) != 0 {
		t.Errorf("expected nothing to be written, got % x", c.txs[0].w)
	}
	if !bytes.Equal(r, []byte{1, 2}) {
		t.Errorf("expected read bytes 01 02, got % x", r)
	}
}
