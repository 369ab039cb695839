// Package printer sends ESC/POS receipts to thermal printers.
package printer

import (
	"fmt"
	"net"
	"time"
)

// Printer sends raw ESC/POS bytes to a device.
type Printer interface {
	Print(data []byte) error
	Close() error
	// IsConnected reports whether the device answers right now.
	IsConnected() bool
}

type networkPrinter struct {
	address string
	timeout time.Duration
}

// NewNetworkPrinter creates a printer reached over raw TCP, e.g.
// "192.168.1.100:9100". Each print job opens its own connection.
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{address: address, timeout: 5 * time.Second}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error { return nil }

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

type nullPrinter struct{}

// NewNullPrinter returns a printer that discards every job.
func NewNullPrinter() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print(data []byte) error { return nil }
func (nullPrinter) Close() error            { return nil }
func (nullPrinter) IsConnected() bool       { return false }

// FromConfig builds a printer for printerType "network" or "none".
func FromConfig(printerType, address string) (Printer, error) {
	switch printerType {
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use network or none)", printerType)
	}
}
