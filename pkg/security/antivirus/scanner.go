package antivirus

import (
	"context"
	"io"
)

// ScanResult contains the result of a malware scan
type ScanResult struct {
	Infected    bool   // malware detected, or scan failed (fail closed)
	ThreatName  string // empty if clean
	ScannerName string
	Error       error
}

// Scanner inspects uploaded certificates before they are stored.
type Scanner interface {
	Scan(ctx context.Context, filename string, data io.Reader) ScanResult
	Name() string
}

// NoOpScanner reports every file as clean. Used when no daemon is configured.
type NoOpScanner struct{}

var _ Scanner = (*NoOpScanner)(nil)

func (NoOpScanner) Scan(ctx context.Context, filename string, data io.Reader) ScanResult {
	return ScanResult{ScannerName: "noop"}
}

func (NoOpScanner) Name() string {
	return "noop"
}

// New returns a ClamAV scanner for address, or the no-op scanner when address is empty.
func New(address string) Scanner {
	if address == "" {
		return NoOpScanner{}
	}
	return NewClamAVScanner(address, 0)
}
