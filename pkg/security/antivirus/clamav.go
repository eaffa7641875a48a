package antivirus

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// ClamAVScanner streams files to clamd with the zINSTREAM command.
type ClamAVScanner struct {
	address string // host:port or unix socket path
	timeout time.Duration
}

var _ Scanner = (*ClamAVScanner)(nil)

func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAVScanner{address: address, timeout: timeout}
}

func (c *ClamAVScanner) Name() string {
	return "clamav"
}

func (c *ClamAVScanner) network() string {
	if strings.HasPrefix(c.address, "/") {
		return "unix"
	}
	return "tcp"
}

func (c *ClamAVScanner) Scan(ctx context.Context, filename string, data io.Reader) ScanResult {
	result := ScanResult{ScannerName: c.Name()}
	fail := func(format string, err error) ScanResult {
		result.Infected = true
		result.Error = fmt.Errorf(format, err)
		return result
	}

	payload, err := io.ReadAll(data)
	if err != nil {
		return fail("failed to read file data: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, c.network(), c.address)
	if err != nil {
		return fail("failed to connect to clamd: %w", err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	// zINSTREAM, one size-prefixed chunk, then a zero-length terminator
	frame := make([]byte, 0, len(payload)+18)
	frame = append(frame, "zINSTREAM\x00"...)
	frame = binary.BigEndian.AppendUint32(frame, uint32(len(payload)))
	frame = append(frame, payload...)
	frame = binary.BigEndian.AppendUint32(frame, 0)
	if _, err := conn.Write(frame); err != nil {
		return fail("failed to stream file: %w", err)
	}

	reply, err := bufio.NewReader(conn).ReadString(0)
	if err != nil && err != io.EOF {
		return fail("failed to read response: %w", err)
	}
	return parseReply(result, strings.TrimSpace(strings.TrimRight(reply, "\x00")))
}

// parseReply interprets "stream: OK", "stream: <name> FOUND" and "... ERROR".
func parseReply(result ScanResult, reply string) ScanResult {
	switch {
	case strings.HasSuffix(reply, "FOUND"):
		result.Infected = true
		if _, threat, ok := strings.Cut(reply, ":"); ok {
			result.ThreatName = strings.TrimSpace(strings.TrimSuffix(threat, "FOUND"))
		}
	case strings.HasSuffix(reply, "ERROR"), reply == "":
		result.Infected = true
		result.Error = fmt.Errorf("scan error: %q", reply)
	}
	return result
}
