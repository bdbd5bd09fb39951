package program

import (
	"encoding/binary"
	"fmt"

	"github.com/solana-zh/frt/internal/anchor"
)

// versionMajor/Minor/Patch are bumped whenever the wire-visible
// instruction/account layout changes.
const (
	versionMajor uint16 = 1
	versionMinor uint16 = 0
	versionPatch uint16 = 0
)

// versionDiscriminator labels GetVersion's return payload the way an
// Anchor-style program's sighash would label a response, even though FRT
// itself dispatches on the 1-byte tag of §6.1 rather than this 8-byte
// hash. It is prefixed onto the packed version below so a caller decoding
// the raw return data (or an operator grepping a log line) has a stable
// token identifying which instruction produced it.
var versionDiscriminator = anchor.GetDiscriminator("frt", "get_version")

// handleGetVersion implements tag 14 (§B/C). It is the only instruction
// with zero accounts and mutates no state; it returns versionDiscriminator
// followed by the packed (major, minor, patch uint16) triple.
func handleGetVersion(c *Context) ([]byte, error) {
	out := make([]byte, 8+6)
	copy(out[:8], versionDiscriminator)
	binary.LittleEndian.PutUint16(out[8:10], versionMajor)
	binary.LittleEndian.PutUint16(out[10:12], versionMinor)
	binary.LittleEndian.PutUint16(out[12:14], versionPatch)
	return out, nil
}

// Version returns the protocol version as a dotted string, for log lines
// that want something human-readable rather than handleGetVersion's packed
// wire form.
func Version() string {
	return fmt.Sprintf("%d.%d.%d", versionMajor, versionMinor, versionPatch)
}
