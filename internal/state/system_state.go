package state

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// SystemStateLegacySize is the pre-admin-authority on-chain layout.
const SystemStateLegacySize = 10

// SystemStateCurrentSize is the current on-chain layout (§6.2).
const SystemStateCurrentSize = 1 + 8 + 1 + 32 + 1 + 32 + 8

// SystemState is the singleton PDA at seed "system_state" (§3.1).
type SystemState struct {
	IsPaused              bool
	PauseTimestamp        int64
	PauseReasonCode       uint8
	AdminAuthority        solana.PublicKey
	HasPendingAdmin       bool
	PendingAdminAuthority solana.PublicKey
	AdminChangeTimestamp  int64
}

// Decode is tolerant of both the legacy 10-byte layout (pre-admin-authority,
// zero-filled on read) and the current 83-byte layout, per §6.2. Like the
// teacher's Clock parser, this reads fixed-offset little-endian fields
// directly rather than relying on reflection-based struct decoding, since
// the two supported sizes can't share one declarative layout.
func (s *SystemState) Decode(data []byte) error {
	if len(data) < SystemStateLegacySize {
		return fmt.Errorf("system state data too short: got %d bytes, need at least %d", len(data), SystemStateLegacySize)
	}

	s.IsPaused = data[0] != 0
	s.PauseTimestamp = int64(binary.LittleEndian.Uint64(data[1:9]))
	s.PauseReasonCode = data[9]

	if len(data) < SystemStateCurrentSize {
		s.AdminAuthority = solana.PublicKey{}
		s.HasPendingAdmin = false
		s.PendingAdminAuthority = solana.PublicKey{}
		s.AdminChangeTimestamp = 0
		return nil
	}

	off := 10
	copy(s.AdminAuthority[:], data[off:off+32])
	off += 32
	s.HasPendingAdmin = data[off] != 0
	off++
	copy(s.PendingAdminAuthority[:], data[off:off+32])
	off += 32
	s.AdminChangeTimestamp = int64(binary.LittleEndian.Uint64(data[off : off+8]))
	return nil
}

// Encode always serializes using the current layout (§6.2: "serialization
// MUST always use the current layout").
func (s *SystemState) Encode() []byte {
	buf := make([]byte, SystemStateCurrentSize)
	if s.IsPaused {
		buf[0] = 1
	}
	binary.LittleEndian.PutUint64(buf[1:9], uint64(s.PauseTimestamp))
	buf[9] = s.PauseReasonCode

	off := 10
	copy(buf[off:off+32], s.AdminAuthority[:])
	off += 32
	if s.HasPendingAdmin {
		buf[off] = 1
	}
	off++
	copy(buf[off:off+32], s.PendingAdminAuthority[:])
	off += 32
	binary.LittleEndian.PutUint64(buf[off:off+8], uint64(s.AdminChangeTimestamp))
	return buf
}
