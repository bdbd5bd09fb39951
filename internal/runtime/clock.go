package runtime

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ClockAccountDataSize matches the real SysVarClock layout, same constant
// the teacher's pkg/sol/clock.go checks against when parsing the live
// network's clock account.
const ClockAccountDataSize = 40

// Clock mirrors the teacher's sol.Clock, adapted to decode the ledger's own
// simulated clock sysvar instead of a live RPC response.
type Clock struct {
	Slot                uint64
	EpochStartTime      uint64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       uint64
}

// PutClockAccount seeds the ledger's SysVarClockPubkey account with the
// given timestamp, so handlers that read "now" from an account (rather than
// calling Ledger.Now() directly) see consistent state.
func (l *Ledger) PutClockAccount(unixTimestamp uint64) {
	data := make([]byte, ClockAccountDataSize)
	binary.LittleEndian.PutUint64(data[32:40], unixTimestamp)
	if acc := l.Get(solana.SysVarClockPubkey); acc != nil {
		acc.Data = data
		return
	}
	l.accounts[solana.SysVarClockPubkey] = &Account{
		Owner:    solana.SysVarClockPubkey,
		Lamports: 1,
		Data:     data,
	}
}

// GetClock decodes the simulated clock sysvar account, the same field
// layout parsed in pkg/sol/clock.go.
func (l *Ledger) GetClock() (*Clock, error) {
	acc := l.Get(solana.SysVarClockPubkey)
	if acc == nil {
		return nil, fmt.Errorf("clock sysvar account not present in ledger")
	}
	data := acc.Data
	if len(data) != ClockAccountDataSize {
		return nil, fmt.Errorf("invalid clock account data length: expected %d bytes, got %d", ClockAccountDataSize, len(data))
	}
	return &Clock{
		Slot:                binary.LittleEndian.Uint64(data[0:8]),
		EpochStartTime:      binary.LittleEndian.Uint64(data[8:16]),
		Epoch:               binary.LittleEndian.Uint64(data[16:24]),
		LeaderScheduleEpoch: binary.LittleEndian.Uint64(data[24:32]),
		UnixTimestamp:       binary.LittleEndian.Uint64(data[32:40]),
	}, nil
}
