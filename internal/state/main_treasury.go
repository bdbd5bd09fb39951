package state

import (
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
)

// MainTreasuryState is the singleton PDA at seed "main_treasury" (§3.1).
// Field order here is the wire order; Decode mirrors the teacher's
// CPMMPool.Decode (whole-struct reflection decode via bin.BinDecoder).
type MainTreasuryState struct {
	TotalBalance        uint64
	RentExemptMinimum   uint64
	TotalWithdrawn      uint64
	PoolCreationCount   uint64
	LiquidityOpCount    uint64
	SwapCount           uint64
	WithdrawalCount     uint64
	FailedOpCount       uint64
	ConsolidationCount  uint64
	DonationCount       uint64
	TotalPoolCreationFees uint64
	TotalLiquidityFees  uint64
	TotalSwapFees       uint64
	TotalDonations      uint64
	LastUpdateTimestamp int64
	LastWithdrawalTimestamp int64
}

// Span is the packed wire size of MainTreasuryState in bytes.
func (t *MainTreasuryState) Span() uint64 {
	return 16 * 8
}

// Decode reads the packed little-endian layout, following the same
// reflection-based approach CPMMPool.Decode uses for its own fixed layout.
func (t *MainTreasuryState) Decode(data []byte) error {
	dec := bin.NewBinDecoder(data)
	return dec.Decode(t)
}

// Encode writes the packed little-endian layout by hand, in the manner of
// CPMMSwapInstruction.Data() — every field at its fixed offset.
func (t *MainTreasuryState) Encode() []byte {
	buf := make([]byte, t.Span())
	fields := []uint64{
		t.TotalBalance, t.RentExemptMinimum, t.TotalWithdrawn,
		t.PoolCreationCount, t.LiquidityOpCount, t.SwapCount, t.WithdrawalCount,
		t.FailedOpCount, t.ConsolidationCount, t.DonationCount,
		t.TotalPoolCreationFees, t.TotalLiquidityFees, t.TotalSwapFees, t.TotalDonations,
		uint64(t.LastUpdateTimestamp), uint64(t.LastWithdrawalTimestamp),
	}
	for i, v := range fields {
		binary.LittleEndian.PutUint64(buf[i*8:i*8+8], v)
	}
	return buf
}
