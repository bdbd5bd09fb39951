package state

import (
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Flag bits on PoolState.Flags (§4.2.3).
const (
	FlagOneToMany             uint8 = 1 << 0
	FlagLiquidityPaused       uint8 = 1 << 1
	FlagSwapsPaused           uint8 = 1 << 2
	FlagWithdrawalProtection  uint8 = 1 << 3
	FlagSingleLPMode          uint8 = 1 << 4
	FlagOwnerOnlySwaps        uint8 = 1 << 5
	FlagExactExchangeRequired uint8 = 1 << 6
)

// PoolState is one fixed-ratio trading pool, PDA-derived per §4.1.
type PoolState struct {
	Owner        solana.PublicKey
	TokenAMint   solana.PublicKey
	TokenBMint   solana.PublicKey
	TokenAVault  solana.PublicKey
	TokenBVault  solana.PublicKey
	LPMintA      solana.PublicKey
	LPMintB      solana.PublicKey

	PoolBump   uint8
	VaultABump uint8
	VaultBBump uint8
	LPABump    uint8
	LPBBump    uint8

	TokenADecimals uint8
	TokenBDecimals uint8
	LPADecimals    uint8
	LPBDecimals    uint8

	Flags uint8

	RatioANumerator   uint64
	RatioBDenominator uint64

	TotalTokenALiquidity uint64
	TotalTokenBLiquidity uint64

	ContractLiquidityFee uint64
	SwapContractFee      uint64

	CollectedLiquidityFees      uint64
	CollectedSwapContractFees   uint64
	TotalSolFeesCollected       uint64
	TotalFeesConsolidated       uint64

	LastConsolidationTimestamp int64
	TotalConsolidations        uint64
	TotalSwaps                 uint64

	// Optional per-pool limits; 0 means unlimited (SPEC_FULL §B/C expansion).
	MaxSwapAmount    uint64
	MaxDepositAmount uint64
}

// Span is the packed wire size of PoolState in bytes.
func (p *PoolState) Span() uint64 {
	return 32*7 + 5 + 4 + 1 + 8*2 + 8*2 + 8*2 + 8*4 + 8 + 8 + 8 + 8 + 8
}

// Decode reads the packed little-endian layout via whole-struct reflection
// decoding, exactly as CPMMPool.Decode does for a fixed Raydium layout.
func (p *PoolState) Decode(data []byte) error {
	dec := bin.NewBinDecoder(data)
	return dec.Decode(p)
}

// Encode writes the packed little-endian layout by hand, field by field, in
// the manner of CPMMSwapInstruction.Data().
func (p *PoolState) Encode() []byte {
	buf := make([]byte, p.Span())
	off := 0
	putKey := func(k solana.PublicKey) {
		copy(buf[off:off+32], k[:])
		off += 32
	}
	putU8 := func(v uint8) {
		buf[off] = v
		off++
	}
	putU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[off:off+8], v)
		off += 8
	}
	putI64 := func(v int64) { putU64(uint64(v)) }

	putKey(p.Owner)
	putKey(p.TokenAMint)
	putKey(p.TokenBMint)
	putKey(p.TokenAVault)
	putKey(p.TokenBVault)
	putKey(p.LPMintA)
	putKey(p.LPMintB)

	putU8(p.PoolBump)
	putU8(p.VaultABump)
	putU8(p.VaultBBump)
	putU8(p.LPABump)
	putU8(p.LPBBump)

	putU8(p.TokenADecimals)
	putU8(p.TokenBDecimals)
	putU8(p.LPADecimals)
	putU8(p.LPBDecimals)

	putU8(p.Flags)

	putU64(p.RatioANumerator)
	putU64(p.RatioBDenominator)
	putU64(p.TotalTokenALiquidity)
	putU64(p.TotalTokenBLiquidity)
	putU64(p.ContractLiquidityFee)
	putU64(p.SwapContractFee)
	putU64(p.CollectedLiquidityFees)
	putU64(p.CollectedSwapContractFees)
	putU64(p.TotalSolFeesCollected)
	putU64(p.TotalFeesConsolidated)
	putI64(p.LastConsolidationTimestamp)
	putU64(p.TotalConsolidations)
	putU64(p.TotalSwaps)
	putU64(p.MaxSwapAmount)
	putU64(p.MaxDepositAmount)

	return buf[:off]
}

// HasFlag reports whether the given bit is set on Flags.
func (p *PoolState) HasFlag(bit uint8) bool { return p.Flags&bit != 0 }

// SetFlag sets or clears the given bit on Flags.
func (p *PoolState) SetFlag(bit uint8, on bool) {
	if on {
		p.Flags |= bit
	} else {
		p.Flags &^= bit
	}
}
