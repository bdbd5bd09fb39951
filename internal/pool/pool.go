// Package pool implements the Pool State Machine (spec §4.2.4): creation,
// pause/unpause, fee updates, and (together with package control, which
// owns the admin-authority check) owner-only swap delegation.
package pool

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/config"
	"github.com/solana-zh/frt/internal/errs"
	"github.com/solana-zh/frt/internal/pdas"
	"github.com/solana-zh/frt/internal/ratio"
	"github.com/solana-zh/frt/internal/state"
)

// CreateParams are the caller-supplied, not-yet-normalized inputs to
// InitializePool (tag 1).
type CreateParams struct {
	ProgramID       solana.PublicKey
	MintOne, MintTwo solana.PublicKey
	DecimalsOne, DecimalsTwo uint8
	RatioOne, RatioTwo       uint64
	Flags                    uint8
}

// New builds a freshly-created PoolState plus the PDA bundle it was derived
// from, per §4.2.4: normalize, anchor-check, derive, and set the One-To-Many
// informational flag automatically.
func New(p CreateParams) (*state.PoolState, *pdas.Bundle, error) {
	n := ratio.Normalize(ratio.Input{
		MintOne: p.MintOne, MintTwo: p.MintTwo,
		RatioOne: p.RatioOne, RatioTwo: p.RatioTwo,
	})

	decimalsA, decimalsB := p.DecimalsOne, p.DecimalsTwo
	if n.Swapped {
		decimalsA, decimalsB = decimalsB, decimalsA
	}

	if err := ratio.CheckAnchoredToOne(n.RatioANumerator, decimalsA, n.RatioBDenominator, decimalsB); err != nil {
		return nil, nil, err
	}

	bundle, err := pdas.DeriveBundle(p.ProgramID, n.TokenAMint, n.TokenBMint, n.RatioANumerator, n.RatioBDenominator)
	if err != nil {
		return nil, nil, err
	}

	flags := p.Flags | state.FlagOneToMany

	ps := &state.PoolState{
		Owner:             bundle.PoolState, // pool-owned until delegated (§4.7.3)
		TokenAMint:        n.TokenAMint,
		TokenBMint:        n.TokenBMint,
		TokenAVault:       bundle.TokenAVault,
		TokenBVault:       bundle.TokenBVault,
		LPMintA:           bundle.LPMintA,
		LPMintB:           bundle.LPMintB,
		PoolBump:          bundle.PoolBump,
		VaultABump:        bundle.VaultABump,
		VaultBBump:        bundle.VaultBBump,
		LPABump:           bundle.LPABump,
		LPBBump:           bundle.LPBBump,
		TokenADecimals:    decimalsA,
		TokenBDecimals:    decimalsB,
		LPADecimals:       decimalsA,
		LPBDecimals:       decimalsB,
		Flags:             flags,
		RatioANumerator:   n.RatioANumerator,
		RatioBDenominator: n.RatioBDenominator,
		ContractLiquidityFee: config.DepositWithdrawalFeeLamports,
		SwapContractFee:      config.SwapContractFeeLamports,
	}
	return ps, bundle, nil
}

// ValidatePoolID enforces the anti-confusion check on Pause/Unpause/
// SetSwapOwnerOnly: the caller-supplied pool_id argument must equal the
// supplied pool-state PDA (§4.2.4).
func ValidatePoolID(poolID, poolStateAccount solana.PublicKey) error {
	if !poolID.Equals(poolStateAccount) {
		return errs.New(errs.PoolIDMismatch, "pool_id argument %s does not match the supplied pool-state account %s", poolID, poolStateAccount)
	}
	return nil
}

// ApplyPauseFlags ORs the requested bits into Flags (liquidity, swaps, or
// both), per §4.2.4.
func ApplyPauseFlags(ps *state.PoolState, flags uint8) {
	ps.Flags |= flags & (state.FlagLiquidityPaused | state.FlagSwapsPaused)
}

// ApplyUnpauseFlags clears the requested bits from Flags.
func ApplyUnpauseFlags(ps *state.PoolState, flags uint8) {
	ps.Flags &^= flags & (state.FlagLiquidityPaused | state.FlagSwapsPaused)
}

// UpdateLiquidityFee and UpdateSwapFee select, via bitmask, which fee(s)
// UpdatePoolFees (tag 22) changes.
const (
	UpdateLiquidityFee uint8 = 1 << 0
	UpdateSwapFee      uint8 = 1 << 1
)

// UpdateFees validates bounds (§4.2.4) and applies the requested fee
// updates in place.
func UpdateFees(ps *state.PoolState, updateFlags uint8, newLiquidityFee, newSwapFee uint64) error {
	if updateFlags&^(UpdateLiquidityFee|UpdateSwapFee) != 0 {
		return errs.New(errs.InvalidFeeUpdateFlags, "unknown update flag bits: 0x%x", updateFlags)
	}
	if updateFlags == 0 {
		return errs.New(errs.InvalidFeeUpdateFlags, "no fee selected for update")
	}
	if updateFlags&UpdateLiquidityFee != 0 {
		if newLiquidityFee < config.MinLiquidityFeeLamports || newLiquidityFee > config.MaxLiquidityFeeLamports {
			return errs.New(errs.FeeOutOfRange, "liquidity fee %d out of range [%d, %d]", newLiquidityFee, config.MinLiquidityFeeLamports, config.MaxLiquidityFeeLamports)
		}
		ps.ContractLiquidityFee = newLiquidityFee
	}
	if updateFlags&UpdateSwapFee != 0 {
		if newSwapFee < config.MinSwapFeeLamports || newSwapFee > config.MaxSwapFeeLamports {
			return errs.New(errs.FeeOutOfRange, "swap fee %d out of range [%d, %d]", newSwapFee, config.MinSwapFeeLamports, config.MaxSwapFeeLamports)
		}
		ps.SwapContractFee = newSwapFee
	}
	return nil
}

// SetSwapOwnerOnly implements §4.7.3. Disabling never restores the prior
// owner — this is intentional per the spec and is flagged again here so the
// sharp edge isn't silently rediscovered in an incident.
func SetSwapOwnerOnly(ps *state.PoolState, enable bool, designatedOwner solana.PublicKey) {
	ps.SetFlag(state.FlagOwnerOnlySwaps, enable)
	if enable {
		ps.Owner = designatedOwner
	}
	// enable == false: ps.Owner is left exactly as-is (§4.7.3, §9).
}

// CheckNotPaused refuses the op if the relevant pause bit(s) are set.
func CheckNotPaused(ps *state.PoolState, requireLiquidity, requireSwaps bool) error {
	if requireLiquidity && ps.HasFlag(state.FlagLiquidityPaused) {
		return errs.New(errs.PoolLiquidityPaused, "pool liquidity operations are paused")
	}
	if requireSwaps && ps.HasFlag(state.FlagSwapsPaused) {
		return errs.New(errs.PoolSwapsPaused, "pool swaps are paused")
	}
	return nil
}
