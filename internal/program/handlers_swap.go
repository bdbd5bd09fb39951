package program

import (
	"github.com/solana-zh/frt/internal/control"
	"github.com/solana-zh/frt/internal/errs"
	"github.com/solana-zh/frt/internal/fees"
	"github.com/solana-zh/frt/internal/pool"
	"github.com/solana-zh/frt/internal/runtime"
	"github.com/solana-zh/frt/internal/state"
	"github.com/solana-zh/frt/internal/swap"
)

// handleSwap implements tag 4 (§4.3.4's fixed execution order). Accounts:
// [0] user signer (writable, debited the swap fee), [1] pool_state
// (writable), [2] input_mint, [3] user_input_token_account (writable),
// [4] input_vault (writable), [5] output_vault (writable),
// [6] user_output_token_account (writable), [7] pool authority (pool_state
// PDA), [8] system_state, [9] token_program, [10] clock.
func handleSwap(c *Context, p SwapPayload) error {
	userAcc, userSigner, err := c.SignerWritable(0)
	if err != nil {
		return err
	}
	poolAcc, err := c.Writable(1)
	if err != nil {
		return err
	}
	sysStateAcc, err := c.Readonly(8)
	if err != nil {
		return err
	}
	userInputAcc, err := c.Writable(3)
	if err != nil {
		return err
	}
	inputVaultAcc, err := c.Writable(4)
	if err != nil {
		return err
	}
	outputVaultAcc, err := c.Writable(5)
	if err != nil {
		return err
	}
	userOutputAcc, err := c.Writable(6)
	if err != nil {
		return err
	}

	sys := &state.SystemState{}
	if err := sys.Decode(sysStateAcc.Data); err != nil {
		return err
	}
	if err := control.CheckNotPaused(sys); err != nil {
		return err
	}

	ps := &state.PoolState{}
	if err := ps.Decode(poolAcc.Data); err != nil {
		return err
	}
	if err := pool.ValidatePoolID(p.PoolID, mustKey(c, 1)); err != nil {
		return err
	}

	// (1) validate pause and access flags.
	if err := pool.CheckNotPaused(ps, false, true); err != nil {
		return err
	}
	if ps.HasFlag(state.FlagOwnerOnlySwaps) && !ps.Owner.Equals(userSigner) {
		return errs.New(errs.SwapAccessRestricted, "pool restricts swaps to owner %s", ps.Owner)
	}

	inputIsSideA := p.InputMint.Equals(ps.TokenAMint)
	if !inputIsSideA && !p.InputMint.Equals(ps.TokenBMint) {
		return errs.New(errs.InvalidTokenPair, "mint %s is not one of this pool's tokens", p.InputMint)
	}
	if ps.MaxSwapAmount != 0 && p.AmountIn > ps.MaxSwapAmount {
		return errs.New(errs.InvalidSwapAmount, "amount_in %d exceeds pool limit %d", p.AmountIn, ps.MaxSwapAmount)
	}

	var ratioOut, ratioIn uint64
	if inputIsSideA {
		ratioIn, ratioOut = ps.RatioANumerator, ps.RatioBDenominator
	} else {
		ratioIn, ratioOut = ps.RatioBDenominator, ps.RatioANumerator
	}

	// (2) compute output.
	result, err := swap.Quote(p.AmountIn, ratioOut, ratioIn)
	if err != nil {
		return err
	}
	if err := swap.CheckExactness(result, p.ExpectedOut); err != nil {
		return err
	}
	if err := swap.CheckDustPolicy(result, ps.HasFlag(state.FlagExactExchangeRequired)); err != nil {
		return err
	}

	// (3)/(4) token transfers.
	if err := runtime.TokenTransfer(userInputAcc, inputVaultAcc, p.AmountIn); err != nil {
		return err
	}
	if err := runtime.TokenTransfer(outputVaultAcc, userOutputAcc, result.OutputBasisPoints); err != nil {
		return err
	}

	// (5) debit the user's SOL by the swap fee into the pool-state account
	// itself (§4.3.4 step 5: "direct lamport move, not SPL"), then (6)
	// accrue it into the pool's local counters for later consolidation.
	if err := c.Ledger.TransferLamports(userAcc, poolAcc, ps.SwapContractFee); err != nil {
		return err
	}
	fees.AccrueSwapFee(&ps.CollectedSwapContractFees, &ps.TotalSolFeesCollected, ps.SwapContractFee)
	ps.TotalSwaps++

	copy(poolAcc.Data, ps.Encode())
	return nil
}
