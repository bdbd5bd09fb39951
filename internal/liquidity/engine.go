// Package liquidity implements the single-sided Liquidity Engine (spec
// §4.4): deposit and withdraw, each a pure receipt for its own side — no
// cross-side exchange ever happens here.
package liquidity

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/errs"
	"github.com/solana-zh/frt/internal/fees"
	"github.com/solana-zh/frt/internal/runtime"
	"github.com/solana-zh/frt/internal/state"
)

// Side selects which of the pool's two tokens an operation targets.
type Side int

const (
	SideA Side = iota
	SideB
)

// ResolveSide maps a caller-supplied mint to a pool side, per §4.4.1 step 1:
// "verify mint is one of the pool's two".
func ResolveSide(ps *state.PoolState, mint solana.PublicKey) (Side, error) {
	switch {
	case mint.Equals(ps.TokenAMint):
		return SideA, nil
	case mint.Equals(ps.TokenBMint):
		return SideB, nil
	default:
		return 0, errs.New(errs.InvalidTokenPair, "mint %s is not one of this pool's tokens", mint)
	}
}

// DepositParams bundles the simulated accounts a Deposit instruction
// touches, in the order of §6.1 tag 2.
type DepositParams struct {
	Pool               *state.PoolState
	Side               Side
	Amount             uint64
	UserTokenAccount   *runtime.Account
	VaultTokenAccount  *runtime.Account
	UserLPTokenAccount *runtime.Account
	LiquidityFee       uint64
}

// Deposit executes §4.4.1: transfer to vault, mint LP 1:1, bump the
// liquidity counter, accrue the fee locally.
func Deposit(p DepositParams) error {
	if p.Pool.MaxDepositAmount != 0 && p.Amount > p.Pool.MaxDepositAmount {
		return errs.New(errs.InvalidSwapAmount, "deposit amount %d exceeds pool limit %d", p.Amount, p.Pool.MaxDepositAmount)
	}

	if err := runtime.TokenTransfer(p.UserTokenAccount, p.VaultTokenAccount, p.Amount); err != nil {
		return err
	}
	runtime.TokenMintTo(p.UserLPTokenAccount, p.Amount)

	switch p.Side {
	case SideA:
		p.Pool.TotalTokenALiquidity += p.Amount
	case SideB:
		p.Pool.TotalTokenBLiquidity += p.Amount
	}

	fees.AccrueLiquidityFee(&p.Pool.CollectedLiquidityFees, &p.Pool.TotalSolFeesCollected, p.LiquidityFee)
	return nil
}

// WithdrawParams bundles the simulated accounts a Withdraw instruction
// touches, in the order of §6.1 tag 3.
type WithdrawParams struct {
	Pool               *state.PoolState
	Side               Side
	LPAmount           uint64
	UserTokenAccount   *runtime.Account
	VaultTokenAccount  *runtime.Account
	UserLPTokenAccount *runtime.Account
	LiquidityFee       uint64
}

// Withdraw executes §4.4.2: burn LP, transfer underlying back to the user,
// decrement the liquidity counter, accrue the fee locally.
func Withdraw(p WithdrawParams) error {
	switch p.Side {
	case SideA:
		if p.LPAmount > p.Pool.TotalTokenALiquidity {
			return errs.New(errs.InsufficientFunds, "withdraw amount %d exceeds pool token-A liquidity %d", p.LPAmount, p.Pool.TotalTokenALiquidity)
		}
	case SideB:
		if p.LPAmount > p.Pool.TotalTokenBLiquidity {
			return errs.New(errs.InsufficientFunds, "withdraw amount %d exceeds pool token-B liquidity %d", p.LPAmount, p.Pool.TotalTokenBLiquidity)
		}
	}

	if err := runtime.TokenBurn(p.UserLPTokenAccount, p.LPAmount); err != nil {
		return err
	}
	if err := runtime.TokenTransfer(p.VaultTokenAccount, p.UserTokenAccount, p.LPAmount); err != nil {
		return err
	}

	switch p.Side {
	case SideA:
		p.Pool.TotalTokenALiquidity -= p.LPAmount
	case SideB:
		p.Pool.TotalTokenBLiquidity -= p.LPAmount
	}

	fees.AccrueLiquidityFee(&p.Pool.CollectedLiquidityFees, &p.Pool.TotalSolFeesCollected, p.LiquidityFee)
	return nil
}
