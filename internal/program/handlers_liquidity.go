package program

import (
	"github.com/solana-zh/frt/internal/control"
	"github.com/solana-zh/frt/internal/liquidity"
	"github.com/solana-zh/frt/internal/pool"
	"github.com/solana-zh/frt/internal/state"
)

// handleDeposit implements tag 2. Accounts: [0] user signer (writable,
// debited the liquidity fee), [1] pool_state (writable),
// [2] deposit_token_mint, [3] user_token_account (writable),
// [4] vault_token_account (writable), [5] lp_mint, [6] user_lp_token_account
// (writable), [7] pool authority (pool_state PDA), [8] system_state,
// [9] token_program, [10] clock.
func handleDeposit(c *Context, p DepositWithdrawPayload) error {
	userAcc, _, err := c.SignerWritable(0)
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
	userTokenAcc, err := c.Writable(3)
	if err != nil {
		return err
	}
	vaultTokenAcc, err := c.Writable(4)
	if err != nil {
		return err
	}
	userLPAcc, err := c.Writable(6)
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
	if err := pool.CheckNotPaused(ps, true, false); err != nil {
		return err
	}

	side, err := liquidity.ResolveSide(ps, p.Mint)
	if err != nil {
		return err
	}

	if err := liquidity.Deposit(liquidity.DepositParams{
		Pool: ps, Side: side, Amount: p.Amount,
		UserTokenAccount: userTokenAcc, VaultTokenAccount: vaultTokenAcc, UserLPTokenAccount: userLPAcc,
		LiquidityFee: ps.ContractLiquidityFee,
	}); err != nil {
		return err
	}
	// §4.4.1 step 5: debit the user's SOL by the liquidity fee into the
	// pool-state account itself, a direct lamport move rather than SPL.
	if err := c.Ledger.TransferLamports(userAcc, poolAcc, ps.ContractLiquidityFee); err != nil {
		return err
	}
	copy(poolAcc.Data, ps.Encode())
	return nil
}

// handleWithdraw implements tag 3. Same account shape as Deposit.
func handleWithdraw(c *Context, p DepositWithdrawPayload) error {
	userAcc, _, err := c.SignerWritable(0)
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
	userTokenAcc, err := c.Writable(3)
	if err != nil {
		return err
	}
	vaultTokenAcc, err := c.Writable(4)
	if err != nil {
		return err
	}
	userLPAcc, err := c.Writable(6)
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
	if err := pool.CheckNotPaused(ps, true, false); err != nil {
		return err
	}

	side, err := liquidity.ResolveSide(ps, p.Mint)
	if err != nil {
		return err
	}

	if err := liquidity.Withdraw(liquidity.WithdrawParams{
		Pool: ps, Side: side, LPAmount: p.Amount,
		UserTokenAccount: userTokenAcc, VaultTokenAccount: vaultTokenAcc, UserLPTokenAccount: userLPAcc,
		LiquidityFee: ps.ContractLiquidityFee,
	}); err != nil {
		return err
	}
	// §4.4.2 step 4: same direct lamport debit as Deposit.
	if err := c.Ledger.TransferLamports(userAcc, poolAcc, ps.ContractLiquidityFee); err != nil {
		return err
	}
	copy(poolAcc.Data, ps.Encode())
	return nil
}
