package program

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/config"
	"github.com/solana-zh/frt/internal/control"
	"github.com/solana-zh/frt/internal/pdas"
	"github.com/solana-zh/frt/internal/pool"
	"github.com/solana-zh/frt/internal/runtime"
	"github.com/solana-zh/frt/internal/state"
)

// handleInitializePool implements tag 1. Accounts: [0] payer/admin signer,
// [1] pool_state (created here), [2] token_a_mint, [3] token_b_mint,
// [4] token_a_vault (created here), [5] token_b_vault (created here),
// [6] lp_mint_a (created here), [7] lp_mint_b (created here),
// [8] system_state, [9] main_treasury (writable), [10] token_program,
// [11] system_program, [12] rent sysvar.
func handleInitializePool(c *Context, p InitializePoolPayload) error {
	if err := c.RequireCount(13); err != nil {
		return err
	}
	payerAcc, _, err := c.SignerWritable(0)
	if err != nil {
		return err
	}
	mintOne, err := c.Key(2)
	if err != nil {
		return err
	}
	mintTwo, err := c.Key(3)
	if err != nil {
		return err
	}
	sysStateAcc, err := c.Readonly(8)
	if err != nil {
		return err
	}
	treasuryAcc, err := c.Writable(9)
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

	ps, bundle, err := pool.New(pool.CreateParams{
		ProgramID: c.ProgramID,
		MintOne:   mintOne, MintTwo: mintTwo,
		DecimalsOne: decimalsOf(c, 2), DecimalsTwo: decimalsOf(c, 3),
		RatioOne: p.RatioA, RatioTwo: p.RatioB,
		Flags: p.Flags,
	})
	if err != nil {
		return err
	}

	if err := pdas.Validate("pool_state", bundle.PoolState, mustKey(c, 1)); err != nil {
		return err
	}
	if err := pdas.Validate("token_a_vault", bundle.TokenAVault, mustKey(c, 4)); err != nil {
		return err
	}
	if err := pdas.Validate("token_b_vault", bundle.TokenBVault, mustKey(c, 5)); err != nil {
		return err
	}
	if err := pdas.Validate("lp_mint_a", bundle.LPMintA, mustKey(c, 6)); err != nil {
		return err
	}
	if err := pdas.Validate("lp_mint_b", bundle.LPMintB, mustKey(c, 7)); err != nil {
		return err
	}

	poolAcc, err := c.Ledger.CreateAccount(bundle.PoolState, c.ProgramID, int(ps.Span()), 0)
	if err != nil {
		return err
	}
	poolAcc.Lamports = runtime.RentExemptMinimum(int(ps.Span()))

	if _, err := c.Ledger.NewTokenAccount(bundle.TokenAVault, mintOne, bundle.PoolState, 0); err != nil {
		return err
	}
	if _, err := c.Ledger.NewTokenAccount(bundle.TokenBVault, mintTwo, bundle.PoolState, 0); err != nil {
		return err
	}
	if _, err := c.Ledger.CreateAccount(bundle.LPMintA, solana.TokenProgramID, runtime.TokenAccountDataLen, 0); err != nil {
		return err
	}
	if _, err := c.Ledger.CreateAccount(bundle.LPMintB, solana.TokenProgramID, runtime.TokenAccountDataLen, 0); err != nil {
		return err
	}

	treasury := &state.MainTreasuryState{}
	if err := treasury.Decode(treasuryAcc.Data); err != nil {
		return err
	}
	if err := c.Ledger.TransferLamports(payerAcc, treasuryAcc, config.RegistrationFeeLamports); err != nil {
		return err
	}
	treasury.TotalBalance += config.RegistrationFeeLamports
	treasury.TotalPoolCreationFees += config.RegistrationFeeLamports
	treasury.PoolCreationCount++
	treasury.LastUpdateTimestamp = c.Ledger.Now()
	copy(treasuryAcc.Data, treasury.Encode())

	copy(poolAcc.Data, ps.Encode())
	return nil
}

// handlePausePool implements tag 19. Accounts: [0] admin signer,
// [1] pool_state (writable), [2] system_state, [3] clock.
func handlePausePool(c *Context, p PauseUnpausePoolPayload) error {
	return applyPoolPauseFlags(c, p, true)
}

// handleUnpausePool implements tag 20. Same account shape as PausePool.
func handleUnpausePool(c *Context, p PauseUnpausePoolPayload) error {
	return applyPoolPauseFlags(c, p, false)
}

func applyPoolPauseFlags(c *Context, p PauseUnpausePoolPayload, pausing bool) error {
	if err := c.RequireCount(4); err != nil {
		return err
	}
	signer, err := c.Signer(0)
	if err != nil {
		return err
	}
	poolAcc, err := c.Writable(1)
	if err != nil {
		return err
	}
	sysStateAcc, err := c.Readonly(2)
	if err != nil {
		return err
	}

	sys := &state.SystemState{}
	if err := sys.Decode(sysStateAcc.Data); err != nil {
		return err
	}
	if err := control.CheckAdminSigner(sys, signer); err != nil {
		return err
	}

	ps := &state.PoolState{}
	if err := ps.Decode(poolAcc.Data); err != nil {
		return err
	}
	if err := pool.ValidatePoolID(p.PoolID, mustKey(c, 1)); err != nil {
		return err
	}
	if pausing {
		pool.ApplyPauseFlags(ps, p.Flags)
	} else {
		pool.ApplyUnpauseFlags(ps, p.Flags)
	}
	copy(poolAcc.Data, ps.Encode())
	return nil
}

// handleSetSwapOwnerOnly implements tag 21. Accounts: [0] admin signer,
// [1] pool_state (writable), [2] system_state, [3] clock.
func handleSetSwapOwnerOnly(c *Context, p SetSwapOwnerOnlyPayload) error {
	if err := c.RequireCount(4); err != nil {
		return err
	}
	signer, err := c.Signer(0)
	if err != nil {
		return err
	}
	poolAcc, err := c.Writable(1)
	if err != nil {
		return err
	}
	sysStateAcc, err := c.Readonly(2)
	if err != nil {
		return err
	}

	sys := &state.SystemState{}
	if err := sys.Decode(sysStateAcc.Data); err != nil {
		return err
	}
	if err := control.CheckAdminSigner(sys, signer); err != nil {
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
	pool.SetSwapOwnerOnly(ps, p.Enable, p.DesignatedOwner)
	copy(poolAcc.Data, ps.Encode())
	return nil
}

// handleUpdatePoolFees implements tag 22. Accounts: [0] admin signer,
// [1] pool_state (writable), [2] system_state, [3] clock.
func handleUpdatePoolFees(c *Context, p UpdatePoolFeesPayload) error {
	if err := c.RequireCount(4); err != nil {
		return err
	}
	signer, err := c.Signer(0)
	if err != nil {
		return err
	}
	poolAcc, err := c.Writable(1)
	if err != nil {
		return err
	}
	sysStateAcc, err := c.Readonly(2)
	if err != nil {
		return err
	}

	sys := &state.SystemState{}
	if err := sys.Decode(sysStateAcc.Data); err != nil {
		return err
	}
	if err := control.CheckAdminSigner(sys, signer); err != nil {
		return err
	}

	ps := &state.PoolState{}
	if err := ps.Decode(poolAcc.Data); err != nil {
		return err
	}
	if err := pool.UpdateFees(ps, p.UpdateFlags, p.NewLiquidityFee, p.NewSwapFee); err != nil {
		return err
	}
	copy(poolAcc.Data, ps.Encode())
	return nil
}

// decimalsOf reads an SPL mint's decimals field; the simulated runtime only
// ever stores token *accounts* (internal/runtime/token.go), so for a mint
// account this reads the same byte offset SPL mints use for decimals
// (offset 44), where a caller such as cmd/frtdemo's placeholder mints put it,
// falling back to 9 (the common native-like default) when the account
// carries no data yet — acceptable since decimals only ever matter for the
// anchored-to-one check, and tests supply them explicitly.
func decimalsOf(c *Context, idx int) uint8 {
	acc, err := c.Readonly(idx)
	if err != nil || len(acc.Data) <= 44 {
		return 9
	}
	return acc.Data[44]
}

func mustKey(c *Context, idx int) solana.PublicKey {
	key, _ := c.Key(idx)
	return key
}
