package program

import (
	"github.com/solana-zh/frt/internal/control"
	"github.com/solana-zh/frt/internal/runtime"
	"github.com/solana-zh/frt/internal/state"
)

// handleInitializeProgram implements tag 0. Accounts: [0] payer/admin
// signer, [1] system_state (created here), [2] main_treasury (created
// here), [3] program_data, [4] system_program, [5] rent sysvar.
func handleInitializeProgram(c *Context, p InitializeProgramPayload) error {
	if err := c.RequireCount(6); err != nil {
		return err
	}
	if _, err := c.Signer(0); err != nil {
		return err
	}

	sysStateKey, err := c.Key(1)
	if err != nil {
		return err
	}
	treasuryKey, err := c.Key(2)
	if err != nil {
		return err
	}

	sys := &state.SystemState{AdminAuthority: p.AdminAuthority}
	sysAcc, err := c.Ledger.CreateAccount(sysStateKey, c.ProgramID, state.SystemStateCurrentSize, 0)
	if err != nil {
		return err
	}
	copy(sysAcc.Data, sys.Encode())

	treasury := &state.MainTreasuryState{}
	treasuryAcc, err := c.Ledger.CreateAccount(treasuryKey, c.ProgramID, int(treasury.Span()), 0)
	if err != nil {
		return err
	}
	treasuryAcc.Lamports = runtime.RentExemptMinimum(int(treasury.Span()))
	treasury.RentExemptMinimum = treasuryAcc.Lamports
	treasury.TotalBalance = treasuryAcc.Lamports
	copy(treasuryAcc.Data, treasury.Encode())
	return nil
}

// handlePauseSystem implements tag 12. Accounts: [0] admin signer,
// [1] system_state (writable), [2] clock.
func handlePauseSystem(c *Context, p PauseSystemPayload) error {
	if err := c.RequireCount(3); err != nil {
		return err
	}
	signer, err := c.Signer(0)
	if err != nil {
		return err
	}
	acc, err := c.Writable(1)
	if err != nil {
		return err
	}

	sys := &state.SystemState{}
	if err := sys.Decode(acc.Data); err != nil {
		return err
	}
	if err := control.CheckAdminSigner(sys, signer); err != nil {
		return err
	}
	if err := control.Pause(sys, p.ReasonCode, c.Ledger.Now()); err != nil {
		return err
	}
	copy(acc.Data, sys.Encode())
	return nil
}

// handleUnpauseSystem implements tag 13. Accounts: [0] admin signer,
// [1] system_state (writable), [2] main_treasury (writable), [3] clock.
func handleUnpauseSystem(c *Context) error {
	if err := c.RequireCount(4); err != nil {
		return err
	}
	signer, err := c.Signer(0)
	if err != nil {
		return err
	}
	sysAcc, err := c.Writable(1)
	if err != nil {
		return err
	}
	treasuryAcc, err := c.Writable(2)
	if err != nil {
		return err
	}

	sys := &state.SystemState{}
	if err := sys.Decode(sysAcc.Data); err != nil {
		return err
	}
	if err := control.CheckAdminSigner(sys, signer); err != nil {
		return err
	}
	treasury := &state.MainTreasuryState{}
	if err := treasury.Decode(treasuryAcc.Data); err != nil {
		return err
	}
	if err := control.Unpause(sys, treasury, c.Ledger.Now()); err != nil {
		return err
	}
	copy(sysAcc.Data, sys.Encode())
	copy(treasuryAcc.Data, treasury.Encode())
	return nil
}

// handleProcessAdminChange implements tag 24. Accounts: [0] admin-or-
// upgrade-authority signer, [1] system_state (writable), [2] program_data.
func handleProcessAdminChange(c *Context, p ProcessAdminChangePayload) error {
	if err := c.RequireCount(3); err != nil {
		return err
	}
	signer, err := c.Signer(0)
	if err != nil {
		return err
	}
	sysAcc, err := c.Writable(1)
	if err != nil {
		return err
	}
	programDataAcc, err := c.Readonly(2)
	if err != nil {
		return err
	}

	sys := &state.SystemState{}
	if err := sys.Decode(sysAcc.Data); err != nil {
		return err
	}
	if err := control.CheckAdminOrUpgradeAuthority(sys, signer, upgradeAuthorityFrom(programDataAcc)); err != nil {
		return err
	}

	if _, _, err := control.ProcessAdminChange(sys, p.NewAdmin, c.Ledger.Now()); err != nil {
		return err
	}
	copy(sysAcc.Data, sys.Encode())
	return nil
}
