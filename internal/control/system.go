// Package control implements the System State & Pauses component (spec
// §4.7.1): global pause with a reason code, and the admin-authority
// timelocked rotation of §4.7.2.
package control

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/errs"
	"github.com/solana-zh/frt/internal/state"
	"github.com/solana-zh/frt/internal/treasury"
)

// Pause implements §4.7.1's pause path.
func Pause(sys *state.SystemState, reasonCode uint8, nowUnix int64) error {
	if sys.IsPaused {
		return errs.New(errs.SystemPaused, "system is already paused")
	}
	sys.IsPaused = true
	sys.PauseTimestamp = nowUnix
	sys.PauseReasonCode = reasonCode
	return nil
}

// Unpause implements §4.7.1's unpause path, including the 71-hour
// restart-penalty side effect on the treasury.
func Unpause(sys *state.SystemState, treasuryState *state.MainTreasuryState, nowUnix int64) error {
	if !sys.IsPaused {
		return errs.New(errs.SystemNotPaused, "system is not paused")
	}
	sys.IsPaused = false
	sys.PauseTimestamp = 0
	sys.PauseReasonCode = 0
	treasuryState.LastWithdrawalTimestamp = treasury.ApplyRestartPenalty(nowUnix)
	return nil
}

// CheckNotPaused is the guard every other component calls before mutating
// anything (§4.2.4: "All operations require system not paused").
func CheckNotPaused(sys *state.SystemState) error {
	if sys.IsPaused {
		return errs.New(errs.SystemPaused, "system is paused (reason code %d)", sys.PauseReasonCode)
	}
	return nil
}

// CheckAdminSigner enforces admin-only access. A second, independent
// "upgrade authority" signer is accepted as a break-glass path for
// ProcessAdminChange only (§4.7.2); everything else requires the current
// admin_authority exactly.
func CheckAdminSigner(sys *state.SystemState, signer solana.PublicKey) error {
	if !sys.AdminAuthority.Equals(signer) {
		return errs.New(errs.Unauthorized, "signer %s is not the admin authority", signer)
	}
	return nil
}
