package control

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/errs"
	"github.com/solana-zh/frt/internal/state"
	"github.com/solana-zh/frt/internal/treasury"
)

// AdminChangeOutcome reports what ProcessAdminChange (tag 24) actually did,
// since the instruction is a single entry point covering six distinct
// outcomes (§4.7.2's table).
type AdminChangeOutcome int

const (
	AdminChangeNoOp AdminChangeOutcome = iota
	AdminChangeProposed
	AdminChangeCancelled
	AdminChangeStillPending // returns remaining seconds, no state change
	AdminChangeCompleted
	AdminChangeReplaced
)

// ProcessAdminChange implements the full decision table in §4.7.2.
// signer must be either the current admin_authority or the program's
// upgrade authority (the break-glass path); callers check that before
// calling this, since verifying the upgrade authority requires reading the
// program-data account, which this package has no access to.
func ProcessAdminChange(sys *state.SystemState, newAdmin solana.PublicKey, nowUnix int64) (AdminChangeOutcome, int64, error) {
	if !sys.HasPendingAdmin {
		if newAdmin.Equals(sys.AdminAuthority) {
			return AdminChangeNoOp, 0, nil
		}
		sys.HasPendingAdmin = true
		sys.PendingAdminAuthority = newAdmin
		sys.AdminChangeTimestamp = nowUnix
		return AdminChangeProposed, 0, nil
	}

	// Pending exists.
	if newAdmin.Equals(sys.AdminAuthority) {
		sys.HasPendingAdmin = false
		sys.PendingAdminAuthority = solana.PublicKey{}
		sys.AdminChangeTimestamp = 0
		return AdminChangeCancelled, 0, nil
	}

	if newAdmin.Equals(sys.PendingAdminAuthority) {
		elapsed := nowUnix - sys.AdminChangeTimestamp
		timelock := int64(treasury.AdminChangeTimelock.Seconds())
		if elapsed < timelock {
			return AdminChangeStillPending, timelock - elapsed, nil
		}
		sys.AdminAuthority = sys.PendingAdminAuthority
		sys.HasPendingAdmin = false
		sys.PendingAdminAuthority = solana.PublicKey{}
		sys.AdminChangeTimestamp = 0
		return AdminChangeCompleted, 0, nil
	}

	// new != pending, new != current: replace pending and reset the timer.
	sys.PendingAdminAuthority = newAdmin
	sys.AdminChangeTimestamp = nowUnix
	return AdminChangeReplaced, 0, nil
}

// CheckAdminOrUpgradeAuthority enforces the dual-signer rule of §4.7.2:
// either the current admin or the program's upgrade authority may call
// ProcessAdminChange.
func CheckAdminOrUpgradeAuthority(sys *state.SystemState, signer, upgradeAuthority solana.PublicKey) error {
	if sys.AdminAuthority.Equals(signer) || upgradeAuthority.Equals(signer) {
		return nil
	}
	return errs.New(errs.Unauthorized, "signer %s is neither the admin authority nor the program upgrade authority", signer)
}
