package control

import (
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/state"
)

func TestProcessAdminChangeFullCycle(t *testing.T) {
	admin := solana.NewWallet().PublicKey()
	candidate := solana.NewWallet().PublicKey()

	sys := &state.SystemState{AdminAuthority: admin}

	outcome, _, err := ProcessAdminChange(sys, candidate, 0)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != AdminChangeProposed {
		t.Fatalf("got %v", outcome)
	}
	if !sys.HasPendingAdmin || !sys.PendingAdminAuthority.Equals(candidate) {
		t.Fatal("expected pending admin set")
	}

	// §8.2 law #9: re-proposing the same candidate before the timelock
	// elapses must never advance state.
	outcome, remaining, err := ProcessAdminChange(sys, candidate, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != AdminChangeStillPending {
		t.Fatalf("got %v", outcome)
	}
	if remaining <= 0 {
		t.Fatalf("expected positive remaining seconds, got %d", remaining)
	}
	if sys.AdminAuthority.Equals(candidate) {
		t.Fatal("admin must not have rotated yet")
	}

	// Scenario #4 in §8.4: at t=72h, completes.
	const seventyTwoHours = 72 * 3600
	outcome, _, err = ProcessAdminChange(sys, candidate, seventyTwoHours)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != AdminChangeCompleted {
		t.Fatalf("got %v", outcome)
	}
	if !sys.AdminAuthority.Equals(candidate) || sys.HasPendingAdmin {
		t.Fatalf("expected admin rotated and pending cleared, got %+v", sys)
	}
}

func TestProcessAdminChangeCancellation(t *testing.T) {
	admin := solana.NewWallet().PublicKey()
	candidate := solana.NewWallet().PublicKey()
	sys := &state.SystemState{AdminAuthority: admin}

	if _, _, err := ProcessAdminChange(sys, candidate, 0); err != nil {
		t.Fatal(err)
	}
	outcome, _, err := ProcessAdminChange(sys, admin, 10)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != AdminChangeCancelled {
		t.Fatalf("got %v", outcome)
	}
	if sys.HasPendingAdmin {
		t.Fatal("expected pending cleared")
	}
}

func TestProcessAdminChangeReplacesAndResetsTimer(t *testing.T) {
	admin := solana.NewWallet().PublicKey()
	first := solana.NewWallet().PublicKey()
	second := solana.NewWallet().PublicKey()
	sys := &state.SystemState{AdminAuthority: admin}

	if _, _, err := ProcessAdminChange(sys, first, 0); err != nil {
		t.Fatal(err)
	}
	outcome, _, err := ProcessAdminChange(sys, second, 5000)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != AdminChangeReplaced {
		t.Fatalf("got %v", outcome)
	}
	if !sys.PendingAdminAuthority.Equals(second) || sys.AdminChangeTimestamp != 5000 {
		t.Fatalf("expected timer reset against new candidate, got %+v", sys)
	}
}

func TestProcessAdminChangeNoOp(t *testing.T) {
	admin := solana.NewWallet().PublicKey()
	sys := &state.SystemState{AdminAuthority: admin}
	outcome, _, err := ProcessAdminChange(sys, admin, 0)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != AdminChangeNoOp {
		t.Fatalf("got %v", outcome)
	}
}
