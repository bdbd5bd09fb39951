package control

import (
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/state"
)

func TestPauseUnpauseRefusalStates(t *testing.T) {
	sys := &state.SystemState{}

	if err := Pause(sys, 1, 100); err != nil {
		t.Fatal(err)
	}
	if !sys.IsPaused || sys.PauseTimestamp != 100 || sys.PauseReasonCode != 1 {
		t.Fatalf("got %+v", sys)
	}

	if err := Pause(sys, 2, 200); err == nil {
		t.Fatal("expected error pausing an already-paused system")
	}

	treasuryState := &state.MainTreasuryState{}
	if err := Unpause(sys, treasuryState, 300); err != nil {
		t.Fatal(err)
	}
	if sys.IsPaused || sys.PauseTimestamp != 0 || sys.PauseReasonCode != 0 {
		t.Fatalf("expected cleared pause state, got %+v", sys)
	}

	if err := Unpause(sys, treasuryState, 400); err == nil {
		t.Fatal("expected error unpausing a system that is not paused")
	}
}

func TestUnpauseAppliesRestartPenalty(t *testing.T) {
	sys := &state.SystemState{IsPaused: true, PauseTimestamp: 50}
	treasuryState := &state.MainTreasuryState{}

	const nowUnix = 1_000_000
	if err := Unpause(sys, treasuryState, nowUnix); err != nil {
		t.Fatal(err)
	}

	const seventyOneHours = 71 * 3600
	want := int64(nowUnix + seventyOneHours)
	if treasuryState.LastWithdrawalTimestamp != want {
		t.Fatalf("got %d, want %d", treasuryState.LastWithdrawalTimestamp, want)
	}
}

func TestCheckNotPaused(t *testing.T) {
	sys := &state.SystemState{}
	if err := CheckNotPaused(sys); err != nil {
		t.Fatal(err)
	}
	sys.IsPaused = true
	sys.PauseReasonCode = 15
	if err := CheckNotPaused(sys); err == nil {
		t.Fatal("expected error while paused")
	}
}

func TestCheckAdminSigner(t *testing.T) {
	admin := solana.NewWallet().PublicKey()
	other := solana.NewWallet().PublicKey()
	sys := &state.SystemState{AdminAuthority: admin}

	if err := CheckAdminSigner(sys, admin); err != nil {
		t.Fatal(err)
	}
	if err := CheckAdminSigner(sys, other); err == nil {
		t.Fatal("expected error for non-admin signer")
	}
}
