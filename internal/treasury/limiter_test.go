package treasury

import "testing"

func TestComputeHourlyLimitTiers(t *testing.T) {
	// §8.3: available balance tiers {25, 500, 5000} SOL -> hourly limits
	// {10, 100, 1000} SOL.
	cases := []struct {
		availableSol uint64
		wantSol      uint64
	}{
		{25, 10},
		{500, 100},
		{5_000, 1_000},
	}
	for _, c := range cases {
		got := ComputeHourlyLimit(c.availableSol * lamportsPerSol)
		want := c.wantSol * lamportsPerSol
		if got != want {
			t.Fatalf("available=%d SOL: got %d, want %d", c.availableSol, got, want)
		}
	}
}

func TestCheckAndApplyCooldown(t *testing.T) {
	st := WithdrawalLimiterState{
		TotalBalance:            25 * lamportsPerSol,
		RentExemptMinimum:       0,
		LastWithdrawalTimestamp: 0,
	}
	amt, newTs, err := CheckAndApply(st, 10*lamportsPerSol, 1000, false)
	if err != nil {
		t.Fatalf("first withdrawal should succeed: %v", err)
	}
	if amt != 10*lamportsPerSol {
		t.Fatalf("got %d", amt)
	}

	st.LastWithdrawalTimestamp = newTs
	st.TotalBalance -= amt

	_, _, err = CheckAndApply(st, 1*lamportsPerSol, 1000, false)
	if err == nil {
		t.Fatal("second withdrawal should fail during cooldown")
	}

	_, _, err = CheckAndApply(st, 1*lamportsPerSol, newTs, false)
	if err != nil {
		t.Fatalf("withdrawal exactly at cooldown boundary should succeed: %v", err)
	}
}

func TestCheckAndApplyRefusesWhileSystemPaused(t *testing.T) {
	st := WithdrawalLimiterState{TotalBalance: 25 * lamportsPerSol}
	_, _, err := CheckAndApply(st, 0, 0, true)
	if err == nil {
		t.Fatal("expected SystemPaused error")
	}
}

func TestCheckAndApplyWithdrawAllBypassesFloor(t *testing.T) {
	st := WithdrawalLimiterState{TotalBalance: 50_000_000, RentExemptMinimum: 0}
	amt, _, err := CheckAndApply(st, 0, 0, false)
	if err != nil {
		t.Fatalf("withdraw-all should bypass MIN_WITHDRAWAL: %v", err)
	}
	if amt != 50_000_000 {
		t.Fatalf("got %d", amt)
	}
}

func TestCheckAndApplyBelowMinimum(t *testing.T) {
	st := WithdrawalLimiterState{TotalBalance: 1 * lamportsPerSol}
	_, _, err := CheckAndApply(st, 1000, 0, false)
	if err == nil {
		t.Fatal("expected WithdrawalBelowMinimum")
	}
}
