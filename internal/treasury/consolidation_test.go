package treasury

import (
	"testing"

	"github.com/solana-zh/frt/internal/runtime"
	"github.com/solana-zh/frt/internal/state"
)

func TestConsolidatePoolFullSweep(t *testing.T) {
	ps := &state.PoolState{
		CollectedLiquidityFees:    300_000_000,
		CollectedSwapContractFees: 200_000_000,
		TotalSolFeesCollected:     500_000_000,
	}
	rent := runtimeRentFor(ps)
	res, err := ConsolidatePool(ps, rent+500_000_000, 1234)
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped || res.Taken != 500_000_000 {
		t.Fatalf("got %+v", res)
	}
	if res.LiquidityTaken != 300_000_000 || res.SwapTaken != 200_000_000 {
		t.Fatalf("got liquidity=%d swap=%d, want 300000000/200000000", res.LiquidityTaken, res.SwapTaken)
	}
	if ps.CollectedLiquidityFees != 0 || ps.CollectedSwapContractFees != 0 {
		t.Fatalf("expected counters zeroed, got %+v", ps)
	}
	if ps.TotalFeesConsolidated != 500_000_000 {
		t.Fatalf("got %d", ps.TotalFeesConsolidated)
	}
	if ps.TotalConsolidations != 1 {
		t.Fatalf("got %d", ps.TotalConsolidations)
	}
}

func TestConsolidatePoolPartialSweep(t *testing.T) {
	ps := &state.PoolState{
		CollectedLiquidityFees:    400_000_000,
		CollectedSwapContractFees: 100_000_000,
		TotalSolFeesCollected:     500_000_000,
	}
	rent := runtimeRentFor(ps)
	// Only 200_000_000 available above rent, of 500_000_000 pending.
	res, err := ConsolidatePool(ps, rent+200_000_000, 1234)
	if err != nil {
		t.Fatal(err)
	}
	if res.Taken != 200_000_000 {
		t.Fatalf("got %d", res.Taken)
	}
	if res.LiquidityTaken+res.SwapTaken != res.Taken {
		t.Fatalf("split %d+%d != taken %d", res.LiquidityTaken, res.SwapTaken, res.Taken)
	}
	// 400M of 500M pending is liquidity (80%), so 80% of the 200M taken.
	if res.LiquidityTaken != 160_000_000 || res.SwapTaken != 40_000_000 {
		t.Fatalf("got liquidity=%d swap=%d, want 160000000/40000000", res.LiquidityTaken, res.SwapTaken)
	}
	if ps.TotalFeesConsolidated != 200_000_000 {
		t.Fatalf("got %d", ps.TotalFeesConsolidated)
	}
	pendingAfter := (ps.TotalSolFeesCollected) - ps.TotalFeesConsolidated
	remainingCounters := ps.CollectedLiquidityFees + ps.CollectedSwapContractFees
	if remainingCounters != pendingAfter {
		t.Fatalf("invariant broken: counters=%d pending=%d", remainingCounters, pendingAfter)
	}
}

func TestConsolidatePoolSkipsWhenNoPending(t *testing.T) {
	ps := &state.PoolState{}
	res, err := ConsolidatePool(ps, 1_000_000_000, 1234)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Skipped {
		t.Fatal("expected skip when nothing pending")
	}
}

func TestIsEligible(t *testing.T) {
	ps := &state.PoolState{}
	if IsEligible(ps, false) {
		t.Fatal("pool with no pause flags should not be eligible while system is running")
	}
	if !IsEligible(ps, true) {
		t.Fatal("every pool is eligible while the system is paused")
	}
	ps.Flags = state.FlagLiquidityPaused | state.FlagSwapsPaused
	if !IsEligible(ps, false) {
		t.Fatal("fully-paused pool should be eligible")
	}
}

func TestCheckBatchSize(t *testing.T) {
	if err := CheckBatchSize(0); err == nil {
		t.Fatal("expected error for 0")
	}
	if err := CheckBatchSize(21); err == nil {
		t.Fatal("expected error for 21")
	}
	if err := CheckBatchSize(20); err != nil {
		t.Fatal("20 should be allowed")
	}
}

func runtimeRentFor(ps *state.PoolState) uint64 {
	return runtime.RentExemptMinimum(int(ps.Span()))
}
