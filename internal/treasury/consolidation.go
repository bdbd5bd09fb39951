// Consolidation (spec §4.6): batched pool-fee sweeps into the main
// treasury, respecting each pool's rent-exempt floor and the
// buffer-then-lamport-move ordering §4.6.4 mandates.
package treasury

import (
	"lukechampine.com/uint128"

	"github.com/solana-zh/frt/internal/errs"
	"github.com/solana-zh/frt/internal/fees"
	"github.com/solana-zh/frt/internal/runtime"
	"github.com/solana-zh/frt/internal/state"
)

// CheckBatchSize enforces §4.6.1: pool_count in [1, 20].
func CheckBatchSize(poolCount int) error {
	if poolCount < 1 || poolCount > MaxPoolsPerConsolidationBatch {
		return errs.New(errs.InvalidArgument, "pool_count %d out of range [1, %d]", poolCount, MaxPoolsPerConsolidationBatch)
	}
	return nil
}

// MaxPoolsPerConsolidationBatch is MAX_POOLS_PER_CONSOLIDATION_BATCH (§6.3).
const MaxPoolsPerConsolidationBatch = 20

// IsEligible implements §4.6.2: every pool is eligible while the system is
// paused; otherwise a pool must have both liquidity and swaps paused.
func IsEligible(ps *state.PoolState, systemPaused bool) bool {
	if systemPaused {
		return true
	}
	return ps.HasFlag(state.FlagLiquidityPaused) && ps.HasFlag(state.FlagSwapsPaused)
}

// ConsolidationResult is the outcome of sweeping one pool. LiquidityTaken
// and SwapTaken split Taken between the pool's two fee categories
// (proportional to how much of the pending balance each contributed), for
// the caller to fold into MainTreasuryState's per-category totals (§4.6.3).
type ConsolidationResult struct {
	Skipped        bool
	Taken          uint64
	LiquidityTaken uint64
	SwapTaken      uint64
}

// ConsolidatePool implements §4.6.3 for a single eligible pool: compute
// availability against the rent floor, return the amount the caller then
// moves as a direct lamport transfer (not via SPL), and scale the fee
// counters down proportionally on a partial sweep. It does not move any
// lamports itself.
//
// The data mutations happen on `ps` before ConsolidatePool ever touches
// poolAccount.Lamports — the caller is expected to have already decoded
// poolAccount.Data into ps (a throwaway buffer), and to re-encode ps back
// into poolAccount.Data only *after* this returns, performing the lamport
// move via the Ledger in between. That ordering is the buffer-then-
// lamport-move workaround §4.6.4 mandates; see program/handlers_treasury.go
// for where the three steps are actually sequenced.
func ConsolidatePool(ps *state.PoolState, poolLamports uint64, nowUnix int64) (ConsolidationResult, error) {
	pending := fees.Pending(ps.TotalSolFeesCollected, ps.TotalFeesConsolidated)
	if pending == 0 {
		return ConsolidationResult{Skipped: true}, nil
	}

	rentExempt := runtime.RentExemptMinimum(int(ps.Span()))
	var available uint64
	if poolLamports > rentExempt {
		available = poolLamports - rentExempt
	}

	take := available
	if take > pending {
		take = pending
	}
	if take == 0 {
		return ConsolidationResult{Skipped: true}, nil
	}

	// Split take between categories before mutating the counters below,
	// proportional to each category's share of the pending balance, so the
	// caller can fold the split into the treasury's per-category totals.
	liquidityTaken := mulDiv(take, ps.CollectedLiquidityFees, pending)
	swapTaken := take - liquidityTaken

	if take == pending {
		ps.CollectedLiquidityFees = 0
		ps.CollectedSwapContractFees = 0
	} else {
		// Partial sweep: scale each category down by take/pending so that
		// total_sol_fees_collected - total_fees_consolidated keeps equaling
		// the remaining pending amount (§4.6.3).
		ps.CollectedLiquidityFees = scaleDown(ps.CollectedLiquidityFees, take, pending)
		ps.CollectedSwapContractFees = scaleDown(ps.CollectedSwapContractFees, take, pending)
	}

	ps.TotalFeesConsolidated += take
	ps.TotalConsolidations++
	ps.LastConsolidationTimestamp = nowUnix

	return ConsolidationResult{Taken: take, LiquidityTaken: liquidityTaken, SwapTaken: swapTaken}, nil
}

// scaleDown computes floor(amount * (1 - take/pending)) using integer
// arithmetic, i.e. the portion of `amount` that remains uncollected after
// removing the `take/pending` share.
func scaleDown(amount, take, pending uint64) uint64 {
	remaining := pending - take
	// amount * remaining / pending, floor division.
	return mulDiv(amount, remaining, pending)
}

func mulDiv(a, b, d uint64) uint64 {
	if d == 0 {
		return 0
	}
	product := uint128.From64(a).Mul(uint128.From64(b))
	q, _ := product.QuoRem(uint128.From64(d))
	return q.Lo
}
