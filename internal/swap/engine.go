// Package swap implements the Swap Engine (spec §4.3): fixed-ratio
// arithmetic with a widening 128-bit intermediate, the expected-out
// exactness contract, and dust/precision policy.
package swap

import (
	"lukechampine.com/uint128"

	"github.com/solana-zh/frt/internal/errs"
)

// Result is the outcome of computing a swap's output amount (§4.3.1).
type Result struct {
	OutputBasisPoints uint64
	RemainderNonZero  bool
}

// Quote computes floor(inputBP * ratioOut / ratioIn) using a widening
// 128-bit intermediate (§4.3.1). Teacher code only ever *stored* a
// uint128.Uint128 (AMMPool.SwapBaseInAmount et al.); this is the first place
// in the pack that actually multiplies with it.
func Quote(inputBP, ratioOut, ratioIn uint64) (Result, error) {
	if inputBP == 0 {
		return Result{}, errs.New(errs.InvalidSwapAmount, "input amount is zero")
	}
	if ratioIn == 0 {
		return Result{}, errs.New(errs.InvalidRatio, "input-side ratio is zero")
	}

	product := uint128.From64(inputBP).Mul(uint128.From64(ratioOut))
	divisor := uint128.From64(ratioIn)
	quotient, remainder := product.QuoRem(divisor)

	out, ok := fitsInU64(quotient)
	if !ok {
		return Result{}, errs.New(errs.ArithmeticOverflow, "swap output exceeds u64 range")
	}

	return Result{
		OutputBasisPoints: out,
		RemainderNonZero:  !remainder.IsZero(),
	}, nil
}

func fitsInU64(v uint128.Uint128) (uint64, bool) {
	if v.Hi != 0 {
		return 0, false
	}
	return v.Lo, true
}

// CheckExactness enforces §4.3.2: the swap succeeds iff the caller's
// expected_amount_out exactly equals the computed output. Rounding is
// always toward zero.
func CheckExactness(computed Result, expectedOut uint64) error {
	if computed.OutputBasisPoints != expectedOut {
		return errs.New(errs.AmountMismatch, "expected_amount_out=%d does not match computed output=%d", expectedOut, computed.OutputBasisPoints)
	}
	return nil
}

// CheckDustPolicy enforces §4.3.3: if exact-exchange-required (flag bit 6)
// is set, any non-zero truncation remainder fails the swap; otherwise the
// remainder is silently retained by the pool.
func CheckDustPolicy(computed Result, exactExchangeRequired bool) error {
	if exactExchangeRequired && computed.RemainderNonZero {
		return errs.New(errs.StrictRatioViolation, "truncation would lose precision and exact-exchange-required is set")
	}
	return nil
}
