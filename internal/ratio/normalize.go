// Package ratio implements the Pool Config Normalizer (spec §4.2.1-4.2.2):
// canonical token ordering and the anchored-to-one validation every pool
// creation must pass.
package ratio

import (
	"bytes"

	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/errs"
)

// Input is the caller-supplied, not-yet-normalized pool configuration.
type Input struct {
	MintOne      solana.PublicKey
	MintTwo      solana.PublicKey
	RatioOne     uint64
	RatioTwo     uint64
}

// Normalized is the canonically-ordered pool configuration: TokenAMint is
// always byte-wise <= TokenBMint.
type Normalized struct {
	TokenAMint        solana.PublicKey
	TokenBMint        solana.PublicKey
	RatioANumerator   uint64
	RatioBDenominator uint64
	Swapped           bool
}

// Normalize reorders (mint, ratio) pairs so the byte-wise order of the two
// mints is ascending (§4.2.1). The caller's "1 of X = N of Y" intent must
// travel with its token — get this wrong and the pool is permanently
// mispriced, per the spec's warning that this is "the single most
// failure-prone interface".
func Normalize(in Input) Normalized {
	if bytes.Compare(in.MintOne[:], in.MintTwo[:]) <= 0 {
		return Normalized{
			TokenAMint:        in.MintOne,
			TokenBMint:        in.MintTwo,
			RatioANumerator:   in.RatioOne,
			RatioBDenominator: in.RatioTwo,
		}
	}
	return Normalized{
		TokenAMint:        in.MintTwo,
		TokenBMint:        in.MintOne,
		RatioANumerator:   in.RatioTwo,
		RatioBDenominator: in.RatioOne,
		Swapped:           true,
	}
}

// pow10 returns 10^n for n in [0, 19], the only range a u64 can hold.
func pow10(n uint8) (uint64, bool) {
	if n > 19 {
		return 0, false
	}
	v := uint64(1)
	for i := uint8(0); i < n; i++ {
		if v > (1<<64-1)/10 {
			return 0, false
		}
		v *= 10
	}
	return v, true
}

// CheckAnchoredToOne enforces §4.2.2: after normalization, exactly one of
// {ratioA, ratioB} must equal 10^decimals of its respective mint — the
// pool's rate must be "1 whole unit of one side equals N whole units of the
// other". Neither holding, or both holding, is InvalidRatio.
func CheckAnchoredToOne(ratioA uint64, decimalsA uint8, ratioB uint64, decimalsB uint8) error {
	oneA, okA := pow10(decimalsA)
	oneB, okB := pow10(decimalsB)
	if !okA || !okB {
		return errs.New(errs.UnsafeRatioValue, "decimals out of supported range: a=%d b=%d", decimalsA, decimalsB)
	}

	aIsOne := ratioA == oneA
	bIsOne := ratioB == oneB

	if aIsOne == bIsOne {
		// Neither anchored, or both anchored (degenerate 1:1 same-decimals
		// case) — both are rejected per §4.2.2's XOR requirement.
		return errs.New(errs.InvalidRatio, "ratio must be anchored to exactly one side: ratioA=%d (one=%d) ratioB=%d (one=%d)", ratioA, oneA, ratioB, oneB)
	}
	return nil
}
