// Package config holds the fee and limit constants of spec §6.3. The
// teacher's main.go expresses similar tunables (slippageBps, defaultAmountIn)
// as package-level vars rather than a parsed config file; FRT keeps that
// zero-config-file texture and expresses these as typed constants instead.
package config

const (
	lamportsPerSol = 1_000_000_000

	// RegistrationFeeLamports is REGISTRATION_FEE: 1.15 SOL, non-refundable.
	RegistrationFeeLamports uint64 = 1_150_000_000

	// DepositWithdrawalFeeLamports is DEPOSIT_WITHDRAWAL_FEE.
	DepositWithdrawalFeeLamports uint64 = 13_000_000

	// SwapContractFeeLamports is SWAP_CONTRACT_FEE.
	SwapContractFeeLamports uint64 = 271_500

	// MinDonationLamports is MIN_DONATION_AMOUNT.
	MinDonationLamports uint64 = 100_000_000

	// MinLiquidityFeeLamports / MaxLiquidityFeeLamports bound UpdatePoolFees.
	MinLiquidityFeeLamports uint64 = 100_000
	MaxLiquidityFeeLamports uint64 = 10_000_000

	// MinSwapFeeLamports / MaxSwapFeeLamports bound UpdatePoolFees.
	MinSwapFeeLamports uint64 = 10_000
	MaxSwapFeeLamports uint64 = 1_000_000

	// MaxPoolsPerConsolidationBatch is MAX_POOLS_PER_CONSOLIDATION_BATCH.
	MaxPoolsPerConsolidationBatch = 20

	// MaxDonationMessageChars bounds DonateSol's UTF-8 message payload.
	MaxDonationMessageChars = 200
)

// Pause reason codes (§3.1): 0 is "not paused"; 15 is reserved for
// consolidation per the expanded spec's §I note; the rest are operator-
// advisory and not enforced by the core.
const (
	PauseReasonNone          uint8 = 0
	PauseReasonConsolidation uint8 = 15
)
