// Package pdas generalizes the teacher's single getAuthorityPDA() helper
// (pkg/pool/raydium/cpmmPool.go) into the full seed table of spec §4.1: one
// derivation function per account the core itself owns, plus a Validate
// helper that compares a supplied account against its derived PDA. Only
// InitializePool calls Validate (on the pool state, both vaults and both LP
// mints); the other handlers do not re-derive the accounts they are given.
package pdas

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/errs"
)

const (
	SystemStateSeed  = "system_state"
	MainTreasurySeed = "main_treasury"
	PoolStateSeed    = "pool_state"
	TokenAVaultSeed  = "token_a_vault"
	TokenBVaultSeed  = "token_b_vault"
	LPAMintSeed      = "lp_token_a_mint"
	LPBMintSeed      = "lp_token_b_mint"
)

func le64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// SystemState derives the singleton system-state PDA.
func SystemState(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(SystemStateSeed)}, programID)
}

// MainTreasury derives the singleton main-treasury PDA.
func MainTreasury(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(MainTreasurySeed)}, programID)
}

// PoolState derives a pool's PDA from its canonically-ordered mints and
// ratios. Callers MUST have already run ratio.Normalize — this function does
// not reorder anything itself, it only hashes what it is given.
func PoolState(programID, tokenAMint, tokenBMint solana.PublicKey, ratioANumerator, ratioBDenominator uint64) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		[]byte(PoolStateSeed),
		tokenAMint[:],
		tokenBMint[:],
		le64(ratioANumerator),
		le64(ratioBDenominator),
	}, programID)
}

// TokenAVault derives the pool's token-A vault PDA.
func TokenAVault(programID, poolState solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(TokenAVaultSeed), poolState[:]}, programID)
}

// TokenBVault derives the pool's token-B vault PDA.
func TokenBVault(programID, poolState solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(TokenBVaultSeed), poolState[:]}, programID)
}

// LPAMint derives the pool's token-A LP mint PDA.
func LPAMint(programID, poolState solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(LPAMintSeed), poolState[:]}, programID)
}

// LPBMint derives the pool's token-B LP mint PDA.
func LPBMint(programID, poolState solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(LPBMintSeed), poolState[:]}, programID)
}

// Validate refuses any supplied account that does not equal the PDA the
// core itself derived, per §4.1: "otherwise the instruction fails with
// InvalidAccountData".
func Validate(name string, expected, supplied solana.PublicKey) error {
	if !expected.Equals(supplied) {
		return errs.New(errs.InvalidAccountData, "%s: expected PDA %s, got %s", name, expected, supplied)
	}
	return nil
}

// Bundle caches every pool-scoped PDA (and its bump) computed once at pool
// creation, per §4.1: "Bump seeds are stored in the pool state after
// creation and reused for signing."
type Bundle struct {
	PoolState   solana.PublicKey
	PoolBump    uint8
	TokenAVault solana.PublicKey
	VaultABump  uint8
	TokenBVault solana.PublicKey
	VaultBBump  uint8
	LPMintA     solana.PublicKey
	LPABump     uint8
	LPMintB     solana.PublicKey
	LPBBump     uint8
}

// DeriveBundle computes every pool-scoped PDA in one pass, for use at pool
// creation (§4.2.4 InitializePool).
func DeriveBundle(programID, tokenAMint, tokenBMint solana.PublicKey, ratioANumerator, ratioBDenominator uint64) (*Bundle, error) {
	poolState, poolBump, err := PoolState(programID, tokenAMint, tokenBMint, ratioANumerator, ratioBDenominator)
	if err != nil {
		return nil, err
	}
	vaultA, vaultABump, err := TokenAVault(programID, poolState)
	if err != nil {
		return nil, err
	}
	vaultB, vaultBBump, err := TokenBVault(programID, poolState)
	if err != nil {
		return nil, err
	}
	lpA, lpABump, err := LPAMint(programID, poolState)
	if err != nil {
		return nil, err
	}
	lpB, lpBBump, err := LPBMint(programID, poolState)
	if err != nil {
		return nil, err
	}
	return &Bundle{
		PoolState: poolState, PoolBump: poolBump,
		TokenAVault: vaultA, VaultABump: vaultABump,
		TokenBVault: vaultB, VaultBBump: vaultBBump,
		LPMintA: lpA, LPABump: lpABump,
		LPMintB: lpB, LPBBump: lpBBump,
	}, nil
}
