package program

import (
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/pdas"
	"github.com/solana-zh/frt/internal/pool"
	"github.com/solana-zh/frt/internal/runtime"
	"github.com/solana-zh/frt/internal/state"
)

func meta(key solana.PublicKey, writable, signer bool) *solana.AccountMeta {
	return solana.NewAccountMeta(key, writable, signer)
}

// TestInitializeProgramThenPauseSystem exercises tags 0 and 12 together,
// checking that InitializeProgram seeds an admin authority PauseSystem
// later enforces.
func TestInitializeProgramThenPauseSystem(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	admin := solana.NewWallet().PublicKey()
	payer := solana.NewWallet().PublicKey()

	ledger := runtime.NewLedger(1_000)
	sysStateKey, _, _ := pdas.SystemState(programID)
	treasuryKey, _, _ := pdas.MainTreasury(programID)
	programDataKey := solana.NewWallet().PublicKey()

	d := &Dispatcher{ProgramID: programID, Ledger: ledger}

	initData := append([]byte{TagInitializeProgram}, admin[:]...)
	initMetas := solana.AccountMetaSlice{
		meta(payer, true, true),
		meta(sysStateKey, true, false),
		meta(treasuryKey, true, false),
		meta(programDataKey, false, false),
		meta(solana.SystemProgramID, false, false),
		meta(solana.SysVarRentPubkey, false, false),
	}
	if _, _, err := d.Dispatch(initData, initMetas); err != nil {
		t.Fatal(err)
	}

	pauseData := append([]byte{TagPauseSystem}, 1)
	pauseMetas := solana.AccountMetaSlice{
		meta(admin, false, true),
		meta(sysStateKey, true, false),
		meta(solana.SysVarClockPubkey, false, false),
	}
	if _, _, err := d.Dispatch(pauseData, pauseMetas); err != nil {
		t.Fatal(err)
	}

	sysAcc := ledger.Get(sysStateKey)
	sys := &state.SystemState{}
	if err := sys.Decode(sysAcc.Data); err != nil {
		t.Fatal(err)
	}
	if !sys.IsPaused || sys.PauseReasonCode != 1 {
		t.Fatalf("got %+v", sys)
	}

	// Pausing again must fail: system is already paused.
	if _, _, err := d.Dispatch(pauseData, pauseMetas); err == nil {
		t.Fatal("expected error pausing an already-paused system")
	}
}

// TestSwapThroughDispatcher builds a pool directly (bypassing
// InitializePool's account-creation plumbing), seeds the USDC vault
// directly rather than through Deposit, and drives a Swap through the
// Dispatcher, matching scenario #1 of §8.4: a 1 SOL (9 dec) <-> 160 USDC
// (6 dec) pool, swapping 0.5 SOL for an expected 80 USDC.
func TestSwapThroughDispatcher(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()

	ledger := runtime.NewLedger(0)

	solMint := solana.NewWallet().PublicKey()
	usdcMint := solana.NewWallet().PublicKey()
	// ratio anchored to SOL side: 1 SOL (1e9 bp) = 160 USDC (160e6 bp).
	ps, bundle, err := pool.New(pool.CreateParams{
		ProgramID: programID,
		MintOne:   solMint, MintTwo: usdcMint,
		DecimalsOne: 9, DecimalsTwo: 6,
		RatioOne: 1_000_000_000, RatioTwo: 160_000_000,
	})
	if err != nil {
		t.Fatal(err)
	}

	poolAcc, err := ledger.CreateAccount(bundle.PoolState, programID, int(ps.Span()), 0)
	if err != nil {
		t.Fatal(err)
	}
	poolAcc.Lamports = runtime.RentExemptMinimum(int(ps.Span()))
	copy(poolAcc.Data, ps.Encode())

	sysStateKey, _, _ := pdas.SystemState(programID)
	sys := &state.SystemState{AdminAuthority: solana.NewWallet().PublicKey()}
	sysAcc, err := ledger.CreateAccount(sysStateKey, programID, state.SystemStateCurrentSize, 0)
	if err != nil {
		t.Fatal(err)
	}
	copy(sysAcc.Data, sys.Encode())

	// Figure out which normalized side is which mint, since pool.New may
	// have swapped (sol, usdc) into canonical byte order.
	solSide := bundle.TokenAVault
	usdcSide := bundle.TokenBVault
	solMintUsed := ps.TokenAMint
	usdcMintUsed := ps.TokenBMint
	if !ps.TokenAMint.Equals(solMint) {
		solSide, usdcSide = bundle.TokenBVault, bundle.TokenAVault
		solMintUsed, usdcMintUsed = ps.TokenBMint, ps.TokenAMint
	}

	if _, err := ledger.NewTokenAccount(solSide, solMintUsed, bundle.PoolState, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.NewTokenAccount(usdcSide, usdcMintUsed, bundle.PoolState, 160_000_000); err != nil {
		t.Fatal(err)
	}

	userSolKey := solana.NewWallet().PublicKey()
	userSolAcc, err := ledger.NewTokenAccount(userSolKey, solMintUsed, user, 1_000_000_000)
	if err != nil {
		t.Fatal(err)
	}
	userUsdcKey := solana.NewWallet().PublicKey()
	userUsdcAcc, err := ledger.NewTokenAccount(userUsdcKey, usdcMintUsed, user, 0)
	if err != nil {
		t.Fatal(err)
	}
	userWalletAcc, err := ledger.CreateAccount(user, solana.SystemProgramID, 0, 10_000_000_000)
	if err != nil {
		t.Fatal(err)
	}

	d := &Dispatcher{ProgramID: programID, Ledger: ledger}

	swapData := make([]byte, 1+32+8+8+32)
	swapData[0] = TagSwap
	copy(swapData[1:33], solMintUsed[:])
	putU64LE(swapData[33:41], 500_000_000)
	putU64LE(swapData[41:49], 80_000_000)
	copy(swapData[49:81], bundle.PoolState[:])

	swapMetas := solana.AccountMetaSlice{
		meta(user, true, true),
		meta(bundle.PoolState, true, false),
		meta(solMintUsed, false, false),
		meta(userSolKey, true, false),
		meta(solSide, true, false),
		meta(usdcSide, true, false),
		meta(userUsdcKey, true, false),
		meta(bundle.PoolState, false, false),
		meta(sysStateKey, false, false),
		meta(solana.TokenProgramID, false, false),
		meta(solana.SysVarClockPubkey, false, false),
	}

	if _, _, err := d.Dispatch(swapData, swapMetas); err != nil {
		t.Fatal(err)
	}

	if runtime.TokenAmount(userUsdcAcc) != 80_000_000 {
		t.Fatalf("got %d", runtime.TokenAmount(userUsdcAcc))
	}
	if runtime.TokenAmount(userSolAcc) != 500_000_000 {
		t.Fatalf("got %d", runtime.TokenAmount(userSolAcc))
	}

	poolAccAfter := ledger.Get(bundle.PoolState)
	psAfter := &state.PoolState{}
	if err := psAfter.Decode(poolAccAfter.Data); err != nil {
		t.Fatal(err)
	}
	if psAfter.TotalSwaps != 1 {
		t.Fatalf("got %d", psAfter.TotalSwaps)
	}

	// The swap fee must actually land in the pool's lamports, not just its
	// counters, or consolidation has nothing to sweep.
	wantPoolLamports := runtime.RentExemptMinimum(int(ps.Span())) + ps.SwapContractFee
	if poolAccAfter.Lamports != wantPoolLamports {
		t.Fatalf("pool lamports = %d, want %d", poolAccAfter.Lamports, wantPoolLamports)
	}
	if userWalletAcc.Lamports != 10_000_000_000-ps.SwapContractFee {
		t.Fatalf("user wallet lamports = %d, want %d", userWalletAcc.Lamports, 10_000_000_000-ps.SwapContractFee)
	}
}

// TestGetVersion exercises tag 14: zero accounts, no mutation, and a
// return payload of the 8-byte discriminator followed by the packed
// (major, minor, patch uint16) triple (§B/C).
func TestGetVersion(t *testing.T) {
	d := &Dispatcher{ProgramID: solana.NewWallet().PublicKey(), Ledger: runtime.NewLedger(0)}

	name, data, err := d.Dispatch([]byte{TagGetVersion}, solana.AccountMetaSlice{})
	if err != nil {
		t.Fatal(err)
	}
	if name != "GetVersion" {
		t.Fatalf("got name %q", name)
	}
	if len(data) != 14 {
		t.Fatalf("got %d bytes, want 14", len(data))
	}
	major := uint16(data[8]) | uint16(data[9])<<8
	minor := uint16(data[10]) | uint16(data[11])<<8
	patch := uint16(data[12]) | uint16(data[13])<<8
	if got := fmt.Sprintf("%d.%d.%d", major, minor, patch); got != Version() {
		t.Fatalf("decoded version %q != Version() %q", got, Version())
	}
}

func putU64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
