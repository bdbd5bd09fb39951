// Command frtdemo drives a simulated FRT program end to end: it spins up
// an in-memory runtime.Ledger, hand-builds the wire payloads for
// InitializeProgram, InitializePool, Deposit, and Swap the same way a real
// client would, and dispatches each one through program.Dispatcher. It
// plays the same "prove the pipes work before touching a live RPC" role
// solroute's own main.go plays for its route-and-swap flow.
package main

import (
	"encoding/binary"
	"log"

	"cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/pdas"
	"github.com/solana-zh/frt/internal/program"
	"github.com/solana-zh/frt/internal/ratio"
	"github.com/solana-zh/frt/internal/runtime"
)

var (
	// Pool parameters: 1 SOL (9 decimals) anchored to 160 USDC (6 decimals).
	solDecimals  = uint8(9)
	usdcDecimals = uint8(6)
	ratioSOL     = uint64(1_000_000_000)
	ratioUSDC    = uint64(160_000_000)

	swapAmountIn = uint64(500_000_000) // 0.5 SOL
)

func putU64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }

// newMintAccount creates a placeholder SPL mint account with just enough
// of the real layout filled in (decimals at offset 44) for
// internal/program's decimalsOf to read.
func newMintAccount(l *runtime.Ledger, key solana.PublicKey, decimals uint8) {
	acc, err := l.CreateAccount(key, solana.TokenProgramID, 82, 0)
	if err != nil {
		log.Fatalf("create mint account: %v", err)
	}
	acc.Data[44] = decimals
}

func meta(key solana.PublicKey, writable, signer bool) *solana.AccountMeta {
	return solana.NewAccountMeta(key, writable, signer)
}

func main() {
	log.Printf("🚀 starting frtdemo against a simulated ledger...")

	programID := solana.NewWallet().PublicKey()
	admin := solana.NewWallet().PublicKey()
	payer := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()

	ledger := runtime.NewLedger(1_700_000_000)
	ledger.CreateAccount(payer, solana.SystemProgramID, 0, 50_000_000_000)
	d := &program.Dispatcher{ProgramID: programID, Ledger: ledger}

	sysStateKey, _, _ := pdas.SystemState(programID)
	treasuryKey, _, _ := pdas.MainTreasury(programID)
	programDataKey := solana.NewWallet().PublicKey()

	log.Printf("😈 admin authority: %s", admin)

	initData := append([]byte{program.TagInitializeProgram}, admin[:]...)
	initMetas := solana.AccountMetaSlice{
		meta(payer, true, true),
		meta(sysStateKey, true, false),
		meta(treasuryKey, true, false),
		meta(programDataKey, false, false),
		meta(solana.SystemProgramID, false, false),
		meta(solana.SysVarRentPubkey, false, false),
	}
	if _, _, err := d.Dispatch(initData, initMetas); err != nil {
		log.Fatalf("InitializeProgram failed: %v", err)
	}
	log.Printf("✅ system_state and main_treasury initialized")

	solMint := solana.NewWallet().PublicKey()
	usdcMint := solana.NewWallet().PublicKey()
	newMintAccount(ledger, solMint, solDecimals)
	newMintAccount(ledger, usdcMint, usdcDecimals)

	n := ratio.Normalize(ratio.Input{
		MintOne: solMint, MintTwo: usdcMint,
		RatioOne: ratioSOL, RatioTwo: ratioUSDC,
	})
	bundle, err := pdas.DeriveBundle(programID, n.TokenAMint, n.TokenBMint, n.RatioANumerator, n.RatioBDenominator)
	if err != nil {
		log.Fatalf("derive pool PDAs: %v", err)
	}

	poolData := make([]byte, 1+17)
	poolData[0] = program.TagInitializePool
	putU64(poolData[1:9], n.RatioANumerator)
	putU64(poolData[9:17], n.RatioBDenominator)
	poolMetas := solana.AccountMetaSlice{
		meta(payer, true, true),
		meta(bundle.PoolState, true, false),
		meta(n.TokenAMint, false, false),
		meta(n.TokenBMint, false, false),
		meta(bundle.TokenAVault, true, false),
		meta(bundle.TokenBVault, true, false),
		meta(bundle.LPMintA, true, false),
		meta(bundle.LPMintB, true, false),
		meta(sysStateKey, false, false),
		meta(treasuryKey, true, false),
		meta(solana.TokenProgramID, false, false),
		meta(solana.SystemProgramID, false, false),
		meta(solana.SysVarRentPubkey, false, false),
	}
	if _, _, err := d.Dispatch(poolData, poolMetas); err != nil {
		log.Fatalf("InitializePool failed: %v", err)
	}
	log.Printf("✅ pool %s created (1 SOL = 160 USDC)", bundle.PoolState)

	solVault, usdcVault := bundle.TokenAVault, bundle.TokenBVault
	solMintUsed, usdcMintUsed := n.TokenAMint, n.TokenBMint
	if n.Swapped {
		solVault, usdcVault = bundle.TokenBVault, bundle.TokenAVault
		solMintUsed, usdcMintUsed = n.TokenBMint, n.TokenAMint
	}

	userSolKey := solana.NewWallet().PublicKey()
	userSolAcc, _ := ledger.NewTokenAccount(userSolKey, solMintUsed, user, 2_000_000_000)
	userUsdcKey := solana.NewWallet().PublicKey()
	userUsdcAcc, _ := ledger.NewTokenAccount(userUsdcKey, usdcMintUsed, user, 0)
	userWalletAcc, err := ledger.CreateAccount(user, solana.SystemProgramID, 0, 5_000_000_000)
	if err != nil {
		log.Fatalf("create user wallet account: %v", err)
	}

	// Seed the USDC vault with liquidity via Deposit so the swap below has
	// something to draw against.
	userLPKey := solana.NewWallet().PublicKey()
	userLPAcc, _ := ledger.NewTokenAccount(userLPKey, bundle.LPMintB, user, 0)
	depositAmount := uint64(320_000_000) // 320 USDC
	depositorUsdcKey := solana.NewWallet().PublicKey()
	ledger.NewTokenAccount(depositorUsdcKey, usdcMintUsed, user, depositAmount)

	depositData := make([]byte, 1+72)
	depositData[0] = program.TagDeposit
	copy(depositData[1:33], usdcMintUsed[:])
	putU64(depositData[33:41], depositAmount)
	copy(depositData[41:73], bundle.PoolState[:])
	depositMetas := solana.AccountMetaSlice{
		meta(user, true, true),
		meta(bundle.PoolState, true, false),
		meta(usdcMintUsed, false, false),
		meta(depositorUsdcKey, true, false),
		meta(usdcVault, true, false),
		meta(bundle.LPMintB, false, false),
		meta(userLPKey, true, false),
		meta(bundle.PoolState, false, false),
		meta(sysStateKey, false, false),
		meta(solana.TokenProgramID, false, false),
		meta(solana.SysVarClockPubkey, false, false),
	}
	if _, _, err := d.Dispatch(depositData, depositMetas); err != nil {
		log.Fatalf("Deposit failed: %v", err)
	}
	log.Printf("💧 deposited %d USDC, minted %d LP-B to %s", depositAmount, runtime.TokenAmount(userLPAcc), userLPKey)

	// Quote off-chain the way a client would, using the same widening
	// integer math the on-chain engine uses (floor(amountIn*ratioOut/
	// ratioIn)). Unlike solroute's own main.go, FRT's swap enforces an
	// exact-output contract (§4.3.2) rather than a slippage-tolerant
	// minimum, so the quoted amount is sent as expected_out verbatim.
	grossOut := math.NewInt(int64(swapAmountIn)).Mul(math.NewInt(int64(ratioUSDC))).Quo(math.NewInt(int64(ratioSOL))).Int64()

	swapData := make([]byte, 1+32+8+8+32)
	swapData[0] = program.TagSwap
	copy(swapData[1:33], solMintUsed[:])
	putU64(swapData[33:41], swapAmountIn)
	putU64(swapData[41:49], uint64(grossOut))
	copy(swapData[49:81], bundle.PoolState[:])
	swapMetas := solana.AccountMetaSlice{
		meta(user, true, true),
		meta(bundle.PoolState, true, false),
		meta(solMintUsed, false, false),
		meta(userSolKey, true, false),
		meta(solVault, true, false),
		meta(usdcVault, true, false),
		meta(userUsdcKey, true, false),
		meta(bundle.PoolState, false, false),
		meta(sysStateKey, false, false),
		meta(solana.TokenProgramID, false, false),
		meta(solana.SysVarClockPubkey, false, false),
	}
	if _, _, err := d.Dispatch(swapData, swapMetas); err != nil {
		log.Fatalf("Swap failed: %v", err)
	}

	log.Printf("🔁 swapped %d lamports SOL for %d USDC (expected exactly %d)",
		swapAmountIn, runtime.TokenAmount(userUsdcAcc), grossOut)
	log.Printf("😈 remaining SOL token balance: %d, wallet lamports after fees: %d",
		runtime.TokenAmount(userSolAcc), userWalletAcc.Lamports)

	_, versionData, err := d.Dispatch([]byte{program.TagGetVersion}, solana.AccountMetaSlice{})
	if err != nil {
		log.Fatalf("GetVersion failed: %v", err)
	}
	log.Printf("🏁 demo complete, protocol version %s (discriminator %x)",
		program.Version(), versionData[:8])
}
