package liquidity

import (
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/runtime"
	"github.com/solana-zh/frt/internal/state"
)

func setup(t *testing.T) (*runtime.Ledger, *state.PoolState, *runtime.Account, *runtime.Account, *runtime.Account) {
	t.Helper()
	ledger := runtime.NewLedger(0)
	mintA := solana.NewWallet().PublicKey()
	ps := &state.PoolState{TokenAMint: mintA, TokenBMint: solana.NewWallet().PublicKey()}

	user, err := ledger.NewTokenAccount(solana.NewWallet().PublicKey(), mintA, solana.NewWallet().PublicKey(), 1_000_000)
	if err != nil {
		t.Fatal(err)
	}
	vault, err := ledger.NewTokenAccount(solana.NewWallet().PublicKey(), mintA, solana.NewWallet().PublicKey(), 0)
	if err != nil {
		t.Fatal(err)
	}
	lp, err := ledger.NewTokenAccount(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), 0)
	if err != nil {
		t.Fatal(err)
	}
	return ledger, ps, user, vault, lp
}

func TestResolveSide(t *testing.T) {
	ps := &state.PoolState{TokenAMint: solana.NewWallet().PublicKey(), TokenBMint: solana.NewWallet().PublicKey()}
	side, err := ResolveSide(ps, ps.TokenAMint)
	if err != nil || side != SideA {
		t.Fatalf("got %v, %v", side, err)
	}
	side, err = ResolveSide(ps, ps.TokenBMint)
	if err != nil || side != SideB {
		t.Fatalf("got %v, %v", side, err)
	}
	if _, err := ResolveSide(ps, solana.NewWallet().PublicKey()); err == nil {
		t.Fatal("expected error for foreign mint")
	}
}

// TestDepositWithdrawRoundTrip exercises §8.2 law #8: depositing then fully
// withdrawing the same amount returns the user to their starting balance.
func TestDepositWithdrawRoundTrip(t *testing.T) {
	_, ps, user, vault, lp := setup(t)

	if err := Deposit(DepositParams{
		Pool: ps, Side: SideA, Amount: 100_000,
		UserTokenAccount: user, VaultTokenAccount: vault, UserLPTokenAccount: lp,
		LiquidityFee: 13_000,
	}); err != nil {
		t.Fatal(err)
	}
	if runtime.TokenAmount(user) != 900_000 || runtime.TokenAmount(vault) != 100_000 || runtime.TokenAmount(lp) != 100_000 {
		t.Fatalf("unexpected balances after deposit: user=%d vault=%d lp=%d",
			runtime.TokenAmount(user), runtime.TokenAmount(vault), runtime.TokenAmount(lp))
	}
	if ps.TotalTokenALiquidity != 100_000 {
		t.Fatalf("got %d", ps.TotalTokenALiquidity)
	}
	if ps.CollectedLiquidityFees != 13_000 || ps.TotalSolFeesCollected != 13_000 {
		t.Fatalf("got %+v", ps)
	}

	if err := Withdraw(WithdrawParams{
		Pool: ps, Side: SideA, LPAmount: 100_000,
		UserTokenAccount: user, VaultTokenAccount: vault, UserLPTokenAccount: lp,
		LiquidityFee: 13_000,
	}); err != nil {
		t.Fatal(err)
	}
	if runtime.TokenAmount(user) != 1_000_000 || runtime.TokenAmount(vault) != 0 || runtime.TokenAmount(lp) != 0 {
		t.Fatalf("unexpected balances after withdraw: user=%d vault=%d lp=%d",
			runtime.TokenAmount(user), runtime.TokenAmount(vault), runtime.TokenAmount(lp))
	}
	if ps.TotalTokenALiquidity != 0 {
		t.Fatalf("got %d", ps.TotalTokenALiquidity)
	}
	if ps.CollectedLiquidityFees != 26_000 || ps.TotalSolFeesCollected != 26_000 {
		t.Fatalf("fee counters should have accrued twice, got %+v", ps)
	}
}

func TestDepositRejectsOverMaxDepositAmount(t *testing.T) {
	_, ps, user, vault, lp := setup(t)
	ps.MaxDepositAmount = 50_000

	err := Deposit(DepositParams{
		Pool: ps, Side: SideA, Amount: 100_000,
		UserTokenAccount: user, VaultTokenAccount: vault, UserLPTokenAccount: lp,
	})
	if err == nil {
		t.Fatal("expected pool deposit-limit error")
	}
}

func TestWithdrawRejectsInsufficientPoolLiquidity(t *testing.T) {
	_, ps, user, vault, lp := setup(t)
	ps.TotalTokenALiquidity = 10

	err := Withdraw(WithdrawParams{
		Pool: ps, Side: SideA, LPAmount: 100,
		UserTokenAccount: user, VaultTokenAccount: vault, UserLPTokenAccount: lp,
	})
	if err == nil {
		t.Fatal("expected insufficient-liquidity error")
	}
}
