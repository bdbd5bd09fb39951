package swap

import "testing"

func TestQuote(t *testing.T) {
	// Scenario #1 in spec §8.4: 0.5 SOL (9 dec) -> 160 USDC (6 dec) pool,
	// ratio anchored 1 SOL = 160 USDC.
	// ratioIn (SOL side) = 1_000_000_000, ratioOut (USDC side) = 160_000_000.
	got, err := Quote(500_000_000, 160_000_000, 1_000_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OutputBasisPoints != 80_000_000 {
		t.Fatalf("got %d, want 80_000_000", got.OutputBasisPoints)
	}
	if got.RemainderNonZero {
		t.Fatalf("expected no remainder")
	}
}

func TestQuoteZeroInput(t *testing.T) {
	_, err := Quote(0, 160_000_000, 1_000_000_000)
	if err == nil {
		t.Fatal("expected error for zero input")
	}
}

func TestQuoteTruncation(t *testing.T) {
	// Scenario #3: 1 ABC (9 dec) = 1 XYZ (0 dec); swapping less than a whole
	// ABC should truncate to 0 XYZ out.
	got, err := Quote(999_999_999, 1, 1_000_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OutputBasisPoints != 0 {
		t.Fatalf("got %d, want 0", got.OutputBasisPoints)
	}
	if !got.RemainderNonZero {
		t.Fatal("expected a non-zero remainder")
	}
	if err := CheckDustPolicy(got, true); err == nil {
		t.Fatal("expected StrictRatioViolation with exact-exchange-required set")
	}
	if err := CheckDustPolicy(got, false); err != nil {
		t.Fatalf("unexpected error without exact-exchange-required: %v", err)
	}
}

func TestCheckExactness(t *testing.T) {
	got, err := Quote(500_000_000, 160_000_000, 1_000_000_000)
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckExactness(got, 80_000_000); err != nil {
		t.Fatalf("expected match: %v", err)
	}
	if err := CheckExactness(got, 79_999_999); err == nil {
		t.Fatal("expected AmountMismatch")
	}
}
