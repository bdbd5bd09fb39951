// Package runtime is a minimal in-memory stand-in for "the host runtime's
// account model" that spec §1 places out of scope as a trusted primitive
// (lamport mutation, rent calculation, signer verification). It exists only
// so internal/program's dispatcher is callable and testable without an
// actual validator — the same role solroute's pkg/sol.Client plays for a
// real RPC endpoint, just facing a test double instead of a network.
package runtime

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/errs"
)

// Account is a program-owned (or foreign) account: lamports plus data.
type Account struct {
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte
}

// Ledger is the full set of accounts visible to one simulated validator.
// It is not safe for concurrent use across goroutines without external
// synchronization, mirroring a single transaction's exclusive access.
type Ledger struct {
	accounts      map[solana.PublicKey]*Account
	signers       map[solana.PublicKey]bool
	clockUnixTime int64
}

// NewLedger creates an empty ledger with the clock at the given Unix time.
func NewLedger(now int64) *Ledger {
	return &Ledger{
		accounts:      make(map[solana.PublicKey]*Account),
		signers:       make(map[solana.PublicKey]bool),
		clockUnixTime: now,
	}
}

// Now returns the simulated SysVarClock's current Unix timestamp.
func (l *Ledger) Now() int64 { return l.clockUnixTime }

// SetNow advances (or rewinds, for tests) the simulated clock.
func (l *Ledger) SetNow(t int64) { l.clockUnixTime = t }

// SetSigner marks a key as having signed the current transaction. Cleared
// per-instruction by the caller between dispatches in tests that reuse one
// ledger across several calls with different signers.
func (l *Ledger) SetSigner(key solana.PublicKey, signed bool) {
	if signed {
		l.signers[key] = true
	} else {
		delete(l.signers, key)
	}
}

// IsSigner reports whether key signed the current transaction.
func (l *Ledger) IsSigner(key solana.PublicKey) bool { return l.signers[key] }

// CreateAccount materializes a new program-owned account. Fails if one
// already exists at key, mirroring the host's create_account CPI refusing
// to reinitialize a funded account.
func (l *Ledger) CreateAccount(key, owner solana.PublicKey, dataLen int, lamports uint64) (*Account, error) {
	if _, ok := l.accounts[key]; ok {
		return nil, errs.New(errs.AlreadyInitialized, "account %s already exists", key)
	}
	acc := &Account{Owner: owner, Lamports: lamports, Data: make([]byte, dataLen)}
	l.accounts[key] = acc
	return acc, nil
}

// Get returns the account at key, or nil if it does not exist.
func (l *Ledger) Get(key solana.PublicKey) *Account {
	return l.accounts[key]
}

// MustGet returns the account at key or InvalidAccountData if absent.
func (l *Ledger) MustGet(key solana.PublicKey) (*Account, error) {
	acc := l.accounts[key]
	if acc == nil {
		return nil, errs.New(errs.InvalidAccountData, "account %s does not exist", key)
	}
	return acc, nil
}

// TransferLamports moves lamports directly between two accounts the program
// owns, without going through the SPL-Token primitive (§4.6.3: "direct
// lamport move, not SPL").
func (l *Ledger) TransferLamports(from, to *Account, amount uint64) error {
	if from.Lamports < amount {
		return errs.New(errs.InsufficientFunds, "account holds %d lamports, need %d", from.Lamports, amount)
	}
	from.Lamports -= amount
	to.Lamports += amount
	return nil
}

// RentExemptMinimum approximates Solana's rent-exemption floor for an
// account of the given data size: two years of rent at the network's
// per-byte-year rate, the same quantity real validators precompute.
func RentExemptMinimum(dataLen int) uint64 {
	const lamportsPerByteYear = 3480
	const exemptionYears = 2
	const accountOverheadBytes = 128
	return uint64(dataLen+accountOverheadBytes) * lamportsPerByteYear * exemptionYears
}
