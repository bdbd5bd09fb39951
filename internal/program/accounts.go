package program

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/errs"
	"github.com/solana-zh/frt/internal/runtime"
)

// Context is one instruction's execution environment: the account-metas
// list supplied by the caller (order fixed per §6.1) plus the ledger those
// keys resolve against. Handlers never touch the ledger's map directly —
// every lookup goes through Context so required writable/signer flags are
// enforced uniformly (§5's "Shared-resource policy").
type Context struct {
	ProgramID solana.PublicKey
	Ledger    *runtime.Ledger
	Metas     solana.AccountMetaSlice
}

// at returns the i'th supplied account meta, failing with
// NotEnoughAccountKeys if the caller passed too few.
func (c *Context) at(i int) (*solana.AccountMeta, error) {
	if i >= len(c.Metas) {
		return nil, errs.New(errs.NotEnoughAccountKeys, "instruction expects at least %d accounts, got %d", i+1, len(c.Metas))
	}
	return c.Metas[i], nil
}

// Key returns the i'th account's public key without resolving it against
// the ledger (used for pass-through pubkeys like the donation destination).
func (c *Context) Key(i int) (solana.PublicKey, error) {
	m, err := c.at(i)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return m.PublicKey, nil
}

// Signer resolves the i'th account and requires it to be a signer.
func (c *Context) Signer(i int) (solana.PublicKey, error) {
	m, err := c.at(i)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if !m.IsSigner {
		return solana.PublicKey{}, errs.New(errs.Unauthorized, "account %d (%s) must be a signer", i, m.PublicKey)
	}
	return m.PublicKey, nil
}

// Writable resolves the i'th account's backing runtime.Account and requires
// the caller to have marked it writable — the core's own defense against
// the "required writable account passed read-only" integration error §5
// calls out, surfaced as FeeValidationFailed rather than a silent no-op.
func (c *Context) Writable(i int) (*runtime.Account, error) {
	m, err := c.at(i)
	if err != nil {
		return nil, err
	}
	if !m.IsWritable {
		return nil, errs.New(errs.FeeValidationFailed, "account %d (%s) must be writable", i, m.PublicKey)
	}
	acc := c.Ledger.Get(m.PublicKey)
	if acc == nil {
		return nil, errs.New(errs.InvalidAccountData, "account %d (%s) does not exist", i, m.PublicKey)
	}
	return acc, nil
}

// Readonly resolves the i'th account's backing runtime.Account with no
// writability requirement.
func (c *Context) Readonly(i int) (*runtime.Account, error) {
	m, err := c.at(i)
	if err != nil {
		return nil, err
	}
	acc := c.Ledger.Get(m.PublicKey)
	if acc == nil {
		return nil, errs.New(errs.InvalidAccountData, "account %d (%s) does not exist", i, m.PublicKey)
	}
	return acc, nil
}

// SignerWritable resolves the i'th account, requiring both that it signed
// the transaction and that the caller marked it writable — used for a
// fee-paying signer whose lamport balance a handler is about to debit.
func (c *Context) SignerWritable(i int) (*runtime.Account, solana.PublicKey, error) {
	m, err := c.at(i)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	if !m.IsSigner {
		return nil, solana.PublicKey{}, errs.New(errs.Unauthorized, "account %d (%s) must be a signer", i, m.PublicKey)
	}
	if !m.IsWritable {
		return nil, solana.PublicKey{}, errs.New(errs.FeeValidationFailed, "account %d (%s) must be writable", i, m.PublicKey)
	}
	acc := c.Ledger.Get(m.PublicKey)
	if acc == nil {
		return nil, solana.PublicKey{}, errs.New(errs.InvalidAccountData, "account %d (%s) does not exist", i, m.PublicKey)
	}
	return acc, m.PublicKey, nil
}

// RequireCount fails NotEnoughAccountKeys if fewer than n accounts were
// supplied — the coarse check §6.1's "Account count" column documents per
// instruction, run before any per-account resolution.
func (c *Context) RequireCount(n int) error {
	if len(c.Metas) < n {
		return errs.New(errs.NotEnoughAccountKeys, "instruction requires %d accounts, got %d", n, len(c.Metas))
	}
	return nil
}
