package runtime

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/errs"
)

// SPL-Token account field offsets (mint[0:32], owner[32:64], amount[64:72]):
// the same layout CPMMPool.Quote reads vault balances from via
// `result.Data.GetBinary()[64:72]`. The token program itself is out of
// scope (spec §1 treats it as a trusted primitive); this package only models
// enough of its account layout for transfer/mint_to/burn to be simulated.
const (
	tokenAccountMintOffset   = 0
	tokenAccountOwnerOffset  = 32
	tokenAccountAmountOffset = 64
	TokenAccountDataLen      = 165
)

// NewTokenAccount creates a simulated SPL token account owned by the token
// program, with the given mint/owner/initial balance.
func (l *Ledger) NewTokenAccount(key, mint, owner solana.PublicKey, amount uint64) (*Account, error) {
	acc, err := l.CreateAccount(key, solana.TokenProgramID, TokenAccountDataLen, 0)
	if err != nil {
		return nil, err
	}
	copy(acc.Data[tokenAccountMintOffset:tokenAccountMintOffset+32], mint[:])
	copy(acc.Data[tokenAccountOwnerOffset:tokenAccountOwnerOffset+32], owner[:])
	binary.LittleEndian.PutUint64(acc.Data[tokenAccountAmountOffset:tokenAccountAmountOffset+8], amount)
	return acc, nil
}

// TokenAmount reads the balance field of a simulated SPL token account.
func TokenAmount(acc *Account) uint64 {
	return binary.LittleEndian.Uint64(acc.Data[tokenAccountAmountOffset : tokenAccountAmountOffset+8])
}

func setTokenAmount(acc *Account, v uint64) {
	binary.LittleEndian.PutUint64(acc.Data[tokenAccountAmountOffset:tokenAccountAmountOffset+8], v)
}

// TokenTransfer moves `amount` tokens between two simulated token accounts,
// standing in for the SPL `transfer` instruction signed by the from
// account's authority (checked by the caller against supplied signer
// seeds, per spec §1's "trusted primitive" framing).
func TokenTransfer(from, to *Account, amount uint64) error {
	bal := TokenAmount(from)
	if bal < amount {
		return errs.New(errs.InsufficientFunds, "token account holds %d, need %d", bal, amount)
	}
	setTokenAmount(from, bal-amount)
	setTokenAmount(to, TokenAmount(to)+amount)
	return nil
}

// TokenMintTo increases a token account's balance, standing in for SPL
// `mint_to` signed by the mint authority (the pool PDA, per §4.4.1).
func TokenMintTo(to *Account, amount uint64) {
	setTokenAmount(to, TokenAmount(to)+amount)
}

// TokenBurn decreases a token account's balance, standing in for SPL `burn`.
func TokenBurn(from *Account, amount uint64) error {
	bal := TokenAmount(from)
	if bal < amount {
		return errs.New(errs.InsufficientFunds, "token account holds %d, need %d to burn", bal, amount)
	}
	setTokenAmount(from, bal-amount)
	return nil
}
