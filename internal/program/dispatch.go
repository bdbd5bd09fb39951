package program

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/errs"
	"github.com/solana-zh/frt/internal/runtime"
)

// Dispatcher routes a parsed instruction tag to its handler against a
// single shared ledger, mirroring the teacher's single entry-point router
// (pkg/api.go) but keyed on FRT's one-byte tag instead of a pool-type enum.
type Dispatcher struct {
	ProgramID solana.PublicKey
	Ledger    *runtime.Ledger
}

// Dispatch parses the leading tag byte, decodes its payload, and invokes
// the matching handler. Every persistent mutation a handler makes happens
// directly on the ledger's account map; a non-nil error means the whole
// instruction is considered to have aborted (§5: "Any error in a handler
// MUST abort"). The returned []byte is instruction return data — nil for
// every state-changing instruction, non-nil only for the read-only
// GetVersion (§B/C's packed version triple).
func (d *Dispatcher) Dispatch(data []byte, metas solana.AccountMetaSlice) (string, []byte, error) {
	if len(data) < 1 {
		return "", nil, errs.New(errs.InvalidAccountData, "empty instruction data")
	}
	tag := data[0]
	payload := data[1:]

	ctx := &Context{ProgramID: d.ProgramID, Ledger: d.Ledger, Metas: metas}

	switch tag {
	case TagInitializeProgram:
		p, err := decodeInitializeProgram(payload)
		if err != nil {
			return "", nil, err
		}
		return "InitializeProgram", nil, handleInitializeProgram(ctx, p)

	case TagInitializePool:
		p, err := decodeInitializePool(payload)
		if err != nil {
			return "", nil, err
		}
		return "InitializePool", nil, handleInitializePool(ctx, p)

	case TagDeposit:
		p, err := decodeDepositWithdraw(payload, "Deposit")
		if err != nil {
			return "", nil, err
		}
		return "Deposit", nil, handleDeposit(ctx, p)

	case TagWithdraw:
		p, err := decodeDepositWithdraw(payload, "Withdraw")
		if err != nil {
			return "", nil, err
		}
		return "Withdraw", nil, handleWithdraw(ctx, p)

	case TagSwap:
		p, err := decodeSwap(payload)
		if err != nil {
			return "", nil, err
		}
		return "Swap", nil, handleSwap(ctx, p)

	case TagPauseSystem:
		p, err := decodePauseSystem(payload)
		if err != nil {
			return "", nil, err
		}
		return "PauseSystem", nil, handlePauseSystem(ctx, p)

	case TagUnpauseSystem:
		return "UnpauseSystem", nil, handleUnpauseSystem(ctx)

	case TagGetVersion:
		out, err := handleGetVersion(ctx)
		return "GetVersion", out, err

	case TagWithdrawTreasuryFees:
		p, err := decodeWithdrawTreasuryFees(payload)
		if err != nil {
			return "", nil, err
		}
		return "WithdrawTreasuryFees", nil, handleWithdrawTreasuryFees(ctx, p)

	case TagConsolidatePoolFees:
		p, err := decodeConsolidatePoolFees(payload)
		if err != nil {
			return "", nil, err
		}
		return "ConsolidatePoolFees", nil, handleConsolidatePoolFees(ctx, p)

	case TagPausePool:
		p, err := decodePauseUnpausePool(payload, "PausePool")
		if err != nil {
			return "", nil, err
		}
		return "PausePool", nil, handlePausePool(ctx, p)

	case TagUnpausePool:
		p, err := decodePauseUnpausePool(payload, "UnpausePool")
		if err != nil {
			return "", nil, err
		}
		return "UnpausePool", nil, handleUnpausePool(ctx, p)

	case TagSetSwapOwnerOnly:
		p, err := decodeSetSwapOwnerOnly(payload)
		if err != nil {
			return "", nil, err
		}
		return "SetSwapOwnerOnly", nil, handleSetSwapOwnerOnly(ctx, p)

	case TagUpdatePoolFees:
		p, err := decodeUpdatePoolFees(payload)
		if err != nil {
			return "", nil, err
		}
		return "UpdatePoolFees", nil, handleUpdatePoolFees(ctx, p)

	case TagDonateSol:
		p, err := decodeDonateSol(payload)
		if err != nil {
			return "", nil, err
		}
		return "DonateSol", nil, handleDonateSol(ctx, p)

	case TagProcessAdminChange:
		p, err := decodeProcessAdminChange(payload)
		if err != nil {
			return "", nil, err
		}
		return "ProcessAdminChange", nil, handleProcessAdminChange(ctx, p)

	default:
		return "", nil, errs.New(errs.InvalidAccountData, "unknown instruction tag %d", tag)
	}
}

// upgradeAuthorityFrom reads the 32-byte upgrade authority out of a
// simplified program-data account: Data[0:32], nothing else modeled.
func upgradeAuthorityFrom(acc *runtime.Account) solana.PublicKey {
	var k solana.PublicKey
	copy(k[:], acc.Data[0:32])
	return k
}
