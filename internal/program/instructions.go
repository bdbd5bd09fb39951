// Package program implements the Instruction Dispatch component (spec
// §6.1): tag parsing, payload decoding, account-list validation, and the
// handlers that wire every other internal package together against a
// simulated runtime.Ledger.
package program

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/frt/internal/errs"
)

// Instruction tags, per §6.1's table. Values are a flat one-byte
// discriminator, unlike internal/anchor's 8-byte sighash scheme — FRT's
// own wire format, not an Anchor program.
const (
	TagInitializeProgram    uint8 = 0
	TagInitializePool       uint8 = 1
	TagDeposit              uint8 = 2
	TagWithdraw             uint8 = 3
	TagSwap                 uint8 = 4
	TagPauseSystem          uint8 = 12
	TagUnpauseSystem        uint8 = 13
	TagGetVersion           uint8 = 14
	TagWithdrawTreasuryFees uint8 = 15
	TagConsolidatePoolFees  uint8 = 17
	TagPausePool            uint8 = 19
	TagUnpausePool          uint8 = 20
	TagSetSwapOwnerOnly     uint8 = 21
	TagUpdatePoolFees       uint8 = 22
	TagDonateSol            uint8 = 23
	TagProcessAdminChange   uint8 = 24
)

func requirePayload(data []byte, n int, what string) error {
	if len(data) < n {
		return errs.New(errs.InvalidAccountData, "%s: payload too short, need %d bytes, got %d", what, n, len(data))
	}
	return nil
}

func readPubkey(data []byte, off int) solana.PublicKey {
	var k solana.PublicKey
	copy(k[:], data[off:off+32])
	return k
}

// InitializeProgramPayload is tag 0's payload: admin_authority (32).
type InitializeProgramPayload struct {
	AdminAuthority solana.PublicKey
}

func decodeInitializeProgram(data []byte) (InitializeProgramPayload, error) {
	if err := requirePayload(data, 32, "InitializeProgram"); err != nil {
		return InitializeProgramPayload{}, err
	}
	return InitializeProgramPayload{AdminAuthority: readPubkey(data, 0)}, nil
}

// InitializePoolPayload is tag 1's payload: ratio_a (u64), ratio_b (u64),
// flags (u8).
type InitializePoolPayload struct {
	RatioA uint64
	RatioB uint64
	Flags  uint8
}

func decodeInitializePool(data []byte) (InitializePoolPayload, error) {
	if err := requirePayload(data, 17, "InitializePool"); err != nil {
		return InitializePoolPayload{}, err
	}
	return InitializePoolPayload{
		RatioA: binary.LittleEndian.Uint64(data[0:8]),
		RatioB: binary.LittleEndian.Uint64(data[8:16]),
		Flags:  data[16],
	}, nil
}

// DepositWithdrawPayload covers both tag 2 (Deposit) and tag 3 (Withdraw):
// they share the same (mint, amount, pool_id) shape.
type DepositWithdrawPayload struct {
	Mint   solana.PublicKey
	Amount uint64
	PoolID solana.PublicKey
}

func decodeDepositWithdraw(data []byte, what string) (DepositWithdrawPayload, error) {
	if err := requirePayload(data, 72, what); err != nil {
		return DepositWithdrawPayload{}, err
	}
	return DepositWithdrawPayload{
		Mint:   readPubkey(data, 0),
		Amount: binary.LittleEndian.Uint64(data[32:40]),
		PoolID: readPubkey(data, 40),
	}, nil
}

// SwapPayload is tag 4's payload: input_mint (32), amount_in (u64),
// expected_out (u64), pool_id (32).
type SwapPayload struct {
	InputMint    solana.PublicKey
	AmountIn     uint64
	ExpectedOut  uint64
	PoolID       solana.PublicKey
}

func decodeSwap(data []byte) (SwapPayload, error) {
	if err := requirePayload(data, 80, "Swap"); err != nil {
		return SwapPayload{}, err
	}
	return SwapPayload{
		InputMint:   readPubkey(data, 0),
		AmountIn:    binary.LittleEndian.Uint64(data[32:40]),
		ExpectedOut: binary.LittleEndian.Uint64(data[40:48]),
		PoolID:      readPubkey(data, 48),
	}, nil
}

// PauseSystemPayload is tag 12's payload: reason_code (u8).
type PauseSystemPayload struct {
	ReasonCode uint8
}

func decodePauseSystem(data []byte) (PauseSystemPayload, error) {
	if err := requirePayload(data, 1, "PauseSystem"); err != nil {
		return PauseSystemPayload{}, err
	}
	return PauseSystemPayload{ReasonCode: data[0]}, nil
}

// WithdrawTreasuryFeesPayload is tag 15's payload: amount (u64).
type WithdrawTreasuryFeesPayload struct {
	Amount uint64
}

func decodeWithdrawTreasuryFees(data []byte) (WithdrawTreasuryFeesPayload, error) {
	if err := requirePayload(data, 8, "WithdrawTreasuryFees"); err != nil {
		return WithdrawTreasuryFeesPayload{}, err
	}
	return WithdrawTreasuryFeesPayload{Amount: binary.LittleEndian.Uint64(data[0:8])}, nil
}

// ConsolidatePoolFeesPayload is tag 17's payload: pool_count (u8).
type ConsolidatePoolFeesPayload struct {
	PoolCount uint8
}

func decodeConsolidatePoolFees(data []byte) (ConsolidatePoolFeesPayload, error) {
	if err := requirePayload(data, 1, "ConsolidatePoolFees"); err != nil {
		return ConsolidatePoolFeesPayload{}, err
	}
	return ConsolidatePoolFeesPayload{PoolCount: data[0]}, nil
}

// PauseUnpausePoolPayload covers tags 19/20: flags (u8), pool_id (32).
type PauseUnpausePoolPayload struct {
	Flags  uint8
	PoolID solana.PublicKey
}

func decodePauseUnpausePool(data []byte, what string) (PauseUnpausePoolPayload, error) {
	if err := requirePayload(data, 33, what); err != nil {
		return PauseUnpausePoolPayload{}, err
	}
	return PauseUnpausePoolPayload{Flags: data[0], PoolID: readPubkey(data, 1)}, nil
}

// SetSwapOwnerOnlyPayload is tag 21's payload: enable (u8), designated_owner
// (32), pool_id (32).
type SetSwapOwnerOnlyPayload struct {
	Enable          bool
	DesignatedOwner solana.PublicKey
	PoolID          solana.PublicKey
}

func decodeSetSwapOwnerOnly(data []byte) (SetSwapOwnerOnlyPayload, error) {
	if err := requirePayload(data, 65, "SetSwapOwnerOnly"); err != nil {
		return SetSwapOwnerOnlyPayload{}, err
	}
	return SetSwapOwnerOnlyPayload{
		Enable:          data[0] != 0,
		DesignatedOwner: readPubkey(data, 1),
		PoolID:          readPubkey(data, 33),
	}, nil
}

// UpdatePoolFeesPayload is tag 22's payload: update_flags (u8),
// new_liquidity_fee (u64), new_swap_fee (u64).
type UpdatePoolFeesPayload struct {
	UpdateFlags     uint8
	NewLiquidityFee uint64
	NewSwapFee      uint64
}

func decodeUpdatePoolFees(data []byte) (UpdatePoolFeesPayload, error) {
	if err := requirePayload(data, 17, "UpdatePoolFees"); err != nil {
		return UpdatePoolFeesPayload{}, err
	}
	return UpdatePoolFeesPayload{
		UpdateFlags:     data[0],
		NewLiquidityFee: binary.LittleEndian.Uint64(data[1:9]),
		NewSwapFee:      binary.LittleEndian.Uint64(data[9:17]),
	}, nil
}

// DonateSolPayload is tag 23's payload: amount (u64), message
// (u32-length-prefixed UTF-8, <= 200 chars).
type DonateSolPayload struct {
	Amount  uint64
	Message string
}

func decodeDonateSol(data []byte) (DonateSolPayload, error) {
	if err := requirePayload(data, 12, "DonateSol"); err != nil {
		return DonateSolPayload{}, err
	}
	amount := binary.LittleEndian.Uint64(data[0:8])
	msgLen := binary.LittleEndian.Uint32(data[8:12])
	if err := requirePayload(data, 12+int(msgLen), "DonateSol message"); err != nil {
		return DonateSolPayload{}, err
	}
	return DonateSolPayload{Amount: amount, Message: string(data[12 : 12+int(msgLen)])}, nil
}

// ProcessAdminChangePayload is tag 24's payload: new_admin (32).
type ProcessAdminChangePayload struct {
	NewAdmin solana.PublicKey
}

func decodeProcessAdminChange(data []byte) (ProcessAdminChangePayload, error) {
	if err := requirePayload(data, 32, "ProcessAdminChange"); err != nil {
		return ProcessAdminChangePayload{}, err
	}
	return ProcessAdminChangePayload{NewAdmin: readPubkey(data, 0)}, nil
}
