package program

import (
	"github.com/solana-zh/frt/internal/config"
	"github.com/solana-zh/frt/internal/control"
	"github.com/solana-zh/frt/internal/errs"
	"github.com/solana-zh/frt/internal/state"
	"github.com/solana-zh/frt/internal/treasury"
)

// handleWithdrawTreasuryFees implements tag 15 (§4.8). Accounts:
// [0] admin signer, [1] system_state, [2] main_treasury (writable),
// [3] destination (writable), [4] clock, [5] system_program.
func handleWithdrawTreasuryFees(c *Context, p WithdrawTreasuryFeesPayload) error {
	if err := c.RequireCount(6); err != nil {
		return err
	}
	signer, err := c.Signer(0)
	if err != nil {
		return err
	}
	sysStateAcc, err := c.Readonly(1)
	if err != nil {
		return err
	}
	treasuryAcc, err := c.Writable(2)
	if err != nil {
		return err
	}
	destAcc, err := c.Writable(3)
	if err != nil {
		return err
	}

	sys := &state.SystemState{}
	if err := sys.Decode(sysStateAcc.Data); err != nil {
		return err
	}
	if err := control.CheckAdminSigner(sys, signer); err != nil {
		return err
	}

	mt := &state.MainTreasuryState{}
	if err := mt.Decode(treasuryAcc.Data); err != nil {
		return err
	}

	amount, newLastWithdrawal, err := treasury.CheckAndApply(treasury.WithdrawalLimiterState{
		TotalBalance:            treasuryAcc.Lamports,
		RentExemptMinimum:       mt.RentExemptMinimum,
		LastWithdrawalTimestamp: mt.LastWithdrawalTimestamp,
	}, p.Amount, c.Ledger.Now(), sys.IsPaused)
	if err != nil {
		return err
	}

	if err := c.Ledger.TransferLamports(treasuryAcc, destAcc, amount); err != nil {
		return err
	}
	mt.TotalBalance = treasuryAcc.Lamports
	mt.TotalWithdrawn += amount
	mt.WithdrawalCount++
	mt.LastWithdrawalTimestamp = newLastWithdrawal
	mt.LastUpdateTimestamp = c.Ledger.Now()
	copy(treasuryAcc.Data, mt.Encode())
	return nil
}

// handleConsolidatePoolFees implements tag 17 (§4.6). Accounts:
// [0] admin signer, [1] system_state, [2] main_treasury (writable),
// [3] clock, then pool_count pool-state accounts (writable) starting at 4.
func handleConsolidatePoolFees(c *Context, p ConsolidatePoolFeesPayload) error {
	if err := treasury.CheckBatchSize(int(p.PoolCount)); err != nil {
		return err
	}
	if err := c.RequireCount(4 + int(p.PoolCount)); err != nil {
		return err
	}
	signer, err := c.Signer(0)
	if err != nil {
		return err
	}
	sysStateAcc, err := c.Readonly(1)
	if err != nil {
		return err
	}
	treasuryAcc, err := c.Writable(2)
	if err != nil {
		return err
	}

	sys := &state.SystemState{}
	if err := sys.Decode(sysStateAcc.Data); err != nil {
		return err
	}
	if err := control.CheckAdminSigner(sys, signer); err != nil {
		return err
	}

	mt := &state.MainTreasuryState{}
	if err := mt.Decode(treasuryAcc.Data); err != nil {
		return err
	}

	for i := 0; i < int(p.PoolCount); i++ {
		poolAcc, err := c.Writable(4 + i)
		if err != nil {
			return err
		}

		ps := &state.PoolState{}
		if err := ps.Decode(poolAcc.Data); err != nil {
			return err
		}
		if !treasury.IsEligible(ps, sys.IsPaused) {
			continue
		}

		// Buffer-then-lamport-move (§4.6.4): ps already holds the decoded
		// buffer; ConsolidatePool mutates it in place before any lamports
		// move, and the re-encode happens only after the transfer below.
		result, err := treasury.ConsolidatePool(ps, poolAcc.Lamports, c.Ledger.Now())
		if err != nil {
			return err
		}
		if result.Skipped {
			continue
		}

		if err := c.Ledger.TransferLamports(poolAcc, treasuryAcc, result.Taken); err != nil {
			return err
		}
		copy(poolAcc.Data, ps.Encode())

		mt.ConsolidationCount++
		mt.TotalBalance = treasuryAcc.Lamports
		mt.TotalLiquidityFees += result.LiquidityTaken
		mt.TotalSwapFees += result.SwapTaken
	}

	mt.LastUpdateTimestamp = c.Ledger.Now()
	copy(treasuryAcc.Data, mt.Encode())
	return nil
}

// handleDonateSol implements tag 23. Accounts: [0] donor signer,
// [1] main_treasury (writable), [2] system_state, [3] clock.
func handleDonateSol(c *Context, p DonateSolPayload) error {
	if err := c.RequireCount(4); err != nil {
		return err
	}
	donorAcc, _, err := c.SignerWritable(0)
	if err != nil {
		return err
	}
	treasuryAcc, err := c.Writable(1)
	if err != nil {
		return err
	}
	sysStateAcc, err := c.Readonly(2)
	if err != nil {
		return err
	}

	sys := &state.SystemState{}
	if err := sys.Decode(sysStateAcc.Data); err != nil {
		return err
	}
	if err := control.CheckNotPaused(sys); err != nil {
		return err
	}

	if p.Amount < config.MinDonationLamports {
		return errs.New(errs.InvalidDonationAmount, "donation %d is below MIN_DONATION_AMOUNT %d", p.Amount, config.MinDonationLamports)
	}
	if len(p.Message) > config.MaxDonationMessageChars {
		return errs.New(errs.InvalidDonationAmount, "donation message is %d chars, exceeds %d", len(p.Message), config.MaxDonationMessageChars)
	}

	if err := c.Ledger.TransferLamports(donorAcc, treasuryAcc, p.Amount); err != nil {
		return err
	}

	mt := &state.MainTreasuryState{}
	if err := mt.Decode(treasuryAcc.Data); err != nil {
		return err
	}
	mt.TotalBalance = treasuryAcc.Lamports
	mt.TotalDonations += p.Amount
	mt.DonationCount++
	mt.LastUpdateTimestamp = c.Ledger.Now()
	copy(treasuryAcc.Data, mt.Encode())
	return nil
}
