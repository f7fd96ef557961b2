// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package simulation

import (
	"context"

	"github.com/0xsoniclabs/marketsim/config"
	"github.com/0xsoniclabs/marketsim/ledger"
	"github.com/0xsoniclabs/marketsim/logger"
	"github.com/0xsoniclabs/marketsim/utils/fixedpoint"
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// BorrowSimulator opens variable-rate borrow positions that use up a share of
// each borrower's borrowing headroom, spread evenly over a set of assets.
type BorrowSimulator struct {
	tokens            ledger.Tokens
	continueOnFailure bool
	log               logger.Logger
}

// MakeBorrowSimulator creates a simulator; cfg.ContinueOnFailure makes a failed
// borrower not stop the remaining ones.
func MakeBorrowSimulator(cfg *config.Config, tokens ledger.Tokens) *BorrowSimulator {
	return makeBorrowSimulator(tokens, cfg.ContinueOnFailure, logger.NewLogger(cfg.LogLevel, "BorrowSimulator"))
}

func makeBorrowSimulator(tokens ledger.Tokens, continueOnFailure bool, log logger.Logger) *BorrowSimulator {
	return &BorrowSimulator{tokens: tokens, continueOnFailure: continueOnFailure, log: log}
}

// Borrow processes borrowers one by one. For each it reads the current account
// data, splits the available borrow power evenly over assets (the remainder is
// dropped) and borrows, per asset, fraction of the share converted into whole
// token units at the current oracle price.
func (s *BorrowSimulator) Borrow(ctx context.Context, borrowers []ledger.Signer, assets []ledger.Asset, pool ledger.Pool, oracle ledger.PriceOracle, fraction fixedpoint.BasisPoints) error {
	if fraction > fixedpoint.PercentageFactor {
		return errors.Wrapf(ErrInvalidFraction, "borrow fraction %d", fraction)
	}
	if len(assets) == 0 {
		return nil
	}

	var failures []error
	err := Each(ctx, borrowers, func(ctx context.Context, _ int, borrower ledger.Signer) error {
		err := s.borrow(ctx, borrower, assets, pool, oracle, fraction)
		if err == nil || !s.continueOnFailure || ctx.Err() != nil {
			return err
		}
		s.log.Errorf("Borrower %v skipped: %v", borrower.Address(), err)
		failures = append(failures, err)
		return nil
	})
	if err != nil {
		failures = append(failures, err)
	}
	if len(failures) == 1 {
		return failures[0]
	}
	return errors.Join(failures...)
}

func (s *BorrowSimulator) borrow(ctx context.Context, borrower ledger.Signer, assets []ledger.Asset, pool ledger.Pool, oracle ledger.PriceOracle, fraction fixedpoint.BasisPoints) error {
	actor := borrower.Address()
	data, err := pool.GetUserAccountData(ctx, actor)
	if err != nil {
		return newOperationError("getUserAccountData", actor, common.Address{}, err)
	}
	perAsset := new(uint256.Int).Div(data.AvailableBorrowPower, uint256.NewInt(uint64(len(assets))))

	return Each(ctx, assets, func(ctx context.Context, _ int, asset ledger.Asset) error {
		decimals, err := s.tokens.Decimals(ctx, asset.Address)
		if err != nil {
			return newOperationError("decimals", actor, asset.Address, err)
		}
		price, err := oracle.GetAssetPrice(ctx, asset.Address)
		if err != nil {
			return newOperationError("getAssetPrice", actor, asset.Address, err)
		}
		amount, err := BorrowAmount(perAsset, price, decimals, fraction)
		if err != nil {
			return newOperationError("borrow", actor, asset.Address, err)
		}
		if err = pool.Borrow(ctx, borrower, asset.Address, amount, ledger.RateModeVariable, ledger.NoReferral, actor); err != nil {
			return newOperationError("borrow", actor, asset.Address, err)
		}
		s.log.Infof("Borrower %v borrowed %v of %v", actor, amount, asset)
		return nil
	})
}

// BorrowAmount converts a quote-currency share into a token amount:
// floor(floor(share / price) * fraction / 10000) whole units, scaled by
// 10^decimals. Sub-unit remainders are dropped.
func BorrowAmount(share, price *uint256.Int, decimals uint8, fraction fixedpoint.BasisPoints) (*uint256.Int, error) {
	if price.IsZero() {
		return nil, ErrZeroPrice
	}
	units := new(uint256.Int).Div(share, price)
	units, err := fixedpoint.PercentMul(units, fraction)
	if err != nil {
		return nil, err
	}
	return fixedpoint.ParseUnits(units, decimals)
}
