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
	"github.com/holiman/uint256"
)

// LiquidityInjector deposits a share of each depositor's idle token balances
// into a lending pool.
type LiquidityInjector struct {
	tokens ledger.Tokens
	log    logger.Logger
}

// MakeLiquidityInjector creates an injector moving tokens through the given ledger.
func MakeLiquidityInjector(cfg *config.Config, tokens ledger.Tokens) *LiquidityInjector {
	return makeLiquidityInjector(tokens, logger.NewLogger(cfg.LogLevel, "LiquidityInjector"))
}

func makeLiquidityInjector(tokens ledger.Tokens, log logger.Logger) *LiquidityInjector {
	return &LiquidityInjector{tokens: tokens, log: log}
}

// Inject deposits floor(balance * fraction / 10000) of every asset held by every
// depositor. Pairs are processed one by one, depositor-major, and every ledger
// call is confirmed before the next one is issued. Depositors without funds for
// an asset are skipped with a warning; any other failure aborts the run.
func (i *LiquidityInjector) Inject(ctx context.Context, depositors []ledger.Signer, assets []ledger.Asset, pool ledger.Pool, fraction fixedpoint.BasisPoints) error {
	if fraction > fixedpoint.PercentageFactor {
		return errors.Wrapf(ErrInvalidFraction, "deposit fraction %d", fraction)
	}
	return Each(ctx, depositors, func(ctx context.Context, _ int, depositor ledger.Signer) error {
		return Each(ctx, assets, func(ctx context.Context, _ int, asset ledger.Asset) error {
			return i.deposit(ctx, depositor, asset, pool, fraction)
		})
	})
}

func (i *LiquidityInjector) deposit(ctx context.Context, depositor ledger.Signer, asset ledger.Asset, pool ledger.Pool, fraction fixedpoint.BasisPoints) error {
	actor := depositor.Address()
	balance, err := i.tokens.BalanceOf(ctx, asset.Address, actor)
	if err != nil {
		return newOperationError("balanceOf", actor, asset.Address, err)
	}
	if balance.IsZero() {
		i.log.Warningf("Depositor %v does not have funds for %v token", actor, i.symbol(ctx, asset))
		return nil
	}

	// the allowance is reset first; some tokens refuse to change a non-zero allowance
	spender := pool.Address()
	if err = i.tokens.Approve(ctx, depositor, asset.Address, spender, new(uint256.Int)); err != nil {
		return newOperationError("approve", actor, asset.Address, err)
	}
	if err = i.tokens.Approve(ctx, depositor, asset.Address, spender, fixedpoint.MaxUint256.Clone()); err != nil {
		return newOperationError("approve", actor, asset.Address, err)
	}

	amount, err := fixedpoint.PercentMul(balance, fraction)
	if err != nil {
		return newOperationError("deposit", actor, asset.Address, err)
	}
	if err = pool.Deposit(ctx, depositor, asset.Address, amount, actor, ledger.NoReferral); err != nil {
		return newOperationError("deposit", actor, asset.Address, err)
	}
	i.log.Infof("Depositor %v deposited %v of %v", actor, amount, asset)
	return nil
}

// symbol names asset for log messages, falling back to its address.
func (i *LiquidityInjector) symbol(ctx context.Context, asset ledger.Asset) string {
	if asset.Symbol != "" {
		return asset.Symbol
	}
	symbol, err := i.tokens.Symbol(ctx, asset.Address)
	if err != nil || symbol == "" {
		return asset.Address.Hex()
	}
	return symbol
}
