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

package main

import (
	"context"

	"github.com/0xsoniclabs/marketsim/config"
	"github.com/0xsoniclabs/marketsim/ledger"
	"github.com/0xsoniclabs/marketsim/logger"
	"github.com/ethereum/go-ethereum/common"
)

// openLedger connects to the configured node or, for dry runs, builds an
// in-memory ledger from the scenario.
func openLedger(ctx context.Context, cfg *config.Config) (ledger.Ledger, error) {
	if cfg.DryRun {
		l, err := newDryRunLedger(cfg)
		if err != nil {
			return nil, err
		}
		return l, nil
	}

	rpcCfg := ledger.RpcLedgerConfig{Deployer: cfg.Deployer}
	if cfg.MockFeedArtifact != "" {
		artifact, err := ledger.LoadArtifact(cfg.MockFeedArtifact)
		if err != nil {
			return nil, err
		}
		rpcCfg.MockFeed = &artifact
	}
	l, err := ledger.NewRpcLedger(ctx, cfg.RpcUrl, rpcCfg, logger.NewLogger(cfg.LogLevel, "RpcLedger"))
	if err != nil {
		return nil, err
	}
	return l, nil
}

// newDryRunLedger lists the scenario reserves, credits the scenario balances
// and unlocks every depositor and borrower.
func newDryRunLedger(cfg *config.Config) (*ledger.MemoryLedger, error) {
	l := ledger.NewMemoryLedger(ledger.MemoryLedgerConfig{
		Pool:              cfg.Pool,
		Oracle:            cfg.Oracle,
		PermissionManager: cfg.PermissionManager,
		OracleOwner:       cfg.OracleOwner,
		Whitelister:       cfg.Whitelister,
	})
	for _, r := range cfg.Reserves {
		l.AddReserve(r.Asset.Address, ledger.ReserveConfig{
			Symbol:               r.Asset.Symbol,
			Decimals:             r.Decimals,
			Price:                r.Price,
			Ltv:                  r.Ltv,
			LiquidationThreshold: r.LiquidationThreshold,
		})
	}
	for _, b := range cfg.Balances {
		if err := l.Mint(b.Token, b.Account, b.Amount); err != nil {
			return nil, err
		}
	}
	for _, actors := range [][]common.Address{cfg.Depositors, cfg.Borrowers} {
		for _, actor := range actors {
			l.Unlock(actor)
		}
	}
	return l, nil
}
