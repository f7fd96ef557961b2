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
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// SubstituteFeed is a mock price feed deployed in place of an asset's source.
type SubstituteFeed struct {
	Asset       common.Address
	Feed        common.Address
	ScaledPrice *uint256.Int
}

// OracleSourceReplacer repoints the price oracle to mock feeds reporting
// scaled copies of the current prices.
type OracleSourceReplacer struct {
	env ledger.Environment
	log logger.Logger
}

// MakeOracleSourceReplacer creates a replacer deploying feeds through env.
func MakeOracleSourceReplacer(cfg *config.Config, env ledger.Environment) *OracleSourceReplacer {
	return makeOracleSourceReplacer(env, logger.NewLogger(cfg.LogLevel, "OracleReplacer"))
}

func makeOracleSourceReplacer(env ledger.Environment, log logger.Logger) *OracleSourceReplacer {
	return &OracleSourceReplacer{env: env, log: log}
}

// Replace deploys, one at a time, a mock feed reporting floor(price * factor / 10000)
// for every asset and then, acting as the oracle owner, sets all feeds as asset
// sources in a single call. A failed deployment returns before the oracle is
// touched, so sources are never repointed partially.
func (o *OracleSourceReplacer) Replace(ctx context.Context, factor fixedpoint.BasisPoints, assets []common.Address, oracle ledger.PriceOracle) ([]SubstituteFeed, error) {
	if len(assets) == 0 {
		return nil, nil
	}

	feeds, err := MapLimit(ctx, assets, 1, func(ctx context.Context, asset common.Address) (SubstituteFeed, error) {
		return o.deploy(ctx, factor, asset, oracle)
	})
	if err != nil {
		return nil, err
	}

	owner, err := oracle.Owner(ctx)
	if err != nil {
		return nil, newOperationError("owner", common.Address{}, common.Address{}, err)
	}
	sources := make([]common.Address, len(feeds))
	for i, feed := range feeds {
		sources[i] = feed.Feed
	}

	err = ledger.WithImpersonation(ctx, o.env, owner, func(signer ledger.Signer) error {
		if err := oracle.SetAssetSources(ctx, signer, assets, sources); err != nil {
			return newOperationError("setAssetSources", owner, common.Address{}, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.log.Noticef("Oracle %v now reads %d assets from mock feeds scaled by %d bps", oracle.Address(), len(assets), factor)
	return feeds, nil
}

func (o *OracleSourceReplacer) deploy(ctx context.Context, factor fixedpoint.BasisPoints, asset common.Address, oracle ledger.PriceOracle) (SubstituteFeed, error) {
	price, err := oracle.GetAssetPrice(ctx, asset)
	if err != nil {
		return SubstituteFeed{}, newOperationError("getAssetPrice", common.Address{}, asset, err)
	}
	scaled, err := fixedpoint.PercentMul(price, factor)
	if err != nil {
		return SubstituteFeed{}, newOperationError("deployMockFeed", common.Address{}, asset, err)
	}
	feed, err := o.env.DeployMockFeed(ctx, scaled)
	if err != nil {
		return SubstituteFeed{}, newOperationError("deployMockFeed", common.Address{}, asset, err)
	}
	o.log.Infof("Deployed mock feed %v for %v with price %v (was %v)", feed, asset, scaled, price)
	return SubstituteFeed{Asset: asset, Feed: feed, ScaledPrice: scaled}, nil
}
