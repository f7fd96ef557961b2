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

package config

import (
	"github.com/urfave/cli/v2"
)

const defaultRpcUrl = "http://127.0.0.1:8545"

var (
	RpcUrlFlag = cli.StringFlag{
		Name:  "rpc",
		Usage: "JSON-RPC endpoint of the hardhat-compatible development node",
		Value: defaultRpcUrl,
	}
	DryRunFlag = cli.BoolFlag{
		Name:  "dry-run",
		Usage: "run against an in-memory ledger seeded from the scenario file instead of a node",
	}
	ScenarioFlag = cli.PathFlag{
		Name:    "scenario",
		Aliases: []string{"s"},
		Usage:   "YAML file describing addresses, assets and actors; flags override its values",
	}
	PoolFlag = cli.StringFlag{
		Name:  "pool",
		Usage: "address of the lending pool",
	}
	OracleFlag = cli.StringFlag{
		Name:  "oracle",
		Usage: "address of the price oracle",
	}
	PermissionManagerFlag = cli.StringFlag{
		Name:  "permission-manager",
		Usage: "address of the Arc permission manager",
	}
	WhitelisterFlag = cli.StringFlag{
		Name:  "whitelister",
		Usage: "account holding the whitelisting authority of the permission manager",
	}
	MockFeedArtifactFlag = cli.PathFlag{
		Name:  "mock-feed-artifact",
		Usage: "hardhat artifact JSON of the MockAggregator contract",
	}
	DeployerFlag = cli.StringFlag{
		Name:  "deployer",
		Usage: "account deploying mock price feeds (default: first node account)",
	}
	AssetFlag = cli.StringSliceFlag{
		Name:    "asset",
		Aliases: []string{"a"},
		Usage:   "reserve token as SYMBOL:0xADDRESS or 0xADDRESS (repeatable)",
	}
	DepositorFlag = cli.StringSliceFlag{
		Name:  "depositor",
		Usage: "account injecting liquidity (repeatable)",
	}
	BorrowerFlag = cli.StringSliceFlag{
		Name:  "borrower",
		Usage: "account opening borrow positions (repeatable)",
	}
	FractionFlag = cli.Uint64Flag{
		Name:  "fraction",
		Usage: "share in basis points of the balance to deposit or the headroom to borrow; applies to both steps of a run (default: 10000 for inject, 9500 for borrow)",
	}
	RoleFlag = cli.StringSliceFlag{
		Name:  "role",
		Usage: "permission to grant: depositor, borrower, liquidator, stable-rate-manager or its number (repeatable)",
	}
	GranteeFlag = cli.StringSliceFlag{
		Name:  "grantee",
		Usage: "account receiving the granted roles (repeatable)",
	}
	AccountFlag = cli.StringSliceFlag{
		Name:  "account",
		Usage: "account whose health factor is reported (repeatable)",
	}
	FactorFlag = cli.Uint64Flag{
		Name:  "factor",
		Usage: "scale in basis points applied to current prices; above 10000 pumps, below dumps",
	}
	ContinueOnFailureFlag = cli.BoolFlag{
		Name:  "continue-on-failure",
		Usage: "continue with the next borrower after a failed borrow and report all failures at the end",
	}
	ReportConcurrencyFlag = cli.IntFlag{
		Name:  "report-concurrency",
		Usage: "maximum number of concurrent account reads of the health report (0: unbounded)",
	}
)
