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
	"io"
	"time"

	"github.com/0xsoniclabs/marketsim/config"
	"github.com/0xsoniclabs/marketsim/ledger"
	"github.com/0xsoniclabs/marketsim/logger"
	"github.com/0xsoniclabs/marketsim/simulation"
	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

var commonFlags = []cli.Flag{
	&config.RpcUrlFlag,
	&config.DryRunFlag,
	&config.ScenarioFlag,
	&logger.LogLevelFlag,
}

func withCommonFlags(flags ...cli.Flag) []cli.Flag {
	return append(append([]cli.Flag{}, commonFlags...), flags...)
}

var InjectCommand = cli.Command{
	Name:   config.InjectCommand,
	Usage:  "deposit a share of every depositor's token balances into the pool",
	Action: action(runInject),
	Flags: withCommonFlags(
		&config.PoolFlag,
		&config.AssetFlag,
		&config.DepositorFlag,
		&config.FractionFlag,
	),
}

var BorrowCommand = cli.Command{
	Name:   config.BorrowCommand,
	Usage:  "borrow a share of every borrower's headroom spread over the assets",
	Action: action(runBorrow),
	Flags: withCommonFlags(
		&config.PoolFlag,
		&config.OracleFlag,
		&config.AssetFlag,
		&config.BorrowerFlag,
		&config.FractionFlag,
		&config.ContinueOnFailureFlag,
	),
}

var GrantCommand = cli.Command{
	Name:   config.GrantCommand,
	Usage:  "grant permission-manager roles as the whitelisting authority",
	Action: action(runGrant),
	Flags: withCommonFlags(
		&config.PermissionManagerFlag,
		&config.WhitelisterFlag,
		&config.RoleFlag,
		&config.GranteeFlag,
	),
}

var HealthCommand = cli.Command{
	Name:   config.HealthCommand,
	Usage:  "print the health factors of accounts",
	Action: action(runHealth),
	Flags: withCommonFlags(
		&config.PoolFlag,
		&config.AccountFlag,
		&config.ReportConcurrencyFlag,
	),
}

var ReplaceOracleCommand = cli.Command{
	Name:   config.ReplaceOracleCommand,
	Usage:  "point the oracle to mock feeds reporting scaled current prices",
	Action: action(runReplaceOracle),
	Flags: withCommonFlags(
		&config.OracleFlag,
		&config.AssetFlag,
		&config.FactorFlag,
		&config.MockFeedArtifactFlag,
		&config.DeployerFlag,
	),
}

var RunCommand = cli.Command{
	Name:  config.RunCommand,
	Usage: "grant, inject, borrow, replace prices and report health on one ledger, as far as configured",
	Description: `Steps run in the order grant, inject, borrow, replace-oracle and health.
A step is performed when its actors or parameters are configured. Combined with
--dry-run the whole scenario plays out on one in-memory ledger.

--fraction (or the scenario key fraction) sets the share of both the inject and
the borrow step. The scenario keys depositFraction and borrowFraction set them
one by one; unset steps keep their defaults of 10000 and 9500.`,
	Action: action(runAll),
	Flags: withCommonFlags(
		&config.PoolFlag,
		&config.OracleFlag,
		&config.PermissionManagerFlag,
		&config.WhitelisterFlag,
		&config.AssetFlag,
		&config.DepositorFlag,
		&config.BorrowerFlag,
		&config.FractionFlag,
		&config.RoleFlag,
		&config.GranteeFlag,
		&config.AccountFlag,
		&config.FactorFlag,
		&config.MockFeedArtifactFlag,
		&config.DeployerFlag,
		&config.ContinueOnFailureFlag,
		&config.ReportConcurrencyFlag,
	),
}

// runner performs one command on an open ledger; tabular output goes to out.
type runner func(ctx context.Context, cfg *config.Config, l ledger.Ledger, out io.Writer) error

func action(run runner) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.NewConfig(c)
		if err != nil {
			return err
		}
		return execute(c.Context, cfg, run, c.App.Writer)
	}
}

func execute(ctx context.Context, cfg *config.Config, run runner, out io.Writer) error {
	log := logger.NewLogger(cfg.LogLevel, "MarketSim")
	l, err := openLedger(ctx, cfg)
	if err != nil {
		return err
	}
	defer l.Close()

	start := time.Now()
	if err = run(ctx, cfg, l, out); err != nil {
		return err
	}
	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Noticef("%v finished; elapsed time: %vh %vm %vs", cfg.CommandName, hours, minutes, seconds)
	return nil
}

func signers(accounts []common.Address) []ledger.Signer {
	res := make([]ledger.Signer, len(accounts))
	for i, account := range accounts {
		res[i] = ledger.Account(account)
	}
	return res
}

func runInject(ctx context.Context, cfg *config.Config, l ledger.Ledger, _ io.Writer) error {
	injector := simulation.MakeLiquidityInjector(cfg, l)
	return injector.Inject(ctx, signers(cfg.Depositors), cfg.Assets, l.Pool(cfg.Pool), cfg.FractionFor(config.InjectCommand))
}

func runBorrow(ctx context.Context, cfg *config.Config, l ledger.Ledger, _ io.Writer) error {
	simulator := simulation.MakeBorrowSimulator(cfg, l)
	return simulator.Borrow(ctx, signers(cfg.Borrowers), cfg.Assets, l.Pool(cfg.Pool), l.PriceOracle(cfg.Oracle), cfg.FractionFor(config.BorrowCommand))
}

func runGrant(ctx context.Context, cfg *config.Config, l ledger.Ledger, _ io.Writer) error {
	grantor := simulation.MakePermissionGrantor(cfg, l)
	return grantor.Grant(ctx, l.PermissionManager(cfg.PermissionManager), cfg.Roles, cfg.Grantees)
}

func runHealth(ctx context.Context, cfg *config.Config, l ledger.Ledger, out io.Writer) error {
	reporter := simulation.MakeHealthReporter(cfg)
	return reporter.Print(ctx, out, cfg.Accounts, l.Pool(cfg.Pool))
}

func runReplaceOracle(ctx context.Context, cfg *config.Config, l ledger.Ledger, _ io.Writer) error {
	assets := make([]common.Address, len(cfg.Assets))
	for i, asset := range cfg.Assets {
		assets[i] = asset.Address
	}
	replacer := simulation.MakeOracleSourceReplacer(cfg, l)
	_, err := replacer.Replace(ctx, cfg.Factor, assets, l.PriceOracle(cfg.Oracle))
	return err
}

var steps = map[string]runner{
	config.GrantCommand:         runGrant,
	config.InjectCommand:        runInject,
	config.BorrowCommand:        runBorrow,
	config.ReplaceOracleCommand: runReplaceOracle,
	config.HealthCommand:        runHealth,
}

func runAll(ctx context.Context, cfg *config.Config, l ledger.Ledger, out io.Writer) error {
	for _, step := range cfg.Steps() {
		if err := steps[step](ctx, cfg, l, out); err != nil {
			return err
		}
	}
	return nil
}
