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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/marketsim/config"
	"github.com/0xsoniclabs/marketsim/ledger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	poolHex   = "0x0000000000000000000000000000000000001001"
	oracleHex = "0x0000000000000000000000000000000000001002"
	daiHex    = "0x0000000000000000000000000000000000002001"
	wethHex   = "0x0000000000000000000000000000000000002002"
	aliceHex  = "0x000000000000000000000000000000000000000a"
	bobHex    = "0x000000000000000000000000000000000000000b"
)

const dryRunScenario = `
pool: "` + poolHex + `"
oracle: "` + oracleHex + `"
oracleOwner: "0x0000000000000000000000000000000000001004"
permissionManager: "0x0000000000000000000000000000000000001003"
whitelister: "0x0000000000000000000000000000000000001005"
assets:
  - symbol: DAI
    address: "` + daiHex + `"
    decimals: 18
    price: "1000000000000000000"
    ltv: 7500
    liquidationThreshold: 8000
  - symbol: WETH
    address: "` + wethHex + `"
    decimals: 18
    price: "2000000000000000000000"
    ltv: 8000
    liquidationThreshold: 8250
balances:
  - account: "` + aliceHex + `"
    asset: WETH
    amount: "10000000000000000000"
roles: [depositor, borrower]
grantees: ["` + aliceHex + `"]
depositors: ["` + aliceHex + `"]
borrowers: ["` + aliceHex + `"]
accounts: ["` + aliceHex + `", "` + bobHex + `"]
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.RunContext(context.Background(), append([]string{"market-sim"}, args...))
	return out.String(), err
}

func TestRunCommand_PlaysScenarioOnDryRunLedger(t *testing.T) {
	out, err := runApp(t, "run", "--dry-run", "--log", "critical", "--scenario", writeScenario(t, dryRunScenario))
	require.NoError(t, err)

	// 10 WETH collateral (20000), 7600 DAI and 3 WETH debt (13600)
	assert.Contains(t, out, "healthFactor")
	assert.Contains(t, out, common.HexToAddress(aliceHex).Hex())
	assert.Contains(t, out, "1.213235294117647058")
	assert.Contains(t, out, "MAX")
}

func TestHealthCommand_AccountWithoutDebtIsMax(t *testing.T) {
	out, err := runApp(t, "health", "--dry-run", "--log", "critical", "--pool", poolHex, "--account", bobHex)
	require.NoError(t, err)
	assert.Contains(t, out, common.HexToAddress(bobHex).Hex())
	assert.Contains(t, out, "MAX")
}

func TestCommands_ReportMissingConfiguration(t *testing.T) {
	_, err := runApp(t, "inject", "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing --pool")
	assert.Contains(t, err.Error(), "at least one --depositor is required")
}

func TestBorrowCommand_FailsWithoutCollateral(t *testing.T) {
	_, err := runApp(t, "borrow", "--dry-run", "--log", "critical", "--scenario", writeScenario(t, dryRunScenario))
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrReverted)
}

func TestRunReplaceOracle_RepointsAllAssets(t *testing.T) {
	cfg := &config.Config{
		LogLevel:    "critical",
		DryRun:      true,
		Oracle:      common.HexToAddress(oracleHex),
		OracleOwner: common.HexToAddress("0x1004"),
		Factor:      5000,
		Assets: []ledger.Asset{
			{Symbol: "DAI", Address: common.HexToAddress(daiHex)},
			{Symbol: "WETH", Address: common.HexToAddress(wethHex)},
		},
		Reserves: []config.Reserve{
			{Asset: ledger.Asset{Symbol: "DAI", Address: common.HexToAddress(daiHex)}, Decimals: 18, Price: uint256.MustFromDecimal("1000000000000000000")},
			{Asset: ledger.Asset{Symbol: "WETH", Address: common.HexToAddress(wethHex)}, Decimals: 18, Price: uint256.MustFromDecimal("2000000000000000000000")},
		},
	}
	l, err := newDryRunLedger(cfg)
	require.NoError(t, err)

	require.NoError(t, runReplaceOracle(context.Background(), cfg, l, nil))
	price, err := l.PriceOracle(cfg.Oracle).GetAssetPrice(context.Background(), common.HexToAddress(wethHex))
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000", price.Dec())
	assert.NotEqual(t, common.Address{}, l.Source(common.HexToAddress(daiHex)))
}

func TestNewDryRunLedger_SeedsBalancesAndUnlocksActors(t *testing.T) {
	alice := common.HexToAddress(aliceHex)
	cfg := &config.Config{
		Pool:       common.HexToAddress(poolHex),
		Depositors: []common.Address{alice},
		Reserves: []config.Reserve{
			{Asset: ledger.Asset{Symbol: "DAI", Address: common.HexToAddress(daiHex)}, Decimals: 18, Price: uint256.NewInt(1)},
		},
		Balances: []config.Balance{
			{Account: alice, Token: common.HexToAddress(daiHex), Amount: uint256.NewInt(42)},
		},
	}
	l, err := newDryRunLedger(cfg)
	require.NoError(t, err)

	balance, err := l.BalanceOf(context.Background(), common.HexToAddress(daiHex), alice)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(42), balance)
	require.NoError(t, l.Approve(context.Background(), ledger.Account(alice), common.HexToAddress(daiHex), cfg.Pool, uint256.NewInt(1)))

	cfg.Balances[0].Token = common.HexToAddress(wethHex)
	_, err = newDryRunLedger(cfg)
	assert.ErrorIs(t, err, ledger.ErrUnknownContract)
}

func TestOpenLedger_RpcFailures(t *testing.T) {
	cfg := &config.Config{LogLevel: "critical", RpcUrl: "http://127.0.0.1:1"}
	_, err := openLedger(context.Background(), cfg)
	assert.ErrorContains(t, err, "cannot list node accounts")

	cfg.MockFeedArtifact = filepath.Join(t.TempDir(), "MockAggregator.json")
	_, err = openLedger(context.Background(), cfg)
	assert.ErrorContains(t, err, "cannot read artifact")
}
