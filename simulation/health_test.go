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
	"bytes"
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/0xsoniclabs/marketsim/ledger"
	"github.com/0xsoniclabs/marketsim/logger"
	"github.com/0xsoniclabs/marketsim/utils/fixedpoint"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func wad(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid number " + s)
	}
	return v
}

func TestFormatHealthFactor(t *testing.T) {
	maxValue := fixedpoint.MaxUint256.ToBig()
	tests := map[string]struct {
		value *big.Int
		want  string
	}{
		"one and a half": {value: wad("1500000000000000000"), want: "1.5"},
		"whole number":   {value: wad("2000000000000000000"), want: "2.0"},
		"zero":           {value: big.NewInt(0), want: "0.0"},
		"one wei":        {value: big.NewInt(1), want: "0.000000000000000001"},
		"below max":      {value: new(big.Int).Sub(maxValue, big.NewInt(1)), want: fixedpoint.FormatUnits(new(big.Int).Sub(maxValue, big.NewInt(1)), 18)},
		"max":            {value: maxValue, want: HealthFactorMax},
		"above max":      {value: new(big.Int).Add(maxValue, big.NewInt(1)), want: HealthFactorUndefined},
		"negative":       {value: big.NewInt(-1), want: HealthFactorUndefined},
		"nil":            {value: nil, want: HealthFactorUndefined},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, FormatHealthFactor(test.value))
		})
	}
}

func snapshotWithHealth(hf *big.Int) ledger.AccountSnapshot {
	s := snapshotWithHeadroom(0)
	s.HealthFactor = hf
	return s
}

func TestHealthReporter_ReportKeepsAccountOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	pool := ledger.NewMockPool(ctrl)
	log := logger.NewMockLogger(ctrl)
	carol := common.HexToAddress("0xc")

	pool.EXPECT().GetUserAccountData(gomock.Any(), alice.Address()).Return(snapshotWithHealth(wad("1500000000000000000")), nil)
	pool.EXPECT().GetUserAccountData(gomock.Any(), bob.Address()).Return(snapshotWithHealth(fixedpoint.MaxUint256.ToBig()), nil)
	pool.EXPECT().GetUserAccountData(gomock.Any(), carol).Return(snapshotWithHealth(new(big.Int).Lsh(big.NewInt(1), 256)), nil)
	log.EXPECT().Errorf("Health factor of %v is out of range: %v", carol, gomock.Any())

	reporter := makeHealthReporter(0, log)
	entries, err := reporter.Report(context.Background(), []common.Address{alice.Address(), bob.Address(), carol}, pool)
	require.NoError(t, err)
	assert.Equal(t, []HealthEntry{
		{Account: alice.Address(), HealthFactor: "1.5"},
		{Account: bob.Address(), HealthFactor: HealthFactorMax},
		{Account: carol, HealthFactor: HealthFactorUndefined},
	}, entries)
}

func TestHealthReporter_ReadFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	pool := ledger.NewMockPool(ctrl)

	pool.EXPECT().GetUserAccountData(gomock.Any(), alice.Address()).Return(ledger.AccountSnapshot{}, ledger.ErrReverted)

	reporter := makeHealthReporter(1, logger.NewMockLogger(ctrl))
	entries, err := reporter.Report(context.Background(), []common.Address{alice.Address()}, pool)
	assert.Nil(t, entries)
	assert.ErrorIs(t, err, ledger.ErrReverted)
	assert.ErrorContains(t, err, "getUserAccountData by "+alice.Address().Hex())
}

func TestHealthReporter_PrintRendersTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	pool := ledger.NewMockPool(ctrl)

	pool.EXPECT().GetUserAccountData(gomock.Any(), alice.Address()).Return(snapshotWithHealth(wad("2000000000000000000")), nil)
	pool.EXPECT().GetUserAccountData(gomock.Any(), bob.Address()).Return(snapshotWithHealth(fixedpoint.MaxUint256.ToBig()), nil)

	var out bytes.Buffer
	reporter := makeHealthReporter(2, logger.NewMockLogger(ctrl))
	require.NoError(t, reporter.Print(context.Background(), &out, []common.Address{alice.Address(), bob.Address()}, pool))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[1], "(index)")
	assert.Contains(t, lines[1], "user")
	assert.Contains(t, lines[1], "healthFactor")
	assert.Contains(t, lines[3], alice.Address().Hex())
	assert.Contains(t, lines[3], "2.0")
	assert.Contains(t, lines[4], bob.Address().Hex())
	assert.Contains(t, lines[4], "MAX")
}

func TestHealthReporter_OnMemoryLedger(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	borrower := l.Unlock(alice.Address())
	pool := l.Pool(poolAddr)

	require.NoError(t, l.Mint(tokenX.Address, alice.Address(), uint256.MustFromDecimal("1000000000000000000000")))
	require.NoError(t, makeLiquidityInjector(l, logger.NewLogger("ERROR", "Test")).Inject(ctx, []ledger.Signer{borrower}, []ledger.Asset{tokenX}, pool, fixedpoint.PercentageFactor))
	// 1000 X collateral, 80% threshold; 400 X debt gives 2.0
	require.NoError(t, pool.Borrow(ctx, borrower, tokenX.Address, uint256.MustFromDecimal("400000000000000000000"), ledger.RateModeVariable, ledger.NoReferral, alice.Address()))

	entries, err := makeHealthReporter(0, logger.NewLogger("ERROR", "Test")).Report(ctx, []common.Address{alice.Address(), bob.Address()}, pool)
	require.NoError(t, err)
	assert.Equal(t, []HealthEntry{
		{Account: alice.Address(), HealthFactor: "2.0"},
		{Account: bob.Address(), HealthFactor: HealthFactorMax},
	}, entries)
}
