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
	"testing"

	"github.com/0xsoniclabs/marketsim/ledger"
	"github.com/0xsoniclabs/marketsim/logger"
	"github.com/0xsoniclabs/marketsim/utils/fixedpoint"
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	poolAddr        = common.HexToAddress("0x1001")
	oracleAddr      = common.HexToAddress("0x1002")
	permissionsAddr = common.HexToAddress("0x1003")
	oracleOwner     = common.HexToAddress("0x1004")
	whitelister     = common.HexToAddress("0x1005")

	tokenX = ledger.Asset{Symbol: "X", Address: common.HexToAddress("0x2001")}
	tokenY = ledger.Asset{Symbol: "Y", Address: common.HexToAddress("0x2002")}

	alice = ledger.Account(common.HexToAddress("0xa"))
	bob   = ledger.Account(common.HexToAddress("0xb"))
)

func TestLiquidityInjector_DepositsFullBalanceAfterResettingAllowance(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := ledger.NewMockTokens(ctrl)
	pool := ledger.NewMockPool(ctrl)
	log := logger.NewMockLogger(ctrl)
	ctx := context.Background()

	pool.EXPECT().Address().Return(poolAddr).AnyTimes()
	gomock.InOrder(
		tokens.EXPECT().BalanceOf(ctx, tokenX.Address, alice.Address()).Return(uint256.NewInt(1000), nil),
		tokens.EXPECT().Approve(ctx, alice, tokenX.Address, poolAddr, uint256.NewInt(0)),
		tokens.EXPECT().Approve(ctx, alice, tokenX.Address, poolAddr, fixedpoint.MaxUint256),
		pool.EXPECT().Deposit(ctx, alice, tokenX.Address, uint256.NewInt(1000), alice.Address(), ledger.NoReferral),
		log.EXPECT().Infof(gomock.Any(), alice.Address(), uint256.NewInt(1000), tokenX),
		tokens.EXPECT().BalanceOf(ctx, tokenX.Address, bob.Address()).Return(uint256.NewInt(0), nil),
		log.EXPECT().Warningf("Depositor %v does not have funds for %v token", bob.Address(), "X"),
	)

	injector := makeLiquidityInjector(tokens, log)
	err := injector.Inject(ctx, []ledger.Signer{alice, bob}, []ledger.Asset{tokenX}, pool, fixedpoint.PercentageFactor)
	require.NoError(t, err)
}

func TestLiquidityInjector_ProcessesPairsDepositorMajor(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := ledger.NewMockTokens(ctrl)
	pool := ledger.NewMockPool(ctrl)
	log := logger.NewMockLogger(ctrl)

	pool.EXPECT().Address().Return(poolAddr).AnyTimes()
	log.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	tokens.EXPECT().Approve(gomock.Any(), gomock.Any(), gomock.Any(), poolAddr, gomock.Any()).Times(8)

	var order []string
	deposit := func(name string) func(context.Context, ledger.Signer, common.Address, *uint256.Int, common.Address, uint16) error {
		return func(context.Context, ledger.Signer, common.Address, *uint256.Int, common.Address, uint16) error {
			order = append(order, name)
			return nil
		}
	}
	tokens.EXPECT().BalanceOf(gomock.Any(), gomock.Any(), gomock.Any()).Return(uint256.NewInt(10), nil).Times(4)
	gomock.InOrder(
		pool.EXPECT().Deposit(gomock.Any(), alice, tokenX.Address, gomock.Any(), alice.Address(), ledger.NoReferral).DoAndReturn(deposit("alice/X")),
		pool.EXPECT().Deposit(gomock.Any(), alice, tokenY.Address, gomock.Any(), alice.Address(), ledger.NoReferral).DoAndReturn(deposit("alice/Y")),
		pool.EXPECT().Deposit(gomock.Any(), bob, tokenX.Address, gomock.Any(), bob.Address(), ledger.NoReferral).DoAndReturn(deposit("bob/X")),
		pool.EXPECT().Deposit(gomock.Any(), bob, tokenY.Address, gomock.Any(), bob.Address(), ledger.NoReferral).DoAndReturn(deposit("bob/Y")),
	)

	injector := makeLiquidityInjector(tokens, log)
	err := injector.Inject(context.Background(), []ledger.Signer{alice, bob}, []ledger.Asset{tokenX, tokenY}, pool, fixedpoint.PercentageFactor)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice/X", "alice/Y", "bob/X", "bob/Y"}, order)
}

func TestLiquidityInjector_DepositsFractionRoundedDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := ledger.NewMockTokens(ctrl)
	pool := ledger.NewMockPool(ctrl)
	log := logger.NewMockLogger(ctrl)

	pool.EXPECT().Address().Return(poolAddr).AnyTimes()
	log.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
	tokens.EXPECT().BalanceOf(gomock.Any(), tokenX.Address, alice.Address()).Return(uint256.NewInt(1001), nil)
	tokens.EXPECT().Approve(gomock.Any(), alice, tokenX.Address, poolAddr, gomock.Any()).Times(2)
	pool.EXPECT().Deposit(gomock.Any(), alice, tokenX.Address, uint256.NewInt(500), alice.Address(), ledger.NoReferral)

	injector := makeLiquidityInjector(tokens, log)
	require.NoError(t, injector.Inject(context.Background(), []ledger.Signer{alice}, []ledger.Asset{tokenX}, pool, 5000))
}

func TestLiquidityInjector_RejectsFractionAboveOneHundredPercent(t *testing.T) {
	ctrl := gomock.NewController(t)
	injector := makeLiquidityInjector(ledger.NewMockTokens(ctrl), logger.NewMockLogger(ctrl))

	err := injector.Inject(context.Background(), []ledger.Signer{alice}, []ledger.Asset{tokenX}, ledger.NewMockPool(ctrl), 10001)
	assert.ErrorIs(t, err, ErrInvalidFraction)
}

func TestLiquidityInjector_LedgerFailureAbortsRemainingPairs(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := ledger.NewMockTokens(ctrl)
	pool := ledger.NewMockPool(ctrl)
	log := logger.NewMockLogger(ctrl)

	pool.EXPECT().Address().Return(poolAddr).AnyTimes()
	gomock.InOrder(
		tokens.EXPECT().BalanceOf(gomock.Any(), tokenX.Address, alice.Address()).Return(uint256.NewInt(5), nil),
		tokens.EXPECT().Approve(gomock.Any(), alice, tokenX.Address, poolAddr, uint256.NewInt(0)).Return(ledger.ErrReverted),
	)

	injector := makeLiquidityInjector(tokens, log)
	err := injector.Inject(context.Background(), []ledger.Signer{alice, bob}, []ledger.Asset{tokenX, tokenY}, pool, fixedpoint.PercentageFactor)
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrReverted)

	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "approve", opErr.Op)
	assert.Equal(t, alice.Address(), opErr.Actor)
	assert.Equal(t, tokenX.Address, opErr.Asset)
}

func TestLiquidityInjector_WarningNamesTokenByAddressWhenSymbolIsUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := ledger.NewMockTokens(ctrl)
	log := logger.NewMockLogger(ctrl)
	unnamed := ledger.Asset{Address: common.HexToAddress("0x2003")}
	named := ledger.Asset{Address: common.HexToAddress("0x2004")}

	gomock.InOrder(
		tokens.EXPECT().BalanceOf(gomock.Any(), unnamed.Address, alice.Address()).Return(uint256.NewInt(0), nil),
		tokens.EXPECT().Symbol(gomock.Any(), unnamed.Address).Return("", errors.New("no symbol()")),
		log.EXPECT().Warningf(gomock.Any(), alice.Address(), unnamed.Address.Hex()),
		tokens.EXPECT().BalanceOf(gomock.Any(), named.Address, alice.Address()).Return(uint256.NewInt(0), nil),
		tokens.EXPECT().Symbol(gomock.Any(), named.Address).Return("USDC", nil),
		log.EXPECT().Warningf(gomock.Any(), alice.Address(), "USDC"),
	)

	injector := makeLiquidityInjector(tokens, log)
	err := injector.Inject(context.Background(), []ledger.Signer{alice}, []ledger.Asset{unnamed, named}, ledger.NewMockPool(ctrl), fixedpoint.PercentageFactor)
	require.NoError(t, err)
}

func TestLiquidityInjector_OnMemoryLedgerOnlyFundedDepositorDeposits(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	depositors := []ledger.Signer{l.Unlock(alice.Address()), l.Unlock(bob.Address())}
	require.NoError(t, l.Mint(tokenX.Address, alice.Address(), uint256.NewInt(1000)))

	injector := makeLiquidityInjector(l, logger.NewLogger("ERROR", "Test"))
	require.NoError(t, injector.Inject(ctx, depositors, []ledger.Asset{tokenX}, l.Pool(poolAddr), fixedpoint.PercentageFactor))

	deposits := l.Calls("deposit")
	require.Len(t, deposits, 1)
	assert.Equal(t, alice.Address(), deposits[0].From)
	assert.Equal(t, uint256.NewInt(1000), l.Deposited(tokenX.Address, alice.Address()))
	assert.True(t, l.Deposited(tokenX.Address, bob.Address()).IsZero())

	approvals := l.Calls("approve")
	require.Len(t, approvals, 2)
	assert.Equal(t, []any{tokenX.Address, poolAddr, uint256.NewInt(0)}, approvals[0].Args)
	assert.Equal(t, []any{tokenX.Address, poolAddr, fixedpoint.MaxUint256}, approvals[1].Args)
}

// newTestLedger lists X (18 decimals, price 1) and Y (6 decimals, price 2000)
// in a memory pool.
func newTestLedger(t *testing.T) *ledger.MemoryLedger {
	t.Helper()
	l := ledger.NewMemoryLedger(ledger.MemoryLedgerConfig{
		Pool:              poolAddr,
		Oracle:            oracleAddr,
		PermissionManager: permissionsAddr,
		OracleOwner:       oracleOwner,
		Whitelister:       whitelister,
	})
	l.AddReserve(tokenX.Address, ledger.ReserveConfig{
		Symbol:               "X",
		Decimals:             18,
		Price:                uint256.MustFromDecimal("1000000000000000000"),
		Ltv:                  7500,
		LiquidationThreshold: 8000,
	})
	l.AddReserve(tokenY.Address, ledger.ReserveConfig{
		Symbol:               "Y",
		Decimals:             6,
		Price:                uint256.MustFromDecimal("2000000000000000000000"),
		Ltv:                  8000,
		LiquidationThreshold: 8250,
	})
	return l
}
