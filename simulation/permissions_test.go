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
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPermissionGrantor_GrantsEachRoleUnderScopedAuthority(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := ledger.NewMockEnvironment(ctrl)
	manager := ledger.NewMockPermissionManager(ctrl)
	log := logger.NewMockLogger(ctrl)
	ctx := context.Background()
	grantees := []common.Address{alice.Address(), bob.Address()}
	authority := ledger.Account(whitelister)

	gomock.InOrder(
		env.EXPECT().Impersonate(ctx, whitelister).Return(authority, nil),
		env.EXPECT().FundBalance(ctx, whitelister, ledger.PrivilegedFunding),
		manager.EXPECT().AddPermissions(ctx, authority, []ledger.Role{ledger.RoleDepositor, ledger.RoleDepositor}, grantees),
		log.EXPECT().Infof("Granted %v to %d users", ledger.RoleDepositor, 2),
		manager.EXPECT().AddPermissions(ctx, authority, []ledger.Role{ledger.RoleBorrower, ledger.RoleBorrower}, grantees),
		log.EXPECT().Infof("Granted %v to %d users", ledger.RoleBorrower, 2),
		env.EXPECT().StopImpersonating(ctx, whitelister),
	)

	grantor := makePermissionGrantor(env, whitelister, log)
	err := grantor.Grant(ctx, manager, []ledger.Role{ledger.RoleDepositor, ledger.RoleBorrower}, grantees)
	require.NoError(t, err)
}

func TestPermissionGrantor_FailureStopsRemainingRolesButReleasesAuthority(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := ledger.NewMockEnvironment(ctrl)
	manager := ledger.NewMockPermissionManager(ctrl)
	log := logger.NewMockLogger(ctrl)
	grantees := []common.Address{alice.Address()}

	gomock.InOrder(
		env.EXPECT().Impersonate(gomock.Any(), whitelister).Return(ledger.Account(whitelister), nil),
		env.EXPECT().FundBalance(gomock.Any(), whitelister, gomock.Any()),
		manager.EXPECT().AddPermissions(gomock.Any(), gomock.Any(), []ledger.Role{ledger.RoleDepositor}, grantees),
		log.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any()),
		manager.EXPECT().AddPermissions(gomock.Any(), gomock.Any(), []ledger.Role{ledger.RoleBorrower}, grantees).Return(ledger.ErrUnauthorized),
		env.EXPECT().StopImpersonating(gomock.Any(), whitelister),
	)

	grantor := makePermissionGrantor(env, whitelister, log)
	err := grantor.Grant(context.Background(), manager, []ledger.Role{ledger.RoleDepositor, ledger.RoleBorrower, ledger.RoleLiquidator}, grantees)
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)
	assert.ErrorContains(t, err, "addPermissions(borrower)")
}

func TestPermissionGrantor_NothingToGrantTouchesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	grantor := makePermissionGrantor(ledger.NewMockEnvironment(ctrl), whitelister, logger.NewMockLogger(ctrl))
	manager := ledger.NewMockPermissionManager(ctrl)

	assert.NoError(t, grantor.Grant(context.Background(), manager, []ledger.Role{ledger.RoleBorrower}, nil))
	assert.NoError(t, grantor.Grant(context.Background(), manager, nil, []common.Address{alice.Address()}))
}

func TestPermissionGrantor_RequiresAuthority(t *testing.T) {
	ctrl := gomock.NewController(t)
	grantor := makePermissionGrantor(ledger.NewMockEnvironment(ctrl), common.Address{}, logger.NewMockLogger(ctrl))

	err := grantor.Grant(context.Background(), ledger.NewMockPermissionManager(ctrl), []ledger.Role{ledger.RoleBorrower}, []common.Address{alice.Address()})
	assert.ErrorIs(t, err, ErrNoAuthority)
}

func TestPermissionGrantor_OnMemoryLedger(t *testing.T) {
	l := newTestLedger(t)
	grantor := makePermissionGrantor(l, whitelister, logger.NewLogger("ERROR", "Test"))
	grantees := []common.Address{alice.Address(), bob.Address()}

	err := grantor.Grant(context.Background(), l.PermissionManager(permissionsAddr), []ledger.Role{ledger.RoleDepositor, ledger.RoleBorrower}, grantees)
	require.NoError(t, err)

	for _, grantee := range grantees {
		assert.True(t, l.HasRole(grantee, ledger.RoleDepositor))
		assert.True(t, l.HasRole(grantee, ledger.RoleBorrower))
		assert.False(t, l.HasRole(grantee, ledger.RoleLiquidator))
	}
	assert.False(t, l.IsImpersonated(whitelister))
	assert.Equal(t, ledger.PrivilegedFunding, l.NativeBalance(whitelister))

	var methods []string
	for _, call := range l.Journal() {
		methods = append(methods, call.Method)
	}
	assert.Equal(t, []string{"impersonate", "setBalance", "addPermissions", "addPermissions", "stopImpersonating"}, methods)
}

func TestPermissionGrantor_OnMemoryLedgerWrongAuthorityIsRejected(t *testing.T) {
	l := newTestLedger(t)
	grantor := makePermissionGrantor(l, oracleOwner, logger.NewLogger("ERROR", "Test"))

	err := grantor.Grant(context.Background(), l.PermissionManager(permissionsAddr), []ledger.Role{ledger.RoleDepositor}, []common.Address{alice.Address()})
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)
	assert.False(t, l.IsImpersonated(oracleOwner))
}
