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

package ledger

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_StringAndParseRoundTrip(t *testing.T) {
	for _, role := range []Role{RoleDepositor, RoleBorrower, RoleLiquidator, RoleStableRateManager} {
		parsed, err := ParseRole(role.String())
		require.NoError(t, err)
		assert.Equal(t, role, parsed)
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{input: "Borrower", want: RoleBorrower},
		{input: " liquidator ", want: RoleLiquidator},
		{input: "3", want: RoleStableRateManager},
		{input: "7", want: Role(7)},
		{input: "admin", wantErr: true},
		{input: "-1", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseRole(test.input)
			if test.wantErr {
				assert.ErrorContains(t, err, "unknown role")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestRole_StringOfUnknownRoleIsItsNumber(t *testing.T) {
	assert.Equal(t, "12", Role(12).String())
}

func TestAsset_StringPrefersSymbol(t *testing.T) {
	addr := common.HexToAddress("0x2001")
	assert.Equal(t, "DAI", Asset{Symbol: "DAI", Address: addr}.String())
	assert.Equal(t, addr.Hex(), Asset{Address: addr}.String())
}
