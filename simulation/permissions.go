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
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
)

// PermissionGrantor grants permission-manager roles on behalf of the
// whitelisting authority.
type PermissionGrantor struct {
	env       ledger.Environment
	authority common.Address
	log       logger.Logger
}

// MakePermissionGrantor creates a grantor acting as cfg.Whitelister.
func MakePermissionGrantor(cfg *config.Config, env ledger.Environment) *PermissionGrantor {
	return makePermissionGrantor(env, cfg.Whitelister, logger.NewLogger(cfg.LogLevel, "PermissionGrantor"))
}

func makePermissionGrantor(env ledger.Environment, authority common.Address, log logger.Logger) *PermissionGrantor {
	return &PermissionGrantor{env: env, authority: authority, log: log}
}

// Grant gives every role to all grantees, one AddPermissions call per role.
// The authority is impersonated and funded for the duration of the call only.
func (g *PermissionGrantor) Grant(ctx context.Context, manager ledger.PermissionManager, roles []ledger.Role, grantees []common.Address) error {
	if len(roles) == 0 || len(grantees) == 0 {
		return nil
	}
	if g.authority == (common.Address{}) {
		return errors.Wrap(ErrNoAuthority, "whitelister")
	}

	return ledger.WithImpersonation(ctx, g.env, g.authority, func(authority ledger.Signer) error {
		return Each(ctx, roles, func(ctx context.Context, _ int, role ledger.Role) error {
			batch := make([]ledger.Role, len(grantees))
			for i := range batch {
				batch[i] = role
			}
			if err := manager.AddPermissions(ctx, authority, batch, grantees); err != nil {
				return newOperationError("addPermissions("+role.String()+")", g.authority, common.Address{}, err)
			}
			g.log.Infof("Granted %v to %d users", role, len(grantees))
			return nil
		})
	})
}
