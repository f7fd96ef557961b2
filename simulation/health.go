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
	"io"
	"math/big"

	"github.com/0xsoniclabs/marketsim/config"
	"github.com/0xsoniclabs/marketsim/ledger"
	"github.com/0xsoniclabs/marketsim/logger"
	"github.com/0xsoniclabs/marketsim/utils/fixedpoint"
	"github.com/ethereum/go-ethereum/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	// HealthFactorMax is shown for accounts without debt.
	HealthFactorMax = "MAX"
	// HealthFactorUndefined is shown for values above the 256-bit range, which
	// a correct pool never reports.
	HealthFactorUndefined = "UNDEFINED"
)

// HealthEntry is one row of a health report.
type HealthEntry struct {
	Account      common.Address
	HealthFactor string
}

// FormatHealthFactor renders an 18-decimal health factor.
func FormatHealthFactor(value *big.Int) string {
	if value == nil || value.Sign() < 0 {
		return HealthFactorUndefined
	}
	switch fixedpoint.CompareMaxUint256(value) {
	case -1:
		return fixedpoint.FormatUnits(value, fixedpoint.WadDecimals)
	case 0:
		return HealthFactorMax
	default:
		return HealthFactorUndefined
	}
}

// HealthReporter reads and formats the health factors of a set of accounts.
type HealthReporter struct {
	concurrency int
	log         logger.Logger
}

// MakeHealthReporter creates a reporter reading at most cfg.ReportConcurrency
// accounts at a time.
func MakeHealthReporter(cfg *config.Config) *HealthReporter {
	return makeHealthReporter(cfg.ReportConcurrency, logger.NewLogger(cfg.LogLevel, "HealthReporter"))
}

func makeHealthReporter(concurrency int, log logger.Logger) *HealthReporter {
	return &HealthReporter{concurrency: concurrency, log: log}
}

// Report returns the formatted health factor of every account, in input order.
func (r *HealthReporter) Report(ctx context.Context, accounts []common.Address, pool ledger.Pool) ([]HealthEntry, error) {
	return MapLimit(ctx, accounts, r.concurrency, func(ctx context.Context, account common.Address) (HealthEntry, error) {
		data, err := pool.GetUserAccountData(ctx, account)
		if err != nil {
			return HealthEntry{}, newOperationError("getUserAccountData", account, common.Address{}, err)
		}
		formatted := FormatHealthFactor(data.HealthFactor)
		if formatted == HealthFactorUndefined {
			r.log.Errorf("Health factor of %v is out of range: %v", account, data.HealthFactor)
		}
		return HealthEntry{Account: account, HealthFactor: formatted}, nil
	})
}

// Print writes the report as a table to w.
func (r *HealthReporter) Print(ctx context.Context, w io.Writer, accounts []common.Address, pool ledger.Pool) error {
	entries, err := r.Report(ctx, accounts, pool)
	if err != nil {
		return err
	}
	RenderHealthTable(w, entries)
	return nil
}

// RenderHealthTable renders entries with the columns (index), user and healthFactor.
func RenderHealthTable(w io.Writer, entries []HealthEntry) {
	style := table.StyleLight
	style.Format.Header = text.FormatDefault

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(style)
	t.AppendHeader(table.Row{"(index)", "user", "healthFactor"})
	for i, entry := range entries {
		t.AppendRow(table.Row{i, entry.Account.Hex(), entry.HealthFactor})
	}
	t.Render()
}
