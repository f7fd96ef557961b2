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
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Scenario is the YAML description of a simulation run. Reserve parameters and
// balances only matter for dry runs, where they seed the in-memory ledger.
type Scenario struct {
	Pool              string `yaml:"pool"`
	Oracle            string `yaml:"oracle"`
	OracleOwner       string `yaml:"oracleOwner"`
	PermissionManager string `yaml:"permissionManager"`
	Whitelister       string `yaml:"whitelister"`
	Deployer          string `yaml:"deployer"`
	MockFeedArtifact  string `yaml:"mockFeedArtifact"`

	Assets     []ScenarioAsset   `yaml:"assets"`
	Depositors []string          `yaml:"depositors"`
	Borrowers  []string          `yaml:"borrowers"`
	Roles      []string          `yaml:"roles"`
	Grantees   []string          `yaml:"grantees"`
	Accounts   []string          `yaml:"accounts"`
	Balances   []ScenarioBalance `yaml:"balances"`

	// Basis points; nil when the key is absent, as 0 is a valid value.
	Fraction        *uint64 `yaml:"fraction"`
	DepositFraction *uint64 `yaml:"depositFraction"`
	BorrowFraction  *uint64 `yaml:"borrowFraction"`
	Factor          *uint64 `yaml:"factor"`
}

type ScenarioAsset struct {
	Symbol               string `yaml:"symbol"`
	Address              string `yaml:"address"`
	Decimals             uint8  `yaml:"decimals"`
	Price                string `yaml:"price"`
	Ltv                  uint64 `yaml:"ltv"`
	LiquidationThreshold uint64 `yaml:"liquidationThreshold"`
}

// ScenarioBalance credits Amount (in the token's own precision) of Asset,
// given by symbol or address, to Account.
type ScenarioBalance struct {
	Account string `yaml:"account"`
	Asset   string `yaml:"asset"`
	Amount  string `yaml:"amount"`
}

// LoadScenario reads and decodes a scenario file. Unknown keys are rejected.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open scenario %v", path)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)

	var scenario Scenario
	if err = decoder.Decode(&scenario); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, "cannot decode scenario %v", path)
	}
	return &scenario, nil
}
