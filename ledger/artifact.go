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
	"encoding/json"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Artifact is the part of a hardhat build artifact needed to deploy a contract.
type Artifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// Code returns the decoded creation bytecode.
func (a Artifact) Code() ([]byte, error) {
	code := strings.TrimPrefix(a.Bytecode, "0x")
	if code == "" {
		return nil, errors.Newf("artifact %v has no bytecode", a.ContractName)
	}
	decoded, err := hexutil.Decode("0x" + code)
	if err != nil {
		return nil, errors.Wrapf(err, "artifact %v has malformed bytecode", a.ContractName)
	}
	return decoded, nil
}

// LoadArtifact reads a hardhat artifact JSON file, e.g.
// artifacts/contracts/mocks/oracle/MockAggregator.sol/MockAggregator.json.
func LoadArtifact(path string) (Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, errors.Wrapf(err, "cannot read artifact %v", path)
	}
	var artifact Artifact
	if err = json.Unmarshal(raw, &artifact); err != nil {
		return Artifact{}, errors.Wrapf(err, "cannot decode artifact %v", path)
	}
	if _, err = artifact.Code(); err != nil {
		return Artifact{}, err
	}
	return artifact, nil
}
