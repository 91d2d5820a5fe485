// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"os"

	"github.com/blang/semver"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/auction/types"
)

// DefaultProtocolVersion is used when a genesis file names none.
var DefaultProtocolVersion = semver.MustParse("1.0.0")

// File is the YAML form of a genesis.
type File struct {
	ProtocolVersion string        `yaml:"protocol_version"`
	Accounts        []AccountFile `yaml:"accounts"`
}

// AccountFile is one genesis account. Amounts are decimal strings, underscores allowed.
type AccountFile struct {
	PublicKey types.PublicKey `yaml:"public_key"`
	Balance   string          `yaml:"balance"`
	Validator *ValidatorFile  `yaml:"validator"`
}

type ValidatorFile struct {
	BondedAmount   string               `yaml:"bonded_amount"`
	DelegationRate types.DelegationRate `yaml:"delegation_rate"`
}

// Load reads a YAML genesis file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	return Parse(data)
}

// Parse decodes a YAML genesis. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &f, nil
}

// Version returns the protocol version the genesis starts at.
func (f *File) Version() (semver.Version, error) {
	if f.ProtocolVersion == "" {
		return DefaultProtocolVersion, nil
	}
	v, err := semver.Parse(f.ProtocolVersion)
	if err != nil {
		return semver.Version{}, errors.Wrap(err, "protocol_version")
	}
	return v, nil
}

// Builder returns a builder seeded with the file accounts.
func (f *File) Builder() (*Builder, error) {
	b := new(Builder)
	for i, a := range f.Accounts {
		acc := Account{PublicKey: a.PublicKey}
		if a.Balance != "" {
			balance, err := types.ParseMotes(a.Balance)
			if err != nil {
				return nil, errors.Wrapf(err, "accounts[%d].balance", i)
			}
			acc.Balance = balance
		}
		if a.Validator != nil {
			bonded, err := types.ParseMotes(a.Validator.BondedAmount)
			if err != nil {
				return nil, errors.Wrapf(err, "accounts[%d].validator.bonded_amount", i)
			}
			acc.Validator = &Validator{BondedAmount: bonded, DelegationRate: a.Validator.DelegationRate}
		}
		b.Account(acc)
	}
	return b, nil
}
