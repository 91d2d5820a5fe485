// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package comm carries the fetch policy of the block synchronizer. The ledger does not
// synchronize anything itself; it only validates these tunables and hands them over.
package comm

import (
	"bytes"
	"errors"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSyncTimeout            = 10 * time.Minute
	DefaultMaxParallelTrieFetches = 5000
	DefaultPeerRefreshInterval    = 90 * time.Second
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SyncConfig is the fetch policy of the block synchronizer.
type SyncConfig struct {
	Timeout                time.Duration `yaml:"timeout" validate:"gt=0"`
	MaxParallelTrieFetches uint32        `yaml:"max_parallel_trie_fetches" validate:"gt=0"`
	PeerRefreshInterval    time.Duration `yaml:"peer_refresh_interval" validate:"gt=0"`
}

// DefaultSyncConfig returns the default fetch policy.
func DefaultSyncConfig() SyncConfig {
	return SyncConfig{
		Timeout:                DefaultSyncTimeout,
		MaxParallelTrieFetches: DefaultMaxParallelTrieFetches,
		PeerRefreshInterval:    DefaultPeerRefreshInterval,
	}
}

// Validate checks every tunable is positive.
func (c SyncConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return pkgerrors.Wrap(err, "sync config")
	}
	return nil
}

// LoadSyncConfig reads a YAML sync config file.
func LoadSyncConfig(path string) (SyncConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SyncConfig{}, pkgerrors.Wrap(err, "read sync config")
	}
	return ParseSyncConfig(data)
}

// ParseSyncConfig decodes YAML on top of the defaults and validates the result.
func ParseSyncConfig(data []byte) (SyncConfig, error) {
	c := DefaultSyncConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return SyncConfig{}, pkgerrors.Wrap(err, "decode sync config")
	}
	if err := c.Validate(); err != nil {
		return SyncConfig{}, err
	}
	return c, nil
}
