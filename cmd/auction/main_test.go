// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vechain/auction/comm"
	"github.com/vechain/auction/config"
)

func runApp(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"auction"}, args...))
	return out.String(), err
}

func TestDefaultsCommand(t *testing.T) {
	out, err := runApp(t, "defaults")
	require.NoError(t, err)

	var got struct {
		Engine config.File     `yaml:"engine"`
		Sync   comm.SyncConfig `yaml:"sync"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, comm.DefaultSyncConfig(), got.Sync)

	o, err := got.Engine.Overrides()
	require.NoError(t, err)
	assert.Equal(t, config.MustDefault().ValidatorSlots(), config.New(o).ValidatorSlots())
	assert.Equal(t, config.MustDefault().FeeHandling(), config.New(o).FeeHandling())

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("validator_slots: 0\n"), 0o600))
	_, err = runApp(t, "defaults", "--config", cfgPath)
	assert.ErrorContains(t, err, "invalid config")
}

func TestRunAndReadBack(t *testing.T) {
	dataDir := t.TempDir()
	out, err := runApp(t, "run", "--verbosity", "0", "--data-dir", dataDir, testScenarios[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "delegate-undelegate\tera=3\t"), out)

	out, err = runApp(t, "era-validators", "--verbosity", "0", filepath.Join(dataDir, storeName(0, testScenarios[0])))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)

	_, err = runApp(t, "era-validators", "--verbosity", "0", "--era", "9", filepath.Join(dataDir, storeName(0, testScenarios[0])))
	assert.ErrorContains(t, err, "no validators recorded")
}

func TestRunRequiresScenarios(t *testing.T) {
	_, err := runApp(t, "run", "--verbosity", "0")
	assert.Error(t, err)
}
