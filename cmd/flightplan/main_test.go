package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(viper.New())
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEnumerateBuiltinNetwork(t *testing.T) {
	out, err := execute(t, "enumerate",
		"--hub", "SAW",
		"--start", "2026-03-14T06:00:00Z",
		"--window", "3h",
		"--turnaround", "30m",
	)
	require.NoError(t, err, out)

	assert.Contains(t, out, "Turnaround = 30m0s")
	assert.Contains(t, out, "001:   SAW-  ESB.  ESB-  SAW.  SAW.\n      06:00 07:00 07:30 08:30 09:00\n")
	assert.Contains(t, out, "004: ")
	assert.NotContains(t, out, "005: ")
	assert.Contains(t, out, "4 plans from SAW")
}

func TestEnumerateCloseAtHub(t *testing.T) {
	out, err := execute(t, "enumerate",
		"--start", "2026-03-14T06:00:00Z",
		"--window", "3h",
		"--close-at-hub",
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "2 plans from SAW")
}

func TestEnumerateSavesRun(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "cli.db"))

	out, err := execute(t, "enumerate", "--start", "2026-03-14T06:00:00Z", "--window", "3h", "--save")
	require.NoError(t, err, out)
	assert.Contains(t, out, "saved run ")
}

func TestEnumerateRejectsUnknownHub(t *testing.T) {
	_, err := execute(t, "enumerate", "--hub", "IST", "--start", "06:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IST")
}

func TestNetworkCommandReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[airports]]
code = "ADB"

[[airports]]
code = "SAW"

[[arcs]]
from = "SAW"
to = "ADB"
distance_km = 329
duration = "65m"
`), 0o600))

	out, err := execute(t, "network", "--network", path)
	require.NoError(t, err, out)
	assert.Equal(t, 2, strings.Count(out, "Arc("))
	assert.Contains(t, out, "ADB-SAW Arc( 329,  65)")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flightplan.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
SEARCH_HUB = "ESB"
SEARCH_START = "2026-03-14T06:00:00Z"
SEARCH_WINDOW = "2h"
`), 0o600))

	out, err := execute(t, "--config", path, "enumerate")
	require.NoError(t, err, out)
	assert.Contains(t, out, "from ESB")
}
