package main

import (
	"bytes"
	"testing"

	"github.com/fgeck/homectl/internal/models"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag in the command tree to its default, since
// cobra keeps parsed values on the package-level commands between runs.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	lgtvCmd.PersistentFlags().VisitAll(reset)
}

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	resetFlags()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := Execute()
	return stdout.String(), stderr.String(), err
}

func TestLGTV_MissingIP(t *testing.T) {
	for _, action := range []string{"on", "off"} {
		t.Run(action, func(t *testing.T) {
			stdout, stderr, err := executeCommand(t, "lgtv", "--mac", "AA:BB:CC:DD:EE:FF", action)

			require.Error(t, err)
			assert.Contains(t, err.Error(), `required flag(s) "ip" not set`)
			assert.Contains(t, stderr, "Error:")
			assert.Empty(t, stdout)
		})
	}
}

func TestLGTVOn_MissingMAC(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "lgtv", "--ip", "192.168.1.50", "on")

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrMACRequired)
	assert.Contains(t, stderr, "Error: hardware address required for power-on")
	assert.NotContains(t, stderr, "Usage:")
	assert.Empty(t, stdout)
}

func TestLGTVOn_InvalidMAC(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "lgtv", "--ip", "192.168.1.50", "--mac", "zz:zz", "on")

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidMAC)
	assert.Contains(t, stderr, "could not parse mac address")
	assert.Contains(t, stderr, "zz:zz")
	assert.Empty(t, stdout)
}

func TestLGTV_FlagsAfterSubcommand(t *testing.T) {
	_, stderr, err := executeCommand(t, "lgtv", "on", "--ip", "192.168.1.50", "--mac", "not-a-mac")

	require.Error(t, err)
	assert.Contains(t, stderr, "could not parse mac address")
	assert.Contains(t, stderr, "not-a-mac")
}

func TestLGTV_RejectsExtraArgs(t *testing.T) {
	_, _, err := executeCommand(t, "lgtv", "--ip", "192.168.1.50", "off", "now")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
