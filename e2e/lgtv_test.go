//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/fgeck/homectl/internal/models"
	"github.com/fgeck/homectl/internal/services/lgtv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// These tests talk to a real TV and only run when explicitly configured.

func TestRealPowerOn_E2E(t *testing.T) {
	ip := os.Getenv("TEST_LGTV_IP")
	mac := os.Getenv("TEST_LGTV_MAC")
	if ip == "" || mac == "" {
		t.Skip("TEST_LGTV_IP or TEST_LGTV_MAC not set")
	}

	var out bytes.Buffer
	svc := lgtv.New(testLogger(), &out)

	result, err := svc.PowerOn(context.Background(), models.TVConfig{
		IP:          ip,
		MACAddress:  mac,
		BroadcastIP: "255.255.255.255",
	})

	require.NoError(t, err)
	assert.Equal(t, 10, result.PacketsSent)
	assert.Contains(t, out.String(), "sent wake-on-lan packet to")
}

func TestRealPowerOff_E2E(t *testing.T) {
	ip := os.Getenv("TEST_LGTV_IP")
	key := os.Getenv("TEST_LGTV_KEY")
	if ip == "" || key == "" {
		t.Skip("TEST_LGTV_IP or TEST_LGTV_KEY not set")
	}

	var out bytes.Buffer
	svc := lgtv.New(testLogger(), &out)

	outcome, err := svc.PowerOff(context.Background(), models.TVConfig{IP: ip, WebOSKey: key})

	require.NoError(t, err)
	assert.IsType(t, models.Completed{}, outcome)
	assert.Contains(t, out.String(), "Got response")
}
