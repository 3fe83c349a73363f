// Package config resolves command-line flags into device configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fgeck/homectl/internal/models"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultBroadcastIP is used when no broadcast address is given.
	DefaultBroadcastIP = "255.255.255.255"
	// DefaultWakeAttempts is how many magic packets are sent per wake.
	DefaultWakeAttempts = 10
	// DefaultWakeInterval is the pause between magic packets.
	DefaultWakeInterval = 100 * time.Millisecond
)

// Flag names shared with the CLI.
const (
	FlagIP        = "ip"
	FlagMAC       = "mac"
	FlagWebOSKey  = "webos-key"
	FlagBroadcast = "broadcast"
)

// Parser handles flag resolution.
type Parser struct {
	v *viper.Viper
}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	return &Parser{v: viper.New()}
}

// LoadFlags loads configuration from a parsed flag set.
func (p *Parser) LoadFlags(fs *pflag.FlagSet) (*models.TVConfig, error) {
	if err := p.v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	return p.parse()
}

func (p *Parser) parse() (*models.TVConfig, error) {
	cfg := &models.TVConfig{
		IP:          strings.TrimSpace(p.v.GetString(FlagIP)),
		MACAddress:  strings.TrimSpace(p.v.GetString(FlagMAC)),
		WebOSKey:    strings.TrimSpace(p.v.GetString(FlagWebOSKey)),
		BroadcastIP: strings.TrimSpace(p.v.GetString(FlagBroadcast)),
	}

	if cfg.IP == "" {
		return nil, models.ErrIPRequired
	}

	if cfg.BroadcastIP == "" {
		cfg.BroadcastIP = DefaultBroadcastIP
	}

	return cfg, nil
}

// Validate checks that the configuration carries what the action needs.
func Validate(cfg *models.TVConfig, action models.Action) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if cfg.IP == "" {
		return models.ErrIPRequired
	}

	if action == models.ActionPowerOn && cfg.MACAddress == "" {
		return models.ErrMACRequired
	}

	return nil
}

// WakeConfigFor builds the Wake-on-LAN settings for a device.
func WakeConfigFor(cfg models.TVConfig) models.WakeConfig {
	broadcast := cfg.BroadcastIP
	if broadcast == "" {
		broadcast = DefaultBroadcastIP
	}

	return models.WakeConfig{
		MACAddress:  cfg.MACAddress,
		BroadcastIP: broadcast,
		Attempts:    DefaultWakeAttempts,
		Interval:    DefaultWakeInterval,
	}
}
