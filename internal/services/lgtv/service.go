// Package lgtv drives an LG webOS TV: power-on by Wake-on-LAN and
// power-off over the TV's control service.
package lgtv

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fgeck/homectl/internal/config"
	"github.com/fgeck/homectl/internal/models"
	"github.com/fgeck/homectl/internal/services/webos"
	"github.com/fgeck/homectl/internal/services/wol"
	"github.com/rs/zerolog"
)

// Service defines the interface for TV power control.
type Service interface {
	PowerOn(ctx context.Context, cfg models.TVConfig) (*models.WakeResult, error)
	PowerOff(ctx context.Context, cfg models.TVConfig) (models.ControlOutcome, error)
}

// Impl implements the lgtv Service interface.
type Impl struct {
	wolSvc   wol.Service
	webosSvc webos.Client
	out      io.Writer
	logger   zerolog.Logger
}

// New creates a new TV service writing user-facing output to out.
func New(logger zerolog.Logger, out io.Writer) *Impl {
	return &Impl{
		wolSvc:   wol.New(logger),
		webosSvc: webos.New(logger),
		out:      out,
		logger:   logger,
	}
}

// NewWithServices creates a new TV service with custom services (for testing).
func NewWithServices(logger zerolog.Logger, out io.Writer, wolSvc wol.Service, webosSvc webos.Client) *Impl {
	return &Impl{
		wolSvc:   wolSvc,
		webosSvc: webosSvc,
		out:      out,
		logger:   logger,
	}
}

// PowerOn wakes the TV. The TV's network controller is unreliable while it
// powers up, so the magic packet is repeated.
func (s *Impl) PowerOn(ctx context.Context, cfg models.TVConfig) (*models.WakeResult, error) {
	if err := config.Validate(&cfg, models.ActionPowerOn); err != nil {
		return nil, err
	}

	wakeCfg := config.WakeConfigFor(cfg)

	s.logger.Info().
		Str("ip", cfg.IP).
		Str("mac", wakeCfg.MACAddress).
		Msg("waking TV")

	result, err := s.wolSvc.Wake(ctx, wakeCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to send wake-on-lan packet: %w", err)
	}
	if result.Error != nil {
		if errors.Is(result.Error, models.ErrInvalidMAC) {
			return result, fmt.Errorf("could not parse mac address: %w", result.Error)
		}
		return result, fmt.Errorf("failed to send wake-on-lan packet: %w", result.Error)
	}

	s.logger.Info().
		Int("packets", result.PacketsSent).
		Dur("duration", result.Duration).
		Msg("wake-on-lan completed")

	_, _ = fmt.Fprintf(s.out, "sent wake-on-lan packet to %s\n", result.MAC)

	return result, nil
}

// PowerOff turns the TV off. Without a key it only pairs and prints the
// newly issued key; the TV stays on until the command is re-run with it.
func (s *Impl) PowerOff(ctx context.Context, cfg models.TVConfig) (models.ControlOutcome, error) {
	if err := config.Validate(&cfg, models.ActionPowerOff); err != nil {
		return nil, err
	}

	requiresAuth := !cfg.HasKey()
	if requiresAuth {
		_, _ = fmt.Fprintln(s.out, "no webos-key provided: doing initial auth flow")
		_, _ = fmt.Fprintln(s.out, "follow the steps on the TV")
	}

	endpoint := webos.EndpointURL(cfg.IP)
	s.logger.Info().
		Str("endpoint", endpoint).
		Bool("pairing", requiresAuth).
		Msg("opening control session")

	session, err := s.webosSvc.Open(ctx, endpoint, cfg.WebOSKey)
	if err != nil {
		return nil, fmt.Errorf("could not create webOS client: %w", err)
	}
	defer func() { _ = session.Close() }()

	if requiresAuth {
		key := session.Key()
		_, _ = fmt.Fprintf(s.out, "webos-key: %s\n", key)
		s.logger.Info().Msg("pairing completed, re-run with --webos-key")
		return models.Paired{Key: key}, nil
	}

	resp, err := session.SendCommand(ctx, webos.CommandTurnOff)
	if err != nil {
		return nil, fmt.Errorf("could not turn off TV: %w", err)
	}

	_, _ = fmt.Fprintf(s.out, "Got response %s\n", resp.Payload)
	s.logger.Info().Str("id", resp.ID).Msg("power-off command completed")

	return models.Completed{Response: *resp}, nil
}
