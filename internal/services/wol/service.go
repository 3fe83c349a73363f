// Package wol provides Wake-on-LAN operations.
package wol

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/fgeck/homectl/internal/models"
	"github.com/mdlayher/wol"
	"github.com/rs/zerolog"
)

// Service defines the interface for Wake-on-LAN operations.
type Service interface {
	Wake(ctx context.Context, cfg models.WakeConfig) (*models.WakeResult, error)
}

// Client wraps the wol library for mocking.
type Client interface {
	Wake(broadcastIP string, mac net.HardwareAddr) error
}

// Sleeper pauses between packets. It returns early with the context error
// if ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// DefaultClient is the default implementation using mdlayher/wol.
type DefaultClient struct{}

// Wake sends a magic packet to the specified MAC address.
func (c *DefaultClient) Wake(broadcastIP string, mac net.HardwareAddr) error {
	client, err := wol.NewClient()
	if err != nil {
		return fmt.Errorf("failed to create WOL client: %w", err)
	}
	defer func() { _ = client.Close() }()

	ip := net.ParseIP(broadcastIP)
	if ip == nil {
		return fmt.Errorf("invalid broadcast IP: %s", broadcastIP)
	}

	if err := client.Wake(net.JoinHostPort(ip.String(), "9"), mac); err != nil {
		return fmt.Errorf("failed to send WOL packet: %w", err)
	}

	return nil
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Impl implements the WOL Service interface.
type Impl struct {
	wolClient Client
	sleep     Sleeper
	logger    zerolog.Logger
}

// New creates a new WOL service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		wolClient: &DefaultClient{},
		sleep:     Sleep,
		logger:    logger,
	}
}

// NewWithClient creates a new WOL service with a custom client and sleeper (for testing).
func NewWithClient(logger zerolog.Logger, wolClient Client, sleep Sleeper) *Impl {
	return &Impl{
		wolClient: wolClient,
		sleep:     sleep,
		logger:    logger,
	}
}

// ParseMAC parses a hardware address and requires the 6-octet form.
func ParseMAC(s string) (net.HardwareAddr, error) {
	mac, err := net.ParseMAC(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", models.ErrInvalidMAC, s, err)
	}
	if len(mac) != 6 {
		return nil, fmt.Errorf("%w %q: expected 6 octets, got %d", models.ErrInvalidMAC, s, len(mac))
	}
	return mac, nil
}

// Wake sends cfg.Attempts magic packets, pausing cfg.Interval between them.
// The first failed send aborts the sequence.
func (s *Impl) Wake(ctx context.Context, cfg models.WakeConfig) (*models.WakeResult, error) {
	result := &models.WakeResult{}
	start := time.Now()

	mac, err := ParseMAC(cfg.MACAddress)
	if err != nil {
		result.Error = err
		return result, nil
	}
	result.MAC = mac

	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 1
	}

	s.logger.Info().
		Str("mac", mac.String()).
		Str("broadcast", cfg.BroadcastIP).
		Int("attempts", attempts).
		Msg("sending WOL packets")

	for i := 0; i < attempts; i++ {
		if i > 0 && cfg.Interval > 0 {
			if err := s.sleep(ctx, cfg.Interval); err != nil {
				result.Duration = time.Since(start)
				result.Error = err
				return result, nil
			}
		}

		if err := s.wolClient.Wake(cfg.BroadcastIP, mac); err != nil {
			s.logger.Debug().Err(err).Int("attempt", i+1).Msg("WOL packet failed")
			result.Duration = time.Since(start)
			result.Error = err
			return result, nil //nolint:nilerr // error is stored in result struct by design
		}

		result.PacketsSent++
		s.logger.Debug().Int("attempt", i+1).Msg("WOL packet sent")
	}

	result.Duration = time.Since(start)
	s.logger.Info().
		Int("packets", result.PacketsSent).
		Dur("duration", result.Duration).
		Msg("WOL packets sent successfully")

	return result, nil
}
