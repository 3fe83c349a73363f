// Package models contains the data structures used throughout homectl.
package models

import "errors"

// Action selects what a single invocation does to the TV.
type Action int

const (
	// ActionPowerOn wakes the TV with Wake-on-LAN.
	ActionPowerOn Action = iota
	// ActionPowerOff turns the TV off over its control service.
	ActionPowerOff
)

func (a Action) String() string {
	switch a {
	case ActionPowerOn:
		return "on"
	case ActionPowerOff:
		return "off"
	default:
		return "unknown"
	}
}

// Configuration errors.
var (
	ErrIPRequired  = errors.New("ip address is required")
	ErrMACRequired = errors.New("hardware address required for power-on")
	ErrInvalidMAC  = errors.New("invalid hardware address")
)

// TVConfig describes the target device for one invocation.
type TVConfig struct {
	IP          string
	MACAddress  string // only needed for power-on
	WebOSKey    string // empty on first run
	BroadcastIP string
}

// HasKey reports whether a pairing key was supplied.
func (c TVConfig) HasKey() bool {
	return c.WebOSKey != ""
}
