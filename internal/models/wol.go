package models

import (
	"net"
	"time"
)

// WakeConfig holds Wake-on-LAN configuration.
type WakeConfig struct {
	MACAddress  string
	BroadcastIP string
	Attempts    int           // number of packets to send
	Interval    time.Duration // pause between packets
}

// WakeResult holds the result of a Wake-on-LAN operation.
type WakeResult struct {
	MAC         net.HardwareAddr
	PacketsSent int
	Duration    time.Duration
	Error       error
}
