// Package webos talks to the control service of LG webOS TVs.
package webos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/fgeck/homectl/internal/models"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Port is the plain-text control port of webOS TVs.
	Port = "3000"

	handshakeTimeout = 10 * time.Second
	pairingTimeout   = 60 * time.Second
	commandTimeout   = 10 * time.Second
)

// EndpointURL returns the control endpoint for a TV address.
func EndpointURL(ip string) string {
	return "ws://" + net.JoinHostPort(ip, Port) + "/"
}

// Client opens control sessions.
type Client interface {
	Open(ctx context.Context, endpoint, key string) (Session, error)
}

// Session is an authenticated connection to the TV.
type Session interface {
	// Key returns the pairing key in use, newly issued or supplied.
	Key() string
	SendCommand(ctx context.Context, cmd Command) (*models.CommandResponse, error)
	Close() error
}

// Dialer wraps websocket.Dialer for mocking.
type Dialer interface {
	DialContext(ctx context.Context, urlStr string, requestHeader http.Header) (*websocket.Conn, *http.Response, error)
}

// Impl implements the Client interface.
type Impl struct {
	dialer         Dialer
	logger         zerolog.Logger
	pairingTimeout time.Duration
	commandTimeout time.Duration
}

// New creates a new webOS client.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		dialer: &websocket.Dialer{
			HandshakeTimeout: handshakeTimeout,
		},
		logger:         logger,
		pairingTimeout: pairingTimeout,
		commandTimeout: commandTimeout,
	}
}

// NewWithDialer creates a new webOS client with a custom dialer and timeouts (for testing).
func NewWithDialer(logger zerolog.Logger, dialer Dialer, pairing, command time.Duration) *Impl {
	return &Impl{
		dialer:         dialer,
		logger:         logger,
		pairingTimeout: pairing,
		commandTimeout: command,
	}
}

// Open connects to endpoint and registers with key. An empty key starts
// pairing, which blocks until the user accepts the prompt on the TV.
func (c *Impl) Open(ctx context.Context, endpoint, key string) (Session, error) {
	c.logger.Debug().Str("endpoint", endpoint).Bool("has_key", key != "").Msg("connecting to TV")

	conn, _, err := c.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}

	s := &session{
		conn:           conn,
		logger:         c.logger,
		commandTimeout: c.commandTimeout,
	}

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	issued, err := s.register(key, c.pairingTimeout)
	stop()
	if err != nil {
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	s.key = issued
	c.logger.Debug().Str("endpoint", endpoint).Msg("registered with TV")

	return s, nil
}

type session struct {
	conn           *websocket.Conn
	logger         zerolog.Logger
	commandTimeout time.Duration
	key            string
	nextID         int
}

func (s *session) Key() string {
	return s.key
}

func (s *session) register(key string, timeout time.Duration) (string, error) {
	payload, err := json.Marshal(registerPayload{
		PairingType: "PROMPT",
		ClientKey:   key,
		Manifest:    defaultManifest(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal register payload: %w", err)
	}

	req := message{Type: typeRegister, ID: "register_0", Payload: payload}
	if err := s.write(req); err != nil {
		return "", fmt.Errorf("failed to send register request: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		in, err := s.read(req.ID, deadline)
		if err != nil {
			return "", fmt.Errorf("registration failed: %w", err)
		}

		switch in.Type {
		case typeRegistered:
			var p registeredPayload
			if err := json.Unmarshal(in.Payload, &p); err != nil {
				return "", fmt.Errorf("failed to decode registration: %w", err)
			}
			if p.ClientKey != "" {
				return p.ClientKey, nil
			}
			if key != "" {
				return key, nil
			}
			return "", errors.New("registration failed: TV did not issue a client key")
		case typeResponse:
			var p responsePayload
			_ = json.Unmarshal(in.Payload, &p)
			if p.ReturnValue != nil && !*p.ReturnValue {
				return "", fmt.Errorf("registration failed: %s", p.ErrorText)
			}
			if p.PairingType != "" {
				s.logger.Info().Str("pairing_type", p.PairingType).Msg("waiting for pairing to be accepted on the TV")
			}
		}
	}
}

// SendCommand sends cmd and waits for the matching response.
func (s *session) SendCommand(ctx context.Context, cmd Command) (*models.CommandResponse, error) {
	s.nextID++
	req := message{
		Type:    typeRequest,
		ID:      fmt.Sprintf("command_%d", s.nextID),
		URI:     string(cmd),
		Payload: json.RawMessage(`{}`),
	}

	stop := context.AfterFunc(ctx, func() { _ = s.conn.Close() })
	defer stop()

	s.logger.Debug().Str("id", req.ID).Str("uri", req.URI).Msg("sending command")

	resp, err := s.roundTrip(req)
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return resp, err
}

func (s *session) roundTrip(req message) (*models.CommandResponse, error) {
	if err := s.write(req); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", req.URI, err)
	}

	deadline := time.Now().Add(s.commandTimeout)
	for {
		in, err := s.read(req.ID, deadline)
		if err != nil {
			return nil, err
		}
		if in.Type != typeResponse {
			continue
		}

		var p responsePayload
		if len(in.Payload) > 0 {
			if err := json.Unmarshal(in.Payload, &p); err != nil {
				return nil, fmt.Errorf("failed to decode response: %w", err)
			}
		}
		if p.ReturnValue != nil && !*p.ReturnValue {
			return nil, fmt.Errorf("%s failed: %s", req.URI, p.ErrorText)
		}

		return &models.CommandResponse{ID: in.ID, Payload: in.Payload}, nil
	}
}

// read returns the next frame for id. Error frames become *Error.
func (s *session) read(id string, deadline time.Time) (*message, error) {
	for {
		if err := s.conn.SetReadDeadline(deadline); err != nil {
			return nil, err
		}

		var in message
		if err := s.conn.ReadJSON(&in); err != nil {
			return nil, err
		}

		if in.ID != id {
			s.logger.Debug().Str("id", in.ID).Str("type", in.Type).Msg("ignoring unrelated frame")
			continue
		}
		if in.Type == typeError {
			return nil, &Error{ID: in.ID, Message: in.Error}
		}

		return &in, nil
	}
}

func (s *session) write(m message) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.commandTimeout)); err != nil {
		return err
	}
	return s.conn.WriteJSON(m)
}

// Close closes the connection, sending a close frame first.
func (s *session) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return s.conn.Close()
}
