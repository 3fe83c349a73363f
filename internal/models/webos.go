package models

import "encoding/json"

// CommandResponse is the reply the TV sent for a single command.
type CommandResponse struct {
	ID      string
	Payload json.RawMessage
}

// ControlOutcome is the successful result of the power-off flow.
// It is either Paired or Completed.
type ControlOutcome interface {
	isControlOutcome()
}

// Paired is returned when no key was supplied and the TV issued a new one.
// No command was sent to the TV.
type Paired struct {
	Key string
}

// Completed is returned when the command ran over an authenticated session.
type Completed struct {
	Response CommandResponse
}

func (Paired) isControlOutcome()    {}
func (Completed) isControlOutcome() {}
