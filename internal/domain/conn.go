// Package domain contains entity without logic, just meta-data
package domain

import "github.com/google/uuid"

// ConnID names one live signaling transport. It is always minted by the
// server and never taken from the client.
type ConnID string

func NewConnID() ConnID {
	return ConnID(uuid.NewString())
}
