package app

import (
	"github.com/dkeye/Signal/internal/domain"
)

type BackpressureAction int

const (
	// DropMessage skips the slow receiver for this one message.
	DropMessage BackpressureAction = iota
	// KickMember closes the slow receiver's transport; its read loop then
	// runs the normal disconnect cleanup.
	KickMember
)

func (a BackpressureAction) String() string {
	switch a {
	case KickMember:
		return "kick"
	default:
		return "drop"
	}
}

// Policy decides what happens to a receiver whose send queue is full.
type Policy interface {
	OnBackPressure(room domain.RoomID, member domain.ConnID) BackpressureAction
}

// SimplePolicy applies one action to every slow receiver.
type SimplePolicy struct {
	Action BackpressureAction
}

func (p SimplePolicy) OnBackPressure(domain.RoomID, domain.ConnID) BackpressureAction {
	return p.Action
}
