package network

import (
	"time"

	"github.com/automoto/plaza-mp/shared/avatarmath"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
)

// SendGate suppresses avatar updates that would not be visible on the other
// end: a pose is only worth transmitting once the avatar moved or turned past
// the configured thresholds, the movement state changed, or the keepalive
// interval elapsed.
type SendGate struct {
	posThreshold float64 // world units
	rotThreshold float64 // radians
	keepalive    time.Duration

	sentOnce     bool
	lastPos      mgl64.Vec3
	lastRot      mgl64.Quat
	lastMovement netconfig.MovementState
	lastSend     time.Time
}

func NewSendGate(posThreshold, rotThreshold float64, keepalive time.Duration) *SendGate {
	return &SendGate{
		posThreshold: posThreshold,
		rotThreshold: rotThreshold,
		keepalive:    keepalive,
	}
}

// ShouldSend reports whether the pose is worth transmitting now, and if so
// records it as the last sent state.
func (g *SendGate) ShouldSend(pos mgl64.Vec3, rot mgl64.Quat, movement netconfig.MovementState, now time.Time) bool {
	send := !g.sentOnce ||
		movement != g.lastMovement ||
		pos.Sub(g.lastPos).Len() > g.posThreshold ||
		avatarmath.AngleBetween(rot, g.lastRot) > g.rotThreshold ||
		now.Sub(g.lastSend) >= g.keepalive

	if !send {
		return false
	}

	g.sentOnce = true
	g.lastPos = pos
	g.lastRot = rot
	g.lastMovement = movement
	g.lastSend = now
	return true
}
