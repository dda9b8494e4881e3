package network

import (
	"testing"
	"time"

	"github.com/automoto/plaza-mp/shared/avatarmath"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestSendGateFirstSendAlwaysPasses(t *testing.T) {
	g := NewSendGate(0.1, 0.02, time.Second)
	now := time.Now()
	assert.True(t, g.ShouldSend(mgl64.Vec3{}, mgl64.QuatIdent(), netconfig.MoveIdle, now))
}

func TestSendGateSuppressesTinyMoves(t *testing.T) {
	g := NewSendGate(0.1, 0.02, time.Minute)
	now := time.Now()
	g.ShouldSend(mgl64.Vec3{}, mgl64.QuatIdent(), netconfig.MoveIdle, now)

	assert.False(t, g.ShouldSend(mgl64.Vec3{0.05, 0, 0}, mgl64.QuatIdent(), netconfig.MoveIdle, now))
}

func TestSendGatePassesPositionThreshold(t *testing.T) {
	g := NewSendGate(0.1, 0.02, time.Minute)
	now := time.Now()
	g.ShouldSend(mgl64.Vec3{}, mgl64.QuatIdent(), netconfig.MoveIdle, now)

	assert.True(t, g.ShouldSend(mgl64.Vec3{0.2, 0, 0}, mgl64.QuatIdent(), netconfig.MoveIdle, now))
}

func TestSendGatePassesRotationThreshold(t *testing.T) {
	g := NewSendGate(0.1, 0.02, time.Minute)
	now := time.Now()
	g.ShouldSend(mgl64.Vec3{}, mgl64.QuatIdent(), netconfig.MoveIdle, now)

	assert.True(t, g.ShouldSend(mgl64.Vec3{}, avatarmath.Yaw(0.1), netconfig.MoveIdle, now))
}

func TestSendGatePassesMovementChange(t *testing.T) {
	g := NewSendGate(0.1, 0.02, time.Minute)
	now := time.Now()
	g.ShouldSend(mgl64.Vec3{}, mgl64.QuatIdent(), netconfig.MoveIdle, now)

	assert.True(t, g.ShouldSend(mgl64.Vec3{}, mgl64.QuatIdent(), netconfig.MoveWalking, now))
}

func TestSendGateKeepalive(t *testing.T) {
	g := NewSendGate(0.1, 0.02, 250*time.Millisecond)
	now := time.Now()
	g.ShouldSend(mgl64.Vec3{}, mgl64.QuatIdent(), netconfig.MoveIdle, now)

	assert.False(t, g.ShouldSend(mgl64.Vec3{}, mgl64.QuatIdent(), netconfig.MoveIdle, now.Add(100*time.Millisecond)))
	assert.True(t, g.ShouldSend(mgl64.Vec3{}, mgl64.QuatIdent(), netconfig.MoveIdle, now.Add(300*time.Millisecond)))
}

func TestSendGateRecordsSentState(t *testing.T) {
	g := NewSendGate(0.1, 0.02, time.Minute)
	now := time.Now()
	g.ShouldSend(mgl64.Vec3{}, mgl64.QuatIdent(), netconfig.MoveIdle, now)
	g.ShouldSend(mgl64.Vec3{1, 0, 0}, mgl64.QuatIdent(), netconfig.MoveIdle, now)

	// Deltas are measured from the last accepted send, not the first.
	assert.False(t, g.ShouldSend(mgl64.Vec3{1.05, 0, 0}, mgl64.QuatIdent(), netconfig.MoveIdle, now))
}
