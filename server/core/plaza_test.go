package core

import (
	"testing"

	"github.com/automoto/plaza-mp/shared/netcomponents"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func newTestPlazaAvatar(t *testing.T, pos mgl64.Vec3) (*Plaza, donburi.Entity) {
	t.Helper()
	world := donburi.NewWorld()
	entity := world.Create(netcomponents.NetAvatarPose)
	plaza := NewPlaza()
	plaza.AddAvatar(entity, pos)
	return plaza, entity
}

func TestTryMoveAcrossOpenGround(t *testing.T) {
	plaza, avatar := newTestPlazaAvatar(t, mgl64.Vec3{10, 0, 10})
	assert.True(t, plaza.TryMove(avatar, mgl64.Vec3{12, 0, 10}))
}

func TestTryMoveIntoFountainRejected(t *testing.T) {
	plaza, avatar := newTestPlazaAvatar(t, mgl64.Vec3{FountainWidth, 0, 0})
	assert.False(t, plaza.TryMove(avatar, mgl64.Vec3{0, 0, 0}))
}

func TestTryMoveIntoWallRejected(t *testing.T) {
	edge := netconfig.PlazaWidth / 2
	plaza, avatar := newTestPlazaAvatar(t, mgl64.Vec3{edge - 2, 0, 0})
	assert.False(t, plaza.TryMove(avatar, mgl64.Vec3{edge, 0, 0}))
}

func TestTryMoveRejectionKeepsLastPosition(t *testing.T) {
	plaza, avatar := newTestPlazaAvatar(t, mgl64.Vec3{10, 0, 10})
	require.False(t, plaza.TryMove(avatar, mgl64.Vec3{0, 0, 0}))

	// The avatar stayed where it was, so a short legal move still works.
	assert.True(t, plaza.TryMove(avatar, mgl64.Vec3{11, 0, 10}))
}

func TestTryMoveUnknownAvatar(t *testing.T) {
	world := donburi.NewWorld()
	entity := world.Create(netcomponents.NetAvatarPose)
	plaza := NewPlaza()
	assert.False(t, plaza.TryMove(entity, mgl64.Vec3{1, 0, 1}))
}

func TestInsideWalkable(t *testing.T) {
	assert.True(t, InsideWalkable(10, 10))
	assert.False(t, InsideWalkable(0, 0), "fountain is not walkable")
	assert.False(t, InsideWalkable(netconfig.PlazaWidth/2, 0), "edge is inside the wall margin")
	assert.False(t, InsideWalkable(0, -netconfig.PlazaDepth), "outside the plaza")
}
