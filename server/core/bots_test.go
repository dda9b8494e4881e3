package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/automoto/plaza-mp/shared/netcomponents"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, 0, wrapAngle(2*math.Pi), 1e-9)
	assert.InDelta(t, -math.Pi/2, wrapAngle(3*math.Pi/2), 1e-9)
	assert.InDelta(t, math.Pi, wrapAngle(math.Pi), 1e-9)
	assert.InDelta(t, math.Pi, wrapAngle(-math.Pi), 1e-9)
}

func TestRandomWaypointIsWalkable(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		p := randomWaypoint(rng)
		assert.True(t, InsideWalkable(p.X(), p.Z()))
	}
}

func TestBotStaysInsidePlaza(t *testing.T) {
	world := donburi.NewWorld()
	rng := rand.New(rand.NewSource(42))
	bot, err := NewBot(world, 0, rng)
	require.NoError(t, err)

	// A minute of simulated wandering at the server tick rate.
	const dt = 0.1
	for i := 0; i < 600; i++ {
		bot.Step(dt)
		x, z := bot.pos.X(), bot.pos.Z()
		require.LessOrEqual(t, math.Abs(x), netconfig.PlazaWidth/2)
		require.LessOrEqual(t, math.Abs(z), netconfig.PlazaDepth/2)
	}
}

func TestBotEmitsWalkingStates(t *testing.T) {
	world := donburi.NewWorld()
	rng := rand.New(rand.NewSource(3))
	bot, err := NewBot(world, 0, rng)
	require.NoError(t, err)

	seen := map[netconfig.MovementState]bool{}
	for i := 0; i < 2000; i++ {
		bot.Step(0.05)
		seen[bot.movement] = true
	}

	assert.True(t, seen[netconfig.MoveIdle])
	assert.True(t, seen[netconfig.MoveWalking])
}

func TestBotWritesSyncedComponents(t *testing.T) {
	world := donburi.NewWorld()
	rng := rand.New(rand.NewSource(9))
	bot, err := NewBot(world, 4, rng)
	require.NoError(t, err)

	bot.Step(0.1)

	entry := world.Entry(bot.entity)
	pose := netcomponents.NetAvatarPose.Get(entry)
	state := netcomponents.NetAvatarState.Get(entry)

	assert.Equal(t, bot.pos, pose.Position())
	assert.Equal(t, "bot-4", state.DisplayName)
	assert.Equal(t, bot.movement, state.Movement)
}
