package core

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/automoto/plaza-mp/shared/avatarmath"
	"github.com/automoto/plaza-mp/shared/netcomponents"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// Bot locomotion tuning. Speeds match the client's avatar constants so bot
// movement looks like player movement on the wire.
const (
	botWalkSpeed = 1.4
	botTurnSpeed = math.Pi

	// Headings closer than this to the next waypoint are corrected while
	// walking; larger ones get a dedicated turn-in-place phase.
	botMaxWalkTurn = math.Pi / 4
)

type botPhase int

const (
	botPausing botPhase = iota
	botTurning
	botWalking
)

// Bot is an ambient avatar that wanders the plaza between random waypoints,
// emitting the same movement states a player would. Phases are driven by
// gween tweens so walking and turning take realistic wall-clock time.
type Bot struct {
	entity donburi.Entity
	world  donburi.World
	rng    *rand.Rand

	pos      mgl64.Vec3
	yaw      float64
	movement netconfig.MovementState

	phase botPhase
	pause *gween.Tween // idle timer between segments
	turn  *gween.Tween // yaw over a turn
	walk  *gween.Tween // distance along the current segment

	segStart mgl64.Vec3
	segDir   mgl64.Vec3
	segDist  float64
}

// NewBot spawns a bot entity into the world and registers it for sync.
func NewBot(world donburi.World, index int, rng *rand.Rand) (*Bot, error) {
	entity := world.Create(netcomponents.NetAvatarPose, netcomponents.NetAvatarState)
	entry := world.Entry(entity)

	pos := randomWaypoint(rng)
	pose := netcomponents.NetAvatarPose.Get(entry)
	pose.SetPosition(pos)
	pose.SetRotation(mgl64.QuatIdent())

	netcomponents.NetAvatarState.Set(entry, &netcomponents.NetAvatarStateData{
		Movement:    netconfig.MoveIdle,
		DisplayName: fmt.Sprintf("bot-%d", index),
	})

	b := &Bot{
		entity:   entity,
		world:    world,
		rng:      rng,
		pos:      pos,
		movement: netconfig.MoveIdle,
		phase:    botPausing,
		pause:    gween.New(0, 1, float32(1+rng.Float64()*2), ease.Linear),
	}
	return b, nil
}

// Step advances the bot by dt seconds and writes its pose into the synced
// components.
func (b *Bot) Step(dt float64) {
	switch b.phase {
	case botPausing:
		if _, done := b.pause.Update(float32(dt)); done {
			b.beginSegment()
		}
	case botTurning:
		yaw, done := b.turn.Update(float32(dt))
		b.yaw = float64(yaw)
		if done {
			b.turn = nil
			b.beginWalk()
		}
	case botWalking:
		if b.turn != nil {
			yaw, done := b.turn.Update(float32(dt))
			b.yaw = float64(yaw)
			if done {
				b.turn = nil
				b.movement = netconfig.MoveWalking
			}
		}
		dist, done := b.walk.Update(float32(dt))
		b.pos = b.segStart.Add(b.segDir.Mul(float64(dist)))
		if done {
			b.walk = nil
			b.movement = netconfig.MoveIdle
			b.phase = botPausing
			b.pause = gween.New(0, 1, float32(1+b.rng.Float64()*2), ease.Linear)
		}
	}

	entry := b.world.Entry(b.entity)
	pose := netcomponents.NetAvatarPose.Get(entry)
	pose.SetPosition(b.pos)
	pose.SetRotation(avatarmath.Yaw(b.yaw))
	netcomponents.NetAvatarState.Get(entry).Movement = b.movement
}

// beginSegment picks the next waypoint and decides whether the heading
// change needs a turn-in-place first.
func (b *Bot) beginSegment() {
	target := randomWaypoint(b.rng)
	delta := target.Sub(b.pos)
	if delta.Len() < 1 {
		// Too close to bother, idle a little longer.
		b.pause = gween.New(0, 1, 1, ease.Linear)
		return
	}

	b.segStart = b.pos
	b.segDir = mgl64.Vec3{delta.X(), 0, delta.Z()}.Normalize()
	b.segDist = b.clampSegment(delta.Len())

	yawTo := math.Atan2(b.segDir.X(), b.segDir.Z())
	yawDelta := wrapAngle(yawTo - b.yaw)

	if math.Abs(yawDelta) > botMaxWalkTurn {
		duration := float32(math.Abs(yawDelta) / botTurnSpeed)
		b.turn = gween.New(float32(b.yaw), float32(b.yaw+yawDelta), duration, ease.InOutQuad)
		b.phase = botTurning
		if yawDelta < 0 {
			b.movement = netconfig.MoveTurningRight
		} else {
			b.movement = netconfig.MoveTurningLeft
		}
		return
	}

	// Small heading error: correct it while already walking.
	if math.Abs(yawDelta) > 0.05 {
		duration := float32(math.Abs(yawDelta) / botTurnSpeed)
		b.turn = gween.New(float32(b.yaw), float32(b.yaw+yawDelta), duration, ease.Linear)
		if yawDelta < 0 {
			b.movement = netconfig.MoveWalkingTurningRight
		} else {
			b.movement = netconfig.MoveWalkingTurningLeft
		}
	} else {
		b.yaw = yawTo
		b.movement = netconfig.MoveWalking
	}
	b.startWalkTween()
	b.phase = botWalking
}

// beginWalk starts the walking phase after a turn-in-place completed.
func (b *Bot) beginWalk() {
	b.movement = netconfig.MoveWalking
	b.startWalkTween()
	b.phase = botWalking
}

func (b *Bot) startWalkTween() {
	b.walk = gween.New(0, float32(b.segDist), float32(b.segDist/botWalkSpeed), ease.Linear)
}

// clampSegment shortens a segment so it never leaves the walkable area,
// probing ahead in half-unit steps. Keeps bots clear of the fountain without
// collision checks.
func (b *Bot) clampSegment(want float64) float64 {
	dist := 0.5
	for dist < want {
		probe := b.segStart.Add(b.segDir.Mul(dist + 0.5))
		if !InsideWalkable(probe.X(), probe.Z()) {
			break
		}
		dist += 0.5
	}
	return dist
}

// randomWaypoint samples a walkable point in the plaza.
func randomWaypoint(rng *rand.Rand) mgl64.Vec3 {
	for {
		x := (rng.Float64() - 0.5) * netconfig.PlazaWidth
		z := (rng.Float64() - 0.5) * netconfig.PlazaDepth
		if InsideWalkable(x, z) {
			return mgl64.Vec3{x, 0, z}
		}
	}
}

// wrapAngle normalizes an angle to (-pi, pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
