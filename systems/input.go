package systems

import (
	"log"
	"time"

	"github.com/automoto/plaza-mp/components"
	cfg "github.com/automoto/plaza-mp/config"
	"github.com/automoto/plaza-mp/network"
	"github.com/automoto/plaza-mp/shared/avatarmath"
	"github.com/automoto/plaza-mp/shared/messages"
	"github.com/automoto/plaza-mp/shared/netcomponents"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi/ecs"
)

// NewLocalAvatarSystem returns the system that drives the local avatar from
// the keyboard and reports its pose to the server through the send gate.
// Up/W walks forward, left/right turn; combinations produce the
// walking-turning states.
func NewLocalAvatarSystem(sendFn func(any) error, gate *network.SendGate, localNetID func() esync.NetworkId, dt func() float64) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		id := localNetID()
		if id == 0 {
			return
		}
		entity := esync.FindByNetworkId(e.World, id)
		if !e.World.Valid(entity) {
			return
		}
		entry := e.World.Entry(entity)
		if !entry.HasComponent(components.AvatarPose) {
			return
		}
		pose := components.AvatarPose.Get(entry)

		forward := ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW)
		left := ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
		right := ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)

		turn := 0
		if left && !right {
			turn = -1
		} else if right && !left {
			turn = 1
		}

		movement := netconfig.MoveIdle
		switch {
		case forward && turn < 0:
			movement = netconfig.MoveWalkingTurningLeft
		case forward && turn > 0:
			movement = netconfig.MoveWalkingTurningRight
		case forward:
			movement = netconfig.MoveWalking
		case turn < 0:
			movement = netconfig.MoveTurningLeft
		case turn > 0:
			movement = netconfig.MoveTurningRight
		}

		elapsed := dt()
		if turn != 0 {
			// Negative yaw turns right when facing +Z.
			pose.Rotation = avatarmath.Yaw(-float64(turn) * cfg.Avatar.TurnSpeed * elapsed).Mul(pose.Rotation)
		}
		if movement.Walking() {
			step := avatarmath.Forward(pose.Rotation).Mul(cfg.Avatar.WalkSpeed * elapsed)
			pose.Position = clampToPlaza(pose.Position.Add(step))
		}

		// Mirror into the synced state component so the HUD and renderer see
		// the same movement state remote peers will.
		if entry.HasComponent(netcomponents.NetAvatarState) {
			netcomponents.NetAvatarState.Get(entry).Movement = movement
		}

		now := time.Now()
		if gate.ShouldSend(pose.Position, pose.Rotation, movement, now) {
			update := messages.AvatarUpdate{
				X: pose.Position.X(), Y: pose.Position.Y(), Z: pose.Position.Z(),
				QW: pose.Rotation.W,
				QX: pose.Rotation.V.X(), QY: pose.Rotation.V.Y(), QZ: pose.Rotation.V.Z(),
				Movement:  movement,
				Timestamp: now.UnixMilli(),
			}
			if err := sendFn(update); err != nil {
				log.Printf("[input] send error: %v", err)
			}
		}
	}
}

// NewModeSelectSystem switches the reconciliation mode on every remote avatar
// with the 1/2/3 keys.
func NewModeSelectSystem(onChange func(netconfig.ReconcileMode)) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		var mode netconfig.ReconcileMode
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
			mode = netconfig.ReconcileNone
		case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
			mode = netconfig.ReconcileDeadReckoning
		case inpututil.IsKeyJustPressed(ebiten.KeyDigit3):
			mode = netconfig.ReconcileSmoothCorrections
		default:
			return
		}

		SetReconcileMode(e.World, mode)
		if onChange != nil {
			onChange(mode)
		}
	}
}

func clampToPlaza(p mgl64.Vec3) mgl64.Vec3 {
	halfW := netconfig.PlazaWidth / 2
	halfD := netconfig.PlazaDepth / 2
	x := p.X()
	z := p.Z()
	if x > halfW {
		x = halfW
	} else if x < -halfW {
		x = -halfW
	}
	if z > halfD {
		z = halfD
	} else if z < -halfD {
		z = -halfD
	}
	return mgl64.Vec3{x, p.Y(), z}
}
