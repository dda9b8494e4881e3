package systems

import (
	"github.com/automoto/plaza-mp/components"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ApplyMovementTransition maps a newly received target movement state to an
// animation trigger and records the state as applied. It only acts when a new
// state has arrived and differs from the current one; consuming it clears the
// one-shot flag.
func ApplyMovementTransition(rec *components.ReconcileData, target *components.AvatarTargetData, sink components.AnimationTriggerSink) {
	if !target.HasMovement || target.Movement == rec.Movement {
		return
	}

	prev := rec.Movement
	switch target.Movement {
	case netconfig.MoveWalking:
		// Entering a plain walk from a stationary state starts the walk
		// cycle; coming out of a walking-turn keeps the one already playing.
		if prev == netconfig.MoveIdle || prev == netconfig.MoveTurningLeft || prev == netconfig.MoveTurningRight {
			sink.FireTrigger(netconfig.TriggerWalk)
		}
	case netconfig.MoveIdle:
		sink.FireTrigger(netconfig.TriggerIdle)
	case netconfig.MoveTurningLeft:
		sink.FireTrigger(netconfig.TriggerTurnLeft)
	case netconfig.MoveTurningRight:
		sink.FireTrigger(netconfig.TriggerTurnRight)
	case netconfig.MoveWalkingTurningLeft:
		if prev != netconfig.MoveWalking && prev != netconfig.MoveWalkingTurningRight {
			sink.FireTrigger(netconfig.TriggerWalk)
		}
	case netconfig.MoveWalkingTurningRight:
		if prev != netconfig.MoveWalking && prev != netconfig.MoveWalkingTurningLeft {
			sink.FireTrigger(netconfig.TriggerWalk)
		}
	}

	rec.Movement = target.Movement
	target.HasMovement = false
}

// UpdateAvatarAnimations advances the active clip on every animated avatar.
func UpdateAvatarAnimations(e *ecs.ECS) {
	components.AvatarAnimation.Each(e.World, func(entry *donburi.Entry) {
		anim := components.AvatarAnimation.Get(entry)
		if anim.CurrentClip != nil {
			anim.CurrentClip.Update()
		}
	})
}
