package components

import (
	"github.com/automoto/plaza-mp/config"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// AnimationTriggerSink receives animation triggers fired by the avatar state
// machine. The reconciler only dispatches triggers; clip playback and
// blending belong to the implementation behind this interface.
type AnimationTriggerSink interface {
	FireTrigger(id netconfig.TriggerID)
}

// Clip is a fixed-rate frame player for a looping avatar animation.
type Clip struct {
	First        int
	Last         int
	Step         int
	SpeedInTps   float64 // ticks before advancing to the next frame
	frameCounter float64
	frame        int
}

func NewClip(def config.ClipDef) *Clip {
	return &Clip{
		First:        def.First,
		Last:         def.Last,
		Step:         def.Step,
		SpeedInTps:   def.Speed,
		frameCounter: def.Speed,
		frame:        def.First,
	}
}

func (c *Clip) Update() {
	c.frameCounter -= 1.0
	if c.frameCounter < 0.0 {
		c.frameCounter = c.SpeedInTps
		c.frame += c.Step
		if c.frame > c.Last {
			c.frame = c.First
		}
	}
}

func (c *Clip) Frame() int {
	return c.frame
}

func (c *Clip) Restart() {
	c.frame = c.First
	c.frameCounter = c.SpeedInTps
}

// AvatarAnimationData plays the clip selected by the most recent trigger.
// It implements AnimationTriggerSink.
type AvatarAnimationData struct {
	Clips       map[netconfig.TriggerID]*Clip
	Current     netconfig.TriggerID
	CurrentClip *Clip
	Fired       int // total triggers accepted, shown on the debug HUD
}

var AvatarAnimation = donburi.NewComponentType[AvatarAnimationData]()

// NewAvatarAnimation builds the clip set from config.AvatarClips.
func NewAvatarAnimation() AvatarAnimationData {
	clips := make(map[netconfig.TriggerID]*Clip, len(config.AvatarClips))
	for id, def := range config.AvatarClips {
		clips[id] = NewClip(def)
	}
	return AvatarAnimationData{
		Clips:   clips,
		Current: netconfig.TriggerNone,
	}
}

// FireTrigger switches playback to the clip for id. Re-firing the current
// trigger is a no-op so a repeated trigger does not restart the clip.
func (a *AvatarAnimationData) FireTrigger(id netconfig.TriggerID) {
	a.Fired++
	if a.Current == id && a.CurrentClip != nil {
		return
	}

	clip, ok := a.Clips[id]
	if ok {
		a.CurrentClip = clip
		a.Current = id
		clip.Restart()
	} else {
		// No clip for this trigger, clear playback
		a.CurrentClip = nil
		a.Current = id
	}
}
