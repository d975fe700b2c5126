package ability

import "chosenoffset.com/soulsworn/internal/simulation"

// Swing is the melee attack: a single cooldown slot plus a short window
// during which the swing is in progress and cannot be restarted.
type Swing struct {
	DurationMS int64
	cooldown   Cooldown
	swinging   bool
}

// Start begins a swing if none is in progress and the cooldown allows it.
func (s *Swing) Start(now int64) bool {
	if s.swinging || !s.cooldown.Ready(now) {
		return false
	}
	s.swinging = true
	s.cooldown.Trigger(now)
	return true
}

// Update ends the swing once its duration has passed.
func (s *Swing) Update(now int64) {
	if !s.swinging {
		return
	}
	if elapsed, _ := s.cooldown.Elapsed(now); elapsed > s.DurationMS {
		s.swinging = false
	}
}

// Active reports whether a swing is in progress.
func (s *Swing) Active() bool {
	return s.swinging
}

// Reset cancels any swing and makes the attack ready.
func (s *Swing) Reset() {
	s.swinging = false
	s.cooldown.Reset()
}

// Dash is a burst of horizontal speed backed by independent charge slots.
type Dash struct {
	Charges   Charges
	Frames    int
	Speed     float64
	remaining int
	dir       float64
}

// Start claims a charge and begins a dash toward dir (-1 or 1).
func (d *Dash) Start(now int64, dir float64) bool {
	if _, ok := d.Charges.Claim(now); !ok {
		return false
	}
	d.remaining = d.Frames
	d.dir = dir
	return true
}

// Active reports whether a dash is underway.
func (d *Dash) Active() bool {
	return d.remaining > 0
}

// Velocity returns the dash's horizontal speed.
func (d *Dash) Velocity() float64 {
	return d.Speed * d.dir
}

// Tick counts one frame down and reports whether the dash just ended.
func (d *Dash) Tick() bool {
	if d.remaining <= 0 {
		return false
	}
	d.remaining--
	return d.remaining == 0
}

// Stop ends the dash without touching the charges.
func (d *Dash) Stop() {
	d.remaining = 0
}

// Kit bundles every tracker the player owns.
type Kit struct {
	Jumps     Jumps
	Dash      Dash
	Swing     Swing
	Fireballs ShotPool
	Knockback Knockback
	Invuln    Invulnerability
}

// NewKit creates an empty kit from the player rules. Abilities are granted
// per level through Reset.
func NewKit(cfg simulation.PlayerConfig) Kit {
	return Kit{
		Dash: Dash{
			Charges: NewCharges(cfg.DashCooldownMS, 0),
			Frames:  cfg.DashFrames,
			Speed:   cfg.DashSpeed,
		},
		Swing: Swing{
			DurationMS: cfg.AttackDurationMS,
			cooldown:   Cooldown{PeriodMS: cfg.AttackCooldownMS},
		},
		Fireballs: NewShotPool(cfg.FireballCooldownMS),
		Knockback: Knockback{Decay: cfg.KnockbackDecay},
	}
}

// Reset drops every granted ability and applies a level's grants. Jump
// charges stay empty until the next ground contact.
func (k *Kit) Reset(level simulation.LevelConfig) {
	k.Jumps = Jumps{Capacity: level.Jumps}
	k.Dash.Stop()
	k.Dash.Charges.Clear()
	for i := 0; i < level.Dashes; i++ {
		k.Dash.Charges.Add()
	}
	k.Swing.Reset()
	k.Fireballs.Reset()
	k.Fireballs.SetCapacity(level.Fireballs)
	k.Knockback.Clear()
	k.Invuln.Clear()
}
