// Package simulation provides the tuning rules for the platformer simulation.
// Every gameplay constant lives here so a data file can rebalance a run
// without touching code.
package simulation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all simulation rules for a game
type Config struct {
	Physics     PhysicsConfig    `yaml:"physics"`
	Player      PlayerConfig     `yaml:"player"`
	Enemy       WalkerConfig     `yaml:"enemy"`
	Chicken     WalkerConfig     `yaml:"chicken"`
	Ufo         UfoConfig        `yaml:"ufo"`
	Wall        WallConfig       `yaml:"wall"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Contact     ContactConfig    `yaml:"contact"`
	Feedback    FeedbackConfig   `yaml:"feedback"`
	Levels      []LevelConfig    `yaml:"levels"`
}

// Size is a width/height pair in pixels.
type Size struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// PhysicsConfig defines the shared movement rules
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`           // Added to vertical velocity each tick
	TerminalVelocity float64 `yaml:"terminal_velocity"` // Cap on falling speed
	JumpGraceFrames  int     `yaml:"jump_grace_frames"` // Air time before the jump animation shows
	TileSize         float64 `yaml:"tile_size"`
	CeilingProbe     int     `yaml:"ceiling_probe"` // Tiles scanned above a point for ceiling checks
}

// PlayerConfig defines the player's body and abilities
type PlayerConfig struct {
	Size             Size    `yaml:"size"`
	MaxHealth        int     `yaml:"max_health"`
	RespawnHealthCap int     `yaml:"respawn_health_cap"` // Max health is trimmed to this on respawn
	BonusHealthCap   int     `yaml:"bonus_health_cap"`   // Health pickups never raise max past this
	MoveSpeed        float64 `yaml:"move_speed"`
	JumpVelocity     float64 `yaml:"jump_velocity"`
	JumpAirTime      int     `yaml:"jump_air_time"`     // Air time registered when a jump fires
	FallDeathFrames  int     `yaml:"fall_death_frames"` // Air time that counts as falling out of the world
	InvulnFrames     int     `yaml:"invuln_frames"`     // Invulnerability granted after taking damage
	KnockbackDecay   float64 `yaml:"knockback_decay"`

	DashCooldownMS     int64   `yaml:"dash_cooldown_ms"`
	DashSpeed          float64 `yaml:"dash_speed"`
	DashFrames         int     `yaml:"dash_frames"`
	DashWallDivisor    int     `yaml:"dash_wall_divisor"` // Heavy hazards lose max/divisor per player hit
	DashHeavyBounce    float64 `yaml:"dash_heavy_bounce"` // Rebound multiplier off a surviving heavy hazard
	AttackCooldownMS   int64   `yaml:"attack_cooldown_ms"`
	AttackDurationMS   int64   `yaml:"attack_duration_ms"`
	FireballCooldownMS int64   `yaml:"fireball_cooldown_ms"`
}

// WalkerConfig defines a ground-walking enemy with the wander behavior
type WalkerConfig struct {
	Size         Size    `yaml:"size"`
	MaxHealth    int     `yaml:"max_health"`
	WalkSpeed    float64 `yaml:"walk_speed"`
	WanderChance float64 `yaml:"wander_chance"` // Per-tick chance to start walking while idle
	WanderMin    int     `yaml:"wander_min"`
	WanderMax    int     `yaml:"wander_max"`
	ProbeAhead   float64 `yaml:"probe_ahead"` // Horizontal offset of the ledge probe from center
	ProbeBelow   float64 `yaml:"probe_below"` // Vertical offset of the ledge probe from the top edge
	SightBand    float64 `yaml:"sight_band"`  // Vertical tolerance for shooting at the player
	MuzzleOffset float64 `yaml:"muzzle_offset"`
}

// UfoConfig defines the aerial hazard
type UfoConfig struct {
	Size           Size    `yaml:"size"`
	MaxHealth      int     `yaml:"max_health"`
	NearDistance   float64 `yaml:"near_distance"` // Hovering switches to attacking inside this range
	FarDistance    float64 `yaml:"far_distance"`  // Attacking gives up beyond this range
	AttackSpeed    float64 `yaml:"attack_speed"`
	RetreatSpeed   float64 `yaml:"retreat_speed"`
	RetreatMS      int64   `yaml:"retreat_ms"`
	RedirectMinMS  int64   `yaml:"redirect_min_ms"`
	RedirectMaxMS  int64   `yaml:"redirect_max_ms"`
	HoverAmplitude float64 `yaml:"hover_amplitude"`
	HoverPeriodMS  float64 `yaml:"hover_period_ms"`
}

// WallConfig defines the large drifting hazard
type WallConfig struct {
	Size      Size    `yaml:"size"`
	MaxHealth int     `yaml:"max_health"`
	Drift     float64 `yaml:"drift"` // Horizontal pixels per tick; negative is leftward
	HitRegion Size    `yaml:"hit_region"`
}

// ProjectileClassConfig defines speed and range for one projectile class
type ProjectileClassConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	MaxAge          int     `yaml:"max_age"`
}

// ProjectileConfig groups the four projectile classes
type ProjectileConfig struct {
	BaseSpeed float64               `yaml:"base_speed"` // Unscaled speed every projectile is fired with
	EnemyShot ProjectileClassConfig `yaml:"enemy_shot"`
	Fireball  ProjectileClassConfig `yaml:"fireball"`
	Sword     ProjectileClassConfig `yaml:"sword"`
	Egg       ProjectileClassConfig `yaml:"egg"`
}

// ContactConfig defines damage dealt by touching a hazard
type ContactConfig struct {
	WallDamage      int     `yaml:"wall_damage"`
	WallKnockbackX  float64 `yaml:"wall_knockback_x"`
	WallKnockbackY  float64 `yaml:"wall_knockback_y"`
	UfoDamage       int     `yaml:"ufo_damage"`
	UfoKnockbackX   float64 `yaml:"ufo_knockback_x"`
	UfoKnockbackY   float64 `yaml:"ufo_knockback_y"`
	KnockbackFrames int     `yaml:"knockback_frames"`
}

// FeedbackConfig defines the cosmetic response to hits
type FeedbackConfig struct {
	ScreenshakeFloor float64 `yaml:"screenshake_floor"`
	FlickerFrames    int     `yaml:"flicker_frames"`
	BurstSize        int     `yaml:"burst_size"`
	SparkCount       int     `yaml:"spark_count"`
}

// LevelConfig is what a level grants the player on load
type LevelConfig struct {
	Jumps     int `yaml:"jumps"`
	Dashes    int `yaml:"dashes"`
	Fireballs int `yaml:"fireballs"`
}

// DefaultConfig returns the rules the game ships with
func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Gravity:          0.1,
			TerminalVelocity: 5,
			JumpGraceFrames:  4,
			TileSize:         16,
			CeilingProbe:     1,
		},
		Player: PlayerConfig{
			Size:               Size{W: 16, H: 16},
			MaxHealth:          3,
			RespawnHealthCap:   3,
			BonusHealthCap:     4,
			MoveSpeed:          2.5,
			JumpVelocity:       -3,
			JumpAirTime:        5,
			FallDeathFrames:    120,
			InvulnFrames:       120,
			KnockbackDecay:     0.8,
			DashCooldownMS:     5500,
			DashSpeed:          5,
			DashFrames:         10,
			DashWallDivisor:    10,
			DashHeavyBounce:    4,
			AttackCooldownMS:   240,
			AttackDurationMS:   110,
			FireballCooldownMS: 2000,
		},
		Enemy: WalkerConfig{
			Size:         Size{W: 16, H: 16},
			MaxHealth:    4,
			WalkSpeed:    0.5,
			WanderChance: 0.01,
			WanderMin:    30,
			WanderMax:    120,
			ProbeAhead:   7,
			ProbeBelow:   23,
			SightBand:    32,
			MuzzleOffset: 7,
		},
		Chicken: WalkerConfig{
			Size:         Size{W: 16, H: 16},
			MaxHealth:    1,
			WalkSpeed:    1.75,
			WanderChance: 0.01,
			WanderMin:    30,
			WanderMax:    120,
			ProbeAhead:   7,
			ProbeBelow:   23,
			SightBand:    32,
			MuzzleOffset: 7,
		},
		Ufo: UfoConfig{
			Size:           Size{W: 16, H: 16},
			MaxHealth:      3,
			NearDistance:   300,
			FarDistance:    500,
			AttackSpeed:    3,
			RetreatSpeed:   2,
			RetreatMS:      3000,
			RedirectMinMS:  500,
			RedirectMaxMS:  1500,
			HoverAmplitude: 2,
			HoverPeriodMS:  1000,
		},
		Wall: WallConfig{
			Size:      Size{W: 32, H: 32},
			MaxHealth: 30,
			Drift:     -1,
			HitRegion: Size{W: 32, H: 500},
		},
		Projectiles: ProjectileConfig{
			BaseSpeed: 1.5,
			EnemyShot: ProjectileClassConfig{SpeedMultiplier: 1, MaxAge: 720},
			Fireball:  ProjectileClassConfig{SpeedMultiplier: 2.5, MaxAge: 360},
			Sword:     ProjectileClassConfig{SpeedMultiplier: 8, MaxAge: 3},
			Egg:       ProjectileClassConfig{SpeedMultiplier: 1, MaxAge: 720},
		},
		Contact: ContactConfig{
			WallDamage:      2,
			WallKnockbackX:  50,
			WallKnockbackY:  -2,
			UfoDamage:       1,
			UfoKnockbackX:   5,
			UfoKnockbackY:   -2,
			KnockbackFrames: 10,
		},
		Feedback: FeedbackConfig{
			ScreenshakeFloor: 16,
			FlickerFrames:    10,
			BurstSize:        30,
			SparkCount:       4,
		},
		Levels: []LevelConfig{
			{Jumps: 0, Dashes: 0, Fireballs: 0},
			{Jumps: 2, Dashes: 2, Fireballs: 0},
			{Jumps: 2, Dashes: 0, Fireballs: 0},
			{Jumps: 3, Dashes: 1, Fireballs: 0},
			{Jumps: 11, Dashes: 1, Fireballs: 1},
			{Jumps: 14, Dashes: 1, Fireballs: 2},
			{Jumps: 18, Dashes: 1, Fireballs: 2},
			{Jumps: 18, Dashes: 2, Fireballs: 2},
		},
	}
}

// LoadConfig loads simulation config from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config %s: %w", path, err)
	}

	return config, nil
}

// Validate checks the values the simulation divides by or counts down from.
func (c *Config) Validate() error {
	if c.Physics.TileSize <= 0 {
		return fmt.Errorf("physics.tile_size must be positive, got %v", c.Physics.TileSize)
	}
	if c.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.max_health must be positive, got %d", c.Player.MaxHealth)
	}
	if c.Player.DashWallDivisor <= 0 {
		return fmt.Errorf("player.dash_wall_divisor must be positive, got %d", c.Player.DashWallDivisor)
	}
	if c.Player.KnockbackDecay < 0 || c.Player.KnockbackDecay > 1 {
		return fmt.Errorf("player.knockback_decay must be within [0, 1], got %v", c.Player.KnockbackDecay)
	}
	for name, w := range map[string]WalkerConfig{"enemy": c.Enemy, "chicken": c.Chicken} {
		if w.WanderMin < 0 || w.WanderMax < w.WanderMin {
			return fmt.Errorf("%s wander range [%d, %d] is invalid", name, w.WanderMin, w.WanderMax)
		}
		if w.MaxHealth <= 0 {
			return fmt.Errorf("%s.max_health must be positive, got %d", name, w.MaxHealth)
		}
	}
	if c.Ufo.RedirectMaxMS < c.Ufo.RedirectMinMS {
		return fmt.Errorf("ufo redirect range [%d, %d] is invalid", c.Ufo.RedirectMinMS, c.Ufo.RedirectMaxMS)
	}
	if c.Ufo.HoverPeriodMS <= 0 {
		return fmt.Errorf("ufo.hover_period_ms must be positive, got %v", c.Ufo.HoverPeriodMS)
	}
	if len(c.Levels) == 0 {
		return fmt.Errorf("at least one level is required")
	}
	return nil
}

// Level returns the grants for level i, clamped to the table.
func (c *Config) Level(i int) LevelConfig {
	if i < 0 {
		i = 0
	}
	if len(c.Levels) == 0 {
		return LevelConfig{}
	}
	if i >= len(c.Levels) {
		i = len(c.Levels) - 1
	}
	return c.Levels[i]
}
