// Package config provides YAML-based configuration loading and difficulty
// profiles for the platformer simulation.
package config

// PlatformerConfig contains all tunable constants of the simulation.
type PlatformerConfig struct {
	Physics      PhysicsConfig                    `yaml:"physics"`
	Hero         HeroConfig                       `yaml:"hero"`
	Orc          OrcConfig                        `yaml:"orc"`
	Fly          FlyConfig                        `yaml:"fly"`
	Arrow        ArrowConfig                      `yaml:"arrow"`
	Spawner      SpawnerConfig                    `yaml:"spawner"`
	JumpPad      JumpPadConfig                    `yaml:"jump_pad"`
	Pickups      PickupConfig                     `yaml:"pickups"`
	Town         TownConfig                       `yaml:"town"`
	Shop         ShopConfig                       `yaml:"shop"`
	Difficulties map[Difficulty]DifficultyProfile `yaml:"difficulties"`
}

// PhysicsConfig defines integration and collision parameters shared by all bodies.
type PhysicsConfig struct {
	TileSize        int     `yaml:"tile_size"`
	Gravity         float64 `yaml:"gravity"`
	VelocitySnap    float64 `yaml:"velocity_snap"`    // |v| below this snaps to 0
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`   // keeps a falling body from skipping the ground snap
	GroundInset     float64 `yaml:"ground_inset"`     // bodies rest this many px below a tile's top
	JumpVelocity    float64 `yaml:"jump_velocity"`    // vy after a normal jump
	PadJumpVelocity float64 `yaml:"pad_jump_velocity"` // vy after a jump from an active pad
	StandEpsilon    float64 `yaml:"stand_epsilon"`    // tolerance for the standing check
}

// HeroConfig defines the player character.
type HeroConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Acc           float64 `yaml:"acc"`
	Friction      float64 `yaml:"friction"`
	MaxHearts     int     `yaml:"max_hearts"`
	MaxArmour     int     `yaml:"max_armour"`
	MaxCoins      int     `yaml:"max_coins"`
	ArrowCooldown int     `yaml:"arrow_cooldown"` // steps before the bow is ready again
	MaxArrows     int     `yaml:"max_arrows"`
	ShootFrameMs  int64   `yaml:"shoot_frame_ms"`
	RunFrameMs    int64   `yaml:"run_frame_ms"`
	IdleFrameMs   int64   `yaml:"idle_frame_ms"`
}

// OrcConfig defines the melee enemy.
type OrcConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Acc            float64 `yaml:"acc"`
	Friction       float64 `yaml:"friction"`
	Health         float64 `yaml:"health"`
	PatrolSpeed    float64 `yaml:"patrol_speed"`
	ChaseRange     float64 `yaml:"chase_range"`
	AttackCooldown int     `yaml:"attack_cooldown"`
	FrameMs        int64   `yaml:"frame_ms"`
}

// FlyConfig defines the flying enemy.
type FlyConfig struct {
	Width          float64   `yaml:"width"`
	Height         float64   `yaml:"height"`
	Health         float64   `yaml:"health"`
	ChaseRangeX    float64   `yaml:"chase_range_x"`
	ChaseRangeY    float64   `yaml:"chase_range_y"`
	Speeds         []float64 `yaml:"speeds"` // per-axis speed picked at random each step
	BobAcc         float64   `yaml:"bob_acc"`
	BobLimit       float64   `yaml:"bob_limit"`
	AttackCooldown int       `yaml:"attack_cooldown"`
	FrameMs        int64     `yaml:"frame_ms"`
}

// ArrowConfig defines the hero's projectile.
type ArrowConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Acc        float64 `yaml:"acc"`
	Damage     float64 `yaml:"damage"`
	WallOffset float64 `yaml:"wall_offset"`
}

// SpawnerConfig defines orc spawner timing.
type SpawnerConfig struct {
	IntervalMs int64 `yaml:"interval_ms"`
	JitterMs   int64 `yaml:"jitter_ms"`
	OpenMs     int64 `yaml:"open_ms"`
}

// JumpPadConfig defines how long a used pad stays extended.
type JumpPadConfig struct {
	ActiveMs int64 `yaml:"active_ms"`
}

// PickupConfig defines key and coin placement inside their tile.
type PickupConfig struct {
	KeySize     float64 `yaml:"key_size"`
	CoinSize    float64 `yaml:"coin_size"`
	Inset       float64 `yaml:"inset"`
	CoinFrameMs int64   `yaml:"coin_frame_ms"`
}

// TownConfig defines top-down movement in the hub.
type TownConfig struct {
	Acc      float64 `yaml:"acc"`
	Friction float64 `yaml:"friction"`
	FrameMs  int64   `yaml:"frame_ms"`
}

// ShopConfig defines base prices before the difficulty multiplier.
type ShopConfig struct {
	ArmourPrice   float64 `yaml:"armour_price"`
	MedicinePrice float64 `yaml:"medicine_price"`
}

// DifficultyProfile holds every difficulty-dependent rule.
type DifficultyProfile struct {
	Multiplier  float64 `yaml:"multiplier"`   // scales arrow damage, divides shop prices
	OrcDamage   int     `yaml:"orc_damage"`   // per melee hit
	FlyDamage   int     `yaml:"fly_damage"`   // per contact hit
	SpikeDamage int     `yaml:"spike_damage"` // bypasses armour
	SpawnerCap  int     `yaml:"spawner_cap"`  // live orcs per spawner
	CoinValue   int     `yaml:"coin_value"`
	CoinChance  float64 `yaml:"coin_chance"` // probability a pickup pays out
}
