package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the hardcoded default configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			TileSize:        64,
			Gravity:         0.2,
			VelocitySnap:    0.2,
			MaxFallSpeed:    16,
			GroundInset:     10,
			JumpVelocity:    -7,
			PadJumpVelocity: -10.2,
			StandEpsilon:    0.01,
		},
		Hero: HeroConfig{
			Width:         44,
			Height:        60,
			Acc:           0.2,
			Friction:      -0.05,
			MaxHearts:     3,
			MaxArmour:     3,
			MaxCoins:      999,
			ArrowCooldown: 50,
			MaxArrows:     5,
			ShootFrameMs:  50,
			RunFrameMs:    100,
			IdleFrameMs:   150,
		},
		Orc: OrcConfig{
			Width:          52,
			Height:         60,
			Acc:            0.2,
			Friction:       -0.1,
			Health:         100,
			PatrolSpeed:    1,
			ChaseRange:     512,
			AttackCooldown: 30,
			FrameMs:        350,
		},
		Fly: FlyConfig{
			Width:          48,
			Height:         40,
			Health:         200,
			ChaseRangeX:    512,
			ChaseRangeY:    256,
			Speeds:         []float64{1, 1.5},
			BobAcc:         0.2,
			BobLimit:       2,
			AttackCooldown: 30,
			FrameMs:        150,
		},
		Arrow: ArrowConfig{
			Width:      40,
			Height:     10,
			Acc:        0.3,
			Damage:     100,
			WallOffset: 10,
		},
		Spawner: SpawnerConfig{
			IntervalMs: 10000,
			JitterMs:   2000,
			OpenMs:     10000,
		},
		JumpPad: JumpPadConfig{
			ActiveMs: 5500,
		},
		Pickups: PickupConfig{
			KeySize:     40,
			CoinSize:    30,
			Inset:       17,
			CoinFrameMs: 100,
		},
		Town: TownConfig{
			Acc:      0.2,
			Friction: -0.05,
			FrameMs:  150,
		},
		Shop: ShopConfig{
			ArmourPrice:   5,
			MedicinePrice: 10,
		},
		Difficulties: DefaultProfiles(),
	}
}

// DefaultProfiles returns the built-in normal, impossible and god profiles.
func DefaultProfiles() map[Difficulty]DifficultyProfile {
	return map[Difficulty]DifficultyProfile{
		DifficultyNormal: {
			Multiplier:  1,
			OrcDamage:   1,
			FlyDamage:   3,
			SpikeDamage: 3,
			SpawnerCap:  2,
			CoinValue:   1,
			CoinChance:  1,
		},
		DifficultyImpossible: {
			Multiplier:  0.5,
			OrcDamage:   3,
			FlyDamage:   3,
			SpikeDamage: 3,
			SpawnerCap:  4,
			CoinValue:   1,
			CoinChance:  0.5,
		},
		DifficultyGod: {
			Multiplier:  100,
			OrcDamage:   0,
			FlyDamage:   0,
			SpikeDamage: 0,
			SpawnerCap:  2,
			CoinValue:   100,
			CoinChance:  1,
		},
	}
}
