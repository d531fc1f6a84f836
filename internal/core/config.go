package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to size the viewport and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in cells
	ScreenH  int   // Screen height in cells
	TickRate int   // Simulation ticks per second (default 40)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultTickRate is the fixed simulation rate in steps per second.
const DefaultTickRate = 40

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Coins held by the hero
	GameOver bool // Whether the run has ended (death or victory)
	Victory  bool // Whether the campaign was completed
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
