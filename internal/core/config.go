package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 30)
	Seed     int64  // RNG seed; equal seeds replay identical sessions
	Player   string // Name offered when submitting a score
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the summary a game reports to the platform each tick.
type GameState struct {
	Score    int  // Final score once GameOver, 0 before
	GameOver bool // Whether the session has ended
	Paused   bool // Whether the game is paused
	Moves    int  // Accepted moves so far
	Highest  int  // Highest tile seen
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Moved bool // A move was accepted this tick
}
