package core

// RuntimeConfig is passed to the game on reset.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Ticks per second
}

// DefaultConfig returns an 80x24 screen at 30 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status the game reports to the platform after each tick.
type GameState struct {
	StageID   string
	Rotations int
	Solved    bool
	Finished  bool // every stage in the catalog has been played through
}

// StepResult is returned by Step after each tick.
type StepResult struct {
	State GameState
	// Cleared is true on the tick a rotation solved the board.
	Cleared bool
}
