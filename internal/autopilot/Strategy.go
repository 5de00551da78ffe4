package autopilot

import "github.com/Mshel/snakepilot/internal/game"

// Strategy chooses the next heading from a snapshot of the game.
type Strategy interface {
	NextHeading(snap game.Snapshot) (game.Heading, error)
	Name() string
}

// FloodStrategy is the built-in two-phase planner.
type FloodStrategy struct{}

func (FloodStrategy) NextHeading(snap game.Snapshot) (game.Heading, error) {
	return PlanHeading(snap.Size, snap.Snake, snap.Food)
}

func (FloodStrategy) Name() string { return "flood" }

// NewStrategy loads the Lua script at scriptPath, or returns the built-in
// planner when the path is empty.
func NewStrategy(scriptPath string) (Strategy, error) {
	if scriptPath == "" {
		return FloodStrategy{}, nil
	}
	return LoadScriptStrategy(scriptPath)
}

// Close releases resources held by strategies that have any.
func Close(s Strategy) {
	if closer, ok := s.(interface{ Close() }); ok {
		closer.Close()
	}
}
