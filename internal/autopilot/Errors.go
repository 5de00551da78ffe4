package autopilot

import (
	"errors"
	"fmt"

	"github.com/Mshel/snakepilot/internal/game"
)

// ErrPlanningFailed is matched by every error PlanHeading returns.
var ErrPlanningFailed = errors.New("autopilot planning failed")

// PlanningError explains why no heading could be chosen.
type PlanningError struct {
	Reason string
	Head   game.Cell
	Food   game.Cell
}

func planningFailure(reason string, head, food game.Cell) *PlanningError {
	return &PlanningError{Reason: reason, Head: head, Food: food}
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("%v: %s (head %s, food %s)", ErrPlanningFailed, e.Reason, e.Head, e.Food)
}

func (e *PlanningError) Unwrap() error {
	return ErrPlanningFailed
}
