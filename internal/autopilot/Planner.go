package autopilot

import (
	"cmp"
	"math"
	"slices"

	"github.com/Mshel/snakepilot/internal/game"
)

// unlabelled sorts cells the labelling never reached after every real label.
const unlabelled = math.MaxInt

// PlanHeading picks the heading for the snake's next step towards food. It
// never mutates its arguments and keeps no state between calls.
//
// The search runs in two phases. A greedy best-first walk from the head's
// neighbours, always expanding the candidate closest to the food, collects
// the free cells it inspects until the food turns up or the walk runs dry.
// Those cells are then labelled with their hop distance from the food,
// counting only paths through inspected cells, until the labelling reaches
// the head. The head moves to its lowest labelled neighbour.
func PlanHeading(size game.Size, snake []game.Cell, food game.Cell) (game.Heading, error) {
	if len(snake) == 0 {
		return 0, planningFailure("snake has no cells", game.Cell{}, food)
	}
	head := snake[0]

	inspected := inspect(size, snake, food)

	labels, ok := label(inspected, head, food)
	if !ok {
		return 0, planningFailure("food is unreachable", head, food)
	}

	candidates := head.Neighbours()
	if len(candidates) == 0 {
		return 0, planningFailure("head has no neighbours", head, food)
	}
	slices.SortStableFunc(candidates, func(a, b game.Cell) int {
		return cmp.Compare(labelOf(labels, a), labelOf(labels, b))
	})

	choice := candidates[0]
	if labelOf(labels, choice) == unlabelled {
		return 0, planningFailure("no labelled neighbour", head, food)
	}

	return headingBetween(head, choice, food)
}

// inspect is the greedy reachability walk. The work list is kept sorted by
// descending distance so the closest candidate is always popped from the end.
func inspect(size game.Size, snake []game.Cell, food game.Cell) map[game.Cell]struct{} {
	occupied := make(map[game.Cell]struct{}, len(snake))
	for _, c := range snake {
		occupied[c] = struct{}{}
	}

	inspected := make(map[game.Cell]struct{})
	work := snake[0].Neighbours()
	found := false

	for !found && len(work) > 0 {
		slices.SortStableFunc(work, func(a, b game.Cell) int {
			return cmp.Compare(game.SquaredDistance(b, food), game.SquaredDistance(a, food))
		})
		candidate := work[len(work)-1]
		work = work[:len(work)-1]

		if candidate == food {
			found = true
		}
		if _, hit := occupied[candidate]; hit {
			continue
		}
		if _, seen := inspected[candidate]; seen || !size.Contains(candidate) {
			continue
		}

		inspected[candidate] = struct{}{}
		work = append(work, candidate.Neighbours()...)
	}

	return inspected
}

// label assigns hop distances from food through the inspected cells. It
// stops once the head shows up in the frontier and gives up when the
// frontier empties or the level count exceeds the number of inspected cells.
func label(inspected map[game.Cell]struct{}, head, food game.Cell) (map[game.Cell]int, bool) {
	labels := map[game.Cell]int{food: 0}
	frontier := food.Neighbours()

	for level := 1; ; level++ {
		if slices.Contains(frontier, head) {
			return labels, true
		}
		if len(frontier) == 0 || level > len(inspected)+1 {
			return nil, false
		}

		var next []game.Cell
		for _, c := range frontier {
			if _, ok := inspected[c]; !ok {
				continue
			}
			if _, done := labels[c]; done {
				continue
			}
			labels[c] = level
			next = append(next, c.Neighbours()...)
		}
		frontier = next
	}
}

func labelOf(labels map[game.Cell]int, c game.Cell) int {
	if l, ok := labels[c]; ok {
		return l
	}
	return unlabelled
}

func headingBetween(from, to, food game.Cell) (game.Heading, error) {
	switch dx, dy := to.X-from.X, to.Y-from.Y; {
	case dx > 0:
		return game.Right, nil
	case dx < 0:
		return game.Left, nil
	case dy > 0:
		return game.Down, nil
	case dy < 0:
		return game.Up, nil
	}
	return 0, planningFailure("chosen cell is the head itself", from, food)
}
