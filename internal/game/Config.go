package game

import "errors"

const (
	MinBoardSide       = 5
	InitialSnakeLength = 5
	InitialHeading     = Right
)

var ErrBoardTooSmall = errors.New("board too small")
