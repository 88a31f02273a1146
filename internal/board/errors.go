package board

import "fmt"

// ConfigError reports board parameters that cannot produce a playable board.
type ConfigError struct {
	Width, Height, MineCount int
}

// [ConfigError] implements [error]
func (e *ConfigError) Error() string {
	switch {
	case e.Width <= 0:
		return fmt.Sprintf("cannot create a board with width %d", e.Width)
	case e.Height <= 0:
		return fmt.Sprintf("cannot create a board with height %d", e.Height)
	case e.Width > MaxArea/e.Height:
		return fmt.Sprintf("board %dx%d is too large (at most %d cells)",
			e.Width, e.Height, MaxArea)
	case e.MineCount <= 0:
		return fmt.Sprintf("cannot create a board with %d mines", e.MineCount)
	default:
		return fmt.Sprintf(
			"not enough space for %d mines on a %dx%d board (at most %d)",
			e.MineCount, e.Width, e.Height, maxMines(e.Width, e.Height),
		)
	}
}

type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

// [OutOfBoundsError] implements [error]
func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("cell (%d, %d) is outside of %dx%d board",
		e.X, e.Y, e.Width, e.Height)
}

// PlacementError means the mine layout could not be drawn. [New] rules this
// out, so seeing one is a bug.
type PlacementError struct {
	MineCount  int
	Candidates int
}

// [PlacementError] implements [error]
func (e *PlacementError) Error() string {
	return fmt.Sprintf("cannot place %d mines into %d candidate cells",
		e.MineCount, e.Candidates)
}
