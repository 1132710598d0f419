package game

import "fmt"

// InvariantError reports a chip-conservation failure inside the hand engine.
// It is fatal: the hand is aborted and the surrounding match marked failed.
type InvariantError struct {
	Expected int
	Actual   int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("chip conservation violated: expected %d chips in play, found %d", e.Expected, e.Actual)
}
