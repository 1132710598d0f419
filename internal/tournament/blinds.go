// Package tournament drives multi-hand competition formats over the hand
// engine: heads-up matches, round-robin brackets and full-table freeze-outs.
package tournament

// BlindLevel is one step of the escalation schedule.
type BlindLevel struct {
	SmallBlind int
	BigBlind   int
	Ante       int
}

// Structure is a geometric blind escalation schedule. Levels are generated up
// front; antes kick in at level 3 at a tenth of the big blind and escalate
// with the same multiplier.
type Structure struct {
	levels        []BlindLevel
	handsPerLevel int

	levelIndex   int
	handsAtLevel int
}

const maxBlindLevels = 50

// NewStructure builds a schedule starting from the given blinds, raising
// them by multiplier every handsPerLevel hands.
func NewStructure(smallBlind, bigBlind, handsPerLevel int, multiplier float64) *Structure {
	s := &Structure{handsPerLevel: handsPerLevel}

	sb, bb, ante := float64(smallBlind), float64(bigBlind), 0.0
	for i := 1; i <= maxBlindLevels; i++ {
		s.levels = append(s.levels, BlindLevel{
			SmallBlind: int(sb),
			BigBlind:   int(bb),
			Ante:       int(ante),
		})
		sb *= multiplier
		bb *= multiplier
		if i+1 == 3 {
			ante = bb * 0.1
		} else if ante > 0 {
			ante *= multiplier
		}
	}
	return s
}

// Current returns the level in effect.
func (s *Structure) Current() BlindLevel {
	return s.levels[s.levelIndex]
}

// LevelFor returns the level in effect for the given 1-based hand number,
// along with its 1-based level number. It is a pure lookup of the schedule
// and leaves the cursor alone.
func (s *Structure) LevelFor(handNumber int) (BlindLevel, int) {
	idx := 0
	if handNumber > 0 && s.handsPerLevel > 0 {
		idx = (handNumber - 1) / s.handsPerLevel
	}
	if idx >= len(s.levels) {
		idx = len(s.levels) - 1
	}
	return s.levels[idx], idx + 1
}

// Level returns the 1-based level number.
func (s *Structure) Level() int {
	return s.levelIndex + 1
}

// HandsUntilIncrease returns how many hands remain at the current level.
func (s *Structure) HandsUntilIncrease() int {
	return s.handsPerLevel - s.handsAtLevel
}

// HandCompleted advances the schedule by one hand, reporting whether the
// blinds just went up.
func (s *Structure) HandCompleted() bool {
	s.handsAtLevel++
	if s.handsAtLevel >= s.handsPerLevel && s.levelIndex < len(s.levels)-1 {
		s.levelIndex++
		s.handsAtLevel = 0
		return true
	}
	return false
}

// Reset rewinds to the first level.
func (s *Structure) Reset() {
	s.levelIndex = 0
	s.handsAtLevel = 0
}
