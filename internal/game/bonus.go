package game

import "slices"

// Clearing these levels grants a shuriken, regardless of room size.
var shurikenBonusLevels = []int{2, 5, 8}

// lifeBonusSchedule returns the levels that grant a life and the life cap,
// both keyed on room size.
func lifeBonusSchedule(playerCount int) (levels []int, maxLives int) {
	switch {
	case playerCount < 3:
		return []int{3, 6, 9}, 3
	case playerCount <= 6:
		return []int{3, 6, 9, 11}, 4
	default:
		return []int{3, 6, 9, 10, 11}, 5
	}
}

// applyLevelBonuses grants the shuriken and life bonuses earned by clearing
// finishedLevel.
func (e *Engine) applyLevelBonuses(room *Room, finishedLevel int) {
	if slices.Contains(shurikenBonusLevels, finishedLevel) && room.State.Shurikens < MaxShurikens {
		room.State.Shurikens++
	}

	levels, maxLives := lifeBonusSchedule(len(room.Players))
	if slices.Contains(levels, finishedLevel) && room.State.Lives < maxLives {
		room.State.Lives++
	}
}
