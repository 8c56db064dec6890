package engine

import (
	"log"

	"Knockout/models"
)

// WinnerOf reports which side won a completed match. Unequal scores decide it
// outright; level matches fall to the decision code. A level match with no
// decision is an invariant violation — it is logged loudly and settled by a
// coin flip so the bracket can still progress.
func WinnerOf(m *models.Match, rng Source) string {
	if m.HomeScore > m.AwayScore {
		return models.SideHome
	}
	if m.AwayScore > m.HomeScore {
		return models.SideAway
	}

	switch m.Decision {
	case models.DecisionHome, models.DecisionHomeET, models.DecisionHomePens:
		return models.SideHome
	case models.DecisionAway, models.DecisionAwayET, models.DecisionAwayPens:
		return models.SideAway
	}

	log.Printf("[winner] match %s is level with no decision; settling by coin flip", m.ID)
	if rng == nil {
		rng = NewSource()
	}
	if rng.Float64() < 0.5 {
		return models.SideHome
	}
	return models.SideAway
}
