package engine_test

import (
	"testing"

	"Knockout/engine"
	"Knockout/models"

	"github.com/stretchr/testify/assert"
)

func TestWinnerOfHigherScoreWinsRegardlessOfDecision(t *testing.T) {
	cases := []struct {
		homeScore, awayScore int
		decision             string
		want                 string
	}{
		{3, 1, "", models.SideHome},
		{0, 2, "", models.SideAway},
		{2, 1, models.DecisionAwayPens, models.SideHome},
		{1, 4, models.DecisionHome, models.SideAway},
	}

	for _, tc := range cases {
		m := &models.Match{HomeScore: tc.homeScore, AwayScore: tc.awayScore, Decision: tc.decision}
		assert.Equal(t, tc.want, engine.WinnerOf(m, nil))
	}
}

func TestWinnerOfTiedScoreFollowsDecisionPrefix(t *testing.T) {
	cases := []struct {
		decision string
		want     string
	}{
		{models.DecisionHome, models.SideHome},
		{models.DecisionHomeET, models.SideHome},
		{models.DecisionHomePens, models.SideHome},
		{models.DecisionAway, models.SideAway},
		{models.DecisionAwayET, models.SideAway},
		{models.DecisionAwayPens, models.SideAway},
	}

	for _, tc := range cases {
		m := &models.Match{HomeScore: 2, AwayScore: 2, Decision: tc.decision}
		assert.Equal(t, tc.want, engine.WinnerOf(m, nil), "decision %s", tc.decision)
	}
}

func TestWinnerOfTiedNoDecisionFallsBackToCoinFlip(t *testing.T) {
	m := &models.Match{ID: "broken", HomeScore: 1, AwayScore: 1}

	heads := &scriptedSource{vals: []float64{0.1}}
	assert.Equal(t, models.SideHome, engine.WinnerOf(m, heads))

	tails := &scriptedSource{vals: []float64{0.9}}
	assert.Equal(t, models.SideAway, engine.WinnerOf(m, tails))
}
