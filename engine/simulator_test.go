package engine_test

import (
	"strings"
	"testing"

	"Knockout/engine"
	"Knockout/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureMatch() *models.Match {
	return &models.Match{
		ID:         "m-1",
		Stage:      models.StageQF,
		Pair:       1,
		Status:     models.StatusScheduled,
		HomeTeamID: "team-h",
		AwayTeamID: "team-a",
	}
}

func TestQuickTiedScoreGetsPenaltyDecision(t *testing.T) {
	// Both score draws land on 0, then the penalty toss picks home.
	rng := &scriptedSource{vals: []float64{0.0, 0.0, 0.2}}
	sim := engine.NewSimulator(rng)

	res := sim.Quick(fixtureMatch(), makeTeam("team-h", "Egypt", 60), makeTeam("team-a", "Ghana", 60))

	assert.Equal(t, 0, res.HomeScore)
	assert.Equal(t, 0, res.AwayScore)
	assert.Equal(t, models.DecisionHomePens, res.Decision)
	assert.Empty(t, res.Goals)
	assert.Empty(t, res.Commentary, "quick mode produces no commentary")
}

func TestQuickInvariants(t *testing.T) {
	sim := engine.NewSimulator(engine.NewSeededSource(7))
	home := makeTeam("team-h", "Egypt", 70)
	away := makeTeam("team-a", "Ghana", 55)

	for i := 0; i < 100; i++ {
		res := sim.Quick(fixtureMatch(), home, away)

		assert.GreaterOrEqual(t, res.HomeScore, 0)
		assert.LessOrEqual(t, res.HomeScore, 4)
		assert.GreaterOrEqual(t, res.AwayScore, 0)
		assert.LessOrEqual(t, res.AwayScore, 4)
		assert.NotEmpty(t, res.Decision)

		require.Len(t, res.Goals, res.HomeScore+res.AwayScore)

		seen := map[int]bool{}
		homeGoals, awayGoals := 0, 0
		lastMinute := 0
		for _, g := range res.Goals {
			assert.GreaterOrEqual(t, g.Minute, 1)
			assert.LessOrEqual(t, g.Minute, 90)
			assert.False(t, seen[g.Minute], "goal minutes must be distinct")
			assert.GreaterOrEqual(t, g.Minute, lastMinute, "goals must be minute-ordered")
			seen[g.Minute] = true
			lastMinute = g.Minute
			switch g.TeamID {
			case "team-h":
				homeGoals++
			case "team-a":
				awayGoals++
			}
		}
		assert.Equal(t, res.HomeScore, homeGoals)
		assert.Equal(t, res.AwayScore, awayGoals)

		if res.HomeScore > res.AwayScore {
			assert.Equal(t, models.DecisionHome, res.Decision)
		} else if res.AwayScore > res.HomeScore {
			assert.Equal(t, models.DecisionAway, res.Decision)
		} else {
			assert.Contains(t, []string{models.DecisionHomePens, models.DecisionAwayPens}, res.Decision)
		}
	}
}

func TestPlayScriptedSingleGoal(t *testing.T) {
	// Minute 2: shot (0.01 < 0.06), home side (0.2 < 0.5), goal (0.1 < 0.33),
	// first ballot entry scores (0.0). Everything after never fires (0.99).
	rng := &scriptedSource{vals: []float64{0.01, 0.2, 0.1, 0.0}, fallback: 0.99}
	sim := engine.NewSimulator(rng)

	home := makeTeam("team-h", "Egypt", 50)
	away := makeTeam("team-a", "Ghana", 50)
	res := sim.Play(fixtureMatch(), home, away)

	assert.Equal(t, 1, res.HomeScore)
	assert.Equal(t, 0, res.AwayScore)
	assert.Equal(t, models.DecisionHome, res.Decision)

	require.Len(t, res.Goals, 1)
	assert.Equal(t, 2, res.Goals[0].Minute)
	assert.Equal(t, "team-h", res.Goals[0].TeamID)
	assert.Equal(t, "p-at", res.Goals[0].PlayerID, "attackers lead the ballot pool")

	require.NotEmpty(t, res.Commentary)
	assert.Contains(t, res.Commentary[0], "Kick-off!")
	assert.Contains(t, res.Commentary[1], "GOAL! Egypt")
	assert.Contains(t, res.Commentary[len(res.Commentary)-1], "Full-time")
}

func TestPlayGoallessRunsFullShootoutWithCappedSuddenDeath(t *testing.T) {
	// A constant high draw kills every shot, flavor line and penalty kick:
	// 0-0 after 120, a 0-0 shootout, capped sudden death, then the coin flip
	// (0.99 → away).
	rng := &scriptedSource{fallback: 0.99}
	sim := engine.NewSimulator(rng)
	sim.MaxSuddenDeath = 3

	home := makeTeam("team-h", "Egypt", 50)
	away := makeTeam("team-a", "Ghana", 50)
	res := sim.Play(fixtureMatch(), home, away)

	assert.Equal(t, 0, res.HomeScore)
	assert.Equal(t, 0, res.AwayScore)
	assert.Equal(t, models.DecisionAwayPens, res.Decision)
	assert.Empty(t, res.Goals)

	joined := strings.Join(res.Commentary, "\n")
	assert.Contains(t, joined, "Extra time begins.")
	assert.Contains(t, joined, "Penalty shootout begins.")
	assert.Contains(t, joined, "Ghana win on pens.")

	suddenDeath := 0
	for _, line := range res.Commentary {
		if strings.Contains(line, "Sudden death") {
			suddenDeath++
		}
	}
	assert.Equal(t, 3, suddenDeath, "sudden death must stop at the cap")
}

func TestPlayAlwaysTerminatesWithAWinner(t *testing.T) {
	sim := engine.NewSimulator(engine.NewSeededSource(42))
	home := makeTeam("team-h", "Egypt", 85)
	away := makeTeam("team-a", "Ghana", 40)

	for i := 0; i < 50; i++ {
		res := sim.Play(fixtureMatch(), home, away)

		require.NotEmpty(t, res.Decision, "every played match must be decided")
		assert.Len(t, res.Goals, res.HomeScore+res.AwayScore)
		assert.NotEmpty(t, res.Commentary)

		switch res.Decision {
		case models.DecisionHome, models.DecisionHomeET:
			assert.Greater(t, res.HomeScore, res.AwayScore)
		case models.DecisionAway, models.DecisionAwayET:
			assert.Greater(t, res.AwayScore, res.HomeScore)
		case models.DecisionHomePens, models.DecisionAwayPens:
			assert.Equal(t, res.HomeScore, res.AwayScore, "penalties imply a level score")
		default:
			t.Fatalf("unknown decision %q", res.Decision)
		}

		for _, g := range res.Goals {
			assert.GreaterOrEqual(t, g.Minute, 1)
			assert.LessOrEqual(t, g.Minute, 120)
		}
	}
}
