package engine

import (
	"fmt"
	"math"
	"sort"

	"Knockout/models"
)

// Tuning for the minute-by-minute model.
const (
	BaseShotRate     = 0.03    // per-team chance to create a shot each minute
	AtkBonus         = 0.00030 // rating impact on the shot rate
	GoalProb         = 0.33    // shot becomes a goal
	EtRateMultiplier = 0.60    // extra time is tighter
	PenScoreProb     = 0.75    // per-kick score chance in a shootout
)

// DefaultMaxSuddenDeathRounds caps shootout sudden death before the winner is
// settled by a coin flip. Crude, but it guarantees termination.
const DefaultMaxSuddenDeathRounds = 15

// Result is a complete match outcome. The simulator never touches storage or
// mutates its inputs; persisting the result is the caller's job.
type Result struct {
	HomeScore  int
	AwayScore  int
	Goals      []models.GoalEvent
	Commentary []string
	Decision   string
}

type Simulator struct {
	rng Source

	// MaxSuddenDeath is tunable; see DefaultMaxSuddenDeathRounds.
	MaxSuddenDeath int
}

func NewSimulator(rng Source) *Simulator {
	if rng == nil {
		rng = NewSource()
	}
	return &Simulator{rng: rng, MaxSuddenDeath: DefaultMaxSuddenDeathRounds}
}

//
// ===============================
// QUICK MODE
// ===============================
//

// Quick resolves a match from a bare random scoreline: both scores uniform in
// [0,4], penalties tossed for on a tie, and goal-minute placeholders filled in
// with position-weighted scorers.
func (s *Simulator) Quick(m *models.Match, home, away *models.Team) Result {
	res := Result{
		HomeScore: randi(s.rng, 0, 4),
		AwayScore: randi(s.rng, 0, 4),
		Goals:     []models.GoalEvent{},
	}

	if res.HomeScore != res.AwayScore {
		if res.HomeScore > res.AwayScore {
			res.Decision = models.DecisionHome
		} else {
			res.Decision = models.DecisionAway
		}
	} else if chance(s.rng, 0.5) {
		res.Decision = models.DecisionHomePens
	} else {
		res.Decision = models.DecisionAwayPens
	}

	minutes := s.distinctMinutes(res.HomeScore+res.AwayScore, 90)
	for i, minute := range minutes {
		team, teamID := home, m.HomeTeamID
		if i >= res.HomeScore {
			team, teamID = away, m.AwayTeamID
		}
		scorer := s.pickScorer(team)
		res.Goals = append(res.Goals, models.GoalEvent{
			Minute:   minute,
			TeamID:   teamID,
			PlayerID: scorer.ID,
		})
	}
	sort.Slice(res.Goals, func(i, j int) bool { return res.Goals[i].Minute < res.Goals[j].Minute })

	return res
}

// distinctMinutes draws n distinct minutes in [1, max].
func (s *Simulator) distinctMinutes(n, max int) []int {
	seen := make(map[int]bool, n)
	minutes := make([]int, 0, n)
	for len(minutes) < n {
		minute := randi(s.rng, 1, max)
		if seen[minute] {
			continue
		}
		seen[minute] = true
		minutes = append(minutes, minute)
	}
	return minutes
}

//
// ===============================
// FULL-PLAY MODE
// ===============================
//

// Play simulates the match minute by minute: 90 minutes of regulation, extra
// time when level, then a penalty shootout, with a commentary line for every
// beat worth mentioning.
func (s *Simulator) Play(m *models.Match, home, away *models.Team) Result {
	res := Result{Goals: []models.GoalEvent{}}

	homeAtk := clampRating(home.Rating)
	awayAtk := clampRating(away.Rating)

	lines := []string{}
	add := func(minute int, text string) {
		lines = append(lines, fmt.Sprintf("%d' — %s", minute, text))
	}

	add(1, fmt.Sprintf("Kick-off! %s vs %s.", home.Country, away.Country))

	for minute := 2; minute <= 90; minute++ {
		s.playMinute(minute, m, home, away, homeAtk, awayAtk, 1.0, GoalProb, 0.6, &res, add)
	}

	add(90, fmt.Sprintf("Full-time: %s %d–%d %s.", home.Country, res.HomeScore, res.AwayScore, away.Country))

	if res.HomeScore != res.AwayScore {
		if res.HomeScore > res.AwayScore {
			res.Decision = models.DecisionHome
		} else {
			res.Decision = models.DecisionAway
		}
		res.Commentary = lines
		return res
	}

	add(90, "Extra time begins.")
	for minute := 91; minute <= 120; minute++ {
		s.playMinute(minute, m, home, away, homeAtk, awayAtk, EtRateMultiplier, GoalProb*0.9, 0.5, &res, add)
	}
	add(120, fmt.Sprintf("End of extra time: %s %d–%d %s.", home.Country, res.HomeScore, res.AwayScore, away.Country))

	if res.HomeScore != res.AwayScore {
		if res.HomeScore > res.AwayScore {
			res.Decision = models.DecisionHomeET
		} else {
			res.Decision = models.DecisionAwayET
		}
		add(120, fmt.Sprintf("AET: %s %d–%d %s.", home.Country, res.HomeScore, res.AwayScore, away.Country))
		res.Commentary = lines
		return res
	}

	winner := s.playPenalties(home, away, add)
	if winner == models.SideHome {
		res.Decision = models.DecisionHomePens
		add(120, fmt.Sprintf("Penalties decided it: %s win on pens.", home.Country))
	} else {
		res.Decision = models.DecisionAwayPens
		add(120, fmt.Sprintf("Penalties decided it: %s win on pens.", away.Country))
	}

	res.Commentary = lines
	return res
}

// playMinute advances the shot model one minute, appending goals, chances and
// the occasional flavor line.
func (s *Simulator) playMinute(minute int, m *models.Match, home, away *models.Team,
	homeAtk, awayAtk int, rateMult, goalProb, flavorProb float64,
	res *Result, add func(int, string)) {

	pHome := (BaseShotRate + float64(homeAtk-50)*AtkBonus) * rateMult
	pAway := (BaseShotRate + float64(awayAtk-50)*AtkBonus) * rateMult

	if chance(s.rng, pHome+pAway) {
		side := s.pickWeightedSide(pHome, pAway)
		team, teamID := home, m.HomeTeamID
		if side == models.SideAway {
			team, teamID = away, m.AwayTeamID
		}

		if chance(s.rng, goalProb) {
			scorer := s.pickScorer(team)
			add(minute, fmt.Sprintf("GOAL! %s — %s", team.Country, scorer.Name))
			if side == models.SideHome {
				res.HomeScore++
			} else {
				res.AwayScore++
			}
			res.Goals = append(res.Goals, models.GoalEvent{
				Minute:   minute,
				TeamID:   teamID,
				PlayerID: scorer.ID,
			})
		} else {
			add(minute, fmt.Sprintf("%s chance goes begging.", team.Country))
		}
		return
	}

	if minute%15 == 0 && chance(s.rng, flavorProb) {
		add(minute, s.flavorLine(home, away))
	}
}

// pickWeightedSide attributes a shot to a side with probability proportional
// to that side's own shot rate.
func (s *Simulator) pickWeightedSide(pHome, pAway float64) string {
	if chance(s.rng, pHome/(pHome+pAway)) {
		return models.SideHome
	}
	return models.SideAway
}

func (s *Simulator) flavorLine(home, away *models.Team) string {
	opts := []string{
		fmt.Sprintf("%s sustain pressure.", home.Country),
		fmt.Sprintf("%s look dangerous on the break.", away.Country),
		"A tight midfield battle ensues.",
		"Huge save from the keeper!",
		"The crowd can feel a goal coming.",
	}
	return opts[randi(s.rng, 0, len(opts)-1)]
}

//
// ===============================
// SCORER SELECTION
// ===============================
//

// pickScorer draws a goalscorer weighted by position: attackers 4,
// midfielders 2, defenders 1, keepers 0.5. Weights are realized by ballot
// stuffing; a squad with no eligible players falls back to a uniform draw.
func (s *Simulator) pickScorer(team *models.Team) models.Player {
	players := team.Players

	pool := make([]models.Player, 0, len(players)*4)
	pool = stuff(pool, players, models.PositionAT, 4)
	pool = stuff(pool, players, models.PositionMD, 2)
	pool = stuff(pool, players, models.PositionDF, 1)
	pool = stuff(pool, players, models.PositionGK, 0.5)

	if len(pool) > 0 {
		return pool[randi(s.rng, 0, len(pool)-1)]
	}
	if len(players) > 0 {
		return players[randi(s.rng, 0, len(players)-1)]
	}
	return models.Player{ID: "unknown", Name: "Unknown"}
}

// stuff appends every player in the given position to the ballot pool, one
// copy per rounded weight (minimum one).
func stuff(pool []models.Player, players []models.Player, position string, factor float64) []models.Player {
	copies := int(math.Round(factor))
	if copies < 1 {
		copies = 1
	}
	for i := range players {
		if players[i].NaturalPosition != position {
			continue
		}
		for c := 0; c < copies; c++ {
			pool = append(pool, players[i])
		}
	}
	return pool
}

//
// ===============================
// PENALTY SHOOTOUT
// ===============================
//

// playPenalties runs five alternating rounds (home kicks first), then sudden
// death. Sudden death is capped at MaxSuddenDeath rounds, after which an
// unweighted coin flip picks a winner so the shootout cannot loop forever.
func (s *Simulator) playPenalties(home, away *models.Team, add func(int, string)) string {
	add(120, "Penalty shootout begins.")

	take := func() bool { return chance(s.rng, PenScoreProb) }

	h, a := 0, 0
	for i := 1; i <= 5; i++ {
		hs := take()
		if hs {
			h++
		}
		add(120, fmt.Sprintf("%s pen %d: %s", home.Country, i, scoredOrMissed(hs)))

		as := take()
		if as {
			a++
		}
		add(120, fmt.Sprintf("%s pen %d: %s", away.Country, i, scoredOrMissed(as)))
	}
	if h != a {
		if h > a {
			return models.SideHome
		}
		return models.SideAway
	}

	maxRounds := s.MaxSuddenDeath
	if maxRounds <= 0 {
		maxRounds = DefaultMaxSuddenDeathRounds
	}
	for round := 1; round <= maxRounds; round++ {
		hs, as := take(), take()
		add(120, fmt.Sprintf("Sudden death %d: %s %s — %s %s",
			round+5, home.Country, tickOrCross(hs), away.Country, tickOrCross(as)))
		if hs != as {
			if hs {
				return models.SideHome
			}
			return models.SideAway
		}
	}

	if chance(s.rng, 0.5) {
		return models.SideHome
	}
	return models.SideAway
}

func scoredOrMissed(scored bool) string {
	if scored {
		return "scored"
	}
	return "missed"
}

func tickOrCross(scored bool) string {
	if scored {
		return "✓"
	}
	return "✗"
}
