package engine_test

import (
	"fmt"
	"sync"

	"Knockout/engine"
	"Knockout/models"
)

// scriptedSource replays a fixed sequence of draws, then keeps returning
// fallback. It lets tests pin down exact simulated outcomes.
type scriptedSource struct {
	vals     []float64
	fallback float64
	i        int
}

func (s *scriptedSource) Float64() float64 {
	if s.i < len(s.vals) {
		v := s.vals[s.i]
		s.i++
		return v
	}
	return s.fallback
}

// fakeMatchStore is an in-memory engine.MatchStore with the same conditional
// create semantics as the gorm store: a second create for an occupied
// (stage, pair, tournament) slot fails instead of duplicating.
type fakeMatchStore struct {
	mu      sync.Mutex
	matches []*models.Match

	findCalls   int
	createCalls int
	patchCalls  int
}

var _ engine.MatchStore = (*fakeMatchStore)(nil)

func (f *fakeMatchStore) FindByStagePair(stage string, pair int, tournamentID string) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	// Rows without a tournament id predate scoping and match any tournament.
	for _, m := range f.matches {
		if m.Stage == stage && m.Pair == pair &&
			(tournamentID == "" || m.TournamentID == tournamentID || m.TournamentID == "") {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMatchStore) Create(m *models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	for _, existing := range f.matches {
		if existing.Stage == m.Stage && existing.Pair == m.Pair && existing.TournamentID == m.TournamentID {
			return fmt.Errorf("slot %s-%d already taken", m.Stage, m.Pair)
		}
	}
	if m.ID == "" {
		m.ID = fmt.Sprintf("match-%d", len(f.matches)+1)
	}
	copied := *m
	f.matches = append(f.matches, &copied)
	return nil
}

func (f *fakeMatchStore) PatchSlot(id string, slot string, teamID string, tournamentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patchCalls++
	for _, m := range f.matches {
		if m.ID != id {
			continue
		}
		if slot == models.SideHome {
			m.HomeTeamID = teamID
		} else {
			m.AwayTeamID = teamID
		}
		if m.TournamentID == "" && tournamentID != "" {
			m.TournamentID = tournamentID
		}
		return nil
	}
	return fmt.Errorf("match %s not found", id)
}

func (f *fakeMatchStore) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findCalls + f.createCalls + f.patchCalls
}

// makeSquad builds a minimal roster with one player per position so the
// weighted scorer draw always has candidates.
func makeSquad() []models.Player {
	return []models.Player{
		{ID: "p-at", Name: "Striker One", NaturalPosition: models.PositionAT, RatingAT: 80},
		{ID: "p-md", Name: "Mid One", NaturalPosition: models.PositionMD, RatingMD: 70},
		{ID: "p-df", Name: "Back One", NaturalPosition: models.PositionDF, RatingDF: 65},
		{ID: "p-gk", Name: "Keeper One", NaturalPosition: models.PositionGK, RatingGK: 75},
	}
}

func makeTeam(id, country string, rating int) *models.Team {
	return &models.Team{
		ID:      id,
		Country: country,
		Rating:  rating,
		Players: makeSquad(),
	}
}

func completedMatch(stage string, pair int, homeID, awayID string, homeScore, awayScore int) *models.Match {
	return &models.Match{
		ID:         fmt.Sprintf("%s-%d", stage, pair),
		Stage:      stage,
		Pair:       pair,
		Status:     models.StatusCompleted,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
	}
}
