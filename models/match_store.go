package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// MatchStore is the gorm-backed persistence handle the advancement engine
// works through. It is handed in explicitly (never a package-level singleton)
// so tests can swap in a fake.
type MatchStore struct {
	DB *gorm.DB
}

// FindByStagePair returns the single match occupying a bracket slot, scoped
// to a tournament when one is given. Rows without a tournament id predate
// scoping and match any tournament; an exact match is preferred. A missing
// match is (nil, nil), not an error.
func (s *MatchStore) FindByStagePair(stage string, pair int, tournamentID string) (*Match, error) {
	var match Match
	q := s.DB.Where("stage = ? AND pair = ?", stage, pair)
	if tournamentID != "" {
		q = q.Where("tournament_id = ? OR tournament_id IS NULL OR tournament_id = ''", tournamentID).
			Order("tournament_id desc")
	}
	err := q.Limit(1).Take(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &match, nil
}

// Create inserts a new match. The unique index on (tournament_id, stage,
// pair) makes a lost create race surface as an error here instead of a
// duplicate row.
func (s *MatchStore) Create(m *Match) error {
	return s.DB.Create(m).Error
}

// PatchSlot writes the winner into one side of an existing match, touching
// nothing else besides the modification timestamp. The tournament id is
// backfilled only when the target is missing one.
func (s *MatchStore) PatchSlot(id string, slot string, teamID string, tournamentID string) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if slot == SideHome {
		updates["home_team_id"] = teamID
	} else {
		updates["away_team_id"] = teamID
	}

	if err := s.DB.Model(&Match{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return err
	}

	if tournamentID != "" {
		err := s.DB.Model(&Match{}).
			Where("id = ? AND (tournament_id IS NULL OR tournament_id = '')", id).
			Update("tournament_id", tournamentID).Error
		if err != nil {
			return err
		}
	}
	return nil
}
