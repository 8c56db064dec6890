package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bracket stages, in playing order.
const (
	StageQF = "QF"
	StageSF = "SF"
	StageF  = "F"
)

// Match lifecycle. Completed is terminal; a completed match never moves back.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// How a match result is produced.
const (
	ModeSimulate = "simulate"
	ModePlay     = "play"
)

// Decision codes for matches level at full time, keyed by the phase that
// settled them.
const (
	DecisionHome     = "home"
	DecisionAway     = "away"
	DecisionHomeET   = "homeET"
	DecisionAwayET   = "awayET"
	DecisionHomePens = "homePens"
	DecisionAwayPens = "awayPens"
)

// Sides of a fixture.
const (
	SideHome = "home"
	SideAway = "away"
)

// TBDTeamID marks a bracket slot whose team is not yet decided.
const TBDTeamID = "__TBD__"

type GoalEvent struct {
	ID       string `gorm:"primary_key;type:uuid" json:"id"`
	MatchID  string `gorm:"type:uuid;not null;index" json:"match_id"`
	Minute   int    `gorm:"not null" json:"minute"`
	TeamID   string `gorm:"not null;index" json:"team_id"`
	PlayerID string `gorm:"not null;index" json:"player_id"`
}

func (g *GoalEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.TrimSpace(g.ID) == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

// Match is the one mutable record in the bracket. The unique index on
// (tournament_id, stage, pair) is what keeps two concurrent advancements from
// creating duplicate next-round matches.
type Match struct {
	ID           string `gorm:"primary_key;type:uuid" json:"id"`
	TournamentID string `gorm:"size:64;index;uniqueIndex:idx_bracket_slot" json:"tournament_id,omitempty"`
	Stage        string `gorm:"size:2;not null;uniqueIndex:idx_bracket_slot" json:"stage"`
	Pair         int    `gorm:"not null;uniqueIndex:idx_bracket_slot" json:"pair"`
	Status       string `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	Mode         string `gorm:"size:10;not null;default:'simulate'" json:"mode"`

	HomeTeamID string `gorm:"size:64;not null" json:"home_team_id"`
	AwayTeamID string `gorm:"size:64;not null" json:"away_team_id"`
	HomeScore  int    `gorm:"not null;default:0" json:"home_score"`
	AwayScore  int    `gorm:"not null;default:0" json:"away_score"`

	Goals      []GoalEvent `gorm:"foreignKey:MatchID" json:"goals"`
	Commentary []string    `gorm:"serializer:json" json:"commentary,omitempty"`
	Decision   string      `gorm:"size:10" json:"decision,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.TrimSpace(m.ID) == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

func (m *Match) Prepare() {
	m.Stage = strings.ToUpper(strings.TrimSpace(m.Stage))
	if m.Status == "" {
		m.Status = StatusScheduled
	}
	if m.Mode == "" {
		m.Mode = ModeSimulate
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()
}

func (m *Match) Validate() map[string]string {
	errorMessages := make(map[string]string)

	switch m.Stage {
	case StageQF:
		if m.Pair < 1 || m.Pair > 4 {
			errorMessages["Invalid_pair"] = "QF pair must be between 1 and 4"
		}
	case StageSF:
		if m.Pair < 1 || m.Pair > 2 {
			errorMessages["Invalid_pair"] = "SF pair must be 1 or 2"
		}
	case StageF:
		if m.Pair != 1 {
			errorMessages["Invalid_pair"] = "The Final has exactly one pair"
		}
	default:
		errorMessages["Invalid_stage"] = "Stage must be one of QF, SF, F"
	}

	if m.HomeTeamID == "" {
		errorMessages["Required_home_team"] = "Required Home Team"
	}
	if m.AwayTeamID == "" {
		errorMessages["Required_away_team"] = "Required Away Team"
	}

	return errorMessages
}

// HasTBDSlot reports whether either side is still waiting on a winner.
func (m *Match) HasTBDSlot() bool {
	return m.HomeTeamID == TBDTeamID || m.AwayTeamID == TBDTeamID
}

func (m *Match) SaveMatch(db *gorm.DB) (*Match, error) {
	if err := db.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Match) FindMatchByID(db *gorm.DB, id string) (*Match, error) {
	err := db.Preload("Goals").Where("id = ?", id).Take(m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("Match not found")
		}
		return nil, err
	}
	return m, nil
}

// FindMatches lists matches, optionally narrowed by stage and tournament.
func (m *Match) FindMatches(db *gorm.DB, stage string, tournamentID string) (*[]Match, error) {
	var matches []Match
	q := db.Preload("Goals")
	if stage != "" {
		q = q.Where("stage = ?", stage)
	}
	if tournamentID != "" {
		q = q.Where("tournament_id = ?", tournamentID)
	}
	err := q.Order("stage asc, pair asc").Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return &matches, nil
}

// SaveResult persists a finished scoreline with its goal events, commentary
// and decision, moving the match into completed.
func (m *Match) SaveResult(db *gorm.DB) (*Match, error) {
	m.Status = StatusCompleted
	m.UpdatedAt = time.Now()

	err := db.Model(&Match{}).Where("id = ?", m.ID).
		Select("HomeScore", "AwayScore", "Decision", "Commentary", "Status", "Mode", "UpdatedAt").
		Updates(m).Error
	if err != nil {
		return nil, err
	}

	// Replace goal events wholesale; a re-run result supersedes the old one.
	if err := db.Where("match_id = ?", m.ID).Delete(&GoalEvent{}).Error; err != nil {
		return nil, err
	}
	for i := range m.Goals {
		m.Goals[i].ID = ""
		m.Goals[i].MatchID = m.ID
		if err := db.Create(&m.Goals[i]).Error; err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Match) DeleteMatchesByTournament(db *gorm.DB, tournamentID string) (int64, error) {
	var ids []string
	if err := db.Model(&Match{}).Where("tournament_id = ?", tournamentID).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		if err := db.Where("match_id IN ?", ids).Delete(&GoalEvent{}).Error; err != nil {
			return 0, err
		}
	}
	result := db.Where("tournament_id = ?", tournamentID).Delete(&Match{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
