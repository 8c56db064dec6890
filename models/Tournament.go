package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TournamentActive   = "active"
	TournamentFinished = "finished"
)

// Tournament groups one bracket run so historical runs can coexist.
type Tournament struct {
	ID        string    `gorm:"primary_key;type:uuid" json:"id"`
	Status    string    `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (t *Tournament) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.TrimSpace(t.ID) == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// StartTournament opens a new bracket run and retires the previous active one.
func StartTournament(db *gorm.DB) (*Tournament, error) {
	err := db.Model(&Tournament{}).Where("status = ?", TournamentActive).
		Update("status", TournamentFinished).Error
	if err != nil {
		return nil, err
	}

	t := Tournament{Status: TournamentActive, CreatedAt: time.Now()}
	if err := db.Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ActiveTournament returns the current run, creating one when none exists.
func ActiveTournament(db *gorm.DB) (*Tournament, error) {
	var t Tournament
	err := db.Where("status = ?", TournamentActive).Order("created_at desc").Take(&t).Error
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return StartTournament(db)
}
