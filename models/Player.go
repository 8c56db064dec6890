package models

import (
	"html"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Natural positions a player can hold.
const (
	PositionGK = "GK"
	PositionDF = "DF"
	PositionMD = "MD"
	PositionAT = "AT"
)

// SquadSize is the fixed roster length every federation must submit.
const SquadSize = 23

type Player struct {
	ID              string `gorm:"primary_key;type:uuid" json:"id"`
	TeamID          string `gorm:"type:uuid;not null;index" json:"team_id"`
	Name            string `gorm:"size:255;not null" json:"name"`
	NaturalPosition string `gorm:"size:2;not null" json:"natural_position"`
	RatingGK        int    `gorm:"not null;default:0" json:"rating_gk"`
	RatingDF        int    `gorm:"not null;default:0" json:"rating_df"`
	RatingMD        int    `gorm:"not null;default:0" json:"rating_md"`
	RatingAT        int    `gorm:"not null;default:0" json:"rating_at"`
	IsCaptain       bool   `gorm:"default:false" json:"is_captain"`
}

func (p *Player) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.TrimSpace(p.ID) == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (p *Player) Prepare() {
	p.Name = html.EscapeString(strings.TrimSpace(p.Name))
	p.NaturalPosition = strings.ToUpper(strings.TrimSpace(p.NaturalPosition))
}

// RatingFor returns the player's rating on one positional axis.
func (p *Player) RatingFor(position string) int {
	switch position {
	case PositionGK:
		return p.RatingGK
	case PositionDF:
		return p.RatingDF
	case PositionMD:
		return p.RatingMD
	case PositionAT:
		return p.RatingAT
	}
	return 0
}

// NaturalRating returns the rating on the player's own position.
func (p *Player) NaturalRating() int {
	return p.RatingFor(p.NaturalPosition)
}

func validPosition(pos string) bool {
	switch pos {
	case PositionGK, PositionDF, PositionMD, PositionAT:
		return true
	}
	return false
}

func validRating(r int) bool {
	return r >= 0 && r <= 100
}

func (p *Player) Validate() map[string]string {
	errorMessages := make(map[string]string)

	if p.Name == "" {
		errorMessages["Required_player_name"] = "Required Player Name"
	}
	if !validPosition(p.NaturalPosition) {
		errorMessages["Invalid_position"] = "Position must be one of GK, DF, MD, AT"
	}
	if !validRating(p.RatingGK) || !validRating(p.RatingDF) || !validRating(p.RatingMD) || !validRating(p.RatingAT) {
		errorMessages["Invalid_rating"] = "Ratings must be between 0 and 100"
	}

	return errorMessages
}
