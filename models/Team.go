package models

import (
	"errors"
	"html"
	"os"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID                  string   `gorm:"primary_key;type:uuid" json:"id"`
	Country             string   `gorm:"size:255;not null;unique" json:"country"`
	Manager             string   `gorm:"size:255;not null" json:"manager"`
	RepresentativeEmail string   `gorm:"size:100" json:"representative_email,omitempty"`
	BadgePath           string   `gorm:"size:255" json:"badge_url,omitempty"`
	Rating              int      `gorm:"not null;default:0" json:"rating"`
	Players             []Player `gorm:"foreignKey:TeamID" json:"players"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.TrimSpace(t.ID) == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

func (t *Team) AfterFind(tx *gorm.DB) (err error) {
	if t.BadgePath == "" || strings.HasPrefix(t.BadgePath, "http") {
		return nil
	}
	bucket := os.Getenv("S3_BUCKET")
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	key := t.BadgePath
	if !strings.HasPrefix(key, "TeamBadges/") {
		key = "TeamBadges/" + key
	}
	t.BadgePath = "https://" + bucket + ".s3." + region + ".amazonaws.com/" + key
	return nil
}

func (t *Team) Prepare() {
	t.Country = html.EscapeString(strings.TrimSpace(t.Country))
	t.Manager = html.EscapeString(strings.TrimSpace(t.Manager))
	t.RepresentativeEmail = strings.ToLower(strings.TrimSpace(t.RepresentativeEmail))
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()

	for i := range t.Players {
		t.Players[i].Prepare()
	}
}

func (t *Team) Validate() map[string]string {
	errorMessages := make(map[string]string)

	if t.Country == "" {
		errorMessages["Required_country"] = "Required Country"
	}
	if t.Manager == "" {
		errorMessages["Required_manager"] = "Required Manager"
	}
	if t.RepresentativeEmail != "" {
		if err := checkmail.ValidateFormat(t.RepresentativeEmail); err != nil {
			errorMessages["Invalid_email"] = "Invalid Email"
		}
	}
	if len(t.Players) != SquadSize {
		errorMessages["Invalid_squad"] = "A squad must have exactly 23 players"
	}

	captains := 0
	for i := range t.Players {
		if t.Players[i].IsCaptain {
			captains++
		}
		for key, msg := range t.Players[i].Validate() {
			errorMessages[key] = msg
		}
	}
	if len(t.Players) > 0 && captains != 1 {
		errorMessages["Invalid_captain"] = "A squad must have exactly one captain"
	}

	return errorMessages
}

// SaveTeam creates the team and its squad in one go.
func (t *Team) SaveTeam(db *gorm.DB) (*Team, error) {
	if err := db.Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// FindAllTeams lists teams in registration order, squads included.
func (t *Team) FindAllTeams(db *gorm.DB) (*[]Team, error) {
	var teams []Team
	err := db.Preload("Players").Order("created_at asc").Limit(100).Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return &teams, nil
}

func (t *Team) FindTeamByID(db *gorm.DB, id string) (*Team, error) {
	err := db.Preload("Players").Where("id = ?", id).Take(t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("Team not found")
		}
		return nil, err
	}
	return t, nil
}

func (t *Team) UpdateBadge(db *gorm.DB, id string, badgePath string) (*Team, error) {
	err := db.Model(&Team{}).Where("id = ?", id).Updates(map[string]interface{}{
		"badge_path": badgePath,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}
	err = db.Preload("Players").Where("id = ?", id).Take(t).Error
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Team) DeleteTeam(db *gorm.DB, id string) (int64, error) {
	if err := db.Where("team_id = ?", id).Delete(&Player{}).Error; err != nil {
		return 0, err
	}
	result := db.Where("id = ?", id).Delete(&Team{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
