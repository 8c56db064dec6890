package seed

import (
	"fmt"
	"log"
	"math/rand"

	"Knockout/engine"
	"Knockout/models"

	"gorm.io/gorm"
)

var firstNames = []string{
	"Ahmed", "Mohamed", "Kwame", "Kofi", "Youssef", "Samuel", "Didier",
	"Victor", "Michael", "Andre", "Pierre", "Eric", "Wilfried", "Nicolas",
}

var lastNames = []string{
	"Salah", "Mané", "Mahrez", "Osimhen", "Eto'o", "Koulibaly", "Mendy",
	"Partey", "Keita", "Traoré", "Diallo", "Toure", "Aboubakar", "Ziyech",
}

// squadTemplate is the fixed 23-man position layout every generated squad uses.
var squadTemplate = []string{
	models.PositionGK, models.PositionGK,
	models.PositionDF, models.PositionDF, models.PositionDF, models.PositionDF, models.PositionDF,
	models.PositionMD, models.PositionMD, models.PositionMD, models.PositionMD, models.PositionMD,
	models.PositionAT, models.PositionAT, models.PositionAT, models.PositionAT, models.PositionAT,
	models.PositionDF, models.PositionMD, models.PositionAT,
	models.PositionDF, models.PositionMD, models.PositionAT,
}

var demoFederations = []models.Team{
	{Country: "Egypt", Manager: "Hassan Farouk"},
	{Country: "Senegal", Manager: "Ousmane Diop"},
	{Country: "Morocco", Manager: "Karim Bennani"},
	{Country: "Nigeria", Manager: "Chinedu Okafor"},
	{Country: "Ghana", Manager: "Kwabena Mensah"},
	{Country: "Cameroon", Manager: "Paul Ngono"},
	{Country: "Algeria", Manager: "Rachid Boudjema"},
	{Country: "Ivory Coast", Manager: "Serge Kouadio"},
}

func randi(min, max int) int {
	return rand.Intn(max-min+1) + min
}

func positionRating(natural bool) int {
	if natural {
		return randi(50, 100)
	}
	return randi(0, 50)
}

// GeneratePlayers builds a 23-man squad from the position template, stronger
// on each player's natural axis, with the captaincy at the given index.
func GeneratePlayers(captainIndex int) []models.Player {
	players := make([]models.Player, 0, len(squadTemplate))
	for i, pos := range squadTemplate {
		name := fmt.Sprintf("%s %s",
			firstNames[randi(0, len(firstNames)-1)],
			lastNames[randi(0, len(lastNames)-1)])

		players = append(players, models.Player{
			Name:            name,
			NaturalPosition: pos,
			RatingGK:        positionRating(pos == models.PositionGK),
			RatingDF:        positionRating(pos == models.PositionDF),
			RatingMD:        positionRating(pos == models.PositionMD),
			RatingAT:        positionRating(pos == models.PositionAT),
			IsCaptain:       i == captainIndex,
		})
	}
	return players
}

// Load seeds demo federations so a fresh install can run a bracket
// immediately. It does nothing when any team already exists.
func Load(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Team{}).Count(&count).Error; err != nil {
		log.Printf("[seed] cannot count teams: %v", err)
		return
	}
	if count > 0 {
		return
	}

	for i := range demoFederations {
		team := demoFederations[i]
		team.Players = GeneratePlayers(10)
		team.Rating = engine.DeriveTeamRating(team.Players)
		team.Prepare()

		if _, err := team.SaveTeam(db); err != nil {
			log.Printf("[seed] cannot seed team %s: %v", team.Country, err)
			return
		}
	}
	log.Printf("[seed] created %d demo federations", len(demoFederations))
}
